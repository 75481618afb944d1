package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all configuration for the crop risk service.
type Config struct {
	HTTPPort       string
	ClassifierPath string
	EncoderPath    string
	Environment    string
	LogLevel       string
	LogFormat      string
	OTLPEndpoint   string
	OTLPInsecure   bool
	OTLPCAFile     string
	TracingEnabled bool
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		HTTPPort:       getEnv("HTTP_PORT", "8501"),
		ClassifierPath: getEnv("CLASSIFIER_PATH", "models/risk_classifier_rf_v3.json"),
		EncoderPath:    getEnv("ENCODER_PATH", "models/risk_class_encoder.json"),
		Environment:    getEnv("ENVIRONMENT", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "json"),
		OTLPEndpoint:   getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
		OTLPInsecure:   getEnvBool("OTEL_EXPORTER_OTLP_INSECURE", true),
		OTLPCAFile:     getEnv("OTEL_EXPORTER_OTLP_CERTIFICATE", ""),
		TracingEnabled: getEnvBool("TRACING_ENABLED", false),
	}
}

// Validate checks that the configuration can start the service.
func (c *Config) Validate() error {
	port, err := strconv.Atoi(c.HTTPPort)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("invalid HTTP_PORT %q", c.HTTPPort)
	}
	if c.ClassifierPath == "" {
		return fmt.Errorf("CLASSIFIER_PATH is required")
	}
	if c.EncoderPath == "" {
		return fmt.Errorf("ENCODER_PATH is required")
	}
	return nil
}

// HTTPAddress returns the full HTTP listen address.
func (c *Config) HTTPAddress() string {
	return fmt.Sprintf(":%s", c.HTTPPort)
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
