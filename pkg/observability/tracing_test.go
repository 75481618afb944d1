package observability

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestInitTracer_Insecure(t *testing.T) {
	shutdown, err := InitTracer(context.Background(), TracingConfig{
		ServiceName: "croprisk-test",
		Endpoint:    "localhost:4317",
		Insecure:    true,
	})
	if err != nil {
		t.Fatalf("InitTracer() unexpected error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_ = shutdown(ctx)
}

func TestInitTracer_MissingCAFile(t *testing.T) {
	_, err := InitTracer(context.Background(), TracingConfig{
		ServiceName: "croprisk-test",
		Endpoint:    "collector:4317",
		CAFile:      filepath.Join(t.TempDir(), "missing.pem"),
	})
	if err == nil {
		t.Fatal("expected error for missing CA file")
	}
	if !strings.Contains(err.Error(), "TLS credentials") {
		t.Errorf("error %q does not mention TLS credentials", err)
	}
}
