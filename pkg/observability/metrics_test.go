package observability

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestInitMetricsServesInstruments(t *testing.T) {
	provider, handler, err := InitMetrics(MetricsConfig{ServiceName: "croprisk"})
	if err != nil {
		t.Fatalf("InitMetrics: %v", err)
	}
	defer provider.Shutdown(context.Background()) //nolint:errcheck

	counter, err := provider.Meter("test").Int64Counter("predictions")
	if err != nil {
		t.Fatalf("counter: %v", err)
	}
	counter.Add(context.Background(), 3)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body, _ := io.ReadAll(rec.Body)
	if !strings.Contains(string(body), "croprisk_predictions_total") {
		t.Errorf("metrics output missing counter:\n%s", body)
	}
	if !strings.Contains(string(body), "go_goroutines") {
		t.Errorf("metrics output missing go collector")
	}
}

func TestInitMetricsIsRepeatable(t *testing.T) {
	for i := 0; i < 2; i++ {
		provider, _, err := InitMetrics(MetricsConfig{ServiceName: "croprisk"})
		if err != nil {
			t.Fatalf("InitMetrics call %d: %v", i, err)
		}
		provider.Shutdown(context.Background()) //nolint:errcheck
	}
}
