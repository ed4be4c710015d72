package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/brewopshq/brewhaus-backend/pkg/logger"
	"github.com/brewopshq/brewhaus-backend/pkg/metrics"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func TestRequestIDGeneratesWhenAbsent(t *testing.T) {
	handler := RequestID(testLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/", nil))

	if resp.Header().Get("X-Request-Id") == "" {
		t.Fatal("expected generated request id header")
	}
}

func TestRequestIDEchoesProvided(t *testing.T) {
	handler := RequestID(testLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-Id", "abc-123")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if got := resp.Header().Get("X-Request-Id"); got != "abc-123" {
		t.Fatalf("unexpected request id %q", got)
	}
}

func TestRecovererWritesInternalError(t *testing.T) {
	handler := Recoverer(testLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/", nil))

	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("unexpected status %d", resp.Code)
	}
}

func TestMetricsRecordsRoutePattern(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewHTTPMetrics(reg)

	r := chi.NewRouter()
	r.Use(Metrics(m))
	r.Get("/grn/view/{grn_id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/grn/view/123", nil))

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	found := false
	for _, mf := range families {
		if mf.GetName() != "http_requests_total" {
			continue
		}
		for _, metric := range mf.GetMetric() {
			for _, label := range metric.GetLabel() {
				if label.GetName() == "route" && label.GetValue() == "/grn/view/{grn_id}" {
					found = true
				}
			}
		}
	}
	if !found {
		t.Fatal("expected request counted under the chi route pattern")
	}
}
