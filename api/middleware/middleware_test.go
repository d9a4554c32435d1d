package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/grocerly/grocerly-backend/pkg/metrics"
)

func TestRequestIDGeneratesAndEchoes(t *testing.T) {
	var seen string
	handler := RequestID(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = w.Header().Get("X-Request-Id")
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/products", nil))

	if seen == "" {
		t.Fatal("expected generated request id")
	}

	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	req.Header.Set("X-Request-Id", "fixed-id")
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if got := w.Header().Get("X-Request-Id"); got != "fixed-id" {
		t.Fatalf("expected given id echoed, got %q", got)
	}
}

func TestRecovererTurnsPanicInto500(t *testing.T) {
	handler := Recoverer(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/products", nil))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("expected json error body, got %q", ct)
	}
}

func TestMetricsObservesRequests(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewHTTPMetrics(reg)

	handler := Metrics(m)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/cart", nil))

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	var sawCounter bool
	for _, fam := range families {
		if fam.GetName() == "http_requests_total" {
			sawCounter = true
			if got := len(fam.GetMetric()); got != 1 {
				t.Fatalf("expected one labelled series, got %d", got)
			}
			if got := fam.GetMetric()[0].GetCounter().GetValue(); got != 1 {
				t.Fatalf("expected one observation, got %v", got)
			}
		}
	}
	if !sawCounter {
		t.Fatal("expected http_requests_total family")
	}
}
