package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func metricCounterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	if err := c.Write(&m); err != nil {
		t.Fatalf("counter Write() error: %v", err)
	}
	if m.Counter == nil {
		t.Fatal("expected counter metric to have Counter field")
	}
	return m.GetCounter().GetValue()
}

func metricGaugeValue(t *testing.T, g prometheus.Gauge) float64 {
	t.Helper()
	var m dto.Metric
	if err := g.Write(&m); err != nil {
		t.Fatalf("gauge Write() error: %v", err)
	}
	if m.Gauge == nil {
		t.Fatal("expected gauge metric to have Gauge field")
	}
	return m.GetGauge().GetValue()
}

func metricHistogramCount(t *testing.T, o prometheus.Observer) uint64 {
	t.Helper()
	metric, ok := o.(prometheus.Metric)
	if !ok {
		t.Fatalf("observer %T does not implement prometheus.Metric", o)
	}
	var m dto.Metric
	if err := metric.Write(&m); err != nil {
		t.Fatalf("histogram Write() error: %v", err)
	}
	if m.Histogram == nil {
		t.Fatal("expected histogram metric to have Histogram field")
	}
	return m.GetHistogram().GetSampleCount()
}

func newTestRouter(mw ...func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(mw...)
	r.Get("/routes/{name}", func(w http.ResponseWriter, r *http.Request) {
		if chi.URLParam(r, "name") == "missing" {
			http.Error(w, "no such route", http.StatusNotFound)
			return
		}
		w.Write([]byte("ok"))
	})
	r.Post("/parse", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
	})
	r.Get("/boom", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	r.Get("/silent", func(w http.ResponseWriter, r *http.Request) {})
	return r
}

func serve(h http.Handler, method, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, path, nil))
	return rec
}

func TestMetrics_Middleware(t *testing.T) {
	m := NewMetrics(WithRegistry(prometheus.NewRegistry()))
	r := newTestRouter(m.Middleware)

	serve(r, http.MethodGet, "/routes/user")
	serve(r, http.MethodGet, "/routes/home")
	serve(r, http.MethodGet, "/routes/missing")
	serve(r, http.MethodPost, "/parse")
	serve(r, http.MethodGet, "/boom")
	serve(r, http.MethodGet, "/silent")
	serve(r, http.MethodGet, "/nowhere")

	tests := []struct {
		route, method, code string
		want                float64
	}{
		{"/routes/{name}", "GET", "200", 2},
		{"/routes/{name}", "GET", "404", 1},
		{"/parse", "POST", "422", 1},
		{"/boom", "GET", "500", 1},
		{"/silent", "GET", "200", 1},
		{"unmatched", "GET", "404", 1},
	}
	for _, tt := range tests {
		got := metricCounterValue(t, m.requestsTotal.WithLabelValues(tt.route, tt.method, tt.code))
		if got != tt.want {
			t.Errorf("requests_total(%s,%s,%s) = %v, want %v", tt.route, tt.method, tt.code, got, tt.want)
		}
	}

	errTests := []struct {
		route, typ string
		want       float64
	}{
		{"/routes/{name}", "not_found", 1},
		{"/parse", "rejected", 1},
		{"/boom", "internal", 1},
		{"/silent", "internal", 0},
	}
	for _, tt := range errTests {
		got := metricCounterValue(t, m.requestErrors.WithLabelValues(tt.route, tt.typ))
		if got != tt.want {
			t.Errorf("request_errors_total(%s,%s) = %v, want %v", tt.route, tt.typ, got, tt.want)
		}
	}

	if got := metricHistogramCount(t, m.requestDuration.WithLabelValues("/routes/{name}", "GET")); got != 3 {
		t.Errorf("request_duration_seconds count = %d, want 3", got)
	}
	if got := metricGaugeValue(t, m.inFlight); got != 0 {
		t.Errorf("requests_in_flight = %v, want 0", got)
	}
}

func TestMetrics_RecordWebSocket(t *testing.T) {
	m := NewMetrics(WithRegistry(prometheus.NewRegistry()))
	m.RecordWebSocket("connect")
	m.RecordWebSocket("message")
	m.RecordWebSocket("message")

	if got := metricCounterValue(t, m.wsEvents.WithLabelValues("message")); got != 2 {
		t.Errorf("websocket_events_total(message) = %v, want 2", got)
	}

	var nilMetrics *Metrics
	nilMetrics.RecordWebSocket("error")
}

func TestNewMetrics_Options(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(
		WithRegistry(reg),
		WithNamespace("acme"),
		WithSubsystem("api"),
		WithConstLabels(prometheus.Labels{"env": "test"}),
		WithBuckets([]float64{0.5}),
	)
	m.RecordWebSocket("connect")

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather error: %v", err)
	}
	for _, f := range families {
		if f.GetName() == "acme_api_websocket_events_total" {
			return
		}
	}
	t.Error("acme_api_websocket_events_total not registered")
}

func TestCategorizeStatus(t *testing.T) {
	tests := map[int]string{
		200: "",
		302: "",
		400: "bad_request",
		404: "not_found",
		405: "method_not_allowed",
		422: "rejected",
		429: "client",
		500: "internal",
		503: "internal",
	}
	for status, want := range tests {
		if got := categorizeStatus(status); got != want {
			t.Errorf("categorizeStatus(%d) = %q, want %q", status, got, want)
		}
	}
}
