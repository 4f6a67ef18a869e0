package observability

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/odontia/odontia/internal/shared"
)

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()
	rr := httptest.NewRecorder()
	m.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rr.Code)
	}
	return rr.Body.String()
}

func TestMetricsMiddlewareRecordsRequest(t *testing.T) {
	metrics := NewMetrics()

	handler := metrics.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	routeCtx := chi.NewRouteContext()
	routeCtx.RoutePatterns = append(routeCtx.RoutePatterns, "/test")

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx)
	req = req.WithContext(ctx)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusTeapot {
		t.Fatalf("expected status %d, got %d", http.StatusTeapot, rr.Code)
	}

	body := scrape(t, metrics)
	if !strings.Contains(body, "odontia_http_requests_total{code=\"418\",route=\"/test\"} 1") {
		t.Fatalf("expected metrics to record request, got: %s", body)
	}
	if !strings.Contains(body, "odontia_http_request_duration_seconds_bucket{route=\"/test\"") {
		t.Fatalf("expected duration histogram to be present, got: %s", body)
	}
}

func TestObserveDecision(t *testing.T) {
	metrics := NewMetrics()
	metrics.ObserveDecision("patients.read", true, "")
	metrics.ObserveDecision("patients.delete", false, shared.DenialInsufficientPermission)
	metrics.ObserveDecision("patients.delete", false, shared.DenialInsufficientPermission)

	body := scrape(t, metrics)
	if !strings.Contains(body, `odontia_authz_decisions_total{kind="",operation="patients.read",outcome="allow"} 1`) {
		t.Fatalf("missing allow sample: %s", body)
	}
	if !strings.Contains(body, `odontia_authz_decisions_total{kind="insufficient_permission",operation="patients.delete",outcome="deny"} 2`) {
		t.Fatalf("missing deny sample: %s", body)
	}
}

func TestObserveTenantLookup(t *testing.T) {
	metrics := NewMetrics()
	metrics.ObserveTenantLookup("found", 3*time.Millisecond)

	body := scrape(t, metrics)
	if !strings.Contains(body, `odontia_tenant_lookup_duration_seconds_count{outcome="found"} 1`) {
		t.Fatalf("missing lookup sample: %s", body)
	}
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	m.ObserveDecision("x", true, "")
	m.ObserveTenantLookup("found", time.Millisecond)
	rr := httptest.NewRecorder()
	m.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rr.Code)
	}
}
