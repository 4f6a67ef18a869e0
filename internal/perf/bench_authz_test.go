package perf

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"github.com/odontia/odontia/internal/policy"
	"github.com/odontia/odontia/internal/rbac"
	"github.com/odontia/odontia/internal/shared"
	"github.com/odontia/odontia/internal/tenancy"
)

type staticTenants struct{}

func (staticTenants) FindTenant(_ context.Context, id string) (*tenancy.Tenant, error) {
	return &tenancy.Tenant{ID: id, SubscriptionStatus: tenancy.SubscriptionActive}, nil
}

var staffWithGrants = rbac.Principal{
	ID:       "s1",
	Role:     rbac.RoleStaffBilling,
	TenantID: "t1",
	Grants: []rbac.Grant{
		{Action: rbac.ActionRead, Subject: rbac.SubjectInvoice},
		{Action: rbac.ActionUpdate, Subject: rbac.SubjectInvoice},
		{Action: rbac.ActionCreate, Subject: rbac.SubjectNotification},
	},
}

func guardedHandler() http.Handler {
	gate := policy.NewGate(policy.DefaultRegistry())
	resolver := tenancy.NewResolver(staticTenants{})
	h := gate.Require(shared.OpPaymentsCreate)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	return resolver.Middleware(h)
}

func newGuardedRequest() *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/payments", nil)
	return req.WithContext(rbac.WithPrincipal(req.Context(), &staffWithGrants))
}

func TestEnforcementLatencyTarget(t *testing.T) {
	h := guardedHandler()
	samples := make([]time.Duration, 0, 200)
	for i := 0; i < 200; i++ {
		rr := httptest.NewRecorder()
		start := time.Now()
		h.ServeHTTP(rr, newGuardedRequest())
		samples = append(samples, time.Since(start))
		if rr.Code != http.StatusNoContent {
			t.Fatalf("unexpected status %d", rr.Code)
		}
	}
	if p95 := percentile95(samples); p95 > 5*time.Millisecond {
		t.Fatalf("enforcement latency regression: p95=%s", p95)
	}
}

func BenchmarkBuildAbility(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = rbac.Build(staffWithGrants)
	}
}

func BenchmarkEnforceOperation(b *testing.B) {
	gate := policy.NewGate(policy.DefaultRegistry())
	ctx := context.Background()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := gate.EnforceOperation(ctx, &staffWithGrants, shared.OpPaymentsCreate); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkGuardedRequest(b *testing.B) {
	h := guardedHandler()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		h.ServeHTTP(httptest.NewRecorder(), newGuardedRequest())
	}
}

func percentile95(samples []time.Duration) time.Duration {
	if len(samples) == 0 {
		return 0
	}
	sorted := append([]time.Duration(nil), samples...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	index := int(float64(len(sorted)-1) * 0.95)
	return sorted[index]
}
