package e2e

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odontia/odontia/internal/app"
	"github.com/odontia/odontia/internal/audit"
	audithttp "github.com/odontia/odontia/internal/audit/http"
	"github.com/odontia/odontia/internal/auth"
	"github.com/odontia/odontia/internal/observability"
	"github.com/odontia/odontia/internal/policy"
	"github.com/odontia/odontia/internal/shared"
	"github.com/odontia/odontia/internal/tenancy"
	"github.com/odontia/odontia/jobs"
)

const secret = "e2e-secret"

type users map[string]*auth.Record

func (u users) FindPrincipal(_ context.Context, id string) (*auth.Record, error) {
	if rec, ok := u[id]; ok {
		return rec, nil
	}
	return nil, shared.ErrNotFound
}

type tenants map[string]tenancy.SubscriptionStatus

func (t tenants) FindTenant(_ context.Context, id string) (*tenancy.Tenant, error) {
	status, ok := t[id]
	if !ok {
		return nil, nil
	}
	return &tenancy.Tenant{ID: id, SubscriptionStatus: status}, nil
}

// memoryDecisions is an in-memory audit.Repository.
type memoryDecisions struct {
	entries []audit.Entry
}

func (m *memoryDecisions) InsertDecision(_ context.Context, e audit.Entry) error {
	for _, existing := range m.entries {
		if existing.ID == e.ID {
			return nil
		}
	}
	m.entries = append(m.entries, e)
	return nil
}

func (m *memoryDecisions) ListDecisions(_ context.Context, p audit.ListParams) ([]audit.Entry, error) {
	var out []audit.Entry
	for _, e := range m.entries {
		if p.TenantID != "" && e.TenantID != p.TenantID {
			continue
		}
		if p.DeniedOnly && e.Allowed {
			continue
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].At.After(out[j].At) })
	if p.Offset >= len(out) {
		return nil, nil
	}
	out = out[p.Offset:]
	if len(out) > p.Limit {
		out = out[:p.Limit]
	}
	return out, nil
}

func (m *memoryDecisions) DeleteDecisionsBefore(_ context.Context, before time.Time) (int64, error) {
	var kept []audit.Entry
	for _, e := range m.entries {
		if !e.At.Before(before) {
			kept = append(kept, e)
		}
	}
	n := int64(len(m.entries) - len(kept))
	m.entries = kept
	return n, nil
}

func token(t *testing.T, sub string) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   sub,
		Issuer:    "odontia",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte(secret))
	require.NoError(t, err)
	return "Bearer " + s
}

func TestDecisionsFlowFromGateToTimeline(t *testing.T) {
	mr := miniredis.RunT(t)
	redisOpts := asynq.RedisClientOpt{Addr: mr.Addr()}
	queue, err := jobs.NewClient(redisOpts)
	require.NoError(t, err)
	t.Cleanup(func() { _ = queue.Close() })

	store := &memoryDecisions{}
	auditService := audit.NewService(store)
	metrics := observability.NewMetrics()
	gate := policy.NewGate(policy.DefaultRegistry(), policy.WithRecorder(queue), policy.WithObserver(metrics))
	authSvc := auth.NewService(users{
		"p1":   {ID: "p1", Role: "patient", TenantID: "t1", IsActive: true},
		"root": {ID: "root", Role: "super_admin", IsActive: true},
	}, secret, "odontia")

	router := app.NewRouter(app.RouterParams{
		Config:         &app.Config{AppEnv: "test", RateLimitPerMinute: 1000},
		Metrics:        metrics,
		Authenticate:   auth.Middleware(authSvc, nil),
		Tenancy:        tenancy.NewResolver(tenants{"t1": tenancy.SubscriptionActive}, tenancy.WithObserver(metrics)),
		Gate:           gate,
		AbilityHandler: policy.NewAbilityHandler(nil, gate),
		AuditHandler:   audithttp.NewHandler(nil, auditService),
	})

	call := func(method, path, user string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, nil)
		if user != "" {
			req.Header.Set("Authorization", token(t, user))
		}
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		return rr
	}

	require.Equal(t, http.StatusForbidden, call(http.MethodDelete, "/api/v1/patients/42", "p1").Code)
	require.Equal(t, http.StatusNotImplemented, call(http.MethodGet, "/api/v1/invoices", "p1").Code)

	// Drain the audit queue the way the worker would.
	inspector := asynq.NewInspector(redisOpts)
	t.Cleanup(func() { _ = inspector.Close() })
	pending, err := inspector.ListPendingTasks(jobs.QueueAudit)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	handle := jobs.NewDecisionAuditHandler(auditService, nil)
	for _, info := range pending {
		require.NoError(t, handle(context.Background(), asynq.NewTask(info.Type, info.Payload)))
	}
	require.Len(t, store.entries, 2)

	// Only super admins reach the timeline.
	require.Equal(t, http.StatusForbidden, call(http.MethodGet, "/api/v1/audit/decisions", "p1").Code)
	rr := call(http.MethodGet, "/api/v1/audit/decisions?tenant=t1&denied=true", "root")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"operation":"patients.delete"`)
	assert.Contains(t, rr.Body.String(), `"kind":"insufficient_permission"`)
	assert.NotContains(t, rr.Body.String(), `"operation":"invoices.list"`)
}
