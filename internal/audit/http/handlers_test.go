package audithttp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odontia/odontia/internal/audit"
	"github.com/odontia/odontia/internal/rbac"
	"github.com/odontia/odontia/internal/tenancy"
)

type stubTimeline struct {
	filters audit.TimelineFilters
	result  audit.Result
}

func (s *stubTimeline) Timeline(_ context.Context, f audit.TimelineFilters) (audit.Result, error) {
	s.filters = f
	return s.result, nil
}

func passThrough(next http.Handler) http.Handler { return next }

func newRouter(h *Handler) chi.Router {
	r := chi.NewRouter()
	h.MountRoutes(r, passThrough)
	return r
}

func fixedHandler(svc TimelineService) *Handler {
	h := NewHandler(nil, svc)
	h.now = func() time.Time { return time.Date(2026, 10, 16, 15, 0, 0, 0, time.UTC) }
	return h
}

func withScope(req *http.Request, tc tenancy.Context) *http.Request {
	ctx := rbac.WithPrincipal(req.Context(), &rbac.Principal{ID: tc.UserID, Role: tc.Role, TenantID: tc.TenantID})
	return req.WithContext(tenancy.WithContext(ctx, tc))
}

func TestTimelineDefaults(t *testing.T) {
	svc := &stubTimeline{result: audit.Result{Rows: []audit.Entry{{Operation: "patients.read"}}, Paging: audit.PagingInfo{Page: 1, PageSize: 20}}}
	router := newRouter(fixedHandler(svc))

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, withScope(httptest.NewRequest(http.MethodGet, "/audit/decisions", nil),
		tenancy.Context{UserID: "root", Role: rbac.RoleSuperAdmin, IsSuperAdmin: true}))
	require.Equal(t, http.StatusOK, rr.Code)

	assert.Equal(t, time.Date(2026, 10, 9, 0, 0, 0, 0, time.UTC), svc.filters.From)
	assert.Equal(t, time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC), svc.filters.To)
	assert.Equal(t, 1, svc.filters.Page)
	assert.Equal(t, 20, svc.filters.PageSize)

	var body audit.Result
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	require.Len(t, body.Rows, 1)
	assert.Equal(t, "patients.read", body.Rows[0].Operation)
}

func TestTimelineFilters(t *testing.T) {
	svc := &stubTimeline{}
	router := newRouter(fixedHandler(svc))

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet,
		"/audit/decisions?from=2026-09-01&to=2026-09-30&tenant=t9&principal=u1&operation=patients.delete&denied=true&page=3&page_size=500", nil)
	router.ServeHTTP(rr, withScope(req, tenancy.Context{UserID: "root", Role: rbac.RoleSuperAdmin, IsSuperAdmin: true}))
	require.Equal(t, http.StatusOK, rr.Code)

	assert.Equal(t, "t9", svc.filters.TenantID)
	assert.Equal(t, "u1", svc.filters.PrincipalID)
	assert.Equal(t, "patients.delete", svc.filters.Operation)
	assert.True(t, svc.filters.DeniedOnly)
	assert.Equal(t, 3, svc.filters.Page)
	assert.Equal(t, maxPageSize, svc.filters.PageSize)
}

func TestTimelineForcesCallerTenant(t *testing.T) {
	svc := &stubTimeline{}
	router := newRouter(fixedHandler(svc))

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/audit/decisions?tenant=other", nil)
	router.ServeHTTP(rr, withScope(req, tenancy.Context{UserID: "s1", Role: rbac.RoleStaffAssistant, TenantID: "t1"}))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "t1", svc.filters.TenantID)
}

func TestTimelineValidation(t *testing.T) {
	router := newRouter(fixedHandler(&stubTimeline{}))
	scope := tenancy.Context{UserID: "root", Role: rbac.RoleSuperAdmin, IsSuperAdmin: true}

	for _, query := range []string{
		"to=yesterday",
		"from=2026-13-01",
		"from=2026-10-10&to=2026-10-01",
		"from=2025-01-01&to=2026-01-01",
		"page=0",
		"page_size=abc",
	} {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, withScope(httptest.NewRequest(http.MethodGet, "/audit/decisions?"+query, nil), scope))
		assert.Equal(t, http.StatusBadRequest, rr.Code, query)
	}
}

func TestTimelineWithoutService(t *testing.T) {
	router := newRouter(NewHandler(nil, nil))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/audit/decisions", nil))
	assert.Equal(t, http.StatusNotImplemented, rr.Code)
}
