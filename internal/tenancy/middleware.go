package tenancy

import (
	"log/slog"
	"net/http"

	"github.com/odontia/odontia/internal/platform/httpx"
	"github.com/odontia/odontia/internal/rbac"
	"github.com/odontia/odontia/internal/shared"
)

// Middleware resolves the tenant of the authenticated principal and attaches
// the Context to the request. Requests without a principal pass through
// untouched so the policy gate can refuse them uniformly. A denial is attached
// instead of a Context and answered by the gate, which also records it; every
// route behind this middleware must be guarded. Lookup failures are answered
// here with a 500.
func (r *Resolver) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		p := rbac.PrincipalFromContext(req.Context())
		if p == nil {
			next.ServeHTTP(w, req)
			return
		}
		tc, err := r.Resolve(req.Context(), *p)
		if err != nil {
			if shared.IsDenial(err) {
				r.logger.Debug("tenant resolution denied",
					slog.String("kind", string(shared.KindOf(err))),
					slog.String("principal", p.ID),
					slog.String("tenant", p.TenantID),
				)
				next.ServeHTTP(w, req.WithContext(WithDenial(req.Context(), err)))
				return
			}
			r.logger.Error("tenant resolution failed", slog.Any("error", err), slog.String("tenant", p.TenantID))
			httpx.RespondError(w, err)
			return
		}
		next.ServeHTTP(w, req.WithContext(WithContext(req.Context(), tc)))
	})
}
