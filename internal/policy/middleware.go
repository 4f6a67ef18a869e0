package policy

import (
	"log/slog"
	"net/http"

	"github.com/odontia/odontia/internal/platform/httpx"
	"github.com/odontia/odontia/internal/rbac"
	"github.com/odontia/odontia/internal/shared"
	"github.com/odontia/odontia/internal/tenancy"
)

// Require guards a route with the requirement registered for operation. It
// panics when operation is unknown so a missing policy fails at startup
// instead of leaving a route open.
func (g *Gate) Require(operation string) func(http.Handler) http.Handler {
	if _, err := g.registry.Lookup(operation); err != nil {
		panic(err)
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			p := rbac.PrincipalFromContext(ctx)
			if p != nil {
				if err := scopeDenial(r, p); err != nil {
					g.report(ctx, p, operation, err)
					httpx.RespondError(w, err)
					return
				}
			}
			if err := g.EnforceOperation(ctx, p, operation); err != nil {
				if !shared.IsDenial(err) {
					g.logger.Error("authorization check failed", slog.Any("error", err), slog.String("operation", operation))
				}
				httpx.RespondError(w, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// scopeDenial returns the denial left by tenant resolution, or
// MissingTenantContext when resolution never ran for p.
func scopeDenial(r *http.Request, p *rbac.Principal) error {
	if err := tenancy.DenialFromContext(r.Context()); err != nil {
		return err
	}
	if !hasTenantScope(r, p) {
		return shared.MissingTenantContext()
	}
	return nil
}

// hasTenantScope reports whether the tenant resolver ran for this principal.
// The ability must only ever be built after a successful resolution.
func hasTenantScope(r *http.Request, p *rbac.Principal) bool {
	tc, ok := tenancy.FromContext(r.Context())
	if !ok || tc.UserID != p.ID {
		return false
	}
	return tc.IsSuperAdmin || tc.TenantID != ""
}
