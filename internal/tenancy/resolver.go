package tenancy

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/odontia/odontia/internal/rbac"
	"github.com/odontia/odontia/internal/shared"
)

// Lookup reads tenant records. FindTenant returns (nil, nil) when no tenant
// with id exists.
type Lookup interface {
	FindTenant(ctx context.Context, id string) (*Tenant, error)
}

// LookupObserver receives the latency of every tenant lookup.
type LookupObserver interface {
	ObserveTenantLookup(outcome string, d time.Duration)
}

// Resolver establishes the tenant scope of a request.
type Resolver struct {
	lookup   Lookup
	observer LookupObserver
	logger   *slog.Logger
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithLogger sets the resolver logger.
func WithLogger(l *slog.Logger) ResolverOption {
	return func(r *Resolver) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithObserver records lookup latency.
func WithObserver(o LookupObserver) ResolverOption {
	return func(r *Resolver) {
		r.observer = o
	}
}

// NewResolver builds a Resolver backed by lookup.
func NewResolver(lookup Lookup, opts ...ResolverOption) *Resolver {
	r := &Resolver{lookup: lookup, logger: slog.Default()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve validates the tenant of p and returns its Context. Super admins skip
// the lookup entirely. Every other principal costs exactly one lookup.
func (r *Resolver) Resolve(ctx context.Context, p rbac.Principal) (Context, error) {
	if p.IsSuperAdmin() {
		return Context{UserID: p.ID, Role: p.Role, IsSuperAdmin: true}, nil
	}
	if p.TenantID == "" {
		return Context{}, shared.MissingTenantContext()
	}
	if err := ctx.Err(); err != nil {
		return Context{}, fmt.Errorf("tenancy: resolve: %w", err)
	}

	start := time.Now()
	tenant, err := r.lookup.FindTenant(ctx, p.TenantID)
	r.observe(tenant, err, time.Since(start))
	if err != nil {
		return Context{}, fmt.Errorf("tenancy: find tenant: %w", err)
	}
	// The lookup may have raced a cancellation; never hand out a scope then.
	if err := ctx.Err(); err != nil {
		return Context{}, fmt.Errorf("tenancy: resolve: %w", err)
	}
	if tenant == nil {
		return Context{}, shared.TenantNotFound()
	}
	if !tenant.SubscriptionStatus.Operable() {
		return Context{}, shared.SubscriptionInactive()
	}
	return Context{UserID: p.ID, Role: p.Role, TenantID: tenant.ID}, nil
}

func (r *Resolver) observe(tenant *Tenant, err error, d time.Duration) {
	if r.observer == nil {
		return
	}
	outcome := "found"
	switch {
	case err != nil:
		outcome = "error"
	case tenant == nil:
		outcome = "missing"
	}
	r.observer.ObserveTenantLookup(outcome, d)
}
