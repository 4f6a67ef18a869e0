package tenancy

import "context"

type tenantContextKey struct{}

// WithContext stores the resolved tenant scope in ctx.
func WithContext(ctx context.Context, tc Context) context.Context {
	return context.WithValue(ctx, tenantContextKey{}, tc)
}

// FromContext returns the tenant scope attached by the resolver middleware.
func FromContext(ctx context.Context) (Context, bool) {
	tc, ok := ctx.Value(tenantContextKey{}).(Context)
	return tc, ok
}

type denialContextKey struct{}

// WithDenial records a tenant resolution denial for the policy gate to report
// and answer.
func WithDenial(ctx context.Context, err error) context.Context {
	return context.WithValue(ctx, denialContextKey{}, err)
}

// DenialFromContext returns the resolution denial attached by the middleware.
func DenialFromContext(ctx context.Context) error {
	err, _ := ctx.Value(denialContextKey{}).(error)
	return err
}
