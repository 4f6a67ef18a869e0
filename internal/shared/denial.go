package shared

import "errors"

// DenialKind classifies why a request was refused. It is for logs and metrics
// only; callers see the same forbidden response for every kind.
type DenialKind string

const (
	DenialUnauthenticated        DenialKind = "unauthenticated"
	DenialMissingTenantContext   DenialKind = "missing_tenant_context"
	DenialTenantNotFound         DenialKind = "tenant_not_found"
	DenialSubscriptionInactive   DenialKind = "subscription_inactive"
	DenialInsufficientPermission DenialKind = "insufficient_permission"
)

// Denial is a terminal authorization refusal.
type Denial struct {
	Kind    DenialKind
	Message string
}

// Error implements the error interface.
func (d *Denial) Error() string {
	return "forbidden: " + d.Message
}

// Unwrap lets errors.Is(err, ErrForbidden) match every denial.
func (d *Denial) Unwrap() error {
	return ErrForbidden
}

func newDenial(kind DenialKind, message string) *Denial {
	return &Denial{Kind: kind, Message: message}
}

// Unauthenticated is returned when no principal reached the gate.
func Unauthenticated() *Denial {
	return newDenial(DenialUnauthenticated, "not authenticated")
}

// MissingTenantContext is returned when a tenant-scoped principal has no tenant.
func MissingTenantContext() *Denial {
	return newDenial(DenialMissingTenantContext, "no tenant context")
}

// TenantNotFound is returned when the tenant id does not resolve.
func TenantNotFound() *Denial {
	return newDenial(DenialTenantNotFound, "tenant not found")
}

// SubscriptionInactive is returned when the tenant subscription is cancelled.
func SubscriptionInactive() *Denial {
	return newDenial(DenialSubscriptionInactive, "subscription cancelled")
}

// InsufficientPermission is returned when the ability fails a requirement.
func InsufficientPermission() *Denial {
	return newDenial(DenialInsufficientPermission, "insufficient permission")
}

// KindOf extracts the denial kind from err. It returns an empty kind when err
// is not a denial.
func KindOf(err error) DenialKind {
	var d *Denial
	if errors.As(err, &d) {
		return d.Kind
	}
	return ""
}

// IsDenial reports whether err is or wraps a Denial.
func IsDenial(err error) bool {
	return KindOf(err) != ""
}
