package tenancy

import "github.com/odontia/odontia/internal/rbac"

// SubscriptionStatus is the billing state of a tenant.
type SubscriptionStatus string

const (
	SubscriptionActive    SubscriptionStatus = "active"
	SubscriptionTrialing  SubscriptionStatus = "trialing"
	SubscriptionPastDue   SubscriptionStatus = "past_due"
	SubscriptionCancelled SubscriptionStatus = "cancelled"
)

// Operable reports whether requests may run against a tenant in this state.
// Only a cancelled subscription blocks.
func (s SubscriptionStatus) Operable() bool {
	return s != SubscriptionCancelled
}

// Tenant is the minimal projection the resolver needs.
type Tenant struct {
	ID                 string
	SubscriptionStatus SubscriptionStatus
}

// Context is the validated tenant scope of a single request. When IsSuperAdmin
// is set TenantID is empty and no tenant checks apply.
type Context struct {
	UserID       string
	Role         rbac.Role
	TenantID     string
	IsSuperAdmin bool
}
