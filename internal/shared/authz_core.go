package shared

// Core platform operations.
const (
	OpAbilityView = "ability.view"
	OpAuthzCheck  = "authz.check"

	OpUsersList   = "users.list"
	OpUsersRead   = "users.read"
	OpUsersUpdate = "users.update"

	OpTenantRead   = "tenant.read"
	OpTenantUpdate = "tenant.update"
	OpTenantsAdmin = "tenants.admin"

	OpDecisionsAudit = "decisions.audit"
)

// CoreOperations lists all operations related to the core platform.
func CoreOperations() []string {
	return []string{
		OpAbilityView,
		OpAuthzCheck,
		OpUsersList,
		OpUsersRead,
		OpUsersUpdate,
		OpTenantRead,
		OpTenantUpdate,
		OpTenantsAdmin,
		OpDecisionsAudit,
	}
}
