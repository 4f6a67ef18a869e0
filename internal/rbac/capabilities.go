package rbac

// staffDefaults is shared by every flexible staff role.
var staffDefaults = []Grant{
	{ActionRead, SubjectPatient},
	{ActionRead, SubjectClinic},
	{ActionRead, SubjectOperatory},
	{ActionRead, SubjectAppointment},
	{ActionCreate, SubjectAppointment},
	{ActionUpdate, SubjectAppointment},
}

var dentistDefaults = []Grant{
	{ActionManage, SubjectPatient},
	{ActionManage, SubjectAppointment},
	{ActionManage, SubjectTreatmentPlan},
	{ActionManage, SubjectInvoice},
	{ActionManage, SubjectDocument},
	{ActionManage, SubjectOdontogram},
	{ActionManage, SubjectNotification},
	{ActionManage, SubjectUser},
	{ActionRead, SubjectClinic},
	{ActionRead, SubjectOperatory},
	{ActionRead, SubjectTenant},
	{ActionUpdate, SubjectTenant},
}

// Patients only get kind-level access here. Ownership of individual rows is
// filtered by the data-access layer.
var patientDefaults = []Grant{
	{ActionRead, SubjectAppointment},
	{ActionRead, SubjectTreatmentPlan},
	{ActionRead, SubjectInvoice},
	{ActionRead, SubjectDocument},
	{ActionRead, SubjectOdontogram},
	{ActionRead, SubjectUser},
	{ActionUpdate, SubjectUser},
}

var superAdminDefaults = []Grant{
	{ActionManage, SubjectAll},
}

// DefaultGrants returns a copy of the static grants for role. Unknown roles get
// nothing.
func DefaultGrants(role Role) []Grant {
	var src []Grant
	switch role {
	case RoleSuperAdmin:
		src = superAdminDefaults
	case RoleDentist:
		src = dentistDefaults
	case RolePatient:
		src = patientDefaults
	case RoleStaffReceptionist, RoleStaffAssistant, RoleStaffBilling:
		src = staffDefaults
	default:
		return nil
	}
	out := make([]Grant, len(src))
	copy(out, src)
	return out
}

// AllowsCustomGrants reports whether per-principal grants are merged for role.
func AllowsCustomGrants(role Role) bool {
	switch role {
	case RoleStaffReceptionist, RoleStaffAssistant, RoleStaffBilling:
		return true
	case RoleSuperAdmin, RoleDentist, RolePatient:
		return false
	}
	return false
}
