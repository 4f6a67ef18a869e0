package policy

import (
	"github.com/odontia/odontia/internal/rbac"
	"github.com/odontia/odontia/internal/shared"
)

// DefaultRegistry returns the requirements of every operation the API exposes.
func DefaultRegistry() *Registry {
	r := NewRegistry()

	// Open to any authenticated principal with a valid tenant scope.
	r.Register(shared.OpAbilityView)
	r.Register(shared.OpAuthzCheck)

	r.Register(shared.OpUsersList, Can(rbac.ActionRead, rbac.SubjectUser))
	r.Register(shared.OpUsersRead, Can(rbac.ActionRead, rbac.SubjectUser))
	r.Register(shared.OpUsersUpdate, Can(rbac.ActionUpdate, rbac.SubjectUser))
	r.Register(shared.OpTenantRead, Can(rbac.ActionRead, rbac.SubjectTenant))
	r.Register(shared.OpTenantUpdate, Can(rbac.ActionUpdate, rbac.SubjectTenant))
	r.Register(shared.OpTenantsAdmin, Can(rbac.ActionManage, rbac.SubjectTenant))
	r.Register(shared.OpDecisionsAudit, Can(rbac.ActionManage, rbac.SubjectAll))

	r.Register(shared.OpPatientsList, Can(rbac.ActionRead, rbac.SubjectPatient))
	r.Register(shared.OpPatientsRead, Can(rbac.ActionRead, rbac.SubjectPatient))
	r.Register(shared.OpPatientsCreate, Can(rbac.ActionCreate, rbac.SubjectPatient))
	r.Register(shared.OpPatientsUpdate, Can(rbac.ActionUpdate, rbac.SubjectPatient))
	r.Register(shared.OpPatientsDelete, Can(rbac.ActionDelete, rbac.SubjectPatient))

	r.Register(shared.OpAppointmentsList, Can(rbac.ActionRead, rbac.SubjectAppointment))
	r.Register(shared.OpAppointmentsCreate, Can(rbac.ActionCreate, rbac.SubjectAppointment))
	r.Register(shared.OpAppointmentsUpdate, Can(rbac.ActionUpdate, rbac.SubjectAppointment))
	r.Register(shared.OpAppointmentsDelete, Can(rbac.ActionDelete, rbac.SubjectAppointment))

	r.Register(shared.OpTreatmentPlansList, Can(rbac.ActionRead, rbac.SubjectTreatmentPlan))
	r.Register(shared.OpTreatmentPlansCreate, Can(rbac.ActionCreate, rbac.SubjectTreatmentPlan))
	r.Register(shared.OpTreatmentPlansUpdate, Can(rbac.ActionUpdate, rbac.SubjectTreatmentPlan))

	r.Register(shared.OpDocumentsList, Can(rbac.ActionRead, rbac.SubjectDocument))
	r.Register(shared.OpDocumentsUpload, Can(rbac.ActionCreate, rbac.SubjectDocument))

	r.Register(shared.OpOdontogramRead, Can(rbac.ActionRead, rbac.SubjectOdontogram))
	r.Register(shared.OpOdontogramUpdate, Can(rbac.ActionUpdate, rbac.SubjectOdontogram))

	r.Register(shared.OpClinicsList, Can(rbac.ActionRead, rbac.SubjectClinic))
	r.Register(shared.OpOperatoriesList, Can(rbac.ActionRead, rbac.SubjectOperatory))
	r.Register(shared.OpNotificationsSend, Can(rbac.ActionCreate, rbac.SubjectNotification))

	r.Register(shared.OpInvoicesList, Can(rbac.ActionRead, rbac.SubjectInvoice))
	r.Register(shared.OpInvoicesRead, Can(rbac.ActionRead, rbac.SubjectInvoice))
	r.Register(shared.OpInvoicesCreate, Can(rbac.ActionCreate, rbac.SubjectInvoice))
	r.Register(shared.OpInvoicesUpdate, Can(rbac.ActionUpdate, rbac.SubjectInvoice))

	// Payments have no subject of their own; they move an invoice balance.
	r.Register(shared.OpPaymentsList, Can(rbac.ActionRead, rbac.SubjectInvoice))
	r.Register(shared.OpPaymentsCreate,
		Can(rbac.ActionRead, rbac.SubjectInvoice),
		Can(rbac.ActionUpdate, rbac.SubjectInvoice),
	)

	return r
}
