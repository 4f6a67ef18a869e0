package app

import (
	"net/http"

	"github.com/odontia/odontia/internal/platform/httpx"
	"github.com/odontia/odontia/internal/shared"
)

// Operations supplies the handler behind a protected clinic operation. A nil
// handler means the operation is not served by this process.
type Operations interface {
	Handler(operation string) http.Handler
}

// NotImplemented answers every operation with 501.
type NotImplemented struct{}

// Handler implements Operations.
func (NotImplemented) Handler(string) http.Handler {
	return notImplemented
}

var notImplemented = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	httpx.Problem(w, http.StatusNotImplemented, "Not Implemented", "")
})

// OperationRoute binds an HTTP endpoint to a registered operation.
type OperationRoute struct {
	Method    string
	Pattern   string
	Operation string
}

// OperationRoutes lists the protected endpoints under /api/v1.
func OperationRoutes() []OperationRoute {
	return []OperationRoute{
		{http.MethodGet, "/users", shared.OpUsersList},
		{http.MethodGet, "/users/{userID}", shared.OpUsersRead},
		{http.MethodPatch, "/users/{userID}", shared.OpUsersUpdate},
		{http.MethodGet, "/tenant", shared.OpTenantRead},
		{http.MethodPatch, "/tenant", shared.OpTenantUpdate},
		{http.MethodGet, "/tenants", shared.OpTenantsAdmin},

		{http.MethodGet, "/patients", shared.OpPatientsList},
		{http.MethodPost, "/patients", shared.OpPatientsCreate},
		{http.MethodGet, "/patients/{patientID}", shared.OpPatientsRead},
		{http.MethodPatch, "/patients/{patientID}", shared.OpPatientsUpdate},
		{http.MethodDelete, "/patients/{patientID}", shared.OpPatientsDelete},
		{http.MethodGet, "/patients/{patientID}/odontogram", shared.OpOdontogramRead},
		{http.MethodPut, "/patients/{patientID}/odontogram", shared.OpOdontogramUpdate},

		{http.MethodGet, "/appointments", shared.OpAppointmentsList},
		{http.MethodPost, "/appointments", shared.OpAppointmentsCreate},
		{http.MethodPatch, "/appointments/{appointmentID}", shared.OpAppointmentsUpdate},
		{http.MethodDelete, "/appointments/{appointmentID}", shared.OpAppointmentsDelete},

		{http.MethodGet, "/treatment-plans", shared.OpTreatmentPlansList},
		{http.MethodPost, "/treatment-plans", shared.OpTreatmentPlansCreate},
		{http.MethodPatch, "/treatment-plans/{planID}", shared.OpTreatmentPlansUpdate},

		{http.MethodGet, "/documents", shared.OpDocumentsList},
		{http.MethodPost, "/documents", shared.OpDocumentsUpload},

		{http.MethodGet, "/clinics", shared.OpClinicsList},
		{http.MethodGet, "/operatories", shared.OpOperatoriesList},
		{http.MethodPost, "/notifications", shared.OpNotificationsSend},

		{http.MethodGet, "/invoices", shared.OpInvoicesList},
		{http.MethodPost, "/invoices", shared.OpInvoicesCreate},
		{http.MethodGet, "/invoices/{invoiceID}", shared.OpInvoicesRead},
		{http.MethodPatch, "/invoices/{invoiceID}", shared.OpInvoicesUpdate},
		{http.MethodGet, "/payments", shared.OpPaymentsList},
		{http.MethodPost, "/payments", shared.OpPaymentsCreate},
	}
}
