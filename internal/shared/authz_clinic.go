package shared

// Clinical operations.
const (
	OpPatientsList   = "patients.list"
	OpPatientsRead   = "patients.read"
	OpPatientsCreate = "patients.create"
	OpPatientsUpdate = "patients.update"
	OpPatientsDelete = "patients.delete"

	OpAppointmentsList   = "appointments.list"
	OpAppointmentsCreate = "appointments.create"
	OpAppointmentsUpdate = "appointments.update"
	OpAppointmentsDelete = "appointments.delete"

	OpTreatmentPlansList   = "treatment_plans.list"
	OpTreatmentPlansCreate = "treatment_plans.create"
	OpTreatmentPlansUpdate = "treatment_plans.update"

	OpDocumentsList   = "documents.list"
	OpDocumentsUpload = "documents.upload"

	OpOdontogramRead   = "odontogram.read"
	OpOdontogramUpdate = "odontogram.update"

	OpClinicsList     = "clinics.list"
	OpOperatoriesList = "operatories.list"

	OpNotificationsSend = "notifications.send"
)

// ClinicOperations lists all operations related to clinical records.
func ClinicOperations() []string {
	return []string{
		OpPatientsList,
		OpPatientsRead,
		OpPatientsCreate,
		OpPatientsUpdate,
		OpPatientsDelete,
		OpAppointmentsList,
		OpAppointmentsCreate,
		OpAppointmentsUpdate,
		OpAppointmentsDelete,
		OpTreatmentPlansList,
		OpTreatmentPlansCreate,
		OpTreatmentPlansUpdate,
		OpDocumentsList,
		OpDocumentsUpload,
		OpOdontogramRead,
		OpOdontogramUpdate,
		OpClinicsList,
		OpOperatoriesList,
		OpNotificationsSend,
	}
}
