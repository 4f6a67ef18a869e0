package shared

// Billing operations.
const (
	OpInvoicesList   = "invoices.list"
	OpInvoicesRead   = "invoices.read"
	OpInvoicesCreate = "invoices.create"
	OpInvoicesUpdate = "invoices.update"

	OpPaymentsList   = "payments.list"
	OpPaymentsCreate = "payments.create"
)

// BillingOperations lists all operations related to invoices and payments.
func BillingOperations() []string {
	return []string{
		OpInvoicesList,
		OpInvoicesRead,
		OpInvoicesCreate,
		OpInvoicesUpdate,
		OpPaymentsList,
		OpPaymentsCreate,
	}
}
