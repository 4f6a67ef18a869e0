package rbac

import (
	"strings"

	"golang.org/x/text/cases"
)

// Role is the single role held by a principal.
type Role string

const (
	RoleSuperAdmin        Role = "super_admin"
	RoleDentist           Role = "dentist"
	RolePatient           Role = "patient"
	RoleStaffReceptionist Role = "staff_receptionist"
	RoleStaffAssistant    Role = "staff_assistant"
	RoleStaffBilling      Role = "staff_billing"
)

// Roles lists every known role in declaration order.
func Roles() []Role {
	return []Role{
		RoleSuperAdmin,
		RoleDentist,
		RolePatient,
		RoleStaffReceptionist,
		RoleStaffAssistant,
		RoleStaffBilling,
	}
}

// ParseRole normalises raw into a known Role.
func ParseRole(raw string) (Role, bool) {
	candidate := Role(fold(raw))
	for _, r := range Roles() {
		if r == candidate {
			return r, true
		}
	}
	return "", false
}

// Action is an operation a principal may perform on a subject.
type Action string

const (
	// ActionManage implies every other action.
	ActionManage Action = "manage"
	ActionCreate Action = "create"
	ActionRead   Action = "read"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Actions lists every known action.
func Actions() []Action {
	return []Action{ActionManage, ActionCreate, ActionRead, ActionUpdate, ActionDelete}
}

// Valid reports whether a is a member of the action enumeration.
func (a Action) Valid() bool {
	switch a {
	case ActionManage, ActionCreate, ActionRead, ActionUpdate, ActionDelete:
		return true
	}
	return false
}

// Subject is a resource kind.
type Subject string

const (
	SubjectUser          Subject = "User"
	SubjectTenant        Subject = "Tenant"
	SubjectPatient       Subject = "Patient"
	SubjectAppointment   Subject = "Appointment"
	SubjectTreatmentPlan Subject = "TreatmentPlan"
	SubjectInvoice       Subject = "Invoice"
	SubjectDocument      Subject = "Document"
	SubjectClinic        Subject = "Clinic"
	SubjectOperatory     Subject = "Operatory"
	SubjectNotification  Subject = "Notification"
	SubjectOdontogram    Subject = "Odontogram"

	// SubjectAll matches every subject.
	SubjectAll Subject = "all"
)

// Subjects lists every concrete subject followed by the wildcard.
func Subjects() []Subject {
	return []Subject{
		SubjectUser,
		SubjectTenant,
		SubjectPatient,
		SubjectAppointment,
		SubjectTreatmentPlan,
		SubjectInvoice,
		SubjectDocument,
		SubjectClinic,
		SubjectOperatory,
		SubjectNotification,
		SubjectOdontogram,
		SubjectAll,
	}
}

// Valid reports whether s is a member of the subject enumeration, wildcard included.
func (s Subject) Valid() bool {
	for _, known := range Subjects() {
		if s == known {
			return true
		}
	}
	return false
}

// ParseSubject matches raw against the subject enumeration ignoring case.
func ParseSubject(raw string) (Subject, bool) {
	folded := fold(raw)
	for _, s := range Subjects() {
		if fold(string(s)) == folded {
			return s, true
		}
	}
	return "", false
}

// ParseAction matches raw against the action enumeration ignoring case.
func ParseAction(raw string) (Action, bool) {
	a := Action(fold(raw))
	return a, a.Valid()
}

// Grant allows Action on Subject.
type Grant struct {
	Action  Action  `json:"action" yaml:"action"`
	Subject Subject `json:"subject" yaml:"subject"`
}

// Valid reports whether both halves of the grant are known.
func (g Grant) Valid() bool {
	return g.Action.Valid() && g.Subject.Valid()
}

func (g Grant) String() string {
	return string(g.Action) + ":" + string(g.Subject)
}

// Principal describes the authenticated actor for one request.
type Principal struct {
	ID       string
	Role     Role
	TenantID string
	// Grants are custom grants attached to the principal. Only staff roles honour them.
	Grants []Grant
}

// IsSuperAdmin reports whether the principal bypasses tenant scoping.
func (p Principal) IsSuperAdmin() bool {
	return p.Role == RoleSuperAdmin
}

// fold case-folds raw. A Caser keeps state, so each call gets its own.
func fold(raw string) string {
	return cases.Fold().String(strings.TrimSpace(raw))
}
