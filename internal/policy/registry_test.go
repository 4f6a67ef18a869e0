package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odontia/odontia/internal/rbac"
	"github.com/odontia/odontia/internal/shared"
)

func TestRegistryLookup(t *testing.T) {
	r := NewRegistry().
		Register("things.read", Can(rbac.ActionRead, rbac.SubjectDocument)).
		Register("things.open")

	req, err := r.Lookup("things.read")
	require.NoError(t, err)
	assert.Equal(t, "can(read, Document)", req.String())

	req, err = r.Lookup("things.open")
	require.NoError(t, err)
	assert.True(t, req.Open())
	assert.Equal(t, "open", req.String())

	_, err = r.Lookup("things.write")
	require.ErrorIs(t, err, ErrUnknownOperation)

	assert.Equal(t, []string{"things.open", "things.read"}, r.Operations())
}

func TestRegistryPanicsOnWiringMistakes(t *testing.T) {
	assert.Panics(t, func() { NewRegistry().Register(" ") })
	assert.Panics(t, func() {
		NewRegistry().Register("a").Register("a")
	})
}

func TestDefaultRegistryCoversEveryOperation(t *testing.T) {
	r := DefaultRegistry()
	var declared []string
	declared = append(declared, shared.CoreOperations()...)
	declared = append(declared, shared.ClinicOperations()...)
	declared = append(declared, shared.BillingOperations()...)

	assert.ElementsMatch(t, declared, r.Operations())
	for _, op := range declared {
		_, err := r.Lookup(op)
		assert.NoError(t, err, op)
	}
}

func TestDefaultRegistryRequirements(t *testing.T) {
	r := DefaultRegistry()
	cases := []struct {
		op      string
		role    rbac.Role
		grants  []rbac.Grant
		allowed bool
	}{
		{shared.OpPatientsDelete, rbac.RoleDentist, nil, true},
		{shared.OpPatientsDelete, rbac.RoleStaffAssistant, nil, false},
		{shared.OpPatientsList, rbac.RolePatient, nil, false},
		{shared.OpAppointmentsCreate, rbac.RoleStaffReceptionist, nil, true},
		{shared.OpAppointmentsDelete, rbac.RoleStaffReceptionist, nil, false},
		{shared.OpTenantsAdmin, rbac.RoleDentist, nil, false},
		{shared.OpTenantsAdmin, rbac.RoleSuperAdmin, nil, true},
		{shared.OpDecisionsAudit, rbac.RoleDentist, nil, false},
		{shared.OpDecisionsAudit, rbac.RoleSuperAdmin, nil, true},
		{shared.OpTenantUpdate, rbac.RoleDentist, nil, true},
		{shared.OpInvoicesRead, rbac.RolePatient, nil, true},
		{shared.OpPaymentsCreate, rbac.RoleStaffBilling, []rbac.Grant{{Action: rbac.ActionRead, Subject: rbac.SubjectInvoice}}, false},
		{shared.OpPaymentsCreate, rbac.RoleStaffBilling, []rbac.Grant{
			{Action: rbac.ActionRead, Subject: rbac.SubjectInvoice},
			{Action: rbac.ActionUpdate, Subject: rbac.SubjectInvoice},
		}, true},
		{shared.OpUsersUpdate, rbac.RolePatient, nil, true},
	}
	for _, tc := range cases {
		req, err := r.Lookup(tc.op)
		require.NoError(t, err)
		ab := rbac.Build(rbac.Principal{ID: "u", Role: tc.role, TenantID: "t1", Grants: tc.grants})
		assert.Equal(t, tc.allowed, req.Satisfied(ab), "%s as %s", tc.op, tc.role)
	}
}
