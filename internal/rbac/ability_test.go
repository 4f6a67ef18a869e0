package rbac

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/sync/errgroup"
)

func staffRoles() []Role {
	return []Role{RoleStaffReceptionist, RoleStaffAssistant, RoleStaffBilling}
}

func TestManageImpliesEveryAction(t *testing.T) {
	for _, role := range Roles() {
		ab := Build(Principal{ID: "u", Role: role, TenantID: "t1"})
		for _, g := range DefaultGrants(role) {
			if g.Action != ActionManage {
				continue
			}
			subjects := []Subject{g.Subject}
			if g.Subject == SubjectAll {
				subjects = Subjects()
			}
			for _, s := range subjects {
				for _, a := range Actions() {
					assert.True(t, ab.Can(a, s), "%s should %s %s", role, a, s)
				}
			}
		}
	}
}

func TestManageQueryNeedsManageGrant(t *testing.T) {
	staff := Build(Principal{Role: RoleStaffReceptionist})
	assert.True(t, staff.Can(ActionRead, SubjectAppointment))
	assert.True(t, staff.Can(ActionUpdate, SubjectAppointment))
	assert.False(t, staff.Can(ActionManage, SubjectAppointment))

	dentist := Build(Principal{Role: RoleDentist})
	assert.True(t, dentist.Can(ActionManage, SubjectPatient))
	assert.False(t, dentist.Can(ActionManage, SubjectAll))
	assert.False(t, dentist.Can(ActionDelete, SubjectTenant))
}

func TestEmptyCustomGrantsYieldDefaults(t *testing.T) {
	for _, role := range staffRoles() {
		defaults := Build(Principal{Role: role})
		assert.True(t, defaults.Equal(Build(Principal{Role: role, Grants: []Grant{}})), role)
		assert.ElementsMatch(t, DefaultGrants(role), defaults.Grants(), role)
	}
}

func TestMalformedCustomGrantsAreIgnored(t *testing.T) {
	valid := []Grant{{ActionRead, SubjectInvoice}}
	malformed := append([]Grant{
		{Action("fly"), SubjectInvoice},
		{ActionRead, Subject("Spaceship")},
		{},
	}, valid...)

	for _, role := range staffRoles() {
		want := Build(Principal{Role: role, Grants: valid})
		got := Build(Principal{Role: role, Grants: malformed})
		assert.True(t, want.Equal(got), role)
		assert.False(t, got.Can(Action("fly"), SubjectInvoice))
		assert.True(t, got.Can(ActionRead, SubjectInvoice))
	}
}

func TestCustomGrantsIgnoredForFixedRoles(t *testing.T) {
	grants := []Grant{{ActionManage, SubjectAll}}
	for _, role := range []Role{RoleDentist, RolePatient} {
		ab := Build(Principal{Role: role, Grants: grants})
		assert.False(t, ab.Can(ActionManage, SubjectAll), role)
		assert.False(t, ab.Can(ActionDelete, SubjectTenant), role)
	}
}

func TestUnknownRoleHasNoAbility(t *testing.T) {
	ab := Build(Principal{Role: Role("janitor"), Grants: []Grant{{ActionRead, SubjectPatient}}})
	for _, s := range Subjects() {
		for _, a := range Actions() {
			assert.False(t, ab.Can(a, s))
		}
	}
}

func TestInvalidQueriesReturnFalse(t *testing.T) {
	admin := Build(Principal{Role: RoleSuperAdmin})
	assert.False(t, admin.Can(Action("fly"), SubjectPatient))
	assert.False(t, admin.Can(ActionRead, Subject("Spaceship")))
	assert.True(t, admin.Cannot(ActionRead, Subject("")))

	var nilAbility *Ability
	assert.False(t, nilAbility.Can(ActionRead, SubjectPatient))
	assert.Empty(t, nilAbility.Grants())
	assert.Equal(t, Role(""), nilAbility.Role())
}

func TestGrantsAreSorted(t *testing.T) {
	grants := Build(Principal{Role: RolePatient}).Grants()
	for i := 1; i < len(grants); i++ {
		prev, cur := grants[i-1], grants[i]
		assert.True(t, prev.Subject < cur.Subject || (prev.Subject == cur.Subject && prev.Action < cur.Action),
			"%s before %s", prev, cur)
	}
}

func TestConcurrentEvaluation(t *testing.T) {
	var g errgroup.Group
	for i := 0; i < 32; i++ {
		role := Roles()[i%len(Roles())]
		g.Go(func() error {
			p := Principal{ID: "u", Role: role, TenantID: "t1", Grants: []Grant{{ActionRead, SubjectInvoice}}}
			first := Build(p)
			for j := 0; j < 100; j++ {
				if !first.Equal(Build(p)) {
					t.Errorf("ability for %s changed between builds", role)
				}
				_ = first.Can(ActionRead, SubjectPatient)
			}
			return nil
		})
	}
	_ = g.Wait()
}
