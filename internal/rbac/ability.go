package rbac

import (
	"sort"
)

// Ability is the effective grant set of one principal for one request. It is
// immutable once built and safe for concurrent reads.
type Ability struct {
	role   Role
	grants map[Grant]struct{}
}

// Build materialises the ability of p from the role defaults plus, for staff
// roles, the principal's custom grants. Entries outside the enumerations are
// ignored.
func Build(p Principal) *Ability {
	defaults := DefaultGrants(p.Role)
	a := &Ability{role: p.Role, grants: make(map[Grant]struct{}, len(defaults)+len(p.Grants))}
	for _, g := range defaults {
		a.grants[g] = struct{}{}
	}
	if !AllowsCustomGrants(p.Role) {
		return a
	}
	for _, g := range p.Grants {
		if !g.Valid() {
			continue
		}
		a.grants[g] = struct{}{}
	}
	return a
}

// Can reports whether the ability allows action on subject. Manage covers every
// action and the all subject covers every subject.
func (a *Ability) Can(action Action, subject Subject) bool {
	if a == nil || !action.Valid() || !subject.Valid() {
		return false
	}
	for _, act := range []Action{action, ActionManage} {
		if _, ok := a.grants[Grant{act, subject}]; ok {
			return true
		}
		if _, ok := a.grants[Grant{act, SubjectAll}]; ok {
			return true
		}
	}
	return false
}

// Cannot is the negation of Can.
func (a *Ability) Cannot(action Action, subject Subject) bool {
	return !a.Can(action, subject)
}

// Role returns the role the ability was built for.
func (a *Ability) Role() Role {
	if a == nil {
		return ""
	}
	return a.role
}

// Grants returns the grants sorted by subject then action.
func (a *Ability) Grants() []Grant {
	if a == nil {
		return nil
	}
	out := make([]Grant, 0, len(a.grants))
	for g := range a.grants {
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Subject != out[j].Subject {
			return out[i].Subject < out[j].Subject
		}
		return out[i].Action < out[j].Action
	})
	return out
}

// Equal reports whether both abilities hold exactly the same grants.
func (a *Ability) Equal(other *Ability) bool {
	if a == nil || other == nil {
		return a == other
	}
	if len(a.grants) != len(other.grants) {
		return false
	}
	for g := range a.grants {
		if _, ok := other.grants[g]; !ok {
			return false
		}
	}
	return true
}
