package policy

import (
	"fmt"
	"strings"

	"github.com/odontia/odontia/internal/rbac"
)

// Predicate is a single condition an ability must satisfy.
type Predicate interface {
	Satisfied(ab *rbac.Ability) bool
}

// PredicateFunc adapts a plain function to Predicate.
type PredicateFunc func(ab *rbac.Ability) bool

// Satisfied calls f.
func (f PredicateFunc) Satisfied(ab *rbac.Ability) bool {
	return f(ab)
}

func (f PredicateFunc) String() string {
	return "custom"
}

type canPredicate struct {
	action  rbac.Action
	subject rbac.Subject
}

// Can requires the ability to allow action on subject.
func Can(action rbac.Action, subject rbac.Subject) Predicate {
	return canPredicate{action: action, subject: subject}
}

func (c canPredicate) Satisfied(ab *rbac.Ability) bool {
	return ab.Can(c.action, c.subject)
}

func (c canPredicate) String() string {
	return fmt.Sprintf("can(%s, %s)", c.action, c.subject)
}

type anyPredicate []Predicate

// Any is satisfied when at least one of preds is.
func Any(preds ...Predicate) Predicate {
	return anyPredicate(preds)
}

func (a anyPredicate) Satisfied(ab *rbac.Ability) bool {
	for _, p := range a {
		if p != nil && p.Satisfied(ab) {
			return true
		}
	}
	return false
}

func (a anyPredicate) String() string {
	parts := make([]string, len(a))
	for i, p := range a {
		parts[i] = fmt.Sprint(p)
	}
	return "any(" + strings.Join(parts, ", ") + ")"
}

// Requirement is an ordered conjunction of predicates. An empty requirement
// leaves the operation open.
type Requirement []Predicate

// Require builds a Requirement from preds.
func Require(preds ...Predicate) Requirement {
	return Requirement(preds)
}

// Open reports whether the requirement places no constraint.
func (r Requirement) Open() bool {
	return len(r) == 0
}

// Satisfied evaluates every predicate in order and stops at the first failure.
func (r Requirement) Satisfied(ab *rbac.Ability) bool {
	for _, p := range r {
		if p == nil || !p.Satisfied(ab) {
			return false
		}
	}
	return true
}

func (r Requirement) String() string {
	if r.Open() {
		return "open"
	}
	parts := make([]string, len(r))
	for i, p := range r {
		parts[i] = fmt.Sprint(p)
	}
	return strings.Join(parts, " && ")
}
