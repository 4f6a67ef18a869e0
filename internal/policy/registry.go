package policy

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrUnknownOperation is returned when an operation has no registered requirement.
var ErrUnknownOperation = errors.New("policy: unknown operation")

// Registry maps protected operations to their requirements. It is filled at
// startup and read-only afterwards.
type Registry struct {
	policies map[string]Requirement
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{policies: make(map[string]Requirement)}
}

// Register attaches preds to operation. Registering the same operation twice
// or an empty name panics, since both are wiring mistakes.
func (r *Registry) Register(operation string, preds ...Predicate) *Registry {
	operation = strings.TrimSpace(operation)
	if operation == "" {
		panic("policy: empty operation name")
	}
	if _, exists := r.policies[operation]; exists {
		panic(fmt.Sprintf("policy: operation %q registered twice", operation))
	}
	r.policies[operation] = Require(preds...)
	return r
}

// Lookup returns the requirement for operation.
func (r *Registry) Lookup(operation string) (Requirement, error) {
	req, ok := r.policies[operation]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownOperation, operation)
	}
	return req, nil
}

// Operations lists registered operations in lexical order.
func (r *Registry) Operations() []string {
	ops := make([]string, 0, len(r.policies))
	for op := range r.policies {
		ops = append(ops, op)
	}
	sort.Strings(ops)
	return ops
}
