package rbac

import (
	"encoding/json"

	"github.com/go-playground/validator/v10"
)

var validate = NewValidator()

// NewValidator returns a validator that also knows the "action" and
// "subject" tags. Both accept the empty string so they compose with the
// required_* tags.
func NewValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("action", enumField(func(s string) bool {
		_, ok := ParseAction(s)
		return ok
	}))
	_ = v.RegisterValidation("subject", enumField(func(s string) bool {
		_, ok := ParseSubject(s)
		return ok
	}))
	return v
}

func enumField(member func(string) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return s == "" || member(s)
	}
}

// RawGrant is the untrusted shape of a stored custom permission.
type RawGrant struct {
	Action  string `json:"action" validate:"required,max=32,action"`
	Subject string `json:"subject" validate:"required,max=64,subject"`
}

// Parse converts the raw entry into a Grant. ok is false when either half is
// outside its enumeration.
func (r RawGrant) Parse() (Grant, bool) {
	if err := validate.Struct(r); err != nil {
		return Grant{}, false
	}
	action, _ := ParseAction(r.Action)
	subject, _ := ParseSubject(r.Subject)
	return Grant{Action: action, Subject: subject}, true
}

// ParseGrants keeps the well-formed entries of raw in order and silently drops
// the rest.
func ParseGrants(raw []RawGrant) []Grant {
	grants := make([]Grant, 0, len(raw))
	for _, r := range raw {
		if g, ok := r.Parse(); ok {
			grants = append(grants, g)
		}
	}
	return grants
}

// DecodeGrants parses a JSON array of permission objects. Entries that do not
// decode are skipped, as is a payload that is not an array at all.
func DecodeGrants(data []byte) []Grant {
	if len(data) == 0 {
		return nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil
	}
	raw := make([]RawGrant, 0, len(items))
	for _, item := range items {
		var r RawGrant
		if err := json.Unmarshal(item, &r); err != nil {
			continue
		}
		raw = append(raw, r)
	}
	return ParseGrants(raw)
}
