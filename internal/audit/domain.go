package audit

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrInvalidEntry marks an entry that can never be stored.
var ErrInvalidEntry = errors.New("audit: invalid entry")

// Entry is one authorization decision.
type Entry struct {
	ID          uuid.UUID `json:"id"`
	RequestID   string    `json:"request_id,omitempty"`
	At          time.Time `json:"at"`
	PrincipalID string    `json:"principal_id,omitempty"`
	Role        string    `json:"role,omitempty"`
	TenantID    string    `json:"tenant_id,omitempty"`
	Operation   string    `json:"operation"`
	Allowed     bool      `json:"allowed"`
	Kind        string    `json:"kind,omitempty"`
}

// Recorder receives decisions as they are made.
type Recorder interface {
	Record(ctx context.Context, entry Entry) error
}

// TimelineFilters holds the filters for the decision timeline.
type TimelineFilters struct {
	From        time.Time
	To          time.Time
	TenantID    string
	PrincipalID string
	Operation   string
	DeniedOnly  bool
	Page        int
	PageSize    int
}

// PagingInfo holds simple pagination metadata.
type PagingInfo struct {
	Page     int  `json:"page"`
	HasNext  bool `json:"has_next"`
	PageSize int  `json:"page_size"`
	PrevPage int  `json:"prev_page,omitempty"`
	NextPage int  `json:"next_page,omitempty"`
}

// Result wraps a timeline page with paging information.
type Result struct {
	Rows   []Entry    `json:"rows"`
	Paging PagingInfo `json:"paging"`
}
