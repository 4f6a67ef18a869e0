package audit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ListParams is the storage-level query for decisions.
type ListParams struct {
	From        time.Time
	To          time.Time
	TenantID    string
	PrincipalID string
	Operation   string
	DeniedOnly  bool
	Offset      int
	Limit       int
}

// Repository persists decisions.
type Repository interface {
	InsertDecision(ctx context.Context, entry Entry) error
	ListDecisions(ctx context.Context, params ListParams) ([]Entry, error)
	DeleteDecisionsBefore(ctx context.Context, before time.Time) (int64, error)
}

// Service coordinates writing and reading the decision log.
type Service struct {
	repo Repository
}

// NewService builds a decision audit service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Record stores entry. It satisfies Recorder so the worker and tests can write
// synchronously.
func (s *Service) Record(ctx context.Context, entry Entry) error {
	if s.repo == nil {
		return errors.New("audit: repository not configured")
	}
	if entry.Operation == "" {
		return fmt.Errorf("%w: operation required", ErrInvalidEntry)
	}
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if entry.At.IsZero() {
		entry.At = time.Now().UTC()
	}
	if err := s.repo.InsertDecision(ctx, entry); err != nil {
		return fmt.Errorf("audit: insert decision: %w", err)
	}
	return nil
}

// Timeline returns one page of decisions.
func (s *Service) Timeline(ctx context.Context, filters TimelineFilters) (Result, error) {
	if s.repo == nil {
		return Result{}, errors.New("audit: repository not configured")
	}
	pageSize := filters.PageSize
	if pageSize <= 0 {
		pageSize = 20
	}
	if pageSize > 50 {
		pageSize = 50
	}
	page := filters.Page
	if page <= 0 {
		page = 1
	}
	rows, err := s.repo.ListDecisions(ctx, ListParams{
		From:        filters.From,
		To:          filters.To,
		TenantID:    filters.TenantID,
		PrincipalID: filters.PrincipalID,
		Operation:   filters.Operation,
		DeniedOnly:  filters.DeniedOnly,
		Offset:      (page - 1) * pageSize,
		Limit:       pageSize + 1,
	})
	if err != nil {
		return Result{}, fmt.Errorf("audit: list decisions: %w", err)
	}
	hasNext := len(rows) > pageSize
	if hasNext {
		rows = rows[:pageSize]
	}
	paging := PagingInfo{Page: page, PageSize: pageSize, HasNext: hasNext}
	if page > 1 {
		paging.PrevPage = page - 1
	}
	if hasNext {
		paging.NextPage = page + 1
	}
	return Result{Rows: rows, Paging: paging}, nil
}

// Prune drops every decision that occurred before cutoff and returns how many
// rows went.
func (s *Service) Prune(ctx context.Context, cutoff time.Time) (int64, error) {
	if s.repo == nil {
		return 0, errors.New("audit: repository not configured")
	}
	if cutoff.IsZero() {
		return 0, fmt.Errorf("%w: prune cutoff required", ErrInvalidEntry)
	}
	n, err := s.repo.DeleteDecisionsBefore(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("audit: prune decisions: %w", err)
	}
	return n, nil
}

var _ Recorder = (*Service)(nil)
