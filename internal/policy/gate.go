package policy

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/odontia/odontia/internal/audit"
	"github.com/odontia/odontia/internal/rbac"
	"github.com/odontia/odontia/internal/shared"
	"github.com/odontia/odontia/internal/tenancy"
)

// DecisionObserver receives the outcome of every operation check.
type DecisionObserver interface {
	ObserveDecision(operation string, allowed bool, kind shared.DenialKind)
}

// Gate enforces declared requirements against the caller's ability. It keeps
// no state between calls.
type Gate struct {
	registry *Registry
	recorder audit.Recorder
	observer DecisionObserver
	logger   *slog.Logger
}

// GateOption configures a Gate.
type GateOption func(*Gate)

// WithLogger sets the gate logger.
func WithLogger(l *slog.Logger) GateOption {
	return func(g *Gate) {
		if l != nil {
			g.logger = l
		}
	}
}

// WithRecorder sends every operation decision to rec.
func WithRecorder(rec audit.Recorder) GateOption {
	return func(g *Gate) {
		g.recorder = rec
	}
}

// WithObserver reports every operation decision to o.
func WithObserver(o DecisionObserver) GateOption {
	return func(g *Gate) {
		g.observer = o
	}
}

// NewGate builds a Gate over registry.
func NewGate(registry *Registry, opts ...GateOption) *Gate {
	g := &Gate{registry: registry, logger: slog.Default()}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Registry exposes the operation requirements the gate enforces.
func (g *Gate) Registry() *Registry {
	return g.registry
}

// Enforce checks p against req. A nil principal is refused before anything
// else; an empty requirement always passes. Every denial caused by the
// requirement looks the same regardless of which predicate failed. A
// cancelled ctx yields its error, never a verdict.
func (g *Gate) Enforce(ctx context.Context, p *rbac.Principal, req Requirement) error {
	if p == nil {
		return shared.Unauthenticated()
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("policy: enforce: %w", err)
	}
	if req.Open() {
		return nil
	}
	if !req.Satisfied(rbac.Build(*p)) {
		return shared.InsufficientPermission()
	}
	return nil
}

// EnforceOperation looks up the requirement of operation and enforces it. The
// decision is logged, observed and recorded; none of those can change it.
func (g *Gate) EnforceOperation(ctx context.Context, p *rbac.Principal, operation string) error {
	req, err := g.registry.Lookup(operation)
	if err != nil {
		return err
	}
	err = g.Enforce(ctx, p, req)
	if err != nil && !shared.IsDenial(err) {
		return err
	}
	g.report(ctx, p, operation, err)
	return err
}

func (g *Gate) report(ctx context.Context, p *rbac.Principal, operation string, err error) {
	kind := shared.KindOf(err)
	allowed := err == nil

	entry := audit.Entry{
		ID:        uuid.New(),
		RequestID: chimw.GetReqID(ctx),
		At:        time.Now().UTC(),
		Operation: operation,
		Allowed:   allowed,
		Kind:      string(kind),
	}
	if p != nil {
		entry.PrincipalID = p.ID
		entry.Role = string(p.Role)
		entry.TenantID = p.TenantID
	}
	if tc, ok := tenancy.FromContext(ctx); ok {
		entry.TenantID = tc.TenantID
	}

	if !allowed {
		g.logger.Info("authorization denied",
			slog.String("operation", operation),
			slog.String("kind", string(kind)),
			slog.String("principal", entry.PrincipalID),
			slog.String("role", entry.Role),
			slog.String("tenant", entry.TenantID),
			slog.String("request_id", entry.RequestID),
		)
	}
	if g.observer != nil {
		g.observer.ObserveDecision(operation, allowed, kind)
	}
	if g.recorder != nil {
		if recErr := g.recorder.Record(ctx, entry); recErr != nil {
			g.logger.Warn("record authorization decision", slog.Any("error", recErr), slog.String("operation", operation))
		}
	}
}
