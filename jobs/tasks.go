package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/odontia/odontia/internal/audit"
	jobmetrics "github.com/odontia/odontia/internal/jobs"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// QueueAudit carries authorization decision records.
	QueueAudit = "audit"
	// TaskTypeDecisionAudit is the task type for persisting one decision.
	TaskTypeDecisionAudit = "authz:decision"
	// TaskTypeDecisionPrune is the periodic retention sweep of the decision log.
	TaskTypeDecisionPrune = "authz:decisions:prune"
)

// DecisionPruner removes decisions older than a cutoff.
type DecisionPruner interface {
	Prune(ctx context.Context, cutoff time.Time) (int64, error)
}

// NewDecisionAuditTask constructs an Asynq task carrying entry.
func NewDecisionAuditTask(entry audit.Entry) (*asynq.Task, error) {
	data, err := json.Marshal(entry)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeDecisionAudit, data), nil
}

// NewDecisionAuditHandler processes TaskTypeDecisionAudit tasks by handing the
// decoded entry to store.
func NewDecisionAuditHandler(store audit.Recorder, metrics *jobmetrics.Metrics) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		tracker := metrics.Track(QueueAudit, TaskTypeDecisionAudit)
		var entry audit.Entry
		if err := json.Unmarshal(t.Payload(), &entry); err != nil {
			return tracker.End(fmt.Errorf("decode decision: %v: %w", err, asynq.SkipRetry))
		}
		if entry.Operation == "" {
			return tracker.End(fmt.Errorf("decision without operation: %w", asynq.SkipRetry))
		}
		err := store.Record(ctx, entry)
		if errors.Is(err, audit.ErrInvalidEntry) {
			return tracker.End(fmt.Errorf("%v: %w", err, asynq.SkipRetry))
		}
		return tracker.End(err)
	}
}

// NewDecisionPruneTask constructs the retention sweep task. It carries no
// payload; the worker decides the cutoff.
func NewDecisionPruneTask() *asynq.Task {
	return asynq.NewTask(TaskTypeDecisionPrune, nil)
}

// NewDecisionPruneHandler deletes decisions older than retention.
func NewDecisionPruneHandler(pruner DecisionPruner, retention time.Duration, logger *slog.Logger, metrics *jobmetrics.Metrics) asynq.HandlerFunc {
	if logger == nil {
		logger = slog.Default()
	}
	return func(ctx context.Context, _ *asynq.Task) error {
		if retention <= 0 {
			return fmt.Errorf("prune decisions: retention must be positive: %w", asynq.SkipRetry)
		}
		tracker := metrics.Track(QueueDefault, TaskTypeDecisionPrune)
		cutoff := time.Now().UTC().Add(-retention)
		n, err := pruner.Prune(ctx, cutoff)
		if err != nil {
			return tracker.End(err)
		}
		metrics.Pruned(n)
		logger.Info("pruned authorization decisions", slog.Int64("rows", n), slog.Time("cutoff", cutoff))
		return tracker.End(nil)
	}
}
