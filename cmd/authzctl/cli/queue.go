package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/hibiken/asynq"
	"github.com/spf13/cobra"

	"github.com/odontia/odontia/jobs"
)

// QueueStats summarises the audit queue state.
type QueueStats struct {
	Queue     string `json:"queue"`
	Pending   int    `json:"pending"`
	Active    int    `json:"active"`
	Scheduled int    `json:"scheduled"`
	Retry     int    `json:"retry"`
	Archived  int    `json:"archived"`
}

// queueInspector is the subset of asynq.Inspector the queue commands need.
type queueInspector interface {
	GetQueueInfo(queue string) (*asynq.QueueInfo, error)
	RunAllArchivedTasks(queue string) (int, error)
	Close() error
}

var newInspector = func(redisAddr string) queueInspector {
	return asynq.NewInspector(asynq.RedisClientOpt{Addr: redisAddr})
}

func newQueueCmd() *cobra.Command {
	var redisAddr string

	cmd := &cobra.Command{
		Use:   "queue",
		Short: "Inspect the decision audit queue",
	}
	cmd.PersistentFlags().StringVar(&redisAddr, "redis-addr", defaultRedisAddr(), "Redis address (env REDIS_ADDR)")

	stats := &cobra.Command{
		Use:   "stats",
		Short: "Show audit queue counters",
		RunE: func(cmd *cobra.Command, args []string) error {
			inspector := newInspector(redisAddr)
			defer inspector.Close()
			s, err := inspectQueue(inspector)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "queue=%s pending=%d active=%d scheduled=%d retry=%d archived=%d\n",
				s.Queue, s.Pending, s.Active, s.Scheduled, s.Retry, s.Archived)
			return nil
		},
	}

	replay := &cobra.Command{
		Use:   "replay",
		Short: "Move archived audit tasks back to pending",
		RunE: func(cmd *cobra.Command, args []string) error {
			inspector := newInspector(redisAddr)
			defer inspector.Close()
			n, err := inspector.RunAllArchivedTasks(jobs.QueueAudit)
			if err != nil {
				return fmt.Errorf("replay archived: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "requeued %d task(s)\n", n)
			return nil
		},
	}

	cmd.AddCommand(stats, replay)
	return cmd
}

func inspectQueue(inspector queueInspector) (QueueStats, error) {
	stats := QueueStats{Queue: jobs.QueueAudit}
	info, err := inspector.GetQueueInfo(jobs.QueueAudit)
	if errors.Is(err, asynq.ErrQueueNotFound) {
		return stats, nil
	}
	if err != nil {
		return QueueStats{}, fmt.Errorf("inspect queue: %w", err)
	}
	if info != nil {
		stats.Pending = info.Pending
		stats.Active = info.Active
		stats.Scheduled = info.Scheduled
		stats.Retry = info.Retry
		stats.Archived = info.Archived
	}
	return stats, nil
}

func defaultRedisAddr() string {
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		return addr
	}
	return "127.0.0.1:6379"
}
