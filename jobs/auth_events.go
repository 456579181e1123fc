package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/rapidsphere/fleet-erp/internal/auth"
	jobmetrics "github.com/rapidsphere/fleet-erp/internal/jobs"
	"github.com/rapidsphere/fleet-erp/internal/shared"
)

// AuditStore is the audit log as seen by the jobs in this package.
type AuditStore interface {
	Record(ctx context.Context, log shared.AuditLog) error
	Prune(ctx context.Context, cutoff time.Time) (int64, error)
}

// AuthEventJob writes queued authentication events to the audit log.
type AuthEventJob struct {
	Audit   AuditStore
	Logger  *slog.Logger
	Metrics *jobmetrics.Metrics
}

// NewAuthEventJob initialises the auth event handler.
func NewAuthEventJob(audit AuditStore, logger *slog.Logger, metrics *jobmetrics.Metrics) *AuthEventJob {
	return &AuthEventJob{Audit: audit, Logger: logger, Metrics: metrics}
}

// Handle decodes the event and records it. Undecodable payloads are not retried.
func (j *AuthEventJob) Handle(ctx context.Context, t *asynq.Task) (err error) {
	if j == nil || j.Audit == nil {
		return errors.New("auth event: handler not configured")
	}
	tracker := j.Metrics.Track(TaskAuthEvent)
	defer func() { err = tracker.End(err) }()

	var event auth.Event
	if err := json.Unmarshal(t.Payload(), &event); err != nil {
		j.logger().Warn("discard auth event", slog.Any("error", err))
		return fmt.Errorf("decode auth event: %v: %w", err, asynq.SkipRetry)
	}
	if event.Kind == "" {
		return fmt.Errorf("auth event without kind: %w", asynq.SkipRetry)
	}

	entry := shared.AuditLog{
		Actor:    event.Username,
		Action:   string(event.Kind),
		Entity:   "session",
		EntityID: event.IdentityID,
		Meta: map[string]any{
			"role":        event.Role,
			"remote_addr": event.RemoteAddr,
			"user_agent":  event.UserAgent,
		},
		At: event.At,
	}
	if err := j.Audit.Record(ctx, entry); err != nil {
		j.logger().Error("record auth event", slog.String("kind", string(event.Kind)), slog.Any("error", err))
		return err
	}
	j.Metrics.AddAuthEvent(string(event.Kind))
	return nil
}

func (j *AuthEventJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger
	}
	return slog.Default()
}

// AuditPruneJob enforces audit log retention.
type AuditPruneJob struct {
	Audit   AuditStore
	Logger  *slog.Logger
	Metrics *jobmetrics.Metrics
	clock   func() time.Time
}

// NewAuditPruneJob initialises the retention handler.
func NewAuditPruneJob(audit AuditStore, logger *slog.Logger, metrics *jobmetrics.Metrics) *AuditPruneJob {
	return &AuditPruneJob{
		Audit:   audit,
		Logger:  logger,
		Metrics: metrics,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// Handle deletes entries older than the payload's retention window.
func (j *AuditPruneJob) Handle(ctx context.Context, t *asynq.Task) (err error) {
	if j == nil || j.Audit == nil {
		return errors.New("audit prune: handler not configured")
	}
	tracker := j.Metrics.Track(TaskAuditPrune)
	defer func() { err = tracker.End(err) }()

	var payload AuditPrunePayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("decode prune payload: %v: %w", err, asynq.SkipRetry)
	}
	if payload.RetentionDays <= 0 {
		payload.RetentionDays = 90
	}
	now := time.Now().UTC()
	if j.clock != nil {
		now = j.clock()
	}
	cutoff := now.AddDate(0, 0, -payload.RetentionDays)
	removed, err := j.Audit.Prune(ctx, cutoff)
	if err != nil {
		return err
	}
	logger := j.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("audit log pruned", slog.Time("cutoff", cutoff), slog.Int64("removed", removed))
	return nil
}
