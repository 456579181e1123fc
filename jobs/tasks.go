package jobs

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"github.com/rapidsphere/fleet-erp/internal/auth"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// QueueAudit carries authentication audit events.
	QueueAudit = "audit"

	// TaskAuthEvent records one authentication event in the audit log.
	TaskAuthEvent = "auth:event"
	// TaskAuditPrune deletes audit entries past their retention.
	TaskAuditPrune = "audit:prune"
)

// AuditPrunePayload configures a retention run.
type AuditPrunePayload struct {
	RetentionDays int `json:"retention_days"`
}

// NewAuthEventTask wraps event into an asynq task.
func NewAuthEventTask(event auth.Event) (*asynq.Task, error) {
	if event.Kind == "" {
		return nil, fmt.Errorf("auth event kind required")
	}
	data, err := json.Marshal(event)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskAuthEvent, data, asynq.Queue(QueueAudit), asynq.MaxRetry(5), asynq.Timeout(30*time.Second)), nil
}

// NewAuditPruneTask builds the retention task; non-positive days fall back to 90.
func NewAuditPruneTask(retentionDays int) (*asynq.Task, error) {
	if retentionDays <= 0 {
		retentionDays = 90
	}
	data, err := json.Marshal(AuditPrunePayload{RetentionDays: retentionDays})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskAuditPrune, data), nil
}
