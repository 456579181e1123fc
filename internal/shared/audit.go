package shared

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
)

// AuditLog represents a record stored in audit_logs.
type AuditLog struct {
	Actor    string
	Action   string
	Entity   string
	EntityID string
	Meta     map[string]any
	At       time.Time
}

// Execer is the subset of pgxpool.Pool used for audit writes.
type Execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// AuditLogger writes records into audit_logs.
type AuditLogger struct {
	db Execer
}

// NewAuditLogger returns a new AuditLogger.
func NewAuditLogger(db Execer) *AuditLogger {
	return &AuditLogger{db: db}
}

const insertAuditLog = `INSERT INTO audit_logs (actor, action, entity, entity_id, meta, occurred_at)
VALUES ($1, $2, $3, $4, $5, $6)`

// Record persists the log entry. A zero At is stored as the current time.
func (l *AuditLogger) Record(ctx context.Context, log AuditLog) error {
	if l == nil || l.db == nil {
		return errors.New("audit logger not initialised")
	}
	if log.Action == "" || log.Entity == "" {
		return errors.New("audit log requires action and entity")
	}
	metaJSON, err := json.Marshal(log.Meta)
	if err != nil {
		return fmt.Errorf("audit: encode meta: %w", err)
	}
	at := log.At
	if at.IsZero() {
		at = time.Now()
	}
	if _, err := l.db.Exec(ctx, insertAuditLog, log.Actor, log.Action, log.Entity, log.EntityID, metaJSON, at.UTC()); err != nil {
		return fmt.Errorf("audit: insert: %w", err)
	}
	return nil
}

const pruneAuditLogs = `DELETE FROM audit_logs WHERE occurred_at < $1`

// Prune removes entries that occurred before cutoff and reports how many went.
func (l *AuditLogger) Prune(ctx context.Context, cutoff time.Time) (int64, error) {
	if l == nil || l.db == nil {
		return 0, errors.New("audit logger not initialised")
	}
	tag, err := l.db.Exec(ctx, pruneAuditLogs, cutoff.UTC())
	if err != nil {
		return 0, fmt.Errorf("audit: prune: %w", err)
	}
	return tag.RowsAffected(), nil
}
