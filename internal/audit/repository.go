package audit

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// Querier is the subset of pgxpool.Pool used by PGRepository.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// PGRepository reads audit_logs from PostgreSQL.
type PGRepository struct {
	db Querier
}

// NewPGRepository constructs a PGRepository.
func NewPGRepository(db Querier) *PGRepository {
	return &PGRepository{db: db}
}

const auditWindow = `SELECT id, actor, action, entity, entity_id, meta, occurred_at
FROM audit_logs
WHERE ($1::text = '' OR actor = $1)
  AND ($2::text = '' OR action = $2)
  AND ($3::text = '' OR entity = $3)
ORDER BY occurred_at DESC, id DESC
OFFSET $4 LIMIT $5`

// Window implements Repository.
func (r *PGRepository) Window(ctx context.Context, params WindowParams) ([]Entry, error) {
	rows, err := r.db.Query(ctx, auditWindow, params.Actor, params.Action, params.Entity, params.Offset, params.Limit)
	if err != nil {
		return nil, fmt.Errorf("audit: query: %w", err)
	}
	entries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Entry, error) {
		var (
			entry Entry
			meta  []byte
		)
		if err := row.Scan(&entry.ID, &entry.Actor, &entry.Action, &entry.Entity, &entry.EntityID, &meta, &entry.At); err != nil {
			return Entry{}, err
		}
		if len(meta) > 0 {
			if err := json.Unmarshal(meta, &entry.Meta); err != nil {
				return Entry{}, fmt.Errorf("decode meta of %d: %w", entry.ID, err)
			}
		}
		return entry, nil
	})
	if err != nil {
		return nil, fmt.Errorf("audit: scan: %w", err)
	}
	return entries, nil
}

var _ Repository = (*PGRepository)(nil)
