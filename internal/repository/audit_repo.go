package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/NetindoGit/netindo_api/internal/models"
)

// recentFeedCap bounds the global audit feed to the most recent entries.
const recentFeedCap = 100

// AuditRepository handles data access for the audit_logs table. The table is
// append-only: no update or delete method exists on purpose.
type AuditRepository struct {
	db *sqlx.DB
}

// NewAuditRepository creates a new AuditRepository.
func NewAuditRepository(db *sqlx.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

// Insert appends an audit record.
func (r *AuditRepository) Insert(ctx context.Context, entry *models.AuditLog) error {
	query := `INSERT INTO audit_logs (action, entity, entity_id, details, performed_by, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          RETURNING id`

	return r.db.QueryRowxContext(ctx, query,
		entry.Action,
		entry.Entity,
		entry.EntityID,
		entry.Details,
		entry.PerformedBy,
		entry.CreatedAt,
	).Scan(&entry.ID)
}

// ListByEntity retrieves the history of one entity, newest first.
func (r *AuditRepository) ListByEntity(entity, entityID string) ([]models.AuditLog, error) {
	var entries []models.AuditLog
	err := r.db.Select(&entries, `SELECT id, action, entity, entity_id, details, performed_by, created_at
		FROM audit_logs
		WHERE entity = $1 AND entity_id = $2
		ORDER BY created_at DESC`, entity, entityID)
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// ListRecent retrieves the global feed, newest first, capped at 100 entries.
func (r *AuditRepository) ListRecent(limit int) ([]models.AuditLog, error) {
	if limit <= 0 || limit > recentFeedCap {
		limit = recentFeedCap
	}
	var entries []models.AuditLog
	err := r.db.Select(&entries, `SELECT id, action, entity, entity_id, details, performed_by, created_at
		FROM audit_logs
		ORDER BY created_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	return entries, nil
}
