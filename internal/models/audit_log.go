package models

import "time"

type AuditAction string

const (
	AuditCreate AuditAction = "create"
	AuditUpdate AuditAction = "update"
	AuditDelete AuditAction = "delete"
	AuditLogin  AuditAction = "login"
	AuditSystem AuditAction = "system"
)

// AuditLog is an append-only history record. Rows are never updated or
// deleted; the table is a write-once projection keyed by (entity, entity_id).
type AuditLog struct {
	ID          int         `db:"id" json:"id"`
	Action      AuditAction `db:"action" json:"action"`
	Entity      string      `db:"entity" json:"entity"`
	EntityID    string      `db:"entity_id" json:"entityId"`
	Details     string      `db:"details" json:"details"`
	PerformedBy string      `db:"performed_by" json:"performedBy"`
	CreatedAt   time.Time   `db:"created_at" json:"createdAt"`
}
