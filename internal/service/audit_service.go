package service

import (
	"fmt"

	"github.com/NetindoGit/netindo_api/internal/database"
	"github.com/NetindoGit/netindo_api/internal/models"
)

type auditReadStore interface {
	ListRecent(limit int) ([]models.AuditLog, error)
	ListByEntity(entity, entityID string) ([]models.AuditLog, error)
}

// AuditService serves the history panel. The trail is best effort, so reads
// against a database without the table answer with an empty feed.
type AuditService struct {
	store auditReadStore
}

// NewAuditService constructs an AuditService.
func NewAuditService(store auditReadStore) *AuditService {
	return &AuditService{store: store}
}

// RecentActivity returns the newest audit entries, newest first.
func (s *AuditService) RecentActivity(limit int) ([]models.AuditLog, error) {
	entries, err := s.store.ListRecent(limit)
	if err != nil {
		if database.IsMissingTable(err) {
			return []models.AuditLog{}, nil
		}
		return nil, fmt.Errorf("recent activity: %w", err)
	}
	return entries, nil
}

// EntityHistory returns the full trail for one entity, newest first.
func (s *AuditService) EntityHistory(entity, entityID string) ([]models.AuditLog, error) {
	entries, err := s.store.ListByEntity(entity, entityID)
	if err != nil {
		if database.IsMissingTable(err) {
			return []models.AuditLog{}, nil
		}
		return nil, fmt.Errorf("entity history: %w", err)
	}
	return entries, nil
}
