// Package audit appends immutable history records for entity mutations.
// Writes are best-effort: a failed audit insert is logged and swallowed, it
// never changes the outcome of the mutation that triggered it.
package audit

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/NetindoGit/netindo_api/internal/models"
)

// Store persists audit records. *repository.AuditRepository satisfies it.
type Store interface {
	Insert(ctx context.Context, entry *models.AuditLog) error
}

// Logger is the side-channel interface services record through.
type Logger interface {
	Record(action models.AuditAction, entity, entityID, details, performedBy string)
}

// Recorder dispatches audit entries onto a buffered channel drained by a
// background goroutine. Record never blocks the caller: when the buffer is
// full the entry is dropped with a warning. Audit completeness is therefore
// not guaranteed, which is the intended contract.
type Recorder struct {
	store   Store
	entries chan models.AuditLog
	wg      sync.WaitGroup
	once    sync.Once
}

// NewRecorder creates a Recorder and starts its drain goroutine.
func NewRecorder(store Store, buffer int) *Recorder {
	if buffer <= 0 {
		buffer = 256
	}
	r := &Recorder{
		store:   store,
		entries: make(chan models.AuditLog, buffer),
	}
	r.wg.Add(1)
	go r.drain()
	return r
}

// Record enqueues an audit entry. Fire-and-forget: errors from the store are
// never surfaced to the caller.
func (r *Recorder) Record(action models.AuditAction, entity, entityID, details, performedBy string) {
	entry := models.AuditLog{
		Action:      action,
		Entity:      entity,
		EntityID:    entityID,
		Details:     details,
		PerformedBy: performedBy,
		CreatedAt:   time.Now(),
	}
	select {
	case r.entries <- entry:
	default:
		log.Warn().
			Str("entity", entity).
			Str("entity_id", entityID).
			Msg("Audit buffer full, dropping entry")
	}
}

// Close stops accepting entries and waits for the buffer to drain.
func (r *Recorder) Close() {
	r.once.Do(func() {
		close(r.entries)
	})
	r.wg.Wait()
}

func (r *Recorder) drain() {
	defer r.wg.Done()
	for entry := range r.entries {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := r.store.Insert(ctx, &entry); err != nil {
			log.Error().
				Err(err).
				Str("entity", entry.Entity).
				Str("entity_id", entry.EntityID).
				Str("action", string(entry.Action)).
				Msg("Audit write failed")
		}
		cancel()
	}
}

// Nop is a no-op Logger for wiring paths that do not audit.
type Nop struct{}

func (Nop) Record(action models.AuditAction, entity, entityID, details, performedBy string) {}
