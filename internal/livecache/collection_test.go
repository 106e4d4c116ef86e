package livecache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NetindoGit/netindo_api/internal/models"
)

func newTicketCollection() *Collection[models.Ticket] {
	return NewCollection(func(t models.Ticket) int { return t.ID })
}

func TestCollectionMergeInsertsWhenAbsent(t *testing.T) {
	c := newTicketCollection()

	c.Merge(models.Ticket{ID: 1, Title: "No internet"})

	got, ok := c.Get(1)
	require.True(t, ok)
	assert.Equal(t, "No internet", got.Title)
	assert.Equal(t, 1, c.Len())
}

func TestCollectionMergeOverwritesWhenPresent(t *testing.T) {
	c := newTicketCollection()

	c.Merge(models.Ticket{ID: 1, Title: "No internet", Status: models.TicketOpen})
	c.Merge(models.Ticket{ID: 1, Title: "No internet", Status: models.TicketAssigned})

	got, ok := c.Get(1)
	require.True(t, ok)
	assert.Equal(t, models.TicketAssigned, got.Status)
	assert.Equal(t, 1, c.Len(), "merge by id must not duplicate")
}

func TestCollectionMergeIsIdempotent(t *testing.T) {
	c := newTicketCollection()
	row := models.Ticket{ID: 7, Title: "Slow speeds", Status: models.TicketOpen}

	// The same row can arrive twice: once from the optimistic local apply
	// and once from the change feed.
	c.Merge(row)
	c.Merge(row)
	c.Merge(row)

	assert.Equal(t, 1, c.Len())
	got, _ := c.Get(7)
	assert.Equal(t, row, got)
}

func TestCollectionRemove(t *testing.T) {
	c := newTicketCollection()
	c.Merge(models.Ticket{ID: 1})
	c.Merge(models.Ticket{ID: 2})

	c.Remove(1)
	assert.Equal(t, 1, c.Len())
	_, ok := c.Get(1)
	assert.False(t, ok)

	// Removing an absent id is a no-op.
	c.Remove(99)
	assert.Equal(t, 1, c.Len())
}

func TestCollectionCount(t *testing.T) {
	c := newTicketCollection()
	c.Merge(models.Ticket{ID: 1, Status: models.TicketOpen})
	c.Merge(models.Ticket{ID: 2, Status: models.TicketClosed})
	c.Merge(models.Ticket{ID: 3, Status: models.TicketOpen})

	open := c.Count(func(t models.Ticket) bool { return t.Status == models.TicketOpen })
	assert.Equal(t, 2, open)
}

func TestCollectionSnapshotIsACopy(t *testing.T) {
	c := newTicketCollection()
	c.Merge(models.Ticket{ID: 1, Title: "before"})

	snap := c.Snapshot()
	require.Len(t, snap, 1)

	c.Merge(models.Ticket{ID: 1, Title: "after"})
	assert.Equal(t, "before", snap[0].Title)
}
