package livecache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NetindoGit/netindo_api/internal/feed"
	"github.com/NetindoGit/netindo_api/internal/models"
)

func TestMirrorAppliesTicketEvents(t *testing.T) {
	m := NewMirror()

	m.Apply(feed.Event{Table: "tickets", Type: feed.EventInsert, Row: models.Ticket{ID: 1, Status: models.TicketOpen}})
	m.Apply(feed.Event{Table: "tickets", Type: feed.EventUpdate, Row: models.Ticket{ID: 1, Status: models.TicketAssigned}})

	got, ok := m.Tickets.Get(1)
	require.True(t, ok)
	assert.Equal(t, models.TicketAssigned, got.Status)

	m.Apply(feed.Event{Table: "tickets", Type: feed.EventDelete, Row: models.Ticket{ID: 1}})
	_, ok = m.Tickets.Get(1)
	assert.False(t, ok)
}

func TestMirrorAppliesDeviceEvents(t *testing.T) {
	m := NewMirror()

	m.Apply(feed.Event{Table: "network_devices", Type: feed.EventInsert, Row: models.NetworkDevice{ID: 5, Status: models.DeviceOnline}})
	m.Apply(feed.Event{Table: "network_devices", Type: feed.EventUpdate, Row: &models.NetworkDevice{ID: 5, Status: models.DeviceOffline}})

	got, ok := m.Devices.Get(5)
	require.True(t, ok)
	assert.Equal(t, models.DeviceOffline, got.Status)
}

func TestMirrorIgnoresUnknownRows(t *testing.T) {
	m := NewMirror()

	m.Apply(feed.Event{Table: "invoices", Type: feed.EventInsert, Row: models.Invoice{ID: 1}})

	assert.Equal(t, 0, m.Tickets.Len())
	assert.Equal(t, 0, m.Devices.Len())
}

func TestMirrorWarmSeedsCollections(t *testing.T) {
	m := NewMirror()

	m.Warm(
		[]models.Ticket{{ID: 1, Status: models.TicketOpen}, {ID: 2, Status: models.TicketClosed}},
		[]models.NetworkDevice{{ID: 7, Status: models.DeviceOnline}},
	)

	assert.Equal(t, 2, m.Tickets.Len())
	assert.Equal(t, 1, m.Devices.Len())

	// Feed events after the warm pass win over the seeded rows.
	m.Apply(feed.Event{Table: "tickets", Type: feed.EventUpdate, Row: models.Ticket{ID: 1, Status: models.TicketAssigned}})
	got, ok := m.Tickets.Get(1)
	require.True(t, ok)
	assert.Equal(t, models.TicketAssigned, got.Status)
}

func TestMirrorBindReceivesPublishedEvents(t *testing.T) {
	hub := feed.NewHub()
	m := NewMirror()
	m.Bind(hub)

	hub.Publish(feed.Event{Table: "tickets", Type: feed.EventInsert, Row: models.Ticket{ID: 3, Title: "No dial tone"}})

	got, ok := m.Tickets.Get(3)
	require.True(t, ok)
	assert.Equal(t, "No dial tone", got.Title)
}
