package livecache

import (
	"github.com/NetindoGit/netindo_api/internal/feed"
	"github.com/NetindoGit/netindo_api/internal/models"
)

// Mirror holds the live collections the dashboard reads from and applies
// change-feed events to them.
type Mirror struct {
	Tickets *Collection[models.Ticket]
	Devices *Collection[models.NetworkDevice]
}

// NewMirror creates empty ticket and device mirrors.
func NewMirror() *Mirror {
	return &Mirror{
		Tickets: NewCollection(func(t models.Ticket) int { return t.ID }),
		Devices: NewCollection(func(d models.NetworkDevice) int { return d.ID }),
	}
}

// Bind subscribes the mirror to a change-feed hub.
func (m *Mirror) Bind(hub *feed.Hub) {
	hub.Subscribe(m.Apply)
}

// Warm merges current database rows into the collections. The feed only
// carries changes made after boot, so without a warm pass every restart
// would zero the mirror-backed counters until the next mutation.
func (m *Mirror) Warm(tickets []models.Ticket, devices []models.NetworkDevice) {
	for _, t := range tickets {
		m.Tickets.Merge(t)
	}
	for _, d := range devices {
		m.Devices.Merge(d)
	}
}

// Apply merges one change event into the matching collection. Unknown tables
// and row types are ignored.
func (m *Mirror) Apply(e feed.Event) {
	switch row := e.Row.(type) {
	case models.Ticket:
		if e.Type == feed.EventDelete {
			m.Tickets.Remove(row.ID)
		} else {
			m.Tickets.Merge(row)
		}
	case *models.Ticket:
		if e.Type == feed.EventDelete {
			m.Tickets.Remove(row.ID)
		} else {
			m.Tickets.Merge(*row)
		}
	case models.NetworkDevice:
		if e.Type == feed.EventDelete {
			m.Devices.Remove(row.ID)
		} else {
			m.Devices.Merge(row)
		}
	case *models.NetworkDevice:
		if e.Type == feed.EventDelete {
			m.Devices.Remove(row.ID)
		} else {
			m.Devices.Merge(*row)
		}
	}
}
