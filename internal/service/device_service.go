package service

import (
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/NetindoGit/netindo_api/internal/audit"
	"github.com/NetindoGit/netindo_api/internal/database"
	"github.com/NetindoGit/netindo_api/internal/feed"
	"github.com/NetindoGit/netindo_api/internal/models"
	"github.com/NetindoGit/netindo_api/internal/utils"
)

type deviceStore interface {
	GetByID(id int) (*models.NetworkDevice, error)
	List() ([]models.NetworkDevice, error)
	ListStaleOnline(cutoff time.Time) ([]models.NetworkDevice, error)
	Create(d *models.NetworkDevice) error
	Update(d *models.NetworkDevice) error
	UpdateStatus(id int, status models.DeviceStatus) (*models.NetworkDevice, error)
	Delete(id int) error
}

// DeviceService handles network device business logic.
type DeviceService struct {
	store   deviceStore
	auditor audit.Logger
	events  eventPublisher
}

// NewDeviceService constructs a DeviceService.
func NewDeviceService(store deviceStore, auditor audit.Logger, events eventPublisher) *DeviceService {
	return &DeviceService{store: store, auditor: auditor, events: events}
}

// CreateDeviceRequest represents the request to register a device.
type CreateDeviceRequest struct {
	Name       string              `json:"name" binding:"required"`
	Type       models.DeviceType   `json:"type" binding:"required"`
	Status     models.DeviceStatus `json:"status"`
	CustomerID *int                `json:"customerId"`
	IPAddress  *string             `json:"ipAddress"`
	Location   *string             `json:"location"`
}

// UpdateDeviceRequest represents a partial device update.
type UpdateDeviceRequest struct {
	Name       *string              `json:"name"`
	Type       *models.DeviceType   `json:"type"`
	Status     *models.DeviceStatus `json:"status"`
	CustomerID *int                 `json:"customerId"`
	IPAddress  *string              `json:"ipAddress"`
	Location   *string              `json:"location"`
}

// ListDevices retrieves all devices; a missing table yields an empty list.
func (s *DeviceService) ListDevices() ([]models.NetworkDevice, error) {
	devices, err := s.store.List()
	if err != nil {
		if database.IsMissingTable(err) {
			return []models.NetworkDevice{}, nil
		}
		return nil, fmt.Errorf("list devices: %w", err)
	}
	return devices, nil
}

// GetDevice retrieves a device by id; a missing table yields (nil, nil).
func (s *DeviceService) GetDevice(id int) (*models.NetworkDevice, error) {
	d, err := s.store.GetByID(id)
	if err != nil {
		if database.IsNotFound(err) {
			return nil, utils.ErrDeviceNotFound
		}
		if database.IsMissingTable(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get device: %w", err)
	}
	return d, nil
}

// CreateDevice registers a device and announces it on the feed.
func (s *DeviceService) CreateDevice(req *CreateDeviceRequest, actor string) (*models.NetworkDevice, error) {
	d := &models.NetworkDevice{
		Name:       req.Name,
		Type:       req.Type,
		Status:     req.Status,
		CustomerID: req.CustomerID,
		IPAddress:  req.IPAddress,
		Location:   req.Location,
	}
	if d.Status == "" {
		d.Status = models.DeviceOnline
	}

	if err := s.store.Create(d); err != nil {
		return nil, fmt.Errorf("create device: %w", err)
	}

	s.auditor.Record(models.AuditCreate, "NetworkDevice", strconv.Itoa(d.ID),
		fmt.Sprintf("Registered device: %s", d.Name), actor)
	s.events.Publish(feed.Event{Table: "network_devices", Type: feed.EventInsert, Row: *d})

	return d, nil
}

// UpdateDevice merges the provided fields and announces the change.
func (s *DeviceService) UpdateDevice(id int, req *UpdateDeviceRequest, actor string) (*models.NetworkDevice, error) {
	d, err := s.store.GetByID(id)
	if err != nil {
		if database.IsNotFound(err) {
			return nil, utils.ErrDeviceNotFound
		}
		return nil, fmt.Errorf("update device: %w", err)
	}

	if req.Name != nil {
		d.Name = *req.Name
	}
	if req.Type != nil {
		d.Type = *req.Type
	}
	if req.Status != nil {
		d.Status = *req.Status
	}
	if req.CustomerID != nil {
		d.CustomerID = req.CustomerID
	}
	if req.IPAddress != nil {
		d.IPAddress = req.IPAddress
	}
	if req.Location != nil {
		d.Location = req.Location
	}

	if err := s.store.Update(d); err != nil {
		return nil, fmt.Errorf("update device: %w", err)
	}

	s.auditor.Record(models.AuditUpdate, "NetworkDevice", strconv.Itoa(id), "Updated device details", actor)
	s.events.Publish(feed.Event{Table: "network_devices", Type: feed.EventUpdate, Row: *d})

	return d, nil
}

// SetDeviceStatus overwrites the device status. Status changes always apply;
// devices have no transition graph.
func (s *DeviceService) SetDeviceStatus(id int, status models.DeviceStatus, actor string) (*models.NetworkDevice, error) {
	d, err := s.store.UpdateStatus(id, status)
	if err != nil {
		if database.IsNotFound(err) {
			return nil, utils.ErrDeviceNotFound
		}
		return nil, fmt.Errorf("set device status: %w", err)
	}

	s.auditor.Record(models.AuditUpdate, "NetworkDevice", strconv.Itoa(id),
		fmt.Sprintf("Changed status to %s", status), actor)
	s.events.Publish(feed.Event{Table: "network_devices", Type: feed.EventUpdate, Row: *d})

	return d, nil
}

// DeleteDevice removes a device permanently and announces the removal.
func (s *DeviceService) DeleteDevice(id int, actor string) error {
	if err := s.store.Delete(id); err != nil {
		return fmt.Errorf("delete device: %w", err)
	}
	s.auditor.Record(models.AuditDelete, "NetworkDevice", strconv.Itoa(id), "", actor)
	s.events.Publish(feed.Event{Table: "network_devices", Type: feed.EventDelete, Row: models.NetworkDevice{ID: id}})
	return nil
}

// SweepStale marks online devices with no check since the cutoff as offline.
// Called by the background worker; a missing table is a no-op.
func (s *DeviceService) SweepStale(offlineAfter time.Duration) int {
	cutoff := time.Now().Add(-offlineAfter)
	stale, err := s.store.ListStaleOnline(cutoff)
	if err != nil {
		if !database.IsMissingTable(err) {
			log.Error().Err(err).Msg("Device sweep: listing stale devices failed")
		}
		return 0
	}

	marked := 0
	for _, d := range stale {
		updated, err := s.store.UpdateStatus(d.ID, models.DeviceOffline)
		if err != nil {
			log.Error().Err(err).Int("device_id", d.ID).Msg("Device sweep: marking offline failed")
			continue
		}
		s.auditor.Record(models.AuditSystem, "NetworkDevice", strconv.Itoa(d.ID),
			"Marked offline after missed checks", "system")
		s.events.Publish(feed.Event{Table: "network_devices", Type: feed.EventUpdate, Row: *updated})
		marked++
	}
	return marked
}
