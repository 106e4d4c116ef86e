package repository

import (
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/NetindoGit/netindo_api/internal/models"
)

// DeviceRepository handles data access for the network_devices table.
type DeviceRepository struct {
	db *sqlx.DB
}

// NewDeviceRepository creates a new DeviceRepository.
func NewDeviceRepository(db *sqlx.DB) *DeviceRepository {
	return &DeviceRepository{db: db}
}

const deviceColumns = `id, name, type, status, customer_id, ip_address, location,
	last_check, created_at, updated_at`

// GetByID finds a device by id.
func (r *DeviceRepository) GetByID(id int) (*models.NetworkDevice, error) {
	var d models.NetworkDevice
	err := r.db.Get(&d, `SELECT `+deviceColumns+` FROM network_devices WHERE id = $1 LIMIT 1`, id)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// List retrieves all devices ordered by name.
func (r *DeviceRepository) List() ([]models.NetworkDevice, error) {
	var devices []models.NetworkDevice
	err := r.db.Select(&devices, `SELECT `+deviceColumns+` FROM network_devices ORDER BY name`)
	if err != nil {
		return nil, err
	}
	return devices, nil
}

// ListStaleOnline retrieves online devices not checked since the cutoff.
func (r *DeviceRepository) ListStaleOnline(cutoff time.Time) ([]models.NetworkDevice, error) {
	var devices []models.NetworkDevice
	err := r.db.Select(&devices, `SELECT `+deviceColumns+`
		FROM network_devices
		WHERE status = $1 AND last_check < $2
		ORDER BY last_check`, models.DeviceOnline, cutoff)
	if err != nil {
		return nil, err
	}
	return devices, nil
}

// Create inserts a new device row. last_check starts at now.
func (r *DeviceRepository) Create(d *models.NetworkDevice) error {
	query := `INSERT INTO network_devices (name, type, status, customer_id, ip_address, location, last_check)
	          VALUES ($1, $2, $3, $4, $5, $6, NOW())
	          RETURNING id, last_check, created_at, updated_at`

	return r.db.QueryRowx(query,
		d.Name,
		d.Type,
		d.Status,
		d.CustomerID,
		d.IPAddress,
		d.Location,
	).Scan(&d.ID, &d.LastCheck, &d.CreatedAt, &d.UpdatedAt)
}

// Update updates a device and bumps last_check.
func (r *DeviceRepository) Update(d *models.NetworkDevice) error {
	query := `UPDATE network_devices
	          SET name = $1, type = $2, status = $3, customer_id = $4, ip_address = $5,
	              location = $6, last_check = NOW(), updated_at = NOW()
	          WHERE id = $7
	          RETURNING last_check, updated_at`

	return r.db.QueryRowx(query,
		d.Name,
		d.Type,
		d.Status,
		d.CustomerID,
		d.IPAddress,
		d.Location,
		d.ID,
	).Scan(&d.LastCheck, &d.UpdatedAt)
}

// UpdateStatus overwrites a device's status, bumps last_check, and returns
// the updated row.
func (r *DeviceRepository) UpdateStatus(id int, status models.DeviceStatus) (*models.NetworkDevice, error) {
	var d models.NetworkDevice
	err := r.db.Get(&d, `UPDATE network_devices
		SET status = $1, last_check = NOW(), updated_at = NOW()
		WHERE id = $2
		RETURNING `+deviceColumns, status, id)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// Delete removes a device permanently.
func (r *DeviceRepository) Delete(id int) error {
	_, err := r.db.Exec(`DELETE FROM network_devices WHERE id = $1`, id)
	return err
}
