package models

import "time"

type DeviceType string
type DeviceStatus string

const (
	DeviceRouter DeviceType = "router"
	DeviceSwitch DeviceType = "switch"
	DeviceOLT    DeviceType = "olt"
	DeviceServer DeviceType = "server"
	DeviceCPE    DeviceType = "cpe"
	DeviceOther  DeviceType = "other"
)

const (
	DeviceOnline      DeviceStatus = "online"
	DeviceOffline     DeviceStatus = "offline"
	DeviceWarning     DeviceStatus = "warning"
	DeviceMaintenance DeviceStatus = "maintenance"
)

// NetworkDevice is a piece of network inventory. CustomerID is nil for core
// infrastructure. LastCheck is bumped on every mutation.
type NetworkDevice struct {
	ID         int          `db:"id" json:"id"`
	Name       string       `db:"name" json:"name"`
	Type       DeviceType   `db:"type" json:"type"`
	Status     DeviceStatus `db:"status" json:"status"`
	CustomerID *int         `db:"customer_id" json:"customerId,omitempty"`
	IPAddress  *string      `db:"ip_address" json:"ipAddress,omitempty"`
	Location   *string      `db:"location" json:"location,omitempty"`
	LastCheck  time.Time    `db:"last_check" json:"lastCheck"`
	CreatedAt  time.Time    `db:"created_at" json:"createdAt"`
	UpdatedAt  time.Time    `db:"updated_at" json:"updatedAt"`
}
