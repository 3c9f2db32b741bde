package model

import (
	"time"

	"github.com/google/uuid"
)

// AccessLog records a device connect/disconnect session.
// DisconnectedAt == nil marks an open session.
type AccessLog struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TenantID       uuid.UUID `gorm:"type:uuid;index;not null"`
	Tenant         *Tenant   `gorm:"foreignKey:TenantID"`
	DeviceMAC      string    `gorm:"not null;column:device_mac"`
	ConnectedAt    time.Time `gorm:"not null"`
	DisconnectedAt *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
