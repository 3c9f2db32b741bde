package model

import (
	"time"

	"github.com/google/uuid"
)

// Tenant statuses.
const (
	TenantActive   = "active"
	TenantBlocked  = "blocked"
	TenantInactive = "inactive"
)

// Tenant stores a resident of the building together with their Wi-Fi
// entitlement state.
// Status: "active" | "blocked" | "inactive"
type Tenant struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name       string    `gorm:"not null"`
	RoomNumber string    `gorm:"not null"`
	// IDNumber is the 13-digit national ID, validated at registration.
	IDNumber string `gorm:"uniqueIndex;not null;column:id_number"`
	// Phone is stored normalized as 27XXXXXXXXX.
	Phone        string `gorm:"not null"`
	Email        string `gorm:"uniqueIndex;not null"`
	MACAddress   string `gorm:"not null;column:mac_address"`
	PasswordHash string `gorm:"not null"`
	Status       string `gorm:"type:varchar(20);not null;default:'active'"`
	// WifiAccess gates whether the tenant may open device sessions.
	WifiAccess bool      `gorm:"not null;default:false"`
	ExpiryDate time.Time `gorm:"not null"`
	// ResetToken fields back the forgot-password flow; cleared on use.
	ResetToken       *string `gorm:"index"`
	ResetTokenExpiry *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
