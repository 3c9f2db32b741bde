package model

import (
	"time"

	"github.com/google/uuid"
)

// RoleAdmin is the only admin role; there is no role hierarchy.
const RoleAdmin = "admin"

// Admin stores back-office users. Admins are seeded via cmd/seedadmin,
// never self-registered.
type Admin struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name         string    `gorm:"not null"`
	Email        string    `gorm:"uniqueIndex;not null"`
	PasswordHash string    `gorm:"not null"`
	Role         string    `gorm:"type:varchar(20);not null;default:'admin'"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
