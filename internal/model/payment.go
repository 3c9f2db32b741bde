package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Payment types and statuses.
const (
	PaymentTypePOP  = "POP"
	PaymentTypeCash = "cash"

	PaymentPending  = "pending"
	PaymentApproved = "approved"
	PaymentRejected = "rejected"
)

// Payment stores a tenant's payment submission: either an uploaded proof of
// payment (binary payload plus metadata) or a cash marker awaiting the admin
// at the office.
// Type: "POP" | "cash" — Status: "pending" | "approved" | "rejected"
type Payment struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TenantID uuid.UUID `gorm:"type:uuid;index;not null"`
	Tenant   *Tenant   `gorm:"foreignKey:TenantID"`
	Type     string    `gorm:"type:varchar(10);not null"`
	// FileData holds the uploaded proof document.
	FileData     []byte  `gorm:"type:bytea"`
	FileMimeType *string `gorm:"type:varchar(100)"`
	FileName     *string
	// FileURL is only set on records created before binary storage existed.
	FileURL    *string         `gorm:"column:file_url"`
	Amount     decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	Status     string          `gorm:"type:varchar(20);not null;default:'pending'"`
	ApprovedAt *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
