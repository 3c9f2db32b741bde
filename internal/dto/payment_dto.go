package dto

import "github.com/shopspring/decimal"

type CashPaymentRequest struct {
	// Amount defaults to zero when the office records it later.
	Amount decimal.Decimal `json:"amount"`
}

// TenantSummary is the identity slice joined into admin payment listings.
type TenantSummary struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	RoomNumber string `json:"roomNumber"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
}

type PaymentResponse struct {
	ID         string          `json:"id"`
	TenantID   string          `json:"tenantId"`
	Type       string          `json:"type"`
	FileName   *string         `json:"fileName,omitempty"`
	Amount     decimal.Decimal `json:"amount"`
	Status     string          `json:"status"`
	ApprovedAt *string         `json:"approvedAt,omitempty"`
	CreatedAt  string          `json:"createdAt"`
	Tenant     *TenantSummary  `json:"tenant,omitempty"`
}

type PaymentActionResponse struct {
	Message string          `json:"message"`
	Payment PaymentResponse `json:"payment"`
}
