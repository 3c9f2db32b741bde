package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type RegisterRequest struct {
	Name       string `json:"name"       validate:"required,min=2,max=100"`
	RoomNumber string `json:"roomNumber" validate:"required,max=20"`
	IDNumber   string `json:"idNumber"   validate:"required"`
	Phone      string `json:"phone"      validate:"required"`
	Email      string `json:"email"      validate:"required,email"`
	MACAddress string `json:"macAddress" validate:"required,mac"`
	Password   string `json:"password"   validate:"required,min=8"`
	ExpiryDate string `json:"expiryDate" validate:"required,datetime=2006-01-02"`
}

type LoginRequest struct {
	// Identifier is the tenant's email or phone number.
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password"   validate:"required"`
}

type AdminLoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Token       string `json:"token"       validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=8"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type TenantResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	RoomNumber string `json:"roomNumber"`
	IDNumber   string `json:"idNumber"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
	MACAddress string `json:"macAddress"`
	Status     string `json:"status"`
	WifiAccess bool   `json:"wifiAccess"`
	ExpiryDate string `json:"expiryDate"`
}

type AdminResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type LoginResponse struct {
	Token  string         `json:"token"`
	Tenant TenantResponse `json:"tenant"`
}

type AdminLoginResponse struct {
	Token string        `json:"token"`
	Admin AdminResponse `json:"admin"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
