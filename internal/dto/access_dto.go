package dto

type AccessRequest struct {
	DeviceMAC string `json:"deviceMAC" validate:"required,mac"`
}

type AccessLogResponse struct {
	ID             string  `json:"id"`
	TenantID       string  `json:"tenantId"`
	DeviceMAC      string  `json:"deviceMAC"`
	ConnectedAt    string  `json:"connectedAt"`
	DisconnectedAt *string `json:"disconnectedAt,omitempty"`
}

type EnableAccessResponse struct {
	Message string            `json:"message"`
	Log     AccessLogResponse `json:"log"`
}
