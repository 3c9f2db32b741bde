package dto

// BlockTenantRequest targets a tenant by id in the request body
// (block/unblock routes carry no path parameter).
type BlockTenantRequest struct {
	TenantID string `json:"tenantId" validate:"required,uuid"`
}

type TenantActionResponse struct {
	Message string         `json:"message"`
	Tenant  TenantResponse `json:"tenant"`
}
