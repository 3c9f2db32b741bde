package handler

import (
	"net/http"

	"kgwahlawifi/internal/apierror"
	"kgwahlawifi/internal/dto"
	"kgwahlawifi/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type TenantsHandler struct{ svc service.TenantService }

func NewTenantsHandler(svc service.TenantService) *TenantsHandler {
	return &TenantsHandler{svc: svc}
}

// List godoc
// @Summary List tenants, optionally filtered by a name/email substring
// @Tags tenants
// @Produce json
// @Security BearerAuth
// @Param search query string false "Substring match on name or email"
// @Success 200 {array} dto.TenantResponse
// @Router /api/tenants [get]
func (h *TenantsHandler) List(c *gin.Context) {
	tenants, err := h.svc.List(c.Request.Context(), c.Query("search"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tenants)
}

// Block targets the tenant from the request body.
func (h *TenantsHandler) Block(c *gin.Context) {
	var req dto.BlockTenantRequest
	if !bindAndValidate(c, &req) {
		return
	}
	id, _ := uuid.Parse(req.TenantID)
	tenant, err := h.svc.Block(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.TenantActionResponse{Message: "Tenant blocked", Tenant: *tenant})
}

func (h *TenantsHandler) Unblock(c *gin.Context) {
	var req dto.BlockTenantRequest
	if !bindAndValidate(c, &req) {
		return
	}
	id, _ := uuid.Parse(req.TenantID)
	tenant, err := h.svc.Unblock(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.TenantActionResponse{Message: "Tenant unblocked", Tenant: *tenant})
}

// Approve handles the walk-in cash flow: approves any pending cash payment
// and enables Wi-Fi access.
func (h *TenantsHandler) Approve(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid tenant id"))
		return
	}
	tenant, err := h.svc.ApproveCash(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.TenantActionResponse{Message: "Tenant approved and WiFi access enabled", Tenant: *tenant})
}

func (h *TenantsHandler) Activate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid tenant id"))
		return
	}
	tenant, err := h.svc.Activate(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.TenantActionResponse{Message: "Tenant activated", Tenant: *tenant})
}

func (h *TenantsHandler) Deactivate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid tenant id"))
		return
	}
	tenant, err := h.svc.Deactivate(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.TenantActionResponse{Message: "Tenant deactivated", Tenant: *tenant})
}
