package handler

import (
	"net/http"

	"kgwahlawifi/internal/apierror"
	"kgwahlawifi/internal/dto"
	"kgwahlawifi/internal/middleware"
	"kgwahlawifi/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AccessHandler struct{ svc service.AccessService }

func NewAccessHandler(svc service.AccessService) *AccessHandler {
	return &AccessHandler{svc: svc}
}

// Enable godoc
// @Summary Open a connection session for the authenticated tenant's device
// @Tags access
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.AccessRequest true "Device MAC"
// @Success 200 {object} dto.EnableAccessResponse
// @Failure 403 {object} apierror.APIError
// @Router /api/access/enable [post]
func (h *AccessHandler) Enable(c *gin.Context) {
	var req dto.AccessRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	tenantID, err := uuid.Parse(claims.UserID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, apierror.New("Invalid or expired token"))
		return
	}
	entry, err := h.svc.Enable(c.Request.Context(), tenantID, req.DeviceMAC)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.EnableAccessResponse{Message: "Access enabled", Log: *entry})
}

func (h *AccessHandler) Disable(c *gin.Context) {
	var req dto.AccessRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	tenantID, err := uuid.Parse(claims.UserID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, apierror.New("Invalid or expired token"))
		return
	}
	if err := h.svc.Disable(c.Request.Context(), tenantID, req.DeviceMAC); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Access disabled"})
}
