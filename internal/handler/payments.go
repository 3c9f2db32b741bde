package handler

import (
	"io"
	"net/http"

	"kgwahlawifi/internal/apierror"
	"kgwahlawifi/internal/dto"
	"kgwahlawifi/internal/middleware"
	"kgwahlawifi/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// maxProofSize caps uploaded proof-of-payment documents at 10 MB.
const maxProofSize = 10 << 20

type PaymentsHandler struct{ svc service.PaymentService }

func NewPaymentsHandler(svc service.PaymentService) *PaymentsHandler {
	return &PaymentsHandler{svc: svc}
}

// Upload godoc
// @Summary Upload a proof-of-payment document
// @Tags payments
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param proofOfPayment formData file true "Proof document"
// @Success 200 {object} dto.PaymentActionResponse
// @Failure 400 {object} apierror.APIError
// @Router /api/payments/upload [post]
func (h *PaymentsHandler) Upload(c *gin.Context) {
	claims := middleware.GetClaims(c)
	tenantID, err := uuid.Parse(claims.UserID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, apierror.New("Invalid or expired token"))
		return
	}

	fileHeader, err := c.FormFile("proofOfPayment")
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("proofOfPayment file is required"))
		return
	}
	if fileHeader.Size > maxProofSize {
		c.JSON(http.StatusBadRequest, apierror.New("proofOfPayment exceeds the 10MB limit"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("could not read uploaded file"))
		return
	}
	defer file.Close()
	data, err := io.ReadAll(io.LimitReader(file, maxProofSize))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("could not read uploaded file"))
		return
	}

	mimeType := fileHeader.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}
	amount := decimal.Zero
	if raw := c.PostForm("amount"); raw != "" {
		amount, err = decimal.NewFromString(raw)
		if err != nil || amount.IsNegative() {
			c.JSON(http.StatusBadRequest, apierror.New("amount must be a non-negative number"))
			return
		}
	}

	payment, err := h.svc.SubmitProof(c.Request.Context(), tenantID, fileHeader.Filename, mimeType, data, amount)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.PaymentActionResponse{Message: "Payment uploaded", Payment: *payment})
}

// Cash records a cash-payment marker awaiting approval at the office.
func (h *PaymentsHandler) Cash(c *gin.Context) {
	claims := middleware.GetClaims(c)
	tenantID, err := uuid.Parse(claims.UserID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, apierror.New("Invalid or expired token"))
		return
	}

	var req dto.CashPaymentRequest
	if !bindAndValidate(c, &req) {
		return
	}

	payment, err := h.svc.SubmitCash(c.Request.Context(), tenantID, req.Amount)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.PaymentActionResponse{Message: "Cash payment submitted", Payment: *payment})
}

// Status lists the caller's own payments.
func (h *PaymentsHandler) Status(c *gin.Context) {
	claims := middleware.GetClaims(c)
	tenantID, err := uuid.Parse(claims.UserID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, apierror.New("Invalid or expired token"))
		return
	}

	payments, err := h.svc.ListOwn(c.Request.Context(), tenantID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, payments)
}

// All lists every payment with tenant identity joined (admin only).
func (h *PaymentsHandler) All(c *gin.Context) {
	payments, err := h.svc.ListAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, payments)
}

// Approve godoc
// @Summary Approve a payment and enable the tenant's Wi-Fi access
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Payment ID"
// @Success 200 {object} dto.PaymentActionResponse
// @Failure 404 {object} apierror.APIError
// @Router /api/payments/approve/{id} [post]
func (h *PaymentsHandler) Approve(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid payment id"))
		return
	}
	payment, err := h.svc.Approve(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.PaymentActionResponse{Message: "Payment approved", Payment: *payment})
}

func (h *PaymentsHandler) Reject(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid payment id"))
		return
	}
	payment, err := h.svc.Reject(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.PaymentActionResponse{Message: "Payment rejected", Payment: *payment})
}

// Proof streams the stored document back with its recorded MIME type.
// Records created before binary storage existed return a textual placeholder.
func (h *PaymentsHandler) Proof(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid payment id"))
		return
	}
	payment, err := h.svc.Proof(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	switch {
	case len(payment.FileData) > 0:
		mimeType := "application/octet-stream"
		if payment.FileMimeType != nil && *payment.FileMimeType != "" {
			mimeType = *payment.FileMimeType
		}
		if payment.FileName != nil && *payment.FileName != "" {
			c.Header("Content-Disposition", `inline; filename="`+*payment.FileName+`"`)
		}
		c.Data(http.StatusOK, mimeType, payment.FileData)
	case payment.FileURL != nil && *payment.FileURL != "":
		c.String(http.StatusOK, "Proof stored at %s (legacy record; file contents unavailable)", *payment.FileURL)
	default:
		c.JSON(http.StatusNotFound, apierror.New("No proof document on this payment"))
	}
}
