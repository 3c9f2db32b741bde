package handler

import (
	"errors"
	"net/http"

	"kgwahlawifi/internal/apierror"
	"kgwahlawifi/internal/service"
	"kgwahlawifi/internal/validation"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails —
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid JSON: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusBadRequest, apierror.NewValidation(fields))
		return false
	}
	return true
}

// respondError maps service error kinds onto HTTP statuses.
// Unexpected errors surface as 500 with the underlying message.
func respondError(c *gin.Context, err error) {
	var fieldErr *validation.FieldError
	switch {
	case errors.As(err, &fieldErr):
		c.JSON(http.StatusBadRequest, apierror.NewValidation(map[string]string{fieldErr.Field: fieldErr.Reason}))
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, apierror.New("Invalid credentials"))
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, apierror.New("Access not allowed"))
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
	case errors.Is(err, service.ErrConflict):
		c.JSON(http.StatusBadRequest, apierror.New("User already exists"))
	case errors.Is(err, service.ErrInvalidResetToken):
		c.JSON(http.StatusBadRequest, apierror.New("Invalid or expired reset token"))
	default:
		c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
	}
}
