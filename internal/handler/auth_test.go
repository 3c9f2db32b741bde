package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"kgwahlawifi/internal/dto"
	"kgwahlawifi/internal/service"
	"kgwahlawifi/internal/validation"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// stubAuthService returns canned results; each field nil means success with a
// zero-value response.
type stubAuthService struct {
	registerErr error
	loginErr    error
}

func (s *stubAuthService) Register(context.Context, dto.RegisterRequest) (*dto.TenantResponse, error) {
	if s.registerErr != nil {
		return nil, s.registerErr
	}
	return &dto.TenantResponse{ID: uuid.New().String()}, nil
}

func (s *stubAuthService) Login(context.Context, dto.LoginRequest) (*dto.LoginResponse, error) {
	if s.loginErr != nil {
		return nil, s.loginErr
	}
	return &dto.LoginResponse{Token: "tok"}, nil
}

func (s *stubAuthService) AdminLogin(context.Context, dto.AdminLoginRequest) (*dto.AdminLoginResponse, error) {
	return &dto.AdminLoginResponse{Token: "tok"}, nil
}

func (s *stubAuthService) TenantProfile(context.Context, uuid.UUID) (*dto.TenantResponse, error) {
	return &dto.TenantResponse{}, nil
}

func (s *stubAuthService) AdminProfile(context.Context, uuid.UUID) (*dto.AdminResponse, error) {
	return &dto.AdminResponse{}, nil
}

func (s *stubAuthService) ForgotPassword(context.Context, string) error { return nil }

func (s *stubAuthService) ResetPassword(context.Context, string, string) error { return nil }

func postJSON(r *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	data, _ := json.Marshal(body)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func authTestRouter(svc service.AuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewAuthHandler(svc)
	r.POST("/register", h.Register)
	r.POST("/login", h.Login)
	r.POST("/forgot-password", h.ForgotPassword)
	return r
}

func TestRegisterHandler_TagValidationFailure(t *testing.T) {
	r := authTestRouter(&stubAuthService{})

	// Missing required fields and a malformed MAC.
	w := postJSON(r, "/register", gin.H{"name": "T", "macAddress": "not-a-mac"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Detail string            `json:"detail"`
		Fields map[string]string `json:"fields"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Validation failed", resp.Detail)
	assert.NotEmpty(t, resp.Fields)
}

func TestRegisterHandler_FieldErrorFromService(t *testing.T) {
	svc := &stubAuthService{registerErr: &validation.FieldError{Field: "idNumber", Reason: "must be exactly 13 digits"}}
	r := authTestRouter(svc)

	w := postJSON(r, "/register", dto.RegisterRequest{
		Name: "Thabo Mokoena", RoomNumber: "A12", IDNumber: "123",
		Phone: "0821234567", Email: "t@example.com",
		MACAddress: "AA:BB:CC:DD:EE:FF", Password: "supersecret",
		ExpiryDate: "2026-12-31",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "idNumber")
}

func TestRegisterHandler_Conflict(t *testing.T) {
	svc := &stubAuthService{registerErr: fmt.Errorf("user %w", service.ErrConflict)}
	r := authTestRouter(svc)

	w := postJSON(r, "/register", dto.RegisterRequest{
		Name: "Thabo Mokoena", RoomNumber: "A12", IDNumber: "9202204720082",
		Phone: "0821234567", Email: "t@example.com",
		MACAddress: "AA:BB:CC:DD:EE:FF", Password: "supersecret",
		ExpiryDate: "2026-12-31",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "User already exists")
}

func TestLoginHandler_InvalidCredentials(t *testing.T) {
	svc := &stubAuthService{loginErr: service.ErrInvalidCredentials}
	r := authTestRouter(svc)

	w := postJSON(r, "/login", dto.LoginRequest{Identifier: "t@example.com", Password: "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var resp struct {
		Detail string `json:"detail"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Invalid credentials", resp.Detail)
}

func TestForgotPasswordHandler_GenericResponse(t *testing.T) {
	r := authTestRouter(&stubAuthService{})

	w := postJSON(r, "/forgot-password", dto.ForgotPasswordRequest{Email: "anyone@example.com"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "If the account exists")
}
