package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"kgwahlawifi/internal/config"
	"kgwahlawifi/internal/dto"
	"kgwahlawifi/internal/model"
	"kgwahlawifi/internal/notify"
	"kgwahlawifi/internal/repository"
	"kgwahlawifi/internal/validation"
	"kgwahlawifi/internal/worker"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

const resetTokenTTL = time.Hour

type AuthService interface {
	Register(ctx context.Context, req dto.RegisterRequest) (*dto.TenantResponse, error)
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	AdminLogin(ctx context.Context, req dto.AdminLoginRequest) (*dto.AdminLoginResponse, error)
	TenantProfile(ctx context.Context, id uuid.UUID) (*dto.TenantResponse, error)
	AdminProfile(ctx context.Context, id uuid.UUID) (*dto.AdminResponse, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
}

type authService struct {
	tenants    repository.TenantRepository
	admins     repository.AdminRepository
	dispatcher *worker.Dispatcher
	cfg        *config.Config
}

func NewAuthService(tenants repository.TenantRepository, admins repository.AdminRepository, dispatcher *worker.Dispatcher, cfg *config.Config) AuthService {
	return &authService{tenants: tenants, admins: admins, dispatcher: dispatcher, cfg: cfg}
}

// Register validates identity fields, checks for duplicates and persists the
// tenant with entitlement off. The welcome notification is queued best-effort;
// its failure never rolls back the registration.
func (s *authService) Register(ctx context.Context, req dto.RegisterRequest) (*dto.TenantResponse, error) {
	idNumber, verr := validation.IDNumber(req.IDNumber)
	if verr != nil {
		return nil, verr
	}
	phone, verr := validation.MobileNumber(req.Phone)
	if verr != nil {
		return nil, verr
	}
	expiry, err := time.Parse("2006-01-02", req.ExpiryDate)
	if err != nil {
		return nil, &validation.FieldError{Field: "expiryDate", Reason: "must be a YYYY-MM-DD date"}
	}

	exists, err := s.tenants.ExistsByEmailOrIDNumber(ctx, req.Email, idNumber)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("user %w", ErrConflict)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
	if err != nil {
		return nil, err
	}

	tenant := &model.Tenant{
		Name:         req.Name,
		RoomNumber:   req.RoomNumber,
		IDNumber:     idNumber,
		Phone:        phone,
		Email:        req.Email,
		MACAddress:   req.MACAddress,
		PasswordHash: string(hash),
		Status:       model.TenantActive,
		WifiAccess:   false,
		ExpiryDate:   expiry,
	}
	if err := s.tenants.Create(ctx, tenant); err != nil {
		return nil, err
	}

	s.sendWelcome(ctx, tenant)
	return tenantToResponse(tenant), nil
}

func (s *authService) sendWelcome(ctx context.Context, t *model.Tenant) {
	if s.dispatcher == nil {
		return
	}
	subject, body := notify.Welcome(t)
	if err := s.dispatcher.EnqueueEmail(ctx, worker.EmailJobPayload{To: t.Email, Subject: subject, HTML: body}); err != nil {
		log.Error().Err(err).Str("tenant", t.Email).Msg("auth: failed to enqueue welcome email")
	}
	if err := s.dispatcher.EnqueueSMS(ctx, worker.SMSJobPayload{To: t.Phone, Message: notify.WelcomeSMS(t)}); err != nil {
		log.Error().Err(err).Str("tenant", t.Email).Msg("auth: failed to enqueue welcome SMS")
	}
}

// Login authenticates a tenant by email or phone. Unknown identifiers and
// wrong passwords produce the same error.
func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	identifier := req.Identifier
	// A phone identifier may arrive formatted; match it the way it is stored.
	if normalized, verr := validation.MobileNumber(identifier); verr == nil {
		identifier = normalized
	}

	tenant, err := s.tenants.FindByIdentifier(ctx, identifier)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(tenant.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.generateToken(tenant.ID.String(), "tenant", time.Duration(s.cfg.TenantTokenMinutes)*time.Minute)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, Tenant: *tenantToResponse(tenant)}, nil
}

// AdminLogin authenticates an admin by email only, with a longer-lived token.
func (s *authService) AdminLogin(ctx context.Context, req dto.AdminLoginRequest) (*dto.AdminLoginResponse, error) {
	admin, err := s.admins.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.generateToken(admin.ID.String(), model.RoleAdmin, time.Duration(s.cfg.AdminTokenMinutes)*time.Minute)
	if err != nil {
		return nil, err
	}
	return &dto.AdminLoginResponse{
		Token: token,
		Admin: dto.AdminResponse{ID: admin.ID.String(), Name: admin.Name, Email: admin.Email, Role: admin.Role},
	}, nil
}

func (s *authService) TenantProfile(ctx context.Context, id uuid.UUID) (*dto.TenantResponse, error) {
	tenant, err := s.tenants.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("tenant %w", ErrNotFound)
	}
	return tenantToResponse(tenant), nil
}

func (s *authService) AdminProfile(ctx context.Context, id uuid.UUID) (*dto.AdminResponse, error) {
	admin, err := s.admins.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("admin %w", ErrNotFound)
	}
	return &dto.AdminResponse{ID: admin.ID.String(), Name: admin.Name, Email: admin.Email, Role: admin.Role}, nil
}

// ForgotPassword stores a fresh high-entropy token with a 1 hour window and
// queues the reset email. It reports success regardless of whether the email
// exists, matching the login path's anti-enumeration stance.
func (s *authService) ForgotPassword(ctx context.Context, email string) error {
	tenant, err := s.tenants.FindByEmail(ctx, email)
	if err != nil {
		// Unknown address: same outward result as success.
		return nil
	}

	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return err
	}
	token := hex.EncodeToString(buf)
	expiry := time.Now().Add(resetTokenTTL)
	tenant.ResetToken = &token
	tenant.ResetTokenExpiry = &expiry
	if err := s.tenants.Update(ctx, tenant); err != nil {
		return err
	}

	if s.dispatcher != nil {
		link := s.cfg.Domain + "/reset-password?token=" + token
		subject, body := notify.PasswordReset(tenant, link)
		if err := s.dispatcher.EnqueueEmail(ctx, worker.EmailJobPayload{To: tenant.Email, Subject: subject, HTML: body}); err != nil {
			// Delivery outcome is deliberately masked from the caller.
			log.Error().Err(err).Str("tenant", tenant.Email).Msg("auth: failed to enqueue reset email")
		}
	}
	return nil
}

// ResetPassword consumes an unexpired token exactly once.
func (s *authService) ResetPassword(ctx context.Context, token, newPassword string) error {
	tenant, err := s.tenants.FindByResetToken(ctx, token, time.Now())
	if err != nil {
		return ErrInvalidResetToken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), 12)
	if err != nil {
		return err
	}
	tenant.PasswordHash = string(hash)
	tenant.ResetToken = nil
	tenant.ResetTokenExpiry = nil
	return s.tenants.Update(ctx, tenant)
}

func (s *authService) generateToken(subjectID, role string, duration time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id": subjectID,
		"role":    role,
		"exp":     time.Now().Add(duration).Unix(),
		"iat":     time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

// ── helpers ──────────────────────────────────────────────────────────────────

func tenantToResponse(t *model.Tenant) *dto.TenantResponse {
	return &dto.TenantResponse{
		ID:         t.ID.String(),
		Name:       t.Name,
		RoomNumber: t.RoomNumber,
		IDNumber:   t.IDNumber,
		Phone:      t.Phone,
		Email:      t.Email,
		MACAddress: t.MACAddress,
		Status:     t.Status,
		WifiAccess: t.WifiAccess,
		ExpiryDate: t.ExpiryDate.Format("2006-01-02"),
	}
}
