package service

import (
	"context"
	"fmt"
	"time"

	"kgwahlawifi/internal/config"
	"kgwahlawifi/internal/dto"
	"kgwahlawifi/internal/model"
	"kgwahlawifi/internal/notify"
	"kgwahlawifi/internal/repository"
	"kgwahlawifi/internal/worker"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PaymentService interface {
	SubmitProof(ctx context.Context, tenantID uuid.UUID, fileName, mimeType string, data []byte, amount decimal.Decimal) (*dto.PaymentResponse, error)
	SubmitCash(ctx context.Context, tenantID uuid.UUID, amount decimal.Decimal) (*dto.PaymentResponse, error)
	ListOwn(ctx context.Context, tenantID uuid.UUID) ([]dto.PaymentResponse, error)
	ListAll(ctx context.Context) ([]dto.PaymentResponse, error)
	Approve(ctx context.Context, paymentID uuid.UUID) (*dto.PaymentResponse, error)
	Reject(ctx context.Context, paymentID uuid.UUID) (*dto.PaymentResponse, error)
	// Proof returns the full record including the binary payload.
	Proof(ctx context.Context, paymentID uuid.UUID) (*model.Payment, error)
}

type paymentService struct {
	payments   repository.PaymentRepository
	tenants    repository.TenantRepository
	dispatcher *worker.Dispatcher
	cfg        *config.Config
}

func NewPaymentService(payments repository.PaymentRepository, tenants repository.TenantRepository, dispatcher *worker.Dispatcher, cfg *config.Config) PaymentService {
	return &paymentService{payments: payments, tenants: tenants, dispatcher: dispatcher, cfg: cfg}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

func (s *paymentService) SubmitProof(ctx context.Context, tenantID uuid.UUID, fileName, mimeType string, data []byte, amount decimal.Decimal) (*dto.PaymentResponse, error) {
	payment := &model.Payment{
		TenantID:     tenantID,
		Type:         model.PaymentTypePOP,
		FileData:     data,
		FileName:     &fileName,
		FileMimeType: &mimeType,
		Amount:       amount,
		Status:       model.PaymentPending,
	}
	if err := s.payments.Create(ctx, payment); err != nil {
		return nil, err
	}
	return paymentToResponse(payment), nil
}

func (s *paymentService) SubmitCash(ctx context.Context, tenantID uuid.UUID, amount decimal.Decimal) (*dto.PaymentResponse, error) {
	payment := &model.Payment{
		TenantID: tenantID,
		Type:     model.PaymentTypeCash,
		Amount:   amount,
		Status:   model.PaymentPending,
	}
	if err := s.payments.Create(ctx, payment); err != nil {
		return nil, err
	}
	return paymentToResponse(payment), nil
}

func (s *paymentService) ListOwn(ctx context.Context, tenantID uuid.UUID) ([]dto.PaymentResponse, error) {
	payments, err := s.payments.ListByTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	return paymentsToResponses(payments), nil
}

func (s *paymentService) ListAll(ctx context.Context) ([]dto.PaymentResponse, error) {
	payments, err := s.payments.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return paymentsToResponses(payments), nil
}

// Approve marks the payment approved and grants the owning tenant Wi-Fi
// entitlement. Both writes run in one transaction so a crash between them
// cannot leave an approved payment without entitlement, or the reverse.
// The activation notification is queued only after the commit.
func (s *paymentService) Approve(ctx context.Context, paymentID uuid.UUID) (*dto.PaymentResponse, error) {
	payment, err := s.payments.FindByID(ctx, paymentID)
	if err != nil {
		return nil, fmt.Errorf("payment %w", ErrNotFound)
	}
	tenant, err := s.tenants.FindByID(ctx, payment.TenantID)
	if err != nil {
		return nil, fmt.Errorf("tenant %w", ErrNotFound)
	}

	now := time.Now()
	payment.Status = model.PaymentApproved
	payment.ApprovedAt = &now
	tenant.WifiAccess = true

	err = runTx(ctx, s.payments.DB(), func(tx *gorm.DB) error {
		if tx == nil {
			if err := s.payments.Update(ctx, payment); err != nil {
				return err
			}
			return s.tenants.Update(ctx, tenant)
		}
		if err := s.payments.UpdateTx(tx, payment); err != nil {
			return err
		}
		return s.tenants.UpdateTx(tx, tenant)
	})
	if err != nil {
		return nil, err
	}

	s.sendActivation(ctx, tenant)
	return paymentToResponse(payment), nil
}

// Reject only flips the payment status; the tenant record is untouched.
func (s *paymentService) Reject(ctx context.Context, paymentID uuid.UUID) (*dto.PaymentResponse, error) {
	payment, err := s.payments.FindByID(ctx, paymentID)
	if err != nil {
		return nil, fmt.Errorf("payment %w", ErrNotFound)
	}
	payment.Status = model.PaymentRejected
	if err := s.payments.Update(ctx, payment); err != nil {
		return nil, err
	}
	return paymentToResponse(payment), nil
}

func (s *paymentService) Proof(ctx context.Context, paymentID uuid.UUID) (*model.Payment, error) {
	payment, err := s.payments.FindByID(ctx, paymentID)
	if err != nil {
		return nil, fmt.Errorf("payment %w", ErrNotFound)
	}
	return payment, nil
}

func (s *paymentService) sendActivation(ctx context.Context, t *model.Tenant) {
	if s.dispatcher == nil {
		return
	}
	subject, body := notify.Activation(t, s.cfg.NetworkName)
	if err := s.dispatcher.EnqueueEmail(ctx, worker.EmailJobPayload{To: t.Email, Subject: subject, HTML: body}); err != nil {
		log.Error().Err(err).Str("tenant", t.Email).Msg("payments: failed to enqueue activation email")
	}
	if err := s.dispatcher.EnqueueSMS(ctx, worker.SMSJobPayload{To: t.Phone, Message: notify.ActivationSMS(t, s.cfg.NetworkName)}); err != nil {
		log.Error().Err(err).Str("tenant", t.Email).Msg("payments: failed to enqueue activation SMS")
	}
}

// ── helpers ──────────────────────────────────────────────────────────────────

func paymentToResponse(p *model.Payment) *dto.PaymentResponse {
	resp := &dto.PaymentResponse{
		ID:        p.ID.String(),
		TenantID:  p.TenantID.String(),
		Type:      p.Type,
		FileName:  p.FileName,
		Amount:    p.Amount,
		Status:    p.Status,
		CreatedAt: p.CreatedAt.Format(time.RFC3339),
	}
	if p.ApprovedAt != nil {
		s := p.ApprovedAt.Format(time.RFC3339)
		resp.ApprovedAt = &s
	}
	if p.Tenant != nil {
		resp.Tenant = &dto.TenantSummary{
			ID:         p.Tenant.ID.String(),
			Name:       p.Tenant.Name,
			RoomNumber: p.Tenant.RoomNumber,
			Phone:      p.Tenant.Phone,
			Email:      p.Tenant.Email,
		}
	}
	return resp
}

func paymentsToResponses(payments []model.Payment) []dto.PaymentResponse {
	resp := make([]dto.PaymentResponse, len(payments))
	for i := range payments {
		resp[i] = *paymentToResponse(&payments[i])
	}
	return resp
}
