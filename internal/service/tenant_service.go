package service

import (
	"context"
	"errors"
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
	"gorm.io/gorm"
)

type TenantService interface {
	List(ctx context.Context, search string) ([]dto.TenantResponse, error)
	Block(ctx context.Context, id uuid.UUID) (*dto.TenantResponse, error)
	Unblock(ctx context.Context, id uuid.UUID) (*dto.TenantResponse, error)
	// ApproveCash approves the tenant's pending cash payment (if any) and
	// grants entitlement — the walk-in counterpart of payment approval.
	ApproveCash(ctx context.Context, id uuid.UUID) (*dto.TenantResponse, error)
	Activate(ctx context.Context, id uuid.UUID) (*dto.TenantResponse, error)
	Deactivate(ctx context.Context, id uuid.UUID) (*dto.TenantResponse, error)
}

type tenantService struct {
	tenants    repository.TenantRepository
	payments   repository.PaymentRepository
	dispatcher *worker.Dispatcher
	cfg        *config.Config
}

func NewTenantService(tenants repository.TenantRepository, payments repository.PaymentRepository, dispatcher *worker.Dispatcher, cfg *config.Config) TenantService {
	return &tenantService{tenants: tenants, payments: payments, dispatcher: dispatcher, cfg: cfg}
}

func (s *tenantService) List(ctx context.Context, search string) ([]dto.TenantResponse, error) {
	tenants, err := s.tenants.Search(ctx, search)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.TenantResponse, len(tenants))
	for i := range tenants {
		resp[i] = *tenantToResponse(&tenants[i])
	}
	return resp, nil
}

// Block revokes entitlement unconditionally.
func (s *tenantService) Block(ctx context.Context, id uuid.UUID) (*dto.TenantResponse, error) {
	tenant, err := s.tenants.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("tenant %w", ErrNotFound)
	}
	tenant.Status = model.TenantBlocked
	tenant.WifiAccess = false
	if err := s.tenants.Update(ctx, tenant); err != nil {
		return nil, err
	}
	return tenantToResponse(tenant), nil
}

// Unblock restores the active status but leaves WifiAccess as it was:
// entitlement is only granted through approval or explicit activation.
func (s *tenantService) Unblock(ctx context.Context, id uuid.UUID) (*dto.TenantResponse, error) {
	tenant, err := s.tenants.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("tenant %w", ErrNotFound)
	}
	tenant.Status = model.TenantActive
	if err := s.tenants.Update(ctx, tenant); err != nil {
		return nil, err
	}
	return tenantToResponse(tenant), nil
}

func (s *tenantService) ApproveCash(ctx context.Context, id uuid.UUID) (*dto.TenantResponse, error) {
	tenant, err := s.tenants.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("tenant %w", ErrNotFound)
	}

	// A missing pending cash payment is not an error; the admin may be
	// activating a tenant who paid earlier.
	pending, err := s.payments.FindPendingCash(ctx, id)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		pending = nil
	}

	now := time.Now()
	tenant.WifiAccess = true
	tenant.Status = model.TenantActive

	err = runTx(ctx, s.tenants.DB(), func(tx *gorm.DB) error {
		if pending != nil && pending.Status == model.PaymentPending {
			pending.Status = model.PaymentApproved
			pending.ApprovedAt = &now
			if tx == nil {
				if err := s.payments.Update(ctx, pending); err != nil {
					return err
				}
			} else if err := s.payments.UpdateTx(tx, pending); err != nil {
				return err
			}
		}
		if tx == nil {
			return s.tenants.Update(ctx, tenant)
		}
		return s.tenants.UpdateTx(tx, tenant)
	})
	if err != nil {
		return nil, err
	}

	s.sendActivation(ctx, tenant)
	return tenantToResponse(tenant), nil
}

func (s *tenantService) Activate(ctx context.Context, id uuid.UUID) (*dto.TenantResponse, error) {
	tenant, err := s.tenants.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("tenant %w", ErrNotFound)
	}
	tenant.WifiAccess = true
	tenant.Status = model.TenantActive
	if err := s.tenants.Update(ctx, tenant); err != nil {
		return nil, err
	}
	s.sendActivation(ctx, tenant)
	return tenantToResponse(tenant), nil
}

func (s *tenantService) Deactivate(ctx context.Context, id uuid.UUID) (*dto.TenantResponse, error) {
	tenant, err := s.tenants.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("tenant %w", ErrNotFound)
	}
	tenant.WifiAccess = false
	tenant.Status = model.TenantInactive
	if err := s.tenants.Update(ctx, tenant); err != nil {
		return nil, err
	}
	return tenantToResponse(tenant), nil
}

func (s *tenantService) sendActivation(ctx context.Context, t *model.Tenant) {
	if s.dispatcher == nil {
		return
	}
	subject, body := notify.Activation(t, s.cfg.NetworkName)
	if err := s.dispatcher.EnqueueEmail(ctx, worker.EmailJobPayload{To: t.Email, Subject: subject, HTML: body}); err != nil {
		log.Error().Err(err).Str("tenant", t.Email).Msg("tenants: failed to enqueue activation email")
	}
	if err := s.dispatcher.EnqueueSMS(ctx, worker.SMSJobPayload{To: t.Phone, Message: notify.ActivationSMS(t, s.cfg.NetworkName)}); err != nil {
		log.Error().Err(err).Str("tenant", t.Email).Msg("tenants: failed to enqueue activation SMS")
	}
}
