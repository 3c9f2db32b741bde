package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"kgwahlawifi/internal/dto"
	"kgwahlawifi/internal/model"
	"kgwahlawifi/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type AccessService interface {
	// Enable opens a device session; forbidden unless the tenant holds
	// Wi-Fi entitlement.
	Enable(ctx context.Context, tenantID uuid.UUID, deviceMAC string) (*dto.AccessLogResponse, error)
	// Disable closes the device's open session. When no open sessions remain
	// across any device the tenant's entitlement flag is cleared.
	Disable(ctx context.Context, tenantID uuid.UUID, deviceMAC string) error
}

type accessService struct {
	logs    repository.AccessLogRepository
	tenants repository.TenantRepository
}

func NewAccessService(logs repository.AccessLogRepository, tenants repository.TenantRepository) AccessService {
	return &accessService{logs: logs, tenants: tenants}
}

func (s *accessService) Enable(ctx context.Context, tenantID uuid.UUID, deviceMAC string) (*dto.AccessLogResponse, error) {
	tenant, err := s.tenants.FindByID(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("tenant %w", ErrNotFound)
	}
	if !tenant.WifiAccess {
		return nil, fmt.Errorf("access %w", ErrForbidden)
	}

	entry := &model.AccessLog{
		TenantID:    tenantID,
		DeviceMAC:   deviceMAC,
		ConnectedAt: time.Now(),
	}
	if err := s.logs.Create(ctx, entry); err != nil {
		return nil, err
	}
	return accessLogToResponse(entry), nil
}

func (s *accessService) Disable(ctx context.Context, tenantID uuid.UUID, deviceMAC string) error {
	entry, err := s.logs.FindOpen(ctx, tenantID, deviceMAC)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		// No open session for this device; still fall through to the
		// zero-open check below.
	} else {
		now := time.Now()
		entry.DisconnectedAt = &now
		if err := s.logs.Update(ctx, entry); err != nil {
			return err
		}
	}

	open, err := s.logs.CountOpen(ctx, tenantID)
	if err != nil {
		return err
	}
	if open == 0 {
		tenant, err := s.tenants.FindByID(ctx, tenantID)
		if err != nil {
			return fmt.Errorf("tenant %w", ErrNotFound)
		}
		if tenant.WifiAccess {
			tenant.WifiAccess = false
			if err := s.tenants.Update(ctx, tenant); err != nil {
				return err
			}
			log.Info().Str("tenant", tenant.Email).Msg("access: last session closed, entitlement cleared")
		}
	}
	return nil
}

func accessLogToResponse(l *model.AccessLog) *dto.AccessLogResponse {
	resp := &dto.AccessLogResponse{
		ID:          l.ID.String(),
		TenantID:    l.TenantID.String(),
		DeviceMAC:   l.DeviceMAC,
		ConnectedAt: l.ConnectedAt.Format(time.RFC3339),
	}
	if l.DisconnectedAt != nil {
		s := l.DisconnectedAt.Format(time.RFC3339)
		resp.DisconnectedAt = &s
	}
	return resp
}
