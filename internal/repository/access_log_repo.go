package repository

import (
	"context"

	"kgwahlawifi/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AccessLogRepository interface {
	Create(ctx context.Context, l *model.AccessLog) error
	// FindOpen returns the tenant's open session for a device MAC, if any.
	FindOpen(ctx context.Context, tenantID uuid.UUID, deviceMAC string) (*model.AccessLog, error)
	// CountOpen counts the tenant's open sessions across all devices.
	CountOpen(ctx context.Context, tenantID uuid.UUID) (int64, error)
	ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]model.AccessLog, error)
	Update(ctx context.Context, l *model.AccessLog) error
}

type accessLogRepo struct{ db *gorm.DB }

func NewAccessLogRepository(db *gorm.DB) AccessLogRepository { return &accessLogRepo{db: db} }

func (r *accessLogRepo) Create(ctx context.Context, l *model.AccessLog) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *accessLogRepo) FindOpen(ctx context.Context, tenantID uuid.UUID, deviceMAC string) (*model.AccessLog, error) {
	var l model.AccessLog
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND device_mac = ? AND disconnected_at IS NULL", tenantID, deviceMAC).
		First(&l).Error
	return &l, err
}

func (r *accessLogRepo) CountOpen(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.AccessLog{}).
		Where("tenant_id = ? AND disconnected_at IS NULL", tenantID).
		Count(&count).Error
	return count, err
}

func (r *accessLogRepo) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]model.AccessLog, error) {
	var logs []model.AccessLog
	err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("connected_at DESC").
		Find(&logs).Error
	return logs, err
}

func (r *accessLogRepo) Update(ctx context.Context, l *model.AccessLog) error {
	return r.db.WithContext(ctx).Save(l).Error
}
