package repository

import (
	"context"
	"time"

	"kgwahlawifi/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TenantRepository interface {
	// DB exposes the underlying handle so services can open transactions
	// spanning tenant and payment writes. Nil in unit-test stubs.
	DB() *gorm.DB
	Create(ctx context.Context, t *model.Tenant) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Tenant, error)
	FindByEmail(ctx context.Context, email string) (*model.Tenant, error)
	// FindByIdentifier looks up by email or normalized phone (login).
	FindByIdentifier(ctx context.Context, identifier string) (*model.Tenant, error)
	// ExistsByEmailOrIDNumber answers the registration conflict check.
	ExistsByEmailOrIDNumber(ctx context.Context, email, idNumber string) (bool, error)
	// FindByResetToken matches an unexpired reset token.
	FindByResetToken(ctx context.Context, token string, now time.Time) (*model.Tenant, error)
	// Search lists all tenants, or those whose name or email contains q
	// (case-insensitive) when q is non-empty.
	Search(ctx context.Context, q string) ([]model.Tenant, error)
	// ListExpiring returns tenants with expiry_date <= horizon whose status
	// is not blocked (the sweep's selection).
	ListExpiring(ctx context.Context, horizon time.Time) ([]model.Tenant, error)
	Update(ctx context.Context, t *model.Tenant) error
	UpdateTx(tx *gorm.DB, t *model.Tenant) error
}

type tenantRepo struct{ db *gorm.DB }

func NewTenantRepository(db *gorm.DB) TenantRepository { return &tenantRepo{db: db} }

func (r *tenantRepo) DB() *gorm.DB { return r.db }

func (r *tenantRepo) Create(ctx context.Context, t *model.Tenant) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *tenantRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Tenant, error) {
	var t model.Tenant
	err := r.db.WithContext(ctx).First(&t, "id = ?", id).Error
	return &t, err
}

func (r *tenantRepo) FindByEmail(ctx context.Context, email string) (*model.Tenant, error) {
	var t model.Tenant
	err := r.db.WithContext(ctx).Where("LOWER(email) = LOWER(?)", email).First(&t).Error
	return &t, err
}

func (r *tenantRepo) FindByIdentifier(ctx context.Context, identifier string) (*model.Tenant, error) {
	var t model.Tenant
	err := r.db.WithContext(ctx).
		Where("LOWER(email) = LOWER(?) OR phone = ?", identifier, identifier).
		First(&t).Error
	return &t, err
}

func (r *tenantRepo) ExistsByEmailOrIDNumber(ctx context.Context, email, idNumber string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Tenant{}).
		Where("LOWER(email) = LOWER(?) OR id_number = ?", email, idNumber).
		Count(&count).Error
	return count > 0, err
}

func (r *tenantRepo) FindByResetToken(ctx context.Context, token string, now time.Time) (*model.Tenant, error) {
	var t model.Tenant
	err := r.db.WithContext(ctx).
		Where("reset_token = ? AND reset_token_expiry > ?", token, now).
		First(&t).Error
	return &t, err
}

func (r *tenantRepo) Search(ctx context.Context, q string) ([]model.Tenant, error) {
	var tenants []model.Tenant
	tx := r.db.WithContext(ctx)
	if q != "" {
		pattern := "%" + q + "%"
		tx = tx.Where("LOWER(name) LIKE LOWER(?) OR LOWER(email) LIKE LOWER(?)", pattern, pattern)
	}
	err := tx.Order("created_at DESC").Find(&tenants).Error
	return tenants, err
}

func (r *tenantRepo) ListExpiring(ctx context.Context, horizon time.Time) ([]model.Tenant, error) {
	var tenants []model.Tenant
	err := r.db.WithContext(ctx).
		Where("expiry_date <= ? AND status <> ?", horizon, model.TenantBlocked).
		Find(&tenants).Error
	return tenants, err
}

func (r *tenantRepo) Update(ctx context.Context, t *model.Tenant) error {
	return r.db.WithContext(ctx).Save(t).Error
}

func (r *tenantRepo) UpdateTx(tx *gorm.DB, t *model.Tenant) error {
	return tx.Save(t).Error
}
