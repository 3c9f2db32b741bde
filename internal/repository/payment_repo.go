package repository

import (
	"context"

	"kgwahlawifi/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PaymentRepository interface {
	DB() *gorm.DB
	Create(ctx context.Context, p *model.Payment) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Payment, error)
	ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]model.Payment, error)
	// ListAll returns every payment with the owning tenant preloaded
	// for the admin listing.
	ListAll(ctx context.Context) ([]model.Payment, error)
	// FindPendingCash returns a tenant's oldest pending cash payment, if any.
	FindPendingCash(ctx context.Context, tenantID uuid.UUID) (*model.Payment, error)
	Update(ctx context.Context, p *model.Payment) error
	UpdateTx(tx *gorm.DB, p *model.Payment) error
}

type paymentRepo struct{ db *gorm.DB }

func NewPaymentRepository(db *gorm.DB) PaymentRepository { return &paymentRepo{db: db} }

func (r *paymentRepo) DB() *gorm.DB { return r.db }

func (r *paymentRepo) Create(ctx context.Context, p *model.Payment) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *paymentRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Payment, error) {
	var p model.Payment
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	return &p, err
}

func (r *paymentRepo) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]model.Payment, error) {
	var payments []model.Payment
	// Omit file payloads from listings; they are streamed by the proof route.
	err := r.db.WithContext(ctx).
		Omit("file_data").
		Where("tenant_id = ?", tenantID).
		Order("created_at DESC").
		Find(&payments).Error
	return payments, err
}

func (r *paymentRepo) ListAll(ctx context.Context) ([]model.Payment, error) {
	var payments []model.Payment
	err := r.db.WithContext(ctx).
		Omit("file_data").
		Preload("Tenant").
		Order("created_at DESC").
		Find(&payments).Error
	return payments, err
}

func (r *paymentRepo) FindPendingCash(ctx context.Context, tenantID uuid.UUID) (*model.Payment, error) {
	var p model.Payment
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND type = ? AND status = ?", tenantID, model.PaymentTypeCash, model.PaymentPending).
		Order("created_at ASC").
		First(&p).Error
	return &p, err
}

func (r *paymentRepo) Update(ctx context.Context, p *model.Payment) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *paymentRepo) UpdateTx(tx *gorm.DB, p *model.Payment) error {
	return tx.Save(p).Error
}
