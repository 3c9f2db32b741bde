package service

import (
	"context"
	"strings"
	"time"

	"kgwahlawifi/internal/config"
	"kgwahlawifi/internal/model"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"testing"

	"github.com/stretchr/testify/assert"
)

// ── In-memory repository stubs ────────────────────────────────────────────────

type stubTenantRepo struct {
	tenants map[uuid.UUID]*model.Tenant
}

func newStubTenantRepo() *stubTenantRepo {
	return &stubTenantRepo{tenants: make(map[uuid.UUID]*model.Tenant)}
}

func (r *stubTenantRepo) DB() *gorm.DB { return nil }

func (r *stubTenantRepo) Create(_ context.Context, t *model.Tenant) error {
	t.ID = uuid.New()
	t.CreatedAt = time.Now()
	r.tenants[t.ID] = t
	return nil
}

func (r *stubTenantRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Tenant, error) {
	t, ok := r.tenants[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return t, nil
}

func (r *stubTenantRepo) FindByEmail(_ context.Context, email string) (*model.Tenant, error) {
	for _, t := range r.tenants {
		if strings.EqualFold(t.Email, email) {
			return t, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubTenantRepo) FindByIdentifier(_ context.Context, identifier string) (*model.Tenant, error) {
	for _, t := range r.tenants {
		if strings.EqualFold(t.Email, identifier) || t.Phone == identifier {
			return t, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubTenantRepo) ExistsByEmailOrIDNumber(_ context.Context, email, idNumber string) (bool, error) {
	for _, t := range r.tenants {
		if strings.EqualFold(t.Email, email) || t.IDNumber == idNumber {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubTenantRepo) FindByResetToken(_ context.Context, token string, now time.Time) (*model.Tenant, error) {
	for _, t := range r.tenants {
		if t.ResetToken != nil && *t.ResetToken == token &&
			t.ResetTokenExpiry != nil && t.ResetTokenExpiry.After(now) {
			return t, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubTenantRepo) Search(_ context.Context, q string) ([]model.Tenant, error) {
	out := make([]model.Tenant, 0, len(r.tenants))
	for _, t := range r.tenants {
		if q == "" ||
			strings.Contains(strings.ToLower(t.Name), strings.ToLower(q)) ||
			strings.Contains(strings.ToLower(t.Email), strings.ToLower(q)) {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (r *stubTenantRepo) ListExpiring(_ context.Context, horizon time.Time) ([]model.Tenant, error) {
	var out []model.Tenant
	for _, t := range r.tenants {
		if !t.ExpiryDate.After(horizon) && t.Status != model.TenantBlocked {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (r *stubTenantRepo) Update(_ context.Context, t *model.Tenant) error {
	if _, ok := r.tenants[t.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.tenants[t.ID] = t
	return nil
}

func (r *stubTenantRepo) UpdateTx(_ *gorm.DB, t *model.Tenant) error {
	return r.Update(context.Background(), t)
}

type stubAdminRepo struct {
	admins map[uuid.UUID]*model.Admin
}

func newStubAdminRepo() *stubAdminRepo {
	return &stubAdminRepo{admins: make(map[uuid.UUID]*model.Admin)}
}

func (r *stubAdminRepo) Create(_ context.Context, a *model.Admin) error {
	a.ID = uuid.New()
	r.admins[a.ID] = a
	return nil
}

func (r *stubAdminRepo) FindByEmail(_ context.Context, email string) (*model.Admin, error) {
	for _, a := range r.admins {
		if strings.EqualFold(a.Email, email) {
			return a, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubAdminRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Admin, error) {
	a, ok := r.admins[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return a, nil
}

type stubPaymentRepo struct {
	payments map[uuid.UUID]*model.Payment
}

func newStubPaymentRepo() *stubPaymentRepo {
	return &stubPaymentRepo{payments: make(map[uuid.UUID]*model.Payment)}
}

func (r *stubPaymentRepo) DB() *gorm.DB { return nil }

func (r *stubPaymentRepo) Create(_ context.Context, p *model.Payment) error {
	p.ID = uuid.New()
	p.CreatedAt = time.Now()
	r.payments[p.ID] = p
	return nil
}

func (r *stubPaymentRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Payment, error) {
	p, ok := r.payments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubPaymentRepo) ListByTenant(_ context.Context, tenantID uuid.UUID) ([]model.Payment, error) {
	var out []model.Payment
	for _, p := range r.payments {
		if p.TenantID == tenantID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubPaymentRepo) ListAll(_ context.Context) ([]model.Payment, error) {
	out := make([]model.Payment, 0, len(r.payments))
	for _, p := range r.payments {
		out = append(out, *p)
	}
	return out, nil
}

func (r *stubPaymentRepo) FindPendingCash(_ context.Context, tenantID uuid.UUID) (*model.Payment, error) {
	var oldest *model.Payment
	for _, p := range r.payments {
		if p.TenantID != tenantID || p.Type != model.PaymentTypeCash || p.Status != model.PaymentPending {
			continue
		}
		if oldest == nil || p.CreatedAt.Before(oldest.CreatedAt) {
			oldest = p
		}
	}
	if oldest == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return oldest, nil
}

func (r *stubPaymentRepo) Update(_ context.Context, p *model.Payment) error {
	if _, ok := r.payments[p.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.payments[p.ID] = p
	return nil
}

func (r *stubPaymentRepo) UpdateTx(_ *gorm.DB, p *model.Payment) error {
	return r.Update(context.Background(), p)
}

type stubAccessLogRepo struct {
	logs map[uuid.UUID]*model.AccessLog
}

func newStubAccessLogRepo() *stubAccessLogRepo {
	return &stubAccessLogRepo{logs: make(map[uuid.UUID]*model.AccessLog)}
}

func (r *stubAccessLogRepo) Create(_ context.Context, l *model.AccessLog) error {
	l.ID = uuid.New()
	r.logs[l.ID] = l
	return nil
}

func (r *stubAccessLogRepo) FindOpen(_ context.Context, tenantID uuid.UUID, deviceMAC string) (*model.AccessLog, error) {
	for _, l := range r.logs {
		if l.TenantID == tenantID && l.DeviceMAC == deviceMAC && l.DisconnectedAt == nil {
			return l, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubAccessLogRepo) CountOpen(_ context.Context, tenantID uuid.UUID) (int64, error) {
	var n int64
	for _, l := range r.logs {
		if l.TenantID == tenantID && l.DisconnectedAt == nil {
			n++
		}
	}
	return n, nil
}

func (r *stubAccessLogRepo) ListByTenant(_ context.Context, tenantID uuid.UUID) ([]model.AccessLog, error) {
	var out []model.AccessLog
	for _, l := range r.logs {
		if l.TenantID == tenantID {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (r *stubAccessLogRepo) Update(_ context.Context, l *model.AccessLog) error {
	if _, ok := r.logs[l.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.logs[l.ID] = l
	return nil
}

// ── Helpers ───────────────────────────────────────────────────────────────────

func newTestCfg() *config.Config {
	return &config.Config{
		JWTSecret:          "test_jwt_secret_32_chars_minimum!",
		TenantTokenMinutes: 60,
		AdminTokenMinutes:  120,
		NetworkName:        "Skyline_Residences_5G",
		Domain:             "http://localhost:3000",
	}
}

func seedTenant(t *testing.T, repo *stubTenantRepo, email, phone, password string) *model.Tenant {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	assert.NoError(t, err)
	tenant := &model.Tenant{
		ID:           uuid.New(),
		Name:         "Test Tenant",
		RoomNumber:   "A12",
		IDNumber:     "9202204720082",
		Phone:        phone,
		Email:        email,
		MACAddress:   "AA:BB:CC:DD:EE:FF",
		PasswordHash: string(hash),
		Status:       model.TenantActive,
		ExpiryDate:   time.Now().AddDate(0, 1, 0),
	}
	repo.tenants[tenant.ID] = tenant
	return tenant
}
