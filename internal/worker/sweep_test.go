package worker

import (
	"context"
	"testing"
	"time"

	"kgwahlawifi/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

// sweepTenantRepo implements repository.TenantRepository over a map; only the
// methods the sweep touches do real work.
type sweepTenantRepo struct {
	tenants map[uuid.UUID]*model.Tenant
}

func newSweepRepo() *sweepTenantRepo {
	return &sweepTenantRepo{tenants: make(map[uuid.UUID]*model.Tenant)}
}

func (r *sweepTenantRepo) DB() *gorm.DB { return nil }

func (r *sweepTenantRepo) Create(_ context.Context, t *model.Tenant) error {
	r.tenants[t.ID] = t
	return nil
}

func (r *sweepTenantRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Tenant, error) {
	t, ok := r.tenants[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return t, nil
}

func (r *sweepTenantRepo) FindByEmail(context.Context, string) (*model.Tenant, error) {
	return nil, gorm.ErrRecordNotFound
}

func (r *sweepTenantRepo) FindByIdentifier(context.Context, string) (*model.Tenant, error) {
	return nil, gorm.ErrRecordNotFound
}

func (r *sweepTenantRepo) ExistsByEmailOrIDNumber(context.Context, string, string) (bool, error) {
	return false, nil
}

func (r *sweepTenantRepo) FindByResetToken(context.Context, string, time.Time) (*model.Tenant, error) {
	return nil, gorm.ErrRecordNotFound
}

func (r *sweepTenantRepo) Search(context.Context, string) ([]model.Tenant, error) {
	return nil, nil
}

func (r *sweepTenantRepo) ListExpiring(_ context.Context, horizon time.Time) ([]model.Tenant, error) {
	var out []model.Tenant
	for _, t := range r.tenants {
		if !t.ExpiryDate.After(horizon) && t.Status != model.TenantBlocked {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (r *sweepTenantRepo) Update(_ context.Context, t *model.Tenant) error {
	r.tenants[t.ID] = t
	return nil
}

func (r *sweepTenantRepo) UpdateTx(_ *gorm.DB, t *model.Tenant) error {
	r.tenants[t.ID] = t
	return nil
}

func addTenant(repo *sweepTenantRepo, email, status string, wifi bool, expiry time.Time) uuid.UUID {
	id := uuid.New()
	repo.tenants[id] = &model.Tenant{
		ID: id, Name: "T", Email: email, Phone: "27821234567",
		Status: status, WifiAccess: wifi, ExpiryDate: expiry,
	}
	return id
}

func TestRunExpirySweep_DisablesExpiredTenants(t *testing.T) {
	repo := newSweepRepo()
	now := time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC)
	id := addTenant(repo, "expired@example.com", model.TenantActive, true, now.Add(-24*time.Hour))

	expired, _ := RunExpirySweep(context.Background(), SweepConfig{Tenants: repo}, now)
	assert.Equal(t, 1, expired)
	assert.False(t, repo.tenants[id].WifiAccess)
	assert.Equal(t, model.TenantInactive, repo.tenants[id].Status)
}

func TestRunExpirySweep_SkipsBlockedTenants(t *testing.T) {
	repo := newSweepRepo()
	now := time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC)
	id := addTenant(repo, "blocked@example.com", model.TenantBlocked, false, now.Add(-24*time.Hour))

	expired, _ := RunExpirySweep(context.Background(), SweepConfig{Tenants: repo}, now)
	assert.Equal(t, 0, expired)
	assert.Equal(t, model.TenantBlocked, repo.tenants[id].Status)
}

func TestRunExpirySweep_LeavesUpcomingTenantsEnabled(t *testing.T) {
	repo := newSweepRepo()
	now := time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC)
	// Inside the reminder window but not yet expired.
	id := addTenant(repo, "soon@example.com", model.TenantActive, true, now.Add(48*time.Hour))

	expired, _ := RunExpirySweep(context.Background(), SweepConfig{Tenants: repo}, now)
	assert.Equal(t, 0, expired)
	assert.True(t, repo.tenants[id].WifiAccess, "a not-yet-expired tenant keeps access")
}

func TestRunExpirySweep_FarFutureNotSelected(t *testing.T) {
	repo := newSweepRepo()
	now := time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC)
	addTenant(repo, "later@example.com", model.TenantActive, true, now.Add(30*24*time.Hour))

	expired, notified := RunExpirySweep(context.Background(), SweepConfig{Tenants: repo}, now)
	assert.Equal(t, 0, expired)
	assert.Equal(t, 0, notified)
}

func TestUntilNextRun(t *testing.T) {
	loc := time.UTC
	// Before today's run hour: fires today.
	now := time.Date(2026, 8, 31, 7, 30, 0, 0, loc)
	assert.Equal(t, 90*time.Minute, untilNextRun(now, 9))

	// At the run hour: fires tomorrow.
	now = time.Date(2026, 8, 31, 9, 0, 0, 0, loc)
	assert.Equal(t, 24*time.Hour, untilNextRun(now, 9))

	// After the run hour: fires tomorrow.
	now = time.Date(2026, 8, 31, 23, 0, 0, 0, loc)
	assert.Equal(t, 10*time.Hour, untilNextRun(now, 9))
}
