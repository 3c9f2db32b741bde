package service

import (
	"context"
	"testing"
	"time"

	"kgwahlawifi/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func newTenantService(tenants *stubTenantRepo, payments *stubPaymentRepo) TenantService {
	return NewTenantService(tenants, payments, nil, newTestCfg())
}

func TestListTenants_SearchFiltersByNameOrEmail(t *testing.T) {
	tenants := newStubTenantRepo()
	a := seedTenant(t, tenants, "thabo@example.com", "27821111111", "password123")
	a.Name = "Thabo Mokoena"
	b := seedTenant(t, tenants, "lindiwe@example.com", "27822222222", "password123")
	b.Name = "Lindiwe Dlamini"
	svc := newTenantService(tenants, newStubPaymentRepo())

	all, err := svc.List(context.Background(), "")
	assert.NoError(t, err)
	assert.Len(t, all, 2)

	matched, err := svc.List(context.Background(), "THABO")
	assert.NoError(t, err)
	assert.Len(t, matched, 1)
	assert.Equal(t, "Thabo Mokoena", matched[0].Name)
}

func TestBlock_RevokesEntitlement(t *testing.T) {
	tenants := newStubTenantRepo()
	tenant := seedTenant(t, tenants, "thabo@example.com", "27821234567", "password123")
	tenant.WifiAccess = true
	svc := newTenantService(tenants, newStubPaymentRepo())

	resp, err := svc.Block(context.Background(), tenant.ID)
	assert.NoError(t, err)
	assert.Equal(t, model.TenantBlocked, resp.Status)
	assert.False(t, resp.WifiAccess)
}

func TestUnblock_DoesNotRestoreEntitlement(t *testing.T) {
	tenants := newStubTenantRepo()
	tenant := seedTenant(t, tenants, "thabo@example.com", "27821234567", "password123")
	tenant.Status = model.TenantBlocked
	tenant.WifiAccess = false
	svc := newTenantService(tenants, newStubPaymentRepo())

	resp, err := svc.Unblock(context.Background(), tenant.ID)
	assert.NoError(t, err)
	assert.Equal(t, model.TenantActive, resp.Status)
	assert.False(t, resp.WifiAccess, "unblock must not grant entitlement")
}

func TestApproveCash_ApprovesPendingPaymentAndGrantsAccess(t *testing.T) {
	tenants := newStubTenantRepo()
	payments := newStubPaymentRepo()
	tenant := seedTenant(t, tenants, "thabo@example.com", "27821234567", "password123")
	cash := &model.Payment{
		TenantID: tenant.ID,
		Type:     model.PaymentTypeCash,
		Amount:   decimal.NewFromInt(350),
		Status:   model.PaymentPending,
	}
	assert.NoError(t, payments.Create(context.Background(), cash))
	svc := newTenantService(tenants, payments)

	resp, err := svc.ApproveCash(context.Background(), tenant.ID)
	assert.NoError(t, err)
	assert.True(t, resp.WifiAccess)
	assert.Equal(t, model.TenantActive, resp.Status)
	assert.Equal(t, model.PaymentApproved, cash.Status)
	assert.NotNil(t, cash.ApprovedAt)
}

func TestApproveCash_NoPendingPayment_StillGrantsAccess(t *testing.T) {
	tenants := newStubTenantRepo()
	tenant := seedTenant(t, tenants, "thabo@example.com", "27821234567", "password123")
	svc := newTenantService(tenants, newStubPaymentRepo())

	resp, err := svc.ApproveCash(context.Background(), tenant.ID)
	assert.NoError(t, err)
	assert.True(t, resp.WifiAccess)
}

func TestApproveCash_UnknownTenant(t *testing.T) {
	svc := newTenantService(newStubTenantRepo(), newStubPaymentRepo())

	_, err := svc.ApproveCash(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestActivateAndDeactivate(t *testing.T) {
	tenants := newStubTenantRepo()
	tenant := seedTenant(t, tenants, "thabo@example.com", "27821234567", "password123")
	tenant.Status = model.TenantInactive
	tenant.ExpiryDate = time.Now().AddDate(0, 1, 0)
	svc := newTenantService(tenants, newStubPaymentRepo())

	activated, err := svc.Activate(context.Background(), tenant.ID)
	assert.NoError(t, err)
	assert.True(t, activated.WifiAccess)
	assert.Equal(t, model.TenantActive, activated.Status)

	deactivated, err := svc.Deactivate(context.Background(), tenant.ID)
	assert.NoError(t, err)
	assert.False(t, deactivated.WifiAccess)
	assert.Equal(t, model.TenantInactive, deactivated.Status)
}
