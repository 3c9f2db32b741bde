package service

import (
	"context"
	"testing"
	"time"

	"kgwahlawifi/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

const testMAC = "AA:BB:CC:DD:EE:01"

func TestEnable_RequiresEntitlement(t *testing.T) {
	logs := newStubAccessLogRepo()
	tenants := newStubTenantRepo()
	tenant := seedTenant(t, tenants, "thabo@example.com", "27821234567", "password123")
	tenant.WifiAccess = false
	svc := NewAccessService(logs, tenants)

	_, err := svc.Enable(context.Background(), tenant.ID, testMAC)
	assert.ErrorIs(t, err, ErrForbidden)
	assert.Empty(t, logs.logs, "no session may be opened without entitlement")
}

func TestEnable_OpensSession(t *testing.T) {
	logs := newStubAccessLogRepo()
	tenants := newStubTenantRepo()
	tenant := seedTenant(t, tenants, "thabo@example.com", "27821234567", "password123")
	tenant.WifiAccess = true
	svc := NewAccessService(logs, tenants)

	entry, err := svc.Enable(context.Background(), tenant.ID, testMAC)
	assert.NoError(t, err)
	assert.Equal(t, testMAC, entry.DeviceMAC)
	assert.Nil(t, entry.DisconnectedAt)
}

func TestEnable_UnknownTenant(t *testing.T) {
	svc := NewAccessService(newStubAccessLogRepo(), newStubTenantRepo())

	_, err := svc.Enable(context.Background(), uuid.New(), testMAC)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDisable_LastSessionClearsEntitlement(t *testing.T) {
	logs := newStubAccessLogRepo()
	tenants := newStubTenantRepo()
	tenant := seedTenant(t, tenants, "thabo@example.com", "27821234567", "password123")
	tenant.WifiAccess = true
	svc := NewAccessService(logs, tenants)

	_, err := svc.Enable(context.Background(), tenant.ID, testMAC)
	assert.NoError(t, err)

	assert.NoError(t, svc.Disable(context.Background(), tenant.ID, testMAC))
	assert.False(t, tenant.WifiAccess, "closing the last session clears entitlement")

	_, err = logs.FindOpen(context.Background(), tenant.ID, testMAC)
	assert.Error(t, err, "the session must be closed")
}

func TestDisable_OtherOpenSessionKeepsEntitlement(t *testing.T) {
	logs := newStubAccessLogRepo()
	tenants := newStubTenantRepo()
	tenant := seedTenant(t, tenants, "thabo@example.com", "27821234567", "password123")
	tenant.WifiAccess = true
	svc := NewAccessService(logs, tenants)

	_, err := svc.Enable(context.Background(), tenant.ID, testMAC)
	assert.NoError(t, err)
	_, err = svc.Enable(context.Background(), tenant.ID, "AA:BB:CC:DD:EE:02")
	assert.NoError(t, err)

	assert.NoError(t, svc.Disable(context.Background(), tenant.ID, testMAC))
	assert.True(t, tenant.WifiAccess, "a second open session keeps entitlement")
}

func TestDisable_NoOpenSession_StillChecksRemaining(t *testing.T) {
	logs := newStubAccessLogRepo()
	tenants := newStubTenantRepo()
	tenant := seedTenant(t, tenants, "thabo@example.com", "27821234567", "password123")
	tenant.WifiAccess = true
	// A session the tenant closed some other way.
	closed := time.Now().Add(-time.Hour)
	stale := &model.AccessLog{TenantID: tenant.ID, DeviceMAC: testMAC, ConnectedAt: closed.Add(-time.Hour), DisconnectedAt: &closed}
	assert.NoError(t, logs.Create(context.Background(), stale))
	svc := NewAccessService(logs, tenants)

	assert.NoError(t, svc.Disable(context.Background(), tenant.ID, testMAC))
	assert.False(t, tenant.WifiAccess)
}
