// internal/pkg/capability/capability_test.go
package capability

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetContainment(t *testing.T) {
	s := NewSet(CheckoutProcess, ProductsRead)

	assert.True(t, s.Has(CheckoutProcess))
	assert.False(t, s.Has(AdminManage))

	assert.True(t, s.HasAll(CheckoutProcess, ProductsRead))
	assert.False(t, s.HasAll(CheckoutProcess, AdminManage))

	assert.True(t, s.HasAny(AdminManage, ProductsRead))
	assert.False(t, s.HasAny(AdminManage, ReportsRead))
}

func TestEmptySetDeniesEverything(t *testing.T) {
	s := NewSet()

	assert.False(t, s.Has(CheckoutProcess))
	assert.False(t, s.HasAny(CheckoutProcess, ProductsRead, ReportsRead, SyncTrigger, AdminManage))
	assert.True(t, s.HasAll()) // vacuously
}

func TestForRoleAdmin(t *testing.T) {
	s := ForRole("admin")
	assert.True(t, s.HasAll(CheckoutProcess, ProductsRead, ReportsRead, SyncTrigger, AdminManage))
}

func TestForRoleCashier(t *testing.T) {
	s := ForRole("cashier")
	assert.True(t, s.HasAll(CheckoutProcess, ProductsRead, SyncTrigger))
	assert.False(t, s.Has(ReportsRead))
	assert.False(t, s.Has(AdminManage))
}

func TestForRoleSupervisor(t *testing.T) {
	s := ForRole("supervisor")
	assert.True(t, s.HasAll(CheckoutProcess, ProductsRead, ReportsRead, SyncTrigger))
	assert.False(t, s.Has(AdminManage))
}

func TestForRoleUnknownIsEmpty(t *testing.T) {
	s := ForRole("intern")
	assert.Empty(t, s)
}
