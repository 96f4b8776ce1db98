package rbac_test

import (
	"testing"

	"go-hrcore/internal/rbac"
	rbacerrors "go-hrcore/internal/rbac/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTogglePermission(t *testing.T) {
	manage, ok := rbac.LookupPermission("leave.manage")
	require.True(t, ok)

	t.Run("toggle on adds code and immediate requires only", func(t *testing.T) {
		set := rbac.NewPermissionSet("employee.read")

		got := rbac.TogglePermission(set, "leave.manage", manage)

		assert.Equal(t, []string{"employee.read", "leave.approve", "leave.manage"}, got.Codes())
		assert.False(t, got.Has("leave.read"), "second-level prerequisite is not added")
		assert.Equal(t, []string{"employee.read"}, set.Codes(), "input set is untouched")
	})

	t.Run("toggle off removes only that code", func(t *testing.T) {
		set := rbac.NewPermissionSet("leave.read", "leave.approve", "leave.manage")
		approve, _ := rbac.LookupPermission("leave.approve")

		got := rbac.TogglePermission(set, "leave.approve", approve)

		assert.Equal(t, []string{"leave.manage", "leave.read"}, got.Codes(), "dependents remain")
	})

	t.Run("toggle on is a superset for every catalog code", func(t *testing.T) {
		for _, cat := range rbac.Catalog {
			for _, p := range cat.Permissions {
				for _, start := range []rbac.PermissionSet{{}, rbac.NewPermissionSet("role.read", "salary.read")} {
					if start.Has(p.Code) {
						continue
					}
					got := rbac.TogglePermission(start, p.Code, p)
					assert.True(t, got.Has(p.Code), p.Code)
					for _, req := range p.Requires {
						assert.True(t, got.Has(req), "%s requires %s", p.Code, req)
					}
					for _, c := range start.Codes() {
						assert.True(t, got.Has(c), "existing %s kept", c)
					}
				}
			}
		}
	})

	t.Run("toggle off is exact removal for every catalog code", func(t *testing.T) {
		full := rbac.PermissionSet{}
		for _, cat := range rbac.Catalog {
			for _, p := range cat.Permissions {
				full[p.Code] = true
			}
		}
		for _, cat := range rbac.Catalog {
			for _, p := range cat.Permissions {
				got := rbac.TogglePermission(full, p.Code, p)
				assert.Equal(t, full.Len()-1, got.Len())
				assert.False(t, got.Has(p.Code))
			}
		}
	})
}

func TestResolveTransitiveRequires(t *testing.T) {
	assert.Equal(t, []string{"leave.approve", "leave.read"}, rbac.ResolveTransitiveRequires("leave.manage"))
	assert.Equal(t,
		[]string{"employee.read", "payroll.compute", "payroll.generate", "payroll.read", "salary.read"},
		rbac.ResolveTransitiveRequires("payroll.process"),
	)
	assert.Empty(t, rbac.ResolveTransitiveRequires("leave.read"))
	assert.Empty(t, rbac.ResolveTransitiveRequires("unknown.code"))
}

func TestResolver_Toggle(t *testing.T) {
	t.Run("shallow by default", func(t *testing.T) {
		got, err := rbac.Resolver{}.Toggle(rbac.PermissionSet{}, "leave.manage")

		require.NoError(t, err)
		assert.Equal(t, []string{"leave.approve", "leave.manage"}, got.Codes())
	})

	t.Run("transitive closure when enabled", func(t *testing.T) {
		got, err := rbac.Resolver{Transitive: true}.Toggle(rbac.PermissionSet{}, "leave.manage")

		require.NoError(t, err)
		assert.Equal(t, []string{"leave.approve", "leave.manage", "leave.read"}, got.Codes())
	})

	t.Run("transitive toggle off still removes one code", func(t *testing.T) {
		set := rbac.NewPermissionSet("leave.read", "leave.approve", "leave.manage")

		got, err := rbac.Resolver{Transitive: true}.Toggle(set, "leave.manage")

		require.NoError(t, err)
		assert.Equal(t, []string{"leave.approve", "leave.read"}, got.Codes())
	})

	t.Run("unknown code", func(t *testing.T) {
		_, err := rbac.Resolver{}.Toggle(rbac.PermissionSet{}, "payroll.delete")

		assert.ErrorIs(t, err, rbacerrors.ErrUnknownPermission)
	})
}

func TestCanDelete(t *testing.T) {
	assert.True(t, rbac.CanDelete(0))
	for _, n := range []int64{1, 2, 150} {
		assert.False(t, rbac.CanDelete(n))
	}
}

func TestSplitCode(t *testing.T) {
	res, act, ok := rbac.SplitCode("payroll.process")
	assert.True(t, ok)
	assert.Equal(t, "payroll", res)
	assert.Equal(t, "process", act)

	for _, bad := range []string{"payroll", ".read", "payroll.", ""} {
		_, _, ok := rbac.SplitCode(bad)
		assert.False(t, ok, bad)
	}
}

func TestCatalog_RequiresReferToCatalogCodes(t *testing.T) {
	for _, cat := range rbac.Catalog {
		for _, p := range cat.Permissions {
			_, _, ok := rbac.SplitCode(p.Code)
			assert.True(t, ok, p.Code)
			for _, req := range p.Requires {
				_, found := rbac.LookupPermission(req)
				assert.True(t, found, "%s requires unknown %s", p.Code, req)
			}
		}
	}
}
