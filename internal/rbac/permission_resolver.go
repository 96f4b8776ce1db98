package rbac

import (
	"fmt"
	"sort"

	rbacerrors "go-hrcore/internal/rbac/errors"
	"go-hrcore/internal/shared/apperror"
)

// PermissionSet holds enabled permission codes. Only true entries count.
type PermissionSet map[string]bool

func NewPermissionSet(codes ...string) PermissionSet {
	set := make(PermissionSet, len(codes))
	for _, c := range codes {
		set[c] = true
	}
	return set
}

func (s PermissionSet) Has(code string) bool {
	return s[code]
}

func (s PermissionSet) Len() int {
	n := 0
	for _, on := range s {
		if on {
			n++
		}
	}
	return n
}

// Codes returns the enabled codes in sorted order.
func (s PermissionSet) Codes() []string {
	codes := make([]string, 0, len(s))
	for c, on := range s {
		if on {
			codes = append(codes, c)
		}
	}
	sort.Strings(codes)
	return codes
}

func (s PermissionSet) clone() PermissionSet {
	out := make(PermissionSet, len(s))
	for c, on := range s {
		if on {
			out[c] = true
		}
	}
	return out
}

// TogglePermission removes code when present. Otherwise it adds code and the
// codes entry directly requires. Dependents and deeper prerequisites are left
// alone. The input set is not modified.
func TogglePermission(set PermissionSet, code string, entry Permission) PermissionSet {
	out := set.clone()
	if out.Has(code) {
		delete(out, code)
		return out
	}
	out[code] = true
	for _, req := range entry.Requires {
		out[req] = true
	}
	return out
}

// ResolveTransitiveRequires returns every code reachable through requires,
// excluding code itself, sorted.
func ResolveTransitiveRequires(code string) []string {
	seen := map[string]bool{code: true}
	var out []string
	queue := []string{code}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		p, ok := LookupPermission(cur)
		if !ok {
			continue
		}
		for _, req := range p.Requires {
			if seen[req] {
				continue
			}
			seen[req] = true
			out = append(out, req)
			queue = append(queue, req)
		}
	}
	sort.Strings(out)
	return out
}

// Resolver applies toggles against the catalog. With Transitive set, turning
// a code on pulls in its full prerequisite closure instead of one level.
type Resolver struct {
	Transitive bool
}

func (r Resolver) Toggle(set PermissionSet, code string) (PermissionSet, error) {
	entry, ok := LookupPermission(code)
	if !ok {
		return nil, unknownPermissions([]string{code})
	}
	if r.Transitive && !set.Has(code) {
		entry.Requires = ResolveTransitiveRequires(code)
	}
	return TogglePermission(set, code, entry), nil
}

// CanDelete reports whether a role with employeeCount holders may be deleted.
func CanDelete(employeeCount int64) bool {
	return employeeCount == 0
}

func unknownPermissions(codes []string) error {
	return apperror.Detailed(
		rbacerrors.ErrUnknownPermission,
		fmt.Sprintf("Unknown permission code(s): %v", codes),
		map[string]any{"codes": codes},
	)
}
