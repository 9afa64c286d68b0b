// internal/pkg/capability/capability.go
package capability

// Capability is a single permission tag, e.g. "checkout:process"
type Capability string

// Capabilities used by the POS routes
const (
	CheckoutProcess Capability = "checkout:process"
	ProductsRead    Capability = "products:read"
	ReportsRead     Capability = "reports:read"
	SyncTrigger     Capability = "sync:trigger"
	AdminManage     Capability = "admin:manage"
)

// Set is an explicit capability set with pure containment checks
type Set map[Capability]struct{}

// NewSet builds a set from the given capabilities
func NewSet(caps ...Capability) Set {
	s := make(Set, len(caps))
	for _, c := range caps {
		s[c] = struct{}{}
	}
	return s
}

// Has reports whether the set contains the capability
func (s Set) Has(c Capability) bool {
	_, ok := s[c]
	return ok
}

// HasAll reports whether the set contains every given capability
func (s Set) HasAll(caps ...Capability) bool {
	for _, c := range caps {
		if !s.Has(c) {
			return false
		}
	}
	return true
}

// HasAny reports whether the set contains at least one of the capabilities
func (s Set) HasAny(caps ...Capability) bool {
	for _, c := range caps {
		if s.Has(c) {
			return true
		}
	}
	return false
}

// ForRole maps a role name to its capability set. Unknown roles get an empty
// set, which denies everything.
func ForRole(role string) Set {
	switch role {
	case "admin":
		return NewSet(CheckoutProcess, ProductsRead, ReportsRead, SyncTrigger, AdminManage)
	case "cashier":
		return NewSet(CheckoutProcess, ProductsRead, SyncTrigger)
	case "supervisor":
		return NewSet(CheckoutProcess, ProductsRead, ReportsRead, SyncTrigger)
	default:
		return NewSet()
	}
}
