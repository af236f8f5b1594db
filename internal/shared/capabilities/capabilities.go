package capabilities

import "strings"

// Resolver maps back-office roles to the capabilities they carry.
// The table is fixed at construction time; role management itself
// lives outside this module.
type Resolver struct {
	grants map[string]map[string]struct{}
}

func NewResolver(table map[string][]string) *Resolver {
	grants := make(map[string]map[string]struct{}, len(table))
	for role, caps := range table {
		set := make(map[string]struct{}, len(caps))
		for _, capability := range caps {
			set[strings.TrimSpace(capability)] = struct{}{}
		}
		grants[strings.TrimSpace(role)] = set
	}
	return &Resolver{grants: grants}
}

// NewDefaultResolver returns the role table used by the back office.
func NewDefaultResolver() *Resolver {
	return NewResolver(map[string][]string{
		"super_admin": {
			"campaign:create",
			"campaign:approve",
			"approval_chain:manage",
		},
		"admin": {
			"campaign:create",
			"campaign:approve",
		},
		"manager": {
			"campaign:create",
		},
	})
}

func (r *Resolver) HasCapability(role, capability string) bool {
	set, exists := r.grants[strings.TrimSpace(role)]
	if !exists {
		return false
	}
	_, granted := set[strings.TrimSpace(capability)]
	return granted
}
