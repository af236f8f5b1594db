package entities

import (
	"strings"
	"time"
)

// ApprovalChain is a configuration row consulted by the approval gate. One
// active chain exists per entity type; uniqueness is enforced when the chain
// is written, never resolved at read time.
type ApprovalChain struct {
	ChainID       string
	EntityType    string
	Threshold     float64
	RequiredRoles []string
	Active        bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (c ApprovalChain) RequiresRole(role string) bool {
	role = strings.TrimSpace(role)
	for _, required := range c.RequiredRoles {
		if strings.TrimSpace(required) == role {
			return true
		}
	}
	return false
}

// AppliesTo reports whether the chain governs an entity of the given value.
// A zero threshold makes the chain unconditional.
func (c ApprovalChain) AppliesTo(amount float64) bool {
	if c.Threshold <= 0 {
		return true
	}
	return amount >= c.Threshold
}

func (c ApprovalChain) ValidateBasics() bool {
	return strings.TrimSpace(c.EntityType) != "" && c.Threshold >= 0 && len(c.RequiredRoles) > 0
}
