// Package schema defines the data structures shared by the store, the HTTP API
// and its clients.
package schema

import "time"

// OwnerRole is the position an owner holds in the company.
type OwnerRole string

const (
	RoleCEO         OwnerRole = "CEO"
	RoleCFO         OwnerRole = "CFO"
	RoleCTO         OwnerRole = "CTO"
	RoleShareholder OwnerRole = "Shareholder"
	RoleAdvisor     OwnerRole = "Advisor"
)

// Roles lists every valid OwnerRole in display order.
var Roles = []OwnerRole{RoleCEO, RoleCFO, RoleCTO, RoleShareholder, RoleAdvisor}

// Valid reports whether r is one of the known roles.
func (r OwnerRole) Valid() bool {
	for _, known := range Roles {
		if r == known {
			return true
		}
	}
	return false
}

// Owner represents a company owner or shareholder.
type Owner struct {
	ID                  string    `json:"id" yaml:"id"`
	Name                string    `json:"name" yaml:"name"`
	Email               string    `json:"email" yaml:"email"`
	OwnershipPercentage float64   `json:"ownershipPercentage" yaml:"ownershipPercentage"`
	Role                OwnerRole `json:"role" yaml:"role"`
	CreatedAt           time.Time `json:"createdAt" yaml:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt" yaml:"updatedAt"`
}

// OwnerCreate holds the fields required to create an owner.
type OwnerCreate struct {
	Name                string    `json:"name" yaml:"name"`
	Email               string    `json:"email" yaml:"email"`
	OwnershipPercentage float64   `json:"ownershipPercentage" yaml:"ownershipPercentage"`
	Role                OwnerRole `json:"role" yaml:"role"`
}

// OwnerPatch is a partial update. Unset fields are left untouched.
// On the wire it travels as an UpdateOwnerRequest.
type OwnerPatch struct {
	Name                Optional[string]
	Email               Optional[string]
	OwnershipPercentage Optional[float64]
	Role                Optional[OwnerRole]
}

// IsEmpty reports whether the patch sets no field at all.
func (p OwnerPatch) IsEmpty() bool {
	return !p.Name.IsSet() && !p.Email.IsSet() && !p.OwnershipPercentage.IsSet() && !p.Role.IsSet()
}

// Apply returns a copy of o with every set field of p written over it.
// Timestamps are not touched.
func (p OwnerPatch) Apply(o Owner) Owner {
	if v, ok := p.Name.Get(); ok {
		o.Name = v
	}
	if v, ok := p.Email.Get(); ok {
		o.Email = v
	}
	if v, ok := p.OwnershipPercentage.Get(); ok {
		o.OwnershipPercentage = v
	}
	if v, ok := p.Role.Get(); ok {
		o.Role = v
	}
	return o
}

// OwnershipSummary aggregates ownership across all owners.
// OverAllocated is a warning flag only; the store never rejects a write for it.
type OwnershipSummary struct {
	TotalOwnership float64 `json:"totalOwnership"`
	OwnerCount     int     `json:"ownerCount"`
	OverAllocated  bool    `json:"overAllocated"`
}

// SummarizeOwnership totals the ownership percentages of owners.
func SummarizeOwnership(owners []Owner) OwnershipSummary {
	var total float64
	for _, o := range owners {
		total += o.OwnershipPercentage
	}
	return OwnershipSummary{
		TotalOwnership: total,
		OwnerCount:     len(owners),
		OverAllocated:  total > 100,
	}
}
