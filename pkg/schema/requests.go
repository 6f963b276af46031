package schema

// CreateOwnerRequest is the body of a create call. OwnershipPercentage is a
// pointer so that a missing value can be told apart from 0.
type CreateOwnerRequest struct {
	Name                string    `json:"name" binding:"required,notblank"`
	Email               string    `json:"email" binding:"required,email,email_tld"`
	OwnershipPercentage *float64  `json:"ownershipPercentage" binding:"required,gte=0,lte=100"`
	Role                OwnerRole `json:"role" binding:"required,oneof=CEO CFO CTO Shareholder Advisor"`
}

// Owner converts a validated request into store input.
func (r CreateOwnerRequest) Owner() OwnerCreate {
	out := OwnerCreate{Name: r.Name, Email: r.Email, Role: r.Role}
	if r.OwnershipPercentage != nil {
		out.OwnershipPercentage = *r.OwnershipPercentage
	}
	return out
}

// NewCreateOwnerRequest wraps in so it can be validated like a request body.
func NewCreateOwnerRequest(in OwnerCreate) CreateOwnerRequest {
	pct := in.OwnershipPercentage
	return CreateOwnerRequest{
		Name:                in.Name,
		Email:               in.Email,
		OwnershipPercentage: &pct,
		Role:                in.Role,
	}
}

// UpdateOwnerRequest is the body of an update call. Absent and null fields
// are both left untouched.
type UpdateOwnerRequest struct {
	Name                *string    `json:"name,omitempty" binding:"omitnil,notblank"`
	Email               *string    `json:"email,omitempty" binding:"omitnil,email,email_tld"`
	OwnershipPercentage *float64   `json:"ownershipPercentage,omitempty" binding:"omitnil,gte=0,lte=100"`
	Role                *OwnerRole `json:"role,omitempty" binding:"omitnil,oneof=CEO CFO CTO Shareholder Advisor"`
}

func (r UpdateOwnerRequest) Patch() OwnerPatch {
	return OwnerPatch{
		Name:                FromPtr(r.Name),
		Email:               FromPtr(r.Email),
		OwnershipPercentage: FromPtr(r.OwnershipPercentage),
		Role:                FromPtr(r.Role),
	}
}

// NewUpdateOwnerRequest is the inverse of Patch.
func NewUpdateOwnerRequest(p OwnerPatch) UpdateOwnerRequest {
	var r UpdateOwnerRequest
	if v, ok := p.Name.Get(); ok {
		r.Name = &v
	}
	if v, ok := p.Email.Get(); ok {
		r.Email = &v
	}
	if v, ok := p.OwnershipPercentage.Get(); ok {
		r.OwnershipPercentage = &v
	}
	if v, ok := p.Role.Get(); ok {
		r.Role = &v
	}
	return r
}
