package domain

import "github.com/google/uuid"

type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

type Status string

const (
	StatusPending  Status = "PENDING"
	StatusActive   Status = "ACTIVE"
	StatusInactive Status = "INACTIVE"
)

// Principal is the authenticated subject attached to a request. It is built
// either from a member row at login time or from token claims on every later
// request; after login the database is never consulted again.
type Principal struct {
	SubjectID uuid.UUID `json:"subject_id"`
	Role      Role      `json:"role"`
	Status    Status    `json:"status"`
}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}
