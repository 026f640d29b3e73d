package domain

import (
	"time"

	"github.com/google/uuid"
)

type MemberType string

const (
	MemberTypeLocal  MemberType = "LOCAL"
	MemberTypeOauth2 MemberType = "OAUTH2"
)

// Member is the account row owned by the member-management side of the
// system. The auth core reads it exactly once per login, through the
// CredentialAuthenticator; everything after that runs off token claims.
type Member struct {
	ID           int64      `json:"id" gorm:"primaryKey"`
	PublicID     uuid.UUID  `json:"public_id" gorm:"type:uuid;uniqueIndex;not null"`
	Email        string     `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string     `json:"-" gorm:"not null"`
	Type         MemberType `json:"type" gorm:"default:LOCAL;not null"`
	Role         Role       `json:"role" gorm:"default:USER;not null"`
	Status       Status     `json:"status" gorm:"default:PENDING;not null"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func (Member) TableName() string { return "members" }

func (m *Member) Principal() Principal {
	return Principal{SubjectID: m.PublicID, Role: m.Role, Status: m.Status}
}
