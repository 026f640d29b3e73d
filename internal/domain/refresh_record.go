package domain

import (
	"time"

	"github.com/google/uuid"
)

// RefreshRecord is the persisted proof that a refresh token is still live.
// A refresh token is honored for reissue/logout only while an exact
// (subject_id, token) row exists; rotation and logout delete it. Multiple
// rows per subject are allowed (one per device/session).
type RefreshRecord struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	SubjectID uuid.UUID `json:"subject_id" gorm:"type:uuid;index;not null"`
	Token     string    `json:"-" gorm:"index;not null"`
	ExpiresAt time.Time `json:"expires_at" gorm:"index;not null"`
	CreatedAt time.Time `json:"created_at"`
}

func (RefreshRecord) TableName() string { return "refresh_records" }

func (r *RefreshRecord) IsExpired(now time.Time) bool {
	return now.After(r.ExpiresAt)
}
