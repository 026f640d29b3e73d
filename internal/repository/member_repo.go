package repository

import (
	"context"
	"strings"

	"community/internal/domain"

	"gorm.io/gorm"
)

// MemberRepository reads member rows for the credential authenticator. The
// auth core never writes members; account management lives elsewhere.
type MemberRepository struct {
	db *gorm.DB
}

func NewMemberRepository(db *gorm.DB) *MemberRepository {
	return &MemberRepository{db: db}
}

func (r *MemberRepository) GetByEmail(ctx context.Context, email string) (*domain.Member, error) {
	var m domain.Member
	err := r.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}
