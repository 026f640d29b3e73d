package repository

import (
	"context"
	"time"

	"community/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RefreshRecordRepository provides DB access for refresh records.
type RefreshRecordRepository struct {
	db *gorm.DB
}

func NewRefreshRecordRepository(db *gorm.DB) *RefreshRecordRepository {
	return &RefreshRecordRepository{db: db}
}

func (r *RefreshRecordRepository) Create(ctx context.Context, rec *domain.RefreshRecord) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

// Consume deletes the exact (subject_id, token) row and reports whether it
// existed. The delete itself is the rotation gate: two concurrent calls with
// the same token race on a single conditional DELETE, and only the one whose
// delete affected a row may proceed to issue new tokens.
func (r *RefreshRecordRepository) Consume(ctx context.Context, subjectID uuid.UUID, tokenValue string) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("subject_id = ? AND token = ?", subjectID, tokenValue).
		Delete(&domain.RefreshRecord{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *RefreshRecordRepository) Exists(ctx context.Context, subjectID uuid.UUID, tokenValue string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.RefreshRecord{}).
		Where("subject_id = ? AND token = ?", subjectID, tokenValue).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// DeleteExpired removes records whose expiry has passed. Expired records are
// harmless (verification fails before the store is consulted) but there is no
// reason to keep them around.
func (r *RefreshRecordRepository) DeleteExpired(ctx context.Context) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("expires_at < ?", time.Now().UTC()).
		Delete(&domain.RefreshRecord{})
	return res.RowsAffected, res.Error
}
