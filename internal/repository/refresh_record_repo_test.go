package repository

import (
	"context"
	"testing"
	"time"

	"community/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	// registers the "sqlite" driver used by the in-memory test DB
	_ "modernc.org/sqlite"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(
		gormsqlite.New(gormsqlite.Config{DriverName: "sqlite", DSN: ":memory:"}),
		&gorm.Config{Logger: logger.Default.LogMode(logger.Silent)},
	)
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.RefreshRecord{}))
	return db
}

func TestConsume_ExactMatchOnly(t *testing.T) {
	repo := NewRefreshRecordRepository(newTestDB(t))
	ctx := context.Background()
	subjectID := uuid.New()

	require.NoError(t, repo.Create(ctx, &domain.RefreshRecord{
		SubjectID: subjectID,
		Token:     "refresh-1",
		ExpiresAt: time.Now().Add(time.Hour),
	}))

	// Wrong subject, wrong value: nothing consumed.
	ok, err := repo.Consume(ctx, uuid.New(), "refresh-1")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = repo.Consume(ctx, subjectID, "refresh-2")
	require.NoError(t, err)
	assert.False(t, ok)

	// Exact match consumed exactly once.
	ok, err = repo.Consume(ctx, subjectID, "refresh-1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.Consume(ctx, subjectID, "refresh-1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestConsume_LeavesOtherDevicesAlone(t *testing.T) {
	repo := NewRefreshRecordRepository(newTestDB(t))
	ctx := context.Background()
	subjectID := uuid.New()

	for _, v := range []string{"device-a", "device-b"} {
		require.NoError(t, repo.Create(ctx, &domain.RefreshRecord{
			SubjectID: subjectID,
			Token:     v,
			ExpiresAt: time.Now().Add(time.Hour),
		}))
	}

	ok, err := repo.Consume(ctx, subjectID, "device-a")
	require.NoError(t, err)
	assert.True(t, ok)

	exists, err := repo.Exists(ctx, subjectID, "device-b")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestDeleteExpired(t *testing.T) {
	repo := NewRefreshRecordRepository(newTestDB(t))
	ctx := context.Background()
	subjectID := uuid.New()

	require.NoError(t, repo.Create(ctx, &domain.RefreshRecord{
		SubjectID: subjectID,
		Token:     "stale",
		ExpiresAt: time.Now().Add(-time.Hour),
	}))
	require.NoError(t, repo.Create(ctx, &domain.RefreshRecord{
		SubjectID: subjectID,
		Token:     "live",
		ExpiresAt: time.Now().Add(time.Hour),
	}))

	deleted, err := repo.DeleteExpired(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, deleted)

	exists, err := repo.Exists(ctx, subjectID, "live")
	require.NoError(t, err)
	assert.True(t, exists)
}
