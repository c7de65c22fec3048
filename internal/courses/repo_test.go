package courses

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/cognitia-web/Cognitia-Scratch/pkg/db/models"
	"github.com/cognitia-web/Cognitia-Scratch/pkg/pagination"
)

func setupCoursesTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	courses := `
CREATE TABLE IF NOT EXISTS courses (
  id TEXT PRIMARY KEY,
  title TEXT NOT NULL,
  subject TEXT NOT NULL,
  lessons INTEGER NOT NULL,
  created_at DATETIME
);`
	progress := `
CREATE TABLE IF NOT EXISTS course_progress (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  course_id TEXT NOT NULL,
  completed_lessons INTEGER NOT NULL DEFAULT 0,
  updated_at DATETIME,
  UNIQUE (user_id, course_id)
);`
	require.NoError(t, db.Exec(courses).Error)
	require.NoError(t, db.Exec(progress).Error)

	return db
}

func TestRepositoryListOrdersByTitle(t *testing.T) {
	db := setupCoursesTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	for _, title := range []string{"Chemistry", "Algebra", "Biology"} {
		require.NoError(t, repo.Create(ctx, &models.Course{
			ID:      uuid.New(),
			Title:   title,
			Subject: "science",
			Lessons: 10,
		}))
	}

	listed, err := repo.List(ctx, pagination.Params{Limit: 10})
	require.NoError(t, err)
	require.Len(t, listed, 3)
	assert.Equal(t, "Algebra", listed[0].Title)
	assert.Equal(t, "Biology", listed[1].Title)
	assert.Equal(t, "Chemistry", listed[2].Title)
}

func TestRepositoryUpsertProgressCollapsesRows(t *testing.T) {
	db := setupCoursesTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	courseID := uuid.New()

	require.NoError(t, repo.UpsertProgress(ctx, &models.CourseProgress{
		ID:               uuid.New(),
		UserID:           userID,
		CourseID:         courseID,
		CompletedLessons: 2,
	}))
	require.NoError(t, repo.UpsertProgress(ctx, &models.CourseProgress{
		ID:               uuid.New(),
		UserID:           userID,
		CourseID:         courseID,
		CompletedLessons: 5,
	}))

	var count int64
	require.NoError(t, db.Model(&models.CourseProgress{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	byUser, err := repo.ListProgress(ctx, userID)
	require.NoError(t, err)
	require.Len(t, byUser, 1)
	assert.Equal(t, courseID, byUser[0].CourseID)
	assert.Equal(t, 5, byUser[0].CompletedLessons)
}
