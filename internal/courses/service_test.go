package courses

import (
	"context"
	"io"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cognitia-web/Cognitia-Scratch/pkg/db/models"
	pkgerrors "github.com/cognitia-web/Cognitia-Scratch/pkg/errors"
	"github.com/cognitia-web/Cognitia-Scratch/pkg/logger"
	"github.com/cognitia-web/Cognitia-Scratch/pkg/pagination"
)

type progressKey struct {
	userID   uuid.UUID
	courseID uuid.UUID
}

type fakeCourseRepo struct {
	courses  map[uuid.UUID]*models.Course
	progress map[progressKey]*models.CourseProgress
}

func newFakeCourseRepo() *fakeCourseRepo {
	return &fakeCourseRepo{
		courses:  make(map[uuid.UUID]*models.Course),
		progress: make(map[progressKey]*models.CourseProgress),
	}
}

func (f *fakeCourseRepo) Create(ctx context.Context, course *models.Course) error {
	copied := *course
	f.courses[course.ID] = &copied
	return nil
}

func (f *fakeCourseRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Course, error) {
	course, ok := f.courses[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *course
	return &copied, nil
}

func (f *fakeCourseRepo) List(ctx context.Context, page pagination.Params) ([]models.Course, error) {
	var out []models.Course
	for _, course := range f.courses {
		out = append(out, *course)
	}
	return out, nil
}

func (f *fakeCourseRepo) UpsertProgress(ctx context.Context, progress *models.CourseProgress) error {
	key := progressKey{progress.UserID, progress.CourseID}
	if existing, ok := f.progress[key]; ok {
		existing.CompletedLessons = progress.CompletedLessons
		return nil
	}
	copied := *progress
	f.progress[key] = &copied
	return nil
}

func (f *fakeCourseRepo) FindProgress(ctx context.Context, userID, courseID uuid.UUID) (*models.CourseProgress, error) {
	progress, ok := f.progress[progressKey{userID, courseID}]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *progress
	return &copied, nil
}

func (f *fakeCourseRepo) ListProgress(ctx context.Context, userID uuid.UUID) ([]models.CourseProgress, error) {
	var out []models.CourseProgress
	for key, progress := range f.progress {
		if key.userID == userID {
			out = append(out, *progress)
		}
	}
	return out, nil
}

func newTestService(t *testing.T, repo *fakeCourseRepo) *Service {
	t.Helper()
	svc, err := NewService(logger.New(logger.Options{ServiceName: "courses-test", Output: io.Discard}), repo)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func TestSetProgressClampsToLessonCount(t *testing.T) {
	t.Parallel()

	repo := newFakeCourseRepo()
	svc := newTestService(t, repo)
	userID := uuid.New()

	course, err := svc.Create(context.Background(), CreateRequest{Title: "Algebra", Subject: "Math", Lessons: 12})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	view, err := svc.SetProgress(context.Background(), userID, course.ID, ProgressRequest{CompletedLessons: 50})
	if err != nil {
		t.Fatalf("SetProgress: %v", err)
	}
	if view.CompletedLessons != 12 {
		t.Fatalf("expected clamp to 12, got %d", view.CompletedLessons)
	}
	if !view.Completed {
		t.Fatal("expected course to be completed")
	}
}

func TestSetProgressUpsertsExistingRow(t *testing.T) {
	t.Parallel()

	repo := newFakeCourseRepo()
	svc := newTestService(t, repo)
	userID := uuid.New()

	course, err := svc.Create(context.Background(), CreateRequest{Title: "Biology", Subject: "Science", Lessons: 10})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := svc.SetProgress(context.Background(), userID, course.ID, ProgressRequest{CompletedLessons: 3}); err != nil {
		t.Fatalf("SetProgress: %v", err)
	}
	if _, err := svc.SetProgress(context.Background(), userID, course.ID, ProgressRequest{CompletedLessons: 7}); err != nil {
		t.Fatalf("SetProgress: %v", err)
	}

	if len(repo.progress) != 1 {
		t.Fatalf("expected one progress row, got %d", len(repo.progress))
	}
	got, err := svc.Get(context.Background(), userID, course.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.CompletedLessons != 7 || got.Completed {
		t.Fatalf("unexpected progress %+v", got)
	}
}

func TestListMergesCallerProgress(t *testing.T) {
	t.Parallel()

	repo := newFakeCourseRepo()
	svc := newTestService(t, repo)
	userID := uuid.New()

	first, err := svc.Create(context.Background(), CreateRequest{Title: "History", Subject: "Humanities", Lessons: 8})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := svc.Create(context.Background(), CreateRequest{Title: "Chemistry", Subject: "Science", Lessons: 15}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := svc.SetProgress(context.Background(), userID, first.ID, ProgressRequest{CompletedLessons: 4}); err != nil {
		t.Fatalf("SetProgress: %v", err)
	}

	views, err := svc.List(context.Background(), userID, pagination.Params{Limit: 10})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("expected 2 courses, got %d", len(views))
	}
	for _, view := range views {
		if view.ID == first.ID && view.CompletedLessons != 4 {
			t.Fatalf("expected progress 4 on %s, got %d", view.Title, view.CompletedLessons)
		}
		if view.ID != first.ID && view.CompletedLessons != 0 {
			t.Fatalf("expected no progress on %s", view.Title)
		}
	}
}

func TestGetUnknownCourseReturnsNotFound(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, newFakeCourseRepo())
	_, err := svc.Get(context.Background(), uuid.New(), uuid.New())
	if !pkgerrors.HasCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
