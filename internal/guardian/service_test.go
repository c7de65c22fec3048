package guardian

import (
	"context"
	"io"
	"testing"

	"github.com/google/uuid"

	"github.com/cognitia-web/Cognitia-Scratch/internal/dashboard"
	"github.com/cognitia-web/Cognitia-Scratch/pkg/db/models"
	"github.com/cognitia-web/Cognitia-Scratch/pkg/enums"
	pkgerrors "github.com/cognitia-web/Cognitia-Scratch/pkg/errors"
	"github.com/cognitia-web/Cognitia-Scratch/pkg/logger"
)

type fakeStudentLister struct {
	students []models.User
}

func (f *fakeStudentLister) FindStudentsByGuardianEmail(ctx context.Context, guardianEmail string) ([]models.User, error) {
	return f.students, nil
}

type fakeOverviews struct {
	views map[uuid.UUID]dashboard.View
}

func (f *fakeOverviews) Overview(ctx context.Context, userID uuid.UUID) (*dashboard.View, error) {
	view := f.views[userID]
	return &view, nil
}

func newTestService(t *testing.T, students *fakeStudentLister, overviews *fakeOverviews) *Service {
	t.Helper()
	svc, err := NewService(logger.New(logger.Options{ServiceName: "guardian-test", Output: io.Discard}), students, overviews)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func TestBuildReportCoversAllStudents(t *testing.T) {
	t.Parallel()

	alice := models.User{ID: uuid.New(), DisplayName: "Alice", Role: enums.UserRoleStudent}
	ben := models.User{ID: uuid.New(), DisplayName: "Ben", Role: enums.UserRoleStudent}
	lister := &fakeStudentLister{students: []models.User{alice, ben}}
	overviews := &fakeOverviews{views: map[uuid.UUID]dashboard.View{
		alice.ID: {CompletedTasks: 7},
		ben.ID:   {CompletedTasks: 2},
	}}
	svc := newTestService(t, lister, overviews)

	guardian := &models.User{
		ID:    uuid.New(),
		Email: "parent@example.com",
		Role:  enums.UserRoleGuardian,
	}
	report, err := svc.BuildReport(context.Background(), guardian)
	if err != nil {
		t.Fatalf("BuildReport: %v", err)
	}
	if len(report.Students) != 2 {
		t.Fatalf("expected 2 students, got %d", len(report.Students))
	}
	if report.Students[0].DisplayName != "Alice" || report.Students[0].Summary.CompletedTasks != 7 {
		t.Fatalf("unexpected first student %+v", report.Students[0])
	}
	if report.GuardianID != guardian.ID {
		t.Fatal("report not attributed to guardian")
	}
}

func TestBuildReportRequiresGuardianRole(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, &fakeStudentLister{}, &fakeOverviews{})
	student := &models.User{ID: uuid.New(), Role: enums.UserRoleStudent}

	_, err := svc.BuildReport(context.Background(), student)
	if !pkgerrors.HasCode(err, pkgerrors.CodeForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestBuildReportWithNoStudentsIsEmpty(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, &fakeStudentLister{}, &fakeOverviews{})
	guardian := &models.User{ID: uuid.New(), Email: "solo@example.com", Role: enums.UserRoleGuardian}

	report, err := svc.BuildReport(context.Background(), guardian)
	if err != nil {
		t.Fatalf("BuildReport: %v", err)
	}
	if len(report.Students) != 0 {
		t.Fatalf("expected no students, got %d", len(report.Students))
	}
}
