package guardian

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/cognitia-web/Cognitia-Scratch/internal/dashboard"
	"github.com/cognitia-web/Cognitia-Scratch/pkg/db/models"
	"github.com/cognitia-web/Cognitia-Scratch/pkg/enums"
	pkgerrors "github.com/cognitia-web/Cognitia-Scratch/pkg/errors"
	"github.com/cognitia-web/Cognitia-Scratch/pkg/logger"
)

// StudentReport is one supervised student's summary.
type StudentReport struct {
	StudentID   uuid.UUID      `json:"studentId"`
	DisplayName string         `json:"displayName"`
	Summary     dashboard.View `json:"summary"`
}

// Report is what a guardian sees across all their students.
type Report struct {
	GuardianID  uuid.UUID       `json:"guardianId"`
	Students    []StudentReport `json:"students"`
	GeneratedAt time.Time       `json:"generatedAt"`
}

type studentLister interface {
	FindStudentsByGuardianEmail(ctx context.Context, guardianEmail string) ([]models.User, error)
}

type overviewProvider interface {
	Overview(ctx context.Context, userID uuid.UUID) (*dashboard.View, error)
}

// Service builds guardian reports over supervised students.
type Service struct {
	logg      *logger.Logger
	students  studentLister
	overviews overviewProvider
	now       func() time.Time
}

// NewService validates dependencies and returns the guardian service.
func NewService(logg *logger.Logger, students studentLister, overviews overviewProvider) (*Service, error) {
	if logg == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if students == nil {
		return nil, fmt.Errorf("students lister is required")
	}
	if overviews == nil {
		return nil, fmt.Errorf("overview provider is required")
	}
	return &Service{logg: logg, students: students, overviews: overviews, now: time.Now}, nil
}

// BuildReport assembles the summary for every student supervised by the
// caller. Only guardian accounts may call this.
func (s *Service) BuildReport(ctx context.Context, guardian *models.User) (*Report, error) {
	if guardian == nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}
	if guardian.Role != enums.UserRoleGuardian {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "guardian role required")
	}

	students, err := s.students.FindStudentsByGuardianEmail(ctx, guardian.Email)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list students")
	}

	report := &Report{
		GuardianID:  guardian.ID,
		Students:    make([]StudentReport, 0, len(students)),
		GeneratedAt: s.now(),
	}
	for i := range students {
		summary, err := s.overviews.Overview(ctx, students[i].ID)
		if err != nil {
			return nil, err
		}
		report.Students = append(report.Students, StudentReport{
			StudentID:   students[i].ID,
			DisplayName: students[i].DisplayName,
			Summary:     *summary,
		})
	}

	s.logg.Info(s.logg.WithField(ctx, "students", len(report.Students)), "guardian report generated")
	return report, nil
}
