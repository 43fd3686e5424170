package services

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fajarws/schoolcore/internal/db"
	"github.com/fajarws/schoolcore/internal/permit/models"
	"github.com/fajarws/schoolcore/internal/permit/models/dto"
	"github.com/fajarws/schoolcore/internal/permit/repositories"
	"github.com/fajarws/schoolcore/internal/pkg/apperrors"
	"github.com/fajarws/schoolcore/internal/pkg/logger"
)

// StudentService defines the interface for student management, including the
// graduation flow that turns a student into an alumni record.
type StudentService interface {
	CreateStudent(ctx context.Context, actorID int64, req *dto.StudentCreateRequest) (*models.Student, error)
	GetStudentByID(ctx context.Context, id int64) (*models.Student, error)
	GetStudentByNIS(ctx context.Context, nis string) (*models.Student, error)
	GetStudentWithClass(ctx context.Context, id int64) (*models.Student, error)
	ListStudents(ctx context.Context, filter repositories.StudentFilter) ([]*models.Student, error)
	UpdateStudent(ctx context.Context, actorID, id int64, req *dto.StudentUpdateRequest) (*models.Student, error)
	DeactivateStudent(ctx context.Context, actorID, id int64) error
	GraduateStudent(ctx context.Context, actorID, id int64, graduationYear int) (*models.Alumni, error)
}

// studentServiceImpl implements the StudentService interface
type studentServiceImpl struct {
	pool        *pgxpool.Pool
	studentRepo *repositories.StudentRepository
	alumniRepo  *repositories.AlumniRepository
	auditRepo   *repositories.AuditLogRepository
}

// NewStudentService creates a new student service instance
func NewStudentService(
	pool *pgxpool.Pool,
	studentRepo *repositories.StudentRepository,
	alumniRepo *repositories.AlumniRepository,
	auditRepo *repositories.AuditLogRepository,
) StudentService {
	return &studentServiceImpl{
		pool:        pool,
		studentRepo: studentRepo,
		alumniRepo:  alumniRepo,
		auditRepo:   auditRepo,
	}
}

// CreateStudent validates and stores a new student
func (s *studentServiceImpl) CreateStudent(ctx context.Context, actorID int64, req *dto.StudentCreateRequest) (*models.Student, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	student := req.ToModel()
	err := db.WithTransaction(ctx, s.pool, func(ctx context.Context, tx pgx.Tx) error {
		if err := s.studentRepo.Create(ctx, tx, student); err != nil {
			return err
		}
		return recordAudit(ctx, tx, s.auditRepo, actorID,
			models.AuditActionCreate, "students", student.ID, nil, student)
	})
	if err != nil {
		return nil, err
	}

	logger.Info().
		Int64("studentId", student.ID).
		Str("nis", student.NIS).
		Msg("Student enrolled")

	return student, nil
}

// GetStudentByID retrieves a student by surrogate ID
func (s *studentServiceImpl) GetStudentByID(ctx context.Context, id int64) (*models.Student, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: invalid student ID", apperrors.ErrValidationFailed)
	}
	return s.studentRepo.GetByID(ctx, id)
}

// GetStudentByNIS retrieves a student by enrollment number
func (s *studentServiceImpl) GetStudentByNIS(ctx context.Context, nis string) (*models.Student, error) {
	if nis == "" {
		return nil, fmt.Errorf("%w: NIS is required", apperrors.ErrValidationFailed)
	}
	return s.studentRepo.GetByNIS(ctx, nis)
}

// GetStudentWithClass retrieves a student together with its class relation
func (s *studentServiceImpl) GetStudentWithClass(ctx context.Context, id int64) (*models.Student, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: invalid student ID", apperrors.ErrValidationFailed)
	}
	return s.studentRepo.GetWithClass(ctx, id)
}

// ListStudents retrieves students matching the filter
func (s *studentServiceImpl) ListStudents(ctx context.Context, filter repositories.StudentFilter) ([]*models.Student, error) {
	return s.studentRepo.List(ctx, filter)
}

// UpdateStudent applies a partial update to an existing student
func (s *studentServiceImpl) UpdateStudent(ctx context.Context, actorID, id int64, req *dto.StudentUpdateRequest) (*models.Student, error) {
	student, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	before := *student
	if err := req.Apply(student); err != nil {
		return nil, err
	}

	err = db.WithTransaction(ctx, s.pool, func(ctx context.Context, tx pgx.Tx) error {
		if err := s.studentRepo.Update(ctx, tx, student); err != nil {
			return err
		}
		return recordAudit(ctx, tx, s.auditRepo, actorID,
			models.AuditActionUpdate, "students", student.ID, &before, student)
	})
	if err != nil {
		return nil, err
	}

	return student, nil
}

// DeactivateStudent soft-deletes a student
func (s *studentServiceImpl) DeactivateStudent(ctx context.Context, actorID, id int64) error {
	student, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	err = db.WithTransaction(ctx, s.pool, func(ctx context.Context, tx pgx.Tx) error {
		if err := s.studentRepo.Deactivate(ctx, tx, id); err != nil {
			return err
		}
		return recordAudit(ctx, tx, s.auditRepo, actorID,
			models.AuditActionDelete, "students", id, student, nil)
	})
	if err != nil {
		return err
	}

	logger.Info().Int64("studentId", id).Msg("Student deactivated")
	return nil
}

// GraduateStudent records a student as an alumnus and deactivates the
// student row, both in one transaction. The student row stays around, so the
// NIS appears in both tables afterwards.
func (s *studentServiceImpl) GraduateStudent(ctx context.Context, actorID, id int64, graduationYear int) (*models.Alumni, error) {
	if graduationYear < 2000 || graduationYear > 3000 {
		return nil, apperrors.NewValidationError("validation failed", map[string]interface{}{
			"graduationYear": "must be between 2000 and 3000",
		})
	}

	student, err := s.studentRepo.GetWithClass(ctx, id)
	if err != nil {
		return nil, err
	}

	alumni := &models.Alumni{
		NIS:            student.NIS,
		FullName:       student.FullName,
		Gender:         student.Gender,
		GraduationYear: graduationYear,
		Phone:          student.Phone,
	}
	if student.Class != nil {
		lastClass := student.Class.Name
		alumni.LastClass = &lastClass
	}

	err = db.WithTransaction(ctx, s.pool, func(ctx context.Context, tx pgx.Tx) error {
		if err := s.alumniRepo.Create(ctx, tx, alumni); err != nil {
			return err
		}
		if err := s.studentRepo.Deactivate(ctx, tx, id); err != nil {
			return err
		}
		return recordAudit(ctx, tx, s.auditRepo, actorID,
			models.AuditActionCreate, "alumni", alumni.ID, nil, alumni)
	})
	if err != nil {
		return nil, err
	}

	logger.Info().
		Int64("studentId", id).
		Int64("alumniId", alumni.ID).
		Int("graduationYear", graduationYear).
		Msg("Student graduated")

	return alumni, nil
}
