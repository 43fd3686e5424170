package services

import (
	"context"
	"fmt"

	"github.com/fajarws/schoolcore/internal/attendance/models"
	"github.com/fajarws/schoolcore/internal/attendance/models/dto"
	"github.com/fajarws/schoolcore/internal/attendance/repositories"
	"github.com/fajarws/schoolcore/internal/pkg/apperrors"
)

// StudentService defines the interface for student-related operations
type StudentService interface {
	CreateStudent(ctx context.Context, req *dto.StudentCreateRequest) (*models.Student, error)
	GetStudentByID(ctx context.Context, id int64) (*models.Student, error)
	GetStudentByCode(ctx context.Context, studentID string) (*models.Student, error)
	ListStudents(ctx context.Context, filter repositories.StudentFilter) ([]*models.Student, error)
	UpdateStudent(ctx context.Context, id int64, req *dto.StudentUpdateRequest) (*models.Student, error)
	DeactivateStudent(ctx context.Context, id int64) error
}

// studentServiceImpl implements the StudentService interface
type studentServiceImpl struct {
	studentRepo *repositories.StudentRepository
}

// NewStudentService creates a new student service instance
func NewStudentService(studentRepo *repositories.StudentRepository) StudentService {
	return &studentServiceImpl{
		studentRepo: studentRepo,
	}
}

// CreateStudent validates and registers a new student
func (s *studentServiceImpl) CreateStudent(ctx context.Context, req *dto.StudentCreateRequest) (*models.Student, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	student := req.ToModel()
	if err := s.studentRepo.Create(ctx, student); err != nil {
		return nil, err
	}
	return student, nil
}

// GetStudentByID retrieves a student by surrogate ID
func (s *studentServiceImpl) GetStudentByID(ctx context.Context, id int64) (*models.Student, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: invalid student ID", apperrors.ErrValidationFailed)
	}
	return s.studentRepo.GetByID(ctx, id)
}

// GetStudentByCode retrieves a student by the human-readable code
func (s *studentServiceImpl) GetStudentByCode(ctx context.Context, studentID string) (*models.Student, error) {
	if studentID == "" {
		return nil, fmt.Errorf("%w: student code is required", apperrors.ErrValidationFailed)
	}
	return s.studentRepo.GetByStudentID(ctx, studentID)
}

// ListStudents retrieves students matching the filter
func (s *studentServiceImpl) ListStudents(ctx context.Context, filter repositories.StudentFilter) ([]*models.Student, error) {
	return s.studentRepo.List(ctx, filter)
}

// UpdateStudent applies a partial update. Fields absent from the request keep
// their stored value.
func (s *studentServiceImpl) UpdateStudent(ctx context.Context, id int64, req *dto.StudentUpdateRequest) (*models.Student, error) {
	student, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := req.Apply(student); err != nil {
		return nil, err
	}

	if err := s.studentRepo.Update(ctx, student); err != nil {
		return nil, err
	}
	return student, nil
}

// DeactivateStudent soft-deletes a student
func (s *studentServiceImpl) DeactivateStudent(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid student ID", apperrors.ErrValidationFailed)
	}
	return s.studentRepo.Deactivate(ctx, id)
}
