package services

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fajarws/schoolcore/internal/attendance/models"
	"github.com/fajarws/schoolcore/internal/attendance/models/dto"
	"github.com/fajarws/schoolcore/internal/attendance/repositories"
	"github.com/fajarws/schoolcore/internal/db"
	"github.com/fajarws/schoolcore/internal/pkg/apperrors"
	"github.com/fajarws/schoolcore/internal/pkg/filestorage"
	"github.com/fajarws/schoolcore/internal/pkg/logger"
)

// AbsenceRequestService defines the interface for the absence request
// workflow: submit, attach documents, approve or reject, and the public
// projection of approved absences.
type AbsenceRequestService interface {
	SubmitRequest(ctx context.Context, req *dto.AbsenceRequestCreateRequest) (*models.AbsenceRequest, error)
	GetRequestByID(ctx context.Context, id int64) (*models.AbsenceRequest, error)
	ListRequests(ctx context.Context, filter repositories.AbsenceFilter) ([]*models.AbsenceRequest, error)
	ProcessRequest(ctx context.Context, id, processedBy int64, req *dto.AbsenceProcessRequest) (*models.AbsenceRequest, error)
	AttachDocument(ctx context.Context, id int64, content io.Reader, filename string) (string, error)
	ListPublicAbsentees(ctx context.Context, date time.Time) ([]dto.PublicAbsentStudent, error)
}

// absenceServiceImpl implements the AbsenceRequestService interface
type absenceServiceImpl struct {
	pool        *pgxpool.Pool
	absenceRepo *repositories.AbsenceRequestRepository
	studentRepo *repositories.StudentRepository
	storage     filestorage.Storage
}

// NewAbsenceRequestService creates a new absence request service instance
func NewAbsenceRequestService(
	pool *pgxpool.Pool,
	absenceRepo *repositories.AbsenceRequestRepository,
	studentRepo *repositories.StudentRepository,
	storage filestorage.Storage,
) AbsenceRequestService {
	return &absenceServiceImpl{
		pool:        pool,
		absenceRepo: absenceRepo,
		studentRepo: studentRepo,
		storage:     storage,
	}
}

// SubmitRequest validates and stores a new absence request in pending state
func (s *absenceServiceImpl) SubmitRequest(ctx context.Context, req *dto.AbsenceRequestCreateRequest) (*models.AbsenceRequest, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// Surface an unknown student as a referential error before insert; the FK
	// still backs this up inside the database.
	if _, err := s.studentRepo.GetByID(ctx, req.StudentID); err != nil {
		if apperrors.Is(err, apperrors.ErrStudentNotFound) {
			return nil, apperrors.ErrReferenceNotFound
		}
		return nil, err
	}

	request := req.ToModel()
	if err := s.absenceRepo.Create(ctx, request); err != nil {
		return nil, err
	}

	logger.Info().
		Int64("requestId", request.ID).
		Int64("studentId", request.StudentID).
		Msg("Absence request submitted")

	return request, nil
}

// GetRequestByID retrieves an absence request by ID
func (s *absenceServiceImpl) GetRequestByID(ctx context.Context, id int64) (*models.AbsenceRequest, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: invalid request ID", apperrors.ErrValidationFailed)
	}
	return s.absenceRepo.GetByID(ctx, id)
}

// ListRequests retrieves absence requests matching the filter
func (s *absenceServiceImpl) ListRequests(ctx context.Context, filter repositories.AbsenceFilter) ([]*models.AbsenceRequest, error) {
	return s.absenceRepo.List(ctx, filter)
}

// ProcessRequest resolves a pending request to approved or rejected. The
// status check and the write happen inside one transaction with the row
// locked; a request already in a terminal state fails with a state conflict
// and stays unchanged.
func (s *absenceServiceImpl) ProcessRequest(ctx context.Context, id, processedBy int64, req *dto.AbsenceProcessRequest) (*models.AbsenceRequest, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if processedBy <= 0 {
		return nil, fmt.Errorf("%w: invalid processing user", apperrors.ErrValidationFailed)
	}

	var processed *models.AbsenceRequest

	err := db.WithTransaction(ctx, s.pool, func(ctx context.Context, tx pgx.Tx) error {
		request, err := s.absenceRepo.GetByIDForUpdate(ctx, tx, id)
		if err != nil {
			return err
		}

		if !request.CanProcess() {
			return apperrors.NewStateConflictError(
				fmt.Sprintf("absence request is already %s", request.Status))
		}

		now := time.Now().UTC()
		status := models.RequestStatus(req.Status)
		if err := s.absenceRepo.MarkProcessed(ctx, tx, id, status, processedBy, now, req.ProcessingNotes); err != nil {
			return err
		}

		request.Status = status
		request.ProcessedBy = &processedBy
		request.ProcessedAt = &now
		request.ProcessingNotes = req.ProcessingNotes
		processed = request
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info().
		Int64("requestId", id).
		Str("status", string(processed.Status)).
		Int64("processedBy", processedBy).
		Msg("Absence request processed")

	return processed, nil
}

// AttachDocument stores a supporting document and appends its path to the
// request's ordered document list
func (s *absenceServiceImpl) AttachDocument(ctx context.Context, id int64, content io.Reader, filename string) (string, error) {
	if _, err := s.absenceRepo.GetByID(ctx, id); err != nil {
		return "", err
	}

	storedPath, err := s.storage.Save(content, filename, "absence-requests")
	if err != nil {
		return "", fmt.Errorf("error storing supporting document: %w", err)
	}

	if err := s.absenceRepo.AppendDocument(ctx, id, storedPath); err != nil {
		// The request vanished between lookup and update; drop the orphan file
		_ = s.storage.Delete(storedPath)
		return "", err
	}

	return storedPath, nil
}

// ListPublicAbsentees returns the public board projection for a date:
// approved requests only, restricted to name, class, date and reason
func (s *absenceServiceImpl) ListPublicAbsentees(ctx context.Context, date time.Time) ([]dto.PublicAbsentStudent, error) {
	approved := models.RequestApproved
	requests, err := s.absenceRepo.List(ctx, repositories.AbsenceFilter{
		Status:   &approved,
		DateFrom: &date,
		DateTo:   &date,
	})
	if err != nil {
		return nil, err
	}

	result := make([]dto.PublicAbsentStudent, 0, len(requests))
	for _, request := range requests {
		student, err := s.studentRepo.GetByID(ctx, request.StudentID)
		if err != nil {
			return nil, err
		}
		result = append(result, dto.NewPublicAbsentStudent(request, student))
	}

	return result, nil
}
