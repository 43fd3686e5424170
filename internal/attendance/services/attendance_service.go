package services

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fajarws/schoolcore/internal/attendance/models"
	"github.com/fajarws/schoolcore/internal/attendance/models/dto"
	"github.com/fajarws/schoolcore/internal/attendance/repositories"
	"github.com/fajarws/schoolcore/internal/db"
	"github.com/fajarws/schoolcore/internal/pkg/apperrors"
	"github.com/fajarws/schoolcore/internal/pkg/logger"
)

// AttendanceService defines the interface for attendance record operations.
// Every mutation recomputes the daily summary for the affected date inside
// the same transaction.
type AttendanceService interface {
	RecordAttendance(ctx context.Context, recordedBy int64, req *dto.AttendanceRecordCreateRequest) (*models.AttendanceRecord, error)
	GetRecordByID(ctx context.Context, id int64) (*models.AttendanceRecord, error)
	ListRecords(ctx context.Context, filter repositories.RecordFilter) ([]*models.AttendanceRecord, error)
	UpdateRecord(ctx context.Context, id int64, req *dto.AttendanceRecordUpdateRequest) (*models.AttendanceRecord, error)
	DeleteRecord(ctx context.Context, id int64) error
	RecomputeSummary(ctx context.Context, date time.Time) (*models.AttendanceSummary, error)
	GetSummary(ctx context.Context, date time.Time) (*models.AttendanceSummary, error)
	ListSummaries(ctx context.Context, from, to time.Time) ([]*models.AttendanceSummary, error)
	GetStats(ctx context.Context, date time.Time) (*dto.AttendanceStats, error)
}

// attendanceServiceImpl implements the AttendanceService interface
type attendanceServiceImpl struct {
	pool        *pgxpool.Pool
	recordRepo  *repositories.AttendanceRecordRepository
	studentRepo *repositories.StudentRepository
	absenceRepo *repositories.AbsenceRequestRepository
	summaryRepo *repositories.SummaryRepository
}

// NewAttendanceService creates a new attendance service instance
func NewAttendanceService(
	pool *pgxpool.Pool,
	recordRepo *repositories.AttendanceRecordRepository,
	studentRepo *repositories.StudentRepository,
	absenceRepo *repositories.AbsenceRequestRepository,
	summaryRepo *repositories.SummaryRepository,
) AttendanceService {
	return &attendanceServiceImpl{
		pool:        pool,
		recordRepo:  recordRepo,
		studentRepo: studentRepo,
		absenceRepo: absenceRepo,
		summaryRepo: summaryRepo,
	}
}

// RecordAttendance validates and stores a new attendance record, refreshing
// the summary for that date in the same transaction
func (s *attendanceServiceImpl) RecordAttendance(ctx context.Context, recordedBy int64, req *dto.AttendanceRecordCreateRequest) (*models.AttendanceRecord, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if recordedBy <= 0 {
		return nil, fmt.Errorf("%w: invalid recording user", apperrors.ErrValidationFailed)
	}

	record := req.ToModel(recordedBy)

	err := db.WithTransaction(ctx, s.pool, func(ctx context.Context, tx pgx.Tx) error {
		if err := s.recordRepo.Create(ctx, tx, record); err != nil {
			return err
		}
		return s.recomputeInTx(ctx, tx, record.AttendanceDate)
	})
	if err != nil {
		return nil, err
	}

	logger.Info().
		Int64("studentId", record.StudentID).
		Str("date", record.AttendanceDate.Format(dto.DateLayout)).
		Str("status", string(record.Status)).
		Msg("Attendance recorded")

	return record, nil
}

// GetRecordByID retrieves an attendance record by ID
func (s *attendanceServiceImpl) GetRecordByID(ctx context.Context, id int64) (*models.AttendanceRecord, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: invalid record ID", apperrors.ErrValidationFailed)
	}
	return s.recordRepo.GetByID(ctx, id)
}

// ListRecords retrieves attendance records matching the filter
func (s *attendanceServiceImpl) ListRecords(ctx context.Context, filter repositories.RecordFilter) ([]*models.AttendanceRecord, error) {
	return s.recordRepo.List(ctx, filter)
}

// UpdateRecord applies a partial update to an attendance record and refreshes
// the summary for its date in the same transaction
func (s *attendanceServiceImpl) UpdateRecord(ctx context.Context, id int64, req *dto.AttendanceRecordUpdateRequest) (*models.AttendanceRecord, error) {
	record, err := s.recordRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := req.Apply(record); err != nil {
		return nil, err
	}

	err = db.WithTransaction(ctx, s.pool, func(ctx context.Context, tx pgx.Tx) error {
		if err := s.recordRepo.Update(ctx, tx, record); err != nil {
			return err
		}
		return s.recomputeInTx(ctx, tx, record.AttendanceDate)
	})
	if err != nil {
		return nil, err
	}

	return record, nil
}

// DeleteRecord removes an attendance record and refreshes the summary for its
// date in the same transaction
func (s *attendanceServiceImpl) DeleteRecord(ctx context.Context, id int64) error {
	record, err := s.recordRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	return db.WithTransaction(ctx, s.pool, func(ctx context.Context, tx pgx.Tx) error {
		if err := s.recordRepo.Delete(ctx, tx, record.ID); err != nil {
			return err
		}
		return s.recomputeInTx(ctx, tx, record.AttendanceDate)
	})
}

// recomputeInTx rebuilds the summary for a date from the records visible in
// the transaction. Running it twice without record changes yields identical
// output.
func (s *attendanceServiceImpl) recomputeInTx(ctx context.Context, tx pgx.Tx, date time.Time) error {
	total, err := s.studentRepo.CountActive(ctx, tx)
	if err != nil {
		return err
	}

	counts, err := s.recordRepo.CountByStatus(ctx, tx, date)
	if err != nil {
		return err
	}

	summary := models.BuildSummary(date, total,
		counts[models.AttendancePresent],
		counts[models.AttendanceAbsent],
		counts[models.AttendanceLate],
		counts[models.AttendanceExcused],
	)

	return s.summaryRepo.Upsert(ctx, tx, &summary)
}

// RecomputeSummary rebuilds and stores the summary for a date on demand
func (s *attendanceServiceImpl) RecomputeSummary(ctx context.Context, date time.Time) (*models.AttendanceSummary, error) {
	var result *models.AttendanceSummary

	err := db.WithTransaction(ctx, s.pool, func(ctx context.Context, tx pgx.Tx) error {
		if err := s.recomputeInTx(ctx, tx, date); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	result, err = s.summaryRepo.GetByDate(ctx, date)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// GetSummary retrieves the stored summary for a date
func (s *attendanceServiceImpl) GetSummary(ctx context.Context, date time.Time) (*models.AttendanceSummary, error) {
	return s.summaryRepo.GetByDate(ctx, date)
}

// ListSummaries retrieves the stored summaries for a date range, oldest first
func (s *attendanceServiceImpl) ListSummaries(ctx context.Context, from, to time.Time) ([]*models.AttendanceSummary, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("%w: end date is before start date", apperrors.ErrInvalidDateRange)
	}
	return s.summaryRepo.ListRange(ctx, from, to)
}

// GetStats builds the statistics response for a date, combining the summary
// with the request queue counters
func (s *attendanceServiceImpl) GetStats(ctx context.Context, date time.Time) (*dto.AttendanceStats, error) {
	summary, err := s.summaryRepo.GetByDate(ctx, date)
	if err != nil {
		// A date nobody recorded yet still has a well-defined answer
		if apperrors.Is(err, apperrors.ErrNotFound) {
			recomputed, rerr := s.RecomputeSummary(ctx, date)
			if rerr != nil {
				return nil, rerr
			}
			summary = recomputed
		} else {
			return nil, err
		}
	}

	pending, err := s.absenceRepo.CountPending(ctx)
	if err != nil {
		return nil, err
	}

	approved, err := s.absenceRepo.CountApprovedForDate(ctx, date)
	if err != nil {
		return nil, err
	}

	return &dto.AttendanceStats{
		Date:                 date.Format(dto.DateLayout),
		TotalStudents:        summary.TotalStudents,
		PresentCount:         summary.PresentCount,
		AbsentCount:          summary.AbsentCount,
		LateCount:            summary.LateCount,
		ExcusedCount:         summary.ExcusedCount,
		AttendancePercentage: summary.AttendancePercentage,
		PendingRequests:      pending,
		ApprovedAbsences:     approved,
	}, nil
}
