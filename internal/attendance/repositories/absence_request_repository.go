package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fajarws/schoolcore/internal/attendance/models"
	"github.com/fajarws/schoolcore/internal/pkg/apperrors"
	"github.com/fajarws/schoolcore/internal/pkg/dberrors"
)

// AbsenceRequestRepository handles database operations for absence requests
type AbsenceRequestRepository struct {
	db *pgxpool.Pool
}

// NewAbsenceRequestRepository creates a new absence request repository
func NewAbsenceRequestRepository(db *pgxpool.Pool) *AbsenceRequestRepository {
	return &AbsenceRequestRepository{
		db: db,
	}
}

const absenceColumns = `id, student_id, absence_date, reason, submitted_by_name, submitted_by_phone,
		submitted_by_email, status, processed_by, processed_at, processing_notes,
		supporting_documents, created_at, updated_at`

func scanAbsenceRequest(row pgx.Row) (*models.AbsenceRequest, error) {
	var req models.AbsenceRequest
	err := row.Scan(
		&req.ID,
		&req.StudentID,
		&req.AbsenceDate,
		&req.Reason,
		&req.SubmittedByName,
		&req.SubmittedByPhone,
		&req.SubmittedByEmail,
		&req.Status,
		&req.ProcessedBy,
		&req.ProcessedAt,
		&req.ProcessingNotes,
		&req.SupportingDocuments,
		&req.CreatedAt,
		&req.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAbsenceRequestNotFound
		}
		return nil, err
	}
	return &req, nil
}

// Create inserts a new absence request in pending state
func (r *AbsenceRequestRepository) Create(ctx context.Context, request *models.AbsenceRequest) error {
	query := `
		INSERT INTO absence_requests (student_id, absence_date, reason, submitted_by_name,
			submitted_by_phone, submitted_by_email, status, processing_notes, supporting_documents)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		request.StudentID, request.AbsenceDate, request.Reason, request.SubmittedByName,
		request.SubmittedByPhone, request.SubmittedByEmail, request.Status,
		request.ProcessingNotes, request.SupportingDocuments,
	).Scan(&request.ID, &request.CreatedAt, &request.UpdatedAt)

	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrReferenceNotFound
		}
		return fmt.Errorf("error creating absence request: %w", err)
	}

	return nil
}

// GetByID retrieves an absence request by ID
func (r *AbsenceRequestRepository) GetByID(ctx context.Context, id int64) (*models.AbsenceRequest, error) {
	query := fmt.Sprintf(`SELECT %s FROM absence_requests WHERE id = $1`, absenceColumns)
	return scanAbsenceRequest(r.db.QueryRow(ctx, query, id))
}

// GetByIDForUpdate retrieves an absence request by ID with a row lock, so the
// status check and the transition write form one atomic check-then-set.
func (r *AbsenceRequestRepository) GetByIDForUpdate(ctx context.Context, q Querier, id int64) (*models.AbsenceRequest, error) {
	if q == nil {
		q = r.db
	}
	query := fmt.Sprintf(`SELECT %s FROM absence_requests WHERE id = $1 FOR UPDATE`, absenceColumns)
	return scanAbsenceRequest(q.QueryRow(ctx, query, id))
}

// AbsenceFilter holds parameters for filtering absence requests
type AbsenceFilter struct {
	StudentID *int64
	Status    *models.RequestStatus
	DateFrom  *time.Time
	DateTo    *time.Time
	Limit     int
	Offset    uint64
}

// List retrieves absence requests matching the filter, newest first
func (r *AbsenceRequestRepository) List(ctx context.Context, filter AbsenceFilter) ([]*models.AbsenceRequest, error) {
	builder := squirrel.Select(
		"id", "student_id", "absence_date", "reason", "submitted_by_name", "submitted_by_phone",
		"submitted_by_email", "status", "processed_by", "processed_at", "processing_notes",
		"supporting_documents", "created_at", "updated_at",
	).From("absence_requests").
		OrderBy("created_at DESC").
		PlaceholderFormat(squirrel.Dollar)

	if filter.StudentID != nil {
		builder = builder.Where(squirrel.Eq{"student_id": *filter.StudentID})
	}
	if filter.Status != nil {
		builder = builder.Where(squirrel.Eq{"status": *filter.Status})
	}
	if filter.DateFrom != nil {
		builder = builder.Where(squirrel.GtOrEq{"absence_date": *filter.DateFrom})
	}
	if filter.DateTo != nil {
		builder = builder.Where(squirrel.LtOrEq{"absence_date": *filter.DateTo})
	}
	if filter.Limit > 0 {
		builder = builder.Limit(uint64(filter.Limit)).Offset(filter.Offset)
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building absence request list query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []*models.AbsenceRequest
	for rows.Next() {
		request, err := scanAbsenceRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, request)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return requests, nil
}

// MarkProcessed writes the outcome of a pending request: status, processing
// actor, timestamp and notes change together in one statement.
func (r *AbsenceRequestRepository) MarkProcessed(ctx context.Context, q Querier, id int64, status models.RequestStatus, processedBy int64, processedAt time.Time, notes string) error {
	if q == nil {
		q = r.db
	}

	query := `
		UPDATE absence_requests
		SET status = $1, processed_by = $2, processed_at = $3, processing_notes = $4, updated_at = now()
		WHERE id = $5
	`

	cmdTag, err := q.Exec(ctx, query, status, processedBy, processedAt, notes, id)
	if err != nil {
		return fmt.Errorf("error processing absence request: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrAbsenceRequestNotFound
	}

	return nil
}

// AppendDocument appends a stored document path to the request's ordered list
func (r *AbsenceRequestRepository) AppendDocument(ctx context.Context, id int64, storedPath string) error {
	query := `
		UPDATE absence_requests
		SET supporting_documents = supporting_documents || to_jsonb($1::text), updated_at = now()
		WHERE id = $2
	`

	cmdTag, err := r.db.Exec(ctx, query, storedPath, id)
	if err != nil {
		return fmt.Errorf("error appending supporting document: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrAbsenceRequestNotFound
	}

	return nil
}

// CountPending counts requests still waiting for a decision
func (r *AbsenceRequestRepository) CountPending(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM absence_requests WHERE status = $1`, models.RequestPending).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting pending requests: %w", err)
	}
	return count, nil
}

// CountApprovedForDate counts approved absences for a calendar date
func (r *AbsenceRequestRepository) CountApprovedForDate(ctx context.Context, date time.Time) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM absence_requests WHERE status = $1 AND absence_date = $2`,
		models.RequestApproved, date).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting approved absences: %w", err)
	}
	return count, nil
}
