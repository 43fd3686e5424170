package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fajarws/schoolcore/internal/permit/models"
)

// AuditLogRepository handles database operations for the audit trail. The
// table is append-only: insert and read, nothing else.
type AuditLogRepository struct {
	db *pgxpool.Pool
}

// NewAuditLogRepository creates a new audit log repository
func NewAuditLogRepository(db *pgxpool.Pool) *AuditLogRepository {
	return &AuditLogRepository{
		db: db,
	}
}

// Insert appends one audit row. Accepts a Querier so the row lands in the
// same transaction as the mutation it records.
func (r *AuditLogRepository) Insert(ctx context.Context, q Querier, entry *models.AuditLog) error {
	if q == nil {
		q = r.db
	}

	query := `
		INSERT INTO audit_logs (user_id, action, table_name, record_id, old_values,
			new_values, ip_address, user_agent)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`

	err := q.QueryRow(ctx, query,
		entry.UserID, entry.Action, entry.TableName, entry.RecordID, entry.OldValues,
		entry.NewValues, entry.IPAddress, entry.UserAgent,
	).Scan(&entry.ID, &entry.CreatedAt)

	if err != nil {
		return fmt.Errorf("error inserting audit log: %w", err)
	}

	return nil
}

// AuditLogFilter holds parameters for filtering the audit trail
type AuditLogFilter struct {
	UserID    *int64
	TableName *string
	RecordID  *int64
	Action    *string
	From      *time.Time
	To        *time.Time
	Limit     int
	Offset    uint64
}

// List retrieves audit rows matching the filter, newest first
func (r *AuditLogRepository) List(ctx context.Context, filter AuditLogFilter) ([]*models.AuditLog, error) {
	builder := squirrel.Select(
		"id", "user_id", "action", "table_name", "record_id", "old_values", "new_values",
		"ip_address", "user_agent", "created_at",
	).From("audit_logs").
		OrderBy("created_at DESC", "id DESC").
		PlaceholderFormat(squirrel.Dollar)

	if filter.UserID != nil {
		builder = builder.Where(squirrel.Eq{"user_id": *filter.UserID})
	}
	if filter.TableName != nil {
		builder = builder.Where(squirrel.Eq{"table_name": *filter.TableName})
	}
	if filter.RecordID != nil {
		builder = builder.Where(squirrel.Eq{"record_id": *filter.RecordID})
	}
	if filter.Action != nil {
		builder = builder.Where(squirrel.Eq{"action": *filter.Action})
	}
	if filter.From != nil {
		builder = builder.Where(squirrel.GtOrEq{"created_at": *filter.From})
	}
	if filter.To != nil {
		builder = builder.Where(squirrel.LtOrEq{"created_at": *filter.To})
	}
	if filter.Limit > 0 {
		builder = builder.Limit(uint64(filter.Limit)).Offset(filter.Offset)
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building audit log query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*models.AuditLog
	for rows.Next() {
		var e models.AuditLog
		err := rows.Scan(
			&e.ID, &e.UserID, &e.Action, &e.TableName, &e.RecordID, &e.OldValues,
			&e.NewValues, &e.IPAddress, &e.UserAgent, &e.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		entries = append(entries, &e)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}
