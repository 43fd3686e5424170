package dberrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func pgError(code, constraint string) error {
	return &pgconn.PgError{Code: code, ConstraintName: constraint}
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, IsUniqueViolation(pgError("23505", "users_username_key")))
	assert.False(t, IsUniqueViolation(pgError("23503", "")))
	assert.False(t, IsUniqueViolation(errors.New("plain error")))
}

func TestIsDuplicateConstraintErrorMatchesByName(t *testing.T) {
	err := pgError("23505", "students_nis_key")

	assert.True(t, IsDuplicateConstraintError(err, "students_nis_key"))
	assert.False(t, IsDuplicateConstraintError(err, "users_email_key"))
}

func TestWrappedErrorsStillDetected(t *testing.T) {
	wrapped := fmt.Errorf("error creating student: %w", pgError("23505", "students_nis_key"))

	assert.True(t, IsUniqueViolation(wrapped))
	assert.True(t, IsDuplicateConstraintError(wrapped, "students_nis_key"))
}

func TestIsForeignKeyViolation(t *testing.T) {
	assert.True(t, IsForeignKeyViolation(pgError("23503", "student_permits_student_id_fkey")))
	assert.False(t, IsForeignKeyViolation(pgError("23505", "")))
}

func TestIsCheckViolation(t *testing.T) {
	err := pgError("23514", "student_permits_date_range_check")

	assert.True(t, IsCheckViolation(err, "student_permits_date_range_check"))
	assert.False(t, IsCheckViolation(err, "other_check"))
}

func TestConstraintName(t *testing.T) {
	assert.Equal(t, "users_email_key", ConstraintName(pgError("23505", "users_email_key")))
	assert.Empty(t, ConstraintName(errors.New("plain error")))
}
