package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationErrorCarriesFieldDetails(t *testing.T) {
	err := NewValidationError("validation failed", map[string]interface{}{
		"name": "is required",
	})

	assert.ErrorIs(t, err, ErrValidationFailed)

	fields := FieldErrors(err)
	require.NotNil(t, fields)
	assert.Equal(t, "is required", fields["name"])
}

func TestFieldErrorsNilForPlainErrors(t *testing.T) {
	assert.Nil(t, FieldErrors(errors.New("boom")))
	assert.Nil(t, FieldErrors(ErrNotFound))
}

func TestStateConflictErrorUnwraps(t *testing.T) {
	err := NewStateConflictError("permit is already approved")
	assert.ErrorIs(t, err, ErrStateConflict)
	assert.Equal(t, "permit is already approved", err.Error())
}

func TestWrappedSentinelsStillMatch(t *testing.T) {
	err := fmt.Errorf("%w: maximum is 3 days", ErrPermitTooLong)
	assert.ErrorIs(t, err, ErrPermitTooLong)
}

func TestIsMatchesAnyOfList(t *testing.T) {
	assert.True(t, Is(ErrUsernameExists, ErrEmailExists, ErrUsernameExists))
	assert.False(t, Is(ErrUserNotFound, ErrEmailExists, ErrUsernameExists))
}
