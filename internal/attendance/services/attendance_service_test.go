package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fajarws/schoolcore/internal/pkg/apperrors"
)

func TestListSummariesRejectsReversedRange(t *testing.T) {
	svc := NewAttendanceService(nil, nil, nil, nil, nil)

	from := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 3, 8, 0, 0, 0, 0, time.UTC)

	summaries, err := svc.ListSummaries(context.Background(), from, to)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidDateRange))
	assert.Nil(t, summaries)
}
