package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fajarws/schoolcore/internal/pkg/optional"
)

func TestPatchStringSkipsUnsetField(t *testing.T) {
	fields := map[string]interface{}{}
	value := "before"

	PatchString(fields, "name", optional.Opt[string]{}, 10, nil, func(v string) { value = v })

	assert.Empty(t, fields)
	assert.Equal(t, "before", value)
}

func TestPatchStringRejectsNullOnRequiredField(t *testing.T) {
	fields := map[string]interface{}{}
	value := "before"

	PatchString(fields, "name", optional.Null[string](), 10, nil, func(v string) { value = v })

	assert.Equal(t, "cannot be cleared", fields["name"])
	assert.Equal(t, "before", value)
}

func TestPatchStringAppliesValidValue(t *testing.T) {
	fields := map[string]interface{}{}
	value := "before"

	PatchString(fields, "name", optional.Of("after"), 10, nil, func(v string) { value = v })

	assert.Empty(t, fields)
	assert.Equal(t, "after", value)
}

func TestPatchStringRejectsOverlongValue(t *testing.T) {
	fields := map[string]interface{}{}
	value := "before"

	PatchString(fields, "name", optional.Of("this exceeds the limit"), 5, nil, func(v string) { value = v })

	assert.Contains(t, fields, "name")
	assert.Equal(t, "before", value)
}

func TestPatchStringEnforcesPattern(t *testing.T) {
	fields := map[string]interface{}{}
	var value string

	PatchString(fields, "academicYear", optional.Of("nope"), 9, CompiledPatterns.AcademicYear, func(v string) { value = v })
	assert.Equal(t, "has an invalid format", fields["academicYear"])
	assert.Empty(t, value)

	delete(fields, "academicYear")
	PatchString(fields, "academicYear", optional.Of("2024/2025"), 9, CompiledPatterns.AcademicYear, func(v string) { value = v })
	assert.Empty(t, fields)
	assert.Equal(t, "2024/2025", value)
}

func TestPatchOptionalStringClearsOnNull(t *testing.T) {
	fields := map[string]interface{}{}
	existing := "before"
	dst := &existing

	PatchOptionalString(fields, "phone", optional.Null[string](), 20, nil, &dst)

	assert.Empty(t, fields)
	assert.Nil(t, dst)
}

func TestPatchOptionalStringSetsValue(t *testing.T) {
	fields := map[string]interface{}{}
	var dst *string

	PatchOptionalString(fields, "phone", optional.Of("08123"), 20, nil, &dst)

	assert.Empty(t, fields)
	require.NotNil(t, dst)
	assert.Equal(t, "08123", *dst)
}

func TestPatchIntEnforcesRange(t *testing.T) {
	fields := map[string]interface{}{}
	value := 3

	PatchInt(fields, "maxPermitDays", optional.Of(31), 1, 30, func(v int) { value = v })
	assert.Equal(t, "must be between 1 and 30", fields["maxPermitDays"])
	assert.Equal(t, 3, value)

	delete(fields, "maxPermitDays")
	PatchInt(fields, "maxPermitDays", optional.Of(7), 1, 30, func(v int) { value = v })
	assert.Empty(t, fields)
	assert.Equal(t, 7, value)
}
