package validation

import (
	"fmt"
	"regexp"

	"github.com/fajarws/schoolcore/internal/pkg/optional"
)

// Patch helpers merge presence-tracked update fields into a model while
// collecting per-field problems into a shared map. A field that is not set is
// skipped entirely; that is what makes "omitted" different from "cleared".

// PatchString applies a required (non-clearable) string field.
func PatchString(fields map[string]interface{}, name string, opt optional.Opt[string], maxLen int, pattern *regexp.Regexp, set func(string)) {
	if !opt.Set {
		return
	}
	if opt.Null {
		fields[name] = "cannot be cleared"
		return
	}
	ok := NewStringValidation(opt.Value).
		WithMaxLength(maxLen).
		WithPattern(pattern).
		Validate()
	if !ok {
		fields[name] = describeStringRule(maxLen, pattern)
		return
	}
	set(opt.Value)
}

// PatchOptionalString applies a nullable string field; present-null clears it.
func PatchOptionalString(fields map[string]interface{}, name string, opt optional.Opt[string], maxLen int, pattern *regexp.Regexp, dst **string) {
	if !opt.Set {
		return
	}
	if opt.Null {
		*dst = nil
		return
	}
	ok := NewStringValidation(opt.Value).
		WithRequired(false).
		WithMaxLength(maxLen).
		WithPattern(pattern).
		Validate()
	if !ok {
		fields[name] = describeStringRule(maxLen, pattern)
		return
	}
	v := opt.Value
	*dst = &v
}

// PatchInt applies a required integer field with range bounds.
func PatchInt(fields map[string]interface{}, name string, opt optional.Opt[int], min, max int, set func(int)) {
	if !opt.Set {
		return
	}
	if opt.Null {
		fields[name] = "cannot be cleared"
		return
	}
	ok := NewNumericValidation(opt.Value).WithMin(min).WithMax(max).Validate()
	if !ok {
		fields[name] = fmt.Sprintf("must be between %d and %d", min, max)
		return
	}
	set(opt.Value)
}

func describeStringRule(maxLen int, pattern *regexp.Regexp) string {
	if pattern != nil {
		return "has an invalid format"
	}
	return fmt.Sprintf("must be a non-empty string of at most %d characters", maxLen)
}
