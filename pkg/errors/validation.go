package errors

import (
	"slices"
	"strings"
)

// ValidateChoice checks that value is one of allowed.
// The returned error carries code and names the field and the accepted values.
func ValidateChoice(code Code, field, value string, allowed []string) error {
	if slices.Contains(allowed, value) {
		return nil
	}
	return New(code, "invalid %s: %q (must be one of: %s)", field, value, strings.Join(allowed, ", "))
}

// ValidateNonNegative checks that an integer option is not negative.
// Zero is accepted; callers treat it as "use the default".
func ValidateNonNegative(code Code, field string, value int) error {
	if value < 0 {
		return New(code, "invalid %s: %d (must be >= 0)", field, value)
	}
	return nil
}

// ValidatePoints checks that n points fit the connection ceiling.
// A complete graph over n points has n(n-1)/2 connections; limit <= 0
// disables the check.
func ValidatePoints(n, limit int) error {
	if limit <= 0 || n < 2 {
		return nil
	}
	pairs := uint64(n) * uint64(n-1) / 2
	if pairs > uint64(limit) {
		return New(ErrCodeResourceLimit,
			"%d points need %d connections, above the limit of %d; raise --max-connections or reduce the input",
			n, pairs, limit)
	}
	return nil
}
