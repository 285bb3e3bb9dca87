package differ

import "errors"

// Sentinel errors for every expected failure mode. Callers match them with
// errors.Is; the wrapped message carries the specifics (dimensions, line
// numbers, mismatched texts).
var (
	// ErrInputTooLarge is returned when the LCS table for a pair of inputs
	// would exceed the configured cell budget.
	ErrInputTooLarge = errors.New("input too large")

	// ErrMalformedPatch is returned when patch text violates the format:
	// missing "---"/"+++" headers or a body line with an unknown prefix.
	ErrMalformedPatch = errors.New("malformed patch")

	// ErrApplyConflict is returned when a patch does not match the text it
	// is applied to. The original text is never partially modified.
	ErrApplyConflict = errors.New("apply conflict")

	// ErrInvalidOptions is returned for an unrecognized mode or a negative
	// cell budget.
	ErrInvalidOptions = errors.New("invalid options")
)
