package matcher

import (
	"fmt"
)

// UnattributedPatternID is reported when a compilation failure is not caused by one definition.
const UnattributedPatternID int64 = -1

// PatternCompilationError is returned when a pattern set cannot be compiled.
type PatternCompilationError struct {
	Message   string
	PatternID int64
	Err       error
}

func (e *PatternCompilationError) Error() string {
	if e.PatternID < 0 {
		return fmt.Sprintf("failed to prepare patterns: %s", e.Message)
	}
	return fmt.Sprintf("failed to prepare patterns: %s, erroneous pattern id = %d", e.Message, e.PatternID)
}

func (e *PatternCompilationError) Unwrap() error {
	return e.Err
}

// Attributed reports whether the failure names a specific pattern id.
func (e *PatternCompilationError) Attributed() bool {
	return e.PatternID > 0
}

// MatchLimitError is returned when evaluating a pattern exceeded its match timeout.
// Results for that input are incomplete and are not returned.
type MatchLimitError struct {
	PatternID int64
	Err       error
}

func (e *MatchLimitError) Error() string {
	return fmt.Sprintf("match stopped on pattern id %d: %v", e.PatternID, e.Err)
}

func (e *MatchLimitError) Unwrap() error {
	return e.Err
}
