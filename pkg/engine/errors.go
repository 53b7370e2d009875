package engine

import (
	"errors"
	"fmt"

	"github.com/autobrr/regexmatcher/pkg/matcher"
)

var (
	// ErrInvalidArgument is wrapped by errors returned from AddPattern for unusable pattern ids.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrClosed is carried by the panic raised when a closed engine is used.
	ErrClosed = errors.New("engine is closed")
	// ErrNotPrepared is carried by the panic raised when Match is called before Prepare.
	ErrNotPrepared = errors.New("pattern set was changed but not prepared")
)

type (
	PatternCompilationError = matcher.PatternCompilationError
	MatchLimitError         = matcher.MatchLimitError
)

const UnattributedPatternID = matcher.UnattributedPatternID

// UsageError is the panic value for calls that violate the engine contract.
type UsageError struct {
	Op  string
	Err error
}

func (e *UsageError) Error() string {
	return fmt.Sprintf("regexmatcher: %s: %v", e.Op, e.Err)
}

func (e *UsageError) Unwrap() error {
	return e.Err
}
