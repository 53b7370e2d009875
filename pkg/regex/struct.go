package regex

import (
	"time"

	"github.com/dlclark/regexp2"
)

// Pattern is a compiled pattern together with the definition it was built from.
type Pattern struct {
	ID            int64
	Text          string
	CaseSensitive bool
	Expression    *regexp2.Regexp
}

// Options tune how definitions are compiled.
type Options struct {
	// MatchTimeout bounds a single MatchString call; zero means unlimited.
	MatchTimeout time.Duration
}
