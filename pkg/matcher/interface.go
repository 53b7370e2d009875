// Package matcher turns an ordered list of pattern definitions into a set that can be scanned in one
// call, reporting every pattern id that matches.
package matcher

import "github.com/scylladb/go-set/i64set"

// Definition is a single registered pattern.
type Definition struct {
	ID            int64
	Text          string
	CaseSensitive bool
}

// Compiler builds a Set from definitions given in insertion order.
// A failure must be reported as a *PatternCompilationError naming the first failing definition.
type Compiler interface {
	Compile(definitions []Definition) (Set, error)
}

// Set is an immutable compiled pattern set.
type Set interface {
	// Scan returns the distinct ids of every definition matching input.
	Scan(input string) (*i64set.Set, error)
	// Len returns the number of compiled definitions.
	Len() int
	// Close releases the set. It must not be used afterwards.
	Close()
}
