// Package engine implements a mutable multi-pattern regular expression matcher.
//
// Patterns are registered with AddPattern and RemovePattern, compiled in one go by Prepare and then
// evaluated together by Match, which reports the id of every pattern matching the input:
//
//	e := engine.New()
//	defer e.Close()
//
//	_ = e.AddPattern(1, "^a+$", false)
//	_ = e.AddPattern(2, "^(a|b)+$", false)
//	if err := e.Prepare(); err != nil {
//		// err is a *PatternCompilationError naming the first broken pattern
//	}
//	ids, _ := e.Match("a") // {1, 2}
//
// An Engine is not safe for concurrent use. Serialise access or use one Engine per goroutine.
// Calling Match before Prepare, or any method after Close, is a programming error and panics
// with a *UsageError.
package engine

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/scylladb/go-set/i64set"
	"github.com/sirupsen/logrus"

	"github.com/autobrr/regexmatcher/pkg/logger"
	"github.com/autobrr/regexmatcher/pkg/matcher"
)

// MaxPatternID is the largest accepted pattern id.
const MaxPatternID int64 = math.MaxInt32

type Engine struct {
	id       string
	log      *logrus.Entry
	compiler matcher.Compiler
	registry *registry
	compiled matcher.Set
	dirty    bool
	closed   bool
}

func New(opts ...Option) *Engine {
	o := options{matcher: matcher.DefaultOptions()}
	for _, opt := range opts {
		opt(&o)
	}

	id := uuid.NewString()
	log := o.log
	if log == nil {
		log = logger.Discard()
	}
	log = log.WithField("engine", id[:8])

	compiler := o.compiler
	if compiler == nil {
		mo := o.matcher
		mo.Log = log
		compiler = matcher.NewBacktrackCompiler(mo)
	}

	return &Engine{
		id:       id,
		log:      log,
		compiler: compiler,
		registry: &registry{},
		// nothing has been compiled yet
		dirty: true,
	}
}

// ID returns the instance id used to tag log entries.
func (e *Engine) ID() string {
	return e.id
}

// AddPattern registers pattern under id. Several patterns may share an id.
// The pattern is not validated until Prepare.
func (e *Engine) AddPattern(id int64, pattern string, caseSensitive bool) error {
	e.mustBeOpen("add pattern")

	if id <= 0 || id > MaxPatternID {
		return fmt.Errorf("%w: pattern id %d outside [1, %d]", ErrInvalidArgument, id, MaxPatternID)
	}

	e.registry.add(matcher.Definition{
		ID:            id,
		Text:          pattern,
		CaseSensitive: caseSensitive,
	})
	e.dirty = true

	e.log.Tracef("Added pattern %d (case sensitive: %t): %q", id, caseSensitive, pattern)
	return nil
}

// RemovePattern removes every pattern registered under id and reports whether any existed.
func (e *Engine) RemovePattern(id int64) bool {
	e.mustBeOpen("remove pattern")

	removed := e.registry.remove(id)
	if removed == 0 {
		return false
	}

	e.dirty = true
	e.log.Tracef("Removed %d pattern(s) with id %d", removed, id)
	return true
}

// Prepare compiles the registered patterns. It is a no-op when nothing changed since the last
// successful call. On failure the previously prepared set is kept and the engine stays dirty.
func (e *Engine) Prepare() error {
	e.mustBeOpen("prepare")

	if !e.dirty {
		return nil
	}

	start := time.Now()
	definitions := e.registry.snapshot()

	set, err := e.compiler.Compile(definitions)
	if err != nil {
		var cerr *matcher.PatternCompilationError
		if !errors.As(err, &cerr) {
			cerr = &matcher.PatternCompilationError{
				Message:   err.Error(),
				PatternID: matcher.UnattributedPatternID,
				Err:       err,
			}
		}

		e.log.WithError(cerr).Debugf("Failed preparing %s patterns", humanize.Comma(int64(len(definitions))))
		return cerr
	}

	if e.compiled != nil {
		e.compiled.Close()
	}
	e.compiled = set
	e.dirty = false

	e.log.Debugf("Prepared %s patterns (%s ids) in %s", humanize.Comma(int64(len(definitions))),
		humanize.Comma(int64(e.registry.ids().Size())), time.Since(start))
	return nil
}

// Match returns the ids of all patterns matching input. It panics if the pattern set changed
// since the last successful Prepare.
func (e *Engine) Match(input string) (*i64set.Set, error) {
	e.mustBeOpen("match")

	if e.dirty {
		panic(&UsageError{Op: "match", Err: ErrNotPrepared})
	}

	return e.compiled.Scan(input)
}

// MatchLastPrepared evaluates input against the last successfully prepared set, ignoring registry
// changes made since. It panics if Prepare never succeeded.
func (e *Engine) MatchLastPrepared(input string) (*i64set.Set, error) {
	e.mustBeOpen("match last prepared")

	if e.compiled == nil {
		panic(&UsageError{Op: "match last prepared", Err: ErrNotPrepared})
	}

	return e.compiled.Scan(input)
}

// Close releases the compiled pattern set. The engine cannot be used afterwards; a second Close panics.
func (e *Engine) Close() {
	e.mustBeOpen("close")

	if e.compiled != nil {
		e.compiled.Close()
		e.compiled = nil
	}
	e.registry = nil
	e.closed = true

	e.log.Trace("Closed")
}

// Len returns the number of registered patterns.
func (e *Engine) Len() int {
	e.mustBeOpen("len")
	return e.registry.len()
}

// Dirty reports whether Prepare must be called before Match.
func (e *Engine) Dirty() bool {
	e.mustBeOpen("dirty")
	return e.dirty
}

func (e *Engine) mustBeOpen(op string) {
	if e.closed {
		panic(&UsageError{Op: op, Err: ErrClosed})
	}
}
