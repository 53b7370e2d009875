package matcher

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"

	"github.com/autobrr/regexmatcher/pkg/logger"
	"github.com/autobrr/regexmatcher/pkg/prefilter"
	"github.com/autobrr/regexmatcher/pkg/regex"
)

type Options struct {
	// MatchTimeout bounds the evaluation of one pattern against one input; zero means unlimited.
	MatchTimeout time.Duration
	// MaxPatterns caps the number of definitions in a set; zero means unlimited.
	MaxPatterns int
	// Prefilter enables the literal prefilter.
	Prefilter bool
	Log       *logrus.Entry
}

func DefaultOptions() Options {
	return Options{Prefilter: true}
}

// BacktrackCompiler compiles each definition with a backtracking PCRE-like engine, optionally
// guarded by a literal prefilter.
type BacktrackCompiler struct {
	opts Options
	log  *logrus.Entry
}

func NewBacktrackCompiler(opts Options) *BacktrackCompiler {
	log := opts.Log
	if log == nil {
		log = logger.Discard()
	}

	return &BacktrackCompiler{
		opts: opts,
		log:  log,
	}
}

func (c *BacktrackCompiler) Compile(definitions []Definition) (Set, error) {
	if c.opts.MaxPatterns > 0 && len(definitions) > c.opts.MaxPatterns {
		return nil, &PatternCompilationError{
			Message: fmt.Sprintf("pattern count %s exceeds limit %s",
				humanize.Comma(int64(len(definitions))), humanize.Comma(int64(c.opts.MaxPatterns))),
			PatternID: UnattributedPatternID,
		}
	}

	patterns := make([]*regex.Pattern, 0, len(definitions))
	var builder *prefilter.Builder
	if c.opts.Prefilter {
		builder = prefilter.NewBuilder()
	}

	for i, d := range definitions {
		p, err := regex.CompileDefinition(d.ID, d.Text, d.CaseSensitive, regex.Options{
			MatchTimeout: c.opts.MatchTimeout,
		})
		if err != nil {
			c.log.WithError(err).Tracef("Failed compiling pattern %d (index %d): %q", d.ID, i, d.Text)
			return nil, &PatternCompilationError{
				Message:   fmt.Sprintf("unable to compile pattern: error = %v", err),
				PatternID: d.ID,
				Err:       err,
			}
		}

		patterns = append(patterns, p)
		if builder != nil {
			builder.Add(i, d.Text, d.CaseSensitive)
		}
	}

	set := &backtrackSet{patterns: patterns}
	if builder != nil {
		set.prefilter = builder.Build()
		c.log.Tracef("Prefilter indexed %d/%d patterns", set.prefilter.Indexed(), set.prefilter.Len())
	}

	return set, nil
}
