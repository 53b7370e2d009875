package engine

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/autobrr/regexmatcher/pkg/matcher"
)

type Option func(*options)

type options struct {
	compiler matcher.Compiler
	matcher  matcher.Options
	log      *logrus.Entry
}

// WithCompiler replaces the default backtracking compiler. Matcher options are ignored when set.
func WithCompiler(c matcher.Compiler) Option {
	return func(o *options) {
		o.compiler = c
	}
}

// WithLogger sets the entry used for debug and trace output.
func WithLogger(log *logrus.Entry) Option {
	return func(o *options) {
		o.log = log
	}
}

// WithMatchTimeout bounds the evaluation of a single pattern against a single input.
func WithMatchTimeout(d time.Duration) Option {
	return func(o *options) {
		o.matcher.MatchTimeout = d
	}
}

// WithMaxPatterns makes Prepare fail once more than n definitions are registered.
func WithMaxPatterns(n int) Option {
	return func(o *options) {
		o.matcher.MaxPatterns = n
	}
}

// WithPrefilter toggles the literal prefilter, enabled by default.
func WithPrefilter(enabled bool) Option {
	return func(o *options) {
		o.matcher.Prefilter = enabled
	}
}
