package regex

import (
	"fmt"

	"github.com/dlclark/regexp2"
)

// Compile compiles a case sensitive pattern with default options.
func Compile(pattern string) (*Pattern, error) {
	return CompileDefinition(0, pattern, true, Options{})
}

// CompileDefinition compiles pattern text using PCRE-like semantics.
// caseSensitive only sets the initial mode: inline (?i) / (?-i) in the text take precedence.
func CompileDefinition(id int64, text string, caseSensitive bool, opts Options) (pattern *Pattern, err error) {
	body, verbs, err := ParseVerbs(text)
	if err != nil {
		return nil, err
	}

	body, err = translate(body, verbs.UCP)
	if err != nil {
		return nil, err
	}

	options := regexp2.RegexOptions(regexp2.RE2)
	if verbs.UCP {
		// RE2 compat mode restricts \w, \d and \s to ASCII
		options = regexp2.None
	}
	if !caseSensitive {
		options |= regexp2.IgnoreCase
	}

	defer func() {
		if r := recover(); r != nil {
			pattern = nil
			err = fmt.Errorf("regexp2 panic: %v", r)
		}
	}()

	re, err := regexp2.Compile(body, options)
	if err != nil {
		return nil, err
	}

	if opts.MatchTimeout > 0 {
		re.MatchTimeout = opts.MatchTimeout
	}

	return &Pattern{
		ID:            id,
		Text:          text,
		CaseSensitive: caseSensitive,
		Expression:    re,
	}, nil
}
