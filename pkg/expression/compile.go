package expression

import (
	"fmt"
	"sort"

	"github.com/expr-lang/expr"
	"github.com/scylladb/go-set/i64set"

	"github.com/autobrr/regexmatcher/pkg/regex"
)

type evalContext struct {
	// Input is the scanned text.
	Input string

	matched *i64set.Set
	rules   *Rules
}

func (e *evalContext) Matched(id int) bool {
	if e.matched == nil {
		return false
	}
	return e.matched.Has(int64(id))
}

func (e *evalContext) MatchedAny(ids ...int) bool {
	for _, id := range ids {
		if e.Matched(id) {
			return true
		}
	}
	return false
}

func (e *evalContext) MatchedAll(ids ...int) bool {
	for _, id := range ids {
		if !e.Matched(id) {
			return false
		}
	}
	return true
}

func (e *evalContext) Count() int {
	if e.matched == nil {
		return 0
	}
	return e.matched.Size()
}

func (e *evalContext) RegexMatch(pattern string) bool {
	if e.rules == nil {
		return false
	}

	p, err := e.rules.pattern(pattern)
	if err != nil {
		return false
	}

	match, err := p.Match(e.Input)
	if err != nil {
		return false
	}
	return match
}

// RegexMatchAny checks if the input matches any of the comma separated patterns
func (e *evalContext) RegexMatchAny(patternsStr string) bool {
	if e.rules == nil {
		return false
	}

	var compiledPatterns []*regex.Pattern
	for _, text := range splitPatterns(patternsStr) {
		p, err := e.rules.pattern(text)
		if err != nil {
			continue
		}
		compiledPatterns = append(compiledPatterns, p)
	}

	match, err := regex.MatchAny(e.Input, compiledPatterns)
	if err != nil {
		return false
	}
	return match
}

// RegexMatchAll checks if the input matches all of the comma separated patterns
func (e *evalContext) RegexMatchAll(patternsStr string) bool {
	if e.rules == nil {
		return false
	}

	var compiledPatterns []*regex.Pattern
	for _, text := range splitPatterns(patternsStr) {
		p, err := e.rules.pattern(text)
		if err != nil {
			return false
		}
		compiledPatterns = append(compiledPatterns, p)
	}

	match, err := regex.MatchAll(e.Input, compiledPatterns)
	if err != nil {
		return false
	}
	return match
}

// Compile compiles named rule expressions. Rules are ordered by name.
func Compile(rules map[string]string) (*Rules, error) {
	exprEnv := &evalContext{}
	exp := &Rules{patterns: make(map[string]*regex.Pattern)}

	names := make([]string, 0, len(rules))
	for name := range rules {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		text := rules[name]

		// validate and cache all regex patterns in the rule
		patterns, err := getAllPatterns(text)
		if err != nil {
			return nil, fmt.Errorf("rule %q: %w", name, err)
		}
		for _, p := range patterns {
			if _, err := exp.pattern(p); err != nil {
				return nil, fmt.Errorf("rule %q: invalid regex pattern %q: %w", name, p, err)
			}
		}

		program, err := expr.Compile(text, expr.Env(exprEnv), expr.AsBool())
		if err != nil {
			return nil, fmt.Errorf("compile rule expression: %v: %q: %w", name, text, err)
		}

		exp.Rules = append(exp.Rules, CompiledRule{
			Name:    name,
			Program: program,
			Text:    text,
		})
	}

	return exp, nil
}
