package regex

import (
	"github.com/pkg/errors"
)

// Match reports whether the pattern matches anywhere in input.
// The only error is the match timeout being exceeded.
func (p *Pattern) Match(input string) (bool, error) {
	matched, err := p.Expression.MatchString(input)
	if err != nil {
		return false, errors.Wrapf(err, "pattern %d (%q)", p.ID, p.Text)
	}
	return matched, nil
}

// MatchAny stops at the first pattern that matches.
func MatchAny(input string, patterns []*Pattern) (bool, error) {
	for _, p := range patterns {
		if matched, err := p.Match(input); err != nil || matched {
			return matched, err
		}
	}
	return false, nil
}

// MatchAll stops at the first pattern that does not match.
func MatchAll(input string, patterns []*Pattern) (bool, error) {
	for _, p := range patterns {
		if matched, err := p.Match(input); err != nil || !matched {
			return false, err
		}
	}
	return true, nil
}
