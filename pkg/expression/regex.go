package expression

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dlclark/regexp2"

	"github.com/autobrr/regexmatcher/pkg/regex"
)

var (
	// Matches: RegexMatch("pattern"), RegexMatchAny("pattern1, pattern2"), RegexMatchAll("pattern1, pattern2")
	regexFuncPattern = regexp2.MustCompile(`RegexMatch(?:Any|All)?\("([^"\\]*(?:\\.[^"\\]*)*)"\)`, regexp2.None)
)

// getAllPatterns extracts all regex patterns passed as string literals in a rule
func getAllPatterns(rule string) ([]string, error) {
	var patterns []string

	match, err := regexFuncPattern.FindStringMatch(rule)
	for ; match != nil && err == nil; match, err = regexFuncPattern.FindNextMatch(match) {
		// group 1 contains the pattern(s), still escaped as an expression string literal
		patternStr := match.GroupByNumber(1).String()
		if unquoted, uerr := strconv.Unquote(`"` + patternStr + `"`); uerr == nil {
			patternStr = unquoted
		}

		// handle comma-separated patterns for RegexMatchAny/All
		patterns = append(patterns, splitPatterns(patternStr)...)
	}
	if err != nil {
		return nil, fmt.Errorf("invalid regex function: %w", err)
	}

	return patterns, nil
}

func splitPatterns(patternsStr string) []string {
	var patterns []string
	for _, p := range strings.Split(patternsStr, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			patterns = append(patterns, p)
		}
	}
	return patterns
}

func (r *Rules) pattern(text string) (*regex.Pattern, error) {
	if p, ok := r.patterns[text]; ok {
		return p, nil
	}

	p, err := regex.Compile(text)
	if err != nil {
		return nil, err
	}

	r.patterns[text] = p
	return p, nil
}
