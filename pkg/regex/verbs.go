package regex

import (
	"fmt"
	"strconv"
	"strings"
)

// Verbs records the PCRE start-of-pattern options found at the front of a pattern.
type Verbs struct {
	// UTF is set by (*UTF8) or (*UTF). Input is always decoded as UTF-8, so it has no further effect.
	UTF bool
	// UCP switches \w, \d and \s to Unicode properties.
	UCP bool
}

// ParseVerbs strips leading (*VERB) options from text and returns the remaining pattern.
func ParseVerbs(text string) (string, Verbs, error) {
	var verbs Verbs

	for strings.HasPrefix(text, "(*") {
		end := strings.IndexByte(text, ')')
		if end < 0 {
			return "", verbs, fmt.Errorf("unterminated pattern start option in %q", text)
		}

		name := text[2:end]
		if value, ok := strings.CutPrefix(name, "LIMIT_"); ok {
			if err := parseLimit(value); err != nil {
				return "", verbs, fmt.Errorf("invalid (*%s): %w", name, err)
			}
			text = text[end+1:]
			continue
		}

		switch name {
		case "UTF8", "UTF":
			verbs.UTF = true
		case "UCP":
			verbs.UCP = true
		case "LF", "NO_AUTO_POSSESS", "NO_START_OPT", "NO_DOTSTAR_ANCHOR", "NO_JIT", "BSR_UNICODE":
			// optimisation hints or the default behaviour
		case "UTF16", "UTF32", "CR", "CRLF", "ANYCRLF", "ANY", "NUL", "BSR_ANYCRLF", "NOTEMPTY", "NOTEMPTY_ATSTART":
			return "", verbs, fmt.Errorf("unsupported pattern start option (*%s)", name)
		default:
			// not a start option, let the regex parser deal with it
			return text, verbs, nil
		}

		text = text[end+1:]
	}

	return text, verbs, nil
}

// parseLimit validates the value of a (*LIMIT_xxx=n) option. Limits are accepted but not enforced;
// use a match timeout instead.
func parseLimit(value string) error {
	kind, n, ok := strings.Cut(value, "=")
	if !ok {
		return fmt.Errorf("missing value")
	}

	switch kind {
	case "MATCH", "RECURSION", "DEPTH", "HEAP":
	default:
		return fmt.Errorf("unknown limit %q", kind)
	}

	if _, err := strconv.ParseUint(n, 10, 32); err != nil {
		return err
	}
	return nil
}
