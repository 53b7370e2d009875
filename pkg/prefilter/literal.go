package prefilter

import (
	"strings"
	"unicode/utf8"

	"github.com/autobrr/regexmatcher/pkg/regex"
)

// MinLiteralLen is the shortest literal, in runes, worth putting in the automaton.
const MinLiteralLen = 2

// Literal is a string every match of a pattern is guaranteed to contain.
type Literal struct {
	Text          string
	CaseSensitive bool
}

// RequiredLiteral extracts the literal prefix of a pattern body, after an optional ^ anchor and
// an optional leading (?i) or (?-i). Anything the extractor does not fully understand yields false.
// Case insensitive literals are returned lower cased.
func RequiredLiteral(text string, caseSensitive bool) (Literal, bool) {
	body, _, err := regex.ParseVerbs(text)
	if err != nil {
		return Literal{}, false
	}

	// alternation anywhere makes the prefix optional
	if strings.ContainsRune(body, '|') {
		return Literal{}, false
	}

	body = strings.TrimPrefix(body, "^")
	switch {
	case strings.HasPrefix(body, "(?i)"):
		caseSensitive = false
		body = body[len("(?i)"):]
	case strings.HasPrefix(body, "(?-i)"):
		caseSensitive = true
		body = body[len("(?-i)"):]
	}
	body = strings.TrimPrefix(body, "^")

	var sb strings.Builder
	var last int // byte length of sb before the last literal rune was written

	for i := 0; i < len(body); {
		r, size := utf8.DecodeRuneInString(body[i:])
		if r == utf8.RuneError {
			break
		}

		if r == '\\' {
			if i+1 >= len(body) {
				break
			}
			next := body[i+1]
			if next >= utf8.RuneSelf || isWordByte(next) {
				// class, back-reference, anchor or code point escape
				break
			}
			last = sb.Len()
			sb.WriteByte(next)
			i += 2
			continue
		}

		if isQuantifier(r) {
			if r != '+' {
				// the preceding rune is optional
				truncated := sb.String()[:last]
				sb.Reset()
				sb.WriteString(truncated)
			}
			break
		}

		if isMeta(r) {
			break
		}

		last = sb.Len()
		sb.WriteRune(r)
		i += size
	}

	literal := sb.String()
	if utf8.RuneCountInString(literal) < MinLiteralLen {
		return Literal{}, false
	}

	if !caseSensitive {
		literal = strings.ToLower(literal)
	}

	return Literal{Text: literal, CaseSensitive: caseSensitive}, true
}

func isQuantifier(r rune) bool {
	switch r {
	case '*', '+', '?', '{':
		return true
	}
	return false
}

func isMeta(r rune) bool {
	switch r {
	case '.', '[', ']', '(', ')', '}', '^', '$', '|', '#':
		return true
	}
	return false
}

func isWordByte(b byte) bool {
	return b == '_' || ('0' <= b && b <= '9') || ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z')
}
