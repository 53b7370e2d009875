package regex

import (
	"fmt"
	"strings"
)

const (
	horizontalSpace = `\t \u00a0\u1680\u180e\u2000-\u200a\u202f\u205f\u3000`
	verticalSpace   = `\n\x0b\f\r\u0085\u2028\u2029`

	// PCRE $ and \Z also match before a final newline, RE2 mode does not
	endOfSubject = `(?=\n?\z)`
)

// class contents used for [:name:] once (*UCP) has switched regexp2 out of RE2 mode
var (
	ucpPosixClasses = map[string]string{
		"alnum":  `\p{L}\p{N}`,
		"alpha":  `\p{L}`,
		"blank":  horizontalSpace,
		"cntrl":  `\p{Cc}`,
		"digit":  `\p{Nd}`,
		"lower":  `\p{Ll}`,
		"punct":  "\\p{P}\\$\\+<=>\\^`\\|~",
		"space":  `\s`,
		"upper":  `\p{Lu}`,
		"word":   `\w`,
		"xdigit": `0-9A-Fa-f`,
	}

	ucpNegatedPosixClasses = map[string]string{
		"alpha": `\P{L}`,
		"cntrl": `\P{Cc}`,
		"digit": `\P{Nd}`,
		"lower": `\P{Ll}`,
		"space": `\S`,
		"upper": `\P{Lu}`,
		"word":  `\W`,
	}
)

// translate rewrites the PCRE constructs regexp2 does not understand, or understands differently,
// into equivalent regexp2 syntax. Constructs without an equivalent are rejected.
func translate(body string, ucp bool) (string, error) {
	var sb strings.Builder
	sb.Grow(len(body))

	inClass := false
	multiline := false

	for i := 0; i < len(body); i++ {
		c := body[i]

		if c == '\\' {
			if i+1 >= len(body) {
				// regexp2 reports the trailing backslash
				sb.WriteByte(c)
				continue
			}

			i++
			next := body[i]

			switch next {
			case 'Q':
				rest := body[i+1:]
				end := strings.Index(rest, `\E`)
				if end < 0 {
					quoteLiteral(&sb, rest)
					i = len(body)
					continue
				}
				quoteLiteral(&sb, rest[:end])
				i += end + 2
			case 'E':
				// \E without \Q is ignored
			case 'h':
				writeClass(&sb, horizontalSpace, inClass, false)
			case 'v':
				writeClass(&sb, verticalSpace, inClass, false)
			case 'H', 'V':
				if inClass {
					return "", fmt.Errorf(`\%c is not supported inside a character class`, next)
				}
				if next == 'H' {
					writeClass(&sb, horizontalSpace, false, true)
				} else {
					writeClass(&sb, verticalSpace, false, true)
				}
			case 'R':
				if inClass {
					return "", fmt.Errorf(`\R is not allowed inside a character class`)
				}
				sb.WriteString(`(?:\r\n|[` + verticalSpace + `])`)
			case 'Z':
				if !inClass && !ucp && !multiline {
					sb.WriteString(endOfSubject)
				} else {
					sb.WriteString(`\Z`)
				}
			case 'c':
				// \cX is a control character, X is never syntax
				sb.WriteString(`\c`)
				if i+1 < len(body) {
					i++
					sb.WriteByte(body[i])
				}
			default:
				sb.WriteByte('\\')
				sb.WriteByte(next)
			}
			continue
		}

		if inClass {
			switch c {
			case ']':
				inClass = false
				sb.WriteByte(c)
			case '[':
				if i+1 < len(body) && body[i+1] == ':' {
					if end := strings.Index(body[i+2:], ":]"); end >= 0 {
						repl, err := posixClass(body[i+2:i+2+end], ucp)
						if err != nil {
							return "", err
						}
						sb.WriteString(repl)
						i += end + 3
						continue
					}
				}
				sb.WriteByte(c)
			default:
				sb.WriteByte(c)
			}
			continue
		}

		switch c {
		case '[':
			inClass = true
			sb.WriteByte(c)

			// a ] right after [ or [^ is a literal
			j := i + 1
			if j < len(body) && body[j] == '^' {
				sb.WriteByte('^')
				j++
			}
			if j < len(body) && body[j] == ']' {
				sb.WriteByte(']')
				j++
			}
			i = j - 1
		case '$':
			if !ucp && !multiline {
				sb.WriteString(endOfSubject)
			} else {
				sb.WriteByte(c)
			}
		case '(':
			if strings.HasPrefix(body[i:], "(?#") {
				end := strings.IndexByte(body[i:], ')')
				if end < 0 {
					sb.WriteString(body[i:])
					i = len(body)
					continue
				}
				sb.WriteString(body[i : i+end+1])
				i += end
				continue
			}
			if strings.HasPrefix(body[i:], "(?") && setsMultiline(body[i+2:]) {
				// flag scoping is not tracked, $ keeps its multiline meaning from here on
				multiline = true
			}
			sb.WriteByte(c)
		default:
			sb.WriteByte(c)
		}
	}

	return sb.String(), nil
}

func writeClass(sb *strings.Builder, contents string, inClass bool, negated bool) {
	if inClass {
		sb.WriteString(contents)
		return
	}

	sb.WriteByte('[')
	if negated {
		sb.WriteByte('^')
	}
	sb.WriteString(contents)
	sb.WriteByte(']')
}

// quoteLiteral writes text so that every character matches itself, in or out of a class.
func quoteLiteral(sb *strings.Builder, text string) {
	for i := 0; i < len(text); i++ {
		c := text[i]
		if c < 0x80 && !isWordByte(c) {
			sb.WriteByte('\\')
		}
		sb.WriteByte(c)
	}
}

// setsMultiline reports whether the inline option group starting at flags turns m on.
func setsMultiline(flags string) bool {
	negated := false
	for i := 0; i < len(flags); i++ {
		switch c := flags[i]; {
		case c == ')' || c == ':':
			return false
		case c == '-':
			negated = true
		case c == 'm':
			if !negated {
				return true
			}
		case 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z':
		default:
			// lookaround, named group or other construct
			return false
		}
	}
	return false
}

func posixClass(name string, ucp bool) (string, error) {
	if !ucp {
		// RE2 mode parses POSIX classes itself
		return "[:" + name + ":]", nil
	}

	if negated, ok := strings.CutPrefix(name, "^"); ok {
		if repl, ok := ucpNegatedPosixClasses[negated]; ok {
			return repl, nil
		}
		return "", fmt.Errorf("POSIX class [:%s:] is not supported with (*UCP)", name)
	}

	if repl, ok := ucpPosixClasses[name]; ok {
		return repl, nil
	}
	return "", fmt.Errorf("POSIX class [:%s:] is not supported with (*UCP)", name)
}

func isWordByte(b byte) bool {
	return b == '_' || ('0' <= b && b <= '9') || ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z')
}
