package prefilter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequiredLiteral(t *testing.T) {
	tests := []struct {
		name          string
		text          string
		caseSensitive bool
		want          Literal
		wantOK        bool
	}{
		{"plain", "hello", true, Literal{"hello", true}, true},
		{"anchored", "^hello world$", true, Literal{"hello world", true}, true},
		{"insensitive_lower_cased", "HeLLo", false, Literal{"hello", false}, true},
		{"inline_insensitive", "(?i)Abc", true, Literal{"abc", false}, true},
		{"inline_sensitive", "^(?-i)Abc", false, Literal{"Abc", true}, true},
		{"optional_char_dropped", "colou?r", true, Literal{"colo", true}, true},
		{"plus_keeps_char", "ab+c", true, Literal{"ab", true}, true},
		{"star_drops_char", "abc*", true, Literal{"ab", true}, true},
		{"counted_repeat", "ab{2}c", true, Literal{"a", true}, false},
		{"escaped_punctuation", `foo\.bar`, true, Literal{"foo.bar", true}, true},
		{"escaped_paren", `\(ab`, true, Literal{"(ab", true}, true},
		{"class_escape_stops", `foo\d+`, true, Literal{"foo", true}, true},
		{"group_stops", "ab(c|d)", true, Literal{}, false},
		{"leading_group", "(abc)", true, Literal{}, false},
		{"alternation", "abc|def", true, Literal{}, false},
		{"dot_stops", "ab.c", true, Literal{"ab", true}, true},
		{"too_short", "x", true, Literal{}, false},
		{"empty", "", true, Literal{}, false},
		{"start_verbs_skipped", "(*UTF8)سلام", true, Literal{"سلام", true}, true},
		{"unsupported_verb", "(*UTF16)abc", true, Literal{}, false},
		{"lookahead", "(?=abc)abc", true, Literal{}, false},
		{"trailing_backslash", `ab\`, true, Literal{"ab", true}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := RequiredLiteral(tt.text, tt.caseSensitive)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
