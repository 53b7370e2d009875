package regex

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileDefinition(t *testing.T) {
	tests := []struct {
		name          string
		text          string
		caseSensitive bool
		input         string
		want          bool
	}{
		{"literal", "abc", true, "xabcx", true},
		{"case_sensitive_miss", "abc", true, "ABC", false},
		{"case_insensitive", "abc", false, "ABC", true},
		{"inline_insensitive_wins", "(?i)abc", true, "ABC", true},
		{"inline_sensitive_wins", "(?-i)abc", false, "ABC", false},
		{"posix_class", "^[[:digit:]]+$", true, "0123", true},
		{"posix_class_miss", "^[[:digit:]]+$", true, "01a3", false},
		{"ascii_word", `^\w+$`, true, "abc_1", true},
		{"ascii_digit_rejects_arabic_indic", `^\d+$`, true, "۱۲۳", false},
		{"ucp_digit_accepts_arabic_indic", `(*UCP)^\d+$`, true, "۱۲۳", true},
		{"unicode_property", `(*UTF8)^\p{L}+$`, true, "سلام", true},
		{"lookbehind", "(?<=a)b", true, "ab", true},
		{"negative_lookbehind", "(?<!a)b", true, "ab", false},
		{"backreference", `^(\w)\1$`, true, "aa", true},
		{"named_group", `^(?P<word>x+)$`, true, "xxx", true},
		{"dollar_before_final_newline", "abc$", true, "abc\n", true},
		{"dollar_not_before_inner_newline", "abc$", true, "abc\nx", false},
		{"end_z_before_final_newline", `abc\Z`, true, "abc\n", true},
		{"lower_end_z_is_strict", `abc\z`, true, "abc\n", false},
		{"multiline_dollar", "(?m)^abc$", true, "abc\nxyz", true},
		{"dollar_in_class", "^a[$]$", true, "a$", true},
		{"ucp_posix_digit", `(*UCP)^[[:digit:]]+$`, true, "123", true},
		{"ucp_posix_digit_arabic_indic", `(*UCP)^[[:digit:]]+$`, true, "۱۲۳", true},
		{"ucp_posix_alpha", `(*UCP)^[[:alpha:]]+$`, true, "héllo", true},
		{"ucp_posix_negated", `(*UCP)^[[:^digit:]]+$`, true, "abc", true},
		{"quoted_literal", `^\Qa.b\E$`, true, "a.b", true},
		{"quoted_literal_no_metachars", `^\Qa.b\E$`, true, "axb", false},
		{"quoted_literal_unterminated", `^\Q(*)`, true, "(*)", true},
		{"quoted_literal_in_class", `^[\Q]-\E]+$`, true, "]-]", true},
		{"horizontal_space", `^\h$`, true, " ", true},
		{"horizontal_space_tab", `^\h$`, true, "\t", true},
		{"horizontal_space_not_newline", `^\h$`, true, "\n", false},
		{"not_horizontal_space", `^\H+$`, true, "ab", true},
		{"horizontal_space_in_class", `^[\ha]+$`, true, "a a", true},
		{"vertical_space", `^a\vb$`, true, "a\rb", true},
		{"newline_sequence", `^a\Rb$`, true, "a\nb", true},
		{"newline_sequence_crlf", `^a\Rb$`, true, "a\r\nb", true},
		{"newline_sequence_space", `^a\Rb$`, true, "a b", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := CompileDefinition(1, tt.text, tt.caseSensitive, Options{})
			require.NoError(t, err)

			got, err := p.Match(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCompileDefinition_Errors(t *testing.T) {
	for _, text := range []string{
		"(abc", "abc)", "[a-", "a{2,1}", "(*CR)abc",
		`[\R]`, `[\H]`, `[\V]`, `(*UCP)[[:graph:]]`, `(*UCP)[[:^xdigit:]]`,
	} {
		_, err := CompileDefinition(1, text, true, Options{})
		assert.Error(t, err, text)
	}
}

func TestCompileDefinition_KeepsDefinition(t *testing.T) {
	p, err := CompileDefinition(42, "(*UTF8)abc", false, Options{MatchTimeout: time.Second})
	require.NoError(t, err)

	assert.Equal(t, int64(42), p.ID)
	assert.Equal(t, "(*UTF8)abc", p.Text)
	assert.False(t, p.CaseSensitive)
	assert.Equal(t, time.Second, p.Expression.MatchTimeout)
}

func TestMatchAnyAll(t *testing.T) {
	var patterns []*Pattern
	for _, text := range []string{"foo", "bar"} {
		p, err := Compile(text)
		require.NoError(t, err)
		patterns = append(patterns, p)
	}

	matched, err := MatchAny("foo baz", patterns)
	require.NoError(t, err)
	assert.True(t, matched)

	all, err := MatchAll("foo baz", patterns)
	require.NoError(t, err)
	assert.False(t, all)

	all, err = MatchAll("foo bar", patterns)
	require.NoError(t, err)
	assert.True(t, all)
}

func TestPattern_MatchTimeout(t *testing.T) {
	p, err := CompileDefinition(7, `(.+)*\?`, true, Options{MatchTimeout: 10 * time.Millisecond})
	require.NoError(t, err)

	_, err = p.Match(strings.Repeat("a", 64))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pattern 7")
}
