package regex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslate(t *testing.T) {
	tests := []struct {
		name string
		body string
		ucp  bool
		want string
	}{
		{"plain", `a+b`, false, `a+b`},
		{"dollar", `abc$`, false, `abc(?=\n?\z)`},
		{"dollar_ucp", `abc$`, true, `abc$`},
		{"dollar_multiline", `(?m)abc$`, false, `(?m)abc$`},
		{"dollar_multiline_group", `(?im:x)$`, false, `(?im:x)$`},
		{"dollar_not_multiline", `(?i-m)abc$`, false, `(?i-m)abc(?=\n?\z)`},
		{"dollar_after_lookahead", `(?=a)$`, false, `(?=a)(?=\n?\z)`},
		{"escaped_dollar", `a\$`, false, `a\$`},
		{"dollar_in_class", `[$]`, false, `[$]`},
		{"bracket_first_in_class", `[]$]$`, false, `[]$](?=\n?\z)`},
		{"comment", `(?#m$)a$`, false, `(?#m$)a(?=\n?\z)`},
		{"quote", `\Qa.b*\E+`, false, `a\.b\*+`},
		{"quote_unterminated", `\Q(a`, false, `\(a`},
		{"stray_end_quote", `a\Eb`, false, `ab`},
		{"control_bracket", `\c[a$`, false, `\c[a(?=\n?\z)`},
		{"posix_re2", `[[:digit:]]`, false, `[[:digit:]]`},
		{"posix_ucp", `[[:digit:]x]`, true, `[\p{Nd}x]`},
		{"posix_ucp_negated", `[[:^space:]]`, true, `[\S]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := translate(tt.body, tt.ucp)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTranslate_Errors(t *testing.T) {
	tests := []struct {
		body string
		ucp  bool
	}{
		{`[\R]`, false},
		{`[a\H]`, false},
		{`[\V]`, true},
		{`[[:graph:]]`, true},
		{`[[:^punct:]]`, true},
		{`[[:bogus:]]`, true},
	}

	for _, tt := range tests {
		_, err := translate(tt.body, tt.ucp)
		assert.Error(t, err, tt.body)
	}
}
