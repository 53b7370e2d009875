package stringutils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLeftJust(t *testing.T) {
	assert.Equal(t, "CONFIG    ", LeftJust("CONFIG", " ", 10))
	assert.Equal(t, "CONFIGURATION", LeftJust("CONFIGURATION", " ", 10))
	assert.Equal(t, "ab..", LeftJust("ab", ".", 4))
	assert.Equal(t, "ab", LeftJust("ab", "", 4))
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		length int
		want   string
	}{
		{"shorter", "abc", 5, "abc"},
		{"exact", "abcde", 5, "abcde"},
		{"cut", "abcdefgh", 6, "abc..."},
		{"tiny", "abcdefgh", 2, "ab"},
		{"unicode", "ééééééé", 5, "éé..."},
		{"disabled", "abcdef", 0, "abcdef"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Truncate(tt.text, tt.length))
		})
	}
}
