package stringutils

import (
	"strings"
)

// LeftJust pads text on the right with filler until it is at least length runes long.
func LeftJust(text string, filler string, length int) string {
	textLen := len([]rune(text))
	if textLen >= length || filler == "" {
		return text
	}

	return text + strings.Repeat(filler, length-textLen)
}

// Truncate shortens text to at most length runes, appending an ellipsis when cut.
func Truncate(text string, length int) string {
	runes := []rune(text)
	if length <= 0 || len(runes) <= length {
		return text
	}
	if length <= 3 {
		return string(runes[:length])
	}

	return string(runes[:length-3]) + "..."
}
