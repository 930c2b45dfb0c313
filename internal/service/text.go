package service

import (
	"strings"
	"unicode/utf8"
)

// cleanText trims surrounding whitespace. Everything else is stored as typed;
// clients escape on output.
func cleanText(s string) string {
	return strings.TrimSpace(s)
}

func tooShort(s string, min int) bool {
	return utf8.RuneCountInString(s) < min
}
