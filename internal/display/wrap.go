package display

import (
	"unicode/utf8"

	"github.com/muesli/reflow/wordwrap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const DefaultWidth = 80

// Wrap word-wraps text to DefaultWidth, preserving ANSI escape sequences.
func Wrap(text string) string {
	return wordwrap.String(text, DefaultWidth)
}

// Title returns s with each word capitalized ("cave goblin" -> "Cave Goblin").
// Casers are stateful, so each call builds its own.
func Title(s string) string {
	return cases.Title(language.English).String(s)
}

// Capitalize returns s with its first character uppercased.
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return cases.Upper(language.English).String(string(r)) + s[size:]
}
