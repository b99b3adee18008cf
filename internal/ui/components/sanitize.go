package components

import (
	"regexp"
	"strings"
	"unicode"
)

// CSI sequences and OSC sequences terminated by BEL or ST.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;?]*[A-Za-z]|\x1b\][^\x07\x1b]*(\x07|\x1b\\)`)

// SanitizeText strips escape sequences, bidi controls and other control
// characters from display strings, keeping newlines and tabs.
func SanitizeText(input string) string {
	if input == "" {
		return input
	}
	return strings.Map(keepPrintable, ansiPattern.ReplaceAllString(input, ""))
}

func keepPrintable(r rune) rune {
	switch {
	case r == '\n', r == '\t':
		return r
	case unicode.Is(unicode.Bidi_Control, r), unicode.IsControl(r):
		return -1
	}
	return r
}

// SanitizeOneLine is SanitizeText with line breaks and tabs folded into
// single spaces.
func SanitizeOneLine(input string) string {
	return strings.Join(strings.Fields(SanitizeText(input)), " ")
}
