package form

import (
	"regexp"
	"strings"
)

const isbnLength = 13

var (
	nonDigitPattern = regexp.MustCompile(`\D`)
	nonPricePattern = regexp.MustCompile(`[^\d.]`)
)

// FormatISBN keeps digits only, at most 13 of them. Length is not enforced
// here because the user may still be typing.
func FormatISBN(raw string) string {
	digits := nonDigitPattern.ReplaceAllString(raw, "")
	if len(digits) > isbnLength {
		digits = digits[:isbnLength]
	}
	return digits
}

// FormatPrice keeps digits and dots. Only the first dot separates the
// fraction: later segments are appended to it ("12.3.4.5" -> "12.345").
// A first fraction segment longer than two digits is cut to two
// ("12.999" -> "12.99").
func FormatPrice(raw string) string {
	cleaned := nonPricePattern.ReplaceAllString(raw, "")
	parts := strings.Split(cleaned, ".")
	if len(parts) > 2 {
		cleaned = parts[0] + "." + strings.Join(parts[1:], "")
	}
	if len(parts) > 1 && len(parts[1]) > 2 {
		cleaned = parts[0] + "." + parts[1][:2]
	}
	return cleaned
}

// Format applies the input formatter for a field, if it has one.
func Format(name, raw string) string {
	switch name {
	case FieldISBN:
		return FormatISBN(raw)
	case FieldPriceCAD, FieldPriceGBP, FieldPriceUSD:
		return FormatPrice(raw)
	}
	return raw
}

// EmailFeedbackText is shown under an invalid email value.
const EmailFeedbackText = "Please enter a valid email address"

// Feedback is the inline validity state of a field.
type Feedback struct {
	Invalid bool
	Message string
}

// CheckEmail recomputes the inline email feedback. Empty values carry no
// feedback. The result depends only on the value, so repeated input events
// converge on the same single feedback line.
func CheckEmail(value string) Feedback {
	if value == "" || IsValidEmail(value) {
		return Feedback{}
	}
	return Feedback{Invalid: true, Message: EmailFeedbackText}
}
