package form

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	isbnPattern     = regexp.MustCompile(`^\d{13}$`)
	emailPattern    = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	namePattern     = regexp.MustCompile(`^[a-zA-Z0-9\s\-'.]+$`)
	pricePattern    = regexp.MustCompile(`^\d*(\.\d{1,2})?$`)
	languagePattern = regexp.MustCompile(`^[a-z]{3}$`)
)

// Validation messages.
const (
	MsgInvalidISBN        = "ISBN must be 13 digits"
	MsgFilesRequired      = "Both EPUB and ONIX files are required"
	MsgInvalidEPUBFile    = "Invalid EPUB file format"
	MsgInvalidONIXFile    = "Invalid ONIX file format"
	MsgInvalidSenderName  = "Invalid Sender Name format"
	MsgInvalidContactName = "Invalid Contact Name format"
	MsgInvalidEmail       = "Invalid Email format"
	MsgInvalidComposition = "Invalid Product Composition code"
	MsgInvalidProductForm = "Invalid Product Form code"
	MsgInvalidLanguage    = "Invalid Language Code format"
)

// Result is the outcome of a validation pass: valid, or invalid with
// exactly one message.
type Result struct {
	Message string
}

// Valid is the passing result.
func Valid() Result { return Result{} }

// Invalid is a failing result carrying msg.
func Invalid(msg string) Result { return Result{Message: msg} }

// OK reports whether the pass succeeded.
func (r Result) OK() bool { return r.Message == "" }

// IsValidISBN reports whether s is exactly 13 decimal digits.
func IsValidISBN(s string) bool {
	return isbnPattern.MatchString(s)
}

// IsValidEmail checks the local-part@domain.tld shape.
func IsValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// IsValidName accepts ASCII letters, digits, whitespace, hyphens,
// apostrophes and periods. Empty names are rejected.
func IsValidName(s string) bool {
	return namePattern.MatchString(s)
}

// IsValidPrice accepts an empty value or an optional integer part with an
// optional one or two digit fraction.
func IsValidPrice(s string) bool {
	return pricePattern.MatchString(s)
}

// IsValidLanguageCode checks the three lowercase letter shape.
func IsValidLanguageCode(s string) bool {
	return languagePattern.MatchString(s)
}

// CheckFiles requires both files and the .epub / .xml name suffixes.
// Suffixes are compared as supplied, without case folding.
func CheckFiles(epub, onix FileRef) Result {
	if !epub.Present() || !onix.Present() {
		return Invalid(MsgFilesRequired)
	}
	if !strings.HasSuffix(epub.Name(), ".epub") {
		return Invalid(MsgInvalidEPUBFile)
	}
	if !strings.HasSuffix(onix.Name(), ".xml") {
		return Invalid(MsgInvalidONIXFile)
	}
	return Valid()
}

// FilesPresentAndTyped is the predicate form of CheckFiles.
func FilesPresentAndTyped(epub, onix FileRef) bool {
	return CheckFiles(epub, onix).OK()
}

// PriceFields lists the currency fields in checking order.
var PriceFields = []struct {
	Name     string
	Currency string
}{
	{Name: FieldPriceCAD, Currency: "CAD"},
	{Name: FieldPriceGBP, Currency: "GBP"},
	{Name: FieldPriceUSD, Currency: "USD"},
}

// Validate runs the full pipeline and returns the first failure.
func Validate(s *State) Result {
	if !IsValidISBN(s.Get(FieldISBN)) {
		return Invalid(MsgInvalidISBN)
	}
	if r := CheckFiles(s.EPUB(), s.ONIX()); !r.OK() {
		return r
	}
	if s.Role() != RoleEnhanced {
		return Valid()
	}
	return validateEnhanced(s)
}

func validateEnhanced(s *State) Result {
	if !IsValidName(s.Get(FieldSenderName)) {
		return Invalid(MsgInvalidSenderName)
	}
	if !IsValidName(s.Get(FieldContactName)) {
		return Invalid(MsgInvalidContactName)
	}
	if !IsValidEmail(s.Get(FieldEmail)) {
		return Invalid(MsgInvalidEmail)
	}
	for _, p := range PriceFields {
		if !IsValidPrice(s.Get(p.Name)) {
			return Invalid(fmt.Sprintf("Invalid %s Price format", p.Currency))
		}
	}
	if !hasCode(ProductCompositions, s.Get(FieldProductComposition)) {
		return Invalid(MsgInvalidComposition)
	}
	if !hasCode(ProductForms, s.Get(FieldProductForm)) {
		return Invalid(MsgInvalidProductForm)
	}
	if !IsValidLanguageCode(s.Get(FieldLanguageCode)) {
		return Invalid(MsgInvalidLanguage)
	}
	return Valid()
}
