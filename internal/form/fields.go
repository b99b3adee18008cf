package form

// Wire names of the form fields. These are part of the contract with the
// processing endpoint and must not be renamed.
const (
	FieldEPUBFile           = "epub_file"
	FieldONIXFile           = "onix_file"
	FieldISBN               = "epub_isbn"
	FieldRole               = "role"
	FieldSenderName         = "sender_name"
	FieldContactName        = "contact_name"
	FieldEmail              = "email"
	FieldProductComposition = "product_composition"
	FieldProductForm        = "product_form"
	FieldLanguageCode       = "language_code"
	FieldPriceCAD           = "price_cad"
	FieldPriceGBP           = "price_gbp"
	FieldPriceUSD           = "price_usd"
)

// Role selects which field group the form submits.
type Role string

const (
	RoleBasic    Role = "basic"
	RoleEnhanced Role = "enhanced"
)

// ParseRole maps a raw selector value to a Role. Anything unknown is basic.
func ParseRole(raw string) Role {
	if Role(raw) == RoleEnhanced {
		return RoleEnhanced
	}
	return RoleBasic
}

// Kind describes how a field's value is held.
type Kind int

const (
	KindText Kind = iota
	KindFile
	KindChoice
	KindPrice
)

// Field describes one form field.
type Field struct {
	Name  string
	Label string
	Kind  Kind
	// Enhanced fields only exist while the role is enhanced.
	Enhanced bool
	// Markup marks fields that become required when their group is shown.
	Markup bool
}

// Fields lists every field in wire order.
var Fields = []Field{
	{Name: FieldEPUBFile, Label: "EPUB File", Kind: KindFile, Markup: true},
	{Name: FieldONIXFile, Label: "ONIX File", Kind: KindFile, Markup: true},
	{Name: FieldISBN, Label: "EPUB ISBN", Kind: KindText, Markup: true},
	{Name: FieldRole, Label: "Mode", Kind: KindChoice, Markup: true},
	{Name: FieldSenderName, Label: "Sender Name", Kind: KindText, Enhanced: true, Markup: true},
	{Name: FieldContactName, Label: "Contact Name", Kind: KindText, Enhanced: true, Markup: true},
	{Name: FieldEmail, Label: "Email", Kind: KindText, Enhanced: true, Markup: true},
	{Name: FieldProductComposition, Label: "Product Composition", Kind: KindChoice, Enhanced: true, Markup: true},
	{Name: FieldProductForm, Label: "Product Form", Kind: KindChoice, Enhanced: true, Markup: true},
	{Name: FieldLanguageCode, Label: "Language", Kind: KindChoice, Enhanced: true, Markup: true},
	{Name: FieldPriceCAD, Label: "Price (CAD)", Kind: KindPrice, Enhanced: true},
	{Name: FieldPriceGBP, Label: "Price (GBP)", Kind: KindPrice, Enhanced: true},
	{Name: FieldPriceUSD, Label: "Price (USD)", Kind: KindPrice, Enhanced: true},
}

// Lookup returns the field with the given wire name.
func Lookup(name string) (Field, bool) {
	for _, f := range Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// EnhancedFields returns the enhanced-only group in wire order.
func EnhancedFields() []Field {
	out := make([]Field, 0, 9)
	for _, f := range Fields {
		if f.Enhanced {
			out = append(out, f)
		}
	}
	return out
}

// Option is a selectable code for a choice field.
type Option struct {
	Code  string
	Label string
}

// ProductCompositions is ONIX code list 2 as accepted by the service.
var ProductCompositions = []Option{
	{Code: "00", Label: "Single-component retail product"},
	{Code: "01", Label: "Single-component, not available separately"},
	{Code: "02", Label: "Single-component, part of a multi-item product"},
	{Code: "03", Label: "Single-component, digital part of a bundle"},
	{Code: "10", Label: "Multiple-component retail product"},
	{Code: "11", Label: "Multiple-item collection, retailed as separate parts"},
	{Code: "20", Label: "Trade-only product"},
	{Code: "30", Label: "Multiple-item trade pack"},
}

// ProductForms lists the digital product forms (ONIX code list 150).
var ProductForms = []Option{
	{Code: "EA", Label: "Digital (delivered electronically)"},
	{Code: "EB", Label: "Digital download and online"},
	{Code: "EC", Label: "Digital online"},
	{Code: "ED", Label: "Digital download"},
}

// LanguageCodes lists ISO 639-2/B codes offered by the selector.
var LanguageCodes = []Option{
	{Code: "eng", Label: "English"},
	{Code: "fre", Label: "French"},
	{Code: "spa", Label: "Spanish"},
	{Code: "ger", Label: "German"},
	{Code: "ita", Label: "Italian"},
	{Code: "por", Label: "Portuguese"},
	{Code: "chi", Label: "Chinese"},
	{Code: "jpn", Label: "Japanese"},
}

// Roles lists the mode selector options.
var Roles = []Option{
	{Code: string(RoleBasic), Label: "Basic"},
	{Code: string(RoleEnhanced), Label: "Enhanced"},
}

// Options returns the selectable codes for a choice field.
func Options(name string) []Option {
	switch name {
	case FieldRole:
		return Roles
	case FieldProductComposition:
		return ProductCompositions
	case FieldProductForm:
		return ProductForms
	case FieldLanguageCode:
		return LanguageCodes
	}
	return nil
}

func hasCode(options []Option, code string) bool {
	for _, o := range options {
		if o.Code == code {
			return true
		}
	}
	return false
}
