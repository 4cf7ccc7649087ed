package application

import "strings"

// Kind describes how a field is presented and which Go type backs it.
type Kind string

const (
	KindText     Kind = "text"
	KindDate     Kind = "date"
	KindEmail    Kind = "email"
	KindPhone    Kind = "tel"
	KindSelect   Kind = "select"
	KindCheckbox Kind = "checkbox"
)

// Option is a selectable value for KindSelect fields.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Field describes one input of the application wizard. The catalog is
// presentation metadata: required-ness is enforced by the wizard rule sets,
// option lists are not.
type Field struct {
	Name        string   `json:"name"`
	Label       string   `json:"label"`
	Kind        Kind     `json:"kind"`
	Step        int      `json:"step"`
	Required    bool     `json:"required"`
	Placeholder string   `json:"placeholder,omitempty"`
	Help        string   `json:"help,omitempty"`
	MaxLength   int      `json:"maxLength,omitempty"`
	Options     []Option `json:"options,omitempty"`
}

// OptionLabel resolves the display label for value, falling back to value.
func (f Field) OptionLabel(value string) string {
	for _, opt := range f.Options {
		if opt.Value == value {
			return opt.Label
		}
	}
	return value
}

var (
	genderOptions = []Option{
		{Value: "male", Label: "Male"},
		{Value: "female", Label: "Female"},
		{Value: "other", Label: "Other"},
		{Value: "prefer-not-to-say", Label: "Prefer not to say"},
	}
	maritalStatusOptions = []Option{
		{Value: "single", Label: "Single"},
		{Value: "married", Label: "Married"},
		{Value: "divorced", Label: "Divorced"},
		{Value: "widowed", Label: "Widowed"},
	}
	eyeColorOptions = []Option{
		{Value: "brown", Label: "Brown"},
		{Value: "blue", Label: "Blue"},
		{Value: "green", Label: "Green"},
		{Value: "hazel", Label: "Hazel"},
		{Value: "gray", Label: "Gray"},
		{Value: "amber", Label: "Amber"},
	}
	hairColorOptions = []Option{
		{Value: "black", Label: "Black"},
		{Value: "brown", Label: "Brown"},
		{Value: "blonde", Label: "Blonde"},
		{Value: "red", Label: "Red"},
		{Value: "gray", Label: "Gray"},
		{Value: "white", Label: "White"},
		{Value: "bald", Label: "Bald"},
	}
	deliveryOptions = []Option{
		{Value: DeliveryStandard, Label: "Standard Mail (Free)"},
		{Value: DeliveryExpedited, Label: "Expedited Mail (+$15)"},
		{Value: DeliveryOvernight, Label: "Overnight Delivery (+$35)"},
		{Value: DeliveryPickup, Label: "In-Person Pickup"},
	}
)

var stateNames = []string{
	"Alabama", "Alaska", "Arizona", "Arkansas", "California", "Colorado", "Connecticut",
	"Delaware", "Florida", "Georgia", "Hawaii", "Idaho", "Illinois", "Indiana", "Iowa",
	"Kansas", "Kentucky", "Louisiana", "Maine", "Maryland", "Massachusetts", "Michigan",
	"Minnesota", "Mississippi", "Missouri", "Montana", "Nebraska", "Nevada", "New Hampshire",
	"New Jersey", "New Mexico", "New York", "North Carolina", "North Dakota", "Ohio",
	"Oklahoma", "Oregon", "Pennsylvania", "Rhode Island", "South Carolina", "South Dakota",
	"Tennessee", "Texas", "Utah", "Vermont", "Virginia", "Washington", "West Virginia",
	"Wisconsin", "Wyoming",
}

// StateOptions lists the US states; values are lower-cased with the first
// space replaced by a dash ("New York" -> "new-york").
func StateOptions() []Option {
	out := make([]Option, 0, len(stateNames))
	for _, name := range stateNames {
		out = append(out, Option{
			Value: strings.Replace(strings.ToLower(name), " ", "-", 1),
			Label: name,
		})
	}
	return out
}

var catalog = []Field{
	{Name: FieldFirstName, Label: "First Name", Kind: KindText, Step: 1, Required: true, Placeholder: "Enter your first name"},
	{Name: FieldMiddleName, Label: "Middle Name", Kind: KindText, Step: 1, Placeholder: "Enter your middle name"},
	{Name: FieldLastName, Label: "Last Name", Kind: KindText, Step: 1, Required: true, Placeholder: "Enter your last name"},
	{Name: FieldDateOfBirth, Label: "Date of Birth", Kind: KindDate, Step: 1, Required: true, Placeholder: "YYYY-MM-DD"},
	{Name: FieldPlaceOfBirth, Label: "Place of Birth", Kind: KindText, Step: 1, Placeholder: "City, State, Country"},
	{Name: FieldGender, Label: "Gender", Kind: KindSelect, Step: 1, Required: true, Options: genderOptions},
	{Name: FieldMaritalStatus, Label: "Marital Status", Kind: KindSelect, Step: 1, Options: maritalStatusOptions},
	{Name: FieldSocialSecurityNumber, Label: "Social Security Number", Kind: KindText, Step: 1, Required: true, Placeholder: "XXX-XX-XXXX", MaxLength: 11},

	{Name: FieldEmail, Label: "Email Address", Kind: KindEmail, Step: 2, Required: true, Placeholder: "your.email@example.com"},
	{Name: FieldPhone, Label: "Phone Number", Kind: KindPhone, Step: 2, Required: true, Placeholder: "(123) 456-7890"},
	{Name: FieldAddress, Label: "Street Address", Kind: KindText, Step: 2, Required: true, Placeholder: "123 Main Street"},
	{Name: FieldCity, Label: "City", Kind: KindText, Step: 2, Required: true, Placeholder: "City"},
	{Name: FieldState, Label: "State", Kind: KindSelect, Step: 2, Required: true, Options: StateOptions()},
	{Name: FieldZipCode, Label: "ZIP Code", Kind: KindText, Step: 2, Required: true, Placeholder: "12345", MaxLength: 5},

	{Name: FieldEmergencyContactName, Label: "Full Name", Kind: KindText, Step: 3, Required: true, Placeholder: "Emergency contact name"},
	{Name: FieldEmergencyContactRelation, Label: "Relationship", Kind: KindText, Step: 3, Placeholder: "e.g., Spouse, Parent, Sibling"},
	{Name: FieldEmergencyContactPhone, Label: "Phone Number", Kind: KindPhone, Step: 3, Required: true, Placeholder: "(123) 456-7890"},

	{Name: FieldHeight, Label: "Height", Kind: KindText, Step: 4, Required: true, Placeholder: `e.g., 5'8" or 173 cm`},
	{Name: FieldWeight, Label: "Weight", Kind: KindText, Step: 4, Required: true, Placeholder: "e.g., 150 lbs or 68 kg"},
	{Name: FieldEyeColor, Label: "Eye Color", Kind: KindSelect, Step: 4, Required: true, Options: eyeColorOptions},
	{Name: FieldHairColor, Label: "Hair Color", Kind: KindSelect, Step: 4, Required: true, Options: hairColorOptions},

	{Name: FieldDeliveryMethod, Label: "Delivery Method", Kind: KindSelect, Step: 5, Required: true, Options: deliveryOptions},
	{
		Name:  FieldExpeditedService,
		Label: "Expedited Processing (+$50)",
		Kind:  KindCheckbox,
		Step:  5,
		Help:  "Receive your ID in 2-3 business days instead of 5-7 days",
	},
	{Name: FieldAgreeTerms, Label: "I agree to the Terms of Service and Privacy Policy", Kind: KindCheckbox, Step: 5, Required: true},
	{
		Name:     FieldCertifyTruth,
		Label:    "I certify that all information provided is true and accurate to the best of my knowledge",
		Kind:     KindCheckbox,
		Step:     5,
		Required: true,
	},
}

// Catalog returns a copy of every wizard field in presentation order. The
// country field is pre-filled and never prompted, so it is not listed.
func Catalog() []Field {
	out := make([]Field, len(catalog))
	for i, field := range catalog {
		field.Options = append([]Option(nil), field.Options...)
		out[i] = field
	}
	return out
}

// FieldsForStep returns the catalog entries shown on step.
func FieldsForStep(step int) []Field {
	var out []Field
	for _, field := range Catalog() {
		if field.Step == step {
			out = append(out, field)
		}
	}
	return out
}

// Lookup returns the catalog entry for name.
func Lookup(name string) (Field, bool) {
	for _, field := range Catalog() {
		if field.Name == name {
			return field, true
		}
	}
	return Field{}, false
}
