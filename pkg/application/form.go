package application

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrUnknownField is returned when a field name is not part of ApplicationForm.
	ErrUnknownField = errors.New("application: unknown field")
	// ErrFieldType is returned when a value cannot be stored in the named field.
	ErrFieldType = errors.New("application: invalid value type")
)

// DefaultCountry seeds the country field of a fresh form.
const DefaultCountry = "United States"

// ApplicationForm is the flat record collected by the national ID wizard. The
// grouping into identity, contact, emergency contact, physical description and
// delivery/consent is presentational only.
type ApplicationForm struct {
	FirstName            string `json:"firstName"`
	MiddleName           string `json:"middleName"`
	LastName             string `json:"lastName"`
	DateOfBirth          string `json:"dateOfBirth"`
	PlaceOfBirth         string `json:"placeOfBirth"`
	Gender               string `json:"gender"`
	MaritalStatus        string `json:"maritalStatus"`
	SocialSecurityNumber string `json:"socialSecurityNumber"`

	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
	Country string `json:"country"`

	EmergencyContactName     string `json:"emergencyContactName"`
	EmergencyContactRelation string `json:"emergencyContactRelation"`
	EmergencyContactPhone    string `json:"emergencyContactPhone"`

	Height    string `json:"height"`
	Weight    string `json:"weight"`
	EyeColor  string `json:"eyeColor"`
	HairColor string `json:"hairColor"`

	DeliveryMethod   string `json:"deliveryMethod"`
	ExpeditedService bool   `json:"expeditedService"`

	AgreeTerms   bool `json:"agreeTerms"`
	CertifyTruth bool `json:"certifyTruth"`
}

// New returns an empty form with the defaults the portal pre-fills.
func New() ApplicationForm {
	return ApplicationForm{Country: DefaultCountry}
}

type accessor struct {
	text func(*ApplicationForm) *string
	flag func(*ApplicationForm) *bool
}

var accessors = map[string]accessor{
	FieldFirstName:            text(func(f *ApplicationForm) *string { return &f.FirstName }),
	FieldMiddleName:           text(func(f *ApplicationForm) *string { return &f.MiddleName }),
	FieldLastName:             text(func(f *ApplicationForm) *string { return &f.LastName }),
	FieldDateOfBirth:          text(func(f *ApplicationForm) *string { return &f.DateOfBirth }),
	FieldPlaceOfBirth:         text(func(f *ApplicationForm) *string { return &f.PlaceOfBirth }),
	FieldGender:               text(func(f *ApplicationForm) *string { return &f.Gender }),
	FieldMaritalStatus:        text(func(f *ApplicationForm) *string { return &f.MaritalStatus }),
	FieldSocialSecurityNumber: text(func(f *ApplicationForm) *string { return &f.SocialSecurityNumber }),

	FieldEmail:   text(func(f *ApplicationForm) *string { return &f.Email }),
	FieldPhone:   text(func(f *ApplicationForm) *string { return &f.Phone }),
	FieldAddress: text(func(f *ApplicationForm) *string { return &f.Address }),
	FieldCity:    text(func(f *ApplicationForm) *string { return &f.City }),
	FieldState:   text(func(f *ApplicationForm) *string { return &f.State }),
	FieldZipCode: text(func(f *ApplicationForm) *string { return &f.ZipCode }),
	FieldCountry: text(func(f *ApplicationForm) *string { return &f.Country }),

	FieldEmergencyContactName:     text(func(f *ApplicationForm) *string { return &f.EmergencyContactName }),
	FieldEmergencyContactRelation: text(func(f *ApplicationForm) *string { return &f.EmergencyContactRelation }),
	FieldEmergencyContactPhone:    text(func(f *ApplicationForm) *string { return &f.EmergencyContactPhone }),

	FieldHeight:    text(func(f *ApplicationForm) *string { return &f.Height }),
	FieldWeight:    text(func(f *ApplicationForm) *string { return &f.Weight }),
	FieldEyeColor:  text(func(f *ApplicationForm) *string { return &f.EyeColor }),
	FieldHairColor: text(func(f *ApplicationForm) *string { return &f.HairColor }),

	FieldDeliveryMethod:   text(func(f *ApplicationForm) *string { return &f.DeliveryMethod }),
	FieldExpeditedService: flag(func(f *ApplicationForm) *bool { return &f.ExpeditedService }),
	FieldAgreeTerms:       flag(func(f *ApplicationForm) *bool { return &f.AgreeTerms }),
	FieldCertifyTruth:     flag(func(f *ApplicationForm) *bool { return &f.CertifyTruth }),
}

func text(fn func(*ApplicationForm) *string) accessor { return accessor{text: fn} }
func flag(fn func(*ApplicationForm) *bool) accessor   { return accessor{flag: fn} }

// Has reports whether name is a field of ApplicationForm.
func Has(name string) bool {
	_, ok := accessors[name]
	return ok
}

// IsBool reports whether name refers to a boolean field.
func IsBool(name string) bool {
	acc, ok := accessors[name]
	return ok && acc.flag != nil
}

// Set writes value into the named field. String fields accept strings; boolean
// fields accept bools or strings understood by strconv.ParseBool.
func (f *ApplicationForm) Set(name string, value any) error {
	if f == nil {
		return errors.New("application: form is nil")
	}
	acc, ok := accessors[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}

	if acc.flag != nil {
		switch typed := value.(type) {
		case bool:
			*acc.flag(f) = typed
		case string:
			parsed, err := strconv.ParseBool(strings.TrimSpace(typed))
			if err != nil {
				return fmt.Errorf("%w: %s expects a boolean, got %q", ErrFieldType, name, typed)
			}
			*acc.flag(f) = parsed
		default:
			return fmt.Errorf("%w: %s expects a boolean, got %T", ErrFieldType, name, value)
		}
		return nil
	}

	switch typed := value.(type) {
	case string:
		*acc.text(f) = typed
	case nil:
		*acc.text(f) = ""
	default:
		return fmt.Errorf("%w: %s expects a string, got %T", ErrFieldType, name, value)
	}
	return nil
}

// Get reads the named field. The boolean result is false for unknown names.
func (f ApplicationForm) Get(name string) (any, bool) {
	acc, ok := accessors[name]
	if !ok {
		return nil, false
	}
	if acc.flag != nil {
		return *acc.flag(&f), true
	}
	return *acc.text(&f), true
}

// Text returns the string value of a field, or "" for boolean and unknown names.
func (f ApplicationForm) Text(name string) string {
	acc, ok := accessors[name]
	if !ok || acc.text == nil {
		return ""
	}
	return *acc.text(&f)
}

// Flag returns the boolean value of a field, or false for string and unknown names.
func (f ApplicationForm) Flag(name string) bool {
	acc, ok := accessors[name]
	if !ok || acc.flag == nil {
		return false
	}
	return *acc.flag(&f)
}

// Values returns every field keyed by name.
func (f ApplicationForm) Values() map[string]any {
	out := make(map[string]any, len(accessors))
	for name := range accessors {
		value, _ := f.Get(name)
		out[name] = value
	}
	return out
}

// FullName joins the first, middle and last names, skipping empty parts.
func (f ApplicationForm) FullName() string {
	parts := make([]string, 0, 3)
	for _, part := range []string{f.FirstName, f.MiddleName, f.LastName} {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return strings.Join(parts, " ")
}
