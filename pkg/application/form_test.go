package application_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formwizard/pkg/application"
)

func TestSet_WritesStringAndBoolFields(t *testing.T) {
	form := application.New()

	if err := form.Set(application.FieldFirstName, "Ada"); err != nil {
		t.Fatalf("set first name: %v", err)
	}
	if err := form.Set(application.FieldAgreeTerms, true); err != nil {
		t.Fatalf("set agree terms: %v", err)
	}
	if err := form.Set(application.FieldExpeditedService, "true"); err != nil {
		t.Fatalf("set expedited from string: %v", err)
	}

	if form.FirstName != "Ada" {
		t.Fatalf("expected first name Ada, got %q", form.FirstName)
	}
	if !form.AgreeTerms || !form.ExpeditedService {
		t.Fatalf("expected boolean fields to be set: %+v", form)
	}
	if form.Country != application.DefaultCountry {
		t.Fatalf("expected default country, got %q", form.Country)
	}
}

func TestSet_RejectsUnknownFieldsAndTypes(t *testing.T) {
	form := application.New()

	if err := form.Set("favouriteColor", "blue"); !errors.Is(err, application.ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
	if err := form.Set(application.FieldEmail, 42); !errors.Is(err, application.ErrFieldType) {
		t.Fatalf("expected ErrFieldType for string field, got %v", err)
	}
	if err := form.Set(application.FieldCertifyTruth, "maybe"); !errors.Is(err, application.ErrFieldType) {
		t.Fatalf("expected ErrFieldType for bool field, got %v", err)
	}
}

func TestGetAndValues(t *testing.T) {
	form := application.New()
	_ = form.Set(application.FieldCity, "Springfield")

	value, ok := form.Get(application.FieldCity)
	if !ok || value != "Springfield" {
		t.Fatalf("unexpected city lookup: %v %v", value, ok)
	}
	if _, ok := form.Get("nope"); ok {
		t.Fatalf("expected unknown field lookup to fail")
	}

	values := form.Values()
	if values[application.FieldAgreeTerms] != false {
		t.Fatalf("expected agreeTerms false, got %v", values[application.FieldAgreeTerms])
	}
	if len(values) != 26 {
		t.Fatalf("expected 26 fields, got %d", len(values))
	}
}

func TestFullNameSkipsEmptyParts(t *testing.T) {
	form := application.ApplicationForm{FirstName: "John", LastName: "Doe"}
	if got := form.FullName(); got != "John Doe" {
		t.Fatalf("expected %q, got %q", "John Doe", got)
	}
}

func TestStateOptionsReplaceFirstSpace(t *testing.T) {
	options := application.StateOptions()
	if len(options) != 50 {
		t.Fatalf("expected 50 states, got %d", len(options))
	}

	byLabel := make(map[string]string, len(options))
	for _, opt := range options {
		byLabel[opt.Label] = opt.Value
	}
	want := map[string]string{
		"New York":      "new-york",
		"West Virginia": "west-virginia",
		"Texas":         "texas",
	}
	for label, value := range want {
		if diff := cmp.Diff(value, byLabel[label]); diff != "" {
			t.Fatalf("state %s value mismatch (-want +got):\n%s", label, diff)
		}
	}
}

func TestCatalogCoversFormFields(t *testing.T) {
	for _, field := range application.Catalog() {
		if !application.Has(field.Name) {
			t.Fatalf("catalog field %q is not part of ApplicationForm", field.Name)
		}
		if field.Step < 1 || field.Step > 5 {
			t.Fatalf("catalog field %q has step %d", field.Name, field.Step)
		}
		if (field.Kind == application.KindCheckbox) != application.IsBool(field.Name) {
			t.Fatalf("catalog kind for %q disagrees with form type", field.Name)
		}
	}

	delivery, ok := application.Lookup(application.FieldDeliveryMethod)
	if !ok {
		t.Fatalf("delivery method missing from catalog")
	}
	if got := delivery.OptionLabel(application.DeliveryOvernight); got != "Overnight Delivery (+$35)" {
		t.Fatalf("unexpected overnight label %q", got)
	}
	if got := len(application.FieldsForStep(3)); got != 3 {
		t.Fatalf("expected 3 emergency contact fields, got %d", got)
	}
}
