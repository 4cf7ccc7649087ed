package wizard

import (
	"github.com/goliatone/go-formwizard/pkg/application"
)

// TotalSteps is the number of wizard steps.
const TotalSteps = 5

// Step describes one page of the wizard.
type Step struct {
	Number   int      `json:"number"`
	Title    string   `json:"title"`
	Required []string `json:"required"`
}

type rule struct {
	field   string
	message string
}

var stepTitles = [TotalSteps + 1]string{
	1: "Personal Info",
	2: "Contact Info",
	3: "Emergency Contact",
	4: "Physical Info",
	5: "Review & Submit",
}

var stepRules = [TotalSteps + 1][]rule{
	1: {
		{application.FieldFirstName, "First name is required"},
		{application.FieldLastName, "Last name is required"},
		{application.FieldDateOfBirth, "Date of birth is required"},
		{application.FieldGender, "Gender selection is required"},
		{application.FieldSocialSecurityNumber, "SSN is required"},
	},
	2: {
		{application.FieldEmail, "Email is required"},
		{application.FieldPhone, "Phone number is required"},
		{application.FieldAddress, "Address is required"},
		{application.FieldCity, "City is required"},
		{application.FieldState, "State is required"},
		{application.FieldZipCode, "ZIP code is required"},
	},
	3: {
		{application.FieldEmergencyContactName, "Emergency contact name is required"},
		{application.FieldEmergencyContactPhone, "Emergency contact phone is required"},
	},
	4: {
		{application.FieldHeight, "Height is required"},
		{application.FieldWeight, "Weight is required"},
		{application.FieldEyeColor, "Eye color is required"},
		{application.FieldHairColor, "Hair color is required"},
	},
	5: {
		{application.FieldDeliveryMethod, "Delivery method is required"},
		{application.FieldAgreeTerms, "You must agree to the terms"},
		{application.FieldCertifyTruth, "You must certify the information is true"},
	},
}

// StepTitle returns the title of step, or "" outside [1, TotalSteps].
func StepTitle(step int) string {
	if step < 1 || step > TotalSteps {
		return ""
	}
	return stepTitles[step]
}

// Steps lists every step with its required fields, in order.
func Steps() []Step {
	out := make([]Step, 0, TotalSteps)
	for n := 1; n <= TotalSteps; n++ {
		required := make([]string, 0, len(stepRules[n]))
		for _, r := range stepRules[n] {
			required = append(required, r.field)
		}
		out = append(out, Step{Number: n, Title: stepTitles[n], Required: required})
	}
	return out
}

// Check runs the rule set of step against form. A string field passes when
// non-empty, a boolean field when true. Steps outside [1, TotalSteps] have no
// rules. The result is never nil.
func Check(form application.ApplicationForm, step int) ValidationErrors {
	errs := make(ValidationErrors)
	if step < 1 || step > TotalSteps {
		return errs
	}
	for _, r := range stepRules[step] {
		if missing(form, r.field) {
			errs[r.field] = r.message
		}
	}
	return errs
}

func missing(form application.ApplicationForm, field string) bool {
	if application.IsBool(field) {
		return !form.Flag(field)
	}
	return form.Text(field) == ""
}
