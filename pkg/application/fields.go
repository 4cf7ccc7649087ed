package application

// Field names match the JSON keys of ApplicationForm.
const (
	FieldFirstName            = "firstName"
	FieldMiddleName           = "middleName"
	FieldLastName             = "lastName"
	FieldDateOfBirth          = "dateOfBirth"
	FieldPlaceOfBirth         = "placeOfBirth"
	FieldGender               = "gender"
	FieldMaritalStatus        = "maritalStatus"
	FieldSocialSecurityNumber = "socialSecurityNumber"

	FieldEmail   = "email"
	FieldPhone   = "phone"
	FieldAddress = "address"
	FieldCity    = "city"
	FieldState   = "state"
	FieldZipCode = "zipCode"
	FieldCountry = "country"

	FieldEmergencyContactName     = "emergencyContactName"
	FieldEmergencyContactRelation = "emergencyContactRelation"
	FieldEmergencyContactPhone    = "emergencyContactPhone"

	FieldHeight    = "height"
	FieldWeight    = "weight"
	FieldEyeColor  = "eyeColor"
	FieldHairColor = "hairColor"

	FieldDeliveryMethod   = "deliveryMethod"
	FieldExpeditedService = "expeditedService"
	FieldAgreeTerms       = "agreeTerms"
	FieldCertifyTruth     = "certifyTruth"
)

// Delivery method values.
const (
	DeliveryStandard  = "standard"
	DeliveryExpedited = "expedited"
	DeliveryOvernight = "overnight"
	DeliveryPickup    = "pickup"
)
