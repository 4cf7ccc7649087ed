// Package application defines the flat ApplicationForm record collected by the
// national ID wizard together with the field catalog (labels, input kinds,
// option lists and step placement) that front ends use to present it.
//
// Fields are addressed by their JSON names so transports can write values
// without reflecting over the struct:
//
//	form := application.New()
//	_ = form.Set(application.FieldFirstName, "Ada")
//	_ = form.Set(application.FieldAgreeTerms, true)
package application
