// Package wizard implements the five-step application wizard: a step cursor
// gated on per-step required-field rules, per-field error clearing, a derived
// fee total and a single-flight submission through a submission.Submitter.
//
// Typical flow:
//
//	ctrl := wizard.New(wizard.WithSubmitter(submitter))
//	_ = ctrl.SetField(application.FieldFirstName, "Ada")
//	if err := ctrl.Advance(); err != nil {
//		var verr *wizard.ValidationError
//		if errors.As(err, &verr) {
//			// show verr.Fields next to the inputs
//		}
//	}
//	receipt, err := ctrl.Submit(ctx) // on step 5
package wizard
