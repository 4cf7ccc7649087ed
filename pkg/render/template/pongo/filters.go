package pongo

import (
	"fmt"
	"strings"

	"github.com/flosch/pongo2/v6"
)

func registerDefaultFilters() {
	if !pongo2.FilterExists("trim") {
		_ = pongo2.RegisterFilter("trim", filterTrim)
	}
	if !pongo2.FilterExists("dollars") {
		_ = pongo2.RegisterFilter("dollars", filterDollars)
	}
	if !pongo2.FilterExists("yesno_label") {
		_ = pongo2.RegisterFilter("yesno_label", filterYesNoLabel)
	}
}

func filterTrim(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	if in.Len() <= 0 {
		return pongo2.AsValue(""), nil
	}
	return pongo2.AsValue(strings.TrimSpace(in.String())), nil
}

// filterDollars formats a dollar amount as "$25.00".
func filterDollars(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	if !in.IsNumber() {
		return pongo2.AsValue(in.String()), nil
	}
	amount := in.Float()
	if amount < 0 {
		return pongo2.AsValue(fmt.Sprintf("-$%.2f", -amount)), nil
	}
	return pongo2.AsValue(fmt.Sprintf("$%.2f", amount)), nil
}

func filterYesNoLabel(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	if in.IsTrue() {
		return pongo2.AsValue("Yes"), nil
	}
	return pongo2.AsValue("No"), nil
}
