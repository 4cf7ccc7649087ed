// Package fees derives the application fee from the selected processing and
// delivery options. Everything here is pure: totals are recomputed on every
// call and never stored.
package fees

import (
	"fmt"
	"strconv"
)

// Amount is a fee in cents.
type Amount int64

const (
	// Base is charged on every application.
	Base Amount = 2500
	// ExpeditedProcessing is added when expedited service is selected.
	ExpeditedProcessing Amount = 5000
	// ExpeditedDelivery is added for the "expedited" delivery method.
	ExpeditedDelivery Amount = 1500
	// OvernightDelivery is added for the "overnight" delivery method.
	OvernightDelivery Amount = 3500
)

// Dollars converts the amount to a float for display or JSON.
func (a Amount) Dollars() float64 {
	return float64(a) / 100
}

// String formats the amount as "$25.00".
func (a Amount) String() string {
	sign := ""
	if a < 0 {
		sign = "-"
		a = -a
	}
	return fmt.Sprintf("%s$%d.%02d", sign, a/100, a%100)
}

// MarshalJSON encodes the amount in dollars, e.g. 25.5.
func (a Amount) MarshalJSON() ([]byte, error) {
	return strconv.AppendFloat(nil, a.Dollars(), 'f', -1, 64), nil
}

// LineItem is one row of the fee summary.
type LineItem struct {
	Label  string `json:"label"`
	Amount Amount `json:"amount"`
}

// Total returns base + processing + delivery surcharges. The delivery
// surcharges are mutually exclusive; expedited processing stacks with either.
func Total(expedited bool, deliveryMethod string) Amount {
	var total Amount
	for _, item := range Breakdown(expedited, deliveryMethod) {
		total += item.Amount
	}
	return total
}

// Breakdown lists the charges that make up Total, base fee first.
func Breakdown(expedited bool, deliveryMethod string) []LineItem {
	items := []LineItem{{Label: "Base Application Fee", Amount: Base}}
	if expedited {
		items = append(items, LineItem{Label: "Expedited Processing", Amount: ExpeditedProcessing})
	}
	switch deliveryMethod {
	case "expedited":
		items = append(items, LineItem{Label: "Expedited Delivery", Amount: ExpeditedDelivery})
	case "overnight":
		items = append(items, LineItem{Label: "Overnight Delivery", Amount: OvernightDelivery})
	}
	return items
}
