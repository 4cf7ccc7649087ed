package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formwizard/pkg/application"
	"github.com/goliatone/go-formwizard/pkg/fees"
)

type feeQuote struct {
	Items []fees.LineItem `json:"items"`
	Total fees.Amount     `json:"total"`
}

func newFeeCmd(_ *cli) *cobra.Command {
	var (
		expedited bool
		delivery  string
		asJSON    bool
	)
	cmd := &cobra.Command{
		Use:   "fee",
		Short: "Show the fee for a processing and delivery choice",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			quote := feeQuote{
				Items: fees.Breakdown(expedited, delivery),
				Total: fees.Total(expedited, delivery),
			}
			out := cmd.OutOrStdout()
			if asJSON {
				return json.NewEncoder(out).Encode(quote)
			}
			for _, item := range quote.Items {
				fmt.Fprintf(out, "%-24s %10s\n", item.Label, item.Amount)
			}
			_, err := fmt.Fprintf(out, "%-24s %10s\n", "Total", quote.Total)
			return err
		},
	}
	cmd.Flags().BoolVar(&expedited, "expedited", false, "add expedited processing")
	cmd.Flags().StringVar(&delivery, "delivery", application.DeliveryStandard, "delivery method (standard, expedited, overnight, pickup)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the quote as JSON")
	return cmd
}
