package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formwizard/pkg/renderers/tui"
	"github.com/goliatone/go-formwizard/pkg/wizard"
)

func newApplyCmd(c *cli) *cobra.Command {
	var noRetry bool
	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Fill in and submit an application from the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			submitter, err := c.submitter()
			if err != nil {
				return err
			}
			controller := wizard.New(
				wizard.WithSubmitter(submitter),
				wizard.WithLogger(c.logger),
			)
			runner := tui.New(
				tui.WithOutput(cmd.OutOrStdout()),
				tui.WithRetryPrompt(!noRetry),
				tui.WithLogger(c.logger),
			)

			_, err = runner.Run(cmd.Context(), controller)
			switch {
			case errors.Is(err, tui.ErrAborted), errors.Is(err, tui.ErrDeclined):
				fmt.Fprintln(cmd.OutOrStdout(), "Application not submitted.")
				return nil
			case err != nil:
				return err
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&noRetry, "no-retry", false, "exit instead of offering to retry a failed submission")
	return cmd
}
