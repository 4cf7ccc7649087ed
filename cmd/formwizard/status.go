package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formwizard/pkg/status"
)

func newStatusCmd(c *cli) *cobra.Command {
	var (
		email  string
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "status <application-id>",
		Short: "Look up the status of a submitted application",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := c.directory()
			if err != nil {
				return err
			}
			lookup, err := c.lookup(dir)
			if err != nil {
				return err
			}

			record, err := lookup.Lookup(cmd.Context(), args[0], email)
			if err != nil {
				var notFound *status.NotFoundError
				switch {
				case errors.Is(err, status.ErrMissingCredentials):
					return errors.New(status.MissingCredentialsMessage)
				case errors.As(err, &notFound):
					return errors.New(notFound.UserMessage())
				}
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(record)
			}
			return printRecord(out, record)
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "email address used on the application")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the record as JSON")
	return cmd
}

func printRecord(w io.Writer, rec status.ApplicationRecord) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n", rec.ID, rec.Service)
	fmt.Fprintf(&b, "Status:    %s (%d%%)\n", rec.Status, rec.Progress)
	fmt.Fprintf(&b, "Applicant: %s\n", rec.ApplicantName)
	fmt.Fprintf(&b, "Submitted: %s\n", rec.SubmittedDate)
	if rec.CompletedDate != "" {
		fmt.Fprintf(&b, "Completed: %s\n", rec.CompletedDate)
	} else if rec.EstimatedCompletion != "" {
		fmt.Fprintf(&b, "Estimated: %s\n", rec.EstimatedCompletion)
	}
	fmt.Fprintf(&b, "Fee:       %s (%s)\n", rec.Fee, rec.PaymentStatus)

	if len(rec.StatusHistory) > 0 {
		b.WriteString("\nHistory:\n")
		for _, entry := range rec.StatusHistory {
			fmt.Fprintf(&b, "  %s  %-22s %s\n", entry.Date, entry.Status, entry.Description)
		}
	}
	if len(rec.NextSteps) > 0 {
		b.WriteString("\nNext steps:\n")
		for _, step := range rec.NextSteps {
			fmt.Fprintf(&b, "  - %s\n", step)
		}
	}
	if len(rec.SupportDocuments) > 0 {
		b.WriteString("\nDocuments:\n")
		for _, doc := range rec.SupportDocuments {
			fmt.Fprintf(&b, "  %-28s %-10s %s\n", doc.Name, doc.Status, doc.UploadDate)
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}
