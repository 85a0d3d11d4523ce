package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Haugenau20/campaign-companion/internal/domain/services"
)

func newExtractCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "extract <note-id>",
		Short: "Extract new campaign entities from a note",
		Long:  "Runs entity extraction on a note and stores the suggestions that do not match existing elements. Each run consumes one unit of the user's extraction quota.",
		Args:  cobra.ExactArgs(1),
		RunE:  runExtract,
	}
}

func runExtract(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	return withDeps(func(d *Deps) error {
		result, err := d.Pipeline.HandleExtract(ctx, args[0], globalUser)

		var quotaErr *services.QuotaExceededError
		switch {
		case errors.As(err, &quotaErr):
			displayQuotaExceeded(quotaErr)
			return nil
		case errors.Is(err, services.ErrContentTooShort):
			return fmt.Errorf("note content is too short for extraction (no quota was consumed)")
		case err != nil:
			return err
		}

		if result.Stats.FilteredOut > 0 {
			fmt.Printf("Found %d entities, %d already in your campaign.\n", result.Stats.TotalFound, result.Stats.FilteredOut)
		}

		if len(result.NewEntities) == 0 {
			fmt.Println("No new entities found.")
		} else {
			fmt.Printf("New entities (%d):\n", len(result.NewEntities))
			for _, e := range result.NewEntities {
				displayCandidate(e)
			}
		}

		fmt.Printf("\nQuota: %d/%d today (%.0f%% used)\n",
			result.Status.Daily.Count, result.Status.Daily.Limit, result.Status.FillPercent)
		return nil
	})
}

func displayQuotaExceeded(qe *services.QuotaExceededError) {
	fmt.Printf("Extraction quota exceeded for the %s window.\n", qe.Status.ExceededPeriod)
	fmt.Printf("Next reset: %s\n", nextResetFor(qe.Status).Format("2006-01-02 15:04"))
	if qe.Contact.Message != "" {
		fmt.Printf("\n%s\n", qe.Contact.Message)
	}
	if qe.Contact.ContactURL != "" {
		fmt.Printf("Contact: %s", qe.Contact.ContactURL)
		if qe.Contact.PrefilledSubject != "" {
			fmt.Printf(" (subject: %s)", qe.Contact.PrefilledSubject)
		}
		fmt.Println()
	}
}
