package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/Haugenau20/campaign-companion/internal/domain/entities"
	"github.com/Haugenau20/campaign-companion/internal/domain/services"
)

func newUsageCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "usage",
		Short: "Show extraction quota usage",
		RunE:  runUsage,
	}

	cmd.AddCommand(
		newUsageSetLimitCmd(),
		newUsageUnlimitedCmd(),
	)

	return cmd
}

func runUsage(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	return withQuota(func(quota *services.QuotaService) error {
		status, err := quota.ReadStatus(ctx, globalUser)
		if err != nil {
			return err
		}

		displayUsage(status)
		return nil
	})
}

func newUsageSetLimitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set-limit <limit>",
		Short: "Override the user's daily extraction limit (0 clears the override)",
		Args:  cobra.ExactArgs(1),
		RunE:  runUsageSetLimit,
	}
}

func runUsageSetLimit(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	limit, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid limit %q", args[0])
	}

	return withQuota(func(quota *services.QuotaService) error {
		if err := quota.SetCustomLimit(ctx, globalUser, limit); err != nil {
			return err
		}

		if limit <= 0 {
			fmt.Printf("Cleared custom daily limit for %s\n", globalUser)
		} else {
			fmt.Printf("Set daily limit for %s to %d\n", globalUser, limit)
		}
		return nil
	})
}

func newUsageUnlimitedCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "unlimited <on|off>",
		Short:     "Toggle unlimited extractions for the user",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"on", "off"},
		RunE:      runUsageUnlimited,
	}
}

func runUsageUnlimited(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	var unlimited bool
	switch args[0] {
	case "on":
		unlimited = true
	case "off":
		unlimited = false
	default:
		return fmt.Errorf("expected on or off, got %q", args[0])
	}

	return withQuota(func(quota *services.QuotaService) error {
		if err := quota.SetUnlimited(ctx, globalUser, unlimited); err != nil {
			return err
		}

		if unlimited {
			fmt.Printf("Enabled unlimited extractions for %s\n", globalUser)
		} else {
			fmt.Printf("Disabled unlimited extractions for %s\n", globalUser)
		}
		return nil
	})
}

func displayUsage(status entities.UsageStatus) {
	fmt.Printf("Usage for %s:\n", globalUser)
	if status.IsUnlimited {
		fmt.Println("  Unlimited extractions enabled.")
	}

	displayWindow("Daily", status.Daily, status.NextReset.Daily)
	displayWindow("Weekly", status.Weekly, status.NextReset.Weekly)
	displayWindow("Monthly", status.Monthly, status.NextReset.Monthly)

	fmt.Printf("\n  Quota used: %.0f%%\n", status.FillPercent)
	if status.LimitExceeded {
		fmt.Printf("  Limit exceeded (%s window). Next reset: %s\n",
			status.ExceededPeriod, nextResetFor(status).Format("2006-01-02 15:04"))
	}
	if status.LastExtraction != nil {
		fmt.Printf("  Last extraction: %s\n", status.LastExtraction.Format("2006-01-02 15:04"))
	}
}

func displayWindow(name string, w entities.UsageWindow, nextReset time.Time) {
	fmt.Printf("  %-8s %d/%d (resets %s)\n", name, w.Count, w.Limit, nextReset.Format("2006-01-02 15:04"))
}

// nextResetFor returns the reset time of the exceeded window, falling back
// to the daily reset.
func nextResetFor(status entities.UsageStatus) time.Time {
	switch status.ExceededPeriod {
	case entities.PeriodWeekly:
		return status.NextReset.Weekly
	case entities.PeriodMonthly:
		return status.NextReset.Monthly
	default:
		return status.NextReset.Daily
	}
}
