// Package main provides the entry point for the companion CLI application.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var (
	version    = "0.1.0-dev"
	globalUser string
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	rootCmd := &cobra.Command{
		Use:     "companion",
		Short:   "A campaign manager that reconciles session notes with your campaign world",
		Version: version,
	}

	rootCmd.PersistentFlags().StringVarP(&globalUser, "user", "u", "default", "User the command acts on behalf of")

	rootCmd.AddCommand(
		newInitCmd(),
		newNotesCmd(),
		newElementsCmd(),
		newScanCmd(),
		newExtractCmd(),
		newConvertCmd(),
		newUsageCmd(),
		newSearchCmd(),
	)

	return rootCmd.ExecuteContext(ctx)
}
