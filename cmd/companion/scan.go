package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newScanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scan <note-id>",
		Short: "Find existing campaign elements mentioned in a note",
		Long:  "Scans a note's text for mentions of known elements. Scanning is free and never consumes extraction quota.",
		Args:  cobra.ExactArgs(1),
		RunE:  runScan,
	}
}

func runScan(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	return withDeps(func(d *Deps) error {
		refs, err := d.Pipeline.HandleScan(ctx, args[0])
		if err != nil {
			return err
		}

		if len(refs) == 0 {
			fmt.Println("No known elements mentioned.")
			return nil
		}

		fmt.Printf("Found %d existing elements:\n", len(refs))
		for _, ref := range refs {
			fmt.Printf("  [%s] %s (%s)\n", ref.Kind, ref.DisplayTitle, ref.ElementID)
			for _, m := range ref.MatchedStrings {
				fmt.Printf("      matched: %q\n", m)
			}
		}
		return nil
	})
}
