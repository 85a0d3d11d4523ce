package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSearchCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search session notes semantically",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, args[0], limit)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "l", 10, "Maximum number of results")

	return cmd
}

func runSearch(cmd *cobra.Command, query string, limit int) error {
	ctx := cmd.Context()

	return withDeps(func(d *Deps) error {
		result, err := d.Search.Handle(ctx, query, limit)
		if err != nil {
			return err
		}

		if len(result.Notes) == 0 {
			fmt.Println("No matching notes found.")
			return nil
		}

		fmt.Printf("Found %d notes:\n\n", len(result.Notes))
		for _, note := range result.Notes {
			title := note.Title
			if title == "" {
				title = firstLine(note.Content)
			}
			fmt.Printf("%s  %s\n", note.ID, title)
		}
		return nil
	})
}
