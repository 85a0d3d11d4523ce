package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Haugenau20/campaign-companion/internal/application/handlers"
)

func newElementsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "elements",
		Short: "Manage campaign elements (NPCs, locations, quests, rumors)",
	}

	cmd.AddCommand(
		newElementsAddCmd(),
		newElementsListCmd(),
		newElementsImportCmd(),
	)

	return cmd
}

func newElementsAddCmd() *cobra.Command {
	var title string

	cmd := &cobra.Command{
		Use:   "add <kind> <name>",
		Short: "Add a campaign element",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runElementsAdd(cmd, args[0], args[1], title)
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "Display title, e.g. \"Captain of the Guard\"")

	return cmd
}

func runElementsAdd(cmd *cobra.Command, kind, name, title string) error {
	ctx := cmd.Context()

	return withStoreDeps(func(sd *storeDeps) error {
		element, err := sd.Elements.HandleAdd(ctx, kind, name, title)
		if err != nil {
			return err
		}

		fmt.Printf("Added %s: %s (%s)\n", element.Kind, element.DisplayTitle(), element.ID)
		return nil
	})
}

func newElementsListCmd() *cobra.Command {
	var kind string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List campaign elements",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runElementsList(cmd, kind)
		},
	}

	cmd.Flags().StringVarP(&kind, "kind", "k", "", "Filter by kind (npc, location, quest, rumor)")

	return cmd
}

func runElementsList(cmd *cobra.Command, kind string) error {
	ctx := cmd.Context()

	return withStoreDeps(func(sd *storeDeps) error {
		elems, err := sd.Elements.HandleList(ctx, kind)
		if err != nil {
			return err
		}

		if len(elems) == 0 {
			fmt.Println("No elements found.")
			return nil
		}

		for _, e := range elems {
			fmt.Printf("%s  [%s] %s\n", e.ID, e.Kind, e.DisplayTitle())
		}
		return nil
	})
}

func newElementsImportCmd() *cobra.Command {
	var (
		format string
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import campaign elements from a JSON or CSV file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runElementsImport(cmd, args[0], format, dryRun)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "auto", "File format: json, csv, or auto")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Validate without saving")

	return cmd
}

func runElementsImport(cmd *cobra.Command, file, format string, dryRun bool) error {
	ctx := cmd.Context()

	return withStoreDeps(func(sd *storeDeps) error {
		result, err := sd.Import.Handle(ctx, file, handlers.ImportOptions{
			Format: format,
			DryRun: dryRun,
		})
		if err != nil {
			return err
		}

		fmt.Printf("Imported: %d, skipped: %d\n", result.Imported, result.Skipped)
		for _, ie := range result.Errors {
			fmt.Printf("  line %d (%s): %s\n", ie.LineNum, ie.Name, ie.Reason)
		}
		return nil
	})
}
