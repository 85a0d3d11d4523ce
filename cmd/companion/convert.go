package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newConvertCmd() *cobra.Command {
	var elementID string

	cmd := &cobra.Command{
		Use:   "convert <note-id> <entity-id>",
		Short: "Convert a suggested entity into a campaign element",
		Long:  "Creates a new campaign element from the suggestion, or links it to an existing element with --element.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, args, elementID)
		},
	}

	cmd.Flags().StringVarP(&elementID, "element", "e", "", "Existing element to link instead of creating one")

	return cmd
}

func runConvert(cmd *cobra.Command, args []string, elementID string) error {
	ctx := cmd.Context()

	return withDeps(func(d *Deps) error {
		result, err := d.Pipeline.HandleConvert(ctx, args[0], args[1], elementID)
		if err != nil {
			return err
		}

		fmt.Printf("Converted %q to %s %s\n", result.Entity.Text, result.Element.Kind, result.Element.ID)
		return nil
	})
}
