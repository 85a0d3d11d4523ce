package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Haugenau20/campaign-companion/internal/domain/entities"
)

func newNotesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notes",
		Short: "Manage session notes",
	}

	cmd.AddCommand(
		newNotesAddCmd(),
		newNotesListCmd(),
		newNotesShowCmd(),
	)

	return cmd
}

func newNotesAddCmd() *cobra.Command {
	var (
		title string
		file  string
	)

	cmd := &cobra.Command{
		Use:   "add [content]",
		Short: "Add a session note",
		Long:  "Adds a session note from the argument, a file (--file), or stdin.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNotesAdd(cmd, args, title, file)
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "Note title")
	cmd.Flags().StringVarP(&file, "file", "f", "", "Read note content from a file")

	return cmd
}

func runNotesAdd(cmd *cobra.Command, args []string, title, file string) error {
	ctx := cmd.Context()

	content, err := readNoteContent(args, file)
	if err != nil {
		return err
	}

	return withDeps(func(d *Deps) error {
		result, err := d.Notes.HandleAdd(ctx, title, content)
		if err != nil {
			return err
		}

		fmt.Printf("Added note %s\n", result.Note.ID)
		if result.IndexWarning != nil {
			fmt.Fprintf(os.Stderr, "warning: note not indexed for search: %v\n", result.IndexWarning)
		}
		return nil
	})
}

func readNoteContent(args []string, file string) (string, error) {
	switch {
	case file != "":
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("reading note file: %w", err)
		}
		return string(data), nil
	case len(args) == 1:
		return args[0], nil
	default:
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}
}

func newNotesListCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List session notes",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNotesList(cmd, limit)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "l", DefaultListLimit, "Maximum number of notes to display")

	return cmd
}

func runNotesList(cmd *cobra.Command, limit int) error {
	ctx := cmd.Context()

	return withStoreDeps(func(sd *storeDeps) error {
		notes, err := sd.Notes.HandleList(ctx, limit)
		if err != nil {
			return err
		}

		if len(notes) == 0 {
			fmt.Println("No notes found.")
			return nil
		}

		for _, note := range notes {
			title := note.Title
			if title == "" {
				title = firstLine(note.Content)
			}
			fmt.Printf("%s  %s  %s\n", note.ID, note.UpdatedAt.Format("2006-01-02 15:04"), title)
		}
		return nil
	})
}

func newNotesShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <note-id>",
		Short: "Show a note with its suggested entities",
		Args:  cobra.ExactArgs(1),
		RunE:  runNotesShow,
	}
}

func runNotesShow(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	return withStoreDeps(func(sd *storeDeps) error {
		note, err := sd.Notes.HandleShow(ctx, args[0])
		if err != nil {
			return err
		}

		if note.Title != "" {
			fmt.Printf("%s\n\n", note.Title)
		}
		fmt.Println(note.Content)

		if len(note.Entities) > 0 {
			fmt.Println("\nEntities:")
			for _, e := range note.Entities {
				displayCandidate(e)
			}
		}
		return nil
	})
}

func displayCandidate(e entities.CandidateEntity) {
	status := "suggested"
	if e.IsConverted {
		status = "converted"
	}
	fmt.Printf("  %s  [%s] %s (%.0f%%, %s)\n", e.ID, e.Kind, e.Text, e.Confidence*100, status)
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	if len(s) > 60 {
		s = s[:60] + "..."
	}
	return s
}
