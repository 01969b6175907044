package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/sprout/internal/cli/formatter"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

func newJournalCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "journal",
		Short: "Write and read journal entries",
	}
	cmd.AddCommand(newJournalWriteCmd(app), newJournalListCmd(app))
	return cmd
}

// journalForm asks for the entry text.
func journalForm(content *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title("How did today go?").
				Description("What you did, what you learned, what is on your mind.").
				CharLimit(5000).
				Value(content).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("entry cannot be empty")
					}
					return nil
				}),
		),
	).WithTheme(sproutHuhTheme()).WithShowHelp(false)
}

func newJournalWriteCmd(app *App) *cobra.Command {
	var date dateValue
	var content string

	cmd := &cobra.Command{
		Use:   "write",
		Short: "Write the entry for a date (today by default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			u, err := resolveUser(ctx, cmd, app)
			if err != nil {
				return err
			}
			if content == "" {
				if !app.interactive() {
					return errors.New("--content is required when not running in a terminal")
				}
				if err := journalForm(&content).Run(); err != nil {
					return err
				}
			}
			entry, err := app.Journals.Write(ctx, u.ID, date.String(), content)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved journal entry for %s (%d words)\n", entry.Date, entry.WordCount)
			return nil
		},
	}

	dateFlag(cmd.Flags(), &date, "Entry date YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&content, "content", "", "Entry text")
	return cmd
}

func newJournalListCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent journal entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			u, err := resolveUser(ctx, cmd, app)
			if err != nil {
				return err
			}
			entries, err := app.Journals.List(ctx, u.ID, limit)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatJournals(entries))
			fmt.Fprintln(cmd.OutOrStdout())
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 10, "Number of entries to show")
	return cmd
}
