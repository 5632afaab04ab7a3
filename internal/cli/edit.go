package cli

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"tracker/internal/core"
	"tracker/internal/session"
)

func (app *App) newAddCmd() *cobra.Command {
	var (
		title       string
		amount      string
		category    string
		date        string
		description string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a new expense",
		RunE: func(cmd *cobra.Command, args []string) error {
			form := session.NewForm(app.client, app.store)
			form.OpenCreate()

			draft := form.Draft()
			draft.Title = title
			draft.Amount = amount
			draft.Category = core.Category(category)
			draft.Description = description
			if date != "" {
				d, err := core.ParseDate(date)
				if err != nil {
					return fmt.Errorf("invalid --date: %w", err)
				}
				draft.Date = d
			}
			form.SetDraft(draft)

			saved, err := form.Submit(cmd.Context())
			if err != nil {
				return err
			}
			pterm.Success.Printfln("Recorded %s (%s) as %s", saved.Title, saved.Amount.String(), saved.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "Expense title (required)")
	cmd.Flags().StringVarP(&amount, "amount", "a", "", "Amount, e.g. 12.50 (required)")
	cmd.Flags().StringVarP(&category, "category", "c", "", "Category (required)")
	cmd.Flags().StringVarP(&date, "date", "d", "", "Date (YYYY-MM-DD, defaults to today)")
	cmd.Flags().StringVar(&description, "description", "", "Optional free-text note")
	return cmd
}

func (app *App) newEditCmd() *cobra.Command {
	var (
		title       string
		amount      string
		category    string
		date        string
		description string
	)

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit an existing expense; only the given flags change",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.load(cmd); err != nil {
				return err
			}

			form := session.NewForm(app.client, app.store)
			if err := form.OpenEdit(strings.TrimSpace(args[0])); err != nil {
				return fmt.Errorf("expense %s: %w", args[0], err)
			}

			draft := form.Draft()
			if cmd.Flags().Changed("title") {
				draft.Title = title
			}
			if cmd.Flags().Changed("amount") {
				draft.Amount = amount
			}
			if cmd.Flags().Changed("category") {
				draft.Category = core.Category(category)
			}
			if cmd.Flags().Changed("description") {
				draft.Description = description
			}
			if cmd.Flags().Changed("date") {
				d, err := core.ParseDate(date)
				if err != nil {
					return fmt.Errorf("invalid --date: %w", err)
				}
				draft.Date = d
			}
			form.SetDraft(draft)

			saved, err := form.Submit(cmd.Context())
			if err != nil {
				return err
			}
			pterm.Success.Printfln("Updated %s (%s)", saved.Title, saved.Amount.String())
			return nil
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "New title")
	cmd.Flags().StringVarP(&amount, "amount", "a", "", "New amount")
	cmd.Flags().StringVarP(&category, "category", "c", "", "New category")
	cmd.Flags().StringVarP(&date, "date", "d", "", "New date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&description, "description", "", "New description")
	return cmd
}
