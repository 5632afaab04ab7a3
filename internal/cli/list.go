package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"tracker/internal/core"
)

var boldGreen = color.New(color.FgGreen, color.Bold).SprintFunc()

func (app *App) newListCmd() *cobra.Command {
	var (
		category string
		search   string
		from     string
		to       string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List expenses, newest first, with a running total",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.load(cmd); err != nil {
				return err
			}

			criteria := core.Criteria{
				Category: core.Category(category),
				Search:   search,
			}
			if from != "" {
				d, err := core.ParseDate(from)
				if err != nil {
					return fmt.Errorf("invalid --from date: %w", err)
				}
				criteria.Start = d
			}
			if to != "" {
				d, err := core.ParseDate(to)
				if err != nil {
					return fmt.Errorf("invalid --to date: %w", err)
				}
				criteria.End = d
			}

			expenses, total := app.store.Filtered(criteria)
			if len(expenses) == 0 {
				pterm.Info.Println("No expenses found.")
				return nil
			}

			rows := pterm.TableData{{"ID", "Date", "Title", "Category", "Amount"}}
			for _, e := range expenses {
				rows = append(rows, []string{e.ID, e.Date.String(), e.Title, e.Category.String(), e.Amount.String()})
			}
			if err := pterm.DefaultTable.WithHasHeader().WithData(rows).Render(); err != nil {
				return err
			}

			fmt.Printf("Total: %s\n", boldGreen(total.String()))
			return nil
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "All", "Filter by category (All matches everything)")
	cmd.Flags().StringVarP(&search, "search", "q", "", "Case-insensitive search over title and category")
	cmd.Flags().StringVar(&from, "from", "", "Range start date (YYYY-MM-DD, needs --to)")
	cmd.Flags().StringVar(&to, "to", "", "Range end date (YYYY-MM-DD, needs --from)")
	return cmd
}
