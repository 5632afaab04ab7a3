package cli

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"tracker/internal/core"
	"tracker/internal/session"
)

func (app *App) newDeleteCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an expense after confirmation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.load(cmd); err != nil {
				return err
			}

			confirm := func(e core.Expense) bool {
				if yes {
					return true
				}
				prompt := fmt.Sprintf("Delete %q (%s, %s)?", e.Title, e.Amount.String(), e.Date.String())
				ok, _ := pterm.DefaultInteractiveConfirm.Show(prompt)
				return ok
			}

			deleter := session.NewDeleter(app.client, app.store, confirm)
			deleted, err := deleter.Delete(cmd.Context(), strings.TrimSpace(args[0]))
			if err != nil {
				return err
			}
			if !deleted {
				pterm.Info.Println("Aborted.")
				return nil
			}
			pterm.Success.Printfln("Deleted %s", args[0])
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}
