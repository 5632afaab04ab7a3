// Package cli implements the tracker command line client. It talks to a
// running server over the REST API and keeps a session-local copy of the
// list so filters and totals are computed client-side.
package cli

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"tracker/internal/client"
	"tracker/internal/session"
)

// App wires the commands to one API client and one session store.
type App struct {
	rootCmd *cobra.Command

	client *client.Client
	store  *session.Store

	serverURL string
}

func NewApp(version string) *App {
	app := &App{store: session.NewStore()}

	rootCmd := &cobra.Command{
		Use:           "tracker",
		Short:         "Personal expense tracker CLI",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			_ = godotenv.Load()
			if app.serverURL == "" {
				app.serverURL = os.Getenv("TRACKER_SERVER")
			}
			if app.serverURL == "" {
				app.serverURL = "http://localhost:8081"
			}
			app.client = client.New(app.serverURL)
		},
	}
	rootCmd.PersistentFlags().StringVarP(&app.serverURL, "server", "s", "", "Server base URL (default $TRACKER_SERVER or http://localhost:8081)")

	rootCmd.AddCommand(
		app.newListCmd(),
		app.newAddCmd(),
		app.newEditCmd(),
		app.newDeleteCmd(),
	)

	app.rootCmd = rootCmd
	return app
}

// Execute runs the CLI application.
func (app *App) Execute() error {
	return app.rootCmd.Execute()
}

// load refreshes the session store from the server.
func (app *App) load(cmd *cobra.Command) error {
	expenses, err := app.client.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("loading expenses: %w", err)
	}
	app.store.Load(expenses)
	return nil
}
