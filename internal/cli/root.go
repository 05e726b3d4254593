package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version information (set by build flags)
var (
	version = "dev"
	commit  = "none"
)

// NewRootCommand builds the lens command tree over the wired app.
func NewRootCommand(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "lens",
		Short: "StartupLens terminal dashboard",
		Long: `lens - StartupLens terminal dashboard

Submit business ideas for AI analysis, track their validation scores,
and manage the business plans derived from them.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newVersionCommand(app),
		newLoginCommand(app),
		newLogoutCommand(app),
		newRegisterCommand(app),
		newDashboardCommand(app),
		newIdeasCommand(app),
		newPlansCommand(app),
	)
	return root
}

func newVersionCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(app.Out, "lens %s (commit: %s)\n", version, commit)
		},
	}
}
