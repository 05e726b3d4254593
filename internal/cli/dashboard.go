package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newDashboardCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show your profile and recent ideas",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireAuth(); err != nil {
				return err
			}
			ctx := cmd.Context()

			profile, err := app.Data.Profile(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(app.Out, "%s %s (@%s)\n\n", profile.FirstName, profile.LastName, profile.Username)

			recent, err := app.Data.RecentIdeas(ctx)
			if err != nil {
				return err
			}
			if len(recent.Results) == 0 {
				fmt.Fprintln(app.Out, "No ideas yet. Submit one with 'lens ideas create'.")
				return nil
			}

			w := tabwriter.NewWriter(app.Out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTITLE\tSCORE\tCREATED")
			for _, idea := range recent.Results {
				fmt.Fprintf(w, "%d\t%s\t%.0f\t%s\n", idea.ID, idea.Title, idea.Score, idea.CreatedAt)
			}
			return w.Flush()
		},
	}
}
