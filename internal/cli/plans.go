package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/startuplens/lens/internal/api"
)

func newPlansCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plans",
		Short: "Browse and manage your business plans",
	}
	cmd.AddCommand(
		newPlansListCommand(app),
		newPlansShowCommand(app),
		newPlansGenerateCommand(app),
		newPlansDeleteCommand(app),
	)
	return cmd
}

func newPlansListCommand(app *App) *cobra.Command {
	var page int
	var search, sortName string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List your business plans",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireAuth(); err != nil {
				return err
			}
			ordering, err := orderingFor(sortName)
			if err != nil {
				return err
			}

			resp, err := app.Data.BusinessPlans(cmd.Context(), api.ListParams{
				Page:     page,
				Search:   search,
				Ordering: ordering,
			})
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(app.Out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tIDEA\tTITLE\tCREATED")
			for _, plan := range resp.Results {
				fmt.Fprintf(w, "%d\t%d\t%s\t%s\n", plan.ID, plan.IdeaID, plan.Title, plan.CreatedAt)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(app.Out, "\n%d plan(s) total, page %d\n", resp.Count, page)
			return nil
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "Page number")
	cmd.Flags().StringVarP(&search, "search", "s", "", "Search term")
	cmd.Flags().StringVar(&sortName, "sort", "newest", "Sort order (newest, oldest, top, low)")
	return cmd
}

func newPlansShowCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a business plan document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireAuth(); err != nil {
				return err
			}
			id, err := parseID(args[0], "plan")
			if err != nil {
				return err
			}

			plan, err := app.Data.BusinessPlan(cmd.Context(), id)
			if err != nil {
				return err
			}

			fmt.Fprintf(app.Out, "#%d %s\n%s\n", plan.ID, plan.Title, plan.Description)
			sections := []struct {
				title string
				body  string
			}{
				{"Executive summary", plan.ExecutiveSummary},
				{"Market analysis", plan.MarketAnalysis},
				{"Competitor positioning", plan.CompetitorPositioning},
				{"Target audience", plan.TargetAudience},
				{"Revenue model", plan.RevenueModel},
				{"Marketing strategy", plan.MarketingStrategy},
				{"Tech architecture", plan.TechArchitecture},
			}
			for _, section := range sections {
				if section.body == "" {
					continue
				}
				fmt.Fprintf(app.Out, "\n## %s\n%s\n", section.title, section.body)
			}
			if len(plan.Roadmap) > 0 {
				fmt.Fprintln(app.Out, "\n## Roadmap")
				for _, entry := range plan.Roadmap {
					fmt.Fprintf(app.Out, "  %s: %s\n", entry.Month, entry.Focus)
				}
			}
			return nil
		},
	}
}

func newPlansGenerateCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "generate <idea-id>",
		Short: "Generate a business plan from an idea",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireAuth(); err != nil {
				return err
			}
			ideaID, err := parseID(args[0], "idea")
			if err != nil {
				return err
			}

			resp, err := app.Data.GenerateBusinessPlan(cmd.Context(), ideaID)
			if err != nil {
				return err
			}
			fmt.Fprintf(app.Out, "Business plan #%d generated. View it with 'lens plans show %d'.\n",
				resp.BusinessPlanID, resp.BusinessPlanID)
			return nil
		},
	}
}

func newPlansDeleteCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a business plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireAuth(); err != nil {
				return err
			}
			id, err := parseID(args[0], "plan")
			if err != nil {
				return err
			}

			if err := app.Data.DeleteBusinessPlan(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(app.Out, "Business plan #%d deleted.\n", id)
			return nil
		},
	}
}
