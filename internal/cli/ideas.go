package cli

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/startuplens/lens/internal/api"
)

// sortOrderings maps the CLI sort names onto the API's ordering values.
var sortOrderings = map[string]string{
	"newest": api.OrderNewestFirst,
	"oldest": api.OrderOldestFirst,
	"top":    api.OrderHighestScore,
	"low":    api.OrderLowestScore,
}

func orderingFor(sortName string) (string, error) {
	ordering, ok := sortOrderings[sortName]
	if !ok {
		return "", fmt.Errorf("unknown sort %q (newest, oldest, top, low)", sortName)
	}
	return ordering, nil
}

func parseID(arg, what string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s id %q", what, arg)
	}
	return id, nil
}

func newIdeasCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ideas",
		Short: "Browse and manage your ideas",
	}
	cmd.AddCommand(
		newIdeasListCommand(app),
		newIdeasShowCommand(app),
		newIdeasCreateCommand(app),
		newIdeasDeleteCommand(app),
		newIdeasCheckCommand(app),
	)
	return cmd
}

func newIdeasListCommand(app *App) *cobra.Command {
	var page int
	var search, sortName string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List your validated ideas",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireAuth(); err != nil {
				return err
			}
			ordering, err := orderingFor(sortName)
			if err != nil {
				return err
			}

			resp, err := app.Data.Validations(cmd.Context(), api.ListParams{
				Page:     page,
				Search:   search,
				Ordering: ordering,
			})
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(app.Out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTITLE\tSCORE\tCREATED")
			for _, item := range resp.Results {
				fmt.Fprintf(w, "%d\t%s\t%.0f\t%s\n", item.ID, item.Title, item.Score, item.CreatedAt)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(app.Out, "\n%d idea(s) total, page %d\n", resp.Count, page)
			return nil
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "Page number")
	cmd.Flags().StringVarP(&search, "search", "s", "", "Search term")
	cmd.Flags().StringVar(&sortName, "sort", "newest", "Sort order (newest, oldest, top, low)")
	return cmd
}

func newIdeasShowCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show an idea and its analysis report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireAuth(); err != nil {
				return err
			}
			id, err := parseID(args[0], "idea")
			if err != nil {
				return err
			}

			idea, err := app.Data.Idea(cmd.Context(), id)
			if err != nil {
				return err
			}

			fmt.Fprintf(app.Out, "#%d %s\n%s\n", idea.ID, idea.Title, idea.Description)
			for _, report := range idea.Reports {
				printReport(app, report)
			}
			return nil
		},
	}
}

func printReport(app *App, report api.IdeaReport) {
	fmt.Fprintf(app.Out, "\nReport #%d — score %.0f\n", report.ID, report.Score)

	if a := report.Analysis; a != nil {
		fmt.Fprintf(app.Out, "Market gap: %s\n", a.MarketGap)
		printStringList(app, "Strengths", a.Swot.Strengths)
		printStringList(app, "Weaknesses", a.Swot.Weaknesses)
		printStringList(app, "Opportunities", a.Swot.Opportunities)
		printStringList(app, "Threats", a.Swot.Threats)
		printStringList(app, "Competitors", a.Competitors)
	}

	if len(report.Steps) > 0 {
		fmt.Fprintln(app.Out, "Next steps:")
		for i, step := range report.Steps {
			mark := " "
			if step.Status == api.StepSuccess {
				mark = "x"
			}
			fmt.Fprintf(app.Out, "  %d. [%s] %s\n", i+1, mark, step.Task)
		}
	}
}

func printStringList(app *App, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(app.Out, "%s: %s\n", title, strings.Join(items, "; "))
}

func newIdeasCreateCommand(app *App) *cobra.Command {
	var title, description string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Submit an idea for AI analysis",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireAuth(); err != nil {
				return err
			}

			resp, err := app.Data.CreateIdea(cmd.Context(), title, description)
			if err != nil {
				return err
			}

			fmt.Fprintf(app.Out, "Idea #%d submitted for analysis. Check back with 'lens ideas show %d'.\n", resp.ID, resp.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "Idea title")
	cmd.Flags().StringVarP(&description, "description", "d", "", "Idea description")
	cmd.MarkFlagRequired("title")
	cmd.MarkFlagRequired("description")
	return cmd
}

func newIdeasDeleteCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an idea",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireAuth(); err != nil {
				return err
			}
			id, err := parseID(args[0], "idea")
			if err != nil {
				return err
			}

			if err := app.Data.DeleteIdea(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(app.Out, "Idea #%d deleted.\n", id)
			return nil
		},
	}
}

func newIdeasCheckCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "check <id> <step>",
		Short: "Mark a report step as done",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireAuth(); err != nil {
				return err
			}
			id, err := parseID(args[0], "idea")
			if err != nil {
				return err
			}
			stepNum, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid step number %q", args[1])
			}

			ctx := cmd.Context()
			idea, err := app.Data.Idea(ctx, id)
			if err != nil {
				return err
			}
			if len(idea.Reports) == 0 {
				return fmt.Errorf("idea #%d has no report yet", id)
			}

			report := idea.Reports[0]
			if stepNum < 1 || stepNum > len(report.Steps) {
				return fmt.Errorf("idea #%d has steps 1..%d", id, len(report.Steps))
			}

			// Send the full checklist; the server owns the merged state.
			steps := make([]api.Step, len(report.Steps))
			copy(steps, report.Steps)
			steps[stepNum-1].Status = api.StepSuccess

			if err := app.Data.UpdateReportSteps(ctx, report.ID, steps); err != nil {
				return err
			}
			fmt.Fprintf(app.Out, "Step %d marked done: %s\n", stepNum, steps[stepNum-1].Task)
			return nil
		},
	}
}
