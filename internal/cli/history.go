package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"lattice-pricer/internal/models"
	"lattice-pricer/internal/store"
)

func newHistoryCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded pricing runs",
		Example: `  pricer history
  pricer history --limit 5 --kind put
  pricer history --style american --days 7`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd, app.Config.UI.ColorEnabled)

			if app.Store == nil {
				output.Error("History database is not available. Enable it in config.toml.")
				return nil
			}

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			filter := store.ResultFilter{}
			filter.Limit, _ = cmd.Flags().GetInt("limit")

			if kindStr, _ := cmd.Flags().GetString("kind"); kindStr != "" {
				kind, err := models.ParseOptionKind(kindStr)
				if err != nil {
					output.Error("Invalid --kind: %v", err)
					return err
				}
				filter.Kind = kind
			}
			if styleStr, _ := cmd.Flags().GetString("style"); styleStr != "" {
				style, err := models.ParseExerciseStyle(styleStr)
				if err != nil {
					output.Error("Invalid --style: %v", err)
					return err
				}
				filter.Style = style
			}
			if days, _ := cmd.Flags().GetInt("days"); days > 0 {
				filter.Since = time.Now().AddDate(0, 0, -days)
			}

			results, err := app.Store.GetResults(ctx, filter)
			if err != nil {
				output.Error("Failed to load history: %v", err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(results)
			}

			if len(results) == 0 {
				output.Dim("No recorded runs.")
				return nil
			}

			output.Bold("%-4s %-19s %-8s %-8s %9s %9s %7s %10s %10s",
				"ID", "When", "Style", "Kind", "Spot", "Strike", "Steps", "Price", "BS")
			for _, r := range results {
				ref := "-"
				if !r.Reference.IsZero() {
					ref = r.Reference.StringFixed(4)
				}
				output.Printf("%-4d %-19s %-8s %-8s %9.2f %9.2f %7d %10s %10s\n",
					r.ID, r.CreatedAt.Format("2006-01-02 15:04:05"),
					r.Style, r.Kind, r.SpotPrice, r.Strike, r.Steps,
					r.Price.StringFixed(4), ref)
			}
			return nil
		},
	}

	cmd.Flags().Int("limit", 20, "maximum rows to show")
	cmd.Flags().String("kind", "", "filter by option kind (call/put)")
	cmd.Flags().String("style", "", "filter by exercise style (american/european)")
	cmd.Flags().Int("days", 0, "only runs from the last N days")

	return cmd
}
