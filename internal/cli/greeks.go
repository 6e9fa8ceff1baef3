package cli

import (
	"github.com/spf13/cobra"

	"lattice-pricer/internal/analysis/blackscholes"
	"lattice-pricer/internal/analysis/greeks"
	"lattice-pricer/internal/models"
)

func newGreeksCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "greeks",
		Short: "Compute option Greeks by bump-and-reprice",
		Long: `Compute delta, gamma, vega, rho and theta as central differences of
the lattice price under shifted inputs. For European options the
closed-form Black-Scholes Greeks are shown alongside.`,
		Example: `  pricer greeks --spot 100 --strike 100 --rate 0.05 --vol 0.2 --maturity 2027-08-31
  pricer greeks --spot 100 --strike 95 --vol 0.25 --kind put --style american --maturity 2027-02-26`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd, app.Config.UI.ColorEnabled)

			market, params, product, err := parseContract(cmd)
			if err != nil {
				output.Error("Invalid inputs: %v", err)
				return err
			}

			bump, _ := cmd.Flags().GetFloat64("bump")
			if bump == 0 {
				bump = app.Config.Pricing.GreeksBump
			}

			engine := greeks.NewEngine(app.Pricer, bump)
			latticeGreeks, err := engine.Compute(market, params, product)
			if err != nil {
				output.Error("Greeks computation failed: %v", err)
				return err
			}

			var reference *models.Greeks
			if product.Style == models.European {
				if g, err := blackscholes.Greeks(product.Kind, blackscholes.FromModels(market, params, product)); err == nil {
					reference = &g
				}
			}

			if output.IsJSON() {
				payload := map[string]interface{}{
					"contract": product.String(),
					"lattice":  latticeGreeks,
				}
				if reference != nil {
					payload["black_scholes"] = *reference
				}
				return output.JSON(payload)
			}

			output.Bold("%s", product.String())
			output.Println()
			printGreeksRow(output, "Delta", latticeGreeks.Delta, reference, func(g models.Greeks) float64 { return g.Delta })
			printGreeksRow(output, "Gamma", latticeGreeks.Gamma, reference, func(g models.Greeks) float64 { return g.Gamma })
			printGreeksRow(output, "Vega", latticeGreeks.Vega, reference, func(g models.Greeks) float64 { return g.Vega })
			printGreeksRow(output, "Rho", latticeGreeks.Rho, reference, func(g models.Greeks) float64 { return g.Rho })
			printGreeksRow(output, "Theta", latticeGreeks.Theta, reference, func(g models.Greeks) float64 { return g.Theta })
			if reference != nil {
				output.Dim("  (second column: closed-form Black-Scholes)")
			}
			return nil
		},
	}

	addContractFlags(cmd, app.Config.Pricing.DefaultSteps)
	cmd.Flags().Float64("bump", 0, "relative bump size (default from config)")

	return cmd
}

func printGreeksRow(output *Output, name string, value float64, reference *models.Greeks, pick func(models.Greeks) float64) {
	if reference != nil {
		output.Printf("  %-6s %10.4f  %10.4f\n", name, value, pick(*reference))
		return
	}
	output.Printf("  %-6s %10.4f\n", name, value)
}
