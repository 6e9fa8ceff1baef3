package cli

import (
	"context"
	"math"
	"time"

	"github.com/spf13/cobra"

	"lattice-pricer/internal/analysis/blackscholes"
	"lattice-pricer/internal/analysis/greeks"
	"lattice-pricer/internal/models"
	"lattice-pricer/pkg/utils"
)

func newPriceCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "price",
		Short: "Price a vanilla option on the trinomial lattice",
		Long: `Price an American or European vanilla option.

European prices are compared against the closed-form Black-Scholes
value. The run is recorded in the local history database unless
--no-save is given.`,
		Example: `  pricer price --spot 100 --strike 100 --rate 0.05 --vol 0.2 --maturity 2027-08-31
  pricer price --spot 100 --strike 95 --vol 0.25 --kind put --style american --maturity 2027-02-26 --steps 200
  pricer price --spot 100 --strike 102 --vol 0.25 --rate 0.04 --dividend 2 --ex-date 2027-01-15 --maturity 2027-08-31`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd, app.Config.UI.ColorEnabled)

			market, params, product, err := parseContract(cmd)
			if err != nil {
				output.Error("Invalid inputs: %v", err)
				return err
			}

			start := time.Now()
			price, err := app.Pricer.Price(market, params, product)
			if err != nil {
				output.Error("Pricing failed: %v", err)
				return err
			}
			elapsed := time.Since(start)

			result := models.NewPricingResult(market, params, product, price)

			if product.Style == models.European {
				ref, err := blackscholes.Price(product.Kind, blackscholes.FromModels(market, params, product))
				if err == nil {
					result.SetReference(ref)
				}
			}

			if withGreeks, _ := cmd.Flags().GetBool("greeks"); withGreeks {
				engine := greeks.NewEngine(app.Pricer, app.Config.Pricing.GreeksBump)
				g, err := engine.Compute(market, params, product)
				if err != nil {
					output.Warning("Greeks computation failed: %v", err)
				} else {
					result.SetGreeks(g)
				}
			}

			if noSave, _ := cmd.Flags().GetBool("no-save"); !noSave {
				app.saveResult(cmd.Context(), result, output)
			}

			if output.IsJSON() {
				return output.JSON(result)
			}

			printResult(output, result, elapsed)
			return nil
		},
	}

	addContractFlags(cmd, app.Config.Pricing.DefaultSteps)
	cmd.Flags().Bool("greeks", false, "also compute bump-and-reprice Greeks")
	cmd.Flags().Bool("no-save", false, "do not record the run in history")

	return cmd
}

// saveResult records the run unless disabled or the store is missing.
func (a *App) saveResult(ctx context.Context, result *models.PricingResult, output *Output) {
	if a.Store == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := a.Store.SaveResult(ctx, result); err != nil {
		a.Logger.Warn().Err(err).Msg("Failed to record pricing run")
		if !output.IsJSON() {
			output.Dim("(run not recorded: %v)", err)
		}
	}
}

func printResult(output *Output, r *models.PricingResult, elapsed time.Duration) {
	output.Bold("%s %s  K=%s", r.Style, r.Kind, utils.FormatMoney(r.Strike))
	output.Printf("  Spot        %s\n", utils.FormatMoney(r.SpotPrice))
	output.Printf("  Rate        %s\n", utils.FormatPercent(r.InterestRate))
	output.Printf("  Volatility  %s\n", utils.FormatPercent(r.Volatility))
	if r.Dividend > 0 {
		output.Printf("  Dividend    %s\n", utils.FormatMoney(r.Dividend))
	}
	output.Printf("  Maturity    %s  (%d steps)\n", r.MaturityDate.Format("2006-01-02"), r.Steps)
	output.Println()
	output.Success("  Price       %s", r.Price.StringFixed(4))

	if !r.Reference.IsZero() {
		diff := r.Price.Sub(r.Reference).InexactFloat64()
		output.Printf("  Black-Scholes %s  (diff %+.4f)\n", r.Reference.StringFixed(4), diff)
	}
	if !r.Delta.IsZero() || !r.Gamma.IsZero() || !r.Vega.IsZero() {
		output.Println()
		output.Printf("  Delta %s  Gamma %s  Vega %s\n",
			r.Delta.StringFixed(4), r.Gamma.StringFixed(4), r.Vega.StringFixed(4))
	}

	ms := float64(elapsed.Microseconds()) / 1000
	output.Dim("  priced in %sms", utils.FormatFloat(math.Round(ms*100)/100, 2))
}
