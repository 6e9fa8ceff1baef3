package cli

import (
	"time"

	"github.com/spf13/cobra"

	"lattice-pricer/internal/errors"
	"lattice-pricer/internal/models"
)

// addContractFlags registers the market/model/product flags shared by
// the pricing commands.
func addContractFlags(cmd *cobra.Command, defaultSteps int) {
	cmd.Flags().Float64("spot", 0, "spot price of the underlying (required)")
	cmd.Flags().Float64("strike", 0, "strike price (required)")
	cmd.Flags().Float64("rate", 0, "annualized risk-free rate, e.g. 0.05")
	cmd.Flags().Float64("vol", 0, "annualized volatility, e.g. 0.20 (required)")
	cmd.Flags().Float64("dividend", 0, "absolute cash dividend per share")
	cmd.Flags().String("ex-date", "", "ex-dividend date (YYYY-MM-DD); without it the dividend applies every step")
	cmd.Flags().String("kind", "call", "option kind: call or put")
	cmd.Flags().String("style", "european", "exercise style: european or american")
	cmd.Flags().String("maturity", "", "maturity date (YYYY-MM-DD, required)")
	cmd.Flags().String("pricing-date", "", "valuation date (YYYY-MM-DD, default today)")
	cmd.Flags().Int("steps", defaultSteps, "number of lattice steps")

	cmd.MarkFlagRequired("spot")
	cmd.MarkFlagRequired("strike")
	cmd.MarkFlagRequired("vol")
	cmd.MarkFlagRequired("maturity")
}

// parseContract reads the shared flags into the pricing value objects.
// Full validation happens inside the pricer; only parsing errors are
// reported here.
func parseContract(cmd *cobra.Command) (models.MarketData, models.ModelParams, models.ProductSpec, error) {
	var market models.MarketData
	var params models.ModelParams
	var product models.ProductSpec

	market.SpotPrice, _ = cmd.Flags().GetFloat64("spot")
	market.InterestRate, _ = cmd.Flags().GetFloat64("rate")
	market.Volatility, _ = cmd.Flags().GetFloat64("vol")
	market.DividendPrice, _ = cmd.Flags().GetFloat64("dividend")

	if exDateStr, _ := cmd.Flags().GetString("ex-date"); exDateStr != "" {
		exDate, err := time.Parse("2006-01-02", exDateStr)
		if err != nil {
			return market, params, product, errors.NewValidationError("ex-date", exDateStr, "use YYYY-MM-DD")
		}
		market.DividendExDate = exDate
	}

	maturityStr, _ := cmd.Flags().GetString("maturity")
	maturity, err := time.Parse("2006-01-02", maturityStr)
	if err != nil {
		return market, params, product, errors.NewValidationError("maturity", maturityStr, "use YYYY-MM-DD")
	}

	pricingDate := time.Now().Truncate(24 * time.Hour)
	if pricingStr, _ := cmd.Flags().GetString("pricing-date"); pricingStr != "" {
		pricingDate, err = time.Parse("2006-01-02", pricingStr)
		if err != nil {
			return market, params, product, errors.NewValidationError("pricing-date", pricingStr, "use YYYY-MM-DD")
		}
	}

	params.PricingDate = pricingDate
	params.MaturityDate = maturity
	params.Steps, _ = cmd.Flags().GetInt("steps")

	kindStr, _ := cmd.Flags().GetString("kind")
	product.Kind, err = models.ParseOptionKind(kindStr)
	if err != nil {
		return market, params, product, err
	}

	styleStr, _ := cmd.Flags().GetString("style")
	product.Style, err = models.ParseExerciseStyle(styleStr)
	if err != nil {
		return market, params, product, err
	}

	product.Strike, _ = cmd.Flags().GetFloat64("strike")
	product.MaturityDate = maturity

	return market, params, product, nil
}
