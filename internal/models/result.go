package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Greeks holds option price sensitivities.
type Greeks struct {
	Delta float64
	Gamma float64
	Theta float64
	Vega  float64
	Rho   float64
}

// PricingResult is the record of a single pricing run: the inputs, the
// lattice price and, for European options, the closed-form reference.
// Monetary outputs are carried as decimals so stored and displayed
// values round deterministically.
type PricingResult struct {
	ID        int64
	CreatedAt time.Time

	// Inputs
	Kind         OptionKind
	Style        ExerciseStyle
	SpotPrice    float64
	Strike       float64
	InterestRate float64
	Volatility   float64
	Dividend     float64
	Steps        int
	PricingDate  time.Time
	MaturityDate time.Time

	// Outputs
	Model     string
	Price     decimal.Decimal
	Reference decimal.Decimal // Black-Scholes price; zero for American style
	Delta     decimal.Decimal
	Gamma     decimal.Decimal
	Vega      decimal.Decimal
}

// NewPricingResult assembles a result record from a pricing run.
func NewPricingResult(market MarketData, params ModelParams, product ProductSpec, price float64) *PricingResult {
	return &PricingResult{
		CreatedAt:    time.Now(),
		Kind:         product.Kind,
		Style:        product.Style,
		SpotPrice:    market.SpotPrice,
		Strike:       product.Strike,
		InterestRate: market.InterestRate,
		Volatility:   market.Volatility,
		Dividend:     market.DividendPrice,
		Steps:        params.Steps,
		PricingDate:  params.PricingDate,
		MaturityDate: params.MaturityDate,
		Model:        "trinomial",
		Price:        decimal.NewFromFloat(price),
	}
}

// SetReference records the closed-form reference price.
func (r *PricingResult) SetReference(price float64) {
	r.Reference = decimal.NewFromFloat(price)
}

// SetGreeks records lattice Greeks on the result.
func (r *PricingResult) SetGreeks(g Greeks) {
	r.Delta = decimal.NewFromFloat(g.Delta)
	r.Gamma = decimal.NewFromFloat(g.Gamma)
	r.Vega = decimal.NewFromFloat(g.Vega)
}
