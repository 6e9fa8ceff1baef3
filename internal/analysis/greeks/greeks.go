// Package greeks computes lattice Greeks by bump-and-reprice: central
// differences of the trinomial price under shifted inputs. Unlike the
// closed-form Black-Scholes sensitivities this works for American
// options too.
package greeks

import (
	"time"

	"lattice-pricer/internal/lattice"
	"lattice-pricer/internal/models"
)

// DefaultBump is the default relative shift, 1%.
const DefaultBump = 0.01

// Engine reprices a product under bumped market data.
type Engine struct {
	pricer *lattice.Pricer
	bump   float64
}

// NewEngine creates a Greeks engine around the given pricer. A bump of
// 0 uses DefaultBump.
func NewEngine(pricer *lattice.Pricer, bump float64) *Engine {
	if bump <= 0 {
		bump = DefaultBump
	}
	return &Engine{pricer: pricer, bump: bump}
}

func withSpot(m models.MarketData, spot float64) models.MarketData {
	m.SpotPrice = spot
	return m
}

func withVolatility(m models.MarketData, vol float64) models.MarketData {
	m.Volatility = vol
	return m
}

func withRate(m models.MarketData, rate float64) models.MarketData {
	m.InterestRate = rate
	return m
}

// Delta returns dV/dS by central difference over a relative spot bump.
func (e *Engine) Delta(market models.MarketData, params models.ModelParams, product models.ProductSpec) (float64, error) {
	spotUp := market.SpotPrice * (1 + e.bump)
	spotDown := market.SpotPrice * (1 - e.bump)

	priceUp, err := e.pricer.Price(withSpot(market, spotUp), params, product)
	if err != nil {
		return 0, err
	}
	priceDown, err := e.pricer.Price(withSpot(market, spotDown), params, product)
	if err != nil {
		return 0, err
	}
	return (priceUp - priceDown) / (spotUp - spotDown), nil
}

// Gamma returns d2V/dS2 from the one-sided deltas around the spot.
func (e *Engine) Gamma(market models.MarketData, params models.ModelParams, product models.ProductSpec) (float64, error) {
	spotUp := market.SpotPrice * (1 + e.bump)
	spotDown := market.SpotPrice * (1 - e.bump)

	priceUp, err := e.pricer.Price(withSpot(market, spotUp), params, product)
	if err != nil {
		return 0, err
	}
	priceMid, err := e.pricer.Price(market, params, product)
	if err != nil {
		return 0, err
	}
	priceDown, err := e.pricer.Price(withSpot(market, spotDown), params, product)
	if err != nil {
		return 0, err
	}

	deltaUp := (priceUp - priceMid) / (spotUp - market.SpotPrice)
	deltaDown := (priceMid - priceDown) / (market.SpotPrice - spotDown)
	half := (spotUp - spotDown) / 2
	return (deltaUp - deltaDown) / half, nil
}

// Vega returns dV/dsigma by central difference over a relative
// volatility bump.
func (e *Engine) Vega(market models.MarketData, params models.ModelParams, product models.ProductSpec) (float64, error) {
	volUp := market.Volatility * (1 + e.bump)
	volDown := market.Volatility * (1 - e.bump)

	priceUp, err := e.pricer.Price(withVolatility(market, volUp), params, product)
	if err != nil {
		return 0, err
	}
	priceDown, err := e.pricer.Price(withVolatility(market, volDown), params, product)
	if err != nil {
		return 0, err
	}
	return (priceUp - priceDown) / (volUp - volDown), nil
}

// Rho returns dV/dr by central difference over an absolute rate bump.
func (e *Engine) Rho(market models.MarketData, params models.ModelParams, product models.ProductSpec) (float64, error) {
	priceUp, err := e.pricer.Price(withRate(market, market.InterestRate+e.bump), params, product)
	if err != nil {
		return 0, err
	}
	priceDown, err := e.pricer.Price(withRate(market, market.InterestRate-e.bump), params, product)
	if err != nil {
		return 0, err
	}
	return (priceUp - priceDown) / (2 * e.bump), nil
}

// Theta returns the one-day calendar decay, annualized: the price
// change from advancing the pricing date by one day divided by the
// one-day year fraction.
func (e *Engine) Theta(market models.MarketData, params models.ModelParams, product models.ProductSpec) (float64, error) {
	base, err := e.pricer.Price(market, params, product)
	if err != nil {
		return 0, err
	}

	shifted := params
	shifted.PricingDate = params.PricingDate.Add(24 * time.Hour)
	if !shifted.MaturityDate.After(shifted.PricingDate) {
		return 0, nil // expires within a day, no decay left to measure
	}
	next, err := e.pricer.Price(market, shifted, product)
	if err != nil {
		return 0, err
	}
	return (next - base) * models.DaysPerYear, nil
}

// Compute returns the full set of bump-and-reprice Greeks.
func (e *Engine) Compute(market models.MarketData, params models.ModelParams, product models.ProductSpec) (models.Greeks, error) {
	var g models.Greeks
	var err error

	if g.Delta, err = e.Delta(market, params, product); err != nil {
		return models.Greeks{}, err
	}
	if g.Gamma, err = e.Gamma(market, params, product); err != nil {
		return models.Greeks{}, err
	}
	if g.Vega, err = e.Vega(market, params, product); err != nil {
		return models.Greeks{}, err
	}
	if g.Rho, err = e.Rho(market, params, product); err != nil {
		return models.Greeks{}, err
	}
	if g.Theta, err = e.Theta(market, params, product); err != nil {
		return models.Greeks{}, err
	}
	return g, nil
}
