// Package blackscholes provides the closed-form Black-Scholes price and
// Greeks for European vanilla options. The lattice pricer uses it as a
// reference model: CLI output and convergence tests compare trinomial
// prices against it.
package blackscholes

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"lattice-pricer/internal/errors"
	"lattice-pricer/internal/models"
)

var stdNormal = distuv.Normal{Mu: 0, Sigma: 1}

// Inputs are the Black-Scholes model inputs.
type Inputs struct {
	Spot       float64
	Strike     float64
	Rate       float64
	Volatility float64
	Horizon    float64 // time to maturity in years
}

// FromModels assembles Inputs from the pricing value objects.
func FromModels(market models.MarketData, params models.ModelParams, product models.ProductSpec) Inputs {
	return Inputs{
		Spot:       market.SpotPrice,
		Strike:     product.Strike,
		Rate:       market.InterestRate,
		Volatility: market.Volatility,
		Horizon:    params.Horizon(),
	}
}

func (in Inputs) validate() error {
	if in.Spot <= 0 {
		return errors.NewValidationError("spot_price", in.Spot, "must be positive")
	}
	if in.Strike <= 0 {
		return errors.NewValidationError("strike", in.Strike, "must be positive")
	}
	if in.Volatility <= 0 {
		return errors.NewValidationError("volatility", in.Volatility, "must be positive")
	}
	return nil
}

func (in Inputs) d1() float64 {
	return (math.Log(in.Spot/in.Strike) + (in.Rate+0.5*in.Volatility*in.Volatility)*in.Horizon) /
		(in.Volatility * math.Sqrt(in.Horizon))
}

func (in Inputs) d2() float64 {
	return in.d1() - in.Volatility*math.Sqrt(in.Horizon)
}

// Price returns the Black-Scholes price of a European option. At or
// past maturity the intrinsic value is returned.
func Price(kind models.OptionKind, in Inputs) (float64, error) {
	if err := in.validate(); err != nil {
		return 0, err
	}
	if kind != models.Call && kind != models.Put {
		return 0, errors.NewValidationError("kind", string(kind), "must be call or put")
	}

	if in.Horizon <= 0 {
		if kind == models.Call {
			return math.Max(in.Spot-in.Strike, 0), nil
		}
		return math.Max(in.Strike-in.Spot, 0), nil
	}

	d1 := in.d1()
	d2 := in.d2()
	discK := in.Strike * math.Exp(-in.Rate*in.Horizon)
	if kind == models.Call {
		return in.Spot*stdNormal.CDF(d1) - discK*stdNormal.CDF(d2), nil
	}
	return discK*stdNormal.CDF(-d2) - in.Spot*stdNormal.CDF(-d1), nil
}

// Greeks returns the closed-form Black-Scholes sensitivities.
func Greeks(kind models.OptionKind, in Inputs) (models.Greeks, error) {
	if err := in.validate(); err != nil {
		return models.Greeks{}, err
	}
	if in.Horizon <= 0 {
		return models.Greeks{}, errors.NewValidationError("horizon", in.Horizon, "must be positive")
	}

	d1 := in.d1()
	d2 := in.d2()
	sqrtT := math.Sqrt(in.Horizon)
	discK := in.Strike * math.Exp(-in.Rate*in.Horizon)
	pdf := stdNormal.Prob(d1)

	g := models.Greeks{
		Gamma: pdf / (in.Spot * in.Volatility * sqrtT),
		Vega:  in.Spot * pdf * sqrtT,
	}
	if kind == models.Call {
		g.Delta = stdNormal.CDF(d1)
		g.Theta = -in.Spot*pdf*in.Volatility/(2*sqrtT) - in.Rate*discK*stdNormal.CDF(d2)
		g.Rho = discK * in.Horizon * stdNormal.CDF(d2)
	} else {
		g.Delta = stdNormal.CDF(d1) - 1
		g.Theta = -in.Spot*pdf*in.Volatility/(2*sqrtT) + in.Rate*discK*stdNormal.CDF(-d2)
		g.Rho = -discK * in.Horizon * stdNormal.CDF(-d2)
	}
	return g, nil
}
