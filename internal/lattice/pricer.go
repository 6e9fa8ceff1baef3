package lattice

import (
	"lattice-pricer/internal/errors"
	"lattice-pricer/internal/models"
	"lattice-pricer/internal/performance"
)

// Pricer runs the build -> calibrate -> induct pipeline. It owns a
// worker pool that is reused across runs; each run builds a private
// lattice, so one Pricer may serve sequential pricings but a lattice is
// never shared between concurrent runs.
type Pricer struct {
	pool *performance.WorkerPool
}

// NewPricer creates a pricer with the given worker count. A count of 0
// uses one worker per CPU.
func NewPricer(workers int) *Pricer {
	pool := performance.NewWorkerPool(workers)
	pool.Start()
	return &Pricer{pool: pool}
}

// Close releases the pricer's worker pool.
func (p *Pricer) Close() {
	p.pool.Stop()
}

// Price values the product on a trinomial lattice and returns the root
// price. Inputs are validated before any computation; validation and
// numerical failures propagate immediately with no partial result.
func (p *Pricer) Price(market models.MarketData, params models.ModelParams, product models.ProductSpec) (float64, error) {
	price, _, err := p.PriceWithLattice(market, params, product)
	return price, err
}

// PriceWithLattice is Price, additionally returning the full lattice
// (prices, probabilities, values) for inspection. The returned lattice
// must be treated as read-only.
func (p *Pricer) PriceWithLattice(market models.MarketData, params models.ModelParams, product models.ProductSpec) (float64, *Lattice, error) {
	if err := validateInputs(market, params, product); err != nil {
		return 0, nil, err
	}

	t, err := Build(market, params, p.pool)
	if err != nil {
		return 0, nil, err
	}
	if err := Calibrate(t, p.pool); err != nil {
		return 0, nil, err
	}

	price := Induct(t, product, p.pool)
	return price, t, nil
}

func validateInputs(market models.MarketData, params models.ModelParams, product models.ProductSpec) error {
	if err := market.Validate(); err != nil {
		return err
	}
	if err := params.Validate(); err != nil {
		return err
	}
	if err := product.Validate(); err != nil {
		return err
	}
	if !product.MaturityDate.Equal(params.MaturityDate) {
		return errors.NewValidationError("maturity_date", product.MaturityDate,
			"product maturity must match the model horizon")
	}
	return nil
}
