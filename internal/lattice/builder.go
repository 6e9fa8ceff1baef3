package lattice

import (
	"math"

	"lattice-pricer/internal/errors"
	"lattice-pricer/internal/models"
	"lattice-pricer/internal/performance"
)

// Build constructs the price layers of the lattice: forward projection
// of the grid center plus geometric up/down spacing by alpha. Values
// and probabilities are left unset. Pure function of its inputs apart
// from using the pool for per-node sweeps; pool may be nil.
func Build(market models.MarketData, params models.ModelParams, pool *performance.WorkerPool) (*Lattice, error) {
	dt := params.DeltaT()
	if dt <= 0 {
		return nil, errors.NewValidationError("delta_t", dt, "must be positive")
	}

	alpha := params.Alpha(market.Volatility)
	if math.IsNaN(alpha) || math.IsInf(alpha, 0) || alpha <= 1 {
		return nil, errors.NewModelError("alpha", alpha, "spacing factor must be finite and greater than 1")
	}

	t := &Lattice{
		Market:   market,
		Params:   params,
		DeltaT:   dt,
		Alpha:    alpha,
		Discount: math.Exp(-market.InterestRate * dt),
		Layers:   make([]Layer, params.Steps+1),
	}

	growth := math.Exp(market.InterestRate * dt)
	logAlpha := math.Log(alpha)

	t.Layers[0] = newLayer(0)
	t.Layers[0].Prices[0] = market.SpotPrice

	center := market.SpotPrice
	for i := 0; i < params.Steps; i++ {
		div := stepDividend(market, params, i)

		nextCenter := center*growth - div
		if nextCenter <= 0 {
			return nil, errors.NewNumericalError(i+1, 0, "grid_center", nextCenter,
				"dividend exceeds the forward price")
		}

		next := newLayer(i + 1)
		fillGrid(&next, nextCenter, alpha)
		if err := checkMonotonic(&next); err != nil {
			return nil, err
		}

		cur := &t.Layers[i]
		cur.Forwards = make([]float64, cur.Nodes())
		cur.MidChild = make([]int, cur.Nodes())

		nodeErrs := make([]error, cur.Nodes())
		performance.ParallelFor(pool, cur.Nodes(), func(s int) {
			f := cur.Prices[s]*growth - div
			if f <= 0 {
				nodeErrs[s] = errors.NewNumericalError(i, s-cur.Index, "forward", f,
					"dividend exceeds the forward price")
				return
			}
			cur.Forwards[s] = f

			// The median child is the grid value nearest to the forward
			// in log space; with no dividend that is the same offset.
			m := int(math.Round(math.Log(f/nextCenter) / logAlpha))
			if m > i {
				m = i
			}
			if m < -i {
				m = -i
			}
			cur.MidChild[s] = m
		})
		for _, err := range nodeErrs {
			if err != nil {
				return nil, err
			}
		}

		t.Layers[i+1] = next
		center = nextCenter
	}

	return t, nil
}

// fillGrid populates the layer prices as center*alpha^offset, walking
// outward from the center to keep the products stable.
func fillGrid(l *Layer, center, alpha float64) {
	mid := l.Index // slot of offset 0
	l.Prices[mid] = center

	up := center
	down := center
	for k := 1; k <= l.Index; k++ {
		up *= alpha
		down /= alpha
		l.Prices[mid+k] = up
		l.Prices[mid-k] = down
	}
}

func checkMonotonic(l *Layer) error {
	for s := 1; s < len(l.Prices); s++ {
		if l.Prices[s] <= l.Prices[s-1] {
			return errors.NewNumericalError(l.Index, s-l.Index, "price", l.Prices[s],
				"grid prices must increase strictly with offset")
		}
	}
	return nil
}

// stepDividend returns the absolute dividend deducted over step i. With
// an ex-date the dividend is paid only on the step whose interval
// contains it; otherwise a nonzero dividend applies to every step.
func stepDividend(market models.MarketData, params models.ModelParams, i int) float64 {
	if market.DividendPrice == 0 {
		return 0
	}
	if !market.HasDividendSchedule() {
		return market.DividendPrice
	}

	start := params.StepDate(i)
	end := params.StepDate(i + 1)
	ex := market.DividendExDate
	if ex.After(start) && !ex.After(end) {
		return market.DividendPrice
	}
	return 0
}
