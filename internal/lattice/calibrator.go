package lattice

import (
	"math"

	"lattice-pricer/internal/errors"
	"lattice-pricer/internal/performance"
)

// Calibrate solves, per non-leaf node, the 3x3 linear system matching
// normalization and the first two moments of the continuous process
// over one step, and attaches the resulting up/mid/down probabilities
// to the lattice. Layers are independent of each other; nodes within a
// layer are swept in parallel. A probability outside [0,1] beyond
// ProbTolerance fails the run rather than being clipped silently.
func Calibrate(t *Lattice, pool *performance.WorkerPool) error {
	dt := t.DeltaT
	alpha := t.Alpha
	sigma := t.Market.Volatility
	rate := t.Market.InterestRate

	// S^2 * growth2 * varFactor is the conditional variance of the
	// lognormal price over one step.
	growth2 := math.Exp(2 * rate * dt)
	varFactor := math.Exp(sigma*sigma*dt) - 1

	for i := 0; i < t.Steps(); i++ {
		cur := &t.Layers[i]
		next := &t.Layers[i+1]

		n := cur.Nodes()
		cur.PUp = make([]float64, n)
		cur.PMid = make([]float64, n)
		cur.PDown = make([]float64, n)

		nodeErrs := make([]error, n)
		performance.ParallelFor(pool, n, func(s int) {
			spot := cur.Prices[s]
			fwd := cur.Forwards[s]
			mid := next.Price(cur.MidChild[s])

			variance := spot * spot * growth2 * varFactor
			up, pm, down, err := solveNode(i, s-cur.Index, fwd, mid, variance, alpha)
			if err != nil {
				nodeErrs[s] = err
				return
			}
			cur.PUp[s] = up
			cur.PMid[s] = pm
			cur.PDown[s] = down
		})
		for _, err := range nodeErrs {
			if err != nil {
				return err
			}
		}
	}

	return nil
}

// solveNode computes the transition probabilities of one node in closed
// form. With children at mid*alpha, mid and mid/alpha, the moment
// equations reduce to two ratios of the forward and second moment to
// the median child price:
//
//	e1 = F/M, e2 = (Var + F^2)/M^2
//	p_down = ((e2-1) - (alpha+1)(e1-1)) * alpha^2 / ((alpha-1)^2 (alpha+1))
//	p_up   = (e1-1)/(alpha-1) + p_down/alpha
//	p_mid  = 1 - p_up - p_down
//
// When the median child equals the forward (no dividend), e1 = 1 and
// this collapses to the usual p_up = p_down/alpha form, with the
// sqrt(3) spacing limit (1/6, 2/3, 1/6).
func solveNode(layer, offset int, fwd, mid, variance, alpha float64) (up, pm, down float64, err error) {
	e1 := fwd / mid
	e2 := (variance + fwd*fwd) / (mid * mid)

	am1 := alpha - 1
	down = ((e2 - 1) - (alpha+1)*(e1-1)) * alpha * alpha / (am1 * am1 * (alpha + 1))
	up = (e1-1)/am1 + down/alpha
	pm = 1 - up - down

	for _, p := range []struct {
		name  string
		value *float64
	}{
		{"p_up", &up},
		{"p_mid", &pm},
		{"p_down", &down},
	} {
		v := *p.value
		if math.IsNaN(v) || v < -ProbTolerance || v > 1+ProbTolerance {
			return 0, 0, 0, errors.NewNumericalError(layer, offset, p.name, v,
				"probability outside [0,1]; step size is unstable for these inputs")
		}
		// Clip float noise only.
		if v < 0 {
			*p.value = 0
		} else if v > 1 {
			*p.value = 1
		}
	}

	return up, pm, down, nil
}
