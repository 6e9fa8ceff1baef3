package lattice

import (
	"lattice-pricer/internal/models"
	"lattice-pricer/internal/performance"
)

// Induct walks the calibrated lattice backward from maturity and
// returns the option value at the root. Leaf values are the payoff;
// every earlier node discounts the probability-weighted continuation
// value, and American nodes take the maximum of continuation and
// immediate exercise. Layer i depends only on layer i+1, so layers run
// sequentially while nodes within a layer are swept in parallel.
func Induct(t *Lattice, product models.ProductSpec, pool *performance.WorkerPool) float64 {
	leaves := &t.Layers[t.Steps()]
	leaves.Values = make([]float64, leaves.Nodes())
	performance.ParallelFor(pool, leaves.Nodes(), func(s int) {
		leaves.Values[s] = product.Payoff(leaves.Prices[s])
	})

	american := product.Style == models.American
	for i := t.Steps() - 1; i >= 0; i-- {
		cur := &t.Layers[i]
		next := &t.Layers[i+1]
		cur.Values = make([]float64, cur.Nodes())

		performance.ParallelFor(pool, cur.Nodes(), func(s int) {
			midSlot := next.slot(cur.MidChild[s])
			continuation := t.Discount * (cur.PUp[s]*next.Values[midSlot+1] +
				cur.PMid[s]*next.Values[midSlot] +
				cur.PDown[s]*next.Values[midSlot-1])

			if american {
				if exercise := product.Payoff(cur.Prices[s]); exercise > continuation {
					continuation = exercise
				}
			}
			cur.Values[s] = continuation
		})
	}

	return t.RootValue()
}
