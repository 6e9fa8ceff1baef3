// Package lattice implements a recombining trinomial lattice pricer for
// vanilla options. A pricing run is three passes over the lattice:
// building the price layers, calibrating per-node transition
// probabilities by moment matching, and backward induction of option
// values. Layers are strictly ordered; nodes within a layer are
// independent and swept in parallel.
package lattice

import (
	"lattice-pricer/internal/models"
)

// ProbTolerance is the tolerance applied to calibrated probabilities:
// values within it of the [0,1] bounds are clipped, values beyond it
// fail the run.
const ProbTolerance = 1e-9

// Layer holds the columnar node data for one time layer. A layer with
// index i has 2i+1 nodes at offsets -i..i, prices strictly increasing
// with offset. Probabilities are set by calibration on non-leaf layers;
// values are written once per layer during backward induction.
type Layer struct {
	Index    int
	Prices   []float64
	Forwards []float64
	MidChild []int // offset of the median child in layer Index+1
	PUp      []float64
	PMid     []float64
	PDown    []float64
	Values   []float64
}

func newLayer(index int) Layer {
	n := 2*index + 1
	return Layer{
		Index:  index,
		Prices: make([]float64, n),
	}
}

// Nodes returns the number of nodes in the layer.
func (l *Layer) Nodes() int {
	return 2*l.Index + 1
}

// slot maps a node offset in [-Index, Index] to a slice position.
func (l *Layer) slot(offset int) int {
	return offset + l.Index
}

// Price returns the underlying price at the given offset.
func (l *Layer) Price(offset int) float64 {
	return l.Prices[l.slot(offset)]
}

// Forward returns the forward price at the given offset.
func (l *Layer) Forward(offset int) float64 {
	return l.Forwards[l.slot(offset)]
}

// Value returns the option value at the given offset. Valid only after
// induction.
func (l *Layer) Value(offset int) float64 {
	return l.Values[l.slot(offset)]
}

// Probabilities returns the up, mid and down transition probabilities
// at the given offset. Valid only after calibration, on non-leaf layers.
func (l *Layer) Probabilities(offset int) (up, mid, down float64) {
	s := l.slot(offset)
	return l.PUp[s], l.PMid[s], l.PDown[s]
}

// MidChildOffset returns the offset in the next layer of the node's
// median child. The up and down children sit one offset above and below.
func (l *Layer) MidChildOffset(offset int) int {
	return l.MidChild[l.slot(offset)]
}

// Lattice is the full recombining tree: layers 0..Steps, the root being
// the single node of layer 0 at the spot price. A lattice is owned by
// the pricing run that built it; consumers of the inspection view must
// treat it as read-only.
type Lattice struct {
	Market models.MarketData
	Params models.ModelParams

	// Derived per-run constants.
	DeltaT   float64
	Alpha    float64
	Discount float64

	Layers []Layer
}

// Steps returns the number of time steps.
func (t *Lattice) Steps() int {
	return len(t.Layers) - 1
}

// Root returns the root layer's single node price.
func (t *Lattice) Root() float64 {
	return t.Layers[0].Prices[0]
}

// RootValue returns the option value at the root. Valid only after
// induction.
func (t *Lattice) RootValue() float64 {
	return t.Layers[0].Values[0]
}
