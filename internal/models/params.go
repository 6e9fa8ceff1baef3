package models

import (
	"math"
	"time"

	"lattice-pricer/internal/errors"
)

// DaysPerYear is the day-count basis used to convert calendar intervals
// into year fractions.
const DaysPerYear = 365.0

// ModelParams describes the discretization of the pricing horizon.
// Horizon, step size and spacing factor are derived from the dates and
// the step count, never stored, so they cannot drift out of sync.
type ModelParams struct {
	// PricingDate is the valuation date.
	PricingDate time.Time
	// MaturityDate is the option maturity. Must be after PricingDate.
	MaturityDate time.Time
	// Steps is the number of time steps in the lattice.
	Steps int
}

// Validate checks the model parameter preconditions.
func (p ModelParams) Validate() error {
	if p.Steps < 1 {
		return errors.NewValidationError("steps", p.Steps, "must be at least 1")
	}
	if p.PricingDate.IsZero() || p.MaturityDate.IsZero() {
		return errors.NewValidationError("dates", nil, "pricing and maturity dates are required")
	}
	if !p.MaturityDate.After(p.PricingDate) {
		return errors.NewValidationError("maturity_date", p.MaturityDate, "must be after the pricing date")
	}
	return nil
}

// Horizon returns the time to maturity in years (ACT/365).
func (p ModelParams) Horizon() float64 {
	return p.MaturityDate.Sub(p.PricingDate).Hours() / 24.0 / DaysPerYear
}

// DeltaT returns the step size in years.
func (p ModelParams) DeltaT() float64 {
	return p.Horizon() / float64(p.Steps)
}

// Alpha returns the lattice spacing factor exp(sigma*sqrt(3*dt)) for the
// given volatility. Always greater than 1 for valid inputs.
func (p ModelParams) Alpha(volatility float64) float64 {
	return math.Exp(volatility * math.Sqrt(3*p.DeltaT()))
}

// StepDate returns the calendar date of step i, i in [0, Steps].
func (p ModelParams) StepDate(i int) time.Time {
	step := p.MaturityDate.Sub(p.PricingDate) / time.Duration(p.Steps)
	if i >= p.Steps {
		return p.MaturityDate
	}
	return p.PricingDate.Add(step * time.Duration(i))
}
