// Package models provides the core data types for lattice option pricing.
package models

import (
	"time"

	"lattice-pricer/internal/errors"
)

// MarketData describes the market environment of the underlying asset.
// It is a value object: construct it once and treat it as immutable.
type MarketData struct {
	// Volatility is the annualized volatility of the underlying, e.g. 0.20.
	Volatility float64
	// SpotPrice is the underlying price at the pricing date.
	SpotPrice float64
	// InterestRate is the annualized continuously compounded risk-free rate.
	InterestRate float64
	// DividendPrice is an absolute cash dividend per share. When
	// DividendExDate is set it is paid once, on the lattice step that
	// contains the ex-date. When DividendExDate is the zero value, a
	// nonzero DividendPrice is deducted on every step.
	DividendPrice float64
	// DividendExDate is the ex-dividend date, optional.
	DividendExDate time.Time
}

// Validate checks the market data preconditions.
func (m MarketData) Validate() error {
	if m.Volatility <= 0 {
		return errors.NewValidationError("volatility", m.Volatility, "must be positive")
	}
	if m.SpotPrice <= 0 {
		return errors.NewValidationError("spot_price", m.SpotPrice, "must be positive")
	}
	if m.DividendPrice < 0 {
		return errors.NewValidationError("dividend_price", m.DividendPrice, "must not be negative")
	}
	return nil
}

// HasDividendSchedule reports whether the dividend is tied to an ex-date.
func (m MarketData) HasDividendSchedule() bool {
	return m.DividendPrice > 0 && !m.DividendExDate.IsZero()
}
