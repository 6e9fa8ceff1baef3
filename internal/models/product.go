package models

import (
	"fmt"
	"math"
	"strings"
	"time"

	"lattice-pricer/internal/errors"
)

// OptionKind is the payoff direction of a vanilla option.
type OptionKind string

const (
	Call OptionKind = "CALL"
	Put  OptionKind = "PUT"
)

// ExerciseStyle determines when the option may be exercised.
type ExerciseStyle string

const (
	American ExerciseStyle = "AMERICAN"
	European ExerciseStyle = "EUROPEAN"
)

// ParseOptionKind parses a user-supplied option kind string.
func ParseOptionKind(s string) (OptionKind, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "CALL", "C":
		return Call, nil
	case "PUT", "P":
		return Put, nil
	default:
		return "", errors.NewValidationError("kind", s, "must be call or put")
	}
}

// ParseExerciseStyle parses a user-supplied exercise style string.
func ParseExerciseStyle(s string) (ExerciseStyle, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "AMERICAN", "AM", "US":
		return American, nil
	case "EUROPEAN", "EU":
		return European, nil
	default:
		return "", errors.NewValidationError("style", s, "must be american or european")
	}
}

// ProductSpec describes a vanilla option contract. Immutable value object.
type ProductSpec struct {
	Strike       float64
	Kind         OptionKind
	Style        ExerciseStyle
	MaturityDate time.Time
}

// Validate checks the product preconditions.
func (p ProductSpec) Validate() error {
	if p.Strike <= 0 {
		return errors.NewValidationError("strike", p.Strike, "must be positive")
	}
	if p.Kind != Call && p.Kind != Put {
		return errors.NewValidationError("kind", string(p.Kind), "must be call or put")
	}
	if p.Style != American && p.Style != European {
		return errors.NewValidationError("style", string(p.Style), "must be american or european")
	}
	if p.MaturityDate.IsZero() {
		return errors.NewValidationError("maturity_date", p.MaturityDate, "is required")
	}
	return nil
}

// Payoff returns the intrinsic value of the option at the given spot.
func (p ProductSpec) Payoff(spot float64) float64 {
	if p.Kind == Call {
		return math.Max(spot-p.Strike, 0)
	}
	return math.Max(p.Strike-spot, 0)
}

// String returns a short human-readable contract description.
func (p ProductSpec) String() string {
	return fmt.Sprintf("%s %s K=%.2f %s", p.Style, p.Kind, p.Strike, p.MaturityDate.Format("2006-01-02"))
}
