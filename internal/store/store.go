// Package store provides persistence for pricing run history.
package store

import (
	"context"
	"time"

	"lattice-pricer/internal/models"
)

// RunStore defines the interface for pricing run persistence.
type RunStore interface {
	// SaveResult records a completed pricing run and fills in its ID.
	SaveResult(ctx context.Context, result *models.PricingResult) error
	// GetResults returns stored runs matching the filter, newest first.
	GetResults(ctx context.Context, filter ResultFilter) ([]models.PricingResult, error)
	// GetResultByID returns a single stored run.
	GetResultByID(ctx context.Context, id int64) (*models.PricingResult, error)

	// Lifecycle
	Close() error
}

// ResultFilter represents filters for querying stored runs.
type ResultFilter struct {
	Kind  models.OptionKind
	Style models.ExerciseStyle
	Since time.Time
	Limit int
}
