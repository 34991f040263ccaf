// Package metadata describes lookups against the MWA observation metadata
// service.
package metadata

import (
	"context"
	"mwasens/pkg/domain"
)

// Observation is the subset of an observation record the calculators use.
type Observation struct {
	ObsID     int64
	Delays    domain.Delays
	Gridpoint int
}

//go:generate mockgen -package mockmetadata -source=interface.go -destination=mock/mockmetadata.go *
type Client interface {
	// Observation returns the record for obsID. It returns ErrNotFound when the
	// service does not know the observation.
	Observation(ctx context.Context, obsID int64) (Observation, error)
}
