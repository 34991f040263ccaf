// Package sweetspot holds the MWA "sweet spot" pointing grid: numbered
// pointings with precomputed beamformer delays.
package sweetspot

import "mwasens/pkg/domain"

// Gridpoint is one entry of the pointing grid.
type Gridpoint struct {
	Number   int
	Pointing domain.Pointing
	Delays   domain.Delays
}

//go:generate mockgen -package mocksweetspot -source=interface.go -destination=mock/mocksweetspot.go *
type Table interface {
	Gridpoint(number int) (Gridpoint, error)
}
