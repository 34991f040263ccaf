// Package metafits reads observation parameters from the primary header of
// an MWA metafits file.
package metafits

import "mwasens/pkg/domain"

//go:generate mockgen -package mockmetafits -source=interface.go -destination=mock/mockmetafits.go *
type Header interface {
	// Delays returns the DELAYS card. It fails with ErrMissingField when the
	// card is absent.
	Delays() (domain.Delays, error)
	// Float returns a numeric card. It fails with ErrMissingField when the card
	// is absent and ErrBadInput when it is not a number.
	Float(key string) (float64, error)
}

// Opener opens the metafits file at path.
type Opener func(path string) (Header, error)
