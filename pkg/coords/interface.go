// Package coords converts sky positions to horizontal pointings at the
// telescope site.
package coords

import "mwasens/pkg/domain"

//go:generate mockgen -package mockcoords -source=interface.go -destination=mock/mockcoords.go *
type Converter interface {
	// Horizontal returns azimuth and zenith angle of (raDeg, decDeg) at gps.
	Horizontal(raDeg, decDeg float64, gps int64) (domain.Pointing, error)
}
