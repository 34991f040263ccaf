// Package observation resolves the command line description of an
// observation (explicit values, a metafits file, the metadata service or the
// sweet spot grid) into the frequencies, delays and pointing the
// sensitivity sweep evaluates.
package observation

import (
	"context"
	"fmt"
	"mwasens/pkg/coords"
	"mwasens/pkg/domain"
	"mwasens/pkg/logger"
	"mwasens/pkg/metadata"
	"mwasens/pkg/metafits"
	"mwasens/pkg/serrors"
	"mwasens/pkg/sweetspot"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// DefaultDelays points the tile at zenith.
const DefaultDelays = "0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0"

// obsIDDigits is the length of the GPS time a metafits file name starts with.
const obsIDDigits = 10

// Request is the unresolved description of an observation. Nil pointers
// mark values that were not given.
type Request struct {
	FrequenciesMHz []float64
	Channels       []float64
	// Delays in the form accepted by domain.ParseDelays. Empty means
	// DefaultDelays.
	Delays   string
	Metafits string
	// GPS is the start time. Zero means not given.
	GPS int64

	AzimuthDeg     *float64
	ZenithAngleDeg *float64
	// ElevationDeg replaces ZenithAngleDeg when it differs from 90.
	ElevationDeg float64
	RADeg        *float64
	DecDeg       *float64

	// Gridpoint selects a sweet spot when non-negative.
	Gridpoint int
	// UseMetadata takes delays and gridpoint from the metadata service.
	UseMetadata bool
}

// NewRequest returns a Request with the command line defaults.
func NewRequest() Request {
	return Request{Delays: DefaultDelays, ElevationDeg: 90, Gridpoint: -1}
}

// Resolver turns requests into observations.
type Resolver struct {
	converter  coords.Converter
	open       metafits.Opener
	metadata   metadata.Client
	gridpoints sweetspot.Table
}

// NewResolver returns a resolver. client is only used for requests with
// UseMetadata set.
func NewResolver(converter coords.Converter, open metafits.Opener, client metadata.Client, gridpoints sweetspot.Table) *Resolver {
	return &Resolver{converter: converter, open: open, metadata: client, gridpoints: gridpoints}
}

// pointing holds the partially resolved direction.
type pointing struct {
	az, za *float64
}

// Resolve applies, in order: the start time, RA/Dec conversion, the elevation override,
// the metafits header, the metadata service or sweet spot grid, and the
// channel to frequency conversion.
func (r *Resolver) Resolve(ctx context.Context, req Request) (domain.Observation, error) {
	var header metafits.Header
	if req.Metafits != "" {
		h, err := r.open(req.Metafits)
		if err != nil {
			return domain.Observation{}, fmt.Errorf("could not open metafits file: %w", err)
		}
		header = h
	}

	gps, err := resolveGPS(ctx, req, header)
	if err != nil {
		return domain.Observation{}, err
	}

	p := pointing{az: req.AzimuthDeg, za: req.ZenithAngleDeg}
	elev := req.ElevationDeg
	if req.RADeg != nil && req.DecDeg != nil {
		hz, err := r.converter.Horizontal(*req.RADeg, *req.DecDeg, gps)
		if err != nil {
			return domain.Observation{}, fmt.Errorf("could not convert (ra,dec) to (az,za): %w", err)
		}
		p.az, p.za = &hz.AzimuthDeg, &hz.ZenithAngleDeg
		elev = hz.ElevationDeg()
		logger.Info(ctx, "converted (ra,dec) to (az,za)",
			zap.Float64("raDeg", *req.RADeg),
			zap.Float64("decDeg", *req.DecDeg),
			zap.Stringer("pointing", hz),
			zap.Int64("gps", gps),
		)
	}
	if elev != 90 {
		za := 90 - elev
		p.za = &za
	}

	delays, err := delaysFor(ctx, req, header, &p)
	if err != nil {
		return domain.Observation{}, err
	}

	gridpoint := -1
	switch {
	case req.UseMetadata:
		if gps > 0 {
			obs, err := r.metadata.Observation(ctx, gps)
			if err != nil {
				return domain.Observation{}, fmt.Errorf("could not get observation %d: %w", gps, err)
			}
			delays, gridpoint = obs.Delays, obs.Gridpoint
		}
	case req.Gridpoint >= 0:
		gp, err := r.gridpoints.Gridpoint(req.Gridpoint)
		if err != nil {
			return domain.Observation{}, fmt.Errorf("could not get gridpoint: %w", err)
		}
		delays, gridpoint = gp.Delays, gp.Number
		if p.az == nil && p.za == nil {
			p.az, p.za = &gp.Pointing.AzimuthDeg, &gp.Pointing.ZenithAngleDeg
			logger.Warn(ctx, "pointing not given, using the gridpoint centre", zap.Stringer("pointing", gp.Pointing))
		}
	}

	freqs, err := frequencies(req)
	if err != nil {
		return domain.Observation{}, err
	}

	obs := domain.Observation{
		FrequenciesHz: freqs,
		Delays:        delays,
		Pointing:      p.resolve(ctx),
		GPSTime:       gps,
		Gridpoint:     gridpoint,
	}
	logger.Info(ctx, "observation",
		zap.Int64("gps", obs.GPSTime),
		zap.Int("gridpoint", obs.Gridpoint),
		zap.Stringer("delays", obs.Delays),
		zap.Stringer("pointing", obs.Pointing),
		zap.Bool("metadataService", req.UseMetadata),
	)

	return obs, nil
}

// delaysFor reads the metafits header when one is given, filling the pointing
// from it, and otherwise parses the requested delays.
func delaysFor(ctx context.Context, req Request, h metafits.Header, p *pointing) (domain.Delays, error) {
	if h == nil {
		s := req.Delays
		if s == "" {
			s = DefaultDelays
		}

		return domain.ParseDelays(s)
	}

	delays, err := h.Delays()
	if err != nil {
		return domain.Delays{}, fmt.Errorf("could not get delays from %s: %w", req.Metafits, err)
	}
	logger.Info(ctx, "delays from metafits", zap.String("file", req.Metafits), zap.Stringer("delays", delays))

	if p.za == nil {
		if alt, err := h.Float(metafits.KeyAltitude); err != nil {
			logger.Warn(ctx, "altitude not found in metafits, ignored", zap.String("file", req.Metafits), zap.Error(err))
		} else {
			za := 90 - alt
			p.za = &za
		}
	}
	if p.az == nil {
		if az, err := h.Float(metafits.KeyAzimuth); err != nil {
			logger.Warn(ctx, "azimuth not found in metafits, ignored", zap.String("file", req.Metafits), zap.Error(err))
		} else {
			p.az = &az
		}
	}

	return delays, nil
}

// resolve defaults missing coordinates to zenith.
func (p pointing) resolve(ctx context.Context) domain.Pointing {
	var out domain.Pointing
	if p.az == nil || p.za == nil {
		logger.Warn(ctx, "pointing not fully specified, missing values default to zero")
	}
	if p.az != nil {
		out.AzimuthDeg = *p.az
	}
	if p.za != nil {
		out.ZenithAngleDeg = *p.za
	}

	return out
}

// resolveGPS takes the given start time, else the GPSTIME card of the
// metafits header, else the obsid the metafits file name starts with.
func resolveGPS(ctx context.Context, req Request, h metafits.Header) (int64, error) {
	if req.GPS != 0 {
		return req.GPS, nil
	}
	if h == nil {
		return 0, serrors.With(serrors.ErrMissingField, "gps seconds not given and no metafits file specified")
	}
	if v, err := h.Float(metafits.KeyGPSTime); err == nil {
		logger.Info(ctx, "gps from metafits header", zap.String("file", req.Metafits), zap.Float64("gps", v))

		return int64(v), nil
	}

	name := filepath.Base(req.Metafits)
	logger.Warn(ctx, "gps not given, using the metafits file name", zap.String("file", name))
	if len(name) < obsIDDigits {
		return 0, serrors.With(serrors.ErrBadInput, "could not parse obsid from metafits file name %q", name)
	}
	gps, err := strconv.ParseInt(name[:obsIDDigits], 10, 64)
	if err != nil {
		return 0, serrors.Wrap(serrors.ErrBadInput, err, "could not parse obsid from metafits file name %q", name)
	}

	return gps, nil
}

func frequencies(req Request) ([]float64, error) {
	mhz := req.FrequenciesMHz
	if len(mhz) == 0 {
		for _, ch := range req.Channels {
			mhz = append(mhz, domain.CoarseChannelWidthMHz*ch)
		}
	}
	if len(mhz) == 0 {
		return nil, serrors.With(serrors.ErrMissingField, "must supply frequency or channel")
	}

	out := make([]float64, len(mhz))
	for i, f := range mhz {
		out[i] = f * 1e6
	}

	return out, nil
}

// ParseList parses a comma separated list of numbers. An empty string gives
// a nil list.
func ParseList(s string) ([]float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	parts := strings.Split(s, ",")
	out := make([]float64, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, serrors.Wrap(serrors.ErrBadInput, err, "could not parse %q", s)
		}
		out = append(out, v)
	}

	return out, nil
}
