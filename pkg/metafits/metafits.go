package metafits

import (
	"fmt"
	"io"
	"mwasens/pkg/domain"
	"mwasens/pkg/serrors"
	"os"
	"strconv"
	"strings"

	"github.com/astrogo/fitsio"
	"github.com/go-faster/errors"
)

// Header card names used by the calculators.
const (
	KeyDelays   = "DELAYS"
	KeyAzimuth  = "AZIMUTH"
	KeyAltitude = "ALTITUDE"
	KeyGPSTime  = "GPSTIME"
)

// File is the primary header of a metafits file.
type File struct {
	hdr *fitsio.Header
}

// Ensure File conforms to the Header interface at compile time.
var _ Header = (*File)(nil)

// Read parses the primary header from r.
func Read(r io.Reader) (*File, error) {
	f, err := fitsio.Open(r)
	if err != nil {
		return nil, serrors.Wrap(serrors.ErrBadInput, err, "could not parse FITS file")
	}
	defer func() {
		_ = f.Close()
	}()

	return &File{hdr: f.HDU(0).Header()}, nil
}

// Open reads the primary header of the file at path.
func Open(path string) (*File, error) {
	fd, err := os.Open(path) //nolint: gosec
	if err != nil {
		return nil, fmt.Errorf("could not open metafits file: %w", err)
	}
	defer func() {
		_ = fd.Close()
	}()

	return Read(fd)
}

// OpenHeader adapts Open to an Opener.
func OpenHeader(path string) (Header, error) {
	f, err := Open(path)
	if err != nil {
		return nil, err
	}

	return f, nil
}

// Delays implements Header.
func (f *File) Delays() (domain.Delays, error) {
	card := f.hdr.Get(KeyDelays)
	if card == nil {
		return domain.Delays{}, serrors.With(serrors.ErrMissingField, "cannot find %s in metafits header", KeyDelays)
	}

	var s string
	switch v := card.Value.(type) {
	case string:
		s = v
	case int:
		s = strconv.Itoa(v)
	case int64:
		s = strconv.FormatInt(v, 10)
	default:
		return domain.Delays{}, serrors.With(serrors.ErrBadInput, "%s has unexpected type %T", KeyDelays, v)
	}

	d, err := domain.ParseDelays(strings.TrimSpace(s))
	if err != nil {
		return domain.Delays{}, errors.Wrap(err, "metafits "+KeyDelays)
	}

	return d, nil
}

// Float implements Header.
func (f *File) Float(key string) (float64, error) {
	card := f.hdr.Get(key)
	if card == nil {
		return 0, serrors.With(serrors.ErrMissingField, "cannot find %s in metafits header", key)
	}

	switch v := card.Value.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case string:
		x, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, serrors.Wrap(serrors.ErrBadInput, err, "could not parse %s", key)
		}

		return x, nil
	default:
		return 0, serrors.With(serrors.ErrBadInput, "%s has unexpected type %T", key, v)
	}
}
