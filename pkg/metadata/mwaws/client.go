// Package mwaws provides a metadata.Client implementation backed by the MWA
// metadata web service.
package mwaws

import (
	"context"
	"fmt"
	"io"
	"mwasens/pkg/domain"
	"mwasens/pkg/metadata"
	"mwasens/pkg/serrors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
)

// DefaultBaseURL is the public metadata service.
const DefaultBaseURL = "http://ws.mwatelescope.org"

// Client talks to the metadata service REST API and fulfills the
// metadata.Client interface. It is safe for concurrent use.
type Client struct {
	httpClient *http.Client // httpClient performs HTTP requests to the service
	baseURL    string       // baseURL is the service root, without trailing slash
}

// Observation fetches /metadata/obs for obsID and extracts the beamformer
// delays of the first receiver stream and the sweet spot gridpoint.
func (c *Client) Observation(ctx context.Context, obsID int64) (metadata.Observation, error) {
	u := c.baseURL + "/metadata/obs?" + url.Values{"obs_id": {strconv.FormatInt(obsID, 10)}}.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return metadata.Observation{}, fmt.Errorf("could not create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return metadata.Observation{}, serrors.Wrap(serrors.ErrUnavailable, err, "could not send request")
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return metadata.Observation{}, serrors.Wrap(serrors.ErrUnavailable, err, "could not read response body")
	}
	if resp.StatusCode == http.StatusNotFound {
		return metadata.Observation{}, serrors.With(serrors.ErrNotFound, "observation %d not found", obsID)
	}
	if resp.StatusCode >= 500 {
		return metadata.Observation{},
			serrors.With(serrors.ErrUnavailable, "metadata service failed: %s", strings.TrimSpace(string(b)))
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return metadata.Observation{}, fmt.Errorf("get observation failed: %s", strings.TrimSpace(string(b)))
	}

	obs, err := DecodeObservation(b)
	if err != nil {
		return metadata.Observation{}, serrors.Wrap(serrors.ErrBadInput, err, "could not decode observation %d", obsID)
	}
	obs.ObsID = obsID

	return obs, nil
}

// DecodeObservation reads rfstreams["0"].delays and metadata.gridpoint_number
// from an observation document. Other fields are skipped.
func DecodeObservation(b []byte) (metadata.Observation, error) {
	var (
		obs         = metadata.Observation{Gridpoint: -1}
		delays      []int
		haveStream0 bool
	)

	d := jx.DecodeBytes(b)
	err := d.Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "rfstreams":
			return d.Obj(func(d *jx.Decoder, stream string) error {
				if stream != "0" {
					return d.Skip()
				}
				haveStream0 = true

				return d.Obj(func(d *jx.Decoder, key string) error {
					if key != "delays" {
						return d.Skip()
					}
					var err error
					if delays, err = decodeInts(d); err != nil {
						return errors.Wrap(err, "delays")
					}

					return nil
				})
			})
		case "metadata":
			return d.Obj(func(d *jx.Decoder, key string) error {
				if key != "gridpoint_number" {
					return d.Skip()
				}
				if d.Next() == jx.Null {
					return d.Null()
				}
				n, err := d.Int()
				if err != nil {
					return errors.Wrap(err, "gridpoint_number")
				}
				obs.Gridpoint = n

				return nil
			})
		default:
			return d.Skip()
		}
	})
	if err != nil {
		return metadata.Observation{}, errors.Wrap(err, "decode observation")
	}
	if !haveStream0 {
		return metadata.Observation{}, errors.New(`rfstreams["0"] is missing`)
	}

	obs.Delays, err = domain.DelaysFromInts(delays)
	if err != nil {
		return metadata.Observation{}, errors.Wrap(err, "rfstreams delays")
	}

	return obs, nil
}

func decodeInts(d *jx.Decoder) ([]int, error) {
	var out []int
	err := d.Arr(func(d *jx.Decoder) error {
		v, err := d.Int()
		if err != nil {
			return err
		}
		out = append(out, v)

		return nil
	})

	return out, err
}

// Ensure Client conforms to the metadata.Client interface at compile time.
var _ metadata.Client = (*Client)(nil)

// New constructs a Client that uses the provided http.Client against baseURL.
// An empty baseURL selects DefaultBaseURL.
func New(httpClient *http.Client, baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}
