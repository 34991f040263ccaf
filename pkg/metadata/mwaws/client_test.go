package mwaws_test

import (
	"context"
	"errors"
	"io"
	"mwasens/pkg/domain"
	"mwasens/pkg/metadata/mwaws"
	"mwasens/pkg/serrors"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// rtFunc allows using a function as an http.RoundTripper.
type rtFunc func(*http.Request) (*http.Response, error)

func (f rtFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func newTestClient(fn rtFunc) *mwaws.Client {
	return mwaws.New(&http.Client{Transport: fn}, "http://ws.example.org/")
}

//nolint: lll
const observationDoc = `{
  "obsname": "high_season1_2456545",
  "starttime": 1063003968,
  "rfstreams": {
    "0": {"azimuth": 0.0, "elevation": 90.0, "delays": [0, 1, 2, 3, 0, 1, 2, 3, 0, 1, 2, 3, 0, 1, 2, 3], "frequencies": [133, 134]},
    "1": {"delays": [9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9]}
  },
  "metadata": {"gridpoint_name": "sweet", "gridpoint_number": 2, "sky_temp": null}
}`

func TestClient_Observation_success(t *testing.T) {
	c := newTestClient(func(r *http.Request) (*http.Response, error) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "ws.example.org", r.URL.Host)
		require.Equal(t, "/metadata/obs", r.URL.Path)
		require.Equal(t, "1063003968", r.URL.Query().Get("obs_id"))

		return &http.Response{StatusCode: http.StatusOK, Body: io.NopCloser(strings.NewReader(observationDoc))}, nil
	})

	obs, err := c.Observation(context.Background(), 1063003968)
	require.NoError(t, err)
	require.Equal(t, int64(1063003968), obs.ObsID)
	require.Equal(t, 2, obs.Gridpoint)
	require.Equal(t, domain.Delays{0, 1, 2, 3, 0, 1, 2, 3, 0, 1, 2, 3, 0, 1, 2, 3}, obs.Delays)
}

func TestClient_Observation_404(t *testing.T) {
	c := newTestClient(func(r *http.Request) (*http.Response, error) {
		return &http.Response{StatusCode: http.StatusNotFound, Body: io.NopCloser(strings.NewReader("no such obs"))}, nil
	})

	_, err := c.Observation(context.Background(), 1)
	require.ErrorIs(t, err, serrors.ErrNotFound)
}

func TestClient_Observation_5xx(t *testing.T) {
	c := newTestClient(func(r *http.Request) (*http.Response, error) {
		return &http.Response{StatusCode: http.StatusBadGateway, Body: io.NopCloser(strings.NewReader("upstream bad"))}, nil
	})

	_, err := c.Observation(context.Background(), 1)
	require.ErrorIs(t, err, serrors.ErrUnavailable)
	require.Contains(t, err.Error(), "upstream bad")
}

func TestClient_Observation_4xx(t *testing.T) {
	c := newTestClient(func(r *http.Request) (*http.Response, error) {
		return &http.Response{StatusCode: http.StatusBadRequest, Body: io.NopCloser(strings.NewReader("bad obs_id"))}, nil
	})

	_, err := c.Observation(context.Background(), 1)
	require.Error(t, err)
	require.Contains(t, err.Error(), "bad obs_id")
	require.Nil(t, serrors.KindOf(err))
}

func TestClient_Observation_transportError(t *testing.T) {
	boom := errors.New("connection refused")
	c := newTestClient(func(r *http.Request) (*http.Response, error) {
		return nil, boom
	})

	_, err := c.Observation(context.Background(), 1)
	require.ErrorIs(t, err, serrors.ErrUnavailable)
	require.ErrorIs(t, err, boom)
}

func TestClient_Observation_badBody(t *testing.T) {
	c := newTestClient(func(r *http.Request) (*http.Response, error) {
		return &http.Response{StatusCode: http.StatusOK, Body: io.NopCloser(strings.NewReader(`{"rfstreams": [`))}, nil
	})

	_, err := c.Observation(context.Background(), 1)
	require.ErrorIs(t, err, serrors.ErrBadInput)
}

func TestDecodeObservation(t *testing.T) {
	tests := []struct {
		name          string
		in            string
		wantGridpoint int
		wantErr       bool
	}{
		{
			name:          "null gridpoint",
			in:            `{"rfstreams":{"0":{"delays":[0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0]}},"metadata":{"gridpoint_number":null}}`,
			wantGridpoint: -1,
		},
		{
			name:          "no metadata block",
			in:            `{"rfstreams":{"0":{"delays":[0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0]}}}`,
			wantGridpoint: -1,
		},
		{name: "missing stream 0", in: `{"rfstreams":{"1":{"delays":[]}}}`, wantErr: true},
		{name: "short delays", in: `{"rfstreams":{"0":{"delays":[1,2]}}}`, wantErr: true},
		{name: "non integer delay", in: `{"rfstreams":{"0":{"delays":["a"]}}}`, wantErr: true},
		{name: "not an object", in: `[]`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obs, err := mwaws.DecodeObservation([]byte(tt.in))
			if tt.wantErr {
				require.Error(t, err)

				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantGridpoint, obs.Gridpoint)
		})
	}
}

func TestNew_defaultBaseURL(t *testing.T) {
	var host string
	c := mwaws.New(&http.Client{Transport: rtFunc(func(r *http.Request) (*http.Response, error) {
		host = r.URL.Host

		return &http.Response{StatusCode: http.StatusNotFound, Body: io.NopCloser(strings.NewReader(""))}, nil
	})}, "")

	_, _ = c.Observation(context.Background(), 1)
	require.Equal(t, "ws.mwatelescope.org", host)
}
