package observation_test

import (
	"context"
	"mwasens/internal/observation"
	mockcoords "mwasens/pkg/coords/mock"
	"mwasens/pkg/domain"
	"mwasens/pkg/metadata"
	mockmetadata "mwasens/pkg/metadata/mock"
	"mwasens/pkg/metafits"
	mockmetafits "mwasens/pkg/metafits/mock"
	"mwasens/pkg/serrors"
	"mwasens/pkg/sweetspot"
	mocksweetspot "mwasens/pkg/sweetspot/mock"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type mocks struct {
	coords    *mockcoords.MockConverter
	header    *mockmetafits.MockHeader
	metadata  *mockmetadata.MockClient
	sweetspot *mocksweetspot.MockTable
	opened    []string
}

func newResolver(t *testing.T) (*observation.Resolver, *mocks) {
	t.Helper()
	ctrl := gomock.NewController(t)
	m := &mocks{
		coords:    mockcoords.NewMockConverter(ctrl),
		header:    mockmetafits.NewMockHeader(ctrl),
		metadata:  mockmetadata.NewMockClient(ctrl),
		sweetspot: mocksweetspot.NewMockTable(ctrl),
	}
	open := func(path string) (metafits.Header, error) {
		m.opened = append(m.opened, path)

		return m.header, nil
	}

	return observation.NewResolver(m.coords, open, m.metadata, m.sweetspot), m
}

func ptr(v float64) *float64 { return &v }

var zenith = domain.Delays{} //nolint: gochecknoglobals

var east = domain.Delays{0, 1, 2, 3, 0, 1, 2, 3, 0, 1, 2, 3, 0, 1, 2, 3} //nolint: gochecknoglobals

func TestResolveExplicit(t *testing.T) {
	r, _ := newResolver(t)

	req := observation.NewRequest()
	req.GPS = 1234567890
	req.Channels = []float64{121, 145}
	req.AzimuthDeg = ptr(90)
	req.ZenithAngleDeg = ptr(10)
	req.Delays = east.String()

	got, err := r.Resolve(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, int64(1234567890), got.GPSTime)
	require.Equal(t, -1, got.Gridpoint)
	require.Equal(t, east, got.Delays)
	require.Equal(t, domain.Pointing{AzimuthDeg: 90, ZenithAngleDeg: 10}, got.Pointing)
	require.Len(t, got.FrequenciesHz, 2)
	require.InDelta(t, 154.88e6, got.FrequenciesHz[0], 1e-3)
	require.InDelta(t, 185.6e6, got.FrequenciesHz[1], 1e-3)
}

func TestResolveFrequencyWinsOverChannel(t *testing.T) {
	r, _ := newResolver(t)

	req := observation.NewRequest()
	req.GPS = 1
	req.FrequenciesMHz = []float64{150}
	req.Channels = []float64{121}

	got, err := r.Resolve(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, []float64{150e6}, got.FrequenciesHz)
	require.Equal(t, zenith, got.Delays)
}

func TestResolveElevationOverridesZenithAngle(t *testing.T) {
	r, _ := newResolver(t)

	req := observation.NewRequest()
	req.GPS = 1
	req.FrequenciesMHz = []float64{150}
	req.AzimuthDeg = ptr(0)
	req.ZenithAngleDeg = ptr(10)
	req.ElevationDeg = 60

	got, err := r.Resolve(context.Background(), req)
	require.NoError(t, err)
	require.InDelta(t, 30.0, got.Pointing.ZenithAngleDeg, 1e-12)
}

func TestResolveRADec(t *testing.T) {
	r, m := newResolver(t)
	m.coords.EXPECT().Horizontal(83.63, 22.01, int64(1234567890)).
		Return(domain.Pointing{AzimuthDeg: 12.5, ZenithAngleDeg: 40}, nil)

	req := observation.NewRequest()
	req.GPS = 1234567890
	req.FrequenciesMHz = []float64{150}
	req.RADeg = ptr(83.63)
	req.DecDeg = ptr(22.01)
	req.AzimuthDeg = ptr(1)

	got, err := r.Resolve(context.Background(), req)
	require.NoError(t, err)
	require.InDelta(t, 12.5, got.Pointing.AzimuthDeg, 0)
	require.InDelta(t, 40.0, got.Pointing.ZenithAngleDeg, 1e-12)
}

func TestResolveMetafits(t *testing.T) {
	r, m := newResolver(t)
	m.header.EXPECT().Float(metafits.KeyGPSTime).Return(0.0, serrors.With(serrors.ErrMissingField, "card not found"))
	m.header.EXPECT().Delays().Return(east, nil)
	m.header.EXPECT().Float(metafits.KeyAltitude).Return(70.0, nil)
	m.header.EXPECT().Float(metafits.KeyAzimuth).Return(90.0, nil)

	req := observation.NewRequest()
	req.Metafits = "/data/1234567890_metafits.fits"
	req.FrequenciesMHz = []float64{150}

	got, err := r.Resolve(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, []string{"/data/1234567890_metafits.fits"}, m.opened)
	require.Equal(t, int64(1234567890), got.GPSTime, "gps from the file name")
	require.Equal(t, east, got.Delays)
	require.InDelta(t, 90.0, got.Pointing.AzimuthDeg, 0)
	require.InDelta(t, 20.0, got.Pointing.ZenithAngleDeg, 1e-12)
}

func TestResolveMetafitsGPSTime(t *testing.T) {
	r, m := newResolver(t)
	m.header.EXPECT().Float(metafits.KeyGPSTime).Return(1234567896.0, nil)
	m.header.EXPECT().Delays().Return(zenith, nil)
	m.header.EXPECT().Float(metafits.KeyAltitude).Return(90.0, nil)
	m.header.EXPECT().Float(metafits.KeyAzimuth).Return(0.0, nil)

	req := observation.NewRequest()
	req.Metafits = "/data/1234567890_metafits.fits"
	req.FrequenciesMHz = []float64{150}

	got, err := r.Resolve(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, []string{"/data/1234567890_metafits.fits"}, m.opened, "header is read once")
	require.Equal(t, int64(1234567896), got.GPSTime, "header card wins over the file name")
}

func TestResolveMetafitsKeepsGivenPointing(t *testing.T) {
	r, m := newResolver(t)
	m.header.EXPECT().Delays().Return(east, nil)
	m.header.EXPECT().Float(metafits.KeyAzimuth).Return(0.0, serrors.With(serrors.ErrMissingField, "card not found"))

	req := observation.NewRequest()
	req.Metafits = "obs.metafits"
	req.GPS = 1000000000
	req.FrequenciesMHz = []float64{150}
	req.ZenithAngleDeg = ptr(5)

	got, err := r.Resolve(context.Background(), req)
	require.NoError(t, err)
	require.InDelta(t, 5.0, got.Pointing.ZenithAngleDeg, 0)
	require.InDelta(t, 0.0, got.Pointing.AzimuthDeg, 0, "missing card is ignored")
}

func TestResolveMetadataService(t *testing.T) {
	r, m := newResolver(t)
	m.metadata.EXPECT().Observation(gomock.Any(), int64(1234567890)).
		Return(metadata.Observation{ObsID: 1234567890, Delays: east, Gridpoint: 3}, nil)

	req := observation.NewRequest()
	req.GPS = 1234567890
	req.FrequenciesMHz = []float64{150}
	req.UseMetadata = true
	req.Gridpoint = 1

	got, err := r.Resolve(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, east, got.Delays)
	require.Equal(t, 3, got.Gridpoint)
}

func TestResolveGridpoint(t *testing.T) {
	r, m := newResolver(t)
	gp := sweetspot.Gridpoint{Number: 2, Pointing: domain.Pointing{AzimuthDeg: 90, ZenithAngleDeg: 6.8088}, Delays: east}
	m.sweetspot.EXPECT().Gridpoint(2).Return(gp, nil).Times(2)

	req := observation.NewRequest()
	req.GPS = 1
	req.FrequenciesMHz = []float64{150}
	req.Gridpoint = 2

	got, err := r.Resolve(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, 2, got.Gridpoint)
	require.Equal(t, east, got.Delays)
	require.Equal(t, gp.Pointing, got.Pointing, "pointing filled from the gridpoint")

	req.AzimuthDeg = ptr(45)
	got, err = r.Resolve(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, domain.Pointing{AzimuthDeg: 45}, got.Pointing, "given pointing is kept")
}

func TestResolveErrors(t *testing.T) {
	errService := serrors.With(serrors.ErrUnavailable, "service down")

	tests := []struct {
		name  string
		setup func(m *mocks, req *observation.Request)
		want  error
	}{
		{
			name: "no gps",
			setup: func(_ *mocks, req *observation.Request) {
				req.GPS = 0
			},
			want: serrors.ErrMissingField,
		},
		{
			name: "metafits name without obsid",
			setup: func(m *mocks, req *observation.Request) {
				req.GPS = 0
				req.Metafits = "/tmp/observation.fits"
				m.header.EXPECT().Float(metafits.KeyGPSTime).Return(0.0, serrors.With(serrors.ErrMissingField, "card not found"))
			},
			want: serrors.ErrBadInput,
		},
		{
			name: "metafits without delays",
			setup: func(m *mocks, req *observation.Request) {
				req.Metafits = "obs.metafits"
				m.header.EXPECT().Delays().Return(domain.Delays{}, serrors.With(serrors.ErrMissingField, "card not found"))
			},
			want: serrors.ErrMissingField,
		},
		{
			name: "malformed delays",
			setup: func(_ *mocks, req *observation.Request) {
				req.Delays = "1,2,3"
			},
			want: serrors.ErrBadInput,
		},
		{
			name: "no frequency",
			setup: func(_ *mocks, req *observation.Request) {
				req.FrequenciesMHz = nil
			},
			want: serrors.ErrMissingField,
		},
		{
			name: "unknown gridpoint",
			setup: func(m *mocks, req *observation.Request) {
				req.Gridpoint = 999
				m.sweetspot.EXPECT().Gridpoint(999).Return(sweetspot.Gridpoint{}, serrors.With(serrors.ErrNotFound, "no such gridpoint"))
			},
			want: serrors.ErrNotFound,
		},
		{
			name: "metadata service down",
			setup: func(m *mocks, req *observation.Request) {
				req.UseMetadata = true
				m.metadata.EXPECT().Observation(gomock.Any(), gomock.Any()).Return(metadata.Observation{}, errService)
			},
			want: serrors.ErrUnavailable,
		},
		{
			name: "coordinate conversion",
			setup: func(m *mocks, req *observation.Request) {
				req.RADeg, req.DecDeg = ptr(0), ptr(100)
				m.coords.EXPECT().Horizontal(0.0, 100.0, gomock.Any()).
					Return(domain.Pointing{}, serrors.With(serrors.ErrBadInput, "declination out of range"))
			},
			want: serrors.ErrBadInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, m := newResolver(t)
			req := observation.NewRequest()
			req.GPS = 1234567890
			req.FrequenciesMHz = []float64{150}
			tt.setup(m, &req)

			_, err := r.Resolve(context.Background(), req)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestParseList(t *testing.T) {
	got, err := observation.ParseList("150, 160.5,170")
	require.NoError(t, err)
	require.Equal(t, []float64{150, 160.5, 170}, got)

	got, err = observation.ParseList("  ")
	require.NoError(t, err)
	require.Nil(t, got)

	_, err = observation.ParseList("150,abc")
	require.ErrorIs(t, err, serrors.ErrBadInput)
}
