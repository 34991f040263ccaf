package sensitivity_test

import (
	"context"
	"errors"
	"math"
	"mwasens/internal/config"
	"mwasens/internal/sensitivity"
	"mwasens/pkg/beam"
	mockbeam "mwasens/pkg/beam/mock"
	"mwasens/pkg/domain"
	"mwasens/pkg/serrors"
	"mwasens/pkg/trcv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"gonum.org/v1/gonum/floats/scalar"
)

func defaultOptions(t *testing.T) sensitivity.Options {
	t.Helper()
	cfg, err := config.Load("")
	require.NoError(t, err)

	return sensitivity.NewOptions(cfg)
}

func integral(tant, solidAngle float64) beam.Integral {
	return beam.Integral{BeamSkySum: tant * 10, BeamSum: 10, AntennaTempK: tant, SolidAngleSr: solidAngle}
}

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(o *sensitivity.Options)
		wantErr bool
	}{
		{name: "defaults", mutate: func(*sensitivity.Options) {}},
		{name: "full embedded element name", mutate: func(o *sensitivity.Options) { o.Model = "full_EE" }},
		{name: "year name", mutate: func(o *sensitivity.Options) { o.Model = "2016" }},
		{name: "unknown model", mutate: func(o *sensitivity.Options) { o.Model = "gaussian" }, wantErr: true},
		{name: "no plot", mutate: func(o *sensitivity.Options) { o.PlotType = sensitivity.PlotNone }},
		{name: "unknown plot type", mutate: func(o *sensitivity.Options) { o.PlotType = "contour" }, wantErr: true},
		{name: "zero inttime", mutate: func(o *sensitivity.Options) { o.IntTime = 0 }, wantErr: true},
		{name: "no antennas", mutate: func(o *sensitivity.Options) { o.Antennas = 0 }},
		{name: "folding disabled", mutate: func(o *sensitivity.Options) { o.Pulsar.PhaseBins = 0 }},
		{name: "zero pulse width", mutate: func(o *sensitivity.Options) { o.Pulsar.PulseWidthS = 0 }},
		{name: "negative mean flux", mutate: func(o *sensitivity.Options) { o.Pulsar.MeanFluxJy = -1 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := defaultOptions(t)
			tt.mutate(&o)
			err := o.Validate()
			if tt.wantErr {
				require.ErrorIs(t, err, serrors.ErrBadInput)

				return
			}
			require.NoError(t, err)
		})
	}
}

func TestOptionsDefaults(t *testing.T) {
	o := defaultOptions(t)
	require.Equal(t, sensitivity.ModelAnalytic, o.Model)
	require.Equal(t, "beamsky", o.PlotType)
	require.Equal(t, 120*time.Second, o.IntTime)
	require.Equal(t, 128, o.Antennas)
	require.True(t, o.Coherent())
	require.True(t, o.ZenithNorm)
	require.NotNil(t, o.BeamModel(context.Background()))
}

func TestCalculatorCalculate(t *testing.T) {
	ctrl := gomock.NewController(t)
	model := mockbeam.NewMockModel(ctrl)

	delays := domain.Delays{3, 2, 1, 0, 3, 2, 1, 0, 3, 2, 1, 0, 3, 2, 1, 0}
	pointing := domain.Pointing{AzimuthDeg: 270, ZenithAngleDeg: 6.8}
	o := defaultOptions(t)

	model.EXPECT().SkyIntegral(gomock.Any(), int64(1234567890), delays, 150e6).
		Return(domain.PolPair[beam.Integral]{XX: integral(200, 4*math.Pi/100), YY: integral(220, 4*math.Pi/50)}, nil)
	model.EXPECT().Power(gomock.Any(), delays, 150e6, pointing).
		Return(domain.PolPair[float64]{XX: 1, YY: 0.9}, nil)

	c := sensitivity.NewCalculator(model, trcv.Fixed(50), delays, pointing, o)
	got, err := c.Calculate(context.Background(), 150e6, 1234567890)
	require.NoError(t, err)

	require.InDelta(t, 150.0, got.FrequencyMHz(), 1e-12)
	require.Equal(t, int64(1234567890), got.GPSTime)
	require.InDelta(t, 50.0, got.ReceiverTempK, 0)

	xx := got.Pol.XX
	require.InDelta(t, 100.0, xx.Gain, 1e-9)
	require.InDelta(t, 7161.97/22500*100, xx.EffectiveAreaM2, 1e-9)
	require.InDelta(t, 250.0, xx.SystemTempK, 0)
	require.InDelta(t, xx.EffectiveAreaM2/250, xx.AOverT, 1e-12)
	require.InDelta(t, 2760/xx.AOverT, xx.SEFDJy, 1e-6)
	require.InDelta(t, sensitivity.Noise(xx.SEFDJy, 1.28e6, 120, 128, true), xx.NoiseJy, 1e-12)

	yy := got.Pol.YY
	require.InDelta(t, 45.0, yy.Gain, 1e-9)
	require.InDelta(t, 270.0, yy.SystemTempK, 0)
	require.InDelta(t, 0.9, yy.BeamPower, 0)

	require.InDelta(t, sensitivity.StokesI(xx.NoiseJy, yy.NoiseJy), got.StokesINoiseJy, 1e-15)
	require.InDelta(t, sensitivity.StokesI(xx.SEFDJy, yy.SEFDJy), got.StokesISEFDJy, 1e-9)
}

func TestCalculatorErrors(t *testing.T) {
	errBeam := errors.New("beam failure")

	tests := []struct {
		name  string
		setup func(m *mockbeam.MockModel)
	}{
		{
			name: "sky integral",
			setup: func(m *mockbeam.MockModel) {
				m.EXPECT().SkyIntegral(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(domain.PolPair[beam.Integral]{}, errBeam)
			},
		},
		{
			name: "power",
			setup: func(m *mockbeam.MockModel) {
				m.EXPECT().SkyIntegral(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(domain.PolPair[beam.Integral]{}, nil)
				m.EXPECT().Power(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(domain.PolPair[float64]{}, errBeam)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			model := mockbeam.NewMockModel(ctrl)
			tt.setup(model)

			c := sensitivity.NewCalculator(model, trcv.Fixed(50), domain.Delays{}, domain.Pointing{}, defaultOptions(t))
			_, err := c.Calculate(context.Background(), 150e6, 0)
			require.ErrorIs(t, err, errBeam)
		})
	}
}

func TestCalculatorAnalyticZenith(t *testing.T) {
	o := defaultOptions(t)
	o.Resolution = 30
	o.Model = "2016"
	receiver, err := trcv.New(trcv.NameUng2020, 0)
	require.NoError(t, err)

	c := sensitivity.NewCalculator(o.BeamModel(context.Background()), receiver, domain.Delays{}, domain.Pointing{}, o)
	got, err := c.Calculate(context.Background(), 150e6, 1234567890)
	require.NoError(t, err)

	// the analytic tile is symmetric at zenith
	require.True(t, scalar.EqualWithinRel(got.Pol.XX.EffectiveAreaM2, got.Pol.YY.EffectiveAreaM2, 1e-6))
	require.Greater(t, got.Pol.XX.EffectiveAreaM2, 15.0)
	require.Less(t, got.Pol.XX.EffectiveAreaM2, 30.0)
	require.Greater(t, got.Pol.XX.NoiseJy, 0.0)
}
