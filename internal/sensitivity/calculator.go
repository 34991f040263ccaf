package sensitivity

import (
	"context"
	"fmt"
	"mwasens/pkg/beam"
	"mwasens/pkg/domain"
	"mwasens/pkg/trcv"
)

// Calculator evaluates the radiometer figures of one tile pointing.
type Calculator struct {
	beam     beam.Model
	receiver trcv.Model
	delays   domain.Delays
	pointing domain.Pointing
	options  Options
}

// NewCalculator returns a calculator for tiles steered with delays, quoting
// the sensitivity towards pointing.
func NewCalculator(model beam.Model, receiver trcv.Model, delays domain.Delays, pointing domain.Pointing, options Options) *Calculator {
	return &Calculator{
		beam:     model,
		receiver: receiver,
		delays:   delays,
		pointing: pointing,
		options:  options,
	}
}

// Calculate returns the sensitivity at freqHz for the sky at gps.
func (c *Calculator) Calculate(ctx context.Context, freqHz float64, gps int64) (domain.SensitivityResult, error) {
	integral, err := c.beam.SkyIntegral(ctx, gps, c.delays, freqHz)
	if err != nil {
		return domain.SensitivityResult{}, fmt.Errorf("could not integrate beam over the sky: %w", err)
	}
	power, err := c.beam.Power(ctx, c.delays, freqHz, c.pointing)
	if err != nil {
		return domain.SensitivityResult{}, fmt.Errorf("could not get beam power: %w", err)
	}

	freqMHz := freqHz / 1e6
	res := domain.SensitivityResult{
		FrequencyHz:   freqHz,
		GPSTime:       gps,
		ReceiverTempK: c.receiver.Temperature(freqMHz),
	}
	res.Pol.XX = c.polarization(freqMHz, res.ReceiverTempK, integral.XX, power.XX)
	res.Pol.YY = c.polarization(freqMHz, res.ReceiverTempK, integral.YY, power.YY)
	res.StokesINoiseJy = StokesI(res.Pol.XX.NoiseJy, res.Pol.YY.NoiseJy)
	res.StokesISEFDJy = StokesI(res.Pol.XX.SEFDJy, res.Pol.YY.SEFDJy)

	return res, nil
}

func (c *Calculator) polarization(freqMHz, trcvK float64, in beam.Integral, power float64) domain.PolSensitivity {
	gain := Gain(power, in.SolidAngleSr)
	aeff := EffectiveArea(freqMHz, gain)
	tsys := SystemTemperature(in.AntennaTempK, trcvK)
	aot := AOverT(aeff, tsys)
	sefd := SEFD(aot)

	return domain.PolSensitivity{
		AntennaTempK:    in.AntennaTempK,
		BeamPower:       power,
		Gain:            gain,
		EffectiveAreaM2: aeff,
		SystemTempK:     tsys,
		AOverT:          aot,
		SEFDJy:          sefd,
		NoiseJy:         Noise(sefd, c.options.BandwidthHz, c.options.IntTime.Seconds(), c.options.Antennas, c.options.Coherent()),
	}
}
