package domain

// PolSensitivity is the radiometer result for one polarization at one step.
type PolSensitivity struct {
	// AntennaTempK is the beam-weighted sky temperature seen by the tile.
	AntennaTempK float64
	// BeamPower is the (zenith-normalised) beam response towards the pointing.
	BeamPower float64
	// Gain is the directive gain derived from BeamPower and the beam solid angle.
	Gain float64
	// EffectiveAreaM2 is A_eff in m^2.
	EffectiveAreaM2 float64
	// SystemTempK is T_ant + T_rcv.
	SystemTempK float64
	// AOverT is A_eff/T_sys in m^2/K.
	AOverT float64
	// SEFDJy is the system equivalent flux density in Jy.
	SEFDJy float64
	// NoiseJy is the radiometer noise for the configured combination mode.
	NoiseJy float64
}

// SensitivityResult is the outcome of one (frequency, gps) step of the sweep.
type SensitivityResult struct {
	FrequencyHz   float64
	GPSTime       int64
	ReceiverTempK float64
	Pol           PolPair[PolSensitivity]

	// StokesINoiseJy and StokesISEFDJy combine XX and YY in quadrature.
	StokesINoiseJy float64
	StokesISEFDJy  float64
}

// FrequencyMHz returns the step frequency in MHz.
func (r SensitivityResult) FrequencyMHz() float64 {
	return r.FrequencyHz / 1e6
}

// FRBLimit is a fluence detection limit at a given significance.
type FRBLimit struct {
	Sigma        float64
	FluenceJyMs  float64
	IntegratedMs float64
}

// PulsarEstimate holds derived pulsar detection figures for one step.
type PulsarEstimate struct {
	PeakFluxJy       float64
	SinglePulseSNR   float64
	PhaseBins        int
	PerBinNoiseJy    float64
	TotalTimeNoiseJy float64
	FoldedSNR        float64
}

// ThresholdResult is one row of the FRB rate report.
type ThresholdResult struct {
	IntTimeMs      float64
	Sigma          float64
	SensitivityMJy float64
	LimitJyMs      float64
	RatePerSkyDay  float64
	RatePerSkyYear float64
}
