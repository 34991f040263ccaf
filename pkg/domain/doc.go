// Package domain contains the value types shared by the calculators:
// observing configuration, pointing, beamformer delays and the per-step
// sensitivity and threshold results. They carry no infrastructure concerns so
// that beam models, report writers and sweep drivers can all depend on them.
package domain
