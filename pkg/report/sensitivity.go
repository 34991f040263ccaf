package report

import (
	"bufio"
	"fmt"
	"io"
	"mwasens/pkg/domain"
	"os"
	"path/filepath"
)

// SensitivityHeader is the first line of every per-polarization table.
const SensitivityHeader = "# FREQ[MHz] A/T[m^2/K] T_sys[K] A_eff[m^2] T_rcv[K] Image_Noise[Jy] Beam"

// SensitivityWriter streams sweep results into one table per polarization.
// Tables made by CreateSensitivity are written to temporary files and only
// appear under their final names after Commit.
type SensitivityWriter struct {
	out       domain.PolPair[*bufio.Writer]
	files     domain.PolPair[*os.File]
	paths     domain.PolPair[string]
	rows      int
	committed bool
}

// NewSensitivityWriter writes the header to xx and yy and returns a writer
// appending rows to them.
func NewSensitivityWriter(xx, yy io.Writer) (*SensitivityWriter, error) {
	w := &SensitivityWriter{out: domain.PolPair[*bufio.Writer]{XX: bufio.NewWriter(xx), YY: bufio.NewWriter(yy)}}
	for _, p := range domain.Polarizations {
		if _, err := fmt.Fprintln(w.out.Get(p), SensitivityHeader); err != nil {
			return nil, fmt.Errorf("could not write %s header: %w", p, err)
		}
	}

	return w, nil
}

// CreateSensitivity prepares <prefix>_XX.txt and <prefix>_YY.txt. Nothing is
// visible under those names until Commit succeeds.
func CreateSensitivity(prefix string) (*SensitivityWriter, error) {
	dir, base := filepath.Dir(prefix), filepath.Base(prefix)

	var files domain.PolPair[*os.File]
	for _, p := range domain.Polarizations {
		f, err := os.CreateTemp(dir, base+"_"+string(p)+".*.tmp")
		if err != nil {
			discard(files)

			return nil, fmt.Errorf("could not create output file: %w", err)
		}
		files.Set(p, f)
	}

	w, err := NewSensitivityWriter(files.XX, files.YY)
	if err != nil {
		discard(files)

		return nil, err
	}
	w.files = files
	w.paths = domain.PolPair[string]{XX: prefix + "_XX.txt", YY: prefix + "_YY.txt"}

	return w, nil
}

// Write appends one row per polarization.
func (w *SensitivityWriter) Write(r domain.SensitivityResult) error {
	for _, p := range domain.Polarizations {
		ps := r.Pol.Get(p)
		if _, err := fmt.Fprintf(w.out.Get(p), "%.8f %.8f %.2f %.8f %.8f %.8f %.8f\n",
			r.FrequencyMHz(), ps.AOverT, ps.SystemTempK, ps.EffectiveAreaM2, r.ReceiverTempK, ps.NoiseJy,
			ps.BeamPower); err != nil {
			return fmt.Errorf("could not write %s row: %w", p, err)
		}
	}
	w.rows++

	return nil
}

// Rows returns the number of rows written to each table.
func (w *SensitivityWriter) Rows() int { return w.rows }

// Paths returns the file paths when the writer was made by CreateSensitivity.
func (w *SensitivityWriter) Paths() domain.PolPair[string] { return w.paths }

// Commit flushes both tables and moves the files made by CreateSensitivity
// to their final paths.
func (w *SensitivityWriter) Commit() error {
	for _, p := range domain.Polarizations {
		if err := w.out.Get(p).Flush(); err != nil {
			return fmt.Errorf("could not flush %s table: %w", p, err)
		}
	}
	if w.files.XX == nil {
		w.committed = true

		return nil
	}
	for _, p := range domain.Polarizations {
		f := w.files.Get(p)
		if err := f.Chmod(0o644); err != nil {
			return fmt.Errorf("could not set %s table mode: %w", p, err)
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("could not close output file: %w", err)
		}
	}
	for _, p := range domain.Polarizations {
		if err := os.Rename(w.files.Get(p).Name(), w.paths.Get(p)); err != nil {
			return fmt.Errorf("could not move %s table into place: %w", p, err)
		}
	}
	w.committed = true

	return nil
}

// Close releases the writer. Tables that were not committed are removed.
func (w *SensitivityWriter) Close() error {
	if w.committed || w.files.XX == nil {
		return nil
	}
	discard(w.files)

	return nil
}

func discard(files domain.PolPair[*os.File]) {
	for _, p := range domain.Polarizations {
		if f := files.Get(p); f != nil {
			_ = f.Close()
			_ = os.Remove(f.Name())
		}
	}
}
