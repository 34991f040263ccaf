package report

import (
	"bufio"
	"fmt"
	"io"
	"mwasens/pkg/domain"
)

// FRBFileName is the name of the threshold table for one sigma level.
func FRBFileName(channels int, freqMHz, sigma float64) string {
	return fmt.Sprintf("sens_nchan%d_freq%.2fMHz_%.1fsigma.txt", channels, freqMHz, sigma)
}

// WriteFRB writes one line per row:
// inttime_ms limit_Jyms per_day per_year sens_mJy n_sigma.
func WriteFRB(w io.Writer, rows []domain.ThresholdResult) error {
	bw := bufio.NewWriter(w)
	for _, r := range rows {
		if _, err := fmt.Fprintf(bw, "%.0f %.2f %.5f %.5f %.2f %.1f\n",
			r.IntTimeMs, r.LimitJyMs, r.RatePerSkyDay, r.RatePerSkyYear, r.SensitivityMJy, r.Sigma); err != nil {
			return fmt.Errorf("could not write row: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("could not flush rows: %w", err)
	}

	return nil
}
