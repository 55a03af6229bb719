package stats

import "math"

// cdfThresholds are the nearest-satellite distances tabulated in the paper.
var cdfThresholds = []int{50, 100, 200, 500, 1000, 2000, 3000}

// SpacingRow compares the observed nearest-satellite CDF at one threshold
// against the Cramér exponential prediction.
type SpacingRow struct {
	Threshold int
	Cramer    float64
	Observed  float64
	Ratio     float64
}

// Spacing is the nearest-satellite distance distribution. The Cramér
// model treats the three admissible gap classes out of each six as
// independent prime chances, giving rate 1/(3 ln P).
type Spacing struct {
	MeanLnP float64
	Rows    []SpacingRow
}

// NearestCDF evaluates the spacing comparison at the paper's thresholds.
func NearestCDF(d *Dataset) Spacing {
	minGaps := d.MinGaps()
	lnP := d.MeanLnP()

	rows := make([]SpacingRow, 0, len(cdfThresholds))
	for _, thresh := range cdfThresholds {
		within := 0
		for _, g := range minGaps {
			if g <= thresh {
				within++
			}
		}
		obs := float64(within) / float64(d.NWith)
		cramer := 1 - math.Exp(-float64(thresh)/(3*lnP))
		ratio := 0.0
		if cramer > 0 {
			ratio = obs / cramer
		}
		rows = append(rows, SpacingRow{
			Threshold: thresh,
			Cramer:    cramer,
			Observed:  obs,
			Ratio:     ratio,
		})
	}

	return Spacing{MeanLnP: lnP, Rows: rows}
}
