package stats

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// densityEdges bound the base-size windows of the density comparison,
// 50 to 200 billion in 25-billion steps.
var densityEdges = []int64{
	50_000_000_000, 75_000_000_000, 100_000_000_000, 125_000_000_000,
	150_000_000_000, 175_000_000_000, 200_000_000_000,
}

// DensityRow compares mean satellites per star in one base-size window
// against the Cramér expectation radius/ln(P).
type DensityRow struct {
	Lo, Hi   int64
	Stars    int
	Observed float64
	Cramer   float64
	Ratio    float64
}

// Density is the satellite density versus base size comparison. Windows
// holding no stars are omitted.
type Density struct {
	Rows []DensityRow
}

// DensityByBase evaluates every populated window.
func DensityByBase(d *Dataset, radius int) Density {
	var rows []DensityRow
	for i := 0; i+1 < len(densityEdges); i++ {
		lo, hi := densityEdges[i], densityEdges[i+1]

		var digitSum []float64
		var satCounts []float64
		for j, star := range d.Stars {
			if star >= lo && star < hi {
				digitSum = append(digitSum, digits(star))
				satCounts = append(satCounts, float64(d.SatsPerStar[j]))
			}
		}
		if len(digitSum) == 0 {
			continue
		}

		dMean := stat.Mean(digitSum, nil)
		cramer := float64(radius) / (dMean * math.Ln10)
		obs := stat.Mean(satCounts, nil)
		rows = append(rows, DensityRow{
			Lo:       lo,
			Hi:       hi,
			Stars:    len(digitSum),
			Observed: obs,
			Cramer:   cramer,
			Ratio:    obs / cramer,
		})
	}
	return Density{Rows: rows}
}
