package stats

import (
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Uniformity is the chi-square test of gap positions against a uniform
// spread over the scan window.
type Uniformity struct {
	BinWidth int
	Counts   []float64
	ChiSq    float64
	PValue   float64
	DoF      int
}

// TestUniformity bins all gaps into ten equal slices of the window and
// tests against the flat expectation. A gap equal to the radius itself
// lands in the last bin.
func TestUniformity(d *Dataset, radius int) Uniformity {
	const bins = 10
	width := radius / bins

	counts := make([]float64, bins)
	for _, g := range d.AllGaps {
		idx := g / width
		if idx >= bins {
			idx = bins - 1
		}
		counts[idx]++
	}

	expected := make([]float64, bins)
	per := float64(len(d.AllGaps)) / float64(bins)
	for i := range expected {
		expected[i] = per
	}

	chi := stat.ChiSquare(counts, expected)
	dof := bins - 1
	p := distuv.ChiSquared{K: float64(dof)}.Survival(chi)

	return Uniformity{
		BinWidth: width,
		Counts:   counts,
		ChiSq:    chi,
		PValue:   p,
		DoF:      dof,
	}
}
