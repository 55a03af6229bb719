package stats

import (
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// PoissonRow compares observed star counts against the corrected Poisson
// expectation for one satellite multiplicity k.
type PoissonRow struct {
	K        int
	Observed int
	Expected float64
	Ratio    float64
}

// PoissonFit is the paper's corrected Poisson model. The catalog only
// records stars with at least one satellite; the zero-satellite stars are
// recovered from the naive rate, then the rate is re-estimated over the
// inferred true population.
type PoissonFit struct {
	LambdaNaive     float64
	PZero           float64
	NTrue           int
	NZero           int
	LambdaCorrected float64
	Dispersion      float64
	Rows            []PoissonRow
}

// FitPoisson carries out the zero-recovery fit over multiplicities 0..14.
func FitPoisson(d *Dataset) PoissonFit {
	counts := make([]float64, len(d.SatsPerStar))
	for i, c := range d.SatsPerStar {
		counts[i] = float64(c)
	}

	lamNaive := stat.Mean(counts, nil)
	pZero := math.Exp(-lamNaive)
	nTrue := int(math.Round(float64(d.NWith) / (1 - pZero)))
	nZero := nTrue - d.NWith
	lamCorr := float64(len(d.AllGaps)) / float64(nTrue)

	// Population variance over the counts with the inferred zeros restored.
	// The restored list has nTrue entries and mean lamCorr.
	var ss float64
	ss += float64(nZero) * lamCorr * lamCorr
	for _, c := range counts {
		dev := c - lamCorr
		ss += dev * dev
	}
	dispersion := (ss / float64(nTrue)) / lamCorr

	dist := distuv.Poisson{Lambda: lamCorr}
	rows := make([]PoissonRow, 0, 15)
	for k := 0; k < 15; k++ {
		obs := nZero
		if k > 0 {
			obs = 0
			for _, c := range d.SatsPerStar {
				if c == k {
					obs++
				}
			}
		}
		expected := float64(nTrue) * dist.Prob(float64(k))
		ratio := 0.0
		if expected > 0 {
			ratio = float64(obs) / expected
		}
		rows = append(rows, PoissonRow{K: k, Observed: obs, Expected: expected, Ratio: ratio})
	}

	return PoissonFit{
		LambdaNaive:     lamNaive,
		PZero:           pZero,
		NTrue:           nTrue,
		NZero:           nZero,
		LambdaCorrected: lamCorr,
		Dispersion:      dispersion,
		Rows:            rows,
	}
}
