package stats

import (
	"fmt"

	"satradar/internal/catalog"
)

// Summary bundles all six analyses over one catalog.
type Summary struct {
	Dataset    *Dataset
	Radius     int
	Poisson    PoissonFit
	Uniformity Uniformity
	Residues   Residues
	Spacing    Spacing
	Hardy      HardyLittlewood
	Density    Density
}

// Analyze runs the full battery. The radius is the scan window the
// catalog was gathered with; it fixes the uniformity bins, the Cramér
// density expectation, and the singular-series sieve bound.
func Analyze(sats []catalog.Satellite, radius int) (*Summary, error) {
	if radius < 10 {
		return nil, fmt.Errorf("radius %d too small to analyze", radius)
	}

	ds, err := NewDataset(sats)
	if err != nil {
		return nil, err
	}

	poisson := FitPoisson(ds)
	spacing := NearestCDF(ds)

	return &Summary{
		Dataset:    ds,
		Radius:     radius,
		Poisson:    poisson,
		Uniformity: TestUniformity(ds, radius),
		Residues:   CountResidues(ds),
		Spacing:    spacing,
		Hardy:      ConditionalHL(ds, poisson.NTrue, spacing.MeanLnP, radius),
		Density:    DensityByBase(ds, radius),
	}, nil
}
