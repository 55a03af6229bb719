package stats

import (
	"math"
	"testing"

	"satradar/internal/catalog"
)

func TestNearestCDF(t *testing.T) {
	// Two stars of equal size, nearest satellites at 40 and 2000.
	ds, err := NewDataset([]catalog.Satellite{
		{Star: 1_000_000_000, Gap: 40},
		{Star: 1_000_000_000, Gap: 300},
		{Star: 1_000_000_001, Gap: 2000},
	})
	if err != nil {
		t.Fatal(err)
	}

	sp := NearestCDF(ds)

	almostEqual(t, "MeanLnP", sp.MeanLnP, 415*math.Ln10, 1e-9)

	if len(sp.Rows) != 7 {
		t.Fatalf("Rows has %d entries, want 7", len(sp.Rows))
	}

	wantObs := map[int]float64{
		50:   0.5,
		100:  0.5,
		200:  0.5,
		500:  0.5,
		1000: 0.5,
		2000: 1.0,
		3000: 1.0,
	}
	for _, row := range sp.Rows {
		almostEqual(t, "Observed", row.Observed, wantObs[row.Threshold], 1e-12)
	}

	// Cramér CDF: 1 - exp(-k / (3 ln P)), increasing in k.
	lnP := 415 * math.Ln10
	almostEqual(t, "Cramer(50)", sp.Rows[0].Cramer, 1-math.Exp(-50/(3*lnP)), 1e-12)
	for i := 1; i < len(sp.Rows); i++ {
		if sp.Rows[i].Cramer <= sp.Rows[i-1].Cramer {
			t.Errorf("Cramer not increasing at threshold %d", sp.Rows[i].Threshold)
		}
	}

	almostEqual(t, "Ratio(50)", sp.Rows[0].Ratio,
		0.5/(1-math.Exp(-50/(3*lnP))), 1e-9)
}
