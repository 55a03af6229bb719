package stats

import "testing"

func TestSingularSeriesSmall(t *testing.T) {
	// Over primes {2, 3}: the factor for p=2 is 2 when p divides k.
	// k=2: p=2 gives 2, p=3 (nu=2) gives 3/4, product 1.5.
	almostEqual(t, "S(2) over p<=3", SingularSeries(2, 3), 1.5, 1e-12)

	// k=6: both primes divide k, p=3 gives (2/3)/(4/9) = 1.5, product 3.
	almostEqual(t, "S(6) over p<=3", SingularSeries(6, 3), 3.0, 1e-12)
}

func TestSingularSeriesTwinConstant(t *testing.T) {
	// S(2) converges to twice the twin prime constant, about 1.32032.
	almostEqual(t, "S(2)", SingularSeries(2, 5000), 1.32032, 5e-4)

	// S(6) carries the extra 3-divisibility factor: exactly 2*S(2).
	almostEqual(t, "S(6)/S(2)", SingularSeries(6, 5000)/SingularSeries(2, 5000), 2.0, 1e-9)
}

func TestConditionalHL(t *testing.T) {
	ds := datasetFromGaps(t, []int{2, 2, 2, 6, 8, 30})
	hl := ConditionalHL(ds, 100, 900.0, 5000)

	if len(hl.Rows) != 10 {
		t.Fatalf("Rows has %d entries, want 10", len(hl.Rows))
	}

	byK := make(map[int]HardyRow)
	for _, row := range hl.Rows {
		byK[row.K] = row
	}

	// Doubling applies to k = 2 (mod 3) only.
	wantB := map[int]int{2: 2, 6: 1, 8: 2, 12: 1, 14: 2, 18: 1, 20: 2, 24: 1, 26: 2, 30: 1}
	for k, b := range wantB {
		if byK[k].B != b {
			t.Errorf("B(%d) = %d, want %d", k, byK[k].B, b)
		}
	}

	if byK[2].Observed != 3 || byK[6].Observed != 1 || byK[12].Observed != 0 {
		t.Errorf("observed counts wrong: k2=%d k6=%d k12=%d",
			byK[2].Observed, byK[6].Observed, byK[12].Observed)
	}

	// E = NTrue * S_cond / lnP, with S_cond = S * B.
	row := byK[2]
	almostEqual(t, "SCond(2)", row.SCond, 2*SingularSeries(2, 5000), 1e-12)
	almostEqual(t, "E(2)", row.Expected, 100*row.SCond/900.0, 1e-12)

	if byK[2].KMod6 != 2 || byK[30].KMod6 != 0 {
		t.Errorf("KMod6 wrong: k2=%d k30=%d", byK[2].KMod6, byK[30].KMod6)
	}
}
