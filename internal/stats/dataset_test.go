package stats

import (
	"math"
	"testing"

	"satradar/internal/catalog"
)

func almostEqual(t *testing.T, name string, got, want, tol float64) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Errorf("%s = %v, want %v (tol %v)", name, got, want, tol)
	}
}

func TestNewDataset(t *testing.T) {
	sats := []catalog.Satellite{
		{Star: 30, Gap: 8},
		{Star: 10, Gap: 2},
		{Star: 30, Gap: 2},
		{Star: 20, Gap: 14},
	}
	ds, err := NewDataset(sats)
	if err != nil {
		t.Fatalf("NewDataset: %v", err)
	}

	if ds.NWith != 3 {
		t.Errorf("NWith = %d, want 3", ds.NWith)
	}
	wantStars := []int64{10, 20, 30}
	for i, star := range wantStars {
		if ds.Stars[i] != star {
			t.Errorf("Stars[%d] = %d, want %d", i, ds.Stars[i], star)
		}
	}
	wantPer := []int{1, 1, 2}
	for i, n := range wantPer {
		if ds.SatsPerStar[i] != n {
			t.Errorf("SatsPerStar[%d] = %d, want %d", i, ds.SatsPerStar[i], n)
		}
	}
	if len(ds.AllGaps) != 4 {
		t.Errorf("AllGaps has %d entries, want 4", len(ds.AllGaps))
	}
}

func TestNewDatasetEmpty(t *testing.T) {
	if _, err := NewDataset(nil); err == nil {
		t.Error("expected error for empty catalog")
	}
}

func TestMinGaps(t *testing.T) {
	ds, err := NewDataset([]catalog.Satellite{
		{Star: 10, Gap: 40},
		{Star: 10, Gap: 6},
		{Star: 10, Gap: 100},
		{Star: 20, Gap: 2000},
	})
	if err != nil {
		t.Fatal(err)
	}
	got := ds.MinGaps()
	if got[0] != 6 || got[1] != 2000 {
		t.Errorf("MinGaps = %v, want [6 2000]", got)
	}
}

func TestDigits(t *testing.T) {
	// For n = 1e9 the derived giant has about 46*9 + 1.67 digits.
	almostEqual(t, "digits(1e9)", digits(1_000_000_000), 415.67, 1e-9)
}

func TestMeanLnP(t *testing.T) {
	ds, err := NewDataset([]catalog.Satellite{{Star: 1_000_000_000, Gap: 2}})
	if err != nil {
		t.Fatal(err)
	}
	// Truncated digit estimate 415, converted to nats.
	almostEqual(t, "MeanLnP", ds.MeanLnP(), 415*math.Ln10, 1e-9)
}
