package stats

import (
	"testing"

	"satradar/internal/catalog"
)

func TestAnalyze(t *testing.T) {
	sats := []catalog.Satellite{
		{Star: 117309848, Gap: 2},
		{Star: 117309848, Gap: 3572},
		{Star: 136584738, Gap: 780},
		{Star: 218787064, Gap: 14},
		{Star: 218787064, Gap: 1200},
		{Star: 218787064, Gap: 4608},
	}

	sum, err := Analyze(sats, 5000)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if sum.Dataset.NWith != 3 {
		t.Errorf("NWith = %d, want 3", sum.Dataset.NWith)
	}
	if sum.Radius != 5000 {
		t.Errorf("Radius = %d, want 5000", sum.Radius)
	}
	if len(sum.Poisson.Rows) != 15 {
		t.Errorf("Poisson rows = %d, want 15", len(sum.Poisson.Rows))
	}
	if sum.Poisson.NTrue < sum.Dataset.NWith {
		t.Errorf("NTrue = %d below NWith = %d", sum.Poisson.NTrue, sum.Dataset.NWith)
	}
	if sum.Uniformity.DoF != 9 {
		t.Errorf("Uniformity DoF = %d, want 9", sum.Uniformity.DoF)
	}
	if sum.Residues.Other != 0 {
		t.Errorf("Residues.Other = %d, want 0 for admissible gaps", sum.Residues.Other)
	}
	if len(sum.Spacing.Rows) != 7 {
		t.Errorf("Spacing rows = %d, want 7", len(sum.Spacing.Rows))
	}
	if len(sum.Hardy.Rows) != 10 {
		t.Errorf("Hardy rows = %d, want 10", len(sum.Hardy.Rows))
	}
	// All stars sit below 50 billion.
	if len(sum.Density.Rows) != 0 {
		t.Errorf("Density rows = %d, want 0", len(sum.Density.Rows))
	}
}

func TestAnalyzeRejectsBadInput(t *testing.T) {
	if _, err := Analyze(nil, 5000); err == nil {
		t.Error("expected error for empty catalog")
	}
	if _, err := Analyze([]catalog.Satellite{{Star: 5, Gap: 2}}, 4); err == nil {
		t.Error("expected error for tiny radius")
	}
}
