package catalog

import (
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(":memory:", nil)
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestOpenInitializesSchema(t *testing.T) {
	store := openTestStore(t)

	stats, err := store.GetStats()
	if err != nil {
		t.Fatalf("GetStats: %v", err)
	}
	if stats.Satellites != 0 || stats.Runs != 0 {
		t.Errorf("fresh store not empty: %+v", stats)
	}
}

func TestSaveRunAndSatellites(t *testing.T) {
	store := openTestStore(t)

	started := time.Date(2026, 2, 10, 20, 0, 0, 0, time.UTC)
	run := Run{
		StartedAt:  started,
		FinishedAt: started.Add(3 * time.Minute),
		Radius:     5000,
		Exponent:   47,
		Rounds:     25,
		Stars:      2,
		Satellites: 3,
		Twins:      1,
	}
	sats := []Satellite{
		{Star: 117309848, Gap: 2},
		{Star: 117309848, Gap: 3572},
		{Star: 136584738, Gap: 780},
	}

	id, err := store.SaveRun(run, sats)
	if err != nil {
		t.Fatalf("SaveRun: %v", err)
	}
	if id == "" {
		t.Fatal("SaveRun returned empty id")
	}

	got, err := store.Satellites()
	if err != nil {
		t.Fatalf("Satellites: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("Satellites returned %d rows, want 3", len(got))
	}
	if got[0] != (Satellite{Star: 117309848, Gap: 2}) {
		t.Errorf("first satellite = %v, want (117309848, 2)", got[0])
	}

	runs, err := store.Runs()
	if err != nil {
		t.Fatalf("Runs: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("Runs returned %d, want 1", len(runs))
	}
	if runs[0].ID != id {
		t.Errorf("run id = %q, want %q", runs[0].ID, id)
	}
	if !runs[0].StartedAt.Equal(started) {
		t.Errorf("started_at = %v, want %v", runs[0].StartedAt, started)
	}
	if runs[0].Radius != 5000 || runs[0].Exponent != 47 {
		t.Errorf("run params = %+v", runs[0])
	}
}

func TestSaveRunDeduplicatesAcrossRuns(t *testing.T) {
	store := openTestStore(t)

	sats := []Satellite{{Star: 5, Gap: 2}, {Star: 5, Gap: 8}}
	base := time.Date(2026, 2, 10, 20, 0, 0, 0, time.UTC)

	if _, err := store.SaveRun(Run{StartedAt: base, FinishedAt: base}, sats); err != nil {
		t.Fatalf("first SaveRun: %v", err)
	}
	second := append(sats, Satellite{Star: 7, Gap: 12})
	if _, err := store.SaveRun(Run{StartedAt: base.Add(time.Hour), FinishedAt: base.Add(time.Hour)}, second); err != nil {
		t.Fatalf("second SaveRun: %v", err)
	}

	got, err := store.Satellites()
	if err != nil {
		t.Fatalf("Satellites: %v", err)
	}
	if len(got) != 3 {
		t.Errorf("catalog has %d rows after overlapping runs, want 3", len(got))
	}

	runs, err := store.Runs()
	if err != nil {
		t.Fatalf("Runs: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("Runs returned %d, want 2", len(runs))
	}
	// Newest first.
	if !runs[0].StartedAt.After(runs[1].StartedAt) {
		t.Errorf("runs not ordered newest first: %v before %v",
			runs[0].StartedAt, runs[1].StartedAt)
	}
}

func TestImportCountsNewRows(t *testing.T) {
	store := openTestStore(t)

	n, err := store.Import([]Satellite{{Star: 5, Gap: 2}, {Star: 5, Gap: 8}})
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if n != 2 {
		t.Errorf("first import inserted %d, want 2", n)
	}

	n, err = store.Import([]Satellite{{Star: 5, Gap: 8}, {Star: 7, Gap: 12}})
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if n != 1 {
		t.Errorf("second import inserted %d, want 1", n)
	}
}

func TestGetStats(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.Import([]Satellite{
		{Star: 117309848, Gap: 2},
		{Star: 117309848, Gap: 780},
		{Star: 3984049296, Gap: 2},
	}); err != nil {
		t.Fatalf("Import: %v", err)
	}

	stats, err := store.GetStats()
	if err != nil {
		t.Fatalf("GetStats: %v", err)
	}
	if stats.Satellites != 3 {
		t.Errorf("Satellites = %d, want 3", stats.Satellites)
	}
	if stats.Stars != 2 {
		t.Errorf("Stars = %d, want 2", stats.Stars)
	}
	if stats.Twins != 2 {
		t.Errorf("Twins = %d, want 2", stats.Twins)
	}
	if stats.MinStar != 117309848 || stats.MaxStar != 3984049296 {
		t.Errorf("star range = [%d, %d]", stats.MinStar, stats.MaxStar)
	}
}
