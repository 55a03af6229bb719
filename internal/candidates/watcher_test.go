package candidates

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The watcher tests run without goleak: fsnotify keeps platform goroutines
// alive past Close that goleak cannot reliably ignore.

func newTestWatcher(t *testing.T, dir string) *Watcher {
	t.Helper()
	w, err := NewWatcher(dir, nil)
	require.NoError(t, err)
	w.debounceDur = 50 * time.Millisecond
	return w
}

func awaitDiscovery(t *testing.T, w *Watcher) []string {
	t.Helper()
	select {
	case batch, ok := <-w.Discoveries():
		require.True(t, ok, "discovery channel closed early")
		return strsOf(batch)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for discovery")
		return nil
	}
}

func TestWatcherEmitsNewBases(t *testing.T) {
	dir := t.TempDir()
	w := newTestWatcher(t, dir)

	require.NoError(t, w.Start(context.Background()))
	defer w.Stop()

	writeHarvestFile(t, dir, "night1.log", "QUADRUPLET: 411784485\nSequence: 423600750\n")

	assert.Equal(t, []string{"411784485", "423600750"}, awaitDiscovery(t, w))
}

func TestWatcherIgnoresExistingBases(t *testing.T) {
	dir := t.TempDir()
	writeHarvestFile(t, dir, "old.log", "QUADRUPLET: 111\n")

	w := newTestWatcher(t, dir)
	require.NoError(t, w.Start(context.Background()))
	defer w.Stop()

	// Only the base absent from the pre-existing file may surface.
	writeHarvestFile(t, dir, "new.log", "QUADRUPLET: 111\nQUADRUPLET: 222\n")

	assert.Equal(t, []string{"222"}, awaitDiscovery(t, w))
}

func TestWatcherDeduplicatesAcrossFiles(t *testing.T) {
	dir := t.TempDir()
	w := newTestWatcher(t, dir)

	require.NoError(t, w.Start(context.Background()))
	defer w.Stop()

	writeHarvestFile(t, dir, "a.log", "QUADRUPLET: 640399031\n")
	assert.Equal(t, []string{"640399031"}, awaitDiscovery(t, w))

	writeHarvestFile(t, dir, "b.log", "QUADRUPLET: 640399031\nQUADRUPLET: 987980498\n")
	assert.Equal(t, []string{"987980498"}, awaitDiscovery(t, w))
}

func TestWatcherStopClosesDiscoveries(t *testing.T) {
	dir := t.TempDir()
	w := newTestWatcher(t, dir)

	require.NoError(t, w.Start(context.Background()))
	w.Stop()

	_, ok := <-w.Discoveries()
	assert.False(t, ok, "discovery channel should be closed after Stop")

	// Stop must be idempotent.
	w.Stop()
}

func TestWatcherCreatesMissingDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "harvest")
	w := newTestWatcher(t, dir)

	require.NoError(t, w.Start(context.Background()))
	defer w.Stop()

	_, err := os.Stat(dir)
	require.NoError(t, err)

	writeHarvestFile(t, dir, "first.log", "QUADRUPLET: 1163461515\n")
	assert.Equal(t, []string{"1163461515"}, awaitDiscovery(t, w))
}

func TestWatcherStats(t *testing.T) {
	dir := t.TempDir()
	w := newTestWatcher(t, dir)

	require.NoError(t, w.Start(context.Background()))
	defer w.Stop()

	writeHarvestFile(t, dir, "s.log", "QUADRUPLET: 1370439187\n")
	awaitDiscovery(t, w)

	stats := w.Stats()
	assert.GreaterOrEqual(t, stats.FilesCreated, 1)
	assert.GreaterOrEqual(t, stats.HarvestsTriggered, 1)
	assert.Equal(t, 1, stats.BasesDiscovered)
	assert.Equal(t, "s.log", filepath.Base(stats.LastEventPath))
}
