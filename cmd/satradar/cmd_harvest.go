// Package main implements the harvest command for satradar.
// This file handles one-shot harvesting of discovery reports and the
// live directory watch.
package main

import (
	"context"
	"fmt"
	"regexp"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"satradar/internal/candidates"
)

var harvestWatch bool

// harvestCmd collects quadruplet starts from files on disk
var harvestCmd = &cobra.Command{
	Use:   "harvest [dir]",
	Short: "Collect quadruplet starts from discovery reports",
	Long: `Scans *.log, *.txt and *.html files in the harvest directory for
"Sequence: <n>" and "QUADRUPLET: <n>" markers and prints the
deduplicated quadruplet starts, ready to feed into a sweep.

With --watch the directory is monitored and freshly landed starts
stream out until interrupted. Files already present when the watch
begins are treated as known and never re-emitted.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHarvest,
}

func init() {
	harvestCmd.Flags().BoolVarP(&harvestWatch, "watch", "w", false, "Watch the directory for new discovery reports")
}

func runHarvest(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext()
	defer cancel()

	dir := cfg.Harvest.Dir
	if len(args) == 1 {
		dir = args[0]
	}

	if harvestWatch {
		return watchHarvest(ctx, dir)
	}

	opts := []candidates.HarvestOption{candidates.WithLogger(logger)}
	if cfg.Harvest.Pattern != "" {
		re, err := regexp.Compile(cfg.Harvest.Pattern)
		if err != nil {
			return fmt.Errorf("invalid harvest pattern: %w", err)
		}
		opts = append(opts, candidates.WithPattern(re))
	}

	starts, err := candidates.Collect(ctx, candidates.HarvestDir(dir, opts...))
	if err != nil {
		return fmt.Errorf("harvest %s: %w", dir, err)
	}
	if len(starts) == 0 {
		fmt.Printf("No quadruplet starts found in %s\n", dir)
		return nil
	}

	fmt.Printf("Found %d quadruplet starts in %s:\n", len(starts), dir)
	for _, n := range starts {
		fmt.Printf("  %s\n", n)
	}
	return nil
}

// watchHarvest streams freshly discovered starts until the context is
// cancelled or the watcher stops.
func watchHarvest(ctx context.Context, dir string) error {
	w, err := candidates.NewWatcher(dir, logger)
	if err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	if err := w.Start(ctx); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	defer w.Stop()

	fmt.Printf("Watching %s for discovery reports (Ctrl+C to stop)\n", dir)
	for {
		select {
		case <-ctx.Done():
			st := w.Stats()
			logger.Info("Watch finished",
				zap.Int("harvests", st.HarvestsTriggered),
				zap.Int("bases", st.BasesDiscovered))
			fmt.Printf("Watched %d harvests, %d new starts\n", st.HarvestsTriggered, st.BasesDiscovered)
			return nil
		case batch, ok := <-w.Discoveries():
			if !ok {
				return nil
			}
			for _, n := range batch {
				fmt.Printf("  NEW %s\n", n)
			}
		}
	}
}
