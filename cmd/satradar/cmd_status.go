// Package main implements the status command for satradar.
// This file reports the survey environment: config, catalogs, harvest
// directory and rendered figures.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"satradar/internal/candidates"
	"satradar/internal/catalog"
)

// statusCmd shows survey status
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show satradar survey status",
	RunE:  showStatus,
}

// showStatus displays the survey environment
func showStatus(cmd *cobra.Command, args []string) error {
	fmt.Println("satradar Survey Status")
	fmt.Println("======================")
	fmt.Printf("Version: %s\n", cfg.Version)
	fmt.Printf("Config:  %s\n", cfgPath)
	fmt.Printf("Window:  radius %d, exponent %d, %d oracle rounds\n",
		cfg.Scan.Radius, cfg.Scan.Exponent, cfg.Scan.Rounds)
	fmt.Println()

	// Config file
	if _, err := os.Stat(cfgPath); err == nil {
		fmt.Println("✓ Config file present")
	} else {
		fmt.Println("✗ Config file missing (using defaults)")
	}

	// CSV catalog
	if sats, err := catalog.ReadFile(cfg.Catalog.CSVPath); err == nil && len(sats) > 0 {
		twins := 0
		for _, s := range sats {
			if s.Twin() {
				twins++
			}
		}
		fmt.Printf("✓ CSV catalog: %d satellites (%d twins) in %s\n",
			len(sats), twins, cfg.Catalog.CSVPath)
	} else {
		fmt.Printf("✗ CSV catalog empty or missing: %s\n", cfg.Catalog.CSVPath)
	}

	// SQLite catalog; stat first so status never creates the database
	if _, err := os.Stat(cfg.Catalog.DatabasePath); err != nil {
		fmt.Printf("✗ SQLite catalog not initialized: %s\n", cfg.Catalog.DatabasePath)
	} else if store, err := catalog.Open(cfg.Catalog.DatabasePath, logger); err != nil {
		fmt.Printf("✗ SQLite catalog unreadable: %v\n", err)
	} else {
		st, err := store.GetStats()
		store.Close()
		if err != nil {
			fmt.Printf("✗ SQLite catalog unreadable: %v\n", err)
		} else {
			fmt.Printf("✓ SQLite catalog: %d runs, %d satellites in %s\n",
				st.Runs, st.Satellites, cfg.Catalog.DatabasePath)
		}
	}

	// Harvest directory
	starts, err := candidates.Collect(context.Background(),
		candidates.HarvestDir(cfg.Harvest.Dir, candidates.WithLogger(logger)))
	if err == nil && len(starts) > 0 {
		fmt.Printf("✓ Harvest dir: %d quadruplet starts in %s\n", len(starts), cfg.Harvest.Dir)
	} else {
		fmt.Printf("✗ Harvest dir: no discovery reports in %s\n", cfg.Harvest.Dir)
	}

	// Figures
	found := 0
	for _, name := range []string{"p3_fig1.png", "p3_fig2.png", "p3_fig3.png", "p3_fig4.png"} {
		if _, err := os.Stat(filepath.Join(cfg.Figures.OutDir, name)); err == nil {
			found++
		}
	}
	if found == 4 {
		fmt.Printf("✓ Figures: all four rendered in %s\n", cfg.Figures.OutDir)
	} else {
		fmt.Printf("✗ Figures: %d of 4 rendered in %s\n", found, cfg.Figures.OutDir)
	}

	return nil
}
