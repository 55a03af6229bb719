// Package main implements the catalog commands for satradar.
// This file handles CSV import and export of the SQLite catalog and
// the catalog summary.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"satradar/internal/catalog"
)

var catalogDBPath string

// catalogCmd groups the catalog maintenance commands
var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Manage the satellite catalog",
	Long: `Manage the persistent satellite catalog.

Subcommands:
  import  - Load CSV satellite rows into the SQLite catalog
  export  - Write the SQLite catalog back out as CSV
  stats   - Show catalog counters and recent runs`,
	RunE: runCatalogStats,
}

var catalogImportCmd = &cobra.Command{
	Use:   "import [csv...]",
	Short: "Load CSV satellite rows into the SQLite catalog",
	RunE:  runCatalogImport,
}

var catalogExportCmd = &cobra.Command{
	Use:   "export [csv]",
	Short: "Write the SQLite catalog back out as CSV",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCatalogExport,
}

var catalogStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show catalog counters and recent runs",
	RunE:  runCatalogStats,
}

func init() {
	catalogCmd.PersistentFlags().StringVar(&catalogDBPath, "db", "", "SQLite catalog path (default from config)")
	catalogCmd.AddCommand(catalogImportCmd, catalogExportCmd, catalogStatsCmd)
}

// openCatalog opens the SQLite catalog honoring the --db override.
func openCatalog(cmd *cobra.Command) (*catalog.Store, string, error) {
	path := cfg.Catalog.DatabasePath
	if cmd.Flags().Changed("db") {
		path = catalogDBPath
	}
	store, err := catalog.Open(path, logger)
	if err != nil {
		return nil, "", fmt.Errorf("open catalog db %s: %w", path, err)
	}
	return store, path, nil
}

// readSatellites loads the satellite set from the SQLite catalog when
// dbPath is set, otherwise from the CSV catalog. The returned string
// names the source that was read.
func readSatellites(dbPath, csvPath string) ([]catalog.Satellite, string, error) {
	if dbPath != "" {
		store, err := catalog.Open(dbPath, logger)
		if err != nil {
			return nil, "", fmt.Errorf("open catalog db %s: %w", dbPath, err)
		}
		defer store.Close()
		sats, err := store.Satellites()
		if err != nil {
			return nil, "", fmt.Errorf("read catalog db %s: %w", dbPath, err)
		}
		return sats, dbPath, nil
	}
	sats, err := catalog.ReadFile(csvPath)
	if err != nil {
		return nil, "", fmt.Errorf("read catalog csv %s: %w", csvPath, err)
	}
	return sats, csvPath, nil
}

func runCatalogImport(cmd *cobra.Command, args []string) error {
	files := args
	if len(files) == 0 {
		files = []string{cfg.Catalog.CSVPath}
	}

	var sats []catalog.Satellite
	for _, f := range files {
		rows, err := catalog.ReadFile(f)
		if err != nil {
			return fmt.Errorf("read %s: %w", f, err)
		}
		logger.Debug("Read import file", zap.String("path", f), zap.Int("rows", len(rows)))
		sats = append(sats, rows...)
	}

	store, path, err := openCatalog(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	added, err := store.Import(sats)
	if err != nil {
		return fmt.Errorf("import into %s: %w", path, err)
	}
	fmt.Printf("Imported %d new satellites into %s (%d rows read)\n", added, path, len(sats))
	return nil
}

func runCatalogExport(cmd *cobra.Command, args []string) error {
	out := cfg.Catalog.CSVPath
	if len(args) == 1 {
		out = args[0]
	}

	store, path, err := openCatalog(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	sats, err := store.Satellites()
	if err != nil {
		return fmt.Errorf("read catalog db %s: %w", path, err)
	}
	if err := catalog.WriteFile(out, sats); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}
	fmt.Printf("Exported %d satellites to %s\n", len(sats), out)
	return nil
}

func runCatalogStats(cmd *cobra.Command, args []string) error {
	store, path, err := openCatalog(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	st, err := store.GetStats()
	if err != nil {
		return fmt.Errorf("read catalog stats: %w", err)
	}

	fmt.Println("Satellite Catalog")
	fmt.Println("=================")
	fmt.Printf("Database:   %s\n", path)
	fmt.Printf("Runs:       %d\n", st.Runs)
	fmt.Printf("Stars:      %d\n", st.Stars)
	fmt.Printf("Satellites: %d\n", st.Satellites)
	fmt.Printf("Twins:      %d\n", st.Twins)
	if st.Satellites > 0 {
		fmt.Printf("Star range: %d .. %d\n", st.MinStar, st.MaxStar)
	}

	runs, err := store.Runs()
	if err != nil {
		return fmt.Errorf("read run history: %w", err)
	}
	if len(runs) == 0 {
		return nil
	}

	limit := 5
	if len(runs) < limit {
		limit = len(runs)
	}
	fmt.Println()
	fmt.Println("Recent runs:")
	for i := 0; i < limit; i++ {
		run := runs[i]
		fmt.Printf("  %s  radius %d  %d stars  %d satellites  %d twins\n",
			run.StartedAt.Format("2006-01-02 15:04"),
			run.Radius, run.Stars, run.Satellites, run.Twins)
	}
	if len(runs) > limit {
		fmt.Printf("  ... and %d more\n", len(runs)-limit)
	}
	return nil
}
