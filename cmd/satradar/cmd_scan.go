// Package main implements the scan command for satradar.
// This file handles candidate gathering, the worker sweep, the live
// display, and persistence of the discovered satellites.
package main

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"os"
	"runtime"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"satradar/cmd/satradar/ui"
	"satradar/internal/candidates"
	"satradar/internal/catalog"
	"satradar/internal/report"
	"satradar/internal/scan"
)

var (
	scanBases      string
	scanHarvestDir string
	scanBaseline   bool
	scanRadius     int
	scanExponent   uint
	scanRounds     int
	scanWorkers    int
	scanNoTUI      bool
	scanCSVPath    string
	scanDBPath     string
	scanMarkdown   bool
)

// scanCmd runs the radar sweep
var scanCmd = &cobra.Command{
	Use:   "scan [starts...]",
	Short: "Sweep the detection window below each star's giant prime",
	Long: `Sweeps every admissible even gap k inside the detection radius for
satellite primes P - k, where P = n^47 - (n-1)^47.

Candidate main stars come from quadruplet starts: each start n expands
to the four consecutive stars n, n+1, n+2, n+3. Starts are taken from
positional arguments and --base, from harvested discovery reports with
--harvest-dir, and from the built-in survey baseline with --baseline.
With no source given the baseline survey is swept.

Results are appended to the CSV catalog and recorded as a run in the
SQLite catalog; pass an empty --csv or --db to skip either.

Examples:
  satradar scan                          # baseline survey sweep
  satradar scan 117309848 --radius 5000
  satradar scan --harvest-dir ./hunts --baseline`,
	Args: cobra.ArbitraryArgs,
	RunE: runScan,
}

func init() {
	scanCmd.Flags().StringVar(&scanBases, "base", "", "Comma-separated quadruplet starts to sweep")
	scanCmd.Flags().StringVar(&scanHarvestDir, "harvest-dir", "", "Harvest quadruplet starts from discovery reports in this directory")
	scanCmd.Flags().BoolVar(&scanBaseline, "baseline", false, "Include the built-in survey baseline starts")
	scanCmd.Flags().IntVar(&scanRadius, "radius", 5000, "Detection radius below each giant prime")
	scanCmd.Flags().UintVar(&scanExponent, "exponent", 47, "Exponent of the giant prime construction")
	scanCmd.Flags().IntVar(&scanRounds, "rounds", 25, "Miller-Rabin rounds per candidate")
	scanCmd.Flags().IntVar(&scanWorkers, "workers", 0, "Parallel base workers (0 = one per CPU)")
	scanCmd.Flags().BoolVar(&scanNoTUI, "no-tui", false, "Print plain progress lines instead of the live display")
	scanCmd.Flags().StringVar(&scanCSVPath, "csv", "", "CSV catalog path (empty skips the CSV append)")
	scanCmd.Flags().StringVar(&scanDBPath, "db", "", "SQLite catalog path (empty skips the run record)")
	scanCmd.Flags().BoolVar(&scanMarkdown, "markdown", false, "Also print the report as rendered markdown")
}

// sweepWantsTUI reports whether the live display will drive stdout.
// The root command checks this before wiring the logger, so it must
// not depend on anything built in PersistentPreRunE.
func sweepWantsTUI() bool {
	return !scanNoTUI && isatty.IsTerminal(os.Stdout.Fd())
}

func runScan(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext()
	defer cancel()

	start := time.Now()

	scfg := scan.Config{
		Radius:   cfg.Scan.Radius,
		Exponent: cfg.Scan.Exponent,
		Rounds:   cfg.Scan.Rounds,
	}
	if cmd.Flags().Changed("radius") {
		scfg.Radius = scanRadius
	}
	if cmd.Flags().Changed("exponent") {
		scfg.Exponent = scanExponent
	}
	if cmd.Flags().Changed("rounds") {
		scfg.Rounds = scanRounds
	}

	workers := cfg.Scan.Workers
	if cmd.Flags().Changed("workers") {
		workers = scanWorkers
	}
	if workers < 1 {
		workers = runtime.NumCPU()
	}

	starts, err := gatherStarts(ctx, args)
	if err != nil {
		return fmt.Errorf("gather candidates: %w", err)
	}
	if len(starts) == 0 {
		return fmt.Errorf("no candidate stars to sweep")
	}
	bases := candidates.Quadruplets(starts)

	scanner, err := scan.New(scfg, nil, logger)
	if err != nil {
		return err
	}
	runner := scan.NewRunner(scanner, workers, logger)

	logger.Info("Starting sweep",
		zap.Int("starts", len(starts)),
		zap.Int("stars", len(bases)),
		zap.Int("radius", scfg.Radius),
		zap.Uint("exponent", scfg.Exponent),
		zap.Int("workers", workers))

	var results []scan.BaseResult
	var totals scan.Totals
	if sweepWantsTUI() {
		results, totals, err = runSweepTUI(ctx, cancel, runner, bases)
	} else {
		results, totals, err = runSweepPlain(ctx, runner, bases)
	}
	switch {
	case err == nil:
	case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
		fmt.Println("Sweep interrupted; keeping completed stars.")
	default:
		return fmt.Errorf("sweep failed: %w", err)
	}

	r := report.New()
	fmt.Print(r.ScanReport(results, totals))
	if scanMarkdown {
		fmt.Println(r.Markdown(report.ScanMarkdown(results, totals)))
	}

	if totals.Stars == 0 {
		fmt.Println("No stars completed; nothing catalogued.")
		return nil
	}
	return persistSweep(cmd, start, scfg, results, totals)
}

// gatherStarts merges every requested candidate source into one
// deduplicated, ascending list of quadruplet starts.
func gatherStarts(ctx context.Context, args []string) ([]*big.Int, error) {
	var sources []candidates.Source

	if scanBases != "" {
		values, err := candidates.ParseList(scanBases)
		if err != nil {
			return nil, err
		}
		sources = append(sources, candidates.Literal(values...))
	}
	if len(args) > 0 {
		values, err := candidates.ParseList(strings.Join(args, ","))
		if err != nil {
			return nil, err
		}
		sources = append(sources, candidates.Literal(values...))
	}
	if scanHarvestDir != "" {
		sources = append(sources, candidates.HarvestDir(scanHarvestDir, candidates.WithLogger(logger)))
	}
	if scanBaseline || len(sources) == 0 {
		sources = append(sources, candidates.Baseline())
	}

	return candidates.Collect(ctx, sources...)
}

// runSweepTUI drives the runner under the live display. The runner
// runs in its own goroutine and streams progress into the program;
// quitting the display cancels the sweep.
func runSweepTUI(ctx context.Context, cancel context.CancelFunc, runner *scan.Runner, bases []*big.Int) ([]scan.BaseResult, scan.Totals, error) {
	prog := tea.NewProgram(ui.NewSweepModel(len(bases)))
	runner.OnProgress(func(p scan.Progress) {
		prog.Send(ui.ProgressMsg(p))
	})

	type sweepOutcome struct {
		results []scan.BaseResult
		totals  scan.Totals
		err     error
	}
	outCh := make(chan sweepOutcome, 1)
	go func() {
		results, totals, err := runner.Run(ctx, bases)
		outCh <- sweepOutcome{results: results, totals: totals, err: err}
		prog.Send(ui.DoneMsg{Totals: totals, Err: err})
	}()

	final, uiErr := prog.Run()
	if m, ok := final.(ui.SweepModel); ok && m.Aborted() {
		cancel()
	}
	out := <-outCh
	if uiErr != nil && out.err == nil {
		out.err = uiErr
	}
	return out.results, out.totals, out.err
}

// runSweepPlain prints one line per discovered satellite, for logs and
// non-terminal output.
func runSweepPlain(ctx context.Context, runner *scan.Runner, bases []*big.Int) ([]scan.BaseResult, scan.Totals, error) {
	runner.OnProgress(func(p scan.Progress) {
		if p.Hit == nil {
			return
		}
		tag := ""
		if p.Hit.Twin {
			tag = "  TWIN (P, P-2)"
		}
		fmt.Printf("  [%d/%d] n = %s  k = %d%s\n", p.Completed, p.Total, p.Hit.Base, p.Hit.K, tag)
	})
	return runner.Run(ctx, bases)
}

// persistSweep appends the discovered satellites to the CSV catalog and
// records the run in the SQLite catalog.
func persistSweep(cmd *cobra.Command, start time.Time, scfg scan.Config, results []scan.BaseResult, totals scan.Totals) error {
	sats := catalogRows(results)

	csvPath := cfg.Catalog.CSVPath
	if cmd.Flags().Changed("csv") {
		csvPath = scanCSVPath
	}
	if csvPath != "" {
		if err := catalog.AppendFile(csvPath, sats); err != nil {
			return fmt.Errorf("append catalog csv: %w", err)
		}
		fmt.Printf("Catalog CSV updated: %s (+%d rows)\n", csvPath, len(sats))
	}

	dbPath := cfg.Catalog.DatabasePath
	if cmd.Flags().Changed("db") {
		dbPath = scanDBPath
	}
	if dbPath != "" {
		store, err := catalog.Open(dbPath, logger)
		if err != nil {
			return fmt.Errorf("open catalog db: %w", err)
		}
		defer store.Close()

		run := catalog.Run{
			StartedAt:  start,
			FinishedAt: time.Now(),
			Radius:     scfg.Radius,
			Exponent:   scfg.Exponent,
			Rounds:     scfg.Rounds,
			Stars:      totals.Stars,
			Satellites: totals.Satellites,
			Twins:      totals.Twins,
		}
		id, err := store.SaveRun(run, sats)
		if err != nil {
			return fmt.Errorf("save run: %w", err)
		}
		fmt.Printf("Run %s recorded in %s\n", id, dbPath)
	}
	return nil
}

// catalogRows narrows scanned hits to catalog rows. Bases beyond the
// catalog's int64 range are logged and skipped rather than failing the
// whole persistence step.
func catalogRows(results []scan.BaseResult) []catalog.Satellite {
	var sats []catalog.Satellite
	for _, res := range results {
		if res.Base == nil {
			continue
		}
		for _, h := range res.Hits {
			star, err := catalog.StarFromBig(h.Base)
			if err != nil {
				logger.Warn("Skipping uncatalogable star", zap.Error(err))
				continue
			}
			sats = append(sats, catalog.Satellite{Star: star, Gap: h.K})
		}
	}
	return sats
}
