package scan

import (
	"context"
	"fmt"
	"math/big"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Totals is the reduction across a whole run. The counters are merged
// from per-base results after the workers finish, never shared while
// they run.
type Totals struct {
	Stars      int
	Satellites int
	Twins      int
	Tested     int
	Filtered   int
	Rejected   int
	Elapsed    time.Duration
}

// Progress is a live snapshot emitted while a run is in flight: once per
// discovered satellite (Hit non-nil) and once per fully swept base.
type Progress struct {
	Base       *big.Int
	Hit        *Hit
	Completed  int
	Total      int
	Satellites int
	Twins      int
}

// Runner schedules ScanBase calls across a bounded worker pool. The scan
// is embarrassingly parallel across bases: workers share nothing mutable,
// each returns its own BaseResult, and the runner merges the reductions.
type Runner struct {
	scanner    *Scanner
	workers    int
	logger     *zap.Logger
	onProgress func(Progress)
}

// NewRunner wraps a scanner with a worker pool of the given size.
// Sizes below 1 collapse to a single worker.
func NewRunner(scanner *Scanner, workers int, logger *zap.Logger) *Runner {
	if workers < 1 {
		workers = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{scanner: scanner, workers: workers, logger: logger}
}

// OnProgress registers a live progress callback. It is invoked from
// worker goroutines under the runner's own lock, so it must return
// promptly and must not call back into the runner.
func (r *Runner) OnProgress(fn func(Progress)) {
	r.onProgress = fn
}

// Run sweeps every base and returns the per-base results in input order
// plus the merged totals. On the first error the remaining dispatch stops
// and in-flight bases abort; bases already swept keep their results, and
// the totals cover exactly those.
func (r *Runner) Run(ctx context.Context, bases []*big.Int) ([]BaseResult, Totals, error) {
	start := time.Now()
	if err := ValidateBases(bases); err != nil {
		return nil, Totals{}, err
	}

	r.logger.Info("starting satellite sweep",
		zap.Int("bases", len(bases)),
		zap.Int("workers", r.workers),
		zap.Int("radius", r.scanner.cfg.Radius))

	results := make([]BaseResult, len(bases))
	g, gctx := errgroup.WithContext(ctx)
	sem := make(chan struct{}, r.workers)

	var mu sync.Mutex
	var completed, satellites, twins int

	for i, base := range bases {
		g.Go(func() error {
			select {
			case sem <- struct{}{}:
			case <-gctx.Done():
				return gctx.Err()
			}
			defer func() { <-sem }()

			res, err := r.scanner.scanBase(gctx, base, func(h Hit) {
				mu.Lock()
				defer mu.Unlock()
				satellites++
				if h.Twin {
					twins++
				}
				if r.onProgress != nil {
					r.onProgress(Progress{
						Base:       base,
						Hit:        &h,
						Completed:  completed,
						Total:      len(bases),
						Satellites: satellites,
						Twins:      twins,
					})
				}
			})
			if err != nil {
				return fmt.Errorf("base %s: %w", base, err)
			}
			results[i] = res

			mu.Lock()
			defer mu.Unlock()
			completed++
			if r.onProgress != nil {
				r.onProgress(Progress{
					Base:       base,
					Completed:  completed,
					Total:      len(bases),
					Satellites: satellites,
					Twins:      twins,
				})
			}
			return nil
		})
	}

	err := g.Wait()

	totals := Totals{Elapsed: time.Since(start)}
	for _, res := range results {
		if res.Base == nil {
			continue
		}
		totals.Stars++
		totals.Satellites += len(res.Hits)
		totals.Twins += res.Twins()
		totals.Tested += res.Tested
		totals.Filtered += res.Filtered
		totals.Rejected += res.Rejected
	}

	r.logger.Info("sweep finished",
		zap.Int("stars", totals.Stars),
		zap.Int("satellites", totals.Satellites),
		zap.Int("twins", totals.Twins),
		zap.Duration("elapsed", totals.Elapsed),
		zap.Error(err))
	return results, totals, err
}
