// Package scan implements the satellite radar core: for each main-star
// base n it derives P = n^q - (n-1)^q and sweeps the even gaps k in
// [2, radius] below P, testing P-k with a probabilistic primality oracle.
// A modular dead-zone filter removes the gaps whose candidate is certainly
// divisible by 3 before the oracle is consulted.
//
// The scanner itself is sequential and keeps no state between bases;
// parallel scheduling across bases lives in Runner.
package scan

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	"go.uber.org/zap"

	"satradar/internal/q47"
)

// ErrInvalidInput marks rejected scan parameters: a malformed radius or a
// base below 1. Nothing is scanned for an invalid call.
var ErrInvalidInput = errors.New("invalid scan input")

var three = big.NewInt(3)

// Config carries the scan window parameters.
type Config struct {
	// Radius is the largest gap scanned below P. Positive and even.
	Radius int

	// Exponent q of the derived value P = n^q - (n-1)^q.
	Exponent uint

	// Rounds is the Miller-Rabin round count handed to the oracle.
	Rounds int
}

// DefaultConfig returns the reference scan window: gaps 2..5000 below the
// Q47 derived value, 25 oracle rounds.
func DefaultConfig() Config {
	return Config{
		Radius:   5000,
		Exponent: q47.Exponent,
		Rounds:   25,
	}
}

// Validate rejects malformed windows before any work is dispatched.
func (c Config) Validate() error {
	if c.Radius < 2 || c.Radius%2 != 0 {
		return fmt.Errorf("%w: radius must be a positive even integer, got %d", ErrInvalidInput, c.Radius)
	}
	if c.Exponent < 1 {
		return fmt.Errorf("%w: exponent must be >= 1", ErrInvalidInput)
	}
	if c.Rounds < 1 {
		return fmt.Errorf("%w: oracle rounds must be >= 1, got %d", ErrInvalidInput, c.Rounds)
	}
	return nil
}

// Hit is one discovered satellite: a prime at gap K below the derived
// value of Base. Twin marks the closest possible gap, K == 2.
type Hit struct {
	Base *big.Int
	K    int
	Twin bool
}

// BaseResult is the per-base reduction of one scan. Filtered counts gaps
// removed by the mod-3 dead zone, Rejected counts non-positive candidates
// discarded without an oracle call; both stay distinguishable from
// tested-and-composite.
type BaseResult struct {
	Base     *big.Int
	Hits     []Hit
	Tested   int
	Filtered int
	Rejected int
	Elapsed  time.Duration
}

// Satellites returns the number of hits for this base.
func (r BaseResult) Satellites() int { return len(r.Hits) }

// Twins returns the number of twin hits (gap 2) for this base.
func (r BaseResult) Twins() int {
	n := 0
	for _, h := range r.Hits {
		if h.Twin {
			n++
		}
	}
	return n
}

// Scanner is the sequential scan core.
type Scanner struct {
	cfg    Config
	oracle Oracle
	logger *zap.Logger
}

// New builds a Scanner for the given window. A nil oracle selects
// MillerRabin; a nil logger disables logging.
func New(cfg Config, oracle Oracle, logger *zap.Logger) (*Scanner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if oracle == nil {
		oracle = MillerRabin{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scanner{cfg: cfg, oracle: oracle, logger: logger}, nil
}

// Config returns the scan window the scanner was built with.
func (s *Scanner) Config() Config { return s.cfg }

// ValidateBase rejects bases outside the contract (nil or < 1).
func ValidateBase(base *big.Int) error {
	if base == nil || base.Sign() < 1 {
		return fmt.Errorf("%w: base must be >= 1, got %v", ErrInvalidInput, base)
	}
	return nil
}

// ValidateBases rejects an empty base list or any base < 1.
func ValidateBases(bases []*big.Int) error {
	if len(bases) == 0 {
		return fmt.Errorf("%w: no bases to scan", ErrInvalidInput)
	}
	for _, b := range bases {
		if err := ValidateBase(b); err != nil {
			return err
		}
	}
	return nil
}

// ScanBase sweeps the full gap window below one base and returns the
// reduction. On context cancellation or oracle failure the partial result
// is returned together with the error.
func (s *Scanner) ScanBase(ctx context.Context, base *big.Int) (BaseResult, error) {
	return s.scanBase(ctx, base, nil)
}

// Scan sweeps the bases in order, streaming hits as they are found. Hits
// arrive in strictly increasing gap order within a base. The hit channel
// closes when the sweep finishes; the error channel carries at most one
// error (validation, cancellation, or oracle failure) and aborts the
// sweep from the failing base onward.
func (s *Scanner) Scan(ctx context.Context, bases []*big.Int) (<-chan Hit, <-chan error) {
	hits := make(chan Hit, 64)
	errc := make(chan error, 1)
	go func() {
		defer close(hits)
		defer close(errc)
		if err := ValidateBases(bases); err != nil {
			errc <- err
			return
		}
		for _, base := range bases {
			_, err := s.scanBase(ctx, base, func(h Hit) {
				select {
				case hits <- h:
				case <-ctx.Done():
				}
			})
			if err != nil {
				errc <- err
				return
			}
		}
	}()
	return hits, errc
}

// scanBase is the radar loop shared by ScanBase, Scan, and Runner.
// emit, when non-nil, observes each hit as it is found.
func (s *Scanner) scanBase(ctx context.Context, base *big.Int, emit func(Hit)) (BaseResult, error) {
	if err := ValidateBase(base); err != nil {
		return BaseResult{}, err
	}

	start := time.Now()
	res := BaseResult{Base: new(big.Int).Set(base)}

	p := q47.Derived(base, s.cfg.Exponent)
	skip := q47.Residue3(p)
	s.logger.Debug("scanning base",
		zap.String("base", base.String()),
		zap.Int("digits", len(p.String())),
		zap.Int("skip_residue", skip))

	candidate := new(big.Int)
	gap := new(big.Int)
	for k := 2; k <= s.cfg.Radius; k += 2 {
		select {
		case <-ctx.Done():
			res.Elapsed = time.Since(start)
			return res, ctx.Err()
		default:
		}

		candidate.Sub(p, gap.SetInt64(int64(k)))

		// Dead zone: 3 divides P-k exactly when k ≡ P (mod 3). The one
		// candidate where divisibility by 3 does not force compositeness
		// is 3 itself, so that one still goes to the oracle.
		if k%3 == skip && candidate.Cmp(three) != 0 {
			res.Filtered++
			continue
		}

		// Primality is undefined at or below zero; never consult the
		// oracle for those.
		if candidate.Sign() <= 0 {
			res.Rejected++
			continue
		}

		res.Tested++
		prime, err := s.oracle.IsProbablyPrime(candidate, s.cfg.Rounds)
		if err != nil {
			res.Elapsed = time.Since(start)
			return res, fmt.Errorf("oracle failed for base %s at k=%d: %w", base, k, err)
		}
		if !prime {
			continue
		}

		hit := Hit{Base: res.Base, K: k, Twin: k == 2}
		res.Hits = append(res.Hits, hit)
		if emit != nil {
			emit(hit)
		}
	}

	res.Elapsed = time.Since(start)
	s.logger.Debug("base swept",
		zap.String("base", base.String()),
		zap.Int("satellites", len(res.Hits)),
		zap.Int("tested", res.Tested),
		zap.Int("filtered", res.Filtered),
		zap.Duration("elapsed", res.Elapsed))
	return res, nil
}
