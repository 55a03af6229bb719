// Package candidates assembles the main-star bases handed to the radar.
// A base can arrive from an explicit list, from the built-in survey
// baseline, from harvesting discovery logs on disk, or from a numeric
// range; the scan core only ever sees the merged, deduplicated, ascending
// result.
package candidates

import (
	"context"
	"fmt"
	"math/big"
	"sort"
	"strings"
)

// Source yields candidate bases for scanning.
type Source interface {
	Name() string
	Gather(ctx context.Context) ([]*big.Int, error)
}

type literalSource struct {
	values []*big.Int
}

// Literal wraps an explicit list of bases.
func Literal(values ...*big.Int) Source {
	return &literalSource{values: values}
}

func (s *literalSource) Name() string { return "literal" }

func (s *literalSource) Gather(ctx context.Context) ([]*big.Int, error) {
	out := make([]*big.Int, len(s.values))
	copy(out, s.values)
	return out, nil
}

type rangeSource struct {
	lo, hi, step uint64
}

// Range yields lo, lo+step, ... up to and including hi.
func Range(lo, hi, step uint64) Source {
	return &rangeSource{lo: lo, hi: hi, step: step}
}

func (s *rangeSource) Name() string { return "range" }

func (s *rangeSource) Gather(ctx context.Context) ([]*big.Int, error) {
	if s.step < 1 {
		return nil, fmt.Errorf("range source: step must be >= 1, got %d", s.step)
	}
	if s.hi < s.lo {
		return nil, fmt.Errorf("range source: upper bound %d below lower bound %d", s.hi, s.lo)
	}
	var out []*big.Int
	for v := s.lo; v <= s.hi; v += s.step {
		out = append(out, new(big.Int).SetUint64(v))
		if v > s.hi-s.step { // avoid wrap-around at the top of uint64
			break
		}
	}
	return out, nil
}

// ParseList parses a comma or whitespace separated list of decimal bases.
func ParseList(s string) ([]*big.Int, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
	var out []*big.Int
	for _, f := range fields {
		v, ok := new(big.Int).SetString(f, 10)
		if !ok {
			return nil, fmt.Errorf("invalid base %q", f)
		}
		out = append(out, v)
	}
	return out, nil
}

// Collect gathers every source, then deduplicates and sorts ascending.
// Any source error aborts the collection.
func Collect(ctx context.Context, sources ...Source) ([]*big.Int, error) {
	var all []*big.Int
	for _, src := range sources {
		values, err := src.Gather(ctx)
		if err != nil {
			return nil, fmt.Errorf("source %s: %w", src.Name(), err)
		}
		all = append(all, values...)
	}
	return dedupe(all), nil
}

// Quadruplets expands each start n into the four consecutive main stars
// n, n+1, n+2, n+3. Every catalogued base is the first member of a prime
// quadruplet, and all four members get scanned.
func Quadruplets(starts []*big.Int) []*big.Int {
	out := make([]*big.Int, 0, len(starts)*4)
	for _, n := range starts {
		for offset := int64(0); offset < 4; offset++ {
			out = append(out, new(big.Int).Add(n, big.NewInt(offset)))
		}
	}
	return dedupe(out)
}

func dedupe(values []*big.Int) []*big.Int {
	seen := make(map[string]struct{}, len(values))
	out := make([]*big.Int, 0, len(values))
	for _, v := range values {
		key := v.String()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Cmp(out[j]) < 0 })
	return out
}
