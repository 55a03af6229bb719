// Package catalog holds the persistent satellite record: one row per
// discovered (star, gap) pair, stored as CSV for interchange with the
// paper's data files and as SQLite for run history and stats.
package catalog

import (
	"fmt"
	"math/big"
	"sort"
)

// Satellite is one catalog row: a satellite prime found at distance Gap
// below the giant prime derived from main star Star.
type Satellite struct {
	Star int64 `json:"main_star_n"`
	Gap  int   `json:"gap_k"`
}

// Twin reports whether the satellite sits at the minimal gap, making it a
// twin prime of the derived giant.
func (s Satellite) Twin() bool { return s.Gap == 2 }

// StarFromBig narrows a scanned base to a catalog star value. Catalog
// storage is int64; reference survey bases stay below 4e9, so anything
// that does not fit signals a caller bug rather than a legitimate base.
func StarFromBig(n *big.Int) (int64, error) {
	if !n.IsInt64() {
		return 0, fmt.Errorf("star %s overflows catalog range", n.String())
	}
	return n.Int64(), nil
}

// Dedupe sorts satellites by (star, gap) and drops duplicate rows.
func Dedupe(sats []Satellite) []Satellite {
	sort.Slice(sats, func(i, j int) bool {
		if sats[i].Star != sats[j].Star {
			return sats[i].Star < sats[j].Star
		}
		return sats[i].Gap < sats[j].Gap
	})
	out := sats[:0]
	var last Satellite
	for i, s := range sats {
		if i > 0 && s == last {
			continue
		}
		out = append(out, s)
		last = s
	}
	return out
}
