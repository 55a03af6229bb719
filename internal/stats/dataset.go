// Package stats reproduces the paper's statistical analyses over a
// satellite catalog: Poisson fit with zero-star recovery, gap uniformity,
// mod-30 residue structure, nearest-satellite CDF, conditional
// Hardy-Littlewood expectations, and density versus base size.
package stats

import (
	"fmt"
	"math"
	"sort"

	"satradar/internal/catalog"
)

// Dataset is the catalog reshaped for analysis: stars sorted ascending,
// per-star gap lists, and the flat gap population.
type Dataset struct {
	Stars       []int64
	GapsByStar  map[int64][]int
	AllGaps     []int
	SatsPerStar []int // aligned with Stars
	NWith       int   // stars with at least one satellite
}

// NewDataset reshapes catalog rows. At least one satellite is required.
func NewDataset(sats []catalog.Satellite) (*Dataset, error) {
	if len(sats) == 0 {
		return nil, fmt.Errorf("empty satellite catalog")
	}

	byStar := make(map[int64][]int)
	allGaps := make([]int, 0, len(sats))
	for _, s := range sats {
		byStar[s.Star] = append(byStar[s.Star], s.Gap)
		allGaps = append(allGaps, s.Gap)
	}

	stars := make([]int64, 0, len(byStar))
	for star := range byStar {
		stars = append(stars, star)
	}
	sort.Slice(stars, func(i, j int) bool { return stars[i] < stars[j] })

	satsPer := make([]int, len(stars))
	for i, star := range stars {
		satsPer[i] = len(byStar[star])
	}

	return &Dataset{
		Stars:       stars,
		GapsByStar:  byStar,
		AllGaps:     allGaps,
		SatsPerStar: satsPer,
		NWith:       len(stars),
	}, nil
}

// MinGaps returns the nearest-satellite distance for each star, aligned
// with Stars.
func (d *Dataset) MinGaps() []int {
	out := make([]int, len(d.Stars))
	for i, star := range d.Stars {
		min := d.GapsByStar[star][0]
		for _, g := range d.GapsByStar[star][1:] {
			if g < min {
				min = g
			}
		}
		out[i] = min
	}
	return out
}

// digits estimates the decimal length of the derived giant for base n:
// P = n^47 - (n-1)^47 is close to 47*n^46, so the length is about
// 46*log10(n) + 1.67, the additive constant being log10(47).
func digits(star int64) float64 {
	return 46*math.Log10(float64(star)) + 1.67
}

// MeanLnP is the average natural log of the derived giants, computed the
// way the paper does: truncate each star's digit estimate to an integer
// digit count, convert to nats, then average.
func (d *Dataset) MeanLnP() float64 {
	var sum float64
	for _, star := range d.Stars {
		sum += math.Trunc(digits(star)) * math.Ln10
	}
	return sum / float64(len(d.Stars))
}
