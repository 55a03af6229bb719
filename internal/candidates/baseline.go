package candidates

import (
	"context"
	"math/big"
)

// baselineStarts are the 25 confirmed quadruplet starts of the reference
// survey, covering bases up to 4.0e9.
var baselineStarts = []uint64{
	// First tranche: the 14 finds below 2.0e9.
	117309848, 136584738, 218787064, 411784485, 423600750,
	523331634, 640399031, 987980498, 1163461515, 1370439187,
	1643105964, 1691581855, 1975860550, 1996430175,

	// Second tranche: the 11 finds between 2.0e9 and 4.0e9.
	2156109985, 2367719045, 2559344807, 2646631730, 2682956949,
	2859276863, 2862155914, 2922108368, 3808591354, 3910149357,
	3984049296,
}

type baselineSource struct{}

// Baseline returns the built-in table of survey quadruplet starts.
func Baseline() Source { return baselineSource{} }

func (baselineSource) Name() string { return "baseline" }

func (baselineSource) Gather(ctx context.Context) ([]*big.Int, error) {
	out := make([]*big.Int, len(baselineStarts))
	for i, v := range baselineStarts {
		out[i] = new(big.Int).SetUint64(v)
	}
	return out, nil
}
