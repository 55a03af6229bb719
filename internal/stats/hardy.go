package stats

// hlGaps are the small gaps tabulated in the conditional Hardy-Littlewood
// comparison.
var hlGaps = []int{2, 6, 8, 12, 14, 18, 20, 24, 26, 30}

// HardyRow is one gap's conditional Hardy-Littlewood expectation against
// the observed count.
type HardyRow struct {
	K        int
	KMod6    int
	B        int
	SCond    float64
	Expected float64
	Observed int
}

// HardyLittlewood is the conditional twin-constant analysis: the
// unconditional singular series per gap, doubled for the residue class
// favored when P = 1 (mod 3).
type HardyLittlewood struct {
	Rows []HardyRow
}

// SingularSeries computes the Hardy-Littlewood singular series for the
// pair (n, n+k) over primes up to maxP. For each prime p the pair avoids
// nu residues, nu = 1 when p divides k and 2 otherwise.
func SingularSeries(k, maxP int) float64 {
	product := 1.0
	for _, p := range primesUpTo(maxP) {
		nu := 2.0
		if k%p == 0 {
			nu = 1.0
		}
		pf := float64(p)
		base := 1 - 1/pf
		product *= (1 - nu/pf) / (base * base)
	}
	return product
}

// ConditionalHL evaluates the tabulated gaps. nTrue and lnP come from the
// Poisson fit and spacing analysis; the doubling factor B applies to gaps
// with k = 2 (mod 3), the only even class left admissible by the giant's
// mod-3 residue.
func ConditionalHL(d *Dataset, nTrue int, lnP float64, maxP int) HardyLittlewood {
	gapCounts := make(map[int]int)
	for _, g := range d.AllGaps {
		gapCounts[g]++
	}

	rows := make([]HardyRow, 0, len(hlGaps))
	for _, k := range hlGaps {
		b := 1
		if k%3 == 2 {
			b = 2
		}
		sCond := SingularSeries(k, maxP) * float64(b)
		rows = append(rows, HardyRow{
			K:        k,
			KMod6:    k % 6,
			B:        b,
			SCond:    sCond,
			Expected: float64(nTrue) * sCond / lnP,
			Observed: gapCounts[k],
		})
	}

	return HardyLittlewood{Rows: rows}
}
