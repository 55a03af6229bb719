package stats

// admissibleMod30 are the gap residues mod 30 that survive the parity and
// mod-3 constraints below a giant with P = 1 (mod 3).
var admissibleMod30 = []int{0, 2, 6, 8, 12, 14, 18, 20, 24, 26}

// ResidueRow is one admissible residue class with its population share.
type ResidueRow struct {
	Mod30   int
	Mod6    int
	Count   int
	Percent float64
}

// Residues is the mod-30 structure of the gap population. Other counts
// gaps outside the admissible classes; for scanner-produced catalogs it
// must be zero.
type Residues struct {
	Rows  []ResidueRow
	Other int
}

// CountResidues tallies gaps by residue class mod 30.
func CountResidues(d *Dataset) Residues {
	byResidue := make(map[int]int)
	for _, g := range d.AllGaps {
		byResidue[g%30]++
	}

	total := float64(len(d.AllGaps))
	rows := make([]ResidueRow, 0, len(admissibleMod30))
	admissibleTotal := 0
	for _, r := range admissibleMod30 {
		count := byResidue[r]
		admissibleTotal += count
		rows = append(rows, ResidueRow{
			Mod30:   r,
			Mod6:    r % 6,
			Count:   count,
			Percent: float64(count) / total * 100,
		})
	}

	return Residues{
		Rows:  rows,
		Other: len(d.AllGaps) - admissibleTotal,
	}
}
