package report

import (
	"fmt"
	"strings"

	"satradar/internal/scan"
	"satradar/internal/stats"
)

// ScanMarkdown renders the scan summary as a markdown document, suitable
// for saving next to the catalog or pretty-printing via Markdown.
func ScanMarkdown(results []scan.BaseResult, totals scan.Totals) string {
	var b strings.Builder

	b.WriteString("# Satellite Radar Scan\n\n")
	fmt.Fprintf(&b, "- Stars surveyed: **%d**\n", totals.Stars)
	fmt.Fprintf(&b, "- Satellites captured: **%d**\n", totals.Satellites)
	fmt.Fprintf(&b, "- Twin primes (P, P-2): **%d**\n", totals.Twins)
	fmt.Fprintf(&b, "- Candidates: %d tested, %d filtered, %d rejected\n", totals.Tested, totals.Filtered, totals.Rejected)
	fmt.Fprintf(&b, "- Elapsed: %s\n", totals.Elapsed.Round(totalsElapsedUnit))

	var withHits []scan.BaseResult
	for _, res := range results {
		if len(res.Hits) > 0 {
			withHits = append(withHits, res)
		}
	}
	if len(withHits) == 0 {
		return b.String()
	}

	b.WriteString("\n## Hits\n\n")
	b.WriteString("| Base n | Gaps k | Twin |\n")
	b.WriteString("|---:|---|:-:|\n")
	for _, res := range withHits {
		gaps := make([]string, len(res.Hits))
		twin := ""
		for i, h := range res.Hits {
			gaps[i] = fmt.Sprintf("%d", h.K)
			if h.Twin {
				twin = "yes"
			}
		}
		fmt.Fprintf(&b, "| %s | %s | %s |\n", res.Base.String(), strings.Join(gaps, ", "), twin)
	}
	return b.String()
}

// AnalysisMarkdown renders the six analyses as a markdown document.
func AnalysisMarkdown(sum *stats.Summary) string {
	var b strings.Builder

	b.WriteString("# Satellite Prime Analysis\n\n")
	fmt.Fprintf(&b, "Catalog: %d satellites across %d stars, scan radius %d.\n",
		len(sum.Dataset.AllGaps), sum.Dataset.NWith, sum.Radius)

	p := sum.Poisson
	b.WriteString("\n## 1. Poisson fit (corrected)\n\n")
	fmt.Fprintf(&b, "- Stars with ≥1 satellite: %d\n", sum.Dataset.NWith)
	fmt.Fprintf(&b, "- Inferred total N_true: %d (≈%d zero-satellite stars)\n", p.NTrue, p.NZero)
	fmt.Fprintf(&b, "- Corrected λ: %.3f\n", p.LambdaCorrected)
	fmt.Fprintf(&b, "- Dispersion index: %.3f\n\n", p.Dispersion)
	b.WriteString("| k | Obs | Poisson | Ratio |\n|--:|--:|--:|--:|\n")
	for _, row := range p.Rows {
		fmt.Fprintf(&b, "| %d | %d | %.1f | %.2f |\n", row.K, row.Observed, row.Expected, row.Ratio)
	}

	u := sum.Uniformity
	b.WriteString("\n## 2. Gap uniformity\n\n")
	fmt.Fprintf(&b, "Chi-square over %d bins of width %d: **%.2f** (dof %d, p = %.4f).\n",
		len(u.Counts), u.BinWidth, u.ChiSq, u.DoF, u.PValue)

	b.WriteString("\n## 3. Mod-30 residue structure\n\n")
	b.WriteString("| k mod 30 | k mod 6 | Count | % |\n|--:|--:|--:|--:|\n")
	for _, row := range sum.Residues.Rows {
		fmt.Fprintf(&b, "| %d | %d | %d | %.1f%% |\n", row.Mod30, row.Mod6, row.Count, row.Percent)
	}
	if sum.Residues.Other > 0 {
		fmt.Fprintf(&b, "\n**Warning**: %d gaps outside admissible classes.\n", sum.Residues.Other)
	}

	sp := sum.Spacing
	b.WriteString("\n## 4. Nearest-satellite CDF\n\n")
	fmt.Fprintf(&b, "Average ln(P): %.1f\n\n", sp.MeanLnP)
	b.WriteString("| k ≤ | Cramér | Observed | Ratio |\n|--:|--:|--:|--:|\n")
	for _, row := range sp.Rows {
		fmt.Fprintf(&b, "| %d | %.3f | %.3f | %.2f |\n", row.Threshold, row.Cramer, row.Observed, row.Ratio)
	}

	b.WriteString("\n## 5. Conditional Hardy-Littlewood\n\n")
	b.WriteString("| k | k mod 6 | B(k) | S_cond | E | Obs |\n|--:|--:|--:|--:|--:|--:|\n")
	for _, row := range sum.Hardy.Rows {
		fmt.Fprintf(&b, "| %d | %d | %d | %.3f | %.2f | %d |\n",
			row.K, row.KMod6, row.B, row.SCond, row.Expected, row.Observed)
	}

	b.WriteString("\n## 6. Satellite density vs n\n\n")
	if len(sum.Density.Rows) == 0 {
		b.WriteString("No stars in the 50B-200B windows.\n")
	} else {
		b.WriteString("| Window | Stars | Observed | Cramér | Ratio |\n|:--|--:|--:|--:|--:|\n")
		for _, row := range sum.Density.Rows {
			fmt.Fprintf(&b, "| [%dB, %dB) | %d | %.2f | %.2f | %.3f |\n",
				row.Lo/1_000_000_000, row.Hi/1_000_000_000,
				row.Stars, row.Observed, row.Cramer, row.Ratio)
		}
	}

	return b.String()
}
