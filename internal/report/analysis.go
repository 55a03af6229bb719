package report

import (
	"fmt"
	"strings"

	"satradar/internal/stats"
)

const wideRule = "======================================================================"

// AnalysisText renders the six-analysis report in the paper tooling's
// console layout.
func (r *Renderer) AnalysisText(sum *stats.Summary) string {
	var b strings.Builder

	b.WriteString(r.style(r.styles.Banner, wideRule) + "\n")
	b.WriteString(r.style(r.styles.Banner, "  SATELLITE PRIME ANALYSIS") + "\n")
	b.WriteString(r.style(r.styles.Banner, wideRule) + "\n")

	r.writePoisson(&b, sum)
	r.writeUniformity(&b, sum)
	r.writeResidues(&b, sum)
	r.writeSpacing(&b, sum)
	r.writeHardy(&b, sum)
	r.writeDensity(&b, sum)

	b.WriteString("\n" + r.style(r.styles.Banner, wideRule) + "\n")
	b.WriteString(r.style(r.styles.Banner, "  ANALYSIS COMPLETE") + "\n")
	b.WriteString(r.style(r.styles.Banner, wideRule) + "\n")
	return b.String()
}

func (r *Renderer) section(b *strings.Builder, title string) {
	b.WriteString("\n" + r.style(r.styles.Section, "--- "+title+" ---") + "\n")
}

func (r *Renderer) writePoisson(b *strings.Builder, sum *stats.Summary) {
	p := sum.Poisson
	r.section(b, "1. POISSON FIT (CORRECTED)")
	fmt.Fprintf(b, "  Stars with ≥1 satellite: %d\n", sum.Dataset.NWith)
	fmt.Fprintf(b, "  Inferred total (N_true): %d\n", p.NTrue)
	fmt.Fprintf(b, "  Zero-satellite stars: ~%d\n", p.NZero)
	fmt.Fprintf(b, "  Corrected λ = %d/%d = %.3f\n", len(sum.Dataset.AllGaps), p.NTrue, p.LambdaCorrected)
	fmt.Fprintf(b, "  Dispersion index: %.3f\n", p.Dispersion)

	fmt.Fprintf(b, "\n  %3s %6s %8s %6s\n", "k", "Obs", "Poisson", "Ratio")
	for _, row := range p.Rows {
		fmt.Fprintf(b, "  %3d %6d %8.1f %6.2f\n", row.K, row.Observed, row.Expected, row.Ratio)
	}
}

func (r *Renderer) writeUniformity(b *strings.Builder, sum *stats.Summary) {
	u := sum.Uniformity
	r.section(b, "2. GAP UNIFORMITY")
	fmt.Fprintf(b, "  Chi-square (%d bins): %.2f, p-value: %.4f\n", len(u.Counts), u.ChiSq, u.PValue)
}

func (r *Renderer) writeResidues(b *strings.Builder, sum *stats.Summary) {
	r.section(b, "3. MOD-30 RESIDUE STRUCTURE")
	fmt.Fprintf(b, "  %5s %4s %6s %6s\n", "k%30", "k%6", "Count", "%")
	for _, row := range sum.Residues.Rows {
		fmt.Fprintf(b, "  %5d %4d %6d %5.1f%%\n", row.Mod30, row.Mod6, row.Count, row.Percent)
	}
	if sum.Residues.Other > 0 {
		line := fmt.Sprintf("  [!] %d gaps outside admissible classes", sum.Residues.Other)
		b.WriteString(r.style(r.styles.Bad, line) + "\n")
	}
}

func (r *Renderer) writeSpacing(b *strings.Builder, sum *stats.Summary) {
	sp := sum.Spacing
	r.section(b, "4. NEAREST-SATELLITE CDF")
	fmt.Fprintf(b, "  Average ln(P): %.1f\n", sp.MeanLnP)
	for _, row := range sp.Rows {
		fmt.Fprintf(b, "  k ≤ %4d: Cramér=%.3f, Obs=%.3f, ratio=%.2f\n",
			row.Threshold, row.Cramer, row.Observed, row.Ratio)
	}
}

func (r *Renderer) writeHardy(b *strings.Builder, sum *stats.Summary) {
	r.section(b, "5. CONDITIONAL HARDY-LITTLEWOOD")
	fmt.Fprintf(b, "  %3s %4s %5s %7s %6s %4s\n", "k", "k%6", "B(k)", "S_cond", "E", "Obs")
	for _, row := range sum.Hardy.Rows {
		fmt.Fprintf(b, "  %3d %4d %5d %7.3f %6.2f %4d\n",
			row.K, row.KMod6, row.B, row.SCond, row.Expected, row.Observed)
	}
}

func (r *Renderer) writeDensity(b *strings.Builder, sum *stats.Summary) {
	r.section(b, "6. SATELLITE DENSITY VS n")
	if len(sum.Density.Rows) == 0 {
		b.WriteString("  (no stars in the 50B-200B windows)\n")
		return
	}
	for _, row := range sum.Density.Rows {
		fmt.Fprintf(b, "  [%dB,%dB): %4d stars, obs=%.2f, Cramér=%.2f, ratio=%.3f\n",
			row.Lo/1_000_000_000, row.Hi/1_000_000_000,
			row.Stars, row.Observed, row.Cramer, row.Ratio)
	}
}
