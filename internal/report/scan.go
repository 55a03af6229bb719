package report

import (
	"fmt"
	"strings"
	"time"

	"satradar/internal/scan"
)

const rule = "=================================================="

// totalsElapsedUnit keeps elapsed times readable without dropping quick
// runs to zero.
const totalsElapsedUnit = 10 * time.Millisecond

// ScanReport renders the end-of-scan summary with one line per base that
// produced satellites. Twin gaps are marked with a star.
func (r *Renderer) ScanReport(results []scan.BaseResult, totals scan.Totals) string {
	var b strings.Builder

	b.WriteString(r.style(r.styles.Banner, rule) + "\n")
	b.WriteString(r.style(r.styles.Banner, "  SATELLITE RADAR - SCAN COMPLETE") + "\n")
	b.WriteString(r.style(r.styles.Banner, rule) + "\n")

	for _, res := range results {
		if len(res.Hits) == 0 {
			continue
		}
		gaps := make([]string, len(res.Hits))
		for i, h := range res.Hits {
			if h.Twin {
				gaps[i] = r.style(r.styles.Twin, fmt.Sprintf("%d*", h.K))
			} else {
				gaps[i] = fmt.Sprintf("%d", h.K)
			}
		}
		line := fmt.Sprintf("  n = %-12s satellites at k = %s",
			res.Base.String(), strings.Join(gaps, ", "))
		b.WriteString(r.style(r.styles.Hit, line) + "\n")
	}

	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %s %d\n",
		r.style(r.styles.Label, "Stars surveyed:      "), totals.Stars))
	b.WriteString(fmt.Sprintf("  %s %s\n",
		r.style(r.styles.Label, "Satellites captured: "),
		r.style(r.styles.Value, fmt.Sprintf("%d", totals.Satellites))))
	b.WriteString(fmt.Sprintf("  %s %s\n",
		r.style(r.styles.Label, "Twin primes (P, P-2):"),
		r.style(r.styles.Twin, fmt.Sprintf("%d", totals.Twins))))
	b.WriteString(fmt.Sprintf("  %s %d tested, %d filtered, %d rejected\n",
		r.style(r.styles.Label, "Candidates:          "),
		totals.Tested, totals.Filtered, totals.Rejected))
	b.WriteString(fmt.Sprintf("  %s %s\n",
		r.style(r.styles.Label, "Elapsed:             "),
		totals.Elapsed.Round(totalsElapsedUnit).String()))

	return b.String()
}
