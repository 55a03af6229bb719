package figures

import (
	"fmt"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"satradar/internal/stats"
)

// figure1 shows the gap distribution against the uniform expectation and
// the mod-30 residue structure.
func (g *Generator) figure1(sum *stats.Summary) (*plot.Plot, *plot.Plot, error) {
	left, err := g.gapHistogram(sum)
	if err != nil {
		return nil, nil, err
	}
	right, err := g.mod30Bars(sum)
	if err != nil {
		return nil, nil, err
	}
	return left, right, nil
}

func (g *Generator) gapHistogram(sum *stats.Summary) (*plot.Plot, error) {
	const binWidth = 250
	nbins := sum.Radius / binWidth
	if nbins < 1 {
		nbins = 1
	}

	counts := make(plotter.Values, nbins)
	for _, gap := range sum.Dataset.AllGaps {
		idx := gap / binWidth
		if idx >= nbins {
			idx = nbins - 1
		}
		counts[idx]++
	}

	title := fmt.Sprintf("(a) Gap distribution (uniform, p = %.2f)", sum.Uniformity.PValue)
	p := newPanel(title, "Gap k in P - k", "Count")
	p.Add(plotter.NewGrid())

	bars, err := plotter.NewBarChart(counts, vg.Points(10))
	if err != nil {
		return nil, err
	}
	bars.Color = colorObservedSoft
	bars.LineStyle.Color = colorEdge
	bars.LineStyle.Width = vg.Points(0.5)
	p.Add(bars)
	p.Legend.Add("Observed", bars)

	// Label bin starts at whole thousands only.
	labels := make([]string, nbins)
	for i := range labels {
		if edge := i * binWidth; edge%1000 == 0 {
			labels[i] = strconv.Itoa(edge)
		}
	}
	p.NominalX(labels...)

	uniform := float64(len(sum.Dataset.AllGaps)) * binWidth / float64(sum.Radius)
	expect, err := plotter.NewLine(plotter.XYs{
		{X: -0.5, Y: uniform},
		{X: float64(nbins) - 0.5, Y: uniform},
	})
	if err != nil {
		return nil, err
	}
	expect.LineStyle.Color = colorModel
	expect.LineStyle.Width = vg.Points(1.5)
	expect.LineStyle.Dashes = dashed(vg.Points(6), vg.Points(3))
	p.Add(expect)
	p.Legend.Add(fmt.Sprintf("Uniform (%.0f/bin)", uniform), expect)
	p.Legend.Top = true

	return p, nil
}

func (g *Generator) mod30Bars(sum *stats.Summary) (*plot.Plot, error) {
	rows := sum.Residues.Rows

	// One bar chart per color class, zeroed at the other's positions, so
	// the k = 0 (mod 6) classes stand out in red.
	red := make(plotter.Values, len(rows))
	blue := make(plotter.Values, len(rows))
	labels := make([]string, len(rows))
	for i, row := range rows {
		labels[i] = strconv.Itoa(row.Mod30)
		if row.Mod6 == 0 {
			red[i] = float64(row.Count)
		} else {
			blue[i] = float64(row.Count)
		}
	}

	p := newPanel("(b) Mod-30 residue structure", "k mod 30", "Count")
	p.Add(plotter.NewGrid())

	redBars, err := plotter.NewBarChart(red, vg.Points(18))
	if err != nil {
		return nil, err
	}
	redBars.Color = colorModelSoft
	redBars.LineStyle.Width = vg.Points(0.5)

	blueBars, err := plotter.NewBarChart(blue, vg.Points(18))
	if err != nil {
		return nil, err
	}
	blueBars.Color = colorObservedSoft
	blueBars.LineStyle.Width = vg.Points(0.5)

	p.Add(redBars, blueBars)
	p.Legend.Add("k ≡ 0 (mod 6)", redBars)
	p.Legend.Add("k ≡ 2 (mod 6)", blueBars)
	p.Legend.Top = true
	p.NominalX(labels...)

	flat := float64(len(sum.Dataset.AllGaps)) / float64(len(rows))
	expect, err := plotter.NewLine(plotter.XYs{
		{X: -0.5, Y: flat},
		{X: float64(len(rows)) - 0.5, Y: flat},
	})
	if err != nil {
		return nil, err
	}
	expect.LineStyle.Color = colorGrey
	expect.LineStyle.Dashes = dashed(vg.Points(1.5), vg.Points(3))
	p.Add(expect)

	return p, nil
}
