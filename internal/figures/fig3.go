package figures

import (
	"fmt"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"satradar/internal/stats"
)

const (
	densityLo = 50e9
	densityHi = 200e9
)

// figure3 shows satellite density against base size with the Cramér
// expectation, and the observed-to-expected ratio by region.
func (g *Generator) figure3(sum *stats.Summary) (*plot.Plot, *plot.Plot, error) {
	left, err := g.densityScatter(sum)
	if err != nil {
		return nil, nil, err
	}
	right, err := g.densityRatios(sum)
	if err != nil {
		return nil, nil, err
	}
	return left, right, nil
}

func (g *Generator) densityScatter(sum *stats.Summary) (*plot.Plot, error) {
	ds := sum.Dataset

	points := make(plotter.XYs, 0, len(ds.Stars))
	for i, star := range ds.Stars {
		points = append(points, plotter.XY{
			X: float64(star) / 1e9,
			Y: float64(ds.SatsPerStar[i]),
		})
	}

	// Binned means over thirty windows.
	const nbins = 30
	width := (densityHi - densityLo) / nbins
	var means plotter.XYs
	for i := 0; i < nbins; i++ {
		lo := densityLo + float64(i)*width
		hi := lo + width
		var satSum, count float64
		for j, star := range ds.Stars {
			if s := float64(star); s >= lo && s < hi {
				satSum += float64(ds.SatsPerStar[j])
				count++
			}
		}
		if count == 0 {
			continue
		}
		means = append(means, plotter.XY{X: (lo + hi) / 2 / 1e9, Y: satSum / count})
	}

	// Cramér expectation R/ln(P) across the window.
	const samples = 200
	model := make(plotter.XYs, samples)
	for i := 0; i < samples; i++ {
		n := densityLo + float64(i)*(densityHi-densityLo)/float64(samples-1)
		d := 46*math.Log10(n) + 1.67
		model[i] = plotter.XY{X: n / 1e9, Y: float64(sum.Radius) / (d * math.Ln10)}
	}

	p := newPanel("(a) Satellite density vs n", "n (billions)", "Satellites per star")
	p.Add(plotter.NewGrid())

	scatter, err := plotter.NewScatter(points)
	if err != nil {
		return nil, err
	}
	scatter.GlyphStyle.Color = colorScatterFaint
	scatter.GlyphStyle.Radius = vg.Points(1)
	scatter.GlyphStyle.Shape = draw.CircleGlyph{}
	p.Add(scatter)

	meanLine, meanDots, err := plotter.NewLinePoints(means)
	if err != nil {
		return nil, err
	}
	meanLine.LineStyle.Color = colorModel
	meanLine.LineStyle.Width = vg.Points(1.5)
	meanDots.GlyphStyle.Color = colorModel
	meanDots.GlyphStyle.Radius = vg.Points(2)
	meanDots.GlyphStyle.Shape = draw.CircleGlyph{}

	modelLine, err := plotter.NewLine(model)
	if err != nil {
		return nil, err
	}
	modelLine.LineStyle.Color = colorCramer
	modelLine.LineStyle.Width = vg.Points(1.5)
	modelLine.LineStyle.Dashes = dashed(vg.Points(6), vg.Points(3))

	p.Add(meanLine, meanDots, modelLine)
	p.Legend.Add("Binned mean", meanLine)
	p.Legend.Add("Cramér: R/ln P", modelLine)
	p.Legend.Top = true
	p.Y.Min, p.Y.Max = 0, 16
	p.X.Min, p.X.Max = densityLo/1e9, densityHi/1e9

	return p, nil
}

func (g *Generator) densityRatios(sum *stats.Summary) (*plot.Plot, error) {
	ds := sum.Dataset

	// Twelve windows; regions with fewer than ten stars say nothing.
	const nbins = 12
	width := (densityHi - densityLo) / nbins
	var ratios plotter.Values
	var labels []string
	for i := 0; i < nbins; i++ {
		lo := densityLo + float64(i)*width
		hi := lo + width
		var digitSum, satSum, count float64
		for j, star := range ds.Stars {
			if s := float64(star); s >= lo && s < hi {
				digitSum += 46*math.Log10(s) + 1.67
				satSum += float64(ds.SatsPerStar[j])
				count++
			}
		}
		if count < 10 {
			continue
		}
		dMean := digitSum / count
		cramer := float64(sum.Radius) / (dMean * math.Ln10)
		ratios = append(ratios, (satSum/count)/cramer)
		labels = append(labels, fmt.Sprintf("%.0f", (lo+hi)/2/1e9))
	}

	p := newPanel("(b) Ratio by region", "n bin center (B)", "Observed / Cramér")
	p.Add(plotter.NewGrid())

	bars, err := plotter.NewBarChart(ratios, vg.Points(16))
	if err != nil {
		return nil, err
	}
	bars.Color = colorRatioSoft
	bars.LineStyle.Width = vg.Points(0.5)
	p.Add(bars)
	p.NominalX(labels...)

	agreement, err := plotter.NewLine(plotter.XYs{
		{X: -0.5, Y: 1},
		{X: math.Max(float64(len(ratios))-0.5, 0.5), Y: 1},
	})
	if err != nil {
		return nil, err
	}
	agreement.LineStyle.Color = colorModel
	agreement.LineStyle.Width = vg.Points(1.5)
	agreement.LineStyle.Dashes = dashed(vg.Points(6), vg.Points(3))
	p.Add(agreement)
	p.Legend.Add("Perfect agreement", agreement)
	p.Legend.Top = true
	p.Y.Min, p.Y.Max = 0.8, 1.3

	return p, nil
}
