package figures

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	"gonum.org/v1/gonum/stat/distuv"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"satradar/internal/stats"
)

// figure2 shows the nearest-satellite CDF against the Cramér exponential
// and the corrected Poisson fit of satellites per star.
func (g *Generator) figure2(sum *stats.Summary) (*plot.Plot, *plot.Plot, error) {
	left, err := g.nearestCDF(sum)
	if err != nil {
		return nil, nil, err
	}
	right, err := g.poissonBars(sum)
	if err != nil {
		return nil, nil, err
	}
	return left, right, nil
}

func (g *Generator) nearestCDF(sum *stats.Summary) (*plot.Plot, error) {
	minGaps := sum.Dataset.MinGaps()
	sort.Ints(minGaps)

	obs := make(plotter.XYs, len(minGaps))
	for i, gap := range minGaps {
		obs[i] = plotter.XY{
			X: float64(gap),
			Y: float64(i+1) / float64(len(minGaps)),
		}
	}

	lnP := sum.Spacing.MeanLnP
	const samples = 500
	model := make(plotter.XYs, samples)
	for i := 0; i < samples; i++ {
		k := 2 + float64(i)*(float64(sum.Radius)-2)/float64(samples-1)
		model[i] = plotter.XY{X: k, Y: 1 - math.Exp(-k/(3*lnP))}
	}

	p := newPanel("(a) Nearest satellite CDF", "Nearest satellite gap k", "Cumulative probability")
	p.Add(plotter.NewGrid())

	obsLine, err := plotter.NewLine(obs)
	if err != nil {
		return nil, err
	}
	obsLine.LineStyle.Color = colorObserved
	obsLine.LineStyle.Width = vg.Points(2)

	modelLine, err := plotter.NewLine(model)
	if err != nil {
		return nil, err
	}
	modelLine.LineStyle.Color = colorModel
	modelLine.LineStyle.Width = vg.Points(1.5)
	modelLine.LineStyle.Dashes = dashed(vg.Points(6), vg.Points(3))

	p.Add(obsLine, modelLine)
	p.Legend.Add("Observed CDF", obsLine)
	p.Legend.Add("Cramér: 1 - exp(-k/3lnP)", modelLine)
	p.Legend.Top = true
	p.X.Min, p.X.Max = 0, float64(sum.Radius)

	return p, nil
}

func (g *Generator) poissonBars(sum *stats.Summary) (*plot.Plot, error) {
	fit := sum.Poisson
	const kMax = 16

	obs := make(plotter.Values, kMax)
	model := make(plotter.Values, kMax)
	labels := make([]string, kMax)
	dist := distuv.Poisson{Lambda: fit.LambdaCorrected}
	for k := 0; k < kMax; k++ {
		labels[k] = strconv.Itoa(k)
		if k < len(fit.Rows) {
			obs[k] = float64(fit.Rows[k].Observed)
			model[k] = fit.Rows[k].Expected
		} else {
			for _, c := range sum.Dataset.SatsPerStar {
				if c == k {
					obs[k]++
				}
			}
			model[k] = float64(fit.NTrue) * dist.Prob(float64(k))
		}
	}

	title := fmt.Sprintf("(b) Poisson fit (N = %d, disp. = %.2f)", fit.NTrue, fit.Dispersion)
	p := newPanel(title, "Satellites per main star", "Number of stars")
	p.Add(plotter.NewGrid())

	obsBars, err := plotter.NewBarChart(obs, vg.Points(6))
	if err != nil {
		return nil, err
	}
	obsBars.Color = colorObservedSoft
	obsBars.Offset = -vg.Points(3.5)

	modelBars, err := plotter.NewBarChart(model, vg.Points(6))
	if err != nil {
		return nil, err
	}
	modelBars.Color = colorModelSoft
	modelBars.Offset = vg.Points(3.5)

	p.Add(obsBars, modelBars)
	p.Legend.Add("Observed", obsBars)
	p.Legend.Add(fmt.Sprintf("Poisson (λ=%.2f)", fit.LambdaCorrected), modelBars)
	p.Legend.Top = true
	p.NominalX(labels...)

	// The zero-multiplicity bar is inferred, not observed.
	star, err := plotter.NewLabels(plotter.XYLabels{
		XYs:    plotter.XYs{{X: -0.15, Y: obs[0] + 5}},
		Labels: []string{"*"},
	})
	if err != nil {
		return nil, err
	}
	for i := range star.TextStyle {
		star.TextStyle[i].Color = colorObserved
	}
	p.Add(star)

	return p, nil
}
