package figures

import (
	"fmt"
	"math"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"satradar/internal/stats"
)

// figure4 shows the close encounters below k = 100 and the fine-grained
// census of small admissible gaps.
func (g *Generator) figure4(sum *stats.Summary) (*plot.Plot, *plot.Plot, error) {
	left, err := g.closeEncounters(sum)
	if err != nil {
		return nil, nil, err
	}
	right, err := g.smallGapCensus(sum)
	if err != nil {
		return nil, nil, err
	}
	return left, right, nil
}

func (g *Generator) closeEncounters(sum *stats.Summary) (*plot.Plot, error) {
	ds := sum.Dataset

	var points plotter.XYs
	var tagXYs plotter.XYs
	var tags []string
	for _, star := range ds.Stars {
		for _, gap := range ds.GapsByStar[star] {
			if gap > 100 {
				continue
			}
			x := float64(star) / 1e9
			points = append(points, plotter.XY{X: x, Y: float64(gap)})
			if gap <= 20 {
				tagXYs = append(tagXYs, plotter.XY{X: x, Y: float64(gap)})
				tags = append(tags, fmt.Sprintf("k=%d", gap))
			}
		}
	}

	p := newPanel("(a) Close encounters (k <= 100)", "Main star n (billions)", "Gap k")
	p.Add(plotter.NewGrid())

	scatter, err := plotter.NewScatter(points)
	if err != nil {
		return nil, err
	}
	scatter.GlyphStyle.Color = colorGold
	scatter.GlyphStyle.Radius = vg.Points(4)
	scatter.GlyphStyle.Shape = draw.PyramidGlyph{}
	p.Add(scatter)

	if len(tags) > 0 {
		tagged, err := plotter.NewLabels(plotter.XYLabels{XYs: tagXYs, Labels: tags})
		if err != nil {
			return nil, err
		}
		tagged.Offset = vg.Point{X: vg.Points(3), Y: vg.Points(3)}
		for i := range tagged.TextStyle {
			tagged.TextStyle[i].Font.Size = vg.Points(7)
		}
		p.Add(tagged)
	}

	// Sexy prime line at k = 6.
	sexy, err := plotter.NewLine(plotter.XYs{
		{X: densityLo / 1e9, Y: 6},
		{X: 205, Y: 6},
	})
	if err != nil {
		return nil, err
	}
	sexy.LineStyle.Color = colorModel
	sexy.LineStyle.Dashes = dashed(vg.Points(1.5), vg.Points(3))
	p.Add(sexy)

	note, err := plotter.NewLabels(plotter.XYLabels{
		XYs:    plotter.XYs{{X: 55, Y: 8}},
		Labels: []string{"k=6 (sexy primes)"},
	})
	if err != nil {
		return nil, err
	}
	for i := range note.TextStyle {
		note.TextStyle[i].Color = colorModel
		note.TextStyle[i].Font.Size = vg.Points(8)
	}
	p.Add(note)

	p.X.Min, p.X.Max = densityLo/1e9, 205

	return p, nil
}

func (g *Generator) smallGapCensus(sum *stats.Summary) (*plot.Plot, error) {
	gapCounts := make(map[int]int)
	for _, gap := range sum.Dataset.AllGaps {
		gapCounts[gap]++
	}

	var counts plotter.Values
	var labels []string
	for k := 2; k < 62; k += 2 {
		if k%3 == 1 {
			continue
		}
		counts = append(counts, float64(gapCounts[k]))
		labels = append(labels, strconv.Itoa(k))
	}

	ylabel := fmt.Sprintf("Count (over %d stars)", sum.Dataset.NWith)
	p := newPanel("(b) Fine-grained small-gap census (k < 62)", "Gap k", ylabel)
	p.Add(plotter.NewGrid())

	bars, err := plotter.NewBarChart(counts, vg.Points(8))
	if err != nil {
		return nil, err
	}
	bars.Color = colorObservedSoft
	bars.LineStyle.Width = vg.Points(0.5)
	p.Add(bars)
	p.NominalX(labels...)
	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YCenter

	// Flat expectation over the admissible gap classes in the window,
	// 1667 of them at radius 5000.
	admissible := 0
	for k := 2; k <= sum.Radius; k += 2 {
		if k%3 != 1 {
			admissible++
		}
	}
	flat := float64(len(sum.Dataset.AllGaps)) / float64(admissible)
	expect, err := plotter.NewLine(plotter.XYs{
		{X: -0.5, Y: flat},
		{X: float64(len(counts)) - 0.5, Y: flat},
	})
	if err != nil {
		return nil, err
	}
	expect.LineStyle.Color = colorGrey
	expect.LineStyle.Dashes = dashed(vg.Points(1.5), vg.Points(3))
	p.Add(expect)

	return p, nil
}
