// Package figures renders the paper's four figures from a satellite
// catalog summary: gap distribution and residue structure, nearest
// satellite CDF and Poisson fit, density versus base size, and close
// encounters with the small-gap census.
package figures

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"satradar/internal/stats"
)

// Palette shared with the report styling.
var (
	colorObserved = color.NRGBA{R: 0x34, G: 0x98, B: 0xdb, A: 0xff} // blue
	colorModel    = color.NRGBA{R: 0xe7, G: 0x4c, B: 0x3c, A: 0xff} // red
	colorCramer   = color.NRGBA{R: 0x27, G: 0xae, B: 0x60, A: 0xff} // green
	colorRatio    = color.NRGBA{R: 0x9b, G: 0x59, B: 0xb6, A: 0xff} // purple
	colorGold     = color.NRGBA{R: 0xff, G: 0xd7, B: 0x00, A: 0xff}
	colorEdge     = color.NRGBA{R: 0x2c, G: 0x3e, B: 0x50, A: 0xff}
	colorGrey     = color.NRGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff}

	// Softer fills approximating the paper's alpha blending.
	colorObservedSoft = color.NRGBA{R: 0x34, G: 0x98, B: 0xdb, A: 0xb3}
	colorModelSoft    = color.NRGBA{R: 0xe7, G: 0x4c, B: 0x3c, A: 0x99}
	colorRatioSoft    = color.NRGBA{R: 0x9b, G: 0x59, B: 0xb6, A: 0xb3}
	colorScatterFaint = color.NRGBA{R: 0x34, G: 0x98, B: 0xdb, A: 0x40}
)

// Config controls figure output.
type Config struct {
	OutDir string
	DPI    int
}

// DefaultConfig matches the paper's rendering settings.
func DefaultConfig() Config {
	return Config{OutDir: "figures", DPI: 300}
}

// Generator renders the four figures.
type Generator struct {
	cfg    Config
	logger *zap.Logger
}

// New builds a Generator.
func New(cfg Config, logger *zap.Logger) *Generator {
	if cfg.OutDir == "" {
		cfg.OutDir = DefaultConfig().OutDir
	}
	if cfg.DPI <= 0 {
		cfg.DPI = DefaultConfig().DPI
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{cfg: cfg, logger: logger}
}

// GenerateAll renders every figure and returns the written paths.
func (g *Generator) GenerateAll(sum *stats.Summary) ([]string, error) {
	if err := os.MkdirAll(g.cfg.OutDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create figure dir: %w", err)
	}

	type figure struct {
		name   string
		height vg.Length
		build  func(*stats.Summary) (*plot.Plot, *plot.Plot, error)
	}
	all := []figure{
		{"p3_fig1.png", 5 * vg.Inch, g.figure1},
		{"p3_fig2.png", 5.5 * vg.Inch, g.figure2},
		{"p3_fig3.png", 5 * vg.Inch, g.figure3},
		{"p3_fig4.png", 5 * vg.Inch, g.figure4},
	}

	var paths []string
	for _, fig := range all {
		left, right, err := fig.build(sum)
		if err != nil {
			return paths, fmt.Errorf("%s: %w", fig.name, err)
		}
		path, err := g.savePanels(fig.name, left, right, fig.height)
		if err != nil {
			return paths, fmt.Errorf("%s: %w", fig.name, err)
		}
		g.logger.Info("figure saved", zap.String("path", path))
		paths = append(paths, path)
	}
	return paths, nil
}

// savePanels lays two plots side by side and writes the PNG.
func (g *Generator) savePanels(name string, left, right *plot.Plot, height vg.Length) (string, error) {
	img := vgimg.NewWith(
		vgimg.UseWH(13*vg.Inch, height),
		vgimg.UseDPI(g.cfg.DPI),
	)
	dc := draw.New(img)

	tiles := draw.Tiles{
		Rows: 1, Cols: 2,
		PadX: vg.Millimeter * 6, PadY: vg.Millimeter * 2,
		PadTop: vg.Millimeter * 2, PadBottom: vg.Millimeter * 2,
		PadLeft: vg.Millimeter * 2, PadRight: vg.Millimeter * 2,
	}
	canvases := plot.Align([][]*plot.Plot{{left, right}}, tiles, dc)
	left.Draw(canvases[0][0])
	right.Draw(canvases[0][1])

	path := filepath.Join(g.cfg.OutDir, name)
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(f); err != nil {
		f.Close()
		return "", err
	}
	return path, f.Close()
}

// newPanel starts a titled plot with the shared grid styling.
func newPanel(title, xlabel, ylabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xlabel
	p.Y.Label.Text = ylabel
	return p
}

func dashed(length, gap vg.Length) []vg.Length {
	return []vg.Length{length, gap}
}
