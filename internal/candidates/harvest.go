package candidates

import (
	"context"
	"math/big"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/net/html"
)

// discoveryPattern matches announcement lines in survey logs, e.g.
// "QUADRUPLET: 117309848" or "Sequence: 2156109985".
var discoveryPattern = regexp.MustCompile(`(?:Sequence|QUADRUPLET):\s*(\d+)`)

// harvestGlobs are the file shapes a harvest considers.
var harvestGlobs = []string{"*.log", "*.txt", "*.html"}

// HarvestSource scrapes candidate bases out of discovery files in a
// directory. Plain log and text files are pattern-matched directly; HTML
// pages are reduced to their text content first. Unreadable files are
// skipped with a warning rather than failing the harvest; a half-written
// log must not sink a whole run.
type HarvestSource struct {
	dir     string
	pattern *regexp.Regexp
	logger  *zap.Logger
}

// HarvestOption customizes a HarvestSource.
type HarvestOption func(*HarvestSource)

// WithPattern overrides the discovery pattern. The first capture group
// must hold the decimal base.
func WithPattern(re *regexp.Regexp) HarvestOption {
	return func(h *HarvestSource) { h.pattern = re }
}

// WithLogger attaches a logger for skip warnings.
func WithLogger(logger *zap.Logger) HarvestOption {
	return func(h *HarvestSource) { h.logger = logger }
}

// HarvestDir builds a source over the given directory.
func HarvestDir(dir string, opts ...HarvestOption) *HarvestSource {
	h := &HarvestSource{
		dir:     dir,
		pattern: discoveryPattern,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *HarvestSource) Name() string { return "harvest:" + h.dir }

func (h *HarvestSource) Gather(ctx context.Context) ([]*big.Int, error) {
	files, err := harvestFiles(h.dir)
	if err != nil {
		return nil, err
	}

	var values []*big.Int
	for _, name := range files {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		found, err := harvestFile(name, h.pattern)
		if err != nil {
			h.logger.Warn("skipping unreadable harvest file",
				zap.String("file", name), zap.Error(err))
			continue
		}
		if len(found) > 0 {
			h.logger.Debug("harvested discovery file",
				zap.String("file", name), zap.Int("bases", len(found)))
		}
		values = append(values, found...)
	}
	return values, nil
}

// harvestFiles lists the harvestable files under dir, sorted for a
// deterministic pass order.
func harvestFiles(dir string) ([]string, error) {
	var files []string
	for _, glob := range harvestGlobs {
		matches, err := filepath.Glob(filepath.Join(dir, glob))
		if err != nil {
			return nil, err
		}
		files = append(files, matches...)
	}
	sort.Strings(files)
	return files, nil
}

// harvestFile extracts every pattern match from one file.
func harvestFile(name string, pattern *regexp.Regexp) ([]*big.Int, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, err
	}

	text := string(data)
	if strings.EqualFold(filepath.Ext(name), ".html") {
		text, err = htmlText(text)
		if err != nil {
			return nil, err
		}
	}

	var values []*big.Int
	for _, m := range pattern.FindAllStringSubmatch(text, -1) {
		if len(m) < 2 {
			continue
		}
		if v, ok := new(big.Int).SetString(m[1], 10); ok {
			values = append(values, v)
		}
	}
	return values, nil
}

// htmlText strips an HTML document down to its visible text, so the
// discovery pattern sees announcement lines and not markup.
func htmlText(s string) (string, error) {
	doc, err := html.Parse(strings.NewReader(s))
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	var traverse func(*html.Node)
	traverse = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
			sb.WriteString(" ")
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			traverse(c)
		}
	}
	traverse(doc)
	return sb.String(), nil
}
