// Package tooltip renders the hover text of grid cells, track cells and
// histogram bars.
//
// Tooltips are Go text/template strings. The grid ships defaults for the
// main grid ([grid.DefaultMainGridTemplate], [grid.DefaultCrosshairTemplate])
// and tracks ([track.DefaultTemplate]); each track can override its own.
// Templates may use <br> as a line break. [Plain] turns those into
// newlines for terminal and SVG title output.
//
// Parsed templates are cached by source, so rendering the same template for
// thousands of cells parses it once.
package tooltip

import (
	"bytes"
	"strings"
	"sync"
	"text/template"

	"github.com/matzehuels/oncogrid/pkg/errors"
	"github.com/matzehuels/oncogrid/pkg/grid"
	"github.com/matzehuels/oncogrid/pkg/model"
	"github.com/matzehuels/oncogrid/pkg/track"
)

// HistogramTemplate is the tooltip of a histogram bar.
const HistogramTemplate = "{{.Label}}<br> Count:{{.Count}}<br>"

// CellData is the template data of a main grid cell outside crosshair mode.
// It has the same shape as the matching fields of [grid.Hover], so a
// template works for both.
type CellData struct {
	Observation *model.Observation
	Gene        *model.Gene
	Donor       *model.Donor
}

// Renderer executes tooltip templates. The zero value is ready to use and
// safe for concurrent use.
type Renderer struct {
	mu    sync.Mutex
	cache map[string]*template.Template
}

var std Renderer

// Execute renders src with data. Missing fields render as empty.
func (r *Renderer) Execute(src string, data any) (string, error) {
	t, err := r.parse(src)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidInput, err, "execute tooltip template")
	}
	return buf.String(), nil
}

func (r *Renderer) parse(src string) (*template.Template, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t, ok := r.cache[src]; ok {
		return t, nil
	}
	t, err := template.New("tooltip").Option("missingkey=zero").Parse(src)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse tooltip template")
	}
	if r.cache == nil {
		r.cache = make(map[string]*template.Template)
	}
	r.cache[src] = t
	return t, nil
}

// Hover renders the tooltip of a hover result with its own template.
func (r *Renderer) Hover(h grid.Hover) (string, error) {
	return r.Execute(h.Template, h)
}

// Datum renders a track cell with the track's template.
func (r *Renderer) Datum(d track.Datum) (string, error) {
	src := d.Template
	if src == "" {
		src = track.DefaultTemplate
	}
	return r.Execute(src, d)
}

// Bar renders a histogram bar.
func (r *Renderer) Bar(b grid.Bar) (string, error) {
	return r.Execute(HistogramTemplate, b)
}

// Execute renders src with the shared renderer.
func Execute(src string, data any) (string, error) { return std.Execute(src, data) }

// Hover renders h with the shared renderer.
func Hover(h grid.Hover) (string, error) { return std.Hover(h) }

// Datum renders d with the shared renderer.
func Datum(d track.Datum) (string, error) { return std.Datum(d) }

// Bar renders b with the shared renderer.
func Bar(b grid.Bar) (string, error) { return std.Bar(b) }

var breaks = strings.NewReplacer("<br/>", "\n", "<br />", "\n", "<br>", "\n")

// Plain replaces <br> line breaks with newlines and trims the result.
func Plain(s string) string {
	return strings.TrimSpace(breaks.Replace(s))
}
