package sink

import (
	"slices"
	"strings"

	"github.com/matzehuels/oncogrid/pkg/errors"
	"github.com/matzehuels/oncogrid/pkg/grid"
)

// Output formats.
const (
	FormatSVG  = "svg"
	FormatJSON = "json"
	FormatPNG  = "png"
)

// ValidFormats lists the supported output formats.
var ValidFormats = []string{FormatSVG, FormatJSON, FormatPNG}

// ValidateFormat checks that format is supported.
func ValidateFormat(format string) error {
	if !slices.Contains(ValidFormats, format) {
		return errors.New(errors.ErrCodeInvalidFormat, "unsupported format %q (valid: %s)", format, strings.Join(ValidFormats, ", "))
	}
	return nil
}

// ValidateFormats checks every format.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// Options selects what Render produces.
type Options struct {
	Formats      []string
	Tooltips     bool
	CellTemplate string
	Title        string
	Background   string
	Scale        float64
}

// Render draws a frame in every requested format. The result is keyed by
// format.
func Render(f *grid.Frame, opts Options) (map[string][]byte, error) {
	if err := ValidateFormats(opts.Formats); err != nil {
		return nil, err
	}
	tmpl := opts.CellTemplate
	if tmpl == "" {
		tmpl = grid.DefaultMainGridTemplate
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		var (
			data []byte
			err  error
		)
		switch format {
		case FormatSVG:
			svgOpts := []SVGOption{WithCellTemplate(tmpl), WithTitle(opts.Title)}
			if opts.Background != "" {
				svgOpts = append(svgOpts, WithBackground(opts.Background))
			}
			if opts.Tooltips {
				svgOpts = append(svgOpts, WithTooltips())
			}
			data = RenderSVG(f, svgOpts...)
		case FormatJSON:
			jsonOpts := []JSONOption{WithJSONCellTemplate(tmpl)}
			if opts.Tooltips {
				jsonOpts = append(jsonOpts, WithJSONTooltips())
			}
			data, err = RenderJSON(f, jsonOpts...)
		case FormatPNG:
			pngOpts := []PNGOption{WithScale(opts.Scale)}
			if opts.Background != "" {
				pngOpts = append(pngOpts, WithPNGBackground(opts.Background))
			}
			data, err = RenderPNG(f, pngOpts...)
		}
		if err != nil {
			return nil, errors.Wrap(errors.GetCode(err), err, "render %s", format)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}
