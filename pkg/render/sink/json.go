package sink

import (
	"encoding/json"

	"github.com/matzehuels/oncogrid/pkg/errors"
	"github.com/matzehuels/oncogrid/pkg/grid"
	"github.com/matzehuels/oncogrid/pkg/render/tooltip"
)

// JSONVersion is the version of the JSON frame format.
const JSONVersion = 1

// JSONOption configures JSON rendering.
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	tooltips     bool
	cellTemplate string
	compact      bool
}

// WithJSONTooltips adds the rendered tooltip of every main grid cell,
// keyed by observation id.
func WithJSONTooltips() JSONOption { return func(r *jsonRenderer) { r.tooltips = true } }

// WithJSONCellTemplate sets the template used by WithJSONTooltips.
func WithJSONCellTemplate(tmpl string) JSONOption {
	return func(r *jsonRenderer) { r.cellTemplate = tmpl }
}

// WithJSONCompact disables indentation.
func WithJSONCompact() JSONOption { return func(r *jsonRenderer) { r.compact = true } }

type jsonOutput struct {
	Version  int               `json:"version"`
	Frame    *grid.Frame       `json:"frame"`
	Tooltips map[string]string `json:"tooltips,omitempty"`
}

// RenderJSON encodes a frame for external renderers.
func RenderJSON(f *grid.Frame, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{cellTemplate: grid.DefaultMainGridTemplate}
	for _, opt := range opts {
		opt(&r)
	}

	out := jsonOutput{Version: JSONVersion, Frame: f}
	if r.tooltips {
		labels := rowLabels(f)
		out.Tooltips = make(map[string]string, len(f.Cells))
		for _, c := range f.Cells {
			s, err := tooltip.Execute(r.cellTemplate, cellData(c, labels))
			if err != nil {
				return nil, err
			}
			out.Tooltips[c.ObservationID] = s
		}
	}

	var (
		data []byte
		err  error
	)
	if r.compact {
		data, err = json.Marshal(out)
	} else {
		data, err = json.MarshalIndent(out, "", "  ")
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode frame")
	}
	return data, nil
}
