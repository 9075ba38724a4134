package io

import (
	"encoding/json"
	"io"
	"os"
	"strings"

	"github.com/matzehuels/oncogrid/pkg/errors"
	"github.com/matzehuels/oncogrid/pkg/grid"
	"github.com/matzehuels/oncogrid/pkg/model"
)

type document struct {
	Donors       []map[string]any    `json:"donors"`
	Genes        []map[string]any    `json:"genes"`
	Observations []model.Observation `json:"observations"`
}

// Snapshot captures the current donors, genes and observations of g, in
// display order.
func Snapshot(g *grid.Grid) *Dataset {
	return &Dataset{Donors: g.Donors(), Genes: g.Genes(), Observations: g.Observations()}
}

// WriteJSON encodes ds as an indented dataset document. Computed scores and
// counts are not written.
func WriteJSON(ds *Dataset, w io.Writer) error {
	out := document{
		Donors:       make([]map[string]any, len(ds.Donors)),
		Genes:        make([]map[string]any, len(ds.Genes)),
		Observations: ds.Observations,
	}
	if out.Observations == nil {
		out.Observations = []model.Observation{}
	}
	for i, d := range ds.Donors {
		m := unflatten(d.Fields)
		m["id"] = d.ID
		out.Donors[i] = m
	}
	for i, g := range ds.Genes {
		m := unflatten(g.Fields)
		m["id"] = g.ID
		if g.Symbol != "" {
			m["symbol"] = g.Symbol
		}
		out.Genes[i] = m
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode dataset")
	}
	return nil
}

// ExportJSON writes ds to a JSON file at path.
func ExportJSON(ds *Dataset, path string) error {
	if err := errors.ValidatePath(path); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "create %s", path)
	}
	defer f.Close()
	return WriteJSON(ds, f)
}

// unflatten turns dotted keys back into nested objects. A key that clashes
// with a scalar on the way down is kept flat.
func unflatten(f model.Fields) map[string]any {
	out := make(map[string]any, len(f))
	for k, v := range f {
		parts := strings.Split(k, ".")
		m := out
		ok := true
		for _, p := range parts[:len(parts)-1] {
			next, exists := m[p]
			if !exists {
				child := map[string]any{}
				m[p] = child
				m = child
				continue
			}
			child, isMap := next.(map[string]any)
			if !isMap {
				ok = false
				break
			}
			m = child
		}
		if ok {
			m[parts[len(parts)-1]] = v
		} else {
			out[k] = v
		}
	}
	return out
}
