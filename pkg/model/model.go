package model

import "maps"

// Fields stores arbitrary per-entity annotation values keyed by field name.
// Nested input objects are flattened with dotted keys ("clinical.age").
type Fields map[string]any

// Clone returns a shallow copy of f. A nil map clones to an empty one.
func (f Fields) Clone() Fields {
	out := make(Fields, len(f))
	maps.Copy(out, f)
	return out
}

// Donor is a patient or sample, rendered as one grid column.
type Donor struct {
	ID     string  `json:"id"`
	Score  float64 `json:"score"`
	Count  int     `json:"count"`
	Fields Fields  `json:"fields,omitempty"`
}

// Key returns the donor id.
func (d *Donor) Key() string { return d.ID }

// Label returns the text shown for the donor, which is its id.
func (d *Donor) Label() string { return d.ID }

// Total returns the number of observations recorded for the donor.
func (d *Donor) Total() int { return d.Count }

// Rank returns the sort score.
func (d *Donor) Rank() float64 { return d.Score }

// Field returns a track value. The reserved names id, score and count map
// to the struct fields.
func (d *Donor) Field(name string) (any, bool) {
	switch name {
	case "id":
		return d.ID, true
	case "score":
		return d.Score, true
	case "count":
		return d.Count, true
	}
	v, ok := d.Fields[name]
	return v, ok
}

// Env exposes the donor as a flat map for expression evaluation.
func (d *Donor) Env() map[string]any {
	env := make(map[string]any, len(d.Fields)+3)
	maps.Copy(env, d.Fields)
	env["id"] = d.ID
	env["score"] = d.Score
	env["count"] = d.Count
	return env
}

// Clone returns a deep copy of the donor.
func (d *Donor) Clone() *Donor {
	c := *d
	c.Fields = d.Fields.Clone()
	return &c
}

// Gene is a gene, rendered as one grid row.
type Gene struct {
	ID     string  `json:"id"`
	Symbol string  `json:"symbol"`
	Score  float64 `json:"score"`
	Count  int     `json:"count"`
	Fields Fields  `json:"fields,omitempty"`
}

// Key returns the gene id.
func (g *Gene) Key() string { return g.ID }

// Label returns the gene symbol, falling back to the id.
func (g *Gene) Label() string {
	if g.Symbol != "" {
		return g.Symbol
	}
	return g.ID
}

// Total returns the number of observations recorded for the gene.
func (g *Gene) Total() int { return g.Count }

// Rank returns the sort score.
func (g *Gene) Rank() float64 { return g.Score }

// Field returns a track value. The reserved names id, symbol, score and
// count map to the struct fields.
func (g *Gene) Field(name string) (any, bool) {
	switch name {
	case "id":
		return g.ID, true
	case "symbol":
		return g.Symbol, true
	case "score":
		return g.Score, true
	case "count":
		return g.Count, true
	}
	v, ok := g.Fields[name]
	return v, ok
}

// Env exposes the gene as a flat map for expression evaluation.
func (g *Gene) Env() map[string]any {
	env := make(map[string]any, len(g.Fields)+4)
	maps.Copy(env, g.Fields)
	env["id"] = g.ID
	env["symbol"] = g.Symbol
	env["score"] = g.Score
	env["count"] = g.Count
	return env
}

// Clone returns a deep copy of the gene.
func (g *Gene) Clone() *Gene {
	c := *g
	c.Fields = g.Fields.Clone()
	return &c
}

// Observation is a single mutation linking a donor to a gene.
type Observation struct {
	ID          string `json:"id"`
	DonorID     string `json:"donorId"`
	GeneID      string `json:"geneId"`
	Consequence string `json:"consequence"`
}
