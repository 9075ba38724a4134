package io

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"

	"github.com/matzehuels/oncogrid/pkg/errors"
	"github.com/matzehuels/oncogrid/pkg/model"
	"github.com/matzehuels/oncogrid/pkg/observability"
)

// Dataset is the input of a grid: donors, genes and the observations that
// link them.
type Dataset struct {
	Donors       []*model.Donor
	Genes        []*model.Gene
	Observations []model.Observation
}

// reserved keys are decoded into struct fields instead of Fields.
var (
	donorReserved = map[string]bool{"id": true, "score": true, "count": true}
	geneReserved  = map[string]bool{"id": true, "symbol": true, "score": true, "count": true}
)

// ReadJSON decodes a dataset from r.
//
// ReadJSON returns an error if the document is not valid JSON, if any of the
// top-level collections is present but not an array, if a donor or gene has
// no id, or if a donor, gene or observation id is listed twice. ReadJSON does not close r.
func ReadJSON(r io.Reader) (*Dataset, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "read dataset")
	}
	return Parse(raw)
}

// Parse decodes a dataset from a JSON document in memory.
func Parse(raw []byte) (*Dataset, error) {
	if !gjson.ValidBytes(raw) {
		return nil, errors.New(errors.ErrCodeInvalidInput, "dataset is not valid JSON")
	}
	doc := gjson.ParseBytes(raw)
	if !doc.IsObject() {
		return nil, errors.New(errors.ErrCodeInvalidInput, "dataset must be a JSON object")
	}

	donorsJSON, err := array(doc, "donors")
	if err != nil {
		return nil, err
	}
	genesJSON, err := array(doc, "genes")
	if err != nil {
		return nil, err
	}
	obsJSON, err := array(doc, "observations")
	if err != nil {
		return nil, err
	}

	ds := &Dataset{
		Donors:       make([]*model.Donor, 0, len(donorsJSON)),
		Genes:        make([]*model.Gene, 0, len(genesJSON)),
		Observations: make([]model.Observation, 0, len(obsJSON)),
	}

	seen := make(map[string]bool, len(donorsJSON))
	for i, v := range donorsJSON {
		id, err := entityID(v, "donors", i)
		if err != nil {
			return nil, err
		}
		if seen[id] {
			return nil, errors.New(errors.ErrCodeInvalidInput, "duplicate donor id %q", id)
		}
		seen[id] = true
		ds.Donors = append(ds.Donors, &model.Donor{ID: id, Fields: flatten(v, donorReserved)})
	}

	clear(seen)
	for i, v := range genesJSON {
		id, err := entityID(v, "genes", i)
		if err != nil {
			return nil, err
		}
		if seen[id] {
			return nil, errors.New(errors.ErrCodeInvalidInput, "duplicate gene id %q", id)
		}
		seen[id] = true
		ds.Genes = append(ds.Genes, &model.Gene{
			ID:     id,
			Symbol: v.Get("symbol").String(),
			Fields: flatten(v, geneReserved),
		})
	}

	clear(seen)
	for i, v := range obsJSON {
		if !v.IsObject() {
			return nil, errors.New(errors.ErrCodeInvalidInput, "observations[%d] must be an object", i)
		}
		o := model.Observation{
			ID:          v.Get("id").String(),
			DonorID:     v.Get("donorId").String(),
			GeneID:      v.Get("geneId").String(),
			Consequence: v.Get("consequence").String(),
		}
		if o.DonorID == "" || o.GeneID == "" {
			return nil, errors.New(errors.ErrCodeInvalidInput, "observations[%d] needs donorId and geneId", i)
		}
		if o.ID == "" {
			o.ID = observationID(o, i)
		}
		if seen[o.ID] {
			return nil, errors.New(errors.ErrCodeInvalidInput, "duplicate observation id %q", o.ID)
		}
		seen[o.ID] = true
		ds.Observations = append(ds.Observations, o)
	}

	return ds, nil
}

// observationNamespace seeds the ids of observations that come without one.
var observationNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/matzehuels/oncogrid/observation"))

// observationID derives a stable id from the observation's position and
// endpoints, so the same document always yields the same ids.
func observationID(o model.Observation, i int) string {
	return uuid.NewSHA1(observationNamespace, fmt.Appendf(nil, "%s|%s|%d", o.DonorID, o.GeneID, i)).String()
}

// ImportJSON reads the dataset file at path.
func ImportJSON(ctx context.Context, path string) (ds *Dataset, err error) {
	hooks := observability.Pipeline()
	hooks.OnLoadStart(ctx, path)
	start := time.Now()
	defer func() {
		n := 0
		if ds != nil {
			n = len(ds.Observations)
		}
		hooks.OnLoadComplete(ctx, path, n, time.Since(start), err)
	}()

	f, err := os.Open(path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "open %s", path)
	}
	defer f.Close()
	return ReadJSON(f)
}

// array returns the elements of the top-level collection key. A missing key
// is an empty collection.
func array(doc gjson.Result, key string) ([]gjson.Result, error) {
	v := doc.Get(key)
	if !v.Exists() || v.Type == gjson.Null {
		return nil, nil
	}
	if !v.IsArray() {
		return nil, errors.New(errors.ErrCodeInvalidInput, "%s must be an array, got %s", key, kind(v))
	}
	return v.Array(), nil
}

func entityID(v gjson.Result, coll string, i int) (string, error) {
	if !v.IsObject() {
		return "", errors.New(errors.ErrCodeInvalidInput, "%s[%d] must be an object", coll, i)
	}
	id := v.Get("id")
	if id.Type != gjson.String && id.Type != gjson.Number {
		return "", errors.New(errors.ErrCodeInvalidInput, "%s[%d] has no id", coll, i)
	}
	if id.String() == "" {
		return "", errors.New(errors.ErrCodeInvalidInput, "%s[%d] has an empty id", coll, i)
	}
	return id.String(), nil
}

// flatten collects the non-reserved keys of obj, descending into nested
// objects with dotted keys.
func flatten(obj gjson.Result, reserved map[string]bool) model.Fields {
	out := model.Fields{}
	var walk func(prefix string, v gjson.Result)
	walk = func(prefix string, v gjson.Result) {
		v.ForEach(func(k, val gjson.Result) bool {
			key := k.String()
			if prefix == "" && reserved[key] {
				return true
			}
			if prefix != "" {
				key = prefix + "." + key
			}
			if val.IsObject() {
				walk(key, val)
				return true
			}
			out[key] = value(val)
			return true
		})
	}
	walk("", obj)
	return out
}

func value(r gjson.Result) any {
	switch r.Type {
	case gjson.Null:
		return nil
	case gjson.False:
		return false
	case gjson.True:
		return true
	case gjson.Number:
		if f := r.Float(); f == float64(r.Int()) {
			return r.Int()
		}
		return r.Float()
	case gjson.String:
		return r.String()
	case gjson.JSON:
		if r.IsArray() {
			arr := r.Array()
			out := make([]any, len(arr))
			for i, v := range arr {
				out[i] = value(v)
			}
			return out
		}
		m := map[string]any{}
		for k, v := range r.Map() {
			m[k] = value(v)
		}
		return m
	}
	return nil
}

func kind(r gjson.Result) string {
	switch {
	case r.IsObject():
		return "object"
	case r.Type == gjson.JSON:
		return "array"
	}
	return r.Type.String()
}
