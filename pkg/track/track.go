package track

import (
	"cmp"
	"encoding/json"
	"strconv"
)

// DefaultGroup is the group used by tracks that do not name one.
const DefaultGroup = "Tracks"

// DefaultNullSentinel marks values that were not verified.
const DefaultNullSentinel = -777

// NotVerified is displayed in place of sentinel values.
const NotVerified = "Not Verified"

// DefaultTemplate is the tooltip template of a track cell.
const DefaultTemplate = "{{.DisplayID}}<br>{{.DisplayName}}: {{.DisplayValue}}"

// Type is the value kind shown by a track.
type Type string

// Track value kinds.
const (
	TypeInt  Type = "int"
	TypeBool Type = "bool"
)

// Item is a donor or gene as seen by tracks.
type Item interface {
	Key() string
	Label() string
	Field(name string) (any, bool)
}

// Comparator orders two items, returning a negative, zero or positive value.
type Comparator func(a, b Item) int

// SortFunc builds a comparator for a field name.
type SortFunc func(field string) Comparator

// Track is one annotation row.
type Track struct {
	Name      string `json:"name"`
	FieldName string `json:"fieldName"`
	Type      Type   `json:"type"`
	Group     string `json:"group,omitempty"`
	Collapsed bool   `json:"collapsed,omitempty"`
	Template  string `json:"template,omitempty"`

	// Sort orders the axis when the track label is selected. Nil falls back
	// to a comparator chosen by Type.
	Sort SortFunc `json:"-"`
}

// GroupName returns the track's group, defaulting to [DefaultGroup].
func (t Track) GroupName() string {
	if t.Group == "" {
		return DefaultGroup
	}
	return t.Group
}

// Comparator returns the comparator for sorting by this track.
func (t Track) Comparator() Comparator {
	if t.Sort != nil {
		return t.Sort(t.FieldName)
	}
	if t.Type == TypeBool {
		return SortBool(t.FieldName)
	}
	return SortInt(t.FieldName)
}

// SortInt orders items by a numeric field, ascending. Missing or
// non-numeric values compare as zero.
func SortInt(field string) Comparator {
	return func(a, b Item) int {
		av, _ := fieldNumber(a, field)
		bv, _ := fieldNumber(b, field)
		return cmp.Compare(av, bv)
	}
}

// SortBool orders items by a boolean field with false before true.
func SortBool(field string) Comparator {
	return func(a, b Item) int {
		av, bv := fieldBool(a, field), fieldBool(b, field)
		switch {
		case av && !bv:
			return 1
		case !av && bv:
			return -1
		}
		return 0
	}
}

func fieldNumber(it Item, field string) (float64, bool) {
	v, ok := it.Field(field)
	if !ok {
		return 0, false
	}
	return Number(v)
}

func fieldBool(it Item, field string) bool {
	v, _ := it.Field(field)
	b, _ := v.(bool)
	return b
}

// Number converts the numeric kinds found in decoded datasets to float64.
func Number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	}
	return 0, false
}
