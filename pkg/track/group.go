package track

import "slices"

// Datum is the value of one track cell.
type Datum struct {
	ID              string `json:"id"`
	DisplayID       string `json:"displayId"`
	Value           any    `json:"value"`
	DisplayValue    any    `json:"displayValue"`
	NotNullSentinel bool   `json:"notNullSentinel"`
	DisplayName     string `json:"displayName"`
	FieldName       string `json:"fieldName"`
	Type            Type   `json:"type"`
	Template        string `json:"template"`
}

// Group is a named collection of tracks.
type Group struct {
	Name       string
	Expandable bool
	Legend     string

	rotated    bool
	cellHeight float64
	sentinel   float64
	rendered   bool

	tracks    []Track
	collapsed []Track
	data      []Datum
}

// NewGroup returns an empty group whose rows are cellHeight tall.
func NewGroup(name string, rotated bool, cellHeight, sentinel float64) *Group {
	return &Group{Name: name, rotated: rotated, cellHeight: cellHeight, sentinel: sentinel}
}

// AddTrack adds tracks to the group. Collapsed tracks stay hidden only while
// the group is expandable and unrendered.
func (g *Group) AddTrack(tracks ...Track) {
	for _, t := range tracks {
		if !g.rendered && t.Collapsed && g.Expandable {
			g.collapsed = append(g.collapsed, t)
		} else {
			g.tracks = append(g.tracks, t)
		}
	}

	g.collapsed = slices.DeleteFunc(g.collapsed, func(c Track) bool {
		return slices.ContainsFunc(g.tracks, func(t Track) bool { return t.FieldName == c.FieldName })
	})

	seen := make(map[string]bool, len(g.tracks))
	g.tracks = slices.DeleteFunc(g.tracks, func(t Track) bool {
		if seen[t.FieldName] {
			return true
		}
		seen[t.FieldName] = true
		return false
	})
}

// RemoveTrack moves the visible track at i to the collapsed set. It reports
// false when i is out of range.
func (g *Group) RemoveTrack(i int) bool {
	if i < 0 || i >= len(g.tracks) {
		return false
	}
	g.collapsed = append(g.collapsed, g.tracks[i])
	g.tracks = slices.Delete(g.tracks, i, i+1)
	return true
}

// ExpandNext makes the first collapsed track visible.
func (g *Group) ExpandNext() bool {
	if len(g.collapsed) == 0 {
		return false
	}
	t := g.collapsed[0]
	t.Collapsed = false
	g.AddTrack(t)
	return true
}

// Tracks returns a copy of the visible tracks.
func (g *Group) Tracks() []Track { return slices.Clone(g.tracks) }

// CollapsedTracks returns a copy of the hidden tracks.
func (g *Group) CollapsedTracks() []Track { return slices.Clone(g.collapsed) }

// Len returns the number of visible tracks.
func (g *Group) Len() int { return len(g.tracks) }

// MarkRendered records that the group has been drawn once.
func (g *Group) MarkRendered() { g.rendered = true }

// Rendered reports whether the group has been drawn.
func (g *Group) Rendered() bool { return g.rendered }

// CellHeight returns the row height.
func (g *Group) CellHeight() float64 { return g.cellHeight }

// Height is the height of the visible rows.
func (g *Group) Height() float64 {
	return g.cellHeight * float64(len(g.tracks))
}

// TotalHeight adds one row for the expand control when tracks are collapsed.
func (g *Group) TotalHeight() float64 {
	if len(g.collapsed) > 0 {
		return g.Height() + g.cellHeight
	}
	return g.Height()
}

// RowY returns the offset of the row showing field, or -1 if it is not visible.
func (g *Group) RowY(field string) float64 {
	i := slices.IndexFunc(g.tracks, func(t Track) bool { return t.FieldName == field })
	if i < 0 {
		return -1
	}
	return float64(i) * g.cellHeight
}

// RefreshData rebuilds the cell data for items.
func (g *Group) RefreshData(items []Item) {
	data := make([]Datum, 0, len(items)*len(g.tracks))
	for _, it := range items {
		for _, t := range g.tracks {
			value, _ := it.Field(t.FieldName)
			isNull := g.isSentinel(value)

			d := Datum{
				ID:              it.Key(),
				DisplayID:       it.Key(),
				Value:           value,
				DisplayValue:    value,
				NotNullSentinel: !isNull,
				DisplayName:     t.Name,
				FieldName:       t.FieldName,
				Type:            t.Type,
				Template:        t.Template,
			}
			if g.rotated {
				d.DisplayID = it.Label()
			}
			if isNull {
				d.DisplayValue = NotVerified
			}
			if d.Template == "" {
				d.Template = DefaultTemplate
			}
			data = append(data, d)
		}
	}
	g.data = data
}

// Data returns the cells computed by the last RefreshData.
func (g *Group) Data() []Datum { return slices.Clone(g.data) }

func (g *Group) isSentinel(v any) bool {
	n, ok := Number(v)
	if !ok {
		return false
	}
	if _, isStr := v.(string); isStr {
		return false
	}
	return n == g.sentinel
}
