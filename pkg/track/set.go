package track

import "slices"

// Defaults for track layout.
const (
	DefaultCellHeight = 10
	DefaultPadding    = 20
)

// SetConfig configures a [Set].
type SetConfig struct {
	Rotated          bool
	CellHeight       float64
	Padding          float64
	NullSentinel     float64
	ExpandableGroups []string
	Legends          map[string]string
}

func (c *SetConfig) setDefaults() {
	if c.CellHeight <= 0 {
		c.CellHeight = DefaultCellHeight
	}
	if c.Padding <= 0 {
		c.Padding = DefaultPadding
	}
	if c.NullSentinel == 0 {
		c.NullSentinel = DefaultNullSentinel
	}
}

// Set holds the track groups of one axis.
type Set struct {
	cfg    SetConfig
	groups *OrderedMap[string, *Group]
}

// NewSet groups tracks by their group name in first-seen order.
func NewSet(cfg SetConfig, tracks []Track) *Set {
	cfg.setDefaults()
	s := &Set{cfg: cfg, groups: NewOrderedMap[string, *Group]()}
	for _, t := range tracks {
		s.AddTrack(t)
	}
	return s
}

// Rotated reports whether the set labels cells by symbol.
func (s *Set) Rotated() bool { return s.cfg.Rotated }

// Padding returns the gap below each group.
func (s *Set) Padding() float64 { return s.cfg.Padding }

// AddTrack adds t to its group, creating the group on first use.
func (s *Set) AddTrack(t Track) {
	name := t.GroupName()
	g, ok := s.groups.Get(name)
	if !ok {
		g = NewGroup(name, s.cfg.Rotated, s.cfg.CellHeight, s.cfg.NullSentinel)
		g.Expandable = slices.Contains(s.cfg.ExpandableGroups, name)
		g.Legend = s.cfg.Legends[name]
		s.groups.Set(name, g)
	}
	g.AddTrack(t)
}

// Groups returns the groups in first-seen order.
func (s *Set) Groups() []*Group { return s.groups.Values() }

// Group returns the named group.
func (s *Set) Group(name string) (*Group, bool) { return s.groups.Get(name) }

// Height is the stacked height of all groups including padding.
func (s *Set) Height() float64 {
	h := 0.0
	for _, g := range s.groups.All() {
		h += g.TotalHeight() + s.cfg.Padding
	}
	return h
}

// GroupOffset returns the offset of the named group within the set, or -1.
func (s *Set) GroupOffset(name string) float64 {
	y := 0.0
	for n, g := range s.groups.All() {
		if n == name {
			return y
		}
		y += g.TotalHeight() + s.cfg.Padding
	}
	return -1
}

// MarkRendered marks every group as rendered.
func (s *Set) MarkRendered() {
	for _, g := range s.groups.All() {
		g.MarkRendered()
	}
}

// Refresh recomputes cell data of every group.
func (s *Set) Refresh(items []Item) {
	for _, g := range s.groups.All() {
		g.RefreshData(items)
	}
}

// Track finds a visible track by field name.
func (s *Set) Track(field string) (Track, bool) {
	for _, g := range s.groups.All() {
		for _, t := range g.tracks {
			if t.FieldName == field {
				return t, true
			}
		}
	}
	return Track{}, false
}
