package track

import (
	"slices"
	"testing"
)

type item struct {
	id, symbol string
	fields     map[string]any
}

func (i item) Key() string { return i.id }
func (i item) Label() string {
	if i.symbol != "" {
		return i.symbol
	}
	return i.id
}
func (i item) Field(name string) (any, bool) {
	v, ok := i.fields[name]
	return v, ok
}

func fieldNames(ts []Track) []string {
	out := make([]string, len(ts))
	for i, t := range ts {
		out[i] = t.FieldName
	}
	return out
}

func TestDuplicateFieldNameFirstWins(t *testing.T) {
	s := NewSet(SetConfig{}, []Track{
		{Name: "Age", FieldName: "age", Group: "Clinical"},
		{Name: "Age again", FieldName: "age", Group: "Clinical"},
	})

	g, ok := s.Group("Clinical")
	if !ok {
		t.Fatal("Group(Clinical) missing")
	}
	tracks := g.Tracks()
	if len(tracks) != 1 {
		t.Fatalf("len(Tracks()) = %d, want 1", len(tracks))
	}
	if tracks[0].Name != "Age" {
		t.Errorf("Tracks()[0].Name = %q, want Age", tracks[0].Name)
	}
}

func TestGroupOrderAndDefault(t *testing.T) {
	s := NewSet(SetConfig{}, []Track{
		{FieldName: "a", Group: "Clinical"},
		{FieldName: "b"},
		{FieldName: "c", Group: "Clinical"},
	})

	var names []string
	for _, g := range s.Groups() {
		names = append(names, g.Name)
	}
	if !slices.Equal(names, []string{"Clinical", DefaultGroup}) {
		t.Errorf("Groups() = %v, want [Clinical %s]", names, DefaultGroup)
	}
}

func TestCollapsedRouting(t *testing.T) {
	tests := []struct {
		name          string
		expandable    bool
		rendered      bool
		wantVisible   []string
		wantCollapsed []string
	}{
		{"expandable before render", true, false, []string{"a"}, []string{"b"}},
		{"not expandable", false, false, []string{"a", "b"}, nil},
		{"expandable after render", true, true, []string{"a", "b"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGroup("G", false, 10, DefaultNullSentinel)
			g.Expandable = tt.expandable
			if tt.rendered {
				g.MarkRendered()
			}
			g.AddTrack(Track{FieldName: "a"}, Track{FieldName: "b", Collapsed: true})

			if got := fieldNames(g.Tracks()); !slices.Equal(got, tt.wantVisible) {
				t.Errorf("Tracks() = %v, want %v", got, tt.wantVisible)
			}
			if got := fieldNames(g.CollapsedTracks()); !slices.Equal(got, tt.wantCollapsed) {
				t.Errorf("CollapsedTracks() = %v, want %v", got, tt.wantCollapsed)
			}
		})
	}
}

func TestRemoveAndExpand(t *testing.T) {
	g := NewGroup("G", false, 10, DefaultNullSentinel)
	g.Expandable = true
	g.AddTrack(Track{FieldName: "a"}, Track{FieldName: "b"})
	g.MarkRendered()

	if !g.RemoveTrack(0) {
		t.Fatal("RemoveTrack(0) = false")
	}
	if got := fieldNames(g.Tracks()); !slices.Equal(got, []string{"b"}) {
		t.Errorf("Tracks() = %v, want [b]", got)
	}
	if got := fieldNames(g.CollapsedTracks()); !slices.Equal(got, []string{"a"}) {
		t.Errorf("CollapsedTracks() = %v, want [a]", got)
	}
	if got := g.TotalHeight(); got != 20 {
		t.Errorf("TotalHeight() = %v, want 20", got)
	}

	if !g.ExpandNext() {
		t.Fatal("ExpandNext() = false")
	}
	if got := fieldNames(g.Tracks()); !slices.Equal(got, []string{"b", "a"}) {
		t.Errorf("Tracks() after expand = %v, want [b a]", got)
	}
	if len(g.CollapsedTracks()) != 0 {
		t.Errorf("CollapsedTracks() after expand = %v, want empty", fieldNames(g.CollapsedTracks()))
	}
	if got := g.RowY("a"); got != 10 {
		t.Errorf("RowY(a) = %v, want 10", got)
	}
	if g.RemoveTrack(5) {
		t.Error("RemoveTrack(5) = true, want false")
	}
}

func TestRefreshDataSentinel(t *testing.T) {
	g := NewGroup("Clinical", false, 10, DefaultNullSentinel)
	g.AddTrack(Track{Name: "Age", FieldName: "age", Type: TypeInt})
	g.RefreshData([]Item{
		item{id: "DO1", fields: map[string]any{"age": -777}},
		item{id: "DO2", fields: map[string]any{"age": 42.0}},
	})

	data := g.Data()
	if len(data) != 2 {
		t.Fatalf("len(Data()) = %d, want 2", len(data))
	}
	if data[0].DisplayValue != NotVerified || data[0].NotNullSentinel {
		t.Errorf("sentinel datum = %+v, want DisplayValue %q and NotNullSentinel false", data[0], NotVerified)
	}
	if data[1].DisplayValue != 42.0 || !data[1].NotNullSentinel {
		t.Errorf("datum = %+v, want DisplayValue 42 and NotNullSentinel true", data[1])
	}
	if data[1].Template != DefaultTemplate {
		t.Errorf("Template = %q, want default", data[1].Template)
	}
}

func TestRefreshDataRotated(t *testing.T) {
	g := NewGroup("cbca", true, 10, DefaultNullSentinel)
	g.AddTrack(Track{FieldName: "totalDonors"})
	g.RefreshData([]Item{item{id: "ENSG1", symbol: "TP53", fields: map[string]any{"totalDonors": 40}}})

	if got := g.Data()[0].DisplayID; got != "TP53" {
		t.Errorf("DisplayID = %q, want TP53", got)
	}
}

func TestSetHeight(t *testing.T) {
	s := NewSet(SetConfig{CellHeight: 10, Padding: 20, ExpandableGroups: []string{"Data"}}, []Track{
		{FieldName: "a", Group: "Clinical"},
		{FieldName: "b", Group: "Clinical"},
		{FieldName: "c", Group: "Data"},
		{FieldName: "d", Group: "Data", Collapsed: true},
	})
	// Clinical: 20 + 20, Data: 10 + 10 (collapsed row) + 20.
	if got := s.Height(); got != 80 {
		t.Errorf("Height() = %v, want 80", got)
	}
	if got := s.GroupOffset("Data"); got != 40 {
		t.Errorf("GroupOffset(Data) = %v, want 40", got)
	}
}

func TestComparators(t *testing.T) {
	items := []Item{
		item{id: "A", fields: map[string]any{"age": 60, "alive": true}},
		item{id: "B", fields: map[string]any{"age": 12.0, "alive": false}},
		item{id: "C", fields: map[string]any{"age": 30, "alive": true}},
	}
	keys := func(its []Item) []string {
		out := make([]string, len(its))
		for i, it := range its {
			out[i] = it.Key()
		}
		return out
	}

	byAge := slices.Clone(items)
	slices.SortStableFunc(byAge, SortInt("age"))
	if got := keys(byAge); !slices.Equal(got, []string{"B", "C", "A"}) {
		t.Errorf("SortInt(age) = %v, want [B C A]", got)
	}

	byAlive := slices.Clone(items)
	slices.SortStableFunc(byAlive, Track{FieldName: "alive", Type: TypeBool}.Comparator())
	if got := keys(byAlive); !slices.Equal(got, []string{"B", "A", "C"}) {
		t.Errorf("SortBool(alive) = %v, want [B A C]", got)
	}
}

func TestOrderedMap(t *testing.T) {
	m := NewOrderedMap[string, int]()
	m.Set("b", 1)
	m.Set("a", 2)
	m.Set("b", 3)

	if !slices.Equal(m.Keys(), []string{"b", "a"}) {
		t.Errorf("Keys() = %v, want [b a]", m.Keys())
	}
	if v, _ := m.Get("b"); v != 3 {
		t.Errorf("Get(b) = %d, want 3", v)
	}
	if !slices.Equal(m.Values(), []int{3, 2}) {
		t.Errorf("Values() = %v, want [3 2]", m.Values())
	}
}
