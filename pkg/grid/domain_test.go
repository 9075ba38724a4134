package grid

import (
	"fmt"
	"slices"
	"testing"

	"github.com/matzehuels/oncogrid/pkg/model"
)

func genesN(n int) *Domain[*model.Gene] {
	gs := make([]*model.Gene, n)
	for i := range gs {
		gs[i] = &model.Gene{ID: fmt.Sprintf("G%d", i)}
	}
	return NewDomain(gs)
}

func TestSliceRange(t *testing.T) {
	tests := []struct {
		start, stop int
		want        []string
	}{
		{1, 3, []string{"G1", "G2", "G3"}},
		{0, 0, []string{"G0"}},
		{4, 9, []string{"G4", "G5"}},
		{0, 5, []string{"G0", "G1", "G2", "G3", "G4", "G5"}},
		{3, 2, nil},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d-%d", tt.start, tt.stop), func(t *testing.T) {
			d := genesN(6)
			removed := d.SliceRange(tt.start, tt.stop)
			if got := d.IDs(); !slices.Equal(got, tt.want) {
				t.Errorf("SliceRange(%d, %d) kept %v, want %v", tt.start, tt.stop, got, tt.want)
			}
			if len(removed)+d.Len() != 6 {
				t.Errorf("removed %d + kept %d != 6", len(removed), d.Len())
			}
		})
	}
}

func TestReorderSingle(t *testing.T) {
	tests := []struct {
		from, to int
		want     []string
	}{
		{0, 3, []string{"G1", "G2", "G3", "G0", "G4"}},
		{4, 0, []string{"G4", "G0", "G1", "G2", "G3"}},
		{2, 2, []string{"G0", "G1", "G2", "G3", "G4"}},
		{1, 99, []string{"G0", "G2", "G3", "G4", "G1"}},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d->%d", tt.from, tt.to), func(t *testing.T) {
			d := genesN(5)
			if !d.ReorderSingle(tt.from, tt.to) {
				t.Fatal("ReorderSingle() = false")
			}
			got := d.IDs()
			if !slices.Equal(got, tt.want) {
				t.Errorf("ReorderSingle(%d, %d) = %v, want %v", tt.from, tt.to, got, tt.want)
			}

			moved := fmt.Sprintf("G%d", tt.from)
			others := slices.DeleteFunc(slices.Clone(got), func(s string) bool { return s == moved })
			orig := slices.DeleteFunc(genesN(5).IDs(), func(s string) bool { return s == moved })
			if !slices.Equal(others, orig) {
				t.Errorf("relative order changed: %v, want %v", others, orig)
			}
		})
	}

	if genesN(3).ReorderSingle(5, 0) {
		t.Error("ReorderSingle(5, 0) = true on 3 items")
	}
}

func TestRemoveWhere(t *testing.T) {
	d := genesN(5)
	removed := d.RemoveWhere(func(g *model.Gene) bool { return g.ID == "G1" || g.ID == "G3" })

	if got := keys(removed); !slices.Equal(got, []string{"G1", "G3"}) {
		t.Errorf("removed = %v, want [G1 G3]", got)
	}
	if got := d.IDs(); !slices.Equal(got, []string{"G0", "G2", "G4"}) {
		t.Errorf("kept = %v, want [G0 G2 G4]", got)
	}
	if d.IndexOf("G4") != 2 || d.IndexOf("G1") != -1 {
		t.Errorf("IndexOf after removal = %d, %d, want 2, -1", d.IndexOf("G4"), d.IndexOf("G1"))
	}
}
