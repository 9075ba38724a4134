package query

import (
	"slices"
	"testing"

	"github.com/matzehuels/oncogrid/pkg/errors"
	"github.com/matzehuels/oncogrid/pkg/model"
)

func donors() []*model.Donor {
	return []*model.Donor{
		{ID: "DO1", Count: 3, Fields: model.Fields{"clinical.age": int64(49), "alive": true}},
		{ID: "DO2", Count: 1, Fields: model.Fields{"clinical.age": int64(62), "alive": false}},
		{ID: "DO3", Count: 0, Fields: model.Fields{"clinical.age": int64(1), "alive": true}},
		{ID: "DO4", Count: 2, Fields: model.Fields{"alive": true}},
	}
}

func TestCompileErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"empty", ""},
		{"blank", "   "},
		{"syntax", "count >"},
		{"unbalanced", "(count == 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compile(tt.src)
			if !errors.Is(err, errors.ErrCodeInvalidExpression) {
				t.Errorf("Compile(%q) error = %v, want code %s", tt.src, err, errors.ErrCodeInvalidExpression)
			}
		})
	}
}

func TestMatch(t *testing.T) {
	tests := []struct {
		src  string
		want []string
	}{
		{"count == 0", []string{"DO3"}},
		{"alive", []string{"DO1", "DO3", "DO4"}},
		{"!alive", []string{"DO2"}},
		{`id in ["DO1", "DO4"]`, []string{"DO1", "DO4"}},
		{"clinical?.age != nil && clinical.age > 40", []string{"DO1", "DO2"}},
		{"unknownField == nil", []string{"DO1", "DO2", "DO3", "DO4"}},
		{"unknownField", nil},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			p, err := Compile(tt.src)
			if err != nil {
				t.Fatalf("Compile() error: %v", err)
			}
			got, err := Match(p, donors())
			if err != nil {
				t.Fatalf("Match() error: %v", err)
			}
			var ids []string
			for id := range got {
				ids = append(ids, id)
			}
			slices.Sort(ids)
			if !slices.Equal(ids, tt.want) {
				t.Errorf("Match(%q) = %v, want %v", tt.src, ids, tt.want)
			}
		})
	}
}

func TestMatchNonBool(t *testing.T) {
	p, err := Compile("count + 1")
	if err != nil {
		t.Fatalf("Compile() error: %v", err)
	}
	if _, err := Match(p, donors()); !errors.Is(err, errors.ErrCodeInvalidExpression) {
		t.Errorf("Match() error = %v, want code %s", err, errors.ErrCodeInvalidExpression)
	}
}

func TestMatchGenes(t *testing.T) {
	genes := []*model.Gene{
		{ID: "G1", Symbol: "TP53"},
		{ID: "G2", Symbol: "BRAF"},
	}
	p, err := Compile(`symbol startsWith "TP"`)
	if err != nil {
		t.Fatalf("Compile() error: %v", err)
	}
	got, err := Match(p, genes)
	if err != nil {
		t.Fatalf("Match() error: %v", err)
	}
	if !got["G1"] || got["G2"] {
		t.Errorf("Match() = %v, want only G1", got)
	}
}

func TestSortFunc(t *testing.T) {
	tests := []struct {
		key  string
		want []string
	}{
		{"clinical?.age", []string{"DO3", "DO1", "DO2", "DO4"}},
		{"-clinical?.age", []string{"DO2", "DO1", "DO3", "DO4"}},
		{"count", []string{"DO3", "DO2", "DO4", "DO1"}},
		{"- count", []string{"DO1", "DO4", "DO2", "DO3"}},
		{"alive", []string{"DO2", "DO1", "DO3", "DO4"}},
		{"id", []string{"DO1", "DO2", "DO3", "DO4"}},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			k, err := CompileSort(tt.key)
			if err != nil {
				t.Fatalf("CompileSort() error: %v", err)
			}
			items := donors()
			cmp, err := SortFunc(k, items)
			if err != nil {
				t.Fatalf("SortFunc() error: %v", err)
			}
			slices.SortStableFunc(items, cmp)
			var got []string
			for _, d := range items {
				got = append(got, d.ID)
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("sorted by %q = %v, want %v", tt.key, got, tt.want)
			}
		})
	}
}

func TestCompileSortString(t *testing.T) {
	k, err := CompileSort(" -count ")
	if err != nil {
		t.Fatalf("CompileSort() error: %v", err)
	}
	if !k.Descending() {
		t.Error("Descending() = false, want true")
	}
	if k.String() != "-count" {
		t.Errorf("String() = %q, want %q", k.String(), "-count")
	}
	if _, err := CompileSort("-"); !errors.Is(err, errors.ErrCodeInvalidExpression) {
		t.Errorf("CompileSort(\"-\") error = %v, want code %s", err, errors.ErrCodeInvalidExpression)
	}
}

func TestCompare(t *testing.T) {
	tests := []struct {
		a, b any
		want int
	}{
		{1, 2, -1},
		{int64(3), 2.5, 1},
		{2.0, 2, 0},
		{false, true, -1},
		{true, true, 0},
		{"a", "b", -1},
		{"10", "9", -1},
		{1, "a", -1},
		{"a", 1, 1},
	}
	for _, tt := range tests {
		if got := Compare(tt.a, tt.b); got != tt.want {
			t.Errorf("Compare(%#v, %#v) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestEnvNesting(t *testing.T) {
	d := &model.Donor{ID: "DO1", Fields: model.Fields{"a.b": 1, "a.c.d": 2, "x": 3, "x.y": 4}}
	env := Env(d)
	a, ok := env["a"].(map[string]any)
	if !ok || a["b"] != 1 {
		t.Fatalf("env[a] = %#v, want map with b=1", env["a"])
	}
	if c, ok := a["c"].(map[string]any); !ok || c["d"] != 2 {
		t.Errorf("env[a][c] = %#v, want map with d=2", a["c"])
	}
	if env["x"] != 3 {
		t.Errorf("env[x] = %#v, want 3", env["x"])
	}
	if env["id"] != "DO1" {
		t.Errorf("env[id] = %#v, want DO1", env["id"])
	}
}
