package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/oncogrid/pkg/pipeline"
)

func newTestExplore(t *testing.T) *exploreModel {
	t.Helper()
	c := New(&strings.Builder{}, LogInfo)
	g, err := c.buildGrid(t.Context(), pipeline.Options{Input: demoData})
	if err != nil {
		t.Fatalf("buildGrid() error: %v", err)
	}
	return newExploreModel(g)
}

func press(m *exploreModel, key string) *exploreModel {
	var msg tea.KeyMsg
	switch key {
	case "left":
		msg = tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		msg = tea.KeyMsg{Type: tea.KeyRight}
	case "up":
		msg = tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		msg = tea.KeyMsg{Type: tea.KeyDown}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	next, _ := m.Update(msg)
	return next.(*exploreModel)
}

func TestExploreCursor(t *testing.T) {
	m := newTestExplore(t)
	m = press(m, "left")
	m = press(m, "up")
	if m.col != 0 || m.row != 0 {
		t.Fatalf("cursor = (%d,%d), want clamped at (0,0)", m.col, m.row)
	}
	m = press(press(m, "right"), "down")
	if m.col != 1 || m.row != 1 {
		t.Errorf("cursor = (%d,%d), want (1,1)", m.col, m.row)
	}
	for range 50 {
		m = press(m, "right")
	}
	if want := len(m.frame.Columns) - 1; m.col != want {
		t.Errorf("col = %d, want last column %d", m.col, want)
	}
}

func TestExploreToggles(t *testing.T) {
	m := newTestExplore(t)
	tests := []struct {
		key    string
		status string
		check  func() bool
	}{
		{"h", "heat map on", func() bool { return m.g.HeatMap() }},
		{"g", "grid lines on", func() bool { return m.frame.GridLines }},
		{"x", "crosshair on", func() bool { return m.frame.Crosshair }},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			m = press(m, tt.key)
			if m.status != tt.status {
				t.Errorf("status = %q, want %q", m.status, tt.status)
			}
			if !tt.check() {
				t.Errorf("key %q had no effect", tt.key)
			}
		})
	}
}

func TestExploreRemoveClean(t *testing.T) {
	m := newTestExplore(t)
	before := len(m.frame.Columns)
	m = press(m, "r")
	if got := len(m.frame.Columns); got != before-1 {
		t.Errorf("columns after remove = %d, want %d", got, before-1)
	}
	if m.status != "removed 1 donor(s)" {
		t.Errorf("status = %q, want removed 1 donor(s)", m.status)
	}
}

func TestExploreView(t *testing.T) {
	m := newTestExplore(t)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 60, Height: 20})
	m = next.(*exploreModel)
	v := m.View()
	for _, want := range []string{"OncoGrid", "TP53", "7 donors"} {
		if !strings.Contains(v, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}

func TestExploreQuit(t *testing.T) {
	m := newTestExplore(t)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("Update(q) returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("Update(q) did not quit")
	}
}

func TestClamp(t *testing.T) {
	tests := []struct{ v, lo, hi, want int }{
		{5, 0, 3, 3},
		{-1, 0, 3, 0},
		{2, 0, 3, 2},
		{2, 0, -1, 0},
	}
	for _, tt := range tests {
		if got := clamp(tt.v, tt.lo, tt.hi); got != tt.want {
			t.Errorf("clamp(%d, %d, %d) = %d, want %d", tt.v, tt.lo, tt.hi, got, tt.want)
		}
	}
}
