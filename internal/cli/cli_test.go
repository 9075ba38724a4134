package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/matzehuels/oncogrid/pkg/errors"
	oio "github.com/matzehuels/oncogrid/pkg/io"
	"github.com/matzehuels/oncogrid/pkg/pipeline"
)

var demoData = filepath.Join("..", "..", "pkg", "io", "testdata", "demo.json")

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")
	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	home, _ := os.UserHomeDir()
	if want := filepath.Join(home, ".cache", appName); dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}

	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg")
	if dir, _ := cacheDir(); dir != filepath.Join("/tmp/xdg", appName) {
		t.Errorf("cacheDir() with XDG_CACHE_HOME = %q", dir)
	}
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", []string{"svg"}},
		{"png", []string{"png"}},
		{"svg, JSON,png", []string{"svg", "json", "png"}},
		{"svg,,png", []string{"svg", "png"}},
	}
	for _, tt := range tests {
		if got := parseFormats(tt.in); !slices.Equal(got, tt.want) {
			t.Errorf("parseFormats(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseSelect(t *testing.T) {
	tests := []struct {
		in      string
		want    []float64
		wantErr bool
	}{
		{"", nil, false},
		{"0,0,10.5,20", []float64{0, 0, 10.5, 20}, false},
		{" 1, 2, 3, 4 ", []float64{1, 2, 3, 4}, false},
		{"1,2,3", nil, true},
		{"a,b,c,d", nil, true},
	}
	for _, tt := range tests {
		got, err := parseSelect(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseSelect(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidInput) {
			t.Errorf("parseSelect(%q) error code = %s, want %s", tt.in, errors.GetCode(err), errors.ErrCodeInvalidInput)
		}
		if !slices.Equal(got, tt.want) {
			t.Errorf("parseSelect(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestOutputPaths(t *testing.T) {
	tests := []struct {
		name    string
		formats []string
		input   string
		output  string
		want    map[string]string
	}{
		{"default", []string{"svg"}, "data/cohort.json", "", map[string]string{"svg": "cohort.svg"}},
		{"single explicit", []string{"png"}, "cohort.json", "out/grid.image", map[string]string{"png": "out/grid.image"}},
		{"multi base", []string{"svg", "png"}, "cohort.json", "out/grid", map[string]string{"svg": "out/grid.svg", "png": "out/grid.png"}},
		{"multi strips ext", []string{"svg", "json"}, "cohort.json", "grid.svg", map[string]string{"svg": "grid.svg", "json": "grid.json"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := outputPaths(tt.formats, tt.input, tt.output)
			for f, want := range tt.want {
				if got[f] != want {
					t.Errorf("outputPaths()[%s] = %q, want %q", f, got[f], want)
				}
			}
		})
	}
}

func runCLI(t *testing.T, args ...string) error {
	t.Helper()
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	c := New(&bytes.Buffer{}, LogInfo)
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	return root.Execute()
}

func TestRenderCommand(t *testing.T) {
	out := filepath.Join(t.TempDir(), "grid")
	err := runCLI(t, "render", demoData, "-o", out, "-f", "svg,json,png", "--scale", "1",
		"--remove-donors", "count == 0", "--sort-genes", "symbol", "--grid")
	if err != nil {
		t.Fatalf("render error: %v", err)
	}
	for _, ext := range []string{".svg", ".json", ".png"} {
		info, err := os.Stat(out + ext)
		if err != nil {
			t.Errorf("missing %s output: %v", ext, err)
			continue
		}
		if info.Size() == 0 {
			t.Errorf("%s output is empty", ext)
		}
	}
	svg, _ := os.ReadFile(out + ".svg")
	if !strings.Contains(string(svg), "grid-line") {
		t.Error("--grid did not draw grid lines")
	}
}

func TestRenderCommandErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"bad format", []string{"render", demoData, "-f", "pdf"}, errors.ErrCodeInvalidFormat},
		{"bad select", []string{"render", demoData, "--select", "1,2"}, errors.ErrCodeInvalidInput},
		{"bad expression", []string{"render", demoData, "--remove-genes", "count >"}, errors.ErrCodeInvalidExpression},
		{"missing dataset", []string{"render", "nope.json"}, errors.ErrCodeFileNotFound},
		{"unknown track", []string{"render", demoData, "--sort-donors-track", "age"}, errors.ErrCodeTrackNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := runCLI(t, tt.args...); !errors.Is(err, tt.code) {
				t.Errorf("render error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestExportCommand(t *testing.T) {
	out := filepath.Join(t.TempDir(), "kept.json")
	if err := runCLI(t, "export", demoData, "-o", out, "--remove-genes", "symbol == 'TTN'"); err != nil {
		t.Fatalf("export error: %v", err)
	}
	ds, err := oio.ReadJSON(mustOpen(t, out))
	if err != nil {
		t.Fatalf("ReadJSON() error: %v", err)
	}
	if len(ds.Genes) != 3 {
		t.Errorf("exported genes = %d, want 3", len(ds.Genes))
	}
	for _, o := range ds.Observations {
		if o.ID == "MU7" {
			t.Error("observation of removed gene TTN was exported")
		}
	}
}

func TestInspect(t *testing.T) {
	c := New(&bytes.Buffer{}, LogInfo)
	var buf bytes.Buffer
	opts := pipeline.Options{Input: demoData, ConfigPath: filepath.Join("..", "..", "pkg", "config", "testdata", "demo.toml")}
	if err := c.runInspect(t.Context(), opts, 2, &buf); err != nil {
		t.Fatalf("runInspect() error: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Genes", "Donors", "2 more", "5 more", "observations", "donor tracks", "Clinical, Data", "ICGC"} {
		if !strings.Contains(out, want) {
			t.Errorf("inspect output missing %q", want)
		}
	}
}

func TestCacheClearCommand(t *testing.T) {
	if err := runCLI(t, "cache", "clear"); err != nil {
		t.Errorf("cache clear on empty cache error: %v", err)
	}
}

func TestCompletion(t *testing.T) {
	root := New(&bytes.Buffer{}, LogInfo).RootCommand()
	for _, shell := range completionShells {
		var buf bytes.Buffer
		if err := writeCompletion(root, shell, &buf); err != nil {
			t.Errorf("writeCompletion(%s) error: %v", shell, err)
		}
		if buf.Len() == 0 {
			t.Errorf("writeCompletion(%s) wrote nothing", shell)
		}
	}
}

func mustOpen(t *testing.T, path string) *os.File {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	t.Cleanup(func() { f.Close() })
	return f
}
