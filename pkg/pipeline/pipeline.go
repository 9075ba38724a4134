// Package pipeline runs the load, build and render stages of an oncogrid.
//
// The CLI and any embedding host share this package so a dataset renders
// the same way everywhere.
//
// # Stages
//
//  1. Load: read the dataset file and the optional config file
//  2. Build: construct the grid and apply query operations (remove, sort,
//     cluster, select)
//  3. Render: produce artifacts in the requested formats
//
// Rendered artifacts are cached by dataset hash and every option that
// changes the output.
//
// # Usage
//
//	runner := pipeline.NewRunner(fileCache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Input:        "cohort.json",
//	    ConfigPath:   "oncogrid.toml",
//	    RemoveDonors: "count == 0",
//	    Formats:      []string{"svg", "png"},
//	})
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/oncogrid/pkg/cache"
	"github.com/matzehuels/oncogrid/pkg/config"
	"github.com/matzehuels/oncogrid/pkg/errors"
	"github.com/matzehuels/oncogrid/pkg/grid"
	oio "github.com/matzehuels/oncogrid/pkg/io"
	"github.com/matzehuels/oncogrid/pkg/render/sink"
)

// Options configures a pipeline run. Zero values select defaults.
type Options struct {
	// Load options. Dataset and Config take precedence over the paths.
	Input      string         `json:"input,omitempty"`
	Dataset    *oio.Dataset   `json:"-"`
	ConfigPath string         `json:"config,omitempty"`
	Config     *config.Config `json:"-"`

	// Build options. Width and Height override the config.
	Width        float64   `json:"width,omitempty"`
	Height       float64   `json:"height,omitempty"`
	HeatMap      bool      `json:"heatmap,omitempty"`
	GridLines    bool      `json:"grid,omitempty"`
	Cluster      bool      `json:"cluster,omitempty"`
	RemoveDonors string    `json:"remove_donors,omitempty"`
	RemoveGenes  string    `json:"remove_genes,omitempty"`
	SortDonors   string    `json:"sort_donors,omitempty"`
	SortGenes    string    `json:"sort_genes,omitempty"`
	Select       []float64 `json:"select,omitempty"`
	// SortDonorsTrack and SortGenesTrack sort with the comparator of the
	// visible track showing that field, after the expression sorts.
	SortDonorsTrack string `json:"sort_donors_track,omitempty"`
	SortGenesTrack  string `json:"sort_genes_track,omitempty"`

	// Render options
	Formats  []string `json:"formats,omitempty"`
	Tooltips bool     `json:"tooltips,omitempty"`
	Title    string   `json:"title,omitempty"`
	Scale    float64  `json:"scale,omitempty"`
	Refresh  bool     `json:"refresh,omitempty"`

	Logger *log.Logger `json:"-"`

	validated bool
}

// Result holds the outputs of a pipeline run.
type Result struct {
	Dataset     *oio.Dataset
	DatasetHash string
	Grid        *grid.Grid
	Artifacts   map[string][]byte

	// RemovedDonors and RemovedGenes list ids dropped by the remove queries.
	RemovedDonors []string
	RemovedGenes  []string

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats holds sizes and timings of a run.
type Stats struct {
	Donors       int
	Genes        int
	Observations int
	LoadTime     time.Duration
	BuildTime    time.Duration
	RenderTime   time.Duration
}

// CacheInfo tracks which stages hit the cache.
type CacheInfo struct {
	RenderHit bool // all artifacts came from cache
}

// ValidateAndSetDefaults checks the options and fills defaults. It is
// idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Input == "" && o.Dataset == nil {
		return errors.New(errors.ErrCodeInvalidInput, "input dataset is required")
	}
	if o.Width < 0 || o.Height < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "size must not be negative (%vx%v)", o.Width, o.Height)
	}
	if n := len(o.Select); n != 0 && n != 4 {
		return errors.New(errors.ErrCodeInvalidInput, "select needs x1,y1,x2,y2, got %d values", n)
	}
	if o.Scale < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "scale must not be negative")
	}
	o.SetRenderDefaults()
	if err := sink.ValidateFormats(o.Formats); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{sink.FormatSVG}
	}
	if o.Scale == 0 {
		o.Scale = sink.DefaultPNGScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ArtifactKeyOpts returns cache key options for one rendered format.
func (o *Options) ArtifactKeyOpts(format, configHash string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{
		Format:       format,
		Width:        o.Width,
		Height:       o.Height,
		ConfigHash:   configHash,
		HeatMap:      o.HeatMap,
		GridLines:    o.GridLines,
		Cluster:      o.Cluster,
		RemoveDonors: o.RemoveDonors,
		RemoveGenes:  o.RemoveGenes,
		SortDonors:   o.SortDonors,
		SortGenes:    o.SortGenes,
		Select:       o.Select,

		SortDonorsTrack: o.SortDonorsTrack,
		SortGenesTrack:  o.SortGenesTrack,
	}
	switch format {
	case sink.FormatSVG:
		k.Tooltips, k.Title = o.Tooltips, o.Title
	case sink.FormatJSON:
		k.Tooltips = o.Tooltips
	case sink.FormatPNG:
		k.Scale = o.Scale
	}
	return k
}

func (o *Options) sinkOptions(cellTemplate string) sink.Options {
	return sink.Options{
		Formats:      o.Formats,
		Tooltips:     o.Tooltips,
		CellTemplate: cellTemplate,
		Title:        o.Title,
		Scale:        o.Scale,
	}
}
