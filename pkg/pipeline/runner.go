package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/oncogrid/pkg/cache"
	"github.com/matzehuels/oncogrid/pkg/config"
	"github.com/matzehuels/oncogrid/pkg/errors"
	"github.com/matzehuels/oncogrid/pkg/grid"
	oio "github.com/matzehuels/oncogrid/pkg/io"
	"github.com/matzehuels/oncogrid/pkg/model"
	"github.com/matzehuels/oncogrid/pkg/observability"
	"github.com/matzehuels/oncogrid/pkg/query"
	"github.com/matzehuels/oncogrid/pkg/render/sink"
)

// Runner executes the pipeline with artifact caching.
//
// The Runner keeps no per-run state, so one Runner can serve concurrent
// runs with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner. A nil keyer selects the DefaultKeyer, a nil
// cache disables caching.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// Execute runs load, build and render.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{}

	loadStart := time.Now()
	ds, cfg, err := r.Load(ctx, opts)
	if err != nil {
		return nil, err
	}
	result.Dataset = ds
	result.DatasetHash, err = DatasetHash(ds)
	if err != nil {
		return nil, err
	}
	result.Stats.LoadTime = time.Since(loadStart)
	r.Logger.Info("loaded dataset",
		"donors", len(ds.Donors),
		"genes", len(ds.Genes),
		"observations", len(ds.Observations),
		"duration", result.Stats.LoadTime)

	buildStart := time.Now()
	g, removed, err := r.Build(ds, cfg, opts)
	if err != nil {
		return nil, err
	}
	result.Grid = g
	result.RemovedDonors, result.RemovedGenes = removed.donors, removed.genes
	result.Stats.Donors = len(g.Donors())
	result.Stats.Genes = len(g.Genes())
	result.Stats.Observations = len(g.Observations())
	result.Stats.BuildTime = time.Since(buildStart)
	r.Logger.Info("built grid",
		"donors", result.Stats.Donors,
		"genes", result.Stats.Genes,
		"removed_donors", len(removed.donors),
		"removed_genes", len(removed.genes),
		"duration", result.Stats.BuildTime)

	renderStart := time.Now()
	artifacts, hit, err := r.RenderWithCacheInfo(ctx, g, result.DatasetHash, cfg, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.CacheInfo.RenderHit = hit
	result.Stats.RenderTime = time.Since(renderStart)
	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", hit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Load returns the dataset and config of a run. Without a config path the
// default config is used.
func (r *Runner) Load(ctx context.Context, opts Options) (*oio.Dataset, *config.Config, error) {
	ds := opts.Dataset
	if ds == nil {
		var err error
		if ds, err = oio.ImportJSON(ctx, opts.Input); err != nil {
			return nil, nil, err
		}
	}

	cfg := opts.Config
	switch {
	case cfg != nil:
	case opts.ConfigPath != "":
		var err error
		if cfg, err = config.Load(opts.ConfigPath); err != nil {
			return nil, nil, err
		}
		r.Logger.Debug("loaded config", "path", opts.ConfigPath)
	default:
		cfg = config.Default()
	}
	return ds, cfg, nil
}

type removal struct{ donors, genes []string }

// Build constructs the grid and applies the query operations in a fixed
// order: remove donors, remove genes, sort genes, sort donors, cluster,
// select. Track sorts follow the expression sort of their axis.
func (r *Runner) Build(ds *oio.Dataset, cfg *config.Config, opts Options) (*grid.Grid, removal, error) {
	p := grid.Params{
		Donors:       ds.Donors,
		Genes:        ds.Genes,
		Observations: ds.Observations,
		Width:        opts.Width,
		Height:       opts.Height,
		Logger:       r.Logger,
	}
	cfg.Apply(&p)
	p.HeatMap = p.HeatMap || opts.HeatMap
	p.Grid = p.Grid || opts.GridLines

	g := grid.New(p)
	var rm removal

	if opts.RemoveDonors != "" {
		pred, err := query.Compile(opts.RemoveDonors)
		if err != nil {
			return nil, rm, err
		}
		hit, err := query.Match(pred, g.Donors())
		if err != nil {
			return nil, rm, err
		}
		rm.donors = g.RemoveDonors(func(d *model.Donor) bool { return hit[d.ID] })
	}
	if opts.RemoveGenes != "" {
		pred, err := query.Compile(opts.RemoveGenes)
		if err != nil {
			return nil, rm, err
		}
		hit, err := query.Match(pred, g.Genes())
		if err != nil {
			return nil, rm, err
		}
		rm.genes = g.RemoveGenes(func(gene *model.Gene) bool { return hit[gene.ID] })
	}
	if opts.SortGenes != "" {
		key, err := query.CompileSort(opts.SortGenes)
		if err != nil {
			return nil, rm, err
		}
		cmp, err := query.SortFunc(key, g.Genes())
		if err != nil {
			return nil, rm, err
		}
		g.SortGenes(cmp)
	}
	if f := opts.SortGenesTrack; f != "" && !g.SortGenesByTrack(f) {
		return nil, rm, trackNotFound(g, grid.GeneAxis, f)
	}
	if opts.SortDonors != "" {
		key, err := query.CompileSort(opts.SortDonors)
		if err != nil {
			return nil, rm, err
		}
		cmp, err := query.SortFunc(key, g.Donors())
		if err != nil {
			return nil, rm, err
		}
		g.SortDonors(cmp)
	}
	if f := opts.SortDonorsTrack; f != "" && !g.SortDonorsByTrack(f) {
		return nil, rm, trackNotFound(g, grid.DonorAxis, f)
	}
	if opts.Cluster {
		g.Cluster()
	}
	if len(opts.Select) == 4 {
		// Region selection is a crosshair gesture.
		s := opts.Select
		if !g.Crosshair() {
			g.ToggleCrosshair()
			defer g.ToggleCrosshair()
		}
		g.SelectRegion(s[0], s[1], s[2], s[3])
	}
	return g, rm, nil
}

func trackNotFound(g *grid.Grid, axis grid.Axis, field string) error {
	groups := g.TrackGroups(axis)
	if len(groups) == 0 {
		return errors.New(errors.ErrCodeTrackNotFound, "no %s tracks configured, cannot sort by %q", axis, field)
	}
	return errors.New(errors.ErrCodeTrackNotFound, "no visible %s track shows %q (groups: %s)",
		axis, field, strings.Join(groups, ", "))
}

// RenderWithCacheInfo renders every requested format of g, serving them
// from the cache when all are present. The second result reports a full
// cache hit.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, g *grid.Grid, datasetHash string, cfg *config.Config, opts Options) (map[string][]byte, bool, error) {
	opts.SetRenderDefaults()
	if err := sink.ValidateFormats(opts.Formats); err != nil {
		return nil, false, err
	}
	configHash, err := ConfigHash(cfg)
	if err != nil {
		return nil, false, err
	}
	hooks := observability.Cache()

	keys := make(map[string]string, len(opts.Formats))
	for _, format := range opts.Formats {
		keys[format] = r.Keyer.ArtifactKey(datasetHash, opts.ArtifactKeyOpts(format, configHash))
	}

	if !opts.Refresh {
		artifacts := make(map[string][]byte, len(opts.Formats))
		for _, format := range opts.Formats {
			data, hit, err := r.Cache.Get(ctx, keys[format])
			if err != nil || !hit {
				hooks.OnCacheMiss(ctx, keys[format])
				break
			}
			hooks.OnCacheHit(ctx, keys[format])
			artifacts[format] = data
		}
		if len(artifacts) == len(opts.Formats) {
			return artifacts, true, nil
		}
	}

	artifacts, err := r.Render(ctx, g, cfg, opts)
	if err != nil {
		return nil, false, err
	}
	for format, data := range artifacts {
		if err := r.Cache.Set(ctx, keys[format], data, cache.ArtifactTTL); err != nil {
			r.Logger.Warn("cache write failed", "format", format, "err", err)
			continue
		}
		hooks.OnCacheSet(ctx, keys[format], len(data))
	}
	return artifacts, false, nil
}

// Render commits a render of g to a recording surface and returns its
// artifacts. It bypasses the cache.
func (r *Runner) Render(ctx context.Context, g *grid.Grid, cfg *config.Config, opts Options) (artifacts map[string][]byte, err error) {
	opts.SetRenderDefaults()
	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()
	defer func() { hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err) }()

	var tmpl string
	if cfg != nil {
		tmpl = cfg.Templates.MainGrid
	}
	rec := sink.NewRecorder(opts.sinkOptions(tmpl))
	if err := g.Prepare().Commit(ctx, rec); err != nil {
		return nil, err
	}
	return rec.Artifacts(), nil
}

// Close releases the cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// DatasetHash returns the content hash of ds in its exported form, so the
// same data hashes the same whatever the input formatting.
func DatasetHash(ds *oio.Dataset) (string, error) {
	var buf bytes.Buffer
	if err := oio.WriteJSON(ds, &buf); err != nil {
		return "", err
	}
	return cache.Hash(buf.Bytes()), nil
}

// ConfigHash returns the content hash of cfg. A nil config hashes as empty.
func ConfigHash(cfg *config.Config) (string, error) {
	if cfg == nil {
		return "", nil
	}
	data, err := json.Marshal(cfg)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "hash config")
	}
	return cache.Hash(data), nil
}
