package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/oncogrid/pkg/errors"
	"github.com/matzehuels/oncogrid/pkg/pipeline"
	"github.com/matzehuels/oncogrid/pkg/render/sink"
)

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		formatsStr string
		selectStr  string
		output     string
		noCache    bool
	)
	opts := pipeline.Options{Tooltips: true}

	cmd := &cobra.Command{
		Use:   "render [dataset.json]",
		Short: "Render a dataset to SVG, PNG or JSON",
		Long: `Render a dataset to SVG, PNG or JSON.

The dataset holds donors, genes and observations. An optional --config file
(TOML or YAML) adds tracks, colours and geometry; flags override it.

Query flags take expressions evaluated per donor or gene. Fields are
addressed by name, nested fields with dots:

  oncogrid render cohort.json --remove-donors 'count == 0'
  oncogrid render cohort.json --sort-donors '-clinical.age_diagnosis'

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Formats = parseFormats(formatsStr)
			if err := sink.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			sel, err := parseSelect(selectStr)
			if err != nil {
				return err
			}
			opts.Select = sel
			opts.Input = args[0]
			return c.runRender(cmd.Context(), opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), json, png (comma-separated)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	addBuildFlags(cmd, &opts, &selectStr)
	cmd.Flags().BoolVar(&opts.Tooltips, "tooltips", opts.Tooltips, "embed hover text in svg and json output")
	cmd.Flags().StringVar(&opts.Title, "title", "", "document title (svg)")
	cmd.Flags().Float64Var(&opts.Scale, "scale", sink.DefaultPNGScale, "pixel density (png)")

	return cmd
}

// addBuildFlags registers the flags shared by every command that builds a
// grid.
func addBuildFlags(cmd *cobra.Command, opts *pipeline.Options, selectStr *string) {
	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "config file (.toml, .yaml)")
	cmd.Flags().Float64Var(&opts.Width, "width", 0, "grid width (overrides config)")
	cmd.Flags().Float64Var(&opts.Height, "height", 0, "grid height (overrides config)")
	cmd.Flags().BoolVar(&opts.HeatMap, "heatmap", false, "draw cells as a heat map")
	cmd.Flags().BoolVar(&opts.GridLines, "grid", false, "draw grid lines")
	cmd.Flags().BoolVar(&opts.Cluster, "cluster", false, "cluster donors and genes")
	cmd.Flags().StringVar(&opts.RemoveDonors, "remove-donors", "", "remove donors matching an expression")
	cmd.Flags().StringVar(&opts.RemoveGenes, "remove-genes", "", "remove genes matching an expression")
	cmd.Flags().StringVar(&opts.SortDonors, "sort-donors", "", "sort donors by an expression, '-' prefix for descending")
	cmd.Flags().StringVar(&opts.SortGenes, "sort-genes", "", "sort genes by an expression, '-' prefix for descending")
	cmd.Flags().StringVar(&opts.SortDonorsTrack, "sort-donors-track", "", "sort donors by the track showing a field")
	cmd.Flags().StringVar(&opts.SortGenesTrack, "sort-genes-track", "", "sort genes by the track showing a field")
	if selectStr != nil {
		cmd.Flags().StringVar(selectStr, "select", "", "keep only the region x1,y1,x2,y2 in grid pixels")
	}
}

func (c *CLI) runRender(ctx context.Context, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = loggerFromContext(ctx)
	prog := newProgress(opts.Logger)

	spinner := newSpinnerWithContext(ctx, "Rendering "+filepath.Base(opts.Input)+"...")
	spinner.Start()
	res, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()
	prog.done(fmt.Sprintf("Rendered %d format(s)", len(res.Artifacts)))

	if len(res.RemovedDonors) > 0 || len(res.RemovedGenes) > 0 {
		printDetail("removed %d donor(s), %d gene(s)", len(res.RemovedDonors), len(res.RemovedGenes))
	}
	printStats(res.Stats, res.CacheInfo.RenderHit)
	if res.Stats.Observations == 0 {
		printWarning("no observations left to draw")
	}

	if err := writeArtifacts(artifactWriteParams{
		artifacts: res.Artifacts,
		formats:   opts.Formats,
		input:     opts.Input,
		output:    output,
	}); err != nil {
		return err
	}
	printNextStep("Explore interactively", appName+" explore "+opts.Input)
	return nil
}

type artifactWriteParams struct {
	artifacts map[string][]byte
	formats   []string
	input     string
	output    string
}

// writeArtifacts writes each format to its own file. A single format goes
// to --output as given; several formats share its base path.
func writeArtifacts(p artifactWriteParams) error {
	paths := outputPaths(p.formats, p.input, p.output)
	for _, format := range p.formats {
		path := paths[format]
		if err := errors.ValidatePath(path); err != nil {
			return err
		}
		if err := os.WriteFile(path, p.artifacts[format], 0o644); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "write %s", path)
		}
		printFile(path)
	}
	return nil
}

// outputPaths maps each format to a file path.
func outputPaths(formats []string, input, output string) map[string]string {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" {
		paths[formats[0]] = output
		return paths
	}
	base := basePath(output, input)
	for _, f := range formats {
		paths[f] = base + "." + f
	}
	return paths
}

// basePath strips a known format extension from output, or derives the base
// from the input name when output is empty.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if slices.Contains(sink.ValidFormats, strings.TrimPrefix(ext, ".")) {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
