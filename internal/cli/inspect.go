package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/oncogrid/pkg/grid"
	"github.com/matzehuels/oncogrid/pkg/model"
	"github.com/matzehuels/oncogrid/pkg/pipeline"
)

// inspectCommand creates the inspect command.
func (c *CLI) inspectCommand() *cobra.Command {
	var limit int
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "inspect [dataset.json]",
		Short: "Print donors and genes in grid order with scores and counts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Input = args[0]
			return c.runInspect(cmd.Context(), opts, limit, os.Stdout)
		},
	}
	addBuildFlags(cmd, &opts, nil)
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "rows per table, 0 for all")
	return cmd
}

func (c *CLI) runInspect(ctx context.Context, opts pipeline.Options, limit int, w io.Writer) error {
	g, err := c.buildGrid(ctx, opts)
	if err != nil {
		return err
	}

	fmt.Fprintln(w, StyleTitle.Render("Genes"))
	fmt.Fprintln(w, geneTable(g.Genes(), limit))
	fmt.Fprintln(w, StyleTitle.Render("Donors"))
	fmt.Fprintln(w, donorTable(g.Donors(), limit))

	fmt.Fprintln(w, keyValue("observations", fmt.Sprint(len(g.Observations()))))
	for _, axis := range []grid.Axis{grid.DonorAxis, grid.GeneAxis} {
		if groups := g.TrackGroups(axis); len(groups) > 0 {
			fmt.Fprintln(w, keyValue(axis.String()+" tracks", strings.Join(groups, ", ")))
		}
	}
	width, height := g.Size()
	fmt.Fprintln(w, keyValue("size", fmt.Sprintf("%.0fx%.0f", width, height)))
	return nil
}

// buildGrid loads and builds without rendering.
func (c *CLI) buildGrid(ctx context.Context, opts pipeline.Options) (*grid.Grid, error) {
	runner, err := c.newRunner(true)
	if err != nil {
		return nil, err
	}
	defer runner.Close()

	ds, cfg, err := runner.Load(ctx, opts)
	if err != nil {
		return nil, err
	}
	g, _, err := runner.Build(ds, cfg, opts)
	return g, err
}

var (
	tableHeaderStyle = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	tableCellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 { // header
				return tableHeaderStyle.Padding(0, 1)
			}
			if col >= 2 {
				return tableCellStyle.Foreground(colorCyan)
			}
			return tableCellStyle
		})
}

func geneTable(genes []*model.Gene, limit int) string {
	t := newTable("Gene", "Symbol", "Score", "Donors")
	for i, g := range genes {
		if limit > 0 && i == limit {
			t.Row("…", fmt.Sprintf("%d more", len(genes)-limit), "", "")
			break
		}
		t.Row(g.ID, g.Symbol, fmt.Sprintf("%g", g.Score), fmt.Sprint(g.Count))
	}
	return t.Render()
}

func donorTable(donors []*model.Donor, limit int) string {
	t := newTable("Donor", "Fields", "Score", "Mutations")
	for i, d := range donors {
		if limit > 0 && i == limit {
			t.Row("…", fmt.Sprintf("%d more", len(donors)-limit), "", "")
			break
		}
		t.Row(d.ID, fieldSummary(d.Fields), fmt.Sprintf("%g", d.Score), fmt.Sprint(d.Count))
	}
	return t.Render()
}

// fieldSummary lists field names and values in key order, shortened.
func fieldSummary(f model.Fields) string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, f[k]))
	}
	s := strings.Join(parts, " ")
	if len(s) > 40 {
		s = s[:39] + "…"
	}
	return s
}
