package cli

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	oio "github.com/matzehuels/oncogrid/pkg/io"
	"github.com/matzehuels/oncogrid/pkg/pipeline"
)

// exportCommand creates the export command.
func (c *CLI) exportCommand() *cobra.Command {
	var (
		output    string
		selectStr string
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "export [dataset.json]",
		Short: "Write the dataset after removals and sorting",
		Long: `Write the dataset after removals and sorting.

Donors and genes are written in grid order, without the observations of
removed entities. The output is a dataset file that render accepts.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sel, err := parseSelect(selectStr)
			if err != nil {
				return err
			}
			opts.Select = sel
			opts.Input = args[0]
			if output == "" {
				output = strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0])) + ".grid.json"
			}
			return c.runExport(cmd.Context(), opts, output)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default <input>.grid.json)")
	addBuildFlags(cmd, &opts, &selectStr)
	return cmd
}

func (c *CLI) runExport(ctx context.Context, opts pipeline.Options, output string) error {
	g, err := c.buildGrid(ctx, opts)
	if err != nil {
		return err
	}
	ds := oio.Snapshot(g)
	if err := oio.ExportJSON(ds, output); err != nil {
		return err
	}
	printSuccess("Exported %d donors, %d genes, %d observations", len(ds.Donors), len(ds.Genes), len(ds.Observations))
	printFile(output)
	return nil
}
