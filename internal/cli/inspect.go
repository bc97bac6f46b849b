package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/railsheet/pkg/network"
	"github.com/matzehuels/railsheet/pkg/pipeline"
	"github.com/matzehuels/railsheet/pkg/render/nodelink"
)

// inspectOpts holds the command-line flags for the inspect command.
type inspectOpts struct {
	inputFormat string
	diagram     string  // diagram output path; extension selects dot, svg, pdf or png
	geographic  bool    // pin stations at their map coordinates
	detailed    bool    // add ids and station types to labels
	scale       float64 // map units per point (geographic) or PNG scale
}

// inspectCommand creates the inspect command.
func (c *CLI) inspectCommand() *cobra.Command {
	var opts inspectOpts

	cmd := &cobra.Command{
		Use:   "inspect [workbook|graph.json]",
		Short: "Print statistics and repaired problems of a network",
		Long: `Print statistics and repaired problems of a network.

The input is imported exactly as 'convert' would import it. The lines that
an export would produce are listed too, so branches and gaps that split a
line show up before the workbook is written.

With --diagram the station graph is rendered as a node-link diagram, each
edge drawn in its line color. The extension of the path picks the format:
.dot, .svg, .pdf or .png (PDF and PNG need rsvg-convert).`,
		Example: `  railsheet inspect network.xlsx
  railsheet inspect graph.json --diagram map.svg --geo`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeInputs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInspect(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.inputFormat, "input-format", "", "input format: xlsx, zip, csv, json")
	cmd.Flags().StringVarP(&opts.diagram, "diagram", "d", "", "write a diagram (.dot, .svg, .pdf, .png)")
	cmd.Flags().BoolVar(&opts.geographic, "geo", false, "pin stations at their map coordinates")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show station ids and types in the diagram")
	cmd.Flags().Float64Var(&opts.scale, "scale", 1, "map scale (--geo) or PNG resolution factor")

	return cmd
}

func (c *CLI) runInspect(ctx context.Context, input string, opts inspectOpts) error {
	runner, _, err := c.newRunner()
	if err != nil {
		return err
	}

	res, err := runner.Import(ctx, input, pipeline.Options{InputFormat: opts.inputFormat})
	if err != nil {
		return err
	}
	rebuilt := runner.Rebuild(res.Graph, res.View)

	fmt.Fprintln(out, StyleTitle.Render(filepath.Base(input)))
	printKeyValue("stations", StyleNumber.Render(fmt.Sprint(res.Stats.Stations)))
	printKeyValue("edges", StyleNumber.Render(fmt.Sprint(res.Stats.Edges)))
	printKeyValue("lines", StyleNumber.Render(fmt.Sprint(res.Stats.Lines)))
	printKeyValue("view", fmt.Sprintf("zoom %g at (%g, %g)", res.View.Zoom, res.View.MinX, res.View.MinY))
	printKeyValue("hash", res.GraphHash[:min(12, len(res.GraphHash))])

	printInfo("Export would write %d lines with %d stops", len(rebuilt.Rows.Lines), len(rebuilt.Rows.Stops))
	for _, l := range rebuilt.Rows.Lines {
		printDetail("%-16s %-8s %s", l.ID, l.Color, l.Name)
	}
	printReport(res.Report, c.Verbose)

	if opts.diagram == "" {
		return nil
	}
	return c.writeDiagram(ctx, res.Graph, opts)
}

// writeDiagram renders g to opts.diagram in the format named by its extension.
func (c *CLI) writeDiagram(ctx context.Context, g *network.Graph, opts inspectOpts) error {
	renderOpts := nodelink.Options{Detailed: opts.detailed, Geographic: opts.geographic}
	if opts.geographic {
		renderOpts.Scale = opts.scale
	}
	dot := nodelink.ToDOT(g, renderOpts)

	var (
		data []byte
		err  error
	)
	switch ext := strings.ToLower(filepath.Ext(opts.diagram)); ext {
	case ".dot", ".gv":
		data = []byte(dot)
	case ".svg":
		data, err = nodelink.RenderSVG(ctx, dot, renderOpts)
	case ".pdf":
		data, err = nodelink.RenderPDF(ctx, dot, renderOpts)
	case ".png":
		data, err = nodelink.RenderPNG(ctx, dot, renderOpts, opts.scale)
	default:
		return fmt.Errorf("unsupported diagram format %q (use .dot, .svg, .pdf or .png)", ext)
	}
	if err != nil {
		return fmt.Errorf("render diagram: %w", err)
	}

	if err := os.WriteFile(opts.diagram, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", opts.diagram, err)
	}
	c.Logger.Debug("wrote diagram", "path", opts.diagram, "bytes", len(data))
	printFile(opts.diagram)
	return nil
}
