package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/railsheet/pkg/pipeline"
)

// importCommand creates the import command (workbook → graph document).
func (c *CLI) importCommand() *cobra.Command {
	var (
		output      string
		inputFormat string
	)

	cmd := &cobra.Command{
		Use:   "import [workbook]",
		Short: "Build a graph JSON document from a workbook",
		Long: `Build a graph JSON document from a workbook.

The workbook may be an .xlsx file, a .zip archive of CSV files, or a
directory of CSV files (stations.csv, lines.csv, linestops.csv, project.csv).
Problems the importer can repair, such as unknown station types or stops
that name undeclared stations, are listed as warnings.`,
		Example: `  railsheet import network.xlsx
  railsheet import network/ -o graph.json`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeInputs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if output == "" {
				output = defaultOutput(args[0], pipeline.FormatJSON)
			}
			opts := pipeline.Options{InputFormat: inputFormat, OutputFormat: pipeline.FormatJSON}
			if err := c.runConvert(cmd.Context(), args[0], output, opts); err != nil {
				return err
			}
			printNextStep("Edit the graph, then rebuild the workbook with",
				fmt.Sprintf("%s export %s", appName, output))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output graph document (default <input>.json)")
	cmd.Flags().StringVar(&inputFormat, "input-format", "", "input format: xlsx, zip, csv (default: from extension)")

	return cmd
}

// exportCommand creates the export command (graph document → workbook).
func (c *CLI) exportCommand() *cobra.Command {
	var (
		output       string
		outputFormat string
	)

	cmd := &cobra.Command{
		Use:   "export [graph.json]",
		Short: "Rebuild a workbook from a graph JSON document",
		Long: `Rebuild a workbook from a graph JSON document.

Line sequences are reconstructed from the edges: edges are grouped by their
line, split into connected pieces and walked from a terminus. A line that
branches is written as several lines (L1, L1_2, ...).`,
		Example: `  railsheet export graph.json
  railsheet export graph.json -o network.zip
  railsheet export graph.json -o out/ --output-format csv`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeInputs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if output == "" {
				ext := outputFormat
				if ext == "" {
					ext = pipeline.FormatXLSX
				}
				output = defaultOutput(args[0], ext)
			}
			opts := pipeline.Options{InputFormat: pipeline.FormatJSON, OutputFormat: outputFormat}
			return c.runConvert(cmd.Context(), args[0], output, opts)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output workbook (default <input>.xlsx)")
	cmd.Flags().StringVar(&outputFormat, "output-format", "", "output format: xlsx, zip, csv (default: from extension)")

	return cmd
}

// convertCommand creates the convert command (any format → any format).
func (c *CLI) convertCommand() *cobra.Command {
	var opts pipeline.Options

	cmd := &cobra.Command{
		Use:   "convert [input] [output]",
		Short: "Convert between workbook formats and graph documents",
		Long: `Convert between workbook formats and graph documents.

Both sides accept xlsx, zip, csv (a directory) and json (a graph document).
Formats are detected from the path unless given explicitly. Converting a
workbook to a workbook normalizes it: generated ids are filled in, every
stop is resolved and lines are renumbered from the graph.`,
		Example: `  railsheet convert network.xlsx network.zip
  railsheet convert network/ network.xlsx`,
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: completeInputs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runConvert(cmd.Context(), args[0], args[1], opts)
		},
	}

	cmd.Flags().StringVar(&opts.InputFormat, "input-format", "", "input format: xlsx, zip, csv, json")
	cmd.Flags().StringVar(&opts.OutputFormat, "output-format", "", "output format: xlsx, zip, csv, json")

	return cmd
}

// runConvert converts input to output and prints a summary.
func (c *CLI) runConvert(ctx context.Context, input, output string, opts pipeline.Options) error {
	runner, _, err := c.newRunner()
	if err != nil {
		return err
	}

	prog := newProgress(c.Logger)
	res, err := runner.Convert(ctx, input, output, opts)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Converted %s", filepath.Base(input)))

	printReport(res.Report, c.Verbose)
	printSuccess("Wrote %s", res.Summary())
	printStats(res.Stats)
	printFile(output)
	return nil
}
