package cli

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/railsheet/pkg/buildinfo"
	"github.com/matzehuels/railsheet/pkg/config"
	"github.com/matzehuels/railsheet/pkg/observability"
	"github.com/matzehuels/railsheet/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for display.
const appName = "railsheet"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// ConfigPath overrides the default config file location.
	ConfigPath string

	// Verbose switches the logger to debug level and lists every import note.
	Verbose bool
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Railsheet keeps transit map graphs and workbooks in sync",
		Long: `Railsheet converts between a four-sheet workbook (Stations, Lines, LineStops,
Project) and the station/edge graph of a transit map.

Workbooks may be .xlsx files, .zip archives of CSV files, or directories of
CSV files. Graphs are JSON documents.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if c.Verbose {
				c.SetLogLevel(LogDebug)
				observability.SetPipelineHooks(observability.NewLogHooks(c.Logger))
			}
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&c.Verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&c.ConfigPath, "config", "", "config file (default $XDG_CONFIG_HOME/railsheet/config.toml)")

	root.AddCommand(c.importCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.convertCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// loadConfig reads the config file selected by --config.
func (c *CLI) loadConfig() (config.Config, error) {
	return config.Load(c.ConfigPath)
}

// newRunner creates a pipeline runner using the configured import defaults.
func (c *CLI) newRunner() (*pipeline.Runner, config.Config, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, cfg, err
	}
	return pipeline.NewRunner(c.Logger, cfg.ImportOptions(c.Logger)), cfg, nil
}

// =============================================================================
// Paths
// =============================================================================

// defaultOutput derives an output path from input by swapping its extension.
// ext is given without a dot; an empty ext yields a CSV directory name.
func defaultOutput(input, ext string) string {
	trimmed := strings.TrimRight(input, `/\`)
	base := strings.TrimSuffix(filepath.Base(trimmed), filepath.Ext(trimmed))
	dir := filepath.Dir(trimmed)
	if ext == "" || ext == pipeline.FormatCSV {
		return filepath.Join(dir, base+"_csv")
	}
	return filepath.Join(dir, base+"."+ext)
}
