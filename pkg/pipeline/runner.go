package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/railsheet/pkg/errors"
	"github.com/matzehuels/railsheet/pkg/exporter"
	"github.com/matzehuels/railsheet/pkg/importer"
	graphio "github.com/matzehuels/railsheet/pkg/io"
	"github.com/matzehuels/railsheet/pkg/network"
	"github.com/matzehuels/railsheet/pkg/observability"
	"github.com/matzehuels/railsheet/pkg/sheet"
)

// Runner encapsulates pipeline execution.
// Both CLI and server use this to avoid duplicating conversion logic.
//
// The Runner is stateless except for its logger and import defaults - it
// doesn't store pipeline results. Multiple goroutines can safely use the
// same Runner.
type Runner struct {
	Logger        *log.Logger
	ImportOptions importer.Options
}

// NewRunner creates a runner. If logger is nil, log.Default() is used.
// The runner's logger replaces a nil logger in importOpts.
func NewRunner(logger *log.Logger, importOpts importer.Options) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	if importOpts.Logger == nil {
		importOpts.Logger = logger
	}
	return &Runner{Logger: logger, ImportOptions: importOpts}
}

// =============================================================================
// Import
// =============================================================================

// Import reads the workbook or graph document at path and builds a graph.
func (r *Runner) Import(ctx context.Context, path string, opts Options) (res *Result, err error) {
	format, err := resolveFormat(opts.InputFormat, path)
	if err != nil {
		return nil, err
	}

	observability.Pipeline().OnImportStart(ctx, path)
	start := time.Now()
	defer func() {
		stations, edges := 0, 0
		if res != nil {
			stations, edges = res.Stats.Stations, res.Stats.Edges
		}
		observability.Pipeline().OnImportComplete(ctx, path, stations, edges, time.Since(start), err)
	}()

	if format == FormatJSON {
		return r.importJSON(ctx, path)
	}

	readStart := time.Now()
	wb, err := readWorkbookFile(path, format)
	if err != nil {
		return nil, err
	}
	readTime := time.Since(readStart)
	r.Logger.Debug("read workbook", "path", path, "format", format, "duration", readTime)

	res, err = r.build(ctx, wb)
	if err != nil {
		return nil, err
	}
	res.Stats.ReadTime = readTime
	return res, nil
}

// ImportBytes builds a graph from an in-memory workbook or graph document.
// format must be given explicitly; FormatCSV is not supported here because
// a directory has no byte form.
func (r *Runner) ImportBytes(ctx context.Context, data []byte, format string) (*Result, error) {
	if err := ValidateFormat(format); err != nil {
		return nil, err
	}

	switch format {
	case FormatJSON:
		g, view, err := graphio.ReadJSON(bytes.NewReader(data))
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidGraph, err, "invalid graph document")
		}
		return r.graphResult(g, view), nil
	case FormatCSV:
		return nil, errors.New(errors.ErrCodeUnsupported, "csv directories cannot be read from memory, use zip")
	}

	wb, err := readWorkbook(bytes.NewReader(data), int64(len(data)), format)
	if err != nil {
		return nil, err
	}
	return r.build(ctx, wb)
}

func (r *Runner) importJSON(ctx context.Context, path string) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "file not found: %s", path)
	}
	start := time.Now()
	g, view, err := graphio.ImportJSON(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidGraph, err, "invalid graph document %s", path)
	}
	res := r.graphResult(g, view)
	res.Stats.ReadTime = time.Since(start)
	return res, nil
}

func (r *Runner) build(ctx context.Context, wb *sheet.Workbook) (*Result, error) {
	start := time.Now()
	built, err := importer.Build(ctx, wb, r.ImportOptions)
	if err != nil {
		return nil, err
	}

	res := r.graphResult(built.Graph, built.View)
	res.Report = built.Report
	res.Stats.ImportTime = time.Since(start)

	r.Logger.Info("imported workbook",
		"stations", res.Stats.Stations,
		"edges", res.Stats.Edges,
		"lines", res.Stats.Lines,
		"duration", res.Stats.ImportTime)
	for _, n := range built.Report.Notes {
		r.Logger.Debug("recovered", "kind", n.Kind, "sheet", n.Sheet, "row", n.Row, "detail", n.Detail)
	}
	return res, nil
}

func (r *Runner) graphResult(g *network.Graph, view network.ViewMeta) *Result {
	res := &Result{Graph: g, View: view}
	res.Stats.Stations = g.StationCount()
	res.Stats.Edges = g.EdgeCount()
	res.Stats.Lines = len(g.Lines())

	var buf bytes.Buffer
	if err := graphio.WriteJSON(g, view, &buf); err == nil {
		res.GraphHash = Hash(buf.Bytes())
	}
	return res
}

// =============================================================================
// Export
// =============================================================================

// Export reconstructs workbook rows from g and writes them to path.
// With FormatJSON the graph document is written instead of rows; Rows is
// still filled in.
func (r *Runner) Export(ctx context.Context, g *network.Graph, view network.ViewMeta, path string, opts Options) (res *Result, err error) {
	format, err := resolveFormat(opts.OutputFormat, path)
	if err != nil {
		return nil, err
	}

	observability.Pipeline().OnExportStart(ctx, path, g.StationCount(), g.EdgeCount())
	start := time.Now()
	defer func() {
		lines, stops := 0, 0
		if res != nil {
			lines, stops = res.Stats.Lines, res.Stats.Stops
		}
		observability.Pipeline().OnExportComplete(ctx, path, lines, stops, time.Since(start), err)
	}()

	res = r.export(g, view)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	writeStart := time.Now()
	if err := writeFile(path, format, res); err != nil {
		return nil, err
	}
	res.Stats.WriteTime = time.Since(writeStart)

	r.Logger.Info("exported workbook",
		"path", path,
		"format", format,
		"lines", res.Stats.Lines,
		"stops", res.Stats.Stops,
		"duration", res.Stats.ExportTime+res.Stats.WriteTime)
	return res, nil
}

// ExportBytes reconstructs workbook rows from g and returns them encoded in
// format. FormatCSV is not supported; use FormatZip.
func (r *Runner) ExportBytes(ctx context.Context, g *network.Graph, view network.ViewMeta, format string) ([]byte, *Result, error) {
	if err := ValidateFormat(format); err != nil {
		return nil, nil, err
	}
	if format == FormatCSV {
		return nil, nil, errors.New(errors.ErrCodeUnsupported, "csv directories cannot be written to memory, use zip")
	}
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	res := r.export(g, view)
	var buf bytes.Buffer
	if err := encode(&buf, format, res); err != nil {
		return nil, nil, err
	}
	return buf.Bytes(), res, nil
}

// Rebuild reconstructs workbook rows from g without writing anything.
func (r *Runner) Rebuild(g *network.Graph, view network.ViewMeta) *Result {
	return r.export(g, view)
}

func (r *Runner) export(g *network.Graph, view network.ViewMeta) *Result {
	start := time.Now()
	rows := exporter.Export(g, view)

	res := r.graphResult(g, view)
	res.Rows = rows
	res.Stats.Lines = len(rows.Lines)
	res.Stats.Stops = len(rows.Stops)
	res.Stats.ExportTime = time.Since(start)

	r.Logger.Debug("rebuilt lines",
		"lines", res.Stats.Lines,
		"stops", res.Stats.Stops,
		"duration", res.Stats.ExportTime)
	return res
}

// =============================================================================
// Convert
// =============================================================================

// Convert imports in and exports the result to out.
// Stats of both halves are merged into the returned result.
func (r *Runner) Convert(ctx context.Context, in, out string, opts Options) (*Result, error) {
	imported, err := r.Import(ctx, in, opts)
	if err != nil {
		return nil, fmt.Errorf("import: %w", err)
	}
	exported, err := r.Export(ctx, imported.Graph, imported.View, out, opts)
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}

	exported.Report = imported.Report
	exported.Stats.ReadTime = imported.Stats.ReadTime
	exported.Stats.ImportTime = imported.Stats.ImportTime
	return exported, nil
}

// =============================================================================
// Format I/O
// =============================================================================

func readWorkbookFile(path, format string) (*sheet.Workbook, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "file not found: %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "cannot read %s", path)
	}

	if format == FormatCSV {
		wb, err := sheet.ReadDir(path)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidWorkbook, err, "cannot read CSV directory %s", path)
		}
		return wb, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "cannot open %s", path)
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "cannot stat %s", path)
	}
	return readWorkbook(f, info.Size(), format)
}

// workbookSource is satisfied by *os.File and *bytes.Reader.
type workbookSource interface {
	io.Reader
	io.ReaderAt
}

func readWorkbook(r workbookSource, size int64, format string) (*sheet.Workbook, error) {
	var (
		wb  *sheet.Workbook
		err error
	)
	switch format {
	case FormatXLSX:
		wb, err = sheet.ReadXLSX(r)
	case FormatZip:
		wb, err = sheet.ReadZip(r, size)
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "format %q is not a workbook container", format)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidWorkbook, err, "cannot read %s workbook", format)
	}
	return wb, nil
}

func writeFile(path, format string, res *Result) error {
	if format == FormatCSV {
		if err := sheet.WriteDir(path, res.Rows.Workbook()); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "cannot write CSV directory %s", path)
		}
		return nil
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "cannot create %s", path)
	}
	if err := encode(f, format, res); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "cannot write %s", path)
	}
	return nil
}

func encode(w io.Writer, format string, res *Result) error {
	var err error
	switch format {
	case FormatXLSX:
		err = sheet.WriteXLSX(w, res.Rows.Workbook())
	case FormatZip:
		err = sheet.WriteZip(w, res.Rows.Workbook())
	case FormatJSON:
		err = graphio.WriteJSON(res.Graph, res.View, w)
	default:
		return errors.New(errors.ErrCodeUnsupported, "cannot encode format %q", format)
	}
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "cannot write %s", format)
	}
	return nil
}
