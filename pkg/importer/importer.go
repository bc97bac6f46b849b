package importer

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/railsheet/pkg/errors"
	"github.com/matzehuels/railsheet/pkg/network"
	"github.com/matzehuels/railsheet/pkg/sheet"
)

// Options configures an import. The zero value is ready to use.
type Options struct {
	// Logger receives debug output for every recovered condition.
	// If nil, log.Default() is used.
	Logger *log.Logger

	// DefaultColor replaces missing or malformed line colors.
	// Defaults to network.DefaultLineColor.
	DefaultColor string

	// DefaultPath and DefaultStyle replace missing or unknown enum values.
	DefaultPath  network.LinePathType
	DefaultStyle network.LineStyleType

	// DefaultStationType replaces missing or unknown station types.
	DefaultStationType network.StationType

	// DefaultView is used for absent Project fields.
	// A zero Zoom selects network.DefaultViewMeta().
	DefaultView network.ViewMeta

	// NewID generates station and line ids. Defaults to NanoID(0).
	NewID IDFunc
}

func (o *Options) setDefaults() {
	if o.Logger == nil {
		o.Logger = log.Default()
	}
	if c, ok := network.ParseColor(o.DefaultColor); ok {
		o.DefaultColor = c
	} else {
		o.DefaultColor = network.DefaultLineColor
	}
	if _, ok := network.PathTypes[o.DefaultPath]; !ok {
		o.DefaultPath = network.DefaultPathType
	}
	if _, ok := network.StyleTypes[o.DefaultStyle]; !ok {
		o.DefaultStyle = network.DefaultStyleType
	}
	if _, ok := network.StationTypes[o.DefaultStationType]; !ok {
		o.DefaultStationType = network.DefaultStationType
	}
	if o.DefaultView.Zoom == 0 {
		o.DefaultView = network.DefaultViewMeta()
	}
	if o.NewID == nil {
		o.NewID = NanoID(0)
	}
}

// Result is the outcome of a successful import.
type Result struct {
	Graph  *network.Graph
	View   network.ViewMeta
	Report Report
}

// Build converts wb into a fresh graph.
//
// Stations, Lines and LineStops must be present and Stations must have at
// least one data row. Malformed optional values never fail the import; they
// are replaced by defaults and recorded in Result.Report.
func Build(ctx context.Context, wb *sheet.Workbook, opts Options) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if wb == nil {
		return nil, errors.New(errors.ErrCodeInvalidWorkbook, "no workbook")
	}
	opts.setDefaults()

	for _, req := range []struct {
		name  string
		table *sheet.Table
	}{
		{sheet.SheetStations, wb.Stations},
		{sheet.SheetLines, wb.Lines},
		{sheet.SheetLineStops, wb.LineStops},
	} {
		if req.table == nil {
			return nil, errors.New(errors.ErrCodeMissingSheet, "required sheet %q not found", req.name)
		}
	}

	b := newBuilder(opts)

	stationRows := wb.Stations.Rows()
	if len(stationRows) == 0 {
		return nil, errors.New(errors.ErrCodeEmptySheet, "sheet %q has no rows", sheet.SheetStations)
	}
	if err := b.stations(stationRows); err != nil {
		return nil, err
	}
	if err := b.lineRows(wb.Lines.Rows()); err != nil {
		return nil, err
	}
	if err := b.stops(wb.LineStops.Rows()); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := b.segments(); err != nil {
		return nil, err
	}
	view, err := b.view(wb.Project)
	if err != nil {
		return nil, err
	}

	opts.Logger.Debug("import complete",
		"stations", b.g.StationCount(),
		"edges", b.g.EdgeCount(),
		"lines", len(b.lineOrder),
		"notes", len(b.report.Notes))

	return &Result{Graph: b.g, View: view, Report: b.report}, nil
}

// stop is one resolved LineStops row.
type stop struct {
	order   float64
	station network.StationRef
	row     int
}

// builder carries the lookup state of one import.
type builder struct {
	opts   Options
	g      *network.Graph
	report Report

	aliases map[string]network.StationRef

	lines      map[string]*network.LineConfig
	lineOrder  []string          // line ids, declaration order then first use
	lineByName map[string]string // name -> id, first declaration wins
	anonLine   string            // shared id for LineStops rows without a line
	stopsByID  map[string][]stop
}

func newBuilder(opts Options) *builder {
	return &builder{
		opts:       opts,
		g:          network.New(),
		aliases:    make(map[string]network.StationRef),
		lines:      make(map[string]*network.LineConfig),
		lineByName: make(map[string]string),
		stopsByID:  make(map[string][]stop),
	}
}

func (b *builder) note(kind NoteKind, sheetName string, row int, format string, args ...any) {
	n := Note{Kind: kind, Sheet: sheetName, Row: row, Detail: fmt.Sprintf(format, args...)}
	b.report.Notes = append(b.report.Notes, n)
	b.opts.Logger.Debug(n.Detail, "kind", kind, "sheet", sheetName, "row", row)
}

func (b *builder) newID(prefix string) (string, error) {
	id, err := b.opts.NewID(prefix)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "could not generate id")
	}
	return id, nil
}
