package importer

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/railsheet/pkg/errors"
	"github.com/matzehuels/railsheet/pkg/network"
	"github.com/matzehuels/railsheet/pkg/sheet"
)

// seqIDs returns a deterministic IDFunc: prefix + "gen1", "gen2", ...
func seqIDs() IDFunc {
	n := 0
	return func(prefix string) (string, error) {
		n++
		return fmt.Sprintf("%sgen%d", prefix, n), nil
	}
}

func table(name string, header string, rows ...string) *sheet.Table {
	t := sheet.NewTable(name, strings.Split(header, ","))
	for _, r := range rows {
		t.Append(strings.Split(r, ",")...)
	}
	return t
}

// scenarioA is two stations joined by one red line.
func scenarioA() *sheet.Workbook {
	return &sheet.Workbook{
		Stations:  table(sheet.SheetStations, "station_id,x,y", "A,0,0", "B,10,0"),
		Lines:     table(sheet.SheetLines, "line_id,line_name,color_hex", "L1,Line 1,#FF0000"),
		LineStops: table(sheet.SheetLineStops, "line_id,stop_order,station_id", "L1,1,A", "L1,2,B"),
	}
}

func build(t *testing.T, wb *sheet.Workbook) *Result {
	t.Helper()
	res, err := Build(context.Background(), wb, Options{NewID: seqIDs()})
	require.NoError(t, err)
	return res
}

func stationRef(t *testing.T, g *network.Graph, external string) network.StationRef {
	t.Helper()
	ref, ok := g.StationByID(network.WithPrefix(external))
	require.Truef(t, ok, "station %s not found", external)
	return ref
}

func TestBuildScenarioA(t *testing.T) {
	res := build(t, scenarioA())
	g := res.Graph

	require.Equal(t, 2, g.StationCount())
	require.Equal(t, 1, g.EdgeCount())

	a, b := stationRef(t, g, "A"), stationRef(t, g, "B")
	e := g.Edge(0)
	assert.Equal(t, a, e.From)
	assert.Equal(t, b, e.To)
	assert.Equal(t, "#FF0000", e.StyleAttrs.Hex())
	assert.Equal(t, "L1", e.Reconcile)
	assert.Equal(t, network.PathDiagonal, e.Path)
	assert.Equal(t, network.StyleSingleColor, e.Style)
	assert.True(t, e.Visible)
	assert.Equal(t, 0, e.Parallel)
	assert.Equal(t, network.DefaultViewMeta(), res.View)
	assert.True(t, res.Report.Empty(), "notes: %v", res.Report.Notes)

	line, ok := g.Line("L1")
	require.True(t, ok)
	assert.Equal(t, "Line 1", line.Name)
}

func TestBuildScenarioCInvalidColor(t *testing.T) {
	wb := scenarioA()
	wb.Lines = table(sheet.SheetLines, "line_id,color_hex", "L1,notacolor")

	res := build(t, wb)

	require.Equal(t, 1, res.Graph.EdgeCount())
	assert.Equal(t, network.DefaultLineColor, res.Graph.Edge(0).StyleAttrs.Hex())
	assert.Equal(t, 1, res.Report.Count(NoteInvalidValue))
}

func TestBuildHeaderVariants(t *testing.T) {
	wb := &sheet.Workbook{
		Stations:  table(sheet.SheetStations, "Station ID,X,Y,Name EN,NAME_ZH,Extra", "A,1,2,Alpha,甲,ignored"),
		Lines:     table(sheet.SheetLines, "Line ID"),
		LineStops: table(sheet.SheetLineStops, "Line-ID,Stop Order,StationID"),
	}

	res := build(t, wb)
	s := res.Graph.Station(stationRef(t, res.Graph, "A"))
	assert.Equal(t, 1.0, s.X)
	assert.Equal(t, 2.0, s.Y)
	assert.Equal(t, [2]string{"甲", "Alpha"}, s.Names)
}

func TestBuildMissingSheets(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*sheet.Workbook)
		code   errors.Code
	}{
		{"no stations", func(wb *sheet.Workbook) { wb.Stations = nil }, errors.ErrCodeMissingSheet},
		{"no lines", func(wb *sheet.Workbook) { wb.Lines = nil }, errors.ErrCodeMissingSheet},
		{"no stops", func(wb *sheet.Workbook) { wb.LineStops = nil }, errors.ErrCodeMissingSheet},
		{"empty stations", func(wb *sheet.Workbook) {
			wb.Stations = table(sheet.SheetStations, "station_id,x,y")
		}, errors.ErrCodeEmptySheet},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wb := scenarioA()
			tt.mutate(wb)
			_, err := Build(context.Background(), wb, Options{})
			require.Error(t, err)
			assert.Equal(t, tt.code, errors.GetCode(err))
		})
	}
}

func TestBuildRowErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*sheet.Workbook)
		sheet  string
		row    int
		column string
	}{
		{
			name: "missing x",
			mutate: func(wb *sheet.Workbook) {
				wb.Stations = table(sheet.SheetStations, "station_id,x,y", "A,0,0", "B,,0")
			},
			sheet: sheet.SheetStations, row: 3, column: sheet.ColX,
		},
		{
			name: "non-finite y",
			mutate: func(wb *sheet.Workbook) {
				wb.Stations = table(sheet.SheetStations, "station_id,x,y", "A,0,Inf")
			},
			sheet: sheet.SheetStations, row: 2, column: sheet.ColY,
		},
		{
			name: "bad stop order",
			mutate: func(wb *sheet.Workbook) {
				wb.LineStops = table(sheet.SheetLineStops, "line_id,stop_order,station_id", "L1,1,A", "L1,two,B")
			},
			sheet: sheet.SheetLineStops, row: 3, column: sheet.ColStopOrder,
		},
		{
			name: "two project rows",
			mutate: func(wb *sheet.Workbook) {
				wb.Project = table(sheet.SheetProject, "svg_viewbox_zoom", "100", "200")
			},
			sheet: sheet.SheetProject, row: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wb := scenarioA()
			tt.mutate(wb)
			_, err := Build(context.Background(), wb, Options{NewID: seqIDs()})
			require.Error(t, err)

			row, ok := errors.AsRowError(err)
			require.True(t, ok, "expected a row error, got %v", err)
			assert.Equal(t, tt.sheet, row.Sheet)
			assert.Equal(t, tt.row, row.Row)
			assert.Equal(t, tt.column, row.Column)
		})
	}
}

func TestBuildStationIDs(t *testing.T) {
	wb := scenarioA()
	wb.Stations = table(sheet.SheetStations, "station_id,x,y,name_en",
		"A,0,0,Alpha",
		",5,5,Blank",
		"A,7,7,Again",
		"stn_B,10,0,Beta",
	)

	res := build(t, wb)
	g := res.Graph

	require.Equal(t, 4, g.StationCount())
	ids := map[string]bool{}
	for _, s := range g.Stations() {
		assert.False(t, ids[s.ID], "duplicate id %s", s.ID)
		ids[s.ID] = true
	}
	assert.True(t, ids["stn_A"])
	assert.True(t, ids["stn_B"])
	assert.True(t, ids["stn_gen1"])
	assert.True(t, ids["stn_gen2"])
	assert.Equal(t, 2, res.Report.Count(NoteGeneratedStationID))

	// "B" in LineStops resolves to the station declared as "stn_B", and the
	// first "A" keeps the alias.
	require.Equal(t, 1, g.EdgeCount())
	e := g.Edge(0)
	assert.Equal(t, "Alpha", g.Station(e.From).Names[1])
	assert.Equal(t, "stn_B", g.Station(e.To).ID)
}

func TestBuildPrefixOnlyStationID(t *testing.T) {
	wb := scenarioA()
	wb.Stations = table(sheet.SheetStations, "station_id,x,y", "A,0,0", "B,10,0", "stn_,5,5")

	res := build(t, wb)
	require.Equal(t, 3, res.Graph.StationCount())
	for _, s := range res.Graph.Stations() {
		assert.NotEmpty(t, s.ExternalID())
	}
	assert.Equal(t, 1, res.Report.Count(NoteGeneratedStationID))
}

func TestBuildAliasForms(t *testing.T) {
	wb := scenarioA()
	wb.LineStops = table(sheet.SheetLineStops, "line_id,stop_order,station_id",
		"L1,1,stn_A", "L1,2,B", "L1,3,stn_A")

	res := build(t, wb)
	assert.Equal(t, 2, res.Graph.StationCount())
	assert.Equal(t, 2, res.Graph.EdgeCount())
}

func TestBuildUnknownStation(t *testing.T) {
	wb := scenarioA()
	wb.LineStops = table(sheet.SheetLineStops, "line_id,stop_order,station_id",
		"L1,1,A", "L1,2,Ghost", "L1,3,Ghost ")

	res := build(t, wb)
	g := res.Graph

	require.Equal(t, 3, g.StationCount())
	ghost := stationRef(t, g, "Ghost")
	s := g.Station(ghost)
	assert.Equal(t, [2]string{"Ghost", "Ghost"}, s.Names)
	assert.Equal(t, 0.0, s.X)
	assert.Equal(t, 0.0, s.Y)
	assert.Equal(t, 1, res.Report.Count(NoteUnknownStation))
	assert.Equal(t, 1, res.Report.Count(NoteDuplicateStop))
	assert.Equal(t, 1, g.EdgeCount())
}

func TestBuildLines(t *testing.T) {
	wb := &sheet.Workbook{
		Stations: table(sheet.SheetStations, "station_id,x,y", "A,0,0", "B,1,0", "C,2,0"),
		Lines: table(sheet.SheetLines, "line_id,line_name,color_hex,line_path,line_style,z_index",
			"L1,One,#00ff00,perpendicular,dual color,3",
			"L1,Shadow,#000000,simple,river,9",
			",Red,#ff0000,bogus,bogus,",
			",Red,#0000ff,,,",
		),
		LineStops: table(sheet.SheetLineStops, "line_id,stop_order,station_id",
			"L1,1,A", "L1,2,B",
			"Red,1,B", "Red,2,C",
			"Undeclared,1,A", "Undeclared,2,C",
		),
	}

	res := build(t, wb)
	g := res.Graph

	l1, ok := g.Line("L1")
	require.True(t, ok)
	assert.Equal(t, "One", l1.Name)
	assert.Equal(t, "#00FF00", l1.Color)
	assert.Equal(t, network.PathPerpendicular, l1.Path)
	assert.Equal(t, network.StyleDualColor, l1.Style)
	assert.Equal(t, 3, l1.ZIndex)

	red, ok := g.Line("line_gen1")
	require.True(t, ok)
	assert.Equal(t, "Red", red.Name)
	assert.Equal(t, "#FF0000", red.Color)
	assert.Equal(t, network.PathDiagonal, red.Path)
	assert.Equal(t, network.StyleSingleColor, red.Style)

	und, ok := g.Line("Undeclared")
	require.True(t, ok)
	assert.Equal(t, network.DefaultLineColor, und.Color)

	require.Equal(t, 3, g.EdgeCount())
	assert.Equal(t, "L1", g.Edge(0).Reconcile)
	assert.Equal(t, "line_gen1", g.Edge(1).Reconcile)
	assert.Equal(t, "Undeclared", g.Edge(2).Reconcile)

	dual := g.Edge(0).StyleAttrs
	require.NotNil(t, dual.ColorB)
	assert.Equal(t, "#00FF00", dual.ColorB.Hex)

	assert.Equal(t, 2, res.Report.Count(NoteDuplicateLine))
	assert.Equal(t, 1, res.Report.Count(NoteUnknownLine))
}

func TestBuildBlankIDJoinsDeclaredName(t *testing.T) {
	wb := scenarioA()
	wb.Lines = table(sheet.SheetLines, "line_id,line_name,color_hex",
		"L1,Red,#FF0000",
		",Red,#0000FF",
	)

	res := build(t, wb)
	require.Len(t, res.Graph.Lines(), 1)
	l1, ok := res.Graph.Line("L1")
	require.True(t, ok)
	assert.Equal(t, "#FF0000", l1.Color)
	assert.Equal(t, 1, res.Report.Count(NoteDuplicateLine))
	assert.Zero(t, res.Report.Count(NoteGeneratedLineID))
}

func TestBuildBlankLineReference(t *testing.T) {
	wb := scenarioA()
	wb.LineStops = table(sheet.SheetLineStops, "line_id,stop_order,station_id", ",1,A", ",2,B")

	res := build(t, wb)
	require.Equal(t, 1, res.Graph.EdgeCount())
	assert.Equal(t, "line_gen1", res.Graph.Edge(0).Reconcile)
}

func TestBuildStableStopOrder(t *testing.T) {
	wb := &sheet.Workbook{
		Stations: table(sheet.SheetStations, "station_id,x,y", "A,0,0", "B,1,0", "C,2,0"),
		Lines:    table(sheet.SheetLines, "line_id", "L1"),
		LineStops: table(sheet.SheetLineStops, "line_id,stop_order,station_id",
			"L1,2,C", "L1,1,B", "L1,1,A"),
	}

	res := build(t, wb)
	g := res.Graph
	require.Equal(t, 2, g.EdgeCount())
	assert.Equal(t, "stn_B", g.Station(g.Edge(0).From).ID)
	assert.Equal(t, "stn_A", g.Station(g.Edge(0).To).ID)
	assert.Equal(t, "stn_C", g.Station(g.Edge(1).To).ID)
}

func TestBuildParallelIndex(t *testing.T) {
	wb := &sheet.Workbook{
		Stations: table(sheet.SheetStations, "station_id,x,y", "A,0,0", "B,1,0"),
		Lines: table(sheet.SheetLines, "line_id,line_path",
			"L1,diagonal", "L2,perpendicular", "L3,simple", "L4,diagonal"),
		LineStops: table(sheet.SheetLineStops, "line_id,stop_order,station_id",
			"L1,1,A", "L1,2,B",
			"L2,1,A", "L2,2,B",
			"L3,1,A", "L3,2,B",
			"L4,1,B", "L4,2,A"),
	}

	res := build(t, wb)
	g := res.Graph
	require.Equal(t, 4, g.EdgeCount())
	assert.Equal(t, 0, g.Edge(0).Parallel)
	assert.Equal(t, 1, g.Edge(1).Parallel, "same family as L1")
	assert.Equal(t, 0, g.Edge(2).Parallel, "straight family")
	assert.Equal(t, 0, g.Edge(3).Parallel, "reverse direction")
}

func TestBuildStationAttributes(t *testing.T) {
	wb := scenarioA()
	wb.Stations = table(sheet.SheetStations,
		"station_id,x,y,name_en,name_zh,name_offset_x,name_offset_y,icon_height,icon_width,icon_rotation,station_type,z_index",
		"A,1.5,-2,,甲,left,sideways,20,30,90,shmetro-int,4",
		"B,0,0,Beta,,,,20,30,90,london-tube-basic,",
		"C,0,0,Gamma,,,,,,,no-such-type,",
	)

	res := build(t, wb)
	g := res.Graph

	a := g.Station(stationRef(t, g, "A"))
	assert.Equal(t, network.StationShmetroInt, a.Type)
	assert.Equal(t, [2]string{"甲", "甲"}, a.Names)
	assert.Equal(t, network.OffsetLeft, a.NameOffsetX)
	assert.Equal(t, network.StationTypes[network.StationShmetroInt].DefaultOffsetY, a.NameOffsetY)
	require.NotNil(t, a.Height)
	assert.Equal(t, 20.0, *a.Height)
	require.NotNil(t, a.Width)
	assert.Equal(t, 30.0, *a.Width)
	assert.Equal(t, 4, a.ZIndex)

	b := g.Station(stationRef(t, g, "B"))
	assert.Nil(t, b.Height)
	assert.Nil(t, b.Width)
	require.NotNil(t, b.Rotation)
	assert.Equal(t, 90.0, *b.Rotation)
	assert.Empty(t, b.NameOffsetX)

	c := g.Station(stationRef(t, g, "C"))
	assert.Equal(t, network.DefaultStationType, c.Type)
}

func TestBuildProject(t *testing.T) {
	wb := scenarioA()
	wb.Project = table(sheet.SheetProject, "svg_viewbox_zoom,svg_viewbox_min_x,svg_viewbox_min_y", "250,,-40")

	res := build(t, wb)
	assert.Equal(t, network.ViewMeta{Zoom: 250, MinX: 0, MinY: -40}, res.View)
}

func TestBuildOptionsDefaults(t *testing.T) {
	wb := scenarioA()
	wb.Lines = table(sheet.SheetLines, "line_id,color_hex", "L1,")

	res, err := Build(context.Background(), wb, Options{
		NewID:        seqIDs(),
		DefaultColor: "#123abc",
		DefaultPath:  network.PathSimple,
		DefaultView:  network.ViewMeta{Zoom: 50},
	})
	require.NoError(t, err)

	e := res.Graph.Edge(0)
	assert.Equal(t, "#123ABC", e.StyleAttrs.Hex())
	assert.Equal(t, network.PathSimple, e.Path)
	assert.Equal(t, 50.0, res.View.Zoom)
}

func TestBuildCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Build(ctx, scenarioA(), Options{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNanoID(t *testing.T) {
	gen := NanoID(8)
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id, err := gen(LineIDPrefix)
		require.NoError(t, err)
		require.True(t, strings.HasPrefix(id, LineIDPrefix))
		require.Len(t, id, len(LineIDPrefix)+8)
		require.False(t, seen[id])
		seen[id] = true
	}
}
