package io

import (
	"bytes"
	"errors"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/matzehuels/railsheet/pkg/network"
)

func sampleGraph(t *testing.T) *network.Graph {
	t.Helper()
	g := network.New()
	a, err := g.AddStation(network.NewStation("stn_A", network.StationShmetroInt))
	if err != nil {
		t.Fatal(err)
	}
	bs := network.NewStation("stn_B", network.StationLondonTubeBasic)
	bs.X, bs.Y = 10, -5
	bs.SetNames("乙", "Beta")
	b, err := g.AddStation(bs)
	if err != nil {
		t.Fatal(err)
	}

	l := network.NewLine("L1", "Line 1")
	if err := g.SetLine(l); err != nil {
		t.Fatal(err)
	}
	for _, pair := range [][2]network.StationRef{{a, b}, {a, b}, {b, a}} {
		_, err := g.AddEdge(network.Edge{
			From:       pair[0],
			To:         pair[1],
			Visible:    true,
			Path:       network.PathDiagonal,
			PathAttrs:  network.DefaultPathAttrs(network.PathDiagonal),
			Style:      network.StyleDualColor,
			StyleAttrs: network.DefaultStyleAttrs(network.StyleDualColor, network.LineTheme(l)),
			Reconcile:  "L1",
			Parallel:   g.ParallelIndex(pair[0], pair[1], network.PathDiagonal),
		})
		if err != nil {
			t.Fatal(err)
		}
	}
	return g
}

func TestJSONRoundTrip(t *testing.T) {
	g := sampleGraph(t)
	view := network.ViewMeta{Zoom: 120, MinX: -3, MinY: 4.5}

	var buf bytes.Buffer
	if err := WriteJSON(g, view, &buf); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}
	got, gotView, err := ReadJSON(&buf)
	if err != nil {
		t.Fatalf("ReadJSON() error = %v", err)
	}

	if gotView != view {
		t.Errorf("view = %+v, want %+v", gotView, view)
	}
	if !reflect.DeepEqual(got.Stations(), g.Stations()) {
		t.Errorf("stations differ:\n got %+v\nwant %+v", got.Stations(), g.Stations())
	}
	if !reflect.DeepEqual(got.Edges(), g.Edges()) {
		t.Errorf("edges differ:\n got %+v\nwant %+v", got.Edges(), g.Edges())
	}
	if !reflect.DeepEqual(got.Lines(), g.Lines()) {
		t.Errorf("lines = %+v, want %+v", got.Lines(), g.Lines())
	}
}

func TestExportImportJSONFile(t *testing.T) {
	g := sampleGraph(t)
	path := filepath.Join(t.TempDir(), "network.json")

	if err := ExportJSON(g, network.DefaultViewMeta(), path); err != nil {
		t.Fatalf("ExportJSON() error = %v", err)
	}
	got, view, err := ImportJSON(path)
	if err != nil {
		t.Fatalf("ImportJSON() error = %v", err)
	}
	if got.EdgeCount() != 3 || got.StationCount() != 2 {
		t.Errorf("counts = %d stations, %d edges", got.StationCount(), got.EdgeCount())
	}
	if view != network.DefaultViewMeta() {
		t.Errorf("view = %+v", view)
	}
}

func TestReadJSONErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"malformed", `{"stations": [`, nil},
		{"empty id", `{"stations": [{"id": ""}], "edges": []}`, network.ErrInvalidStationID},
		{"duplicate id", `{"stations": [{"id": "a"}, {"id": "a"}], "edges": []}`, network.ErrDuplicateStationID},
		{"prefixed twin", `{"stations": [{"id": "A"}, {"id": "stn_A"}], "edges": [{"from": "A", "to": "stn_A"}]}`, network.ErrDuplicateStationID},
		{"prefix only id", `{"stations": [{"id": "stn_"}], "edges": []}`, network.ErrInvalidStationID},
		{"unknown station", `{"stations": [{"id": "a"}], "edges": [{"from": "a", "to": "b"}]}`, network.ErrUnknownStation},
		{"self loop", `{"stations": [{"id": "a"}], "edges": [{"from": "a", "to": "a"}]}`, network.ErrSelfLoop},
		{"blank line", `{"stations": [], "edges": [], "lines": [{"id": ""}]}`, network.ErrInvalidLineID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ReadJSON(strings.NewReader(tt.input))
			if err == nil {
				t.Fatal("ReadJSON() error = nil")
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Errorf("ReadJSON() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestReadJSONDefaultView(t *testing.T) {
	_, view, err := ReadJSON(strings.NewReader(`{"stations": [], "edges": []}`))
	if err != nil {
		t.Fatal(err)
	}
	if view.Zoom != network.DefaultZoom {
		t.Errorf("Zoom = %v, want %v", view.Zoom, network.DefaultZoom)
	}
}
