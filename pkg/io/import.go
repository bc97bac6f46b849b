package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/railsheet/pkg/network"
)

// ReadJSON decodes a graph document from r.
//
// ReadJSON returns an error if:
//   - The JSON is malformed
//   - A station id is empty without its "stn_" prefix, or duplicates
//     another id with or without that prefix ("A" and "stn_A")
//   - An edge references an unknown station id or is a self-loop
//   - A line has an empty id
//
// Errors are wrapped with context describing which station, edge or line
// caused the problem; use errors.Is with the network sentinel errors to
// check for specific causes.
//
// A document without a view, or with a zero zoom, gets the default
// viewport. ReadJSON does not close r.
func ReadJSON(r io.Reader) (*network.Graph, network.ViewMeta, error) {
	var data document
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, network.ViewMeta{}, fmt.Errorf("decode: %w", err)
	}

	view := data.View
	if view.Zoom == 0 {
		view.Zoom = network.DefaultZoom
	}

	g := network.New()
	for _, s := range data.Stations {
		st := network.Station{
			ID:          s.ID,
			X:           s.X,
			Y:           s.Y,
			Type:        s.Type,
			Names:       s.Names,
			ZIndex:      s.ZIndex,
			NameOffsetX: s.NameOffsetX,
			NameOffsetY: s.NameOffsetY,
			Height:      s.Height,
			Width:       s.Width,
			Rotation:    s.Rotation,
		}
		if _, err := g.AddStation(st); err != nil {
			return nil, view, fmt.Errorf("station %q: %w", s.ID, err)
		}
	}
	for i, e := range data.Edges {
		from, ok := g.StationByID(e.From)
		if !ok {
			return nil, view, fmt.Errorf("edge %d: %w: %s", i, network.ErrUnknownStation, e.From)
		}
		to, ok := g.StationByID(e.To)
		if !ok {
			return nil, view, fmt.Errorf("edge %d: %w: %s", i, network.ErrUnknownStation, e.To)
		}
		_, err := g.AddEdge(network.Edge{
			From:       from,
			To:         to,
			Visible:    e.Visible,
			ZIndex:     e.ZIndex,
			Path:       e.Path,
			PathAttrs:  e.PathAttrs,
			Style:      e.Style,
			StyleAttrs: e.StyleAttrs,
			Reconcile:  e.Reconcile,
			Parallel:   e.Parallel,
		})
		if err != nil {
			return nil, view, fmt.Errorf("edge %s->%s: %w", e.From, e.To, err)
		}
	}
	for _, l := range data.Lines {
		if err := g.SetLine(l); err != nil {
			return nil, view, fmt.Errorf("line %q: %w", l.Name, err)
		}
	}

	return g, view, nil
}

// ImportJSON reads a graph document from the JSON file at path.
//
// ImportJSON returns the same validation errors as [ReadJSON]; the error
// wraps the underlying cause with the file path for context.
func ImportJSON(path string) (*network.Graph, network.ViewMeta, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, network.ViewMeta{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}
