package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/railsheet/pkg/network"
)

type document struct {
	View     network.ViewMeta     `json:"view"`
	Lines    []network.LineConfig `json:"lines,omitempty"`
	Stations []station            `json:"stations"`
	Edges    []edge               `json:"edges"`
}

type station struct {
	ID          string              `json:"id"`
	X           float64             `json:"x"`
	Y           float64             `json:"y"`
	Type        network.StationType `json:"type"`
	Names       [2]string           `json:"names"`
	ZIndex      int                 `json:"z_index,omitempty"`
	NameOffsetX network.NameOffsetX `json:"name_offset_x,omitempty"`
	NameOffsetY network.NameOffsetY `json:"name_offset_y,omitempty"`
	Height      *float64            `json:"height,omitempty"`
	Width       *float64            `json:"width,omitempty"`
	Rotation    *float64            `json:"rotation,omitempty"`
}

type edge struct {
	From       string                `json:"from"`
	To         string                `json:"to"`
	Visible    bool                  `json:"visible"`
	ZIndex     int                   `json:"z_index,omitempty"`
	Path       network.LinePathType  `json:"path"`
	PathAttrs  network.PathAttrs     `json:"path_attrs"`
	Style      network.LineStyleType `json:"style"`
	StyleAttrs network.StyleAttrs    `json:"style_attrs"`
	Reconcile  string                `json:"reconcile,omitempty"`
	Parallel   int                   `json:"parallel,omitempty"`
}

// WriteJSON encodes a graph and its viewport as JSON and writes it to w.
// Stations and edges keep graph order, so [ReadJSON] restores identical
// handles.
func WriteJSON(g *network.Graph, view network.ViewMeta, w io.Writer) error {
	stations := g.Stations()
	out := document{
		View:     view,
		Lines:    g.Lines(),
		Stations: make([]station, len(stations)),
		Edges:    make([]edge, g.EdgeCount()),
	}

	for i, s := range stations {
		out.Stations[i] = station{
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
	}
	for i, e := range g.Edges() {
		out.Edges[i] = edge{
			From:       stations[e.From].ID,
			To:         stations[e.To].ID,
			Visible:    e.Visible,
			ZIndex:     e.ZIndex,
			Path:       e.Path,
			PathAttrs:  e.PathAttrs,
			Style:      e.Style,
			StyleAttrs: e.StyleAttrs,
			Reconcile:  e.Reconcile,
			Parallel:   e.Parallel,
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes a graph document to a JSON file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportJSON(g *network.Graph, view network.ViewMeta, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteJSON(g, view, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
