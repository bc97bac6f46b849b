// Package io provides JSON import and export for rail network graphs.
//
// # Overview
//
// The graph document is the hand-off format between the workbook engine and
// the interactive editor. Unlike the workbook, it keeps everything the graph
// holds: internal station ids, edge direction, path and style attributes,
// parallel indices and reconciliation keys. It is designed for:
//
//   - Passing an imported network to the editor and back
//   - Caching an import so a workbook need not be parsed again
//   - Round-trip preservation: decode, encode, and decode identically
//
// # JSON Format
//
//	{
//	  "view": {"zoom": 100, "min_x": 0, "min_y": 0},
//	  "lines": [
//	    {"id": "L1", "name": "Line 1", "color": "#E3002B",
//	     "path": "diagonal", "style": "single-color", "z_index": 0}
//	  ],
//	  "stations": [
//	    {"id": "stn_A", "x": 0, "y": 0, "type": "shmetro-basic",
//	     "names": ["A", "A"], "name_offset_x": "right", "name_offset_y": "top"},
//	    {"id": "stn_B", "x": 10, "y": 0, "type": "shmetro-basic", "names": ["B", "B"]}
//	  ],
//	  "edges": [
//	    {"from": "stn_A", "to": "stn_B", "visible": true,
//	     "path": "diagonal", "path_attrs": {"startFrom": "from", "roundCornerFactor": 10},
//	     "style": "single-color",
//	     "style_attrs": {"color": {"city": "other", "line": "L1", "hex": "#E3002B", "fg": "#fff"}},
//	     "reconcile": "L1"}
//	  ]
//	}
//
// Edges reference stations by internal id. Station and edge order is
// preserved, so a decoded graph hands out the same [network.StationRef] and
// [network.EdgeRef] values as the graph that was encoded.
//
// # Import
//
// Use [ImportJSON] to read a document from a file path, or [ReadJSON] to
// read from any io.Reader:
//
//	g, view, err := io.ImportJSON("network.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Both functions enforce graph integrity (unique station ids, known edge
// endpoints, no self-loops). Enum values are taken as they are; the editor
// owns them.
//
// # Export
//
// Use [ExportJSON] to write a document to a file, or [WriteJSON] to write to
// any io.Writer.
//
// # Concurrency
//
// All functions in this package are safe to call concurrently with other
// readers of the same graph, but not with concurrent modifications to it.
package io
