// Package pkg provides the core libraries of railsheet, which keeps a transit
// map graph and a four-sheet workbook describing it in sync.
//
// # Overview
//
// A workbook lists stations, lines and the ordered stops of each line. The
// graph stores stations as vertices and every consecutive pair of stops as
// an edge tagged with its line. railsheet converts in both directions:
//
//  1. [sheet] - Workbook tables and their xlsx / CSV containers
//  2. [importer] - Workbook → graph, with a report of recovered problems
//  3. [exporter] - Graph → workbook, rebuilding line sequences from edges
//  4. [network] - The arena graph, catalogs and view metadata
//  5. [pipeline] - Orchestration (read → import → export → write)
//
// # Architecture
//
// The typical data flow through railsheet:
//
//	.xlsx / .zip / CSV directory
//	         ↓
//	    [sheet] package (tables with normalized headers)
//	         ↓
//	    [importer] package (stations, lines, stops → edges)
//	         ↓
//	    [network] graph ──→ [io] graph JSON document
//	         ↓
//	    [exporter] package (group, split, walk)
//	         ↓
//	.xlsx / .zip / CSV directory
//
// # Quick Start
//
//	import (
//	    "context"
//	    "github.com/matzehuels/railsheet/pkg/importer"
//	    "github.com/matzehuels/railsheet/pkg/exporter"
//	    "github.com/matzehuels/railsheet/pkg/sheet"
//	)
//
//	// 1. Read the workbook
//	wb, _ := sheet.ReadXLSX(f)
//
//	// 2. Build the graph
//	res, _ := importer.Build(context.Background(), wb, importer.Options{})
//
//	// 3. Rebuild the rows
//	rows := exporter.Export(res.Graph, res.View)
//
//	// 4. Write them back
//	_ = sheet.WriteXLSX(out, rows.Workbook())
//
// # Supporting Packages
//
// [config] - TOML configuration with validated import defaults.
//
// [errors] - Code-carrying errors and row-referenced workbook errors.
//
// [observability] - Hooks for pipeline and HTTP events.
//
// [render] - Node-link diagrams of a graph via Graphviz.
//
// [buildinfo] - Version information set at link time.
package pkg
