// Package network defines the in-memory rail network edited by the map tool.
//
// # Overview
//
// A network is a directed multigraph: stations are vertices and every drawn
// line segment is an [Edge] between two distinct stations. Several edges may
// join the same pair of stations (one per line running through them); the
// [Edge.Parallel] index keeps them apart when rendered.
//
// The graph is stored as an arena. Stations and edges live in slices and are
// addressed by small integer handles ([StationRef], [EdgeRef]); string ids are
// only used at the serialization boundary (workbooks and JSON documents).
// Handles are stable for the lifetime of a [Graph] because the arena is
// append-only.
//
// # Catalogs
//
// Station types, line path types and line style types are closed catalogs:
//
//   - [StationTypes] lists every station type with the optional attributes
//     it supports (name offsets, icon height, width and rotation)
//   - [PathTypes] lists path types and the family used for parallel indexing
//   - [StyleTypes] lists style types and whether they embed a color [Theme]
//
// Parsing helpers ([ParseStationType], [ParsePathType], [ParseStyleType],
// [ParseColor], ...) report ok=false for unknown values; callers decide the
// fallback.
//
// # Identifiers
//
// Station ids carry the [StationPrefix] namespace internally. [WithPrefix]
// and [StripPrefix] convert between the internal and the external form, so
// "A" and "stn_A" name the same station.
//
// # Concurrency
//
// A [Graph] is not safe for concurrent mutation. Readers may share a graph
// as long as nobody writes to it.
package network
