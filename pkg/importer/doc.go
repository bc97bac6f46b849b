// Package importer builds a [network.Graph] from a [sheet.Workbook].
//
// [Build] reads the four tables in a fixed order:
//
//  1. Stations: one station per row. Blank or duplicate ids are replaced by
//     generated ones; x and y are required.
//  2. Lines: one line configuration per row. Invalid colors, path types and
//     style types fall back to defaults.
//  3. LineStops: (line, order, station) triples. Unknown lines and stations
//     are synthesized on the spot; stop_order is required.
//  4. Project: the optional viewport row.
//
// Stops of each line are then sorted by order and every consecutive pair of
// distinct stations becomes one directed edge carrying the line's path,
// style and color.
//
// # Resilience
//
// Only structural problems fail an import: a missing required sheet, an
// empty Stations sheet, a missing or non-finite coordinate or stop order, and
// more than one Project row. Everything else is recovered locally and
// recorded as a [Note] in the [Report] returned with the graph.
//
// # Identifiers
//
// Station ids are namespaced internally (see [network.WithPrefix]). Every
// station is reachable by its raw workbook id, its namespaced id and its
// stripped id, so LineStops may use any of the three forms.
//
// Generated ids come from [Options.NewID], which defaults to [NanoID].
package importer
