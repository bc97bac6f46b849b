// Package exporter turns a [network.Graph] back into workbook rows.
//
// Stations map one-to-one onto rows. Lines are harder: the graph only holds
// edges, so [Export] rebuilds line membership and stop order in four steps.
//
//  1. [GroupEdges] partitions edges by reconciliation key. Edges without a
//     key are grouped by (style, path, color, z-order) and get a generated
//     id of the form "line_auto_N".
//  2. [Components] splits each group into undirected connected components.
//  3. [Walks] consumes every edge of a component with one or more walks.
//     Each walk starts at the smallest station of degree one, or at the
//     smaller endpoint of the first remaining edge when there is none, and
//     avoids stepping straight back to the station it came from.
//  4. Every walk becomes one Lines row and one LineStops row per station.
//     A group producing several walks numbers the extra lines "<id>_2",
//     "<id>_3" and so on; ids stay unique across the whole export.
//
// Export never fails and never modifies the graph. Components that yield
// no walk of at least two stations are left out.
package exporter
