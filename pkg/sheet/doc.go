// Package sheet reads and writes the tabular form of a rail network.
//
// A workbook holds four named tables, each with a header row:
//
//	Stations   station_id, x, y, name_en, name_zh, name_offset_x, name_offset_y,
//	           icon_height, icon_width, icon_rotation, station_type, z_index
//	Lines      line_id, line_name, color_hex, line_path, line_style, z_index
//	LineStops  line_id, stop_order, station_id
//	Project    svg_viewbox_zoom, svg_viewbox_min_x, svg_viewbox_min_y
//
// Sheet names and column headers are matched loosely: [Normalize] lowercases
// a name and drops every non-alphanumeric character, so "Station ID",
// "station_id" and "STATIONID" are the same column. Unknown sheets and
// columns are ignored.
//
// # Containers
//
// Two containers are supported:
//
//   - xlsx workbooks ([ReadXLSX], [WriteXLSX]), via excelize
//   - CSV files, one per table, either in a directory ([ReadDir], [WriteDir])
//     or a zip archive ([ReadZip], [WriteZip]); file names are the lowercase
//     sheet names with a ".csv" extension
//
// Readers do not enforce which tables are required; that is the import
// builder's job. A missing table is left nil in the [Workbook].
package sheet
