package sheet

import (
	"strings"
	"unicode"
)

// Sheet names.
const (
	SheetStations  = "Stations"
	SheetLines     = "Lines"
	SheetLineStops = "LineStops"
	SheetProject   = "Project"
)

// Column names as written on export.
const (
	ColStationID    = "station_id"
	ColX            = "x"
	ColY            = "y"
	ColNameEN       = "name_en"
	ColNameZH       = "name_zh"
	ColNameOffsetX  = "name_offset_x"
	ColNameOffsetY  = "name_offset_y"
	ColIconHeight   = "icon_height"
	ColIconWidth    = "icon_width"
	ColIconRotation = "icon_rotation"
	ColStationType  = "station_type"
	ColZIndex       = "z_index"

	ColLineID    = "line_id"
	ColLineName  = "line_name"
	ColColorHex  = "color_hex"
	ColLinePath  = "line_path"
	ColLineStyle = "line_style"

	ColStopOrder = "stop_order"

	ColZoom = "svg_viewbox_zoom"
	ColMinX = "svg_viewbox_min_x"
	ColMinY = "svg_viewbox_min_y"
)

// Canonical headers per sheet, in export order.
var (
	StationColumns = []string{
		ColStationID, ColX, ColY, ColNameEN, ColNameZH, ColNameOffsetX, ColNameOffsetY,
		ColIconHeight, ColIconWidth, ColIconRotation, ColStationType, ColZIndex,
	}
	LineColumns     = []string{ColLineID, ColLineName, ColColorHex, ColLinePath, ColLineStyle, ColZIndex}
	LineStopColumns = []string{ColLineID, ColStopOrder, ColStationID}
	ProjectColumns  = []string{ColZoom, ColMinX, ColMinY}
)

// numericColumns are written as numbers by the xlsx writer.
var numericColumns = map[string]bool{
	Normalize(ColX): true, Normalize(ColY): true,
	Normalize(ColIconHeight): true, Normalize(ColIconWidth): true, Normalize(ColIconRotation): true,
	Normalize(ColZIndex): true, Normalize(ColStopOrder): true,
	Normalize(ColZoom): true, Normalize(ColMinX): true, Normalize(ColMinY): true,
}

// Normalize maps a sheet or column name to its matching key: lower case with
// every non-alphanumeric rune removed.
func Normalize(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}

// Row is one data row of a table, addressed by normalized column name.
type Row struct {
	Num   int // 1-based sheet row number; the header is row 1
	cells map[string]string
}

// Get returns the trimmed cell of the given column, or "" if the column is
// absent. Column names are normalized before lookup.
func (r Row) Get(column string) string {
	return strings.TrimSpace(r.cells[Normalize(column)])
}

// Has reports whether the row's table has the column.
func (r Row) Has(column string) bool {
	_, ok := r.cells[Normalize(column)]
	return ok
}

// Table is a header row followed by raw records.
type Table struct {
	Name    string
	Header  []string
	Records [][]string
}

// NewTable creates an empty table with the given header.
func NewTable(name string, header []string) *Table {
	return &Table{Name: name, Header: header}
}

// fromRecords builds a table from raw sheet rows, the first being the header.
func fromRecords(name string, records [][]string) *Table {
	t := &Table{Name: name}
	if len(records) == 0 {
		return t
	}
	t.Header = records[0]
	t.Records = records[1:]
	return t
}

// Append adds a record. Missing trailing cells are treated as blank.
func (t *Table) Append(values ...string) {
	t.Records = append(t.Records, values)
}

// Rows returns the data rows keyed by normalized header. Records whose
// cells are all blank are skipped; row numbers still count them. When two
// headers normalize to the same key the first one wins.
func (t *Table) Rows() []Row {
	if t == nil {
		return nil
	}
	keys := make([]string, len(t.Header))
	seen := make(map[string]bool, len(t.Header))
	for i, h := range t.Header {
		k := Normalize(h)
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		keys[i] = k
	}

	rows := make([]Row, 0, len(t.Records))
	for i, rec := range t.Records {
		if blank(rec) {
			continue
		}
		cells := make(map[string]string, len(keys))
		for j, k := range keys {
			if k == "" {
				continue
			}
			if j < len(rec) {
				cells[k] = rec[j]
			} else {
				cells[k] = ""
			}
		}
		rows = append(rows, Row{Num: i + 2, cells: cells})
	}
	return rows
}

// Len returns the number of non-blank data rows.
func (t *Table) Len() int { return len(t.Rows()) }

func blank(rec []string) bool {
	for _, c := range rec {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// Workbook is the set of tables describing one network.
// Tables not present in the source are nil.
type Workbook struct {
	Stations  *Table
	Lines     *Table
	LineStops *Table
	Project   *Table
}

// Tables returns the non-nil tables in canonical order.
func (wb *Workbook) Tables() []*Table {
	var out []*Table
	for _, t := range []*Table{wb.Stations, wb.Lines, wb.LineStops, wb.Project} {
		if t != nil {
			out = append(out, t)
		}
	}
	return out
}

// set stores t under the slot its (loosely matched) name selects.
// Unknown names are ignored; the first table for a slot wins.
func (wb *Workbook) set(name string, records [][]string) {
	var slot **Table
	var canonical string
	switch Normalize(name) {
	case Normalize(SheetStations):
		slot, canonical = &wb.Stations, SheetStations
	case Normalize(SheetLines):
		slot, canonical = &wb.Lines, SheetLines
	case Normalize(SheetLineStops):
		slot, canonical = &wb.LineStops, SheetLineStops
	case Normalize(SheetProject):
		slot, canonical = &wb.Project, SheetProject
	default:
		return
	}
	if *slot == nil {
		*slot = fromRecords(canonical, records)
	}
}
