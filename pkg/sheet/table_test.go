package sheet

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"station_id", "stationid"},
		{"Station ID", "stationid"},
		{"STATIONID", "stationid"},
		{"  line-stops ", "linestops"},
		{"svg_viewbox_min_x", "svgviewboxminx"},
		{"__", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := Normalize(tt.in); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestTableRows(t *testing.T) {
	tbl := fromRecords("Stations", [][]string{
		{"Station ID", "X", "x", "Name_EN"},
		{" a ", "1", "99", "Alpha"},
		{"", "", ""},
		{"b", "2"},
	})

	rows := tbl.Rows()
	if len(rows) != 2 {
		t.Fatalf("len(rows) = %d, want 2", len(rows))
	}
	if rows[0].Num != 2 || rows[1].Num != 4 {
		t.Errorf("row numbers = %d, %d, want 2, 4", rows[0].Num, rows[1].Num)
	}
	if got := rows[0].Get(ColStationID); got != "a" {
		t.Errorf("station_id = %q, want trimmed %q", got, "a")
	}
	if got := rows[0].Get("x"); got != "1" {
		t.Errorf("x = %q, want first matching column", got)
	}
	if got := rows[1].Get(ColNameEN); got != "" {
		t.Errorf("short record name_en = %q, want blank", got)
	}
	if !rows[1].Has(ColNameEN) {
		t.Error("Has(name_en) = false for declared column")
	}
	if rows[0].Has(ColStationType) {
		t.Error("Has(station_type) = true for absent column")
	}
}

func TestNilTableRows(t *testing.T) {
	var tbl *Table
	if rows := tbl.Rows(); rows != nil {
		t.Errorf("Rows() on nil table = %v", rows)
	}
}

func TestWorkbookSet(t *testing.T) {
	wb := &Workbook{}
	wb.set("line stops", [][]string{{"line_id"}, {"l1"}})
	wb.set("LINESTOPS", [][]string{{"line_id"}, {"l2"}})
	wb.set("Notes", [][]string{{"anything"}})

	if wb.LineStops == nil {
		t.Fatal("LineStops not set")
	}
	if wb.LineStops.Name != SheetLineStops {
		t.Errorf("Name = %q, want canonical %q", wb.LineStops.Name, SheetLineStops)
	}
	if got := wb.LineStops.Records[0][0]; got != "l1" {
		t.Errorf("first table should win, got %q", got)
	}
	if n := len(wb.Tables()); n != 1 {
		t.Errorf("Tables() = %d, want 1", n)
	}
}

func sampleWorkbook() *Workbook {
	st := NewTable(SheetStations, StationColumns)
	st.Append("a", "10", "20.5", "Alpha", "甲", "right", "top", "", "", "", "shmetro-basic", "0")
	st.Append("b", "30", "40", "Beta", "", "", "", "", "", "", "", "")
	ln := NewTable(SheetLines, LineColumns)
	ln.Append("l1", "Line 1", "#E3002B", "diagonal", "single-color", "0")
	ls := NewTable(SheetLineStops, LineStopColumns)
	ls.Append("l1", "1", "a")
	ls.Append("l1", "2", "b")
	pj := NewTable(SheetProject, ProjectColumns)
	pj.Append("100", "0", "0")
	return &Workbook{Stations: st, Lines: ln, LineStops: ls, Project: pj}
}

func assertSameRows(t *testing.T, name string, got, want *Table) {
	t.Helper()
	if got == nil {
		t.Fatalf("%s: table missing", name)
	}
	g, w := got.Rows(), want.Rows()
	if len(g) != len(w) {
		t.Fatalf("%s: %d rows, want %d", name, len(g), len(w))
	}
	for i := range w {
		for _, col := range want.Header {
			if g[i].Get(col) != w[i].Get(col) {
				t.Errorf("%s row %d %s = %q, want %q", name, w[i].Num, col, g[i].Get(col), w[i].Get(col))
			}
		}
	}
}

func TestXLSXRoundTrip(t *testing.T) {
	wb := sampleWorkbook()

	var buf bytes.Buffer
	if err := WriteXLSX(&buf, wb); err != nil {
		t.Fatalf("WriteXLSX() error = %v", err)
	}
	got, err := ReadXLSX(&buf)
	if err != nil {
		t.Fatalf("ReadXLSX() error = %v", err)
	}

	assertSameRows(t, SheetStations, got.Stations, wb.Stations)
	assertSameRows(t, SheetLines, got.Lines, wb.Lines)
	assertSameRows(t, SheetLineStops, got.LineStops, wb.LineStops)
	assertSameRows(t, SheetProject, got.Project, wb.Project)
}

func TestXLSXRawNumbers(t *testing.T) {
	st := NewTable(SheetStations, StationColumns)
	st.Append("a", "0.30000000000000004", "123456789012345.5", "", "", "", "", "2.718281828459045", "", "", "", "7")
	wb := &Workbook{Stations: st}

	var buf bytes.Buffer
	if err := WriteXLSX(&buf, wb); err != nil {
		t.Fatalf("WriteXLSX() error = %v", err)
	}
	got, err := ReadXLSX(&buf)
	if err != nil {
		t.Fatalf("ReadXLSX() error = %v", err)
	}
	assertSameRows(t, SheetStations, got.Stations, wb.Stations)
}

func TestWriteXLSXEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteXLSX(&buf, &Workbook{}); err == nil {
		t.Error("WriteXLSX() with no tables should fail")
	}
}

func TestReadXLSXInvalid(t *testing.T) {
	if _, err := ReadXLSX(bytes.NewReader([]byte("not a workbook"))); err == nil {
		t.Error("ReadXLSX() should reject garbage input")
	}
}

func TestDirRoundTrip(t *testing.T) {
	dir := t.TempDir()
	wb := sampleWorkbook()

	if err := WriteDir(dir, wb); err != nil {
		t.Fatalf("WriteDir() error = %v", err)
	}
	for _, name := range []string{"stations.csv", "lines.csv", "linestops.csv", "project.csv"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("missing %s: %v", name, err)
		}
	}

	got, err := ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir() error = %v", err)
	}
	assertSameRows(t, SheetStations, got.Stations, wb.Stations)
	assertSameRows(t, SheetLineStops, got.LineStops, wb.LineStops)
}

func TestReadDirIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	content := "\ufeffStation ID,X,Y\nA,1,2\n"
	if err := os.WriteFile(filepath.Join(dir, "Stations.CSV"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "readme.txt"), []byte("hi"), 0644); err != nil {
		t.Fatal(err)
	}

	wb, err := ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir() error = %v", err)
	}
	if wb.Stations == nil || wb.Lines != nil {
		t.Fatalf("tables = %+v", wb)
	}
	rows := wb.Stations.Rows()
	if len(rows) != 1 || rows[0].Get(ColStationID) != "A" {
		t.Errorf("rows = %+v, want BOM stripped from header", rows)
	}
}

func TestZipRoundTrip(t *testing.T) {
	wb := sampleWorkbook()

	var buf bytes.Buffer
	if err := WriteZip(&buf, wb); err != nil {
		t.Fatalf("WriteZip() error = %v", err)
	}
	got, err := ReadZip(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("ReadZip() error = %v", err)
	}
	assertSameRows(t, SheetLines, got.Lines, wb.Lines)
	assertSameRows(t, SheetProject, got.Project, wb.Project)
}
