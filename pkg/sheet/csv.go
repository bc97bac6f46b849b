package sheet

import (
	"archive/zip"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ReadDir reads every "*.csv" file in dir whose base name matches a table.
func ReadDir(dir string) (*Workbook, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	wb := &Workbook{}
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".csv") {
			continue
		}
		path := filepath.Join(dir, e.Name())
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		records, err := readCSV(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", e.Name(), err)
		}
		wb.set(tableName(e.Name()), records)
	}
	return wb, nil
}

// ReadZip reads a zip archive of CSV files. Directory prefixes inside the
// archive are ignored.
func ReadZip(r io.ReaderAt, size int64) (*Workbook, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("open zip: %w", err)
	}
	wb := &Workbook{}
	for _, zf := range zr.File {
		if zf.FileInfo().IsDir() || !strings.EqualFold(filepath.Ext(zf.Name), ".csv") {
			continue
		}
		rc, err := zf.Open()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", zf.Name, err)
		}
		records, err := readCSV(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", zf.Name, err)
		}
		wb.set(tableName(zf.Name), records)
	}
	return wb, nil
}

// WriteDir writes each non-nil table of wb to dir as "<lowercase name>.csv".
// The directory is created if needed.
func WriteDir(dir string, wb *Workbook) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	for _, t := range wb.Tables() {
		path := filepath.Join(dir, fileName(t))
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		if err := writeCSV(f, t); err != nil {
			f.Close()
			return fmt.Errorf("%s: %w", path, err)
		}
		if err := f.Close(); err != nil {
			return err
		}
	}
	return nil
}

// WriteZip writes wb as a zip archive of CSV files.
func WriteZip(w io.Writer, wb *Workbook) error {
	zw := zip.NewWriter(w)
	for _, t := range wb.Tables() {
		fw, err := zw.Create(fileName(t))
		if err != nil {
			return err
		}
		if err := writeCSV(fw, t); err != nil {
			return fmt.Errorf("%s: %w", fileName(t), err)
		}
	}
	return zw.Close()
}

func readCSV(r io.Reader) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) > 0 && len(records[0]) > 0 {
		records[0][0] = strings.TrimPrefix(records[0][0], "\ufeff")
	}
	return records, nil
}

func writeCSV(w io.Writer, t *Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Header); err != nil {
		return err
	}
	if err := cw.WriteAll(t.Records); err != nil {
		return err
	}
	return cw.Error()
}

func tableName(file string) string {
	base := filepath.Base(file)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func fileName(t *Table) string { return strings.ToLower(t.Name) + ".csv" }
