package importer

import (
	"fmt"
	"math"
	"strconv"

	"github.com/matzehuels/railsheet/pkg/errors"
	"github.com/matzehuels/railsheet/pkg/sheet"
)

// parseFloat parses a finite number. Blank, NaN and infinite values fail.
func parseFloat(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// requireFloat reads a mandatory numeric cell.
func requireFloat(sheetName string, row sheet.Row, column string) (float64, error) {
	raw := row.Get(column)
	if raw == "" {
		return 0, errors.InvalidField(sheetName, row.Num, column, fmt.Errorf("value is required"))
	}
	f, ok := parseFloat(raw)
	if !ok {
		return 0, errors.InvalidField(sheetName, row.Num, column, fmt.Errorf("%q is not a finite number", raw))
	}
	return f, nil
}

// optionalInt reads an integer cell, rounding fractional values.
// ok is false for blank or malformed cells.
func optionalInt(row sheet.Row, column string) (int, bool) {
	f, ok := parseFloat(row.Get(column))
	if !ok {
		return 0, false
	}
	return int(math.Round(f)), true
}
