package importer

import (
	"fmt"

	"github.com/matzehuels/railsheet/pkg/errors"
	"github.com/matzehuels/railsheet/pkg/network"
	"github.com/matzehuels/railsheet/pkg/sheet"
)

// view reads the viewport from the optional Project table.
func (b *builder) view(t *sheet.Table) (network.ViewMeta, error) {
	v := b.opts.DefaultView
	rows := t.Rows()
	switch {
	case len(rows) == 0:
		return v, nil
	case len(rows) > 1:
		return v, errors.Wrap(errors.ErrCodeInvalidWorkbook,
			&errors.RowError{Sheet: sheet.SheetProject, Row: rows[1].Num, Err: fmt.Errorf("only one row is allowed")},
			"sheet %s has %d rows", sheet.SheetProject, len(rows))
	}

	row := rows[0]
	if f, ok := parseFloat(row.Get(sheet.ColZoom)); ok {
		v.Zoom = f
	}
	if f, ok := parseFloat(row.Get(sheet.ColMinX)); ok {
		v.MinX = f
	}
	if f, ok := parseFloat(row.Get(sheet.ColMinY)); ok {
		v.MinY = f
	}
	return v, nil
}
