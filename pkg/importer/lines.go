package importer

import (
	"github.com/matzehuels/railsheet/pkg/network"
	"github.com/matzehuels/railsheet/pkg/sheet"
)

func (b *builder) lineRows(rows []sheet.Row) error {
	for _, row := range rows {
		if err := b.line(row); err != nil {
			return err
		}
	}
	return nil
}

func (b *builder) line(row sheet.Row) error {
	id := row.Get(sheet.ColLineID)
	name := row.Get(sheet.ColLineName)

	if id == "" {
		if prev, ok := b.lineByName[name]; ok && name != "" {
			// Further rows of an already generated line add nothing.
			b.note(NoteDuplicateLine, sheet.SheetLines, row.Num, "line %q already declared as %s", name, prev)
			return nil
		}
		var err error
		if id, err = b.freshLineID(); err != nil {
			return err
		}
		b.note(NoteGeneratedLineID, sheet.SheetLines, row.Num, "blank line id replaced by %s", id)
	} else if _, exists := b.lines[id]; exists {
		b.note(NoteDuplicateLine, sheet.SheetLines, row.Num, "line %q declared again, keeping the first row", id)
		return nil
	}
	if name == "" {
		name = id
	}

	l := b.defaultLine(id, name)
	if v := row.Get(sheet.ColColorHex); v != "" {
		if c, ok := network.ParseColor(v); ok {
			l.Color = c
		} else {
			b.note(NoteInvalidValue, sheet.SheetLines, row.Num, "invalid color %q on line %s", v, id)
		}
	}
	if v := row.Get(sheet.ColLinePath); v != "" {
		if p, ok := network.ParsePathType(v); ok {
			l.Path = p
		} else {
			b.note(NoteInvalidValue, sheet.SheetLines, row.Num, "unknown line path %q on line %s", v, id)
		}
	}
	if v := row.Get(sheet.ColLineStyle); v != "" {
		if s, ok := network.ParseStyleType(v); ok {
			l.Style = s
		} else {
			b.note(NoteInvalidValue, sheet.SheetLines, row.Num, "unknown line style %q on line %s", v, id)
		}
	}
	if z, ok := optionalInt(row, sheet.ColZIndex); ok {
		l.ZIndex = z
	}

	b.addLine(l)
	if _, ok := b.lineByName[name]; !ok {
		b.lineByName[name] = id
	}
	return nil
}

// resolveLine finds the line a LineStops row refers to, by id first and by
// name second. Unknown references get a default line under the reference
// itself; blank references share one generated line.
func (b *builder) resolveLine(ref string, rowNum int) (string, error) {
	if ref == "" {
		if b.anonLine == "" {
			id, err := b.freshLineID()
			if err != nil {
				return "", err
			}
			b.anonLine = id
			b.addLine(b.defaultLine(id, id))
			b.note(NoteUnknownLine, sheet.SheetLineStops, rowNum, "stops without a line grouped as %s", id)
		}
		return b.anonLine, nil
	}
	if _, ok := b.lines[ref]; ok {
		return ref, nil
	}
	if id, ok := b.lineByName[ref]; ok {
		return id, nil
	}
	b.addLine(b.defaultLine(ref, ref))
	b.note(NoteUnknownLine, sheet.SheetLineStops, rowNum, "undeclared line %q created with defaults", ref)
	return ref, nil
}

func (b *builder) defaultLine(id, name string) network.LineConfig {
	l := network.NewLine(id, name)
	l.Color = b.opts.DefaultColor
	l.Path = b.opts.DefaultPath
	l.Style = b.opts.DefaultStyle
	return l
}

func (b *builder) addLine(l network.LineConfig) {
	b.lines[l.ID] = &l
	b.lineOrder = append(b.lineOrder, l.ID)
	// SetLine only fails on blank ids, which never reach here.
	_ = b.g.SetLine(l)
}

func (b *builder) freshLineID() (string, error) {
	for {
		id, err := b.newID(LineIDPrefix)
		if err != nil {
			return "", err
		}
		if _, taken := b.lines[id]; !taken {
			return id, nil
		}
	}
}
