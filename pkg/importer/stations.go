package importer

import (
	"github.com/matzehuels/railsheet/pkg/network"
	"github.com/matzehuels/railsheet/pkg/sheet"
)

func (b *builder) stations(rows []sheet.Row) error {
	for _, row := range rows {
		if err := b.station(row); err != nil {
			return err
		}
	}
	return nil
}

func (b *builder) station(row sheet.Row) error {
	raw := row.Get(sheet.ColStationID)

	x, err := requireFloat(sheet.SheetStations, row, sheet.ColX)
	if err != nil {
		return err
	}
	y, err := requireFloat(sheet.SheetStations, row, sheet.ColY)
	if err != nil {
		return err
	}

	id := network.WithPrefix(raw)
	if _, taken := b.g.StationByID(id); blankID(raw) || taken {
		if id, err = b.freshStationID(); err != nil {
			return err
		}
		if blankID(raw) {
			b.note(NoteGeneratedStationID, sheet.SheetStations, row.Num, "blank station id replaced by %s", id)
		} else {
			b.note(NoteGeneratedStationID, sheet.SheetStations, row.Num, "duplicate station id %q replaced by %s", raw, id)
		}
	}

	typ := b.opts.DefaultStationType
	if v := row.Get(sheet.ColStationType); v != "" {
		if t, ok := network.ParseStationType(v); ok {
			typ = t
		} else {
			b.note(NoteInvalidValue, sheet.SheetStations, row.Num, "unknown station type %q", v)
		}
	}

	s := network.NewStation(id, typ)
	s.X, s.Y = x, y
	s.SetNames(row.Get(sheet.ColNameZH), row.Get(sheet.ColNameEN))
	if z, ok := optionalInt(row, sheet.ColZIndex); ok {
		s.ZIndex = z
	}

	spec := typ.Spec()
	if spec.NameOffset {
		if v, ok := network.ParseNameOffsetX(row.Get(sheet.ColNameOffsetX)); ok {
			s.NameOffsetX = v
		}
		if v, ok := network.ParseNameOffsetY(row.Get(sheet.ColNameOffsetY)); ok {
			s.NameOffsetY = v
		}
	}
	if f, ok := parseFloat(row.Get(sheet.ColIconHeight)); ok && spec.Height {
		s.Height = &f
	}
	if f, ok := parseFloat(row.Get(sheet.ColIconWidth)); ok && spec.Width {
		s.Width = &f
	}
	if f, ok := parseFloat(row.Get(sheet.ColIconRotation)); ok && spec.Rotation {
		s.Rotation = &f
	}

	ref, err := b.g.AddStation(s)
	if err != nil {
		return err
	}
	b.alias(ref, raw, id)
	return nil
}

// placeholder creates a station for a LineStops reference that matches no
// known alias. It sits at the origin and is named after the reference.
func (b *builder) placeholder(ref string, rowNum int) (network.StationRef, error) {
	id := network.WithPrefix(ref)
	if _, taken := b.g.StationByID(id); blankID(ref) || taken {
		var err error
		if id, err = b.freshStationID(); err != nil {
			return network.NoStation, err
		}
	}

	s := network.NewStation(id, b.opts.DefaultStationType)
	s.SetNames(ref, ref)
	sr, err := b.g.AddStation(s)
	if err != nil {
		return network.NoStation, err
	}
	b.alias(sr, ref, id)
	b.note(NoteUnknownStation, sheet.SheetLineStops, rowNum, "unknown station %q created as %s", ref, id)
	return sr, nil
}

// blankID reports whether a station reference has nothing left once the
// namespace prefix is removed.
func blankID(ref string) bool { return network.StripPrefix(ref) == "" }

// alias registers every form of a station reference. Earlier registrations
// win, so a later duplicate never shadows the first station.
func (b *builder) alias(ref network.StationRef, raw, id string) {
	for _, a := range []string{raw, id, network.StripPrefix(raw), network.StripPrefix(id)} {
		if a == "" {
			continue
		}
		if _, exists := b.aliases[a]; !exists {
			b.aliases[a] = ref
		}
	}
}

// resolve looks a LineStops reference up by raw, namespaced and stripped form.
func (b *builder) resolve(ref string) (network.StationRef, bool) {
	if ref == "" {
		return network.NoStation, false
	}
	for _, a := range []string{ref, network.WithPrefix(ref), network.StripPrefix(ref)} {
		if sr, ok := b.aliases[a]; ok {
			return sr, true
		}
	}
	return network.NoStation, false
}

func (b *builder) freshStationID() (string, error) {
	for {
		id, err := b.newID(StationIDPrefix)
		if err != nil {
			return "", err
		}
		if _, taken := b.g.StationByID(id); !taken {
			if _, aliased := b.aliases[id]; !aliased {
				return id, nil
			}
		}
	}
}
