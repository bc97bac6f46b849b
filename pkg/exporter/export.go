package exporter

import (
	"fmt"
	"slices"
	"strings"

	"github.com/matzehuels/railsheet/pkg/network"
)

// Export converts g and view into workbook rows. g is not modified.
func Export(g *network.Graph, view network.ViewMeta) *Rows {
	lines, stops := LineRows(g)
	return &Rows{
		Stations: StationRows(g),
		Lines:    lines,
		Stops:    stops,
		Project:  view,
	}
}

// StationRows returns one row per station, sorted by external id.
func StationRows(g *network.Graph) []StationRow {
	stations := g.Stations()
	rows := make([]StationRow, 0, len(stations))
	for _, s := range stations {
		rows = append(rows, StationRow{
			ID:           s.ExternalID(),
			X:            s.X,
			Y:            s.Y,
			NameEN:       s.Names[1],
			NameZH:       s.Names[0],
			NameOffsetX:  s.NameOffsetX,
			NameOffsetY:  s.NameOffsetY,
			IconHeight:   s.Height,
			IconWidth:    s.Width,
			IconRotation: s.Rotation,
			Type:         s.Type,
			ZIndex:       s.ZIndex,
		})
	}
	slices.SortStableFunc(rows, func(a, b StationRow) int { return strings.Compare(a.ID, b.ID) })
	return rows
}

// LineRows rebuilds lines and their ordered stops from the edges of g.
func LineRows(g *network.Graph) ([]LineRow, []StopRow) {
	groups := GroupEdges(g)
	ids := newIDSet(groups)

	var lines []LineRow
	var stops []StopRow
	for _, grp := range groups {
		base := grp.Key
		if grp.Synthetic {
			base = ids.auto()
		}

		n := 0
		for _, comp := range Components(g, grp.Edges) {
			for _, w := range Walks(g, comp) {
				n++
				id := base
				if n > 1 {
					id = fmt.Sprintf("%s_%d", base, n)
				}
				id = ids.claim(id, grp.Key)

				lines = append(lines, lineRow(g, grp, id, w))
				for i, s := range w.Stations {
					stops = append(stops, StopRow{
						LineID:    id,
						Order:     i + 1,
						StationID: g.Station(s).ExternalID(),
					})
				}
			}
		}
	}
	return lines, stops
}

// lineRow describes walk w using its first edge as the representative.
func lineRow(g *network.Graph, grp Group, id string, w Walk) LineRow {
	rep := g.Edge(w.Edges[0])
	row := LineRow{
		ID:     id,
		Name:   id,
		Color:  rep.StyleAttrs.Hex(),
		Path:   rep.Path,
		Style:  rep.Style,
		ZIndex: rep.ZIndex,
	}
	if !grp.Synthetic {
		if l, ok := g.Line(grp.Key); ok {
			if l.Name != "" {
				row.Name = l.Name
			}
			if row.Color == "" {
				row.Color = l.Color
			}
		}
	}
	if row.Color == "" {
		row.Color = network.DefaultLineColor
	}
	return row
}

// idSet hands out line ids that are unique within one export.
// Keys of keyed groups are reserved up front so a derived or generated id
// never takes a key another group will use as its base.
type idSet struct {
	reserved map[string]bool
	used     map[string]bool
	next     int
}

func newIDSet(groups []Group) *idSet {
	s := &idSet{reserved: make(map[string]bool), used: make(map[string]bool)}
	for _, grp := range groups {
		if !grp.Synthetic {
			s.reserved[grp.Key] = true
		}
	}
	return s
}

func (s *idSet) taken(id, owner string) bool {
	return s.used[id] || (s.reserved[id] && id != owner)
}

// auto returns the next free "line_auto_N" id without claiming it.
func (s *idSet) auto() string {
	for {
		s.next++
		id := fmt.Sprintf("%s%d", AutoLinePrefix, s.next)
		if !s.taken(id, "") {
			return id
		}
	}
}

// claim marks id as used, adding a numeric suffix if it is taken.
// owner is the key of the group asking; it may use its own reserved key.
func (s *idSet) claim(id, owner string) string {
	candidate := id
	for k := 2; s.taken(candidate, owner); k++ {
		candidate = fmt.Sprintf("%s_%d", id, k)
	}
	s.used[candidate] = true
	return candidate
}
