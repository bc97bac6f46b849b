package importer

import (
	"slices"

	"github.com/matzehuels/railsheet/pkg/errors"
	"github.com/matzehuels/railsheet/pkg/network"
	"github.com/matzehuels/railsheet/pkg/sheet"
)

func (b *builder) stops(rows []sheet.Row) error {
	for _, row := range rows {
		order, err := requireFloat(sheet.SheetLineStops, row, sheet.ColStopOrder)
		if err != nil {
			return err
		}
		lineID, err := b.resolveLine(row.Get(sheet.ColLineID), row.Num)
		if err != nil {
			return err
		}
		ref := row.Get(sheet.ColStationID)
		st, ok := b.resolve(ref)
		if !ok {
			if st, err = b.placeholder(ref, row.Num); err != nil {
				return err
			}
		}
		b.stopsByID[lineID] = append(b.stopsByID[lineID], stop{order: order, station: st, row: row.Num})
	}
	return nil
}

// segments turns the ordered stops of every line into edges.
// Lines are visited in declaration order; equal stop orders keep input order.
func (b *builder) segments() error {
	for _, id := range b.lineOrder {
		stops := b.stopsByID[id]
		if len(stops) < 2 {
			continue
		}
		slices.SortStableFunc(stops, func(a, c stop) int {
			switch {
			case a.order < c.order:
				return -1
			case a.order > c.order:
				return 1
			}
			return 0
		})

		line := b.lines[id]
		for i := 1; i < len(stops); i++ {
			from, to := stops[i-1].station, stops[i].station
			if from == to {
				b.note(NoteDuplicateStop, sheet.SheetLineStops, stops[i].row,
					"consecutive stop at %s on line %s skipped", b.g.Station(to).ExternalID(), id)
				continue
			}
			if _, err := b.g.AddEdge(b.edge(line, from, to)); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidGraph, err, "line %s: stop at row %d", id, stops[i].row)
			}
		}
	}
	return nil
}

// edge builds the segment from -> to of line l, painted in the line's color.
func (b *builder) edge(l *network.LineConfig, from, to network.StationRef) network.Edge {
	return network.Edge{
		From:       from,
		To:         to,
		Visible:    true,
		ZIndex:     l.ZIndex,
		Path:       l.Path,
		PathAttrs:  network.DefaultPathAttrs(l.Path),
		Style:      l.Style,
		StyleAttrs: network.DefaultStyleAttrs(l.Style, network.LineTheme(*l)),
		Reconcile:  l.ID,
		Parallel:   b.g.ParallelIndex(from, to, l.Path),
	}
}
