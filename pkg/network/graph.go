package network

import (
	"errors"
	"fmt"
	"slices"
)

var (
	// ErrInvalidStationID is returned by [Graph.AddStation] when the station
	// id is empty.
	ErrInvalidStationID = errors.New("station ID must not be empty")

	// ErrDuplicateStationID is returned by [Graph.AddStation] when a station
	// with the same id already exists.
	ErrDuplicateStationID = errors.New("duplicate station ID")

	// ErrUnknownStation is returned by [Graph.AddEdge] when an endpoint handle
	// does not refer to a station of this graph.
	ErrUnknownStation = errors.New("unknown station")

	// ErrSelfLoop is returned by [Graph.AddEdge] when both endpoints are the
	// same station.
	ErrSelfLoop = errors.New("edge endpoints must be distinct")

	// ErrInvalidLineID is returned by [Graph.SetLine] when the line id is empty.
	ErrInvalidLineID = errors.New("line ID must not be empty")
)

// StationRef is a handle to a station inside one [Graph].
type StationRef int

// EdgeRef is a handle to an edge inside one [Graph].
type EdgeRef int

// NoStation is the zero handle value used where no station applies.
const NoStation StationRef = -1

// Edge is a directed line segment between two distinct stations.
type Edge struct {
	From StationRef
	To   StationRef

	Visible bool
	ZIndex  int

	Path      LinePathType
	PathAttrs PathAttrs

	Style      LineStyleType
	StyleAttrs StyleAttrs

	// Reconcile is the key used to regroup edges into lines on export.
	// It is normally the id of the line that produced the edge; edges drawn
	// directly in the editor leave it blank.
	Reconcile string

	// Parallel separates edges sharing the same ordered endpoints within
	// one path family. The first edge is 0.
	Parallel int
}

// Other returns the endpoint of e opposite to s.
func (e Edge) Other(s StationRef) StationRef {
	if e.From == s {
		return e.To
	}
	return e.From
}

// Touches reports whether s is an endpoint of e.
func (e Edge) Touches(s StationRef) bool { return e.From == s || e.To == s }

// Graph is the station/edge multigraph of one editing session.
//
// The zero value is not usable - use [New].
type Graph struct {
	stations []Station
	byID     map[string]StationRef
	external map[string]StationRef // stripped id -> station
	edges    []Edge
	incident [][]EdgeRef // station -> edges touching it, insertion order
	lines    map[string]LineConfig
	order    []string // line ids in registration order
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		byID:     make(map[string]StationRef),
		external: make(map[string]StationRef),
		lines:    make(map[string]LineConfig),
	}
}

// AddStation appends a station and returns its handle.
// Ids are compared in their exported (stripped) form, so "A" and "stn_A"
// cannot both exist. Returns ErrInvalidStationID for an id that is empty
// once stripped and ErrDuplicateStationID if the id is already taken.
func (g *Graph) AddStation(s Station) (StationRef, error) {
	ext := StripPrefix(s.ID)
	if ext == "" {
		return NoStation, fmt.Errorf("%w: %q", ErrInvalidStationID, s.ID)
	}
	if prev, exists := g.external[ext]; exists {
		return NoStation, fmt.Errorf("%w: %s collides with %s", ErrDuplicateStationID, s.ID, g.stations[prev].ID)
	}
	ref := StationRef(len(g.stations))
	g.stations = append(g.stations, s)
	g.incident = append(g.incident, nil)
	g.byID[s.ID] = ref
	g.external[ext] = ref
	return ref, nil
}

// AddEdge appends a directed edge and returns its handle.
// Both endpoints must exist and differ.
func (g *Graph) AddEdge(e Edge) (EdgeRef, error) {
	if !g.valid(e.From) || !g.valid(e.To) {
		return -1, ErrUnknownStation
	}
	if e.From == e.To {
		return -1, fmt.Errorf("%w: %s", ErrSelfLoop, g.stations[e.From].ID)
	}
	ref := EdgeRef(len(g.edges))
	g.edges = append(g.edges, e)
	g.incident[e.From] = append(g.incident[e.From], ref)
	g.incident[e.To] = append(g.incident[e.To], ref)
	return ref, nil
}

func (g *Graph) valid(s StationRef) bool { return s >= 0 && int(s) < len(g.stations) }

// Station returns a pointer to the station behind ref. Modifications through
// the pointer affect the graph, except the ID which must stay stable.
// It panics if ref is out of range.
func (g *Graph) Station(ref StationRef) *Station { return &g.stations[ref] }

// StationByExternalID looks up a station handle by its exported id.
func (g *Graph) StationByExternalID(id string) (StationRef, bool) {
	ref, ok := g.external[id]
	return ref, ok
}

// StationByID looks up a station handle by internal id.
func (g *Graph) StationByID(id string) (StationRef, bool) {
	ref, ok := g.byID[id]
	return ref, ok
}

// Stations returns a copy of all stations in insertion order.
// Index i of the result corresponds to StationRef(i).
func (g *Graph) Stations() []Station { return slices.Clone(g.stations) }

// StationCount returns the number of stations.
func (g *Graph) StationCount() int { return len(g.stations) }

// Edge returns a copy of the edge behind ref.
func (g *Graph) Edge(ref EdgeRef) Edge { return g.edges[ref] }

// Edges returns a copy of all edges in insertion order.
// Index i of the result corresponds to EdgeRef(i).
func (g *Graph) Edges() []Edge { return slices.Clone(g.edges) }

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Incident returns the edges touching s in insertion order.
// The returned slice must not be modified.
func (g *Graph) Incident(s StationRef) []EdgeRef {
	if !g.valid(s) {
		return nil
	}
	return g.incident[s]
}

// Between returns the edges running from -> to, in insertion order.
// Edges running the other way are not included.
func (g *Graph) Between(from, to StationRef) []EdgeRef {
	var out []EdgeRef
	for _, ref := range g.Incident(from) {
		if e := g.edges[ref]; e.From == from && e.To == to {
			out = append(out, ref)
		}
	}
	return out
}

// ParallelIndex returns the parallel index a new edge from -> to with the
// given path type would receive: the number of existing edges with the same
// ordered endpoints whose path type belongs to the same family.
func (g *Graph) ParallelIndex(from, to StationRef, path LinePathType) int {
	family := path.Family()
	n := 0
	for _, ref := range g.Between(from, to) {
		if g.edges[ref].Path.Family() == family {
			n++
		}
	}
	return n
}

// SetLine registers or replaces a line configuration.
// Lines registered here are used for display names on export; they do not
// create edges.
func (g *Graph) SetLine(l LineConfig) error {
	if l.ID == "" {
		return ErrInvalidLineID
	}
	if _, exists := g.lines[l.ID]; !exists {
		g.order = append(g.order, l.ID)
	}
	g.lines[l.ID] = l
	return nil
}

// Line returns the registered line configuration with the given id.
func (g *Graph) Line(id string) (LineConfig, bool) {
	l, ok := g.lines[id]
	return l, ok
}

// Lines returns all registered line configurations in registration order.
func (g *Graph) Lines() []LineConfig {
	out := make([]LineConfig, 0, len(g.order))
	for _, id := range g.order {
		out = append(out, g.lines[id])
	}
	return out
}

// Validate checks graph integrity: station ids unique and non-empty in their
// stripped form, every
// edge endpoint valid and no self-loops. Graphs built through AddStation and
// AddEdge are always valid; Validate exists for graphs decoded from outside.
func (g *Graph) Validate() error {
	seen := make(map[string]bool, len(g.stations))
	for _, s := range g.stations {
		ext := s.ExternalID()
		if ext == "" {
			return fmt.Errorf("%w: %q", ErrInvalidStationID, s.ID)
		}
		if seen[ext] {
			return fmt.Errorf("%w: %s", ErrDuplicateStationID, s.ID)
		}
		seen[ext] = true
	}
	for i, e := range g.edges {
		if !g.valid(e.From) || !g.valid(e.To) {
			return fmt.Errorf("edge %d: %w", i, ErrUnknownStation)
		}
		if e.From == e.To {
			return fmt.Errorf("edge %d: %w", i, ErrSelfLoop)
		}
	}
	return nil
}
