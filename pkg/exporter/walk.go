package exporter

import (
	"cmp"
	"slices"

	"github.com/matzehuels/railsheet/pkg/network"
)

// Components splits edges into maximal connected components, ignoring
// direction. Each component lists its edges in ascending order; components
// are ordered by their smallest edge.
func Components(g *network.Graph, edges []network.EdgeRef) [][]network.EdgeRef {
	adj := adjacency(g, edges)
	seen := make(map[network.EdgeRef]bool, len(edges))

	var out [][]network.EdgeRef
	for _, root := range edges {
		if seen[root] {
			continue
		}
		seen[root] = true
		comp := []network.EdgeRef{root}
		queue := []network.StationRef{g.Edge(root).From, g.Edge(root).To}
		for len(queue) > 0 {
			s := queue[0]
			queue = queue[1:]
			for _, ref := range adj[s] {
				if seen[ref] {
					continue
				}
				seen[ref] = true
				comp = append(comp, ref)
				queue = append(queue, g.Edge(ref).Other(s))
			}
		}
		slices.Sort(comp)
		out = append(out, comp)
	}
	return out
}

// adjacency maps every touched station to its incident edges in edges order.
func adjacency(g *network.Graph, edges []network.EdgeRef) map[network.StationRef][]network.EdgeRef {
	adj := make(map[network.StationRef][]network.EdgeRef)
	for _, ref := range edges {
		e := g.Edge(ref)
		adj[e.From] = append(adj[e.From], ref)
		adj[e.To] = append(adj[e.To], ref)
	}
	return adj
}

// Walk is an ordered stop sequence and the edges traversed between stops.
// len(Edges) == len(Stations)-1.
type Walk struct {
	Stations []network.StationRef
	Edges    []network.EdgeRef
}

// Walks consumes every edge of component, returning the walks that cover it.
// Every edge appears in exactly one walk. A component that branches or
// contains more than one trail yields several walks.
func Walks(g *network.Graph, component []network.EdgeRef) []Walk {
	adj := adjacency(g, component)
	remaining := make(map[network.EdgeRef]bool, len(component))
	for _, ref := range component {
		remaining[ref] = true
	}

	stations := make([]network.StationRef, 0, len(adj))
	for s := range adj {
		stations = append(stations, s)
	}
	slices.SortFunc(stations, func(a, b network.StationRef) int { return compareStations(g, a, b) })

	var walks []Walk
	for len(remaining) > 0 {
		start := pickStart(g, component, stations, adj, remaining)
		w := walkFrom(g, start, adj, remaining)
		if len(w.Stations) >= 2 {
			walks = append(walks, w)
		}
	}
	return walks
}

// pickStart returns the smallest station with exactly one remaining edge, or
// the smaller endpoint of the first remaining edge when there is none.
func pickStart(g *network.Graph, component []network.EdgeRef, stations []network.StationRef,
	adj map[network.StationRef][]network.EdgeRef, remaining map[network.EdgeRef]bool) network.StationRef {
	for _, s := range stations {
		degree := 0
		for _, ref := range adj[s] {
			if remaining[ref] {
				degree++
			}
		}
		if degree == 1 {
			return s
		}
	}
	for _, ref := range component {
		if !remaining[ref] {
			continue
		}
		e := g.Edge(ref)
		if compareStations(g, e.From, e.To) <= 0 {
			return e.From
		}
		return e.To
	}
	return network.NoStation
}

// walkFrom follows remaining edges from start until the current station has
// none left, consuming them. It prefers an edge that does not lead straight
// back to the previous station.
func walkFrom(g *network.Graph, start network.StationRef,
	adj map[network.StationRef][]network.EdgeRef, remaining map[network.EdgeRef]bool) Walk {
	w := Walk{Stations: []network.StationRef{start}}
	prev, cur := network.NoStation, start
	for {
		next := network.EdgeRef(-1)
		for _, ref := range adj[cur] {
			if !remaining[ref] {
				continue
			}
			if next < 0 {
				next = ref
			}
			if g.Edge(ref).Other(cur) != prev {
				next = ref
				break
			}
		}
		if next < 0 {
			return w
		}
		delete(remaining, next)
		prev, cur = cur, g.Edge(next).Other(cur)
		w.Stations = append(w.Stations, cur)
		w.Edges = append(w.Edges, next)
	}
}

// compareStations orders stations by external id, then internal id.
func compareStations(g *network.Graph, a, b network.StationRef) int {
	sa, sb := g.Station(a), g.Station(b)
	if c := cmp.Compare(sa.ExternalID(), sb.ExternalID()); c != 0 {
		return c
	}
	return cmp.Compare(sa.ID, sb.ID)
}
