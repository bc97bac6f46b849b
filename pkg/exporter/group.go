package exporter

import (
	"fmt"

	"github.com/matzehuels/railsheet/pkg/network"
)

// AutoLinePrefix starts the ids of lines rebuilt from keyless edges.
const AutoLinePrefix = "line_auto_"

// Group is a set of edges exported together.
type Group struct {
	// Key is the reconciliation key, or a synthetic key built from the
	// edge's style, path, color and z-order when Synthetic is set.
	Key       string
	Synthetic bool
	Edges     []network.EdgeRef
}

// GroupEdges partitions the edges of g. Groups are ordered by their first
// edge; edges inside a group keep graph order.
func GroupEdges(g *network.Graph) []Group {
	var groups []Group
	index := make(map[string]int)
	for i, e := range g.Edges() {
		key, synthetic := e.Reconcile, false
		if key == "" {
			key, synthetic = syntheticKey(e), true
		}
		slot := key
		if synthetic {
			slot = "\x00" + key
		}
		gi, ok := index[slot]
		if !ok {
			gi = len(groups)
			index[slot] = gi
			groups = append(groups, Group{Key: key, Synthetic: synthetic})
		}
		groups[gi].Edges = append(groups[gi].Edges, network.EdgeRef(i))
	}
	return groups
}

func syntheticKey(e network.Edge) string {
	return fmt.Sprintf("%s|%s|%s|%d", e.Style, e.Path, e.StyleAttrs.Hex(), e.ZIndex)
}
