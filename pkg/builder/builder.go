// Package builder turns neighbourhood averages into a price-similarity graph.
package builder

import (
	"fmt"
	"math"

	"github.com/dd0wney/cluso-neighbourhoods/pkg/aggregate"
	"github.com/dd0wney/cluso-neighbourhoods/pkg/graph"
)

// DefaultThreshold is the largest average price difference, in listing
// currency units, for which two neighbourhoods are linked.
const DefaultThreshold float32 = 20.0

// Build adds one node per group, in input order, and links every pair i < j
// whose averages differ by at most threshold. Each unordered pair is
// considered once, so no duplicate edges are produced.
func Build(groups []aggregate.Group, threshold float32) (*graph.Graph, error) {
	if math.IsNaN(float64(threshold)) || threshold < 0 {
		return nil, fmt.Errorf("invalid threshold %v: must be a non-negative number", threshold)
	}

	g := graph.New()
	for _, grp := range groups {
		g.AddNode(grp.Name, grp.Average)
	}

	nodes := g.Nodes()
	for i := 0; i < len(nodes); i++ {
		for j := i + 1; j < len(nodes); j++ {
			if Similar(nodes[i].AvgPrice, nodes[j].AvgPrice, threshold) {
				if err := g.AddEdge(i, j); err != nil {
					return nil, fmt.Errorf("link %q and %q: %w", nodes[i].Name, nodes[j].Name, err)
				}
			}
		}
	}

	return g, nil
}

// Similar reports whether two averages are within threshold of each other.
func Similar(a, b, threshold float32) bool {
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	return diff <= threshold
}
