package algorithms

import (
	"testing"

	"github.com/dd0wney/cluso-neighbourhoods/pkg/graph"
)

// buildGraph creates a graph with the given node names and edges.
func buildGraph(t *testing.T, names []string, edges [][2]int) *graph.Graph {
	t.Helper()

	g := graph.New()
	for _, name := range names {
		g.AddNode(name, 0)
	}
	for _, e := range edges {
		if err := g.AddEdge(e[0], e[1]); err != nil {
			t.Fatalf("AddEdge(%d, %d) failed: %v", e[0], e[1], err)
		}
	}
	return g
}

// randomGraph builds a graph from generator output without a *testing.T.
func randomGraph(nodeCount int, endpoints []int) *graph.Graph {
	g := graph.New()
	for i := 0; i < nodeCount; i++ {
		g.AddNode(string(rune('a'+i%26)), float32(i))
	}
	for i := 0; i+1 < len(endpoints); i += 2 {
		_ = g.AddEdge(endpoints[i]%nodeCount, endpoints[i+1]%nodeCount)
	}
	return g
}

// edgeScanOrder is the reference traversal: for each dequeued node it scans
// the whole edge list, matching either endpoint.
func edgeScanOrder(g *graph.Graph, start int) []int {
	edges := g.Edges()
	visited := make([]bool, g.NodeCount())
	queue := []int{start}
	visited[start] = true
	order := []int{}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		order = append(order, current)

		for _, e := range edges {
			neighbor, ok := e.Other(current)
			if ok && !visited[neighbor] {
				visited[neighbor] = true
				queue = append(queue, neighbor)
			}
		}
	}
	return order
}
