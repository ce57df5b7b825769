package algorithms

import (
	"github.com/dd0wney/cluso-neighbourhoods/pkg/graph"
)

// Visit is one step of a breadth-first traversal.
type Visit struct {
	Index int    `json:"index"`
	Name  string `json:"name"`
	Depth int    `json:"depth"`
}

// bfsScratch holds the per-source buffers of a traversal so that repeated
// runs over the same graph do not reallocate.
type bfsScratch struct {
	visited []bool
	depth   []int
	order   []int
}

func newBFSScratch(nodeCount int) *bfsScratch {
	return &bfsScratch{
		visited: make([]bool, nodeCount),
		depth:   make([]int, nodeCount),
		order:   make([]int, 0, nodeCount),
	}
}

// run traverses adj from start. On return order holds the visited nodes in
// non-decreasing hop distance and depth holds each visited node's distance;
// unvisited nodes keep depth 0.
func (s *bfsScratch) run(adj [][]int, start int) {
	for i := range s.visited {
		s.visited[i] = false
		s.depth[i] = 0
	}
	s.order = s.order[:0]

	s.visited[start] = true
	s.order = append(s.order, start)

	// order doubles as the FIFO queue: head is the next node to expand.
	for head := 0; head < len(s.order); head++ {
		current := s.order[head]
		for _, neighbor := range adj[current] {
			if s.visited[neighbor] {
				continue
			}
			s.visited[neighbor] = true
			s.depth[neighbor] = s.depth[current] + 1
			s.order = append(s.order, neighbor)
		}
	}
}

// BFS visits every node reachable from start, each exactly once, in order of
// hop distance. Ties follow edge insertion order. An empty graph yields an
// empty result.
func BFS(g *graph.Graph, start int) ([]Visit, error) {
	n := g.NodeCount()
	if n == 0 {
		return []Visit{}, nil
	}
	if start < 0 || start >= n {
		return nil, graph.IndexError("BFS", start, n, graph.ErrInvalidStartNode)
	}

	nodes := g.Nodes()
	s := newBFSScratch(n)
	s.run(g.Neighbors(), start)

	visits := make([]Visit, len(s.order))
	for i, idx := range s.order {
		visits[i] = Visit{
			Index: idx,
			Name:  nodes[idx].Name,
			Depth: s.depth[idx],
		}
	}
	return visits, nil
}

// VisitOrder returns the node names of a traversal in visit order.
func VisitOrder(visits []Visit) []string {
	names := make([]string, len(visits))
	for i, v := range visits {
		names[i] = v.Name
	}
	return names
}

// ComponentSize returns the number of nodes in the connected component that
// contains start.
func ComponentSize(g *graph.Graph, start int) (int, error) {
	visits, err := BFS(g, start)
	if err != nil {
		return 0, err
	}
	return len(visits), nil
}
