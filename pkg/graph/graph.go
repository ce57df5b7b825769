// Package graph holds the in-memory undirected similarity graph. Nodes and
// edges are append-only: indices handed out by AddNode stay valid for the
// lifetime of the graph.
package graph

// Node is one neighbourhood and its averaged listing price.
type Node struct {
	Name     string  `json:"name"`
	AvgPrice float32 `json:"avg_price"`
}

// Edge links two nodes by their index in the node sequence.
type Edge struct {
	Source int `json:"source"`
	Target int `json:"target"`
}

// Other returns the endpoint opposite to idx and whether idx is an endpoint.
// The source endpoint wins when both match (self-loop).
func (e Edge) Other(idx int) (int, bool) {
	switch idx {
	case e.Source:
		return e.Target, true
	case e.Target:
		return e.Source, true
	}
	return 0, false
}

// Graph is an undirected graph with index-addressed nodes. It is not safe for
// concurrent mutation.
type Graph struct {
	nodes []Node
	edges []Edge
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		nodes: make([]Node, 0),
		edges: make([]Edge, 0),
	}
}

// AddNode appends a node and returns its index, which equals the node count
// before insertion.
func (g *Graph) AddNode(name string, avgPrice float32) int {
	g.nodes = append(g.nodes, Node{Name: name, AvgPrice: avgPrice})
	return len(g.nodes) - 1
}

// AddEdge appends an undirected edge between two existing nodes. Duplicate
// pairs and self-loops are stored as given.
func (g *Graph) AddEdge(source, target int) error {
	if !g.validIndex(source) {
		return IndexError("AddEdge", source, len(g.nodes), ErrInvalidIndex)
	}
	if !g.validIndex(target) {
		return IndexError("AddEdge", target, len(g.nodes), ErrInvalidIndex)
	}
	g.edges = append(g.edges, Edge{Source: source, Target: target})
	return nil
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int {
	return len(g.nodes)
}

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int {
	return len(g.edges)
}

// Node returns the node at idx.
func (g *Graph) Node(idx int) (Node, error) {
	if !g.validIndex(idx) {
		return Node{}, IndexError("Node", idx, len(g.nodes), ErrInvalidIndex)
	}
	return g.nodes[idx], nil
}

// Nodes returns a copy of the node sequence in index order.
func (g *Graph) Nodes() []Node {
	out := make([]Node, len(g.nodes))
	copy(out, g.nodes)
	return out
}

// Edges returns a copy of the edge sequence in insertion order.
func (g *Graph) Edges() []Edge {
	out := make([]Edge, len(g.edges))
	copy(out, g.edges)
	return out
}

// Neighbors builds the adjacency list. For every node the neighbour order is
// the order a scan over the edge list would discover them, so traversals over
// the result keep the edge-scan tie-break order.
func (g *Graph) Neighbors() [][]int {
	adj := make([][]int, len(g.nodes))
	for _, e := range g.edges {
		adj[e.Source] = append(adj[e.Source], e.Target)
		if e.Target != e.Source {
			adj[e.Target] = append(adj[e.Target], e.Source)
		}
	}
	return adj
}

func (g *Graph) validIndex(idx int) bool {
	return idx >= 0 && idx < len(g.nodes)
}
