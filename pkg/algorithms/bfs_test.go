package algorithms

import (
	"errors"
	"reflect"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/dd0wney/cluso-neighbourhoods/pkg/graph"
)

// TestBFS_PathGraph tests traversal of A-B-C from A
func TestBFS_PathGraph(t *testing.T) {
	g := buildGraph(t, []string{"A", "B", "C"}, [][2]int{{0, 1}, {1, 2}})

	visits, err := BFS(g, 0)
	if err != nil {
		t.Fatalf("BFS failed: %v", err)
	}

	if got := VisitOrder(visits); !reflect.DeepEqual(got, []string{"A", "B", "C"}) {
		t.Errorf("visit order = %v, want [A B C]", got)
	}
	for i, want := range []int{0, 1, 2} {
		if visits[i].Depth != want {
			t.Errorf("depth of %s = %d, want %d", visits[i].Name, visits[i].Depth, want)
		}
	}
}

// TestBFS_UndirectedEdges tests that edges are followed in both directions
func TestBFS_UndirectedEdges(t *testing.T) {
	g := buildGraph(t, []string{"A", "B", "C"}, [][2]int{{0, 1}, {1, 2}})

	visits, err := BFS(g, 2)
	if err != nil {
		t.Fatalf("BFS failed: %v", err)
	}

	if got := VisitOrder(visits); !reflect.DeepEqual(got, []string{"C", "B", "A"}) {
		t.Errorf("visit order = %v, want [C B A]", got)
	}
}

// TestBFS_Disconnected tests that other components are never visited
func TestBFS_Disconnected(t *testing.T) {
	g := buildGraph(t, []string{"A", "B", "C", "D"}, [][2]int{{0, 1}, {2, 3}})

	visits, err := BFS(g, 3)
	if err != nil {
		t.Fatalf("BFS failed: %v", err)
	}

	if got := VisitOrder(visits); !reflect.DeepEqual(got, []string{"D", "C"}) {
		t.Errorf("visit order = %v, want [D C]", got)
	}

	size, err := ComponentSize(g, 0)
	if err != nil {
		t.Fatalf("ComponentSize failed: %v", err)
	}
	if size != 2 {
		t.Errorf("ComponentSize = %d, want 2", size)
	}
}

// TestBFS_TieBreakFollowsEdgeOrder tests that same-depth nodes follow edge insertion order
func TestBFS_TieBreakFollowsEdgeOrder(t *testing.T) {
	// Star centred on 0, spokes added out of index order
	g := buildGraph(t, []string{"hub", "s1", "s2", "s3"}, [][2]int{{3, 0}, {0, 1}, {2, 0}})

	visits, err := BFS(g, 0)
	if err != nil {
		t.Fatalf("BFS failed: %v", err)
	}

	if got := VisitOrder(visits); !reflect.DeepEqual(got, []string{"hub", "s3", "s1", "s2"}) {
		t.Errorf("visit order = %v, want [hub s3 s1 s2]", got)
	}
}

// TestBFS_SelfLoopAndDuplicates tests that repeated edges do not cause revisits
func TestBFS_SelfLoopAndDuplicates(t *testing.T) {
	g := buildGraph(t, []string{"A", "B"}, [][2]int{{0, 0}, {0, 1}, {1, 0}, {0, 1}})

	visits, err := BFS(g, 0)
	if err != nil {
		t.Fatalf("BFS failed: %v", err)
	}
	if len(visits) != 2 {
		t.Errorf("visited %d nodes, want 2", len(visits))
	}
}

// TestBFS_EmptyGraph tests that an empty graph yields an empty result
func TestBFS_EmptyGraph(t *testing.T) {
	visits, err := BFS(graph.New(), 0)
	if err != nil {
		t.Fatalf("BFS on empty graph failed: %v", err)
	}
	if len(visits) != 0 {
		t.Errorf("expected no visits, got %d", len(visits))
	}
}

// TestBFS_InvalidStart tests the explicit start node error
func TestBFS_InvalidStart(t *testing.T) {
	g := buildGraph(t, []string{"A", "B"}, nil)

	for _, start := range []int{-1, 2, 100} {
		_, err := BFS(g, start)
		if !errors.Is(err, graph.ErrInvalidStartNode) {
			t.Errorf("BFS(%d) error = %v, want ErrInvalidStartNode", start, err)
		}
		if !graph.IsInvalidIndex(err) {
			t.Errorf("BFS(%d) error should also match ErrInvalidIndex", start)
		}
	}
}

// TestBFSProperties verifies traversal invariants on random graphs
func TestBFSProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("adjacency traversal matches edge-list scan", prop.ForAll(
		func(nodeCount int, endpoints []int, start int) bool {
			g := randomGraph(nodeCount, endpoints)
			start %= nodeCount

			visits, err := BFS(g, start)
			if err != nil {
				return false
			}
			want := edgeScanOrder(g, start)
			if len(visits) != len(want) {
				return false
			}
			for i := range want {
				if visits[i].Index != want[i] {
					return false
				}
			}
			return true
		},
		gen.IntRange(1, 15),
		gen.SliceOf(gen.IntRange(0, 200)),
		gen.IntRange(0, 200),
	))

	properties.Property("each node visited once with non-decreasing depth", prop.ForAll(
		func(nodeCount int, endpoints []int, start int) bool {
			g := randomGraph(nodeCount, endpoints)

			visits, err := BFS(g, start%nodeCount)
			if err != nil {
				return false
			}
			seen := make(map[int]bool)
			for i, v := range visits {
				if seen[v.Index] {
					return false
				}
				seen[v.Index] = true
				if i > 0 && v.Depth < visits[i-1].Depth {
					return false
				}
			}
			return visits[0].Depth == 0
		},
		gen.IntRange(1, 15),
		gen.SliceOf(gen.IntRange(0, 200)),
		gen.IntRange(0, 200),
	))

	properties.Property("edge order changes only the visit order", prop.ForAll(
		func(nodeCount int, endpoints []int, start int) bool {
			g := randomGraph(nodeCount, endpoints)

			reversed := make([]int, len(endpoints))
			for i := 0; i+1 < len(endpoints); i += 2 {
				j := len(endpoints) - len(endpoints)%2 - 2 - i
				reversed[j], reversed[j+1] = endpoints[i], endpoints[i+1]
			}
			h := randomGraph(nodeCount, reversed)

			a, errA := BFS(g, start%nodeCount)
			b, errB := BFS(h, start%nodeCount)
			if errA != nil || errB != nil || len(a) != len(b) {
				return false
			}
			depthA := make(map[int]int)
			for _, v := range a {
				depthA[v.Index] = v.Depth
			}
			for _, v := range b {
				d, ok := depthA[v.Index]
				if !ok || d != v.Depth {
					return false
				}
			}
			return true
		},
		gen.IntRange(1, 15),
		gen.SliceOf(gen.IntRange(0, 200)),
		gen.IntRange(0, 200),
	))

	properties.TestingRun(t)
}
