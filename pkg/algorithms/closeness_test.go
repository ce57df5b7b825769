package algorithms

import (
	"math"
	"math/rand"
	"sort"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/dd0wney/cluso-neighbourhoods/pkg/graph"
)

func approxEqual(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-6
}

// TestClosenessCentrality_PathGraph tests scores on A-B-C
func TestClosenessCentrality_PathGraph(t *testing.T) {
	g := buildGraph(t, []string{"A", "B", "C"}, [][2]int{{0, 1}, {1, 2}})

	scores, err := ClosenessCentrality(g, ClosenessOptions{})
	if err != nil {
		t.Fatalf("ClosenessCentrality failed: %v", err)
	}

	if len(scores) != 3 {
		t.Fatalf("expected 3 scores, got %d", len(scores))
	}
	if scores[0].TotalDistance != 3 {
		t.Errorf("total distance from A = %d, want 3", scores[0].TotalDistance)
	}
	if scores[0].Score != float32(1)/3 {
		t.Errorf("closeness(A) = %v, want %v", scores[0].Score, float32(1)/3)
	}
	if scores[1].Score != 0.5 {
		t.Errorf("closeness(B) = %v, want 0.5", scores[1].Score)
	}
	if scores[2].Score != scores[0].Score {
		t.Errorf("closeness(C) = %v, want same as A", scores[2].Score)
	}

	for i, s := range scores {
		if s.Index != i {
			t.Errorf("scores not in node index order: position %d has index %d", i, s.Index)
		}
	}
}

// TestClosenessCentrality_IsolatedNode tests that a node without edges scores 0
func TestClosenessCentrality_IsolatedNode(t *testing.T) {
	g := buildGraph(t, []string{"A", "B", "lonely"}, [][2]int{{0, 1}})

	for _, policy := range []UnreachedPolicy{UnreachedAsZero, UnreachedPenalized} {
		scores, err := ClosenessCentrality(g, ClosenessOptions{Unreached: policy})
		if err != nil {
			t.Fatalf("ClosenessCentrality failed: %v", err)
		}
		if scores[2].Score != 0.0 {
			t.Errorf("policy %s: isolated node score = %v, want 0", policy, scores[2].Score)
		}
	}
}

// TestClosenessCentrality_TwoDisconnectedNodes locks in the unreached-as-zero
// accumulation: neither node reaches the other, so both totals are 0.
func TestClosenessCentrality_TwoDisconnectedNodes(t *testing.T) {
	g := buildGraph(t, []string{"A", "B"}, nil)

	scores, err := ClosenessCentrality(g, ClosenessOptions{Unreached: UnreachedAsZero})
	if err != nil {
		t.Fatalf("ClosenessCentrality failed: %v", err)
	}
	for _, s := range scores {
		if s.Score != 0.0 || s.TotalDistance != 0 || s.Reached != 0 {
			t.Errorf("%s: got %+v, want zero score and distance", s.Name, s)
		}
	}
}

// TestClosenessCentrality_UnreachedPolicies shows the two policies diverge on
// a poorly connected graph: a pair scores 1.0 under the zero policy, the same
// as a hub that reaches everything.
func TestClosenessCentrality_UnreachedPolicies(t *testing.T) {
	// Pair A-B, and star hub H with spokes X, Y
	g := buildGraph(t,
		[]string{"A", "B", "H", "X", "Y"},
		[][2]int{{0, 1}, {2, 3}, {2, 4}},
	)

	legacy, err := ClosenessCentrality(g, ClosenessOptions{Unreached: UnreachedAsZero})
	if err != nil {
		t.Fatalf("ClosenessCentrality failed: %v", err)
	}
	if legacy[0].Score != 1.0 {
		t.Errorf("zero policy: closeness(A) = %v, want 1.0", legacy[0].Score)
	}
	if legacy[2].Score != 0.5 {
		t.Errorf("zero policy: closeness(H) = %v, want 0.5", legacy[2].Score)
	}

	penalized, err := ClosenessCentrality(g, ClosenessOptions{Unreached: UnreachedPenalized})
	if err != nil {
		t.Fatalf("ClosenessCentrality failed: %v", err)
	}
	// A reaches 1 of 4 others at total distance 1: (1/4) * (1/1)
	if !approxEqual(penalized[0].Score, 0.25) {
		t.Errorf("penalized: closeness(A) = %v, want 0.25", penalized[0].Score)
	}
	// H reaches 2 of 4 others at total distance 2: (2/4) * (2/2)
	if !approxEqual(penalized[2].Score, 0.5) {
		t.Errorf("penalized: closeness(H) = %v, want 0.5", penalized[2].Score)
	}
	if penalized[0].Score >= penalized[2].Score {
		t.Errorf("penalized policy should rank the hub above the isolated pair")
	}
}

// TestClosenessCentrality_PenalizedConnected tests the penalized policy matches
// the inverse mean distance on a connected graph
func TestClosenessCentrality_PenalizedConnected(t *testing.T) {
	g := buildGraph(t, []string{"A", "B", "C"}, [][2]int{{0, 1}, {1, 2}})

	scores, err := ClosenessCentrality(g, ClosenessOptions{Unreached: UnreachedPenalized})
	if err != nil {
		t.Fatalf("ClosenessCentrality failed: %v", err)
	}
	if !approxEqual(scores[0].Score, 2.0/3.0) {
		t.Errorf("closeness(A) = %v, want 2/3", scores[0].Score)
	}
	if !approxEqual(scores[1].Score, 1.0) {
		t.Errorf("closeness(B) = %v, want 1", scores[1].Score)
	}
}

// TestClosenessCentrality_EmptyGraph tests the empty graph no-op
func TestClosenessCentrality_EmptyGraph(t *testing.T) {
	scores, err := ClosenessCentrality(graph.New(), ClosenessOptions{})
	if err != nil {
		t.Fatalf("ClosenessCentrality failed: %v", err)
	}
	if len(scores) != 0 {
		t.Errorf("expected 0 scores, got %d", len(scores))
	}
}

// TestClosenessCentrality_SingleNode tests a one-node graph under both policies
func TestClosenessCentrality_SingleNode(t *testing.T) {
	g := buildGraph(t, []string{"only"}, [][2]int{{0, 0}})

	for _, policy := range []UnreachedPolicy{UnreachedAsZero, UnreachedPenalized} {
		scores, err := ClosenessCentrality(g, ClosenessOptions{Unreached: policy})
		if err != nil {
			t.Fatalf("ClosenessCentrality failed: %v", err)
		}
		if scores[0].Score != 0 {
			t.Errorf("policy %s: score = %v, want 0", policy, scores[0].Score)
		}
	}
}

func TestParseUnreachedPolicy(t *testing.T) {
	tests := []struct {
		in      string
		want    UnreachedPolicy
		wantErr bool
	}{
		{"", UnreachedAsZero, false},
		{"zero", UnreachedAsZero, false},
		{"Penalize", UnreachedPenalized, false},
		{"wasserman-faust", UnreachedPenalized, false},
		{"harmonic", UnreachedAsZero, true},
	}

	for _, tt := range tests {
		got, err := ParseUnreachedPolicy(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseUnreachedPolicy(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseUnreachedPolicy(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	if UnreachedPenalized.String() != "penalize" || UnreachedAsZero.String() != "zero" {
		t.Errorf("unexpected policy names %q %q", UnreachedAsZero, UnreachedPenalized)
	}
}

// TestClosenessProperties verifies relabelling only permutes scores
func TestClosenessProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50

	properties := gopter.NewProperties(parameters)

	properties.Property("relabelling nodes permutes scores", prop.ForAll(
		func(nodeCount int, endpoints []int, seed int64) bool {
			perm := rand.New(rand.NewSource(seed)).Perm(nodeCount)

			permuted := make([]int, len(endpoints))
			for i, e := range endpoints {
				permuted[i] = perm[e%nodeCount]
			}

			g := randomGraph(nodeCount, endpoints)
			h := randomGraph(nodeCount, permuted)

			for _, policy := range []UnreachedPolicy{UnreachedAsZero, UnreachedPenalized} {
				a, errA := ClosenessCentrality(g, ClosenessOptions{Unreached: policy})
				b, errB := ClosenessCentrality(h, ClosenessOptions{Unreached: policy})
				if errA != nil || errB != nil {
					return false
				}
				for i := range a {
					if a[i].Score != b[perm[i]].Score {
						return false
					}
				}

				as, bs := sortedScores(a), sortedScores(b)
				for i := range as {
					if as[i] != bs[i] {
						return false
					}
				}
			}
			return true
		},
		gen.IntRange(1, 12),
		gen.SliceOf(gen.IntRange(0, 100)),
		gen.Int64(),
	))

	properties.Property("total distance counts only reachable nodes", prop.ForAll(
		func(nodeCount int, endpoints []int) bool {
			g := randomGraph(nodeCount, endpoints)

			scores, err := ClosenessCentrality(g, ClosenessOptions{})
			if err != nil {
				return false
			}
			for _, s := range scores {
				visits, err := BFS(g, s.Index)
				if err != nil {
					return false
				}
				var total uint64
				for _, v := range visits {
					total += uint64(v.Depth)
				}
				if total != s.TotalDistance || s.Reached != len(visits)-1 {
					return false
				}
			}
			return true
		},
		gen.IntRange(1, 12),
		gen.SliceOf(gen.IntRange(0, 100)),
	))

	properties.TestingRun(t)
}

func sortedScores(scores []Score) []float32 {
	out := make([]float32, len(scores))
	for i, s := range scores {
		out[i] = s.Score
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
