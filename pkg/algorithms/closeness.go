package algorithms

import (
	"fmt"
	"strings"

	"github.com/dd0wney/cluso-neighbourhoods/pkg/graph"
)

// UnreachedPolicy selects how nodes outside a source's component affect its
// closeness score.
type UnreachedPolicy int

const (
	// UnreachedAsZero sums hop distances over all nodes, with unreached nodes
	// contributing 0, and scores 1/total.
	UnreachedAsZero UnreachedPolicy = iota
	// UnreachedPenalized applies Wasserman-Faust scaling:
	// (r/(n-1)) * (r/total), where r is the number of other nodes reached.
	UnreachedPenalized
)

// String returns the configuration name of the policy.
func (p UnreachedPolicy) String() string {
	switch p {
	case UnreachedAsZero:
		return "zero"
	case UnreachedPenalized:
		return "penalize"
	default:
		return "unknown"
	}
}

// ParseUnreachedPolicy converts a configuration value to a policy.
func ParseUnreachedPolicy(s string) (UnreachedPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "zero":
		return UnreachedAsZero, nil
	case "penalize", "penalized", "wasserman-faust":
		return UnreachedPenalized, nil
	default:
		return UnreachedAsZero, fmt.Errorf("unknown unreached policy %q", s)
	}
}

// ClosenessOptions configures ClosenessCentrality.
type ClosenessOptions struct {
	Unreached UnreachedPolicy
}

// Score is the closeness centrality of one node.
type Score struct {
	Index         int     `json:"index"`
	Name          string  `json:"name"`
	Score         float32 `json:"score"`
	TotalDistance uint64  `json:"total_distance"`
	Reached       int     `json:"reached"` // other nodes reached from this one
}

// ClosenessCentrality computes a score for every node, in node index order.
// Each source runs its own BFS; distances are summed as integers and the
// final division is single precision so results are reproducible.
func ClosenessCentrality(g *graph.Graph, opts ClosenessOptions) ([]Score, error) {
	n := g.NodeCount()
	if n == 0 {
		return []Score{}, nil
	}

	nodes := g.Nodes()
	adj := g.Neighbors()
	s := newBFSScratch(n)

	scores := make([]Score, n)
	for source := 0; source < n; source++ {
		s.run(adj, source)

		var total uint64
		for _, d := range s.depth {
			total += uint64(d)
		}
		reached := len(s.order) - 1

		scores[source] = Score{
			Index:         source,
			Name:          nodes[source].Name,
			Score:         closenessScore(opts.Unreached, total, reached, n),
			TotalDistance: total,
			Reached:       reached,
		}
	}

	return scores, nil
}

func closenessScore(policy UnreachedPolicy, total uint64, reached, nodeCount int) float32 {
	if total == 0 {
		return 0.0
	}
	switch policy {
	case UnreachedPenalized:
		r := float32(reached)
		return (r / float32(nodeCount-1)) * (r / float32(total))
	default:
		return 1.0 / float32(total)
	}
}
