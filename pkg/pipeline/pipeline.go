// Package pipeline wires ingestion, aggregation, graph construction and the
// graph algorithms into a single run.
package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/dd0wney/cluso-neighbourhoods/pkg/aggregate"
	"github.com/dd0wney/cluso-neighbourhoods/pkg/algorithms"
	"github.com/dd0wney/cluso-neighbourhoods/pkg/builder"
	"github.com/dd0wney/cluso-neighbourhoods/pkg/graph"
	"github.com/dd0wney/cluso-neighbourhoods/pkg/listings"
	"github.com/dd0wney/cluso-neighbourhoods/pkg/logging"
	"github.com/dd0wney/cluso-neighbourhoods/pkg/metrics"
	"github.com/dd0wney/cluso-neighbourhoods/pkg/source"
)

// ErrUnknownNeighbourhood is returned when the start name matches no node.
var ErrUnknownNeighbourhood = errors.New("unknown neighbourhood")

// Options controls graph construction and analysis.
type Options struct {
	Threshold  float32
	Start      string // neighbourhood to traverse from; empty means node 0
	TopK       int
	Unreached  algorithms.UnreachedPolicy
	SampleSize int // nodes and edges echoed in the summary
}

// DefaultOptions mirrors config.Default.
func DefaultOptions() Options {
	return Options{
		Threshold:  builder.DefaultThreshold,
		TopK:       5,
		Unreached:  algorithms.UnreachedAsZero,
		SampleSize: 5,
	}
}

// EdgeView is an edge with its endpoint names resolved.
type EdgeView struct {
	graph.Edge
	SourceName string `json:"source_name"`
	TargetName string `json:"target_name"`
}

// Summary describes the loaded data and the built graph. SampleGroups holds
// the listing statistics of SampleNodes, index for index.
type Summary struct {
	Listings       int               `json:"listings"`
	Neighbourhoods int               `json:"neighbourhoods"`
	NodeCount      int               `json:"node_count"`
	EdgeCount      int               `json:"edge_count"`
	Threshold      float32           `json:"threshold"`
	SampleNodes    []graph.Node      `json:"sample_nodes"`
	SampleGroups   []aggregate.Group `json:"sample_groups"`
	SampleEdges    []EdgeView        `json:"sample_edges"`
	FirstListing   *listings.Listing `json:"first_listing,omitempty"`
}

// Result is everything a run produces.
type Result struct {
	RunID         string             `json:"run_id"`
	Summary       Summary            `json:"summary"`
	Start         string             `json:"start"`
	Traversal     []algorithms.Visit `json:"traversal"`
	ComponentSize int                `json:"component_size"`
	Scores        []algorithms.Score `json:"-"` // node index order
	Ranked        []algorithms.Score `json:"ranked"`
	Policy        string             `json:"unreached_policy"`
	Groups        []aggregate.Group  `json:"-"`
}

// Pipeline runs the analysis. It holds no per-run state.
type Pipeline struct {
	opener  *source.Opener
	logger  logging.Logger
	metrics *metrics.Registry
}

// New creates a pipeline. A nil logger discards logs; a nil registry gets a
// private one.
func New(opener *source.Opener, logger logging.Logger, reg *metrics.Registry) *Pipeline {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	if reg == nil {
		reg = metrics.NewRegistry()
	}
	return &Pipeline{
		opener:  opener,
		logger:  logger.With(logging.Component("pipeline")),
		metrics: reg,
	}
}

// Metrics returns the registry the pipeline records into.
func (p *Pipeline) Metrics() *metrics.Registry {
	return p.metrics
}

// Run loads listings from uri and analyses them. Any ingestion failure aborts
// the run before a graph is built.
func (p *Pipeline) Run(ctx context.Context, uri string, opts Options) (result *Result, err error) {
	runID := uuid.NewString()
	logger := p.logger.With(logging.RunID(runID))
	defer func() { p.metrics.RecordRun(err) }()

	loaded, err := p.load(ctx, logger, uri)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result, err = p.analyze(logger, loaded, opts)
	if err != nil {
		return nil, err
	}
	result.RunID = runID
	return result, nil
}

// Analyze runs aggregation, graph construction and the algorithms over
// already-loaded listings.
func (p *Pipeline) Analyze(in []listings.Listing, opts Options) (*Result, error) {
	return p.analyze(p.logger, in, opts)
}

func (p *Pipeline) load(ctx context.Context, logger logging.Logger, uri string) ([]listings.Listing, error) {
	op := logging.StartTimer(logger, "listings loaded", logging.Stage("ingest"), logging.Source(uri))

	rc, err := p.opener.Open(ctx, uri)
	if err != nil {
		op.EndError(err)
		p.metrics.RecordIngestError("open")
		return nil, fmt.Errorf("ingest: %w", err)
	}
	defer rc.Close()

	loaded, err := listings.Load(rc)
	if err != nil {
		op.EndError(err)
		p.metrics.RecordIngestError("decode")
		return nil, fmt.Errorf("ingest %s: %w", uri, err)
	}

	op.End(logging.Count(len(loaded)))
	return loaded, nil
}

func (p *Pipeline) analyze(logger logging.Logger, in []listings.Listing, opts Options) (*Result, error) {
	groups := aggregate.ByNeighbourhood(in)
	p.metrics.RecordListings(len(in), len(groups))
	logger.Info("listings aggregated", logging.Stage("aggregate"), logging.Count(len(groups)))

	op := logging.StartTimer(logger, "graph built", logging.Stage("build"))
	g, err := builder.Build(groups, opts.Threshold)
	if err != nil {
		op.EndError(err)
		return nil, fmt.Errorf("build graph: %w", err)
	}
	p.metrics.RecordAlgorithm("build", op.End(
		logging.Nodes(g.NodeCount()),
		logging.Edges(g.EdgeCount()),
		logging.Threshold(opts.Threshold),
	))
	p.metrics.RecordGraph(g.NodeCount(), g.EdgeCount(), opts.Threshold)

	start, err := resolveStart(g, opts.Start)
	if err != nil {
		return nil, err
	}

	op = logging.StartTimer(logger, "traversal complete", logging.Stage("bfs"), logging.NodeIndex(start))
	visits, err := algorithms.BFS(g, start)
	if err != nil {
		op.EndError(err)
		return nil, fmt.Errorf("traverse: %w", err)
	}
	p.metrics.RecordAlgorithm("bfs", op.End(logging.Count(len(visits))))
	size, err := algorithms.ComponentSize(g, start)
	if err != nil {
		return nil, fmt.Errorf("component size: %w", err)
	}
	p.metrics.RecordTraversal(size)
	for _, v := range visits {
		logger.Debug("visited", logging.Neighbourhood(v.Name), logging.Depth(v.Depth))
	}

	op = logging.StartTimer(logger, "centrality computed", logging.Stage("closeness"),
		logging.Policy(opts.Unreached.String()))
	scores, err := algorithms.ClosenessCentrality(g, algorithms.ClosenessOptions{Unreached: opts.Unreached})
	if err != nil {
		op.EndError(err)
		return nil, fmt.Errorf("closeness centrality: %w", err)
	}
	p.metrics.RecordAlgorithm("closeness", op.End(logging.Count(len(scores))))

	result := &Result{
		Summary:       summarize(g, in, groups, opts),
		Traversal:     visits,
		ComponentSize: size,
		Scores:        scores,
		Ranked:        algorithms.TopK(scores, opts.TopK),
		Policy:        opts.Unreached.String(),
		Groups:        groups,
	}
	if len(visits) > 0 {
		result.Start = visits[0].Name
	}
	return result, nil
}

// resolveStart maps a neighbourhood name to its node index using a temporary
// name index; the graph itself has no name lookup.
func resolveStart(g *graph.Graph, name string) (int, error) {
	if name == "" {
		return 0, nil
	}
	index := make(map[string]int, g.NodeCount())
	for i, n := range g.Nodes() {
		if _, seen := index[n.Name]; !seen {
			index[n.Name] = i
		}
	}
	idx, ok := index[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownNeighbourhood, name)
	}
	return idx, nil
}

func summarize(g *graph.Graph, in []listings.Listing, groups []aggregate.Group, opts Options) Summary {
	nodes := g.Nodes()
	edges := g.Edges()
	sample := min(opts.SampleSize, len(nodes))

	s := Summary{
		Listings:       len(in),
		Neighbourhoods: len(groups),
		NodeCount:      g.NodeCount(),
		EdgeCount:      g.EdgeCount(),
		Threshold:      opts.Threshold,
		SampleNodes:    nodes[:sample],
		SampleGroups:   groups[:min(sample, len(groups))],
		SampleEdges:    make([]EdgeView, 0, min(opts.SampleSize, len(edges))),
	}
	if len(in) > 0 {
		first := in[0]
		s.FirstListing = &first
	}
	for _, e := range edges[:min(opts.SampleSize, len(edges))] {
		s.SampleEdges = append(s.SampleEdges, EdgeView{
			Edge:       e,
			SourceName: nodes[e.Source].Name,
			TargetName: nodes[e.Target].Name,
		})
	}
	return s
}
