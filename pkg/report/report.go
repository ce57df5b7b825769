// Package report renders pipeline results for people (text) and machines
// (JSON). Sorting and truncation of scores already happened in the pipeline.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/dd0wney/cluso-neighbourhoods/pkg/algorithms"
	"github.com/dd0wney/cluso-neighbourhoods/pkg/pipeline"
)

// Section selects parts of a result to render.
type Section uint8

const (
	SectionSummary Section = 1 << iota
	SectionTraversal
	SectionCentrality

	SectionAll = SectionSummary | SectionTraversal | SectionCentrality
)

// Formats
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Write renders the selected sections of r to w in the given format.
func Write(w io.Writer, r *pipeline.Result, format string, sections Section) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, r, sections)
	case FormatText, "":
		return writeText(w, r, sections)
	default:
		return fmt.Errorf("unknown report format %q", format)
	}
}

type jsonReport struct {
	RunID         string             `json:"run_id,omitempty"`
	Summary       *pipeline.Summary  `json:"summary,omitempty"`
	Start         string             `json:"start,omitempty"`
	Traversal     []algorithms.Visit `json:"traversal,omitempty"`
	ComponentSize *int               `json:"component_size,omitempty"`
	Policy        string             `json:"unreached_policy,omitempty"`
	Centrality    []algorithms.Score `json:"centrality,omitempty"`
}

func writeJSON(w io.Writer, r *pipeline.Result, sections Section) error {
	out := jsonReport{RunID: r.RunID}
	if sections&SectionSummary != 0 {
		out.Summary = &r.Summary
	}
	if sections&SectionTraversal != 0 {
		out.Start = r.Start
		out.Traversal = r.Traversal
		out.ComponentSize = &r.ComponentSize
	}
	if sections&SectionCentrality != 0 {
		out.Policy = r.Policy
		out.Centrality = r.Ranked
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// FormatScore prints a score with the shortest single-precision representation.
func FormatScore(s float32) string {
	return strconv.FormatFloat(float64(s), 'f', -1, 32)
}
