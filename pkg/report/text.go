package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/dd0wney/cluso-neighbourhoods/pkg/listings"
	"github.com/dd0wney/cluso-neighbourhoods/pkg/pipeline"
)

// styles are bound to a renderer so colour support follows the destination
// writer rather than the process stdout.
type styles struct {
	title lipgloss.Style
	label lipgloss.Style
	value lipgloss.Style
	muted lipgloss.Style
	cell  lipgloss.Style
	head  lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		title: r.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF00FF")),
		label: r.NewStyle().Foreground(lipgloss.Color("#00FFFF")),
		value: r.NewStyle().Bold(true),
		muted: r.NewStyle().Foreground(lipgloss.Color("#888888")),
		cell:  r.NewStyle().Padding(0, 1),
		head:  r.NewStyle().Padding(0, 1).Bold(true).Foreground(lipgloss.Color("#00FF00")),
	}
}

func writeText(w io.Writer, r *pipeline.Result, sections Section) error {
	st := newStyles(w)
	var b strings.Builder

	if sections&SectionSummary != 0 {
		writeSummary(&b, st, r)
	}
	if sections&SectionTraversal != 0 {
		writeTraversal(&b, st, r)
	}
	if sections&SectionCentrality != 0 {
		writeCentrality(&b, st, r)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func (st styles) newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(st.muted).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return st.head
			}
			return st.cell
		}).
		Headers(headers...)
}

func kv(b *strings.Builder, st styles, label string, value any) {
	fmt.Fprintf(b, "  %s %s\n", st.label.Render(label+":"), st.value.Render(fmt.Sprint(value)))
}

func writeSummary(b *strings.Builder, st styles, r *pipeline.Result) {
	s := r.Summary

	b.WriteString(st.title.Render("Graph summary") + "\n")
	kv(b, st, "Listings", s.Listings)
	kv(b, st, "Neighbourhoods", s.Neighbourhoods)
	kv(b, st, "Nodes", s.NodeCount)
	kv(b, st, "Edges", s.EdgeCount)
	kv(b, st, "Threshold", FormatScore(s.Threshold))

	if l := s.FirstListing; l != nil {
		kv(b, st, "First listing", formatListing(l))
	}

	if len(s.SampleNodes) > 0 {
		t := st.newTable("#", "Neighbourhood", "Borough", "Listings", "Avg price", "Std dev")
		for i, n := range s.SampleNodes {
			borough, count, stddev := "", "", ""
			if i < len(s.SampleGroups) {
				grp := s.SampleGroups[i]
				borough = grp.Borough
				count = strconv.Itoa(grp.Count)
				stddev = strconv.FormatFloat(grp.StdDev, 'f', 2, 64)
			}
			t.Row(strconv.Itoa(i), n.Name, borough, count, FormatScore(n.AvgPrice), stddev)
		}
		b.WriteString(st.muted.Render(fmt.Sprintf("First %d nodes", len(s.SampleNodes))) + "\n")
		b.WriteString(t.Render() + "\n")
	}

	if len(s.SampleEdges) > 0 {
		t := st.newTable("Source", "Target")
		for _, e := range s.SampleEdges {
			t.Row(
				fmt.Sprintf("%s (%d)", e.SourceName, e.Source),
				fmt.Sprintf("%s (%d)", e.TargetName, e.Target),
			)
		}
		b.WriteString(st.muted.Render(fmt.Sprintf("First %d edges", len(s.SampleEdges))) + "\n")
		b.WriteString(t.Render() + "\n")
	}
	b.WriteString("\n")
}

func formatListing(l *listings.Listing) string {
	parts := []string{l.Neighbourhood}
	if l.NeighbourhoodGroup != "" {
		parts[0] += " (" + l.NeighbourhoodGroup + ")"
	}
	if l.RoomType != "" {
		parts = append(parts, l.RoomType)
	}
	parts = append(parts, "$"+strconv.FormatFloat(l.Price, 'f', -1, 64))
	return strings.Join(parts, ", ")
}

func writeTraversal(b *strings.Builder, st styles, r *pipeline.Result) {
	b.WriteString(st.title.Render("Breadth-first traversal") + "\n")
	if len(r.Traversal) == 0 {
		b.WriteString(st.muted.Render("  graph is empty") + "\n\n")
		return
	}

	kv(b, st, "Start", r.Start)
	kv(b, st, "Reached", r.ComponentSize)

	t := st.newTable("Step", "Neighbourhood", "Depth")
	for i, v := range r.Traversal {
		t.Row(strconv.Itoa(i+1), v.Name, strconv.Itoa(v.Depth))
	}
	b.WriteString(t.Render() + "\n\n")
}

func writeCentrality(b *strings.Builder, st styles, r *pipeline.Result) {
	b.WriteString(st.title.Render(fmt.Sprintf("Top %d neighbourhoods by closeness centrality", len(r.Ranked))) + "\n")
	kv(b, st, "Unreached policy", r.Policy)

	t := st.newTable("Rank", "Neighbourhood", "Score", "Total distance")
	for i, s := range r.Ranked {
		t.Row(strconv.Itoa(i+1), s.Name, FormatScore(s.Score), strconv.FormatUint(s.TotalDistance, 10))
	}
	b.WriteString(t.Render() + "\n")
}
