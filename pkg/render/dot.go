package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/matzehuels/modelgraph/pkg/container"
	"github.com/matzehuels/modelgraph/pkg/model"
)

// Options configures diagram generation.
type Options struct {
	// Projections adds a shape per projection.
	Projections bool

	// Detailed lists projection types and states in node labels.
	Detailed bool
}

// ToDOT converts a model to Graphviz DOT source. Nodes and projections are
// emitted in creation order, so models built the same way give equal
// output.
func ToDOT(m *model.Model, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph model {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	nodes := m.Nodes()
	for _, n := range nodes {
		fmt.Fprintf(&buf, "  %s [label=%q];\n", nodeID(n), nodeLabel(n, opts.Detailed))
		if !opts.Projections {
			continue
		}
		for _, p := range n.Projections() {
			fmt.Fprintf(&buf, "  %s [%s];\n", projectionID(p), strings.Join(projectionAttrs(p), ", "))
		}
	}

	buf.WriteString("\n")
	for _, n := range nodes {
		for _, child := range n.ChildNodes() {
			fmt.Fprintf(&buf, "  %s -> %s;\n", nodeID(n), nodeID(child))
		}
		if !opts.Projections {
			continue
		}
		for _, p := range n.Projections() {
			fmt.Fprintf(&buf, "  %s -> %s [style=dashed, arrowhead=none];\n", nodeID(n), projectionID(p))
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeID(n *model.Node) string { return fmt.Sprintf("n%d", n.ID()) }

func projectionID(p *model.Projection) string { return fmt.Sprintf("p%d", p.ID()) }

func nodeLabel(n *model.Node, detailed bool) string {
	label := n.String()
	if !n.IsRoot() {
		label = n.Name()
	}
	if !detailed {
		return label
	}
	parts := []string{label}
	for _, p := range n.Projections() {
		parts = append(parts, fmt.Sprintf("%s (%s)", container.TypeName(p.Type()), State(p)))
	}
	return strings.Join(parts, "\n")
}

func projectionAttrs(p *model.Projection) []string {
	attrs := []string{
		fmt.Sprintf("label=%q", container.TypeName(p.Type())),
		"shape=ellipse",
	}
	var styles []string
	switch {
	case p.IsRealized():
		styles = append(styles, "filled")
		attrs = append(attrs, "fillcolor=lightgrey")
	case p.Spec().IsProvided():
		styles = append(styles, "dashed")
	}
	if p.Spec().IsFinalized() {
		styles = append(styles, "bold")
	}
	if len(styles) > 0 {
		attrs = append(attrs, fmt.Sprintf("style=%q", strings.Join(styles, ",")))
	} else {
		attrs = append(attrs, "style=solid")
	}
	return attrs
}

// State summarizes a projection's lifecycle as "realized", "finalized",
// "realized, finalized" or "pending".
func State(p *model.Projection) string {
	var states []string
	if p.IsRealized() {
		states = append(states, "realized")
	}
	if p.Spec().IsFinalized() {
		states = append(states, "finalized")
	}
	if len(states) == 0 {
		return "pending"
	}
	return strings.Join(states, ", ")
}
