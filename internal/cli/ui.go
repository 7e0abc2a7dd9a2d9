package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/tree"

	"github.com/matzehuels/modelgraph/pkg/container"
	"github.com/matzehuels/modelgraph/pkg/model"
	"github.com/matzehuels/modelgraph/pkg/render"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary
	colorGreen  = lipgloss.Color("35")  // Green - success, realized
	colorYellow = lipgloss.Color("220") // Amber - warnings, pending
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)

	styleNode     = lipgloss.NewStyle().Bold(true).Foreground(colorWhite)
	styleRealized = lipgloss.NewStyle().Foreground(colorGreen)
	stylePending  = lipgloss.NewStyle().Foreground(colorYellow)
	styleBranch   = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconInfo    = "›"
	iconArrow   = "→"
)

// =============================================================================
// Status Output
// =============================================================================

func (c *CLI) printSuccess(format string, args ...any) {
	fmt.Fprintln(c.Out, styleIconSuccess.Render(iconSuccess)+" "+fmt.Sprintf(format, args...))
}

func (c *CLI) printError(format string, args ...any) {
	fmt.Fprintln(c.Out, styleIconError.Render(iconError)+" "+fmt.Sprintf(format, args...))
}

func (c *CLI) printInfo(format string, args ...any) {
	fmt.Fprintln(c.Out, styleIconInfo.Render(iconInfo)+" "+fmt.Sprintf(format, args...))
}

// printFile prints a file output line.
func (c *CLI) printFile(path string) {
	fmt.Fprintln(c.Out, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(path))
}

// printKeyValue prints a labeled value.
func (c *CLI) printKeyValue(key, value string) {
	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(14)
	fmt.Fprintln(c.Out, keyStyle.Render(key)+" "+StyleValue.Render(value))
}

// =============================================================================
// Model Output
// =============================================================================

// modelStats counts what a model holds.
type modelStats struct {
	nodes, projections, provided, realized, finalized int
}

func statsOf(m *model.Model) modelStats {
	s := modelStats{nodes: len(m.Nodes())}
	for _, p := range m.Projections() {
		s.projections++
		if p.Spec().IsProvided() {
			s.provided++
		}
		if p.IsRealized() {
			s.realized++
		}
		if p.Spec().IsFinalized() {
			s.finalized++
		}
	}
	return s
}

// printStats prints model statistics on a single line.
func (c *CLI) printStats(s modelStats) {
	parts := []string{
		fmt.Sprintf("%d nodes", s.nodes),
		fmt.Sprintf("%d projections", s.projections),
		fmt.Sprintf("%d provided", s.provided),
		styleRealized.Render(fmt.Sprintf("%d realized", s.realized)),
		fmt.Sprintf("%d finalized", s.finalized),
	}
	fmt.Fprintln(c.Out, "  "+strings.Join(parts, StyleDim.Render(" · ")))
}

// modelTree renders the node tree with each node's projections.
func modelTree(m *model.Model) *tree.Tree {
	return nodeTree(m.Root()).
		Enumerator(tree.RoundedEnumerator).
		EnumeratorStyle(styleBranch)
}

func nodeTree(n *model.Node) *tree.Tree {
	t := tree.Root(styleNode.Render(n.String()))
	for _, p := range n.Projections() {
		t.Child(projectionLine(p))
	}
	for _, child := range n.ChildNodes() {
		t.Child(nodeTree(child))
	}
	return t
}

func projectionLine(p *model.Projection) string {
	state := render.State(p)
	style := stylePending
	if p.IsRealized() {
		style = styleRealized
	}
	kind := "existing"
	if p.Spec().IsProvided() {
		kind = "provided"
	}
	return StyleValue.Render(container.TypeName(p.Type())) + " " +
		StyleDim.Render(kind) + " " + style.Render("["+state+"]")
}
