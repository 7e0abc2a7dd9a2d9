package render

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/modelgraph/pkg/container"
	"github.com/matzehuels/modelgraph/pkg/model"
)

type sourceSet struct{ name string }

func newModel(t *testing.T) (*model.Model, *model.Projection, *model.Projection) {
	t.Helper()
	c := container.New("sourceSets", nil,
		container.WithFactory(container.PublicTypeOf(&sourceSet{}), func(name string) (any, error) {
			return &sourceSet{name: name}, nil
		}))
	m := model.New()
	main, _ := m.Root().NewChildNode("main")
	debug, _ := main.NewChildNode("debug")
	provider, _ := c.Register("mainDebug", container.PublicTypeOf(&sourceSet{}))

	existing, err := main.NewProjection(func(b *model.ProjectionBuilder) { b.ForInstance(&sourceSet{name: "main"}) })
	if err != nil {
		t.Fatal(err)
	}
	provided, err := debug.NewProjection(func(b *model.ProjectionBuilder) { b.ForProvider(provider) })
	if err != nil {
		t.Fatal(err)
	}
	return m, existing, provided
}

func TestToDOT(t *testing.T) {
	m, existing, provided := newModel(t)
	dot := ToDOT(m, Options{Projections: true})

	for _, want := range []string{
		"digraph model {",
		`n0 [label="<root>"];`,
		`n1 [label="main"];`,
		"n0 -> n1;",
		"n1 -> n2;",
		"n1 -> " + projectionID(existing) + " [style=dashed, arrowhead=none];",
		projectionID(existing) + ` [label="*render.sourceSet", shape=ellipse, fillcolor=lightgrey, style="filled"];`,
		projectionID(provided) + ` [label="*render.sourceSet", shape=ellipse, style="dashed"];`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}

	if strings.Contains(ToDOT(m, Options{}), "shape=ellipse") {
		t.Error("projections drawn without Options.Projections")
	}
}

func TestToDOTDetailed(t *testing.T) {
	m, existing, _ := newModel(t)
	_ = existing.FinalizeProjection()

	dot := ToDOT(m, Options{Detailed: true})
	if !strings.Contains(dot, `label="main\n*render.sourceSet (realized, finalized)"`) {
		t.Errorf("detailed label missing:\n%s", dot)
	}
	if !strings.Contains(dot, `label="debug\n*render.sourceSet (pending)"`) {
		t.Errorf("pending label missing:\n%s", dot)
	}
}

func TestToDOTIsDeterministic(t *testing.T) {
	m, _, _ := newModel(t)
	other, _, _ := newModel(t)
	opts := Options{Projections: true, Detailed: true}
	if ToDOT(m, opts) != ToDOT(m, opts) {
		t.Error("ToDOT output differs between calls")
	}
	if ToDOT(m, opts) != ToDOT(other, opts) {
		t.Errorf("equal models render differently:\n%s\n%s", ToDOT(m, opts), ToDOT(other, opts))
	}
}

func TestState(t *testing.T) {
	_, existing, provided := newModel(t)
	if got := State(provided); got != "pending" {
		t.Errorf("State(provided) = %q", got)
	}
	if got := State(existing); got != "realized" {
		t.Errorf("State(existing) = %q", got)
	}
	_ = provided.FinalizeProjection()
	if got := State(provided); got != "finalized" {
		t.Errorf("State(finalized) = %q", got)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00" xmlns="x"><g/></svg>`)
	out := normalizeViewBox(in)
	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100.00 50.00" width="100" height="50"><g/></svg>`
	if string(out) != want {
		t.Errorf("normalizeViewBox() = %s", out)
	}

	plain := []byte(`<svg><g/></svg>`)
	if !bytes.Equal(normalizeViewBox(plain), plain) {
		t.Error("svg without viewBox modified")
	}
}

func TestRenderSVG(t *testing.T) {
	m, _, _ := newModel(t)
	svg, err := RenderSVG(context.Background(), ToDOT(m, Options{Projections: true}))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(svg, []byte("<svg")) {
		t.Errorf("output is not SVG: %.80s", svg)
	}
}

func TestConvertRejectsFormat(t *testing.T) {
	if _, err := Convert(context.Background(), nil, Format("gif"), 1); err == nil {
		t.Error("Convert(gif) succeeded")
	}
}
