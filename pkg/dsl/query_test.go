package dsl

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/modelgraph/pkg/model"
)

func buildTree(t *testing.T) *model.Model {
	t.Helper()
	m, _ := newModel()
	root := Of(m.Root())
	for _, path := range [][]string{{"main", "debug"}, {"main", "release"}, {"test"}} {
		n := root
		for _, name := range path {
			var err error
			if n, err = n.Node(name); err != nil {
				t.Fatal(err)
			}
		}
		if _, err := n.Projection(sourceSetType); err != nil {
			t.Fatal(err)
		}
	}
	return m
}

func TestWalk(t *testing.T) {
	m := buildTree(t)

	var paths []string
	Walk(m.Root(), func(n *model.Node) bool {
		paths = append(paths, n.Path())
		return true
	})
	want := []string{"", "main", "main.debug", "main.release", "test"}
	if diff := cmp.Diff(want, paths); diff != "" {
		t.Errorf("Walk mismatch (-want +got):\n%s", diff)
	}

	paths = nil
	Walk(m.Root(), func(n *model.Node) bool {
		paths = append(paths, n.Path())
		return n.Name() != "main"
	})
	want = []string{"", "main", "test"}
	if diff := cmp.Diff(want, paths); diff != "" {
		t.Errorf("pruned Walk mismatch (-want +got):\n%s", diff)
	}
}

func TestProjectionsOfType(t *testing.T) {
	m := buildTree(t)
	main, _ := m.Root().FindNamed("main")

	if got := len(ProjectionsOf(m.Root(), sourceSetType)); got != 3 {
		t.Errorf("ProjectionsOf(root) = %d projections, want 3", got)
	}

	sets, err := ProjectionsOfType[*sourceSet](main)
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, s := range sets {
		names = append(names, s.name)
	}
	if diff := cmp.Diff([]string{"mainDebug", "mainRelease"}, names); diff != "" {
		t.Errorf("names mismatch (-want +got):\n%s", diff)
	}
}

func TestConfigureEach(t *testing.T) {
	m := buildTree(t)
	main, _ := Of(m.Root()).Node("main")

	var configured []string
	err := ConfigureEachOf(main.Model(), func(s *sourceSet) error {
		configured = append(configured, s.name)
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := ConfigureEachOf(m.Root(), func(string) error {
		t.Error("action ran for a projection not viewable as string")
		return nil
	}); err != nil {
		t.Fatal(err)
	}

	// created after the rule, inside and outside its subtree
	if _, err := main.NodeWithProjection("profile", sourceSetType); err != nil {
		t.Fatal(err)
	}
	if _, err := Of(m.Root()).NodeWithProjection("bench", sourceSetType); err != nil {
		t.Fatal(err)
	}
	if len(configured) != 0 {
		t.Fatalf("actions ran before realization: %v", configured)
	}

	if err := m.RealizeAll(); err != nil {
		t.Fatal(err)
	}
	want := []string{"mainDebug", "mainRelease", "mainProfile"}
	if diff := cmp.Diff(want, configured); diff != "" {
		t.Errorf("configured mismatch (-want +got):\n%s", diff)
	}
}
