package model

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/modelgraph/pkg/container"
)

func childNames(n *Node) []string {
	var names []string
	for _, c := range n.ChildNodes() {
		names = append(names, c.Name())
	}
	return names
}

func TestBridge(t *testing.T) {
	c := newSourceSets()
	m, reg := newTestModel(c)
	_, _ = c.Register("main", sourceSetType)

	if err := m.Root().Bridge(c); err != nil {
		t.Fatal(err)
	}
	_, _ = c.Register("test", sourceSetType)

	if diff := cmp.Diff([]string{"main", "test"}, childNames(m.Root())); diff != "" {
		t.Errorf("children mismatch (-want +got):\n%s", diff)
	}
	main, _ := m.Root().Child("main")
	s, err := Get[*sourceSet](main)
	if err != nil {
		t.Fatal(err)
	}
	if s.name != "main" {
		t.Errorf("bridged value name = %q", s.name)
	}

	// registered through the registry: skipped by the bridge
	if _, err := reg.RegisterIfAbsent("fixtures", sourceSetType); err != nil {
		t.Fatal(err)
	}
	if _, ok := m.Root().Find("fixtures"); ok {
		t.Error("element registered through the registry was bridged")
	}
}

func TestBridgeReusesExistingChild(t *testing.T) {
	c := newSourceSets()
	m := New()
	existing, _ := m.Root().NewChildNode("main")
	if err := m.Root().Bridge(c); err != nil {
		t.Fatal(err)
	}
	_, _ = c.Register("main", sourceSetType)

	if len(m.Root().ChildNodes()) != 1 {
		t.Errorf("children = %v, want only main", childNames(m.Root()))
	}
	if len(existing.Projections()) != 1 {
		t.Errorf("existing node has %d projections, want 1", len(existing.Projections()))
	}
}

func TestBridgedElementsAreDecorated(t *testing.T) {
	c := newSourceSets()
	m := New()
	_ = m.Root().Bridge(c)
	_, _ = c.Register("main", sourceSetType)

	main, _ := m.Root().Child("main")
	var order []string
	proj := main.Projections()[0]
	_ = proj.Configure(func(any) error {
		order = append(order, "A1")
		return proj.Configure(recorder(&order, "A2"))
	})
	if err := proj.Realize(); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"A1", "A2"}, order); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
	if _, ok := proj.Spec().Provider().(container.NamedProvider); !ok {
		t.Error("bridged projection has no named provider")
	}
}
