package model_test

import (
	"fmt"
	"reflect"

	"github.com/matzehuels/modelgraph/pkg/container"
	"github.com/matzehuels/modelgraph/pkg/model"
)

type SourceSet struct {
	Dirs []string
}

func ExampleNode_NewProjection() {
	m := model.New()
	main, _ := m.Root().NewChildNode("main")
	_, _ = main.NewProjection(func(b *model.ProjectionBuilder) {
		b.ForInstance(&SourceSet{Dirs: []string{"src/main/go"}})
	})

	s, _ := model.Get[*SourceSet](main)
	fmt.Println("path:", main.Path())
	fmt.Println("dirs:", s.Dirs)
	fmt.Println("viewable as string:", main.CanBeViewedAs(reflect.TypeFor[string]()))
	// Output:
	// path: main
	// dirs: [src/main/go]
	// viewable as string: false
}

func ExampleProjection_WhenFinalized() {
	m := model.New()
	p, _ := m.Root().NewProjection(func(b *model.ProjectionBuilder) {
		b.ForInstance(&SourceSet{})
	})

	_ = p.WhenFinalized(container.Func(func(s *SourceSet) {
		fmt.Println("first")
	}))
	_ = p.WhenFinalized(container.Func(func(s *SourceSet) {
		fmt.Println("second")
	}))
	fmt.Println("finalizing")
	_ = p.FinalizeProjection()
	_ = p.WhenFinalized(container.Func(func(s *SourceSet) {
		fmt.Println("immediate")
	}))
	// Output:
	// finalizing
	// first
	// second
	// immediate
}
