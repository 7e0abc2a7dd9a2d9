package dsl

import (
	"reflect"

	"github.com/matzehuels/modelgraph/pkg/container"
	"github.com/matzehuels/modelgraph/pkg/model"
)

// Walk visits root and its descendants in pre-order, children in creation
// order. Returning false from fn skips the node's children.
func Walk(root *model.Node, fn func(*model.Node) bool) {
	if !fn(root) {
		return
	}
	for _, child := range root.ChildNodes() {
		Walk(child, fn)
	}
}

// ProjectionsOf returns every projection under root, root included, that
// can be viewed as t.
func ProjectionsOf(root *model.Node, t reflect.Type) []*model.Projection {
	var out []*model.Projection
	Walk(root, func(n *model.Node) bool {
		for _, p := range n.Projections() {
			if p.CanBeViewedAs(t) {
				out = append(out, p)
			}
		}
		return true
	})
	return out
}

// ProjectionsOfType returns the values of every projection under root
// viewable as T, realizing them.
func ProjectionsOfType[T any](root *model.Node) ([]T, error) {
	var out []T
	for _, p := range ProjectionsOf(root, reflect.TypeFor[T]()) {
		v, err := model.GetAs[T](p)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// ConfigureEach runs action on every projection under root, root included,
// that can be viewed as t: those that exist now and those created later.
// Actions are realization actions, so provided projections stay lazy.
func ConfigureEach(root *model.Node, t reflect.Type, action container.Action) error {
	return root.WhenProjectionKnown(func(p *model.Projection) error {
		if !p.CanBeViewedAs(t) {
			return nil
		}
		return p.WhenRealized(t, action)
	})
}

// ConfigureEachOf is [ConfigureEach] for projections viewable as T.
func ConfigureEachOf[T any](root *model.Node, fn func(T) error) error {
	return ConfigureEach(root, reflect.TypeFor[T](), container.ActionOf(fn))
}
