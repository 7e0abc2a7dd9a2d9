// Package model implements the entity/projection model graph.
//
// # Overview
//
// A [Model] is a tree of [Node] values stored in a [graphdb.Graph]. Each node
// has an identity (any value; its name is derived from it) and owns child
// nodes through OWNS relationships. A node also holds any number of
// [Projection] values through PROJECTIONS relationships: typed views of the
// entity, each backed by a [ProjectionSpec].
//
// A projection is backed either by an existing instance, configured
// immediately, or by a lazily-realized [container.NamedProvider], whose
// configuration is forwarded to the provider's own deferred mechanism.
//
//	m := model.New()
//	main, _ := m.Root().NewChildNode("main")
//	_, _ = main.NewProjection(func(b *model.ProjectionBuilder) {
//	    b.ForInstance(&SourceSet{Dirs: []string{"src/main"}})
//	})
//	v, _ := model.Get[*SourceSet](main)
//
// # Lifecycle
//
// Projections accumulate configuration until they are finalized.
// [ProjectionSpec.Finalize] queues an action that [ProjectionSpec.FinalizeProjection]
// replays in arrival order; once finalized, further Finalize calls behave
// like Configure. [ProjectionSpec.RealizeOnFinalize] forces the backing value
// when finalization happens, or immediately if it already happened.
//
// When a provided projection is realized, the projections of its owner and of
// every ancestor of the owner are realized too.
//
// # Self-mutation
//
// Providers created through a registry are wrapped by a [ProviderDecorator].
// The wrapper keeps its own FIFO queue of actions so that an action which,
// while running, configures the same element again does not run out of order.
// See [DecoratorFactory].
//
// # Child identity
//
// [Node.NewChildNode] rejects an identity that is already used by a sibling
// (DUPLICATE_CHILD). Callers that want get-or-create semantics use
// [Node.Find] first, which is what the dsl package does.
package model
