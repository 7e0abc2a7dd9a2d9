package model

import (
	"github.com/matzehuels/modelgraph/pkg/container"
	"github.com/matzehuels/modelgraph/pkg/observability"
)

// Bridge attaches the elements of c to n. Every element that becomes known
// gets a child node, identified by the element name, holding a provided
// projection. Elements registered through the model's registry while
// [container.Pass.Registering] marks them are skipped; whoever registered
// them attaches them.
//
// A child that already exists with the element's name receives the
// projection instead of a new sibling.
func (n *Node) Bridge(c *container.Container) error {
	m := n.model
	decorator := m.decorators.ForContainer(c)
	return c.WhenElementKnown(func(p container.NamedProvider) error {
		if m.pass.IsRegistering(container.KeyOf(p)) {
			return nil
		}
		child, ok := n.Find(p.Name())
		if !ok {
			var err error
			if child, err = n.NewChildNode(p.Name()); err != nil {
				return err
			}
		}
		decorated, err := decorator.Decorate(p)
		if err != nil {
			return err
		}
		if _, err := child.NewProjection(func(b *ProjectionBuilder) { b.ForProvider(decorated) }); err != nil {
			return err
		}
		m.logger.Debug("element bridged", "container", c.Name(), "name", p.Name(), "path", child.Path())
		observability.Registry().OnElementBridged(c.Name(), p.Name())
		return nil
	})
}
