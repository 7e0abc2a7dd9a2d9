package container

import (
	"fmt"
	"reflect"
	"slices"
)

// Key identifies an element by name and registered type.
type Key struct {
	Name string
	Type reflect.Type
}

// KeyOf returns the key of p.
func KeyOf(p NamedProvider) Key {
	return Key{Name: p.Name(), Type: p.Type()}
}

// String formats the key as "name (type)".
func (k Key) String() string {
	return fmt.Sprintf("%s (%s)", k.Name, TypeName(k.Type))
}

// Pass is the explicit context of a single configuration pass.
//
// The zero value is ready to use.
type Pass struct {
	configuring []Key
	registering []Key
}

// NewPass returns an empty pass.
func NewPass() *Pass { return &Pass{} }

// Configuring runs fn with key pushed on the breadcrumb trail.
func (p *Pass) Configuring(key Key, fn func() error) error {
	p.configuring = append(p.configuring, key)
	defer func() { p.configuring = p.configuring[:len(p.configuring)-1] }()
	return fn()
}

// IsConfiguring reports whether key is on the breadcrumb trail.
func (p *Pass) IsConfiguring(key Key) bool {
	return slices.Contains(p.configuring, key)
}

// Breadcrumbs returns the keys currently being configured, outermost first.
func (p *Pass) Breadcrumbs() []Key {
	return slices.Clone(p.configuring)
}

// Registering runs fn with key marked as being registered.
func (p *Pass) Registering(key Key, fn func() error) error {
	p.registering = append(p.registering, key)
	defer func() { p.registering = p.registering[:len(p.registering)-1] }()
	return fn()
}

// IsRegistering reports whether key is currently being registered.
func (p *Pass) IsRegistering(key Key) bool {
	return slices.Contains(p.registering, key)
}

// FormatBreadcrumbs renders keys as "a (T) > b (U)".
func FormatBreadcrumbs(keys []Key) string {
	if len(keys) == 0 {
		return "<none>"
	}
	s := ""
	for i, k := range keys {
		if i > 0 {
			s += " > "
		}
		s += k.String()
	}
	return s
}
