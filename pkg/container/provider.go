package container

import (
	"reflect"

	"github.com/matzehuels/modelgraph/pkg/errors"
)

// Provider supplies a value that may be computed lazily.
type Provider interface {
	// Get returns the value, computing it on first use.
	Get() (any, error)
	// IsPresent reports whether Get would return a value.
	IsPresent() bool
}

// NamedProvider is a [Provider] for a named element of a [Container].
type NamedProvider interface {
	Provider
	// Name returns the element name.
	Name() string
	// Type returns the type the element was registered with.
	Type() reflect.Type
	// Configure runs action on the element value: immediately when the
	// value already exists, otherwise when it is realized.
	Configure(action Action) error
	// IsRealized reports whether the value has been created.
	IsRealized() bool
}

// ProviderType is the reflect type of [Provider]. Any type implementing it
// is a provider-like wrapper type.
var ProviderType = reflect.TypeFor[Provider]()

// NamedProviderType is the reflect type of [NamedProvider].
var NamedProviderType = reflect.TypeFor[NamedProvider]()

type fixed struct{ value any }

// Fixed returns a provider that always supplies v.
func Fixed(v any) Provider { return fixed{value: v} }

func (p fixed) Get() (any, error) { return p.value, nil }
func (p fixed) IsPresent() bool   { return true }

type absent struct{}

// Absent returns a provider with no value. Get fails with NOT_FOUND.
func Absent() Provider { return absent{} }

func (absent) Get() (any, error) {
	return nil, errors.New(errors.ErrCodeNotFound, "provider has no value")
}
func (absent) IsPresent() bool { return false }
