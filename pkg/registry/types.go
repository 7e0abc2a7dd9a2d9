package registry

import (
	"reflect"
	"slices"

	"github.com/matzehuels/modelgraph/pkg/container"
)

// SupportedType describes types a registry accepts.
type SupportedType struct {
	typ     reflect.Type
	subtype bool
}

// InstanceOf accepts exactly t.
func InstanceOf(t reflect.Type) SupportedType { return SupportedType{typ: t} }

// SubtypeOf accepts t and every type assignable to it.
func SubtypeOf(t reflect.Type) SupportedType { return SupportedType{typ: t, subtype: true} }

// Type returns the described type.
func (s SupportedType) Type() reflect.Type { return s.typ }

// Supports reports whether t is accepted.
func (s SupportedType) Supports(t reflect.Type) bool {
	if t == nil || s.typ == nil {
		return false
	}
	if s.subtype {
		return t.AssignableTo(s.typ)
	}
	return t == s.typ
}

func (s SupportedType) String() string {
	if s.subtype {
		return "subtypes of " + container.TypeName(s.typ)
	}
	return "instances of " + container.TypeName(s.typ)
}

// RegistrableTypes is the set of types a registry accepts.
type RegistrableTypes []SupportedType

// CanRegisterType reports whether any entry supports t.
func (r RegistrableTypes) CanRegisterType(t reflect.Type) bool {
	for _, s := range r {
		if s.Supports(t) {
			return true
		}
	}
	return false
}

// Strings returns the entries as sorted display strings.
func (r RegistrableTypes) Strings() []string {
	out := make([]string, len(r))
	for i, s := range r {
		out[i] = s.String()
	}
	slices.Sort(out)
	return out
}
