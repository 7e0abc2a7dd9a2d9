package container

import (
	"fmt"
	"reflect"

	"github.com/matzehuels/modelgraph/pkg/errors"
)

// Action configures an element value.
type Action func(v any) error

// ActionOf adapts a typed function to an [Action]. The returned action fails
// with TYPE_MISMATCH when it is applied to a value that is not a T.
func ActionOf[T any](fn func(T) error) Action {
	return func(v any) error {
		t, ok := v.(T)
		if !ok {
			return errors.New(errors.ErrCodeTypeMismatch,
				"action expects %s, got %T", reflect.TypeFor[T](), v)
		}
		return fn(t)
	}
}

// Func adapts a typed function that cannot fail to an [Action].
func Func[T any](fn func(T)) Action {
	return ActionOf(func(v T) error {
		fn(v)
		return nil
	})
}

// Chain returns an action running actions in order, stopping at the first
// error.
func Chain(actions ...Action) Action {
	return func(v any) error {
		for _, a := range actions {
			if err := a(v); err != nil {
				return err
			}
		}
		return nil
	}
}

// Named is implemented by values that carry a name.
type Named interface {
	Name() string
}

// Task is a named unit of executable work.
type Task interface {
	Named
	Execute() error
}

// PublicTyped is implemented by decorated or proxied values that want to be
// seen as another type. Registration boundaries call [PublicTypeOf] instead
// of [reflect.TypeOf] so wrappers never leak into inferred projection types.
type PublicTyped interface {
	PublicType() reflect.Type
}

// PublicTypeOf returns the user-visible type of v.
func PublicTypeOf(v any) reflect.Type {
	if p, ok := v.(PublicTyped); ok {
		if t := p.PublicType(); t != nil {
			return t
		}
	}
	return reflect.TypeOf(v)
}

// NameOf derives a display name for v: the name of a [Named], the string of
// a [fmt.Stringer], otherwise the default formatting.
func NameOf(v any) string {
	switch n := v.(type) {
	case Named:
		return n.Name()
	case fmt.Stringer:
		return n.String()
	case string:
		return n
	default:
		return fmt.Sprint(v)
	}
}

// TypeName returns a short printable name for t, "<nil>" for a nil type.
func TypeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}
