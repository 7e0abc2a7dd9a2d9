package container

import (
	"reflect"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/modelgraph/pkg/errors"
)

type decorated struct{ inner *sourceSet }

func (decorated) PublicType() reflect.Type { return sourceSetType }

type label string

func (l label) String() string { return "label:" + string(l) }

func TestPassConfiguring(t *testing.T) {
	p := NewPass()
	a := Key{Name: "a", Type: sourceSetType}
	b := Key{Name: "b", Type: sourceSetType}

	err := p.Configuring(a, func() error {
		if !p.IsConfiguring(a) {
			t.Error("a not configuring inside Configuring(a)")
		}
		return p.Configuring(b, func() error {
			if diff := cmp.Diff([]Key{a, b}, p.Breadcrumbs(), cmp.Comparer(func(x, y Key) bool { return x == y })); diff != "" {
				t.Errorf("breadcrumbs mismatch (-want +got):\n%s", diff)
			}
			return nil
		})
	})
	if err != nil {
		t.Fatal(err)
	}
	if p.IsConfiguring(a) || len(p.Breadcrumbs()) != 0 {
		t.Error("breadcrumbs not popped")
	}
}

func TestPassRegistering(t *testing.T) {
	var p Pass
	k := Key{Name: "main", Type: sourceSetType}
	_ = p.Registering(k, func() error {
		if !p.IsRegistering(k) {
			t.Error("IsRegistering false inside Registering")
		}
		if p.IsRegistering(Key{Name: "main", Type: reflect.TypeFor[string]()}) {
			t.Error("key with other type reported registering")
		}
		return nil
	})
	if p.IsRegistering(k) {
		t.Error("registering key not popped")
	}
}

func TestPassPopsOnError(t *testing.T) {
	p := NewPass()
	k := Key{Name: "main", Type: sourceSetType}
	err := p.Configuring(k, func() error { return errors.New(errors.ErrCodeInternal, "fail") })
	if err == nil || p.IsConfiguring(k) {
		t.Errorf("err = %v, still configuring %v", err, p.IsConfiguring(k))
	}
}

func TestFormatBreadcrumbs(t *testing.T) {
	got := FormatBreadcrumbs([]Key{{Name: "main", Type: sourceSetType}, {Name: "test", Type: sourceSetType}})
	want := "main (*container.sourceSet) > test (*container.sourceSet)"
	if got != want {
		t.Errorf("FormatBreadcrumbs() = %q, want %q", got, want)
	}
	if FormatBreadcrumbs(nil) != "<none>" {
		t.Error("empty breadcrumbs not <none>")
	}
}

func TestGuard(t *testing.T) {
	var g Guard
	if !g.IsMutationAllowed() {
		t.Fatal("zero guard disallows mutation")
	}
	_ = g.WithMutationDisallowed(func() error {
		if err := g.AssertMutationAllowed("Register", "container 'x'"); !errors.Is(err, errors.ErrCodeMutationNotAllowed) {
			t.Errorf("AssertMutationAllowed() = %v", err)
		}
		return g.WithMutationEnabled(func() error {
			if !g.IsMutationAllowed() {
				t.Error("WithMutationEnabled did not enable")
			}
			return nil
		})
	})
	if !g.IsMutationAllowed() {
		t.Error("guard not restored")
	}
}

func TestActionOf(t *testing.T) {
	var got string
	a := ActionOf(func(s *sourceSet) error {
		got = s.name
		return nil
	})
	if err := a(&sourceSet{name: "main"}); err != nil || got != "main" {
		t.Errorf("ActionOf applied: %q, %v", got, err)
	}
	if err := a("wrong"); !errors.Is(err, errors.ErrCodeTypeMismatch) {
		t.Errorf("ActionOf(wrong type) error = %v", err)
	}
	err := Chain(a, func(any) error { return errors.New(errors.ErrCodeInternal, "stop") })(&sourceSet{})
	if !errors.Is(err, errors.ErrCodeInternal) {
		t.Errorf("Chain error = %v", err)
	}
}

func TestPublicTypeOfAndNameOf(t *testing.T) {
	if got := PublicTypeOf(decorated{}); got != sourceSetType {
		t.Errorf("PublicTypeOf(decorated) = %v", got)
	}
	if got := PublicTypeOf(3); got != reflect.TypeFor[int]() {
		t.Errorf("PublicTypeOf(3) = %v", got)
	}

	tests := []struct {
		in   any
		want string
	}{
		{&sourceSet{name: "main"}, "main"},
		{label("x"), "label:x"},
		{"plain", "plain"},
		{42, "42"},
	}
	for _, tt := range tests {
		if got := NameOf(tt.in); got != tt.want {
			t.Errorf("NameOf(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
	if !strings.Contains(Key{Name: "x"}.String(), "<nil>") {
		t.Error("Key with nil type should print <nil>")
	}
}
