package container

import "github.com/matzehuels/modelgraph/pkg/errors"

// Guard tracks whether a container may currently be mutated.
//
// The zero value allows mutation.
type Guard struct {
	disallowed bool
}

// IsMutationAllowed reports whether mutation is currently allowed.
func (g *Guard) IsMutationAllowed() bool { return !g.disallowed }

// WithMutationDisallowed runs fn with mutation disallowed, restoring the
// previous state afterwards.
func (g *Guard) WithMutationDisallowed(fn func() error) error {
	return g.with(true, fn)
}

// WithMutationEnabled runs fn with mutation allowed, restoring the previous
// state afterwards.
func (g *Guard) WithMutationEnabled(fn func() error) error {
	return g.with(false, fn)
}

func (g *Guard) with(disallowed bool, fn func() error) error {
	prev := g.disallowed
	g.disallowed = disallowed
	defer func() { g.disallowed = prev }()
	return fn()
}

// AssertMutationAllowed returns MUTATION_NOT_ALLOWED when mutation is
// disallowed. method names the rejected call and target its receiver.
func (g *Guard) AssertMutationAllowed(method, target string) error {
	if g.disallowed {
		return errors.New(errors.ErrCodeMutationNotAllowed,
			"%s on %s cannot be executed in the current context", method, target)
	}
	return nil
}
