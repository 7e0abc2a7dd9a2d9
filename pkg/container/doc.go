// Package container provides named, lazily-realized element containers.
//
// # Overview
//
// A [Container] holds elements addressed by name. Elements are usually
// registered lazily: [Container.Register] records the name, the requested
// type and any configuration actions, and returns a [NamedProvider]. The
// element value is only created, by the container's [Factory] for that type,
// when something calls [Provider.Get] on it.
//
// Realization follows a fixed order:
//
//  1. The factory creates the value and the container stores it.
//  2. Actions added through [Container.ConfigureEach] run.
//  3. Actions added through [NamedProvider.Configure] run, first in, first out.
//
// Steps 2 and 3 run with the container's [Guard] disallowing mutation.
// Configuring or registering elements of the same container from inside one
// of those actions fails with MUTATION_NOT_ALLOWED, unless the caller
// explicitly re-enables mutation with [Guard.WithMutationEnabled].
//
// Once an element value exists, [NamedProvider.Configure] runs the action
// immediately instead of queueing it. Code that re-enters configuration of an
// element from inside its own realization therefore sees its action run out
// of order. The model package builds its self-mutation decorator on top of
// that behavior.
//
// # Configuration Pass
//
// A [Pass] is the explicit context of one configuration pass. It tracks
// which element keys are currently being configured (the breadcrumb trail)
// and which are currently being registered through a registry facade. It is
// passed down to every component instead of living in goroutine-local state.
//
// # Concurrency
//
// Containers, guards and passes are not safe for concurrent use. A
// configuration pass runs on a single goroutine; "re-entrancy" here means
// call-stack re-entrancy, not parallelism.
package container
