// Package registry routes "register an element named N of type T" requests
// to the container able to create T.
//
// # Overview
//
// A [ContainerRegistry] wraps one [container.Container] and declares the
// types it accepts as a list of [SupportedType] values. Four kinds exist:
//
//   - [NewNamedContainerRegistry]: exactly the container's element type
//   - [NewPolymorphicContainerRegistry]: exactly each creatable type
//   - [NewTaskContainerRegistry]: any type implementing [container.Task]
//   - [NewComponentContainerRegistry]: exactly [*AdhocComponent], added
//     eagerly
//
// A [Registry] aggregates them. Requests go to the first registry, in the
// order they were added, that can register the type. When none can, the
// request fails with [errors.ErrCodeUnregistrableType], the message lists
// every supported type, and no container is touched.
//
// # Registration marking
//
// Every registration runs inside [container.Pass.Registering] for the
// element's key. A model bridged to the same container sees the mark and
// leaves the element to whoever registered it:
//
//	pass := container.NewPass()
//	reg := registry.New(pass)
//	reg.Add(registry.NewTaskContainerRegistry(tasks))
//	m := model.New(model.WithPass(pass), model.WithRegistry(reg))
package registry
