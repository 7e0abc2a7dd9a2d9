// Package observability provides hooks for tracing model construction.
//
// This package enables optional instrumentation without adding hard
// dependencies on specific observability backends. Consumers can register
// hooks at startup to receive events about node and projection lifecycles
// and registry dispatch.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// Hooks are registered by main, not by libraries, so the model packages never
// import a logging or metrics backend for this purpose.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetModelHooks(&myModelHooks{})
//	    observability.SetRegistryHooks(&myRegistryHooks{})
//	    // ... build the model
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Model().OnNodeCreated(node.Path())
package observability

import "sync"

// =============================================================================
// Model Hooks
// =============================================================================

// ModelHooks receives events from the model graph.
type ModelHooks interface {
	// OnNodeCreated records a new model node at path.
	OnNodeCreated(path string)

	// OnProjectionCreated records a projection attached to the node at path.
	// provided is true for projections backed by a lazily-created element.
	OnProjectionCreated(path, projectionType string, provided bool)

	// OnProjectionRealized records that a projection's backing value exists.
	OnProjectionRealized(path, projectionType string)

	// OnProjectionFinalized records a finalization and how many deferred
	// actions it replayed.
	OnProjectionFinalized(path, projectionType string, replayed int)

	// OnSelfMutation records an element configured from within its own
	// configuration. breadcrumbs lists the keys being configured.
	OnSelfMutation(key string, breadcrumbs []string)
}

// =============================================================================
// Registry Hooks
// =============================================================================

// RegistryHooks receives events from the registry facade.
type RegistryHooks interface {
	// OnRegister records a registration dispatched to registry.
	OnRegister(name, elementType, registry string)

	// OnRegisterRejected records a registration no registry could serve.
	OnRegisterRejected(name, elementType string, supported []string)

	// OnElementBridged records a container element attached to the model.
	OnElementBridged(container, name string)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopModelHooks is a no-op implementation of ModelHooks.
type NoopModelHooks struct{}

func (NoopModelHooks) OnNodeCreated(string)                      {}
func (NoopModelHooks) OnProjectionCreated(string, string, bool)  {}
func (NoopModelHooks) OnProjectionRealized(string, string)       {}
func (NoopModelHooks) OnProjectionFinalized(string, string, int) {}
func (NoopModelHooks) OnSelfMutation(string, []string)           {}

// NoopRegistryHooks is a no-op implementation of RegistryHooks.
type NoopRegistryHooks struct{}

func (NoopRegistryHooks) OnRegister(string, string, string)           {}
func (NoopRegistryHooks) OnRegisterRejected(string, string, []string) {}
func (NoopRegistryHooks) OnElementBridged(string, string)             {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	modelHooks    ModelHooks    = NoopModelHooks{}
	registryHooks RegistryHooks = NoopRegistryHooks{}
	hooksMu       sync.RWMutex
)

// SetModelHooks registers custom model hooks.
// This should be called once at application startup before building models.
func SetModelHooks(h ModelHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		modelHooks = h
	}
}

// SetRegistryHooks registers custom registry hooks.
// This should be called once at application startup before building models.
func SetRegistryHooks(h RegistryHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		registryHooks = h
	}
}

// Model returns the registered model hooks.
func Model() ModelHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return modelHooks
}

// Registry returns the registered registry hooks.
func Registry() RegistryHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return registryHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	modelHooks = NoopModelHooks{}
	registryHooks = NoopRegistryHooks{}
}
