package cli

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/modelgraph/pkg/observability"
)

// newLogger creates a logger with "HH:MM:SS.ms" timestamps.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress logs the completion of an operation with its elapsed time.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg with the elapsed time, e.g. "Built model.toml (12ms)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

// withLogger returns a context carrying l.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext returns the logger attached to ctx, or log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

// =============================================================================
// Observability Hooks
// =============================================================================

// logHooks forwards model and registry events to a logger at debug level.
type logHooks struct {
	logger *log.Logger
}

// InstallLogHooks routes observability events to l.
func InstallLogHooks(l *log.Logger) {
	h := &logHooks{logger: l.WithPrefix("hooks")}
	observability.SetModelHooks(h)
	observability.SetRegistryHooks(h)
}

func (h *logHooks) OnNodeCreated(path string) {
	h.logger.Debug("node", "path", path)
}

func (h *logHooks) OnProjectionCreated(path, projectionType string, provided bool) {
	h.logger.Debug("projection", "path", path, "type", projectionType, "provided", provided)
}

func (h *logHooks) OnProjectionRealized(path, projectionType string) {
	h.logger.Debug("realized", "path", path, "type", projectionType)
}

func (h *logHooks) OnProjectionFinalized(path, projectionType string, replayed int) {
	h.logger.Debug("finalized", "path", path, "type", projectionType, "replayed", replayed)
}

func (h *logHooks) OnSelfMutation(key string, breadcrumbs []string) {
	h.logger.Debug("self-mutation", "key", key, "breadcrumbs", strings.Join(breadcrumbs, " > "))
}

func (h *logHooks) OnRegister(name, elementType, registry string) {
	h.logger.Debug("register", "name", name, "type", elementType, "registry", registry)
}

func (h *logHooks) OnRegisterRejected(name, elementType string, supported []string) {
	h.logger.Warn("register rejected", "name", name, "type", elementType, "supported", strings.Join(supported, ", "))
}

func (h *logHooks) OnElementBridged(container, name string) {
	h.logger.Debug("bridged", "container", container, "name", name)
}
