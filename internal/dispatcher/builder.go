package dispatcher

import (
	"log/slog"

	"github.com/aurorafx/sceneimport/internal/pipeline/core"
	"github.com/aurorafx/sceneimport/internal/sceneio"
)

// Builder provides a fluent interface for constructing a Dispatcher.
// Zero-value fields default sensibly: WithRegistry defaults to the
// canonical stage ordering, WithIO to the filesystem, WithLogger to
// slog.Default().
type Builder struct {
	registry        *core.Registry
	io              sceneio.IO
	logger          *slog.Logger
	verbose         bool
	propertyDefault func(*Dispatcher)
}

// NewBuilder returns a Builder with no overrides set.
func NewBuilder() *Builder {
	return &Builder{}
}

// WithRegistry overrides the canonical stage registry, for deployments
// that need a non-standard pipeline.
func (b *Builder) WithRegistry(registry *core.Registry) *Builder {
	b.registry = registry
	return b
}

// WithIO installs a non-default I/O handle (e.g. sceneio.RemoteIO)
// before the dispatcher is used.
func (b *Builder) WithIO(io sceneio.IO) *Builder {
	b.io = io
	return b
}

// WithLogger sets the logger every component of the dispatcher logs
// through.
func (b *Builder) WithLogger(logger *slog.Logger) *Builder {
	b.logger = logger
	return b
}

// WithVerboseValidation enables the development mode that re-runs
// scene.Validate between every pipeline stage.
func (b *Builder) WithVerboseValidation(enabled bool) *Builder {
	b.verbose = enabled
	return b
}

// WithPropertyDefaults registers a callback invoked with the built
// Dispatcher before Build returns, for seeding property-store defaults
// (e.g. crease angle, split thresholds) in one place.
func (b *Builder) WithPropertyDefaults(fn func(*Dispatcher)) *Builder {
	b.propertyDefault = fn
	return b
}

// Build constructs the configured Dispatcher.
func (b *Builder) Build() *Dispatcher {
	registry := b.registry
	if registry == nil {
		registry = defaultRegistry()
	}
	d := NewWithRegistry(registry, b.logger)
	if b.io != nil {
		d.SetIOHandler(b.io)
	}
	if b.verbose {
		d.SetExtraVerbose(true)
	}
	if b.propertyDefault != nil {
		b.propertyDefault(d)
	}
	return d
}
