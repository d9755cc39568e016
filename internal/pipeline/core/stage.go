package core

import "github.com/aurorafx/sceneimport/internal/properties"

// Stage is a single step in the post-processing pipeline. Stages are
// registered in a fixed order at dispatcher construction time; the
// order encodes the data-dependency contract between them (see
// Registry). A stage mutates the scene it's handed in place and
// signals catastrophic failure via Context.Fail.
type Stage interface {
	// ID returns a unique, stable identifier for the stage (e.g. "gen-normals").
	ID() string

	// Name returns a human-readable name for logging.
	Name() string

	// Flags returns the bitset of request flags this stage services.
	Flags() Flags

	// IsActive reports whether this stage should run for the given
	// request bitset. The default (provided by BaseStage) is "any of
	// my flags intersect requested".
	IsActive(requested Flags) bool

	// SetupProperties lets a stage snapshot configuration it wants to
	// consult during Execute. Optional; BaseStage's default is a no-op.
	SetupProperties(props *properties.Store)

	// Execute reads and mutates ctx.Scene(). On catastrophic failure it
	// calls ctx.Fail; the runner observes this and halts.
	Execute(ctx *Context) error
}
