// Package shared provides the BaseStage embed every concrete pipeline
// stage starts from, plus small helpers the stage packages share.
package shared

import (
	"github.com/aurorafx/sceneimport/internal/pipeline/core"
	"github.com/aurorafx/sceneimport/internal/properties"
)

// BaseStage supplies the parts of core.Stage that almost every
// concrete stage implements identically: a stable ID/Name pair, the
// default "any requested bit intersects my flags" activation rule,
// and a no-op SetupProperties. Embed this and override SetupProperties
// only when a stage actually reads configuration.
type BaseStage struct {
	id    string
	name  string
	flags core.Flags
}

// NewBaseStage returns a BaseStage servicing the given flags.
func NewBaseStage(id, name string, flags core.Flags) BaseStage {
	return BaseStage{id: id, name: name, flags: flags}
}

// ID returns the stage identifier.
func (b *BaseStage) ID() string { return b.id }

// Name returns the human-readable stage name.
func (b *BaseStage) Name() string { return b.name }

// Flags returns the request flags this stage services.
func (b *BaseStage) Flags() core.Flags { return b.flags }

// IsActive reports whether requested shares any bit with Flags().
func (b *BaseStage) IsActive(requested core.Flags) bool {
	return b.flags.Any(requested)
}

// SetupProperties is a no-op by default.
func (b *BaseStage) SetupProperties(*properties.Store) {}
