package core

import (
	"log/slog"

	"github.com/aurorafx/sceneimport/internal/properties"
	"github.com/aurorafx/sceneimport/internal/scene"
)

// Context is the per-import handle every stage executes against. It
// carries a borrow of the current scene (valid only for the duration
// of one Execute call), the dispatcher's property store, the shared
// pass state, and a logger. A stage signals fatal failure by calling
// Fail, which nulls the scene and records the error the runner
// surfaces after the stage returns.
type Context struct {
	scene *scene.Scene
	props *properties.Store
	pass  *PassState
	log   *slog.Logger

	err error
}

// NewContext returns a Context bound to sc for the duration of one
// pipeline run.
func NewContext(sc *scene.Scene, props *properties.Store, pass *PassState, log *slog.Logger) *Context {
	if log == nil {
		log = slog.Default()
	}
	return &Context{scene: sc, props: props, pass: pass, log: log}
}

// Scene returns the current scene borrow, or nil if a prior stage
// failed fatally.
func (c *Context) Scene() *scene.Scene { return c.scene }

// Properties returns the dispatcher's property store.
func (c *Context) Properties() *properties.Store { return c.props }

// PassState returns the shared ephemeral pass state.
func (c *Context) PassState() *PassState { return c.pass }

// Logger returns the context's logger.
func (c *Context) Logger() *slog.Logger { return c.log }

// Fail nulls the scene and records err as the reason the pipeline
// halted. Stages call this instead of returning a plain error when
// the failure is catastrophic (the scene can no longer be trusted).
func (c *Context) Fail(err error) {
	c.scene = nil
	c.err = err
}

// Err returns the error recorded by Fail, if any.
func (c *Context) Err() error { return c.err }
