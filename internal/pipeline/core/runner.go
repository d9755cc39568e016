package core

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/aurorafx/sceneimport/internal/scene"
)

// Validator is the out-of-band validation stage the runner re-invokes
// between every stage in verbose mode. It sits outside the ordered
// stage list proper (see spec §4.2): it does not service a flag, it
// observes.
type Validator func(*scene.Scene) error

// Runner executes a fixed, ordered list of stages against one
// Context. It does not itself own the scene, the property store, or
// the pass state; those belong to the dispatcher and are handed in
// via the Context for each run.
type Runner struct {
	stages            []Stage
	verboseValidation bool
	validator         Validator
	logger            *slog.Logger
}

// NewRunner returns a Runner over stages, in the order they must execute.
func NewRunner(stages []Stage, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{stages: stages, logger: logger}
}

// SetVerboseValidation toggles re-running validator between every
// stage. A development aid: catches which stage broke an invariant
// rather than only discovering it at the end.
func (r *Runner) SetVerboseValidation(enabled bool, validator Validator) {
	r.verboseValidation = enabled
	r.validator = validator
}

// Stages returns the configured stage list.
func (r *Runner) Stages() []Stage { return r.stages }

// Run executes every active stage in order against ctx. Returns the
// first error encountered; the context's scene is nil on return if
// and only if a stage failed.
func (r *Runner) Run(ctx *Context, requested Flags) error {
	for _, stage := range r.stages {
		if !stage.IsActive(requested) {
			continue
		}

		start := time.Now()
		stage.SetupProperties(ctx.Properties())

		if err := r.executeGuarded(stage, ctx); err != nil {
			ctx.Fail(err)
		}

		if ctx.Scene() == nil {
			stageErr := ctx.Err()
			if stageErr == nil {
				stageErr = ErrNoScene
			}
			r.logger.Error("pipeline stage failed fatally",
				slog.String("stage_id", stage.ID()),
				slog.String("stage_name", stage.Name()),
				slog.Duration("duration", time.Since(start)),
				slog.String("error", stageErr.Error()),
			)
			return NewStageError(stage.ID(), stage.Name(), stageErr)
		}

		r.logger.Debug("pipeline stage completed",
			slog.String("stage_id", stage.ID()),
			slog.String("stage_name", stage.Name()),
			slog.Duration("duration", time.Since(start)),
		)

		if r.verboseValidation && r.validator != nil {
			diagID := scene.DiagnosticID()
			if err := r.validator(ctx.Scene()); err != nil {
				ctx.Fail(err)
				r.logger.Error("verbose validation failed after stage",
					slog.String("stage_id", stage.ID()),
					slog.String("diagnostic_id", diagID),
					slog.String("error", err.Error()),
				)
				return NewStageError(stage.ID(), stage.Name(), err)
			}
			r.logger.Debug("verbose validation passed after stage",
				slog.String("stage_id", stage.ID()),
				slog.String("diagnostic_id", diagID),
			)
		}
	}
	return nil
}

// executeGuarded calls stage.Execute, converting a panic raised by a
// misbehaving stage into a plain error instead of letting it unwind
// past the runner. Matches the recover-at-the-boundary treatment the
// dispatcher applies to importer decode calls.
func (r *Runner) executeGuarded(stage Stage, ctx *Context) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("stage panicked: %v", rec)
		}
	}()
	return stage.Execute(ctx)
}
