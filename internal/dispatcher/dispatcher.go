// Package dispatcher implements the front controller that owns format
// probes, selects the correct importer for an input path, drives a
// single import to completion, and converts thrown failures into
// diagnostic state.
//
// A Dispatcher is not safe for concurrent use: every public method
// assumes single-threaded, cooperative access, matching the underlying
// scene's single-owner lifecycle. Run multiple imports in parallel by
// instancing multiple Dispatchers, not by sharing one.
package dispatcher

import (
	"fmt"
	"log/slog"

	"github.com/aurorafx/sceneimport/internal/importer"
	"github.com/aurorafx/sceneimport/internal/pipeline/core"
	"github.com/aurorafx/sceneimport/internal/preprocessor"
	"github.com/aurorafx/sceneimport/internal/properties"
	"github.com/aurorafx/sceneimport/internal/scene"
	"github.com/aurorafx/sceneimport/internal/sceneio"
)

// Dispatcher is the library's front controller. See the package doc
// for its concurrency contract.
type Dispatcher struct {
	importers *importer.Registry
	registry  *core.Registry
	runner    *core.Runner
	pass      *core.PassState
	props     *properties.Store

	io          sceneio.IO
	isDefaultIO bool

	current   *scene.Scene
	errString string
	verbose   bool

	logger *slog.Logger
}

// New returns a Dispatcher wired with the canonical stage registry and
// the default filesystem I/O handle.
func New(logger *slog.Logger) *Dispatcher {
	return NewWithRegistry(defaultRegistry(), logger)
}

// NewWithRegistry returns a Dispatcher over a caller-supplied stage
// registry, for deployments that need a non-canonical pipeline (e.g. a
// headless build omitting split-large-meshes). registry must still
// satisfy the ordering contract among the stages it does contain.
func NewWithRegistry(registry *core.Registry, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	pass := core.NewPassState()
	d := &Dispatcher{
		importers:   importer.NewRegistry(),
		registry:    registry,
		pass:        pass,
		props:       properties.New(),
		io:          sceneio.NewFileIO(),
		isDefaultIO: true,
		logger:      logger,
	}
	d.runner = core.NewRunner(registry.Ordered(), logger)
	return d
}

// Clone copy-constructs a new Dispatcher: fresh importer set and
// pipeline, sharing no scene, carrying over the property store's
// contents. Configuration propagates; loaded data never does.
func (d *Dispatcher) Clone() *Dispatcher {
	c := New(d.logger)
	c.props = d.props.Clone()
	return c
}

// RegisterLoader appends imp to the probing order. Registering an
// importer whose extension is already handled by an earlier registrant
// only warns; the earlier registrant keeps priority.
func (d *Dispatcher) RegisterLoader(imp importer.Importer) {
	for _, ext := range imp.Extensions() {
		if d.importers.IsExtensionSupported(ext) {
			d.logger.Warn("importer extension already registered",
				slog.String("extension", ext))
		}
	}
	d.importers.Register(imp)
}

// UnregisterLoader removes imp from the probing order. Returns a
// plain "loader not registered" error (not an *importer.Error) if imp
// was never registered.
func (d *Dispatcher) UnregisterLoader(imp importer.Importer) error {
	if !d.importers.Unregister(imp) {
		return fmt.Errorf("loader not registered")
	}
	return nil
}

// SetIOHandler installs io as the I/O abstraction used by subsequent
// ReadFile calls. Passing nil reinstalls the default filesystem handle
// and reports IsDefaultIOHandler() == true; passing a non-nil handle
// releases any previously installed non-default handle and reports
// IsDefaultIOHandler() == false.
func (d *Dispatcher) SetIOHandler(io sceneio.IO) {
	if io == nil {
		d.io = sceneio.NewFileIO()
		d.isDefaultIO = true
		return
	}
	d.io = io
	d.isDefaultIO = false
}

// GetIOHandler returns the currently installed I/O handle.
func (d *Dispatcher) GetIOHandler() sceneio.IO { return d.io }

// IsDefaultIOHandler reports whether the installed handle is the
// built-in filesystem default.
func (d *Dispatcher) IsDefaultIOHandler() bool { return d.isDefaultIO }

// SetPropertyInteger writes an integer configuration property.
func (d *Dispatcher) SetPropertyInteger(key string, value int) { d.props.SetInteger(key, value) }

// GetPropertyInteger reads an integer configuration property, or def
// if unset.
func (d *Dispatcher) GetPropertyInteger(key string, def int) int {
	return d.props.GetInteger(key, def)
}

// SetPropertyFloat writes a float configuration property.
func (d *Dispatcher) SetPropertyFloat(key string, value float64) { d.props.SetFloat(key, value) }

// GetPropertyFloat reads a float configuration property, or def if unset.
func (d *Dispatcher) GetPropertyFloat(key string, def float64) float64 {
	return d.props.GetFloat(key, def)
}

// SetPropertyString writes a string configuration property.
func (d *Dispatcher) SetPropertyString(key string, value string) { d.props.SetString(key, value) }

// GetPropertyString reads a string configuration property, or def if unset.
func (d *Dispatcher) GetPropertyString(key string, def string) string {
	return d.props.GetString(key, def)
}

// IsExtensionSupported reports whether ext (with or without a leading
// dot) is advertised by any registered importer. Consults no I/O.
func (d *Dispatcher) IsExtensionSupported(ext string) bool {
	return d.importers.IsExtensionSupported(ext)
}

// GetExtensionList returns every advertised extension across
// registered importers, "*.a;*.b;…" form.
func (d *Dispatcher) GetExtensionList() string {
	return d.importers.ExtensionList()
}

// ValidateFlags rejects mutually exclusive combinations and any bit
// for which no stage in the pipeline reports IsActive(bit) true,
// except ValidateDataStructure, which the dispatcher handles
// out-of-band and always accepts.
func (d *Dispatcher) ValidateFlags(requested core.Flags) bool {
	if !core.ValidateFlags(requested) {
		d.logger.Error("flag validation failed: mutually exclusive bits requested",
			slog.String("flags", requested.String()))
		return false
	}
	stages := d.registry.Ordered()
	for _, bit := range core.Bits() {
		if bit == core.ValidateDataStructure {
			continue
		}
		if !requested.Has(bit) {
			continue
		}
		serviced := false
		for _, st := range stages {
			if st.IsActive(bit) {
				serviced = true
				break
			}
		}
		if !serviced {
			d.logger.Error("flag validation failed: no stage services requested bit",
				slog.String("flags", bit.String()))
			return false
		}
	}
	return true
}

// SetExtraVerbose toggles the verbose-validation development mode: the
// validation predicate re-runs between every pipeline stage rather
// than only before the first.
func (d *Dispatcher) SetExtraVerbose(enabled bool) {
	d.verbose = enabled
	d.runner.SetVerboseValidation(enabled, scene.Validate)
}

// GetScene returns a borrow of the current scene, or nil if none is
// held. Valid only until the next ReadFile call or FreeScene.
func (d *Dispatcher) GetScene() *scene.Scene { return d.current }

// GetOrphanedScene transfers ownership of the current scene to the
// caller, nulling the dispatcher's own reference.
func (d *Dispatcher) GetOrphanedScene() *scene.Scene {
	s := d.current
	d.current = nil
	return s
}

// FreeScene discards the current scene.
func (d *Dispatcher) FreeScene() { d.current = nil }

// GetErrorString returns the message set by the most recent failed
// operation, or "" after a successful ReadFile.
func (d *Dispatcher) GetErrorString() string { return d.errString }

// GetMemoryRequirements returns the per-category byte footprint of the
// current scene, or a zero value if none is held.
func (d *Dispatcher) GetMemoryRequirements() scene.MemoryRequirements {
	if d.current == nil {
		return scene.MemoryRequirements{}
	}
	return scene.GetMemoryRequirements(d.current)
}

// ReadFile is the central operation: probe, decode, preprocess, and
// run the post-processing pipeline over path. On any failure it
// returns nil and GetErrorString reports why; the next ReadFile call
// clears prior error state.
func (d *Dispatcher) ReadFile(path string, flags core.Flags) *scene.Scene {
	d.errString = ""
	d.FreeScene()

	if !d.io.Exists(path) {
		return d.fail(fmt.Sprintf("Unable to open file %q", path))
	}

	imp := d.findImporter(path)
	if imp == nil {
		return d.fail(fmt.Sprintf("No suitable reader found for %q", path))
	}

	imp.SetupProperties(d.props)

	sc, err := d.decode(imp, path)
	if err != nil {
		return d.fail(err.Error())
	}

	if flags.Has(core.ValidateDataStructure) {
		if err := scene.Validate(sc); err != nil {
			return d.fail(fmt.Sprintf("validation failed: %v", err))
		}
	}

	preprocessor.Run(sc)

	d.pass.Clear()
	ctx := core.NewContext(sc, d.props, d.pass, d.logger)
	if err := d.runner.Run(ctx, flags); err != nil {
		d.pass.Clear()
		return d.fail(err.Error())
	}
	d.pass.Clear()

	d.current = ctx.Scene()
	return d.current
}

// findImporter runs the two-pass selection algorithm: a cheap
// extension-only pass, then (only if path contains a dot) a
// signature-checking pass.
func (d *Dispatcher) findImporter(path string) importer.Importer {
	return d.importers.Find(path, d.io)
}

// decode invokes imp's InternReadFile, converting any panic raised by
// decoder internals into a generic DecodeCrashedUnexpectedly error so
// a misbehaving plugin can never escape the dispatcher boundary.
func (d *Dispatcher) decode(imp importer.Importer, path string) (sc *scene.Scene, err error) {
	defer func() {
		if r := recover(); r != nil {
			sc = nil
			err = importer.NewError(importer.ErrDecodeCrashed, path,
				fmt.Sprintf("importer panicked: %v", r))
		}
	}()
	sc, err = imp.InternReadFile(path, d.io)
	if err != nil {
		if _, ok := err.(*importer.Error); !ok {
			err = importer.WrapError(importer.ErrDecodeFailed, path, err.Error(), err)
		}
		return nil, err
	}
	return sc, nil
}

func (d *Dispatcher) fail(message string) *scene.Scene {
	d.errString = message
	d.current = nil
	d.logger.Error("import failed", slog.String("error", message))
	return nil
}
