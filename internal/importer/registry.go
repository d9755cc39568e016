package importer

import (
	"strings"
	"sync"

	"github.com/aurorafx/sceneimport/internal/sceneio"
)

// Registry holds the ordered set of importers a dispatcher probes.
// Registration order is preserved and is the probing order: the first
// importer to answer CanRead true wins.
type Registry struct {
	mu        sync.RWMutex
	importers []Importer
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register appends imp to the probing order. Re-registering the same
// instance is a no-op.
func (r *Registry) Register(imp Importer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.importers {
		if existing == imp {
			return
		}
	}
	r.importers = append(r.importers, imp)
}

// Unregister removes imp from the registry. Reports whether it was found.
func (r *Registry) Unregister(imp Importer) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, existing := range r.importers {
		if existing == imp {
			r.importers = append(r.importers[:i], r.importers[i+1:]...)
			return true
		}
	}
	return false
}

// All returns a snapshot of the registered importers in probing order.
func (r *Registry) All() []Importer {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Importer, len(r.importers))
	copy(out, r.importers)
	return out
}

// Find runs the two-pass selection algorithm: a cheap extension-only
// pass first, then (only if path contains a dot) a signature-checking
// pass that lets importers read a file prefix. Returns nil if nothing
// claims the path.
func (r *Registry) Find(path string, io sceneio.IO) Importer {
	importers := r.All()

	for _, imp := range importers {
		if imp.CanRead(path, nil, false) {
			return imp
		}
	}

	if !strings.Contains(path, ".") {
		return nil
	}

	for _, imp := range importers {
		if imp.CanRead(path, io, true) {
			return imp
		}
	}

	return nil
}

// IsExtensionSupported reports whether any registered importer
// advertises ext, case-insensitive, with or without a leading dot.
func (r *Registry) IsExtensionSupported(ext string) bool {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	for _, imp := range r.All() {
		for _, e := range imp.Extensions() {
			if strings.ToLower(e) == ext {
				return true
			}
		}
	}
	return false
}

// ExtensionList returns every advertised extension across registered
// importers, joined as "*.a;*.b;…" with no trailing delimiter.
func (r *Registry) ExtensionList() string {
	var sb strings.Builder
	first := true
	for _, imp := range r.All() {
		for _, e := range imp.Extensions() {
			if !first {
				sb.WriteByte(';')
			}
			sb.WriteString("*.")
			sb.WriteString(e)
			first = false
		}
	}
	return sb.String()
}
