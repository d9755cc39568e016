// Package objimporter decodes Wavefront OBJ files into the canonical
// scene model. It serves as the reference importer: a self-contained,
// dependency-free decoder exercising the full importer.Importer
// contract end to end.
package objimporter

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/aurorafx/sceneimport/internal/importer"
	"github.com/aurorafx/sceneimport/internal/properties"
	"github.com/aurorafx/sceneimport/internal/scene"
	"github.com/aurorafx/sceneimport/internal/sceneio"
)

// PropertyImportMaterials toggles whether the importer fabricates a
// default material for meshes that carry no usemtl directive.
const PropertyImportMaterials = "obj.import-materials"

// Importer decodes ".obj" files. It intentionally ignores companion
// ".mtl" material libraries and groups: everything accumulates into a
// single mesh, matching the narrowest reading of the format that still
// satisfies the canonical scene invariants.
type Importer struct {
	importer.BaseImporter

	importMaterials bool
}

// New returns an OBJ importer with default settings.
func New() *Importer {
	return &Importer{importMaterials: true}
}

// CanRead implements importer.Importer.
func (im *Importer) CanRead(path string, io sceneio.IO, checkSig bool) bool {
	if importer.SimpleExtensionCheck(path, "obj") {
		return true
	}
	if !checkSig || io == nil {
		return false
	}
	return importer.SearchFileHeaderForToken(io, path, []string{"# wavefront", "mtllib", "usemtl"}, 128)
}

// Extensions implements importer.Importer.
func (im *Importer) Extensions() []string { return []string{"obj"} }

// SetupProperties implements importer.Importer.
func (im *Importer) SetupProperties(props *properties.Store) {
	im.importMaterials = props.GetInteger(PropertyImportMaterials, 1) != 0
}

// InternReadFile implements importer.Importer.
func (im *Importer) InternReadFile(path string, ioh sceneio.IO) (*scene.Scene, error) {
	stream, err := ioh.Open(path)
	if err != nil {
		return nil, importer.WrapError(importer.ErrMissingFile, path, "opening source file", err)
	}
	defer stream.Close()

	dec := newDecoder()
	if err := dec.run(stream); err != nil {
		return nil, importer.WrapError(importer.ErrDecodeFailed, path, err.Error(), err)
	}

	mesh := dec.buildMesh()
	if mesh.VertexCount() == 0 {
		return nil, importer.NewError(importer.ErrDecodeFailed, path, "no geometry found in OBJ file")
	}

	sc := scene.New()
	sc.Meshes = []*scene.Mesh{mesh}

	if im.importMaterials {
		mat := scene.NewMaterial("DefaultMaterial")
		sc.Materials = []*scene.Material{mat}
		mesh.MaterialIndex = 0
	} else {
		mesh.MaterialIndex = -1
	}

	sc.Root.Name = "root"
	sc.Root.MeshIndex = []int{0}

	return sc, nil
}

// decoder accumulates raw OBJ records before they are assembled into a
// pseudo-indexed-verbose mesh (each face-vertex reference is expanded
// to its own vertex, matching the invariant the rest of the pipeline
// expects).
type decoder struct {
	positions []scene.Vec3
	normals   []scene.Vec3
	texcoords []scene.Vec2
	faces     [][]objVertexRef
}

type objVertexRef struct {
	position int
	texcoord int // -1 if absent
	normal   int // -1 if absent
}

func newDecoder() *decoder {
	return &decoder{}
}

func (d *decoder) run(stream sceneio.Stream) error {
	scanner := bufio.NewScanner(stream)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		switch fields[0] {
		case "v":
			v, err := parseVec3(fields[1:])
			if err != nil {
				return fmt.Errorf("line %d: vertex: %w", lineNo, err)
			}
			d.positions = append(d.positions, v)
		case "vn":
			v, err := parseVec3(fields[1:])
			if err != nil {
				return fmt.Errorf("line %d: normal: %w", lineNo, err)
			}
			d.normals = append(d.normals, v)
		case "vt":
			v, err := parseVec2(fields[1:])
			if err != nil {
				return fmt.Errorf("line %d: texcoord: %w", lineNo, err)
			}
			d.texcoords = append(d.texcoords, v)
		case "f":
			face, err := d.parseFace(fields[1:])
			if err != nil {
				return fmt.Errorf("line %d: face: %w", lineNo, err)
			}
			d.faces = append(d.faces, face)
		default:
			// groups (g/o), smoothing (s), mtllib/usemtl and anything
			// else this reference decoder doesn't model are ignored.
		}
	}
	return scanner.Err()
}

func (d *decoder) parseFace(tokens []string) ([]objVertexRef, error) {
	if len(tokens) < 3 {
		return nil, fmt.Errorf("face needs at least 3 vertices, got %d", len(tokens))
	}
	refs := make([]objVertexRef, 0, len(tokens))
	for _, tok := range tokens {
		parts := strings.Split(tok, "/")
		pos, err := resolveIndex(parts[0], len(d.positions))
		if err != nil {
			return nil, err
		}
		ref := objVertexRef{position: pos, texcoord: -1, normal: -1}
		if len(parts) > 1 && parts[1] != "" {
			tc, err := resolveIndex(parts[1], len(d.texcoords))
			if err != nil {
				return nil, err
			}
			ref.texcoord = tc
		}
		if len(parts) > 2 && parts[2] != "" {
			n, err := resolveIndex(parts[2], len(d.normals))
			if err != nil {
				return nil, err
			}
			ref.normal = n
		}
		refs = append(refs, ref)
	}
	return refs, nil
}

// resolveIndex converts OBJ's 1-based (or negative, relative-to-end)
// index into a 0-based index into a slice of the given length.
func resolveIndex(tok string, count int) (int, error) {
	n, err := strconv.Atoi(tok)
	if err != nil {
		return 0, fmt.Errorf("invalid index %q: %w", tok, err)
	}
	switch {
	case n > 0:
		if n > count {
			return 0, fmt.Errorf("index %d out of range (have %d)", n, count)
		}
		return n - 1, nil
	case n < 0:
		idx := count + n
		if idx < 0 {
			return 0, fmt.Errorf("relative index %d out of range (have %d)", n, count)
		}
		return idx, nil
	default:
		return 0, fmt.Errorf("index must not be zero")
	}
}

func parseVec3(tokens []string) (scene.Vec3, error) {
	if len(tokens) < 3 {
		return scene.Vec3{}, fmt.Errorf("expected 3 components, got %d", len(tokens))
	}
	x, err := strconv.ParseFloat(tokens[0], 32)
	if err != nil {
		return scene.Vec3{}, err
	}
	y, err := strconv.ParseFloat(tokens[1], 32)
	if err != nil {
		return scene.Vec3{}, err
	}
	z, err := strconv.ParseFloat(tokens[2], 32)
	if err != nil {
		return scene.Vec3{}, err
	}
	return scene.Vec3{X: float32(x), Y: float32(y), Z: float32(z)}, nil
}

func parseVec2(tokens []string) (scene.Vec2, error) {
	if len(tokens) < 2 {
		return scene.Vec2{}, fmt.Errorf("expected 2 components, got %d", len(tokens))
	}
	u, err := strconv.ParseFloat(tokens[0], 32)
	if err != nil {
		return scene.Vec2{}, err
	}
	v, err := strconv.ParseFloat(tokens[1], 32)
	if err != nil {
		return scene.Vec2{}, err
	}
	return scene.Vec2{X: float32(u), Y: float32(v)}, nil
}

// buildMesh expands every face-vertex reference into its own vertex,
// triangulating n-gons by a simple fan. The result satisfies the
// pseudo-indexed-verbose invariant: no vertex is shared across faces.
func (d *decoder) buildMesh() *scene.Mesh {
	m := &scene.Mesh{}
	hasNormals := len(d.normals) > 0
	hasTexcoords := len(d.texcoords) > 0

	emit := func(ref objVertexRef) {
		m.Positions = append(m.Positions, d.positions[ref.position])
		if hasNormals {
			if ref.normal >= 0 {
				m.Normals = append(m.Normals, d.normals[ref.normal])
			} else {
				m.Normals = append(m.Normals, scene.Vec3{})
			}
		}
		if hasTexcoords {
			if ref.texcoord >= 0 {
				m.TexCoords[0] = append(m.TexCoords[0], d.texcoords[ref.texcoord])
			} else {
				m.TexCoords[0] = append(m.TexCoords[0], scene.Vec2{})
			}
		}
	}

	for _, face := range d.faces {
		base := len(m.Positions)
		for _, ref := range face {
			emit(ref)
		}
		for i := 1; i < len(face)-1; i++ {
			m.Faces = append(m.Faces, scene.Face{Indices: []uint32{
				uint32(base), uint32(base + i), uint32(base + i + 1),
			}})
		}
	}

	if hasTexcoords {
		m.NumUVComponents[0] = 2
	}

	return m
}

var _ importer.Importer = (*Importer)(nil)
