// Package spatialindex builds the shared spatial-sort structure the
// pipeline's smooth-normal-generation and join-vertices stages
// consult to find vertices coincident (within an epsilon)
// without an O(n^2) scan. It is built once per pipeline run by a
// marker stage, consumed by the stages inside that window, and torn
// down by a matching marker stage immediately after.
package spatialindex

import (
	"github.com/aurorafx/sceneimport/internal/scene"
	"github.com/aurorafx/sceneimport/pkg/diskslice"
)

// entry pairs a vertex index with its position, the unit the index
// stores and buckets.
type entry struct {
	VertexIndex uint32
	Position    scene.Vec3
}

// DiskOverflowThreshold is the vertex count above which the index
// spills its entry table to disk rather than holding it all in
// memory, matching diskslice's own memory-threshold model but keyed
// on vertex count (a cheap, always-available proxy) rather than a
// byte estimate.
const DiskOverflowThreshold = 250_000

// cellSize is chosen empirically: small enough to keep per-cell
// occupancy low for typical mesh vertex densities, large enough that
// epsilon-radius queries rarely span more than the 27-cell
// neighborhood FindNear already checks.
const cellSize = 0.1

type cellKey struct{ x, y, z int32 }

// Index buckets a mesh's vertices into a uniform grid for approximate
// nearest-neighbor queries. Entries live either in an in-memory map
// (the common case) or spill to an entries DiskSlice plus cell->index
// map once the mesh exceeds DiskOverflowThreshold vertices.
type Index struct {
	mesh *scene.Mesh

	overflow bool
	entries  *diskslice.DiskSlice[entry]
	cells    map[cellKey][]int // index into entries, or into memEntries

	memEntries []entry
	memCells   map[cellKey][]int
}

// Build constructs a spatial index over every position in mesh.
func Build(mesh *scene.Mesh) (*Index, error) {
	idx := &Index{mesh: mesh}

	if mesh.VertexCount() > DiskOverflowThreshold {
		ds, err := diskslice.New[entry](diskslice.Options{
			Name:              "spatialindex",
			EstimatedItemSize: 16,
		})
		if err != nil {
			return nil, err
		}
		idx.overflow = true
		idx.entries = ds
		idx.cells = make(map[cellKey][]int, mesh.VertexCount())

		for i, p := range mesh.Positions {
			if err := ds.Append(entry{VertexIndex: uint32(i), Position: p}); err != nil {
				return nil, err
			}
			key := cellKeyFor(p)
			idx.cells[key] = append(idx.cells[key], i)
		}
		return idx, nil
	}

	idx.memEntries = make([]entry, len(mesh.Positions))
	idx.memCells = make(map[cellKey][]int, len(mesh.Positions))
	for i, p := range mesh.Positions {
		idx.memEntries[i] = entry{VertexIndex: uint32(i), Position: p}
		key := cellKeyFor(p)
		idx.memCells[key] = append(idx.memCells[key], i)
	}
	return idx, nil
}

// Close releases any disk-backed storage the index holds. Safe to
// call on an index that never spilled.
func (idx *Index) Close() error {
	if idx.overflow && idx.entries != nil {
		return idx.entries.Close()
	}
	return nil
}

// FindNear returns the vertex indices whose position lies within
// epsilon of p, searching the 3x3x3 neighborhood of grid cells around
// p's own cell.
func (idx *Index) FindNear(p scene.Vec3, epsilon float32) []int {
	center := cellKeyFor(p)
	var result []int

	visit := func(candidates []int) {
		for _, i := range candidates {
			pos := idx.positionAt(i)
			if withinEpsilon(pos, p, epsilon) {
				result = append(result, i)
			}
		}
	}

	for dx := int32(-1); dx <= 1; dx++ {
		for dy := int32(-1); dy <= 1; dy++ {
			for dz := int32(-1); dz <= 1; dz++ {
				key := cellKey{center.x + dx, center.y + dy, center.z + dz}
				if idx.overflow {
					visit(idx.cells[key])
				} else {
					visit(idx.memCells[key])
				}
			}
		}
	}
	return result
}

func (idx *Index) positionAt(i int) scene.Vec3 {
	if idx.overflow {
		e, err := idx.entries.Get(i)
		if err != nil {
			return scene.Vec3{}
		}
		return e.Position
	}
	return idx.memEntries[i].Position
}

func withinEpsilon(a, b scene.Vec3, epsilon float32) bool {
	dx := a.X - b.X
	dy := a.Y - b.Y
	dz := a.Z - b.Z
	return dx*dx+dy*dy+dz*dz <= epsilon*epsilon
}

func cellKeyFor(p scene.Vec3) cellKey {
	return cellKey{
		x: int32(p.X / cellSize),
		y: int32(p.Y / cellSize),
		z: int32(p.Z / cellSize),
	}
}
