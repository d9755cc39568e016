// Package removevertexcomponents strips vertex channels a caller has
// opted out of via properties, before any later stage spends time
// generating or transforming them.
package removevertexcomponents

import (
	"github.com/aurorafx/sceneimport/internal/pipeline/core"
	"github.com/aurorafx/sceneimport/internal/pipeline/shared"
	"github.com/aurorafx/sceneimport/internal/properties"
)

// Property keys, each an integer component bit read from the
// dispatcher's property store. A nonzero value means "drop this
// component".
const (
	PropertyDropNormals    = "remove-vertex-components.normals"
	PropertyDropTangents   = "remove-vertex-components.tangents"
	PropertyDropColors     = "remove-vertex-components.colors"
	PropertyDropTexCoords  = "remove-vertex-components.texcoords"
	PropertyDropBones      = "remove-vertex-components.bones"
)

// Stage implements core.Stage for RemoveVertexComponents.
type Stage struct {
	shared.BaseStage

	dropNormals   bool
	dropTangents  bool
	dropColors    bool
	dropTexCoords bool
	dropBones     bool
}

// New returns the stage.
func New() *Stage {
	return &Stage{
		BaseStage: shared.NewBaseStage("remove-vertex-components", "Remove Vertex Components", core.RemoveVertexComponents),
	}
}

// SetupProperties implements core.Stage.
func (s *Stage) SetupProperties(props *properties.Store) {
	s.dropNormals = props.GetInteger(PropertyDropNormals, 0) != 0
	s.dropTangents = props.GetInteger(PropertyDropTangents, 0) != 0
	s.dropColors = props.GetInteger(PropertyDropColors, 0) != 0
	s.dropTexCoords = props.GetInteger(PropertyDropTexCoords, 0) != 0
	s.dropBones = props.GetInteger(PropertyDropBones, 0) != 0
}

// Execute implements core.Stage.
func (s *Stage) Execute(ctx *core.Context) error {
	sc := ctx.Scene()
	for _, mesh := range sc.Meshes {
		if s.dropNormals {
			mesh.Normals = nil
		}
		if s.dropTangents {
			mesh.Tangents = nil
			mesh.Bitangents = nil
		}
		if s.dropColors {
			for i := range mesh.Colors {
				mesh.Colors[i] = nil
			}
		}
		if s.dropTexCoords {
			for i := range mesh.TexCoords {
				mesh.TexCoords[i] = nil
				mesh.NumUVComponents[i] = 0
			}
		}
		if s.dropBones {
			mesh.Bones = nil
		}
	}
	return nil
}
