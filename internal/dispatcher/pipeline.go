package dispatcher

import (
	"github.com/aurorafx/sceneimport/internal/pipeline/core"
	"github.com/aurorafx/sceneimport/internal/pipeline/stages/finddegenerates"
	"github.com/aurorafx/sceneimport/internal/pipeline/stages/findinstances"
	"github.com/aurorafx/sceneimport/internal/pipeline/stages/findinvaliddata"
	"github.com/aurorafx/sceneimport/internal/pipeline/stages/fixinfacingnormals"
	"github.com/aurorafx/sceneimport/internal/pipeline/stages/flipuvs"
	"github.com/aurorafx/sceneimport/internal/pipeline/stages/flipwinding"
	"github.com/aurorafx/sceneimport/internal/pipeline/stages/gennormals"
	"github.com/aurorafx/sceneimport/internal/pipeline/stages/gensmoothnormals"
	"github.com/aurorafx/sceneimport/internal/pipeline/stages/gentangents"
	"github.com/aurorafx/sceneimport/internal/pipeline/stages/genuvcoords"
	"github.com/aurorafx/sceneimport/internal/pipeline/stages/improvecachelocality"
	"github.com/aurorafx/sceneimport/internal/pipeline/stages/joinidenticalvertices"
	"github.com/aurorafx/sceneimport/internal/pipeline/stages/limitboneweights"
	"github.com/aurorafx/sceneimport/internal/pipeline/stages/makelefthanded"
	"github.com/aurorafx/sceneimport/internal/pipeline/stages/pretransformvertices"
	"github.com/aurorafx/sceneimport/internal/pipeline/stages/removeredundantmaterials"
	"github.com/aurorafx/sceneimport/internal/pipeline/stages/removevertexcomponents"
	"github.com/aurorafx/sceneimport/internal/pipeline/stages/sortbyprimitivetype"
	"github.com/aurorafx/sceneimport/internal/pipeline/stages/spatialsort"
	"github.com/aurorafx/sceneimport/internal/pipeline/stages/splitlargemeshes"
	"github.com/aurorafx/sceneimport/internal/pipeline/stages/transformtexcoords"
	"github.com/aurorafx/sceneimport/internal/pipeline/stages/triangulate"
)

// defaultRegistry fills every canonical slot with its stock stage
// implementation. This is the one place the dispatcher commits to the
// ordering contract between stages; a caller who needs a custom pipeline
// (headless validation-only build, say) builds its own *core.Registry
// and passes it to NewWithRegistry instead.
func defaultRegistry() *core.Registry {
	r := core.NewRegistry()

	r.Set(core.SlotRemoveVertexComponents, removevertexcomponents.New())
	r.Set(core.SlotRemoveRedundantMaterials, removeredundantmaterials.New())
	r.Set(core.SlotFindInstances, findinstances.New())
	r.Set(core.SlotFindDegenerates, finddegenerates.New())

	r.Set(core.SlotGenUVCoords, genuvcoords.New())
	r.Set(core.SlotTransformTexCoords, transformtexcoords.New())

	r.Set(core.SlotPreTransformVertices, pretransformvertices.New())
	r.Set(core.SlotTriangulate, triangulate.New())
	r.Set(core.SlotSortByPrimitiveType, sortbyprimitivetype.New())

	r.Set(core.SlotFindInvalidData, findinvaliddata.New())
	r.Set(core.SlotFixInfacingNormals, fixinfacingnormals.New())

	r.Set(core.SlotSplitLargeMeshesByTriangle, splitlargemeshes.NewByTriangle())

	r.Set(core.SlotSpatialSortBuild, spatialsort.NewBuild())
	r.Set(core.SlotGenNormals, gennormals.New())
	r.Set(core.SlotGenSmoothNormals, gensmoothnormals.New())
	r.Set(core.SlotGenTangents, gentangents.New())
	r.Set(core.SlotJoinIdenticalVertices, joinidenticalvertices.New())
	r.Set(core.SlotSpatialSortDestroy, spatialsort.NewDestroy())

	r.Set(core.SlotSplitLargeMeshesByVertex, splitlargemeshes.NewByVertex())

	r.Set(core.SlotMakeLeftHanded, makelefthanded.New())
	r.Set(core.SlotFlipUVs, flipuvs.New())
	r.Set(core.SlotFlipWinding, flipwinding.New())
	r.Set(core.SlotLimitBoneWeights, limitboneweights.New())
	r.Set(core.SlotImproveCacheLocality, improvecachelocality.New())

	return r
}
