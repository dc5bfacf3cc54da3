package systems

import (
	"github.com/google/uuid"

	"github.com/spaghettifunk/anima-scene/engine/assets/loaders"
	"github.com/spaghettifunk/anima-scene/engine/core"
	"github.com/spaghettifunk/anima-scene/engine/math"
	"github.com/spaghettifunk/anima-scene/engine/renderer/metadata"
)

// framingRadiusScale pads the scene's diagonal so the camera sees all of it.
const framingRadiusScale float32 = 1.2

// constant colour used when a geometry has no complete per-vertex colours
var opaqueWhite = []float32{1, 1, 1, 1}

var componentCount = map[metadata.Attribute]int{
	metadata.AttributePosition: 3,
	metadata.AttributeTexcoord: 2,
	metadata.AttributeNormal:   3,
	metadata.AttributeColor:    3,
}

// SceneSystem turns parsed geometry and materials into drawable parts.
type SceneSystem struct {
	materials *MaterialSystem
}

func NewSceneSystem(materials *MaterialSystem) *SceneSystem {
	if materials == nil {
		materials = NewMaterialSystem(nil)
	}
	return &SceneSystem{materials: materials}
}

// Assemble builds one part per geometry. Relative texture map names are
// resolved against baseDir. The geometries' buffers are shared with the
// returned parts, not copied.
func (ss *SceneSystem) Assemble(source, baseDir string, model *metadata.ModelResourceData) *metadata.Scene {
	scene := &metadata.Scene{
		ID:               uuid.New(),
		Source:           source,
		BaseDir:          baseDir,
		MaterialLibPaths: model.MaterialLibPaths,
	}
	if model.Obj == nil {
		scene.Extents = math.NewEmptyExtents()
		scene.Framing = FrameExtents(scene.Extents)
		return scene
	}

	extents := make([]math.Extents3D, 0, len(model.Obj.Geometries))
	for _, g := range model.Obj.Geometries {
		part := ss.assemblePart(baseDir, g, model.Materials)
		scene.Parts = append(scene.Parts, part)
		extents = append(extents, part.Extents)
	}
	scene.Extents = math.ExtentsUnion(extents...)
	scene.Framing = FrameExtents(scene.Extents)
	return scene
}

func (ss *SceneSystem) assemblePart(baseDir string, g *metadata.Geometry, materials map[string]*metadata.Material) *metadata.Part {
	material, found := ss.materials.Resolve(materials, g.Material)
	if !found && g.Material != metadata.DefaultMaterialName {
		core.LogDebug("material '%s' not found, using default", g.Material)
	}
	for _, ref := range material.Maps() {
		if *ref != nil && **ref != "" {
			resolved := loaders.ResolvePath(baseDir, **ref)
			*ref = &resolved
		}
	}

	return &metadata.Part{
		ID:           uuid.New(),
		Object:       g.Object,
		Groups:       g.Groups,
		MaterialName: g.Material,
		Material:     material,
		Attributes:   NormalizeAttributes(g.Data),
		VertexCount:  g.VertexCount(),
		Extents:      math.ExtentsFromPositions(g.Data[metadata.AttributePosition]),
	}
}

// NormalizeAttributes wraps the geometry buffers as vertex attributes. The
// colour stream is kept only when it holds one triple per emitted vertex;
// otherwise it is replaced by constant opaque white.
func NormalizeAttributes(data map[metadata.Attribute][]float32) map[metadata.Attribute]metadata.VertexAttribute {
	out := make(map[metadata.Attribute]metadata.VertexAttribute, len(data)+1)
	for attr, buf := range data {
		if attr == metadata.AttributeColor {
			continue
		}
		n, ok := componentCount[attr]
		if !ok {
			n = 1
		}
		out[attr] = metadata.VertexAttribute{NumComponents: n, Data: buf}
	}

	color, ok := data[metadata.AttributeColor]
	if ok && len(color) == len(data[metadata.AttributePosition]) {
		out[metadata.AttributeColor] = metadata.VertexAttribute{NumComponents: 3, Data: color}
	} else {
		out[metadata.AttributeColor] = metadata.VertexAttribute{
			NumComponents: len(opaqueWhite),
			Value:         append([]float32(nil), opaqueWhite...),
		}
	}
	return out
}

// FrameExtents places a camera on +Z looking at the origin, far enough away
// to see the given extents. Empty extents frame a unit radius.
func FrameExtents(extents math.Extents3D) metadata.Framing {
	radius := float32(1)
	if !extents.IsEmpty() {
		radius = extents.Range().Length() * framingRadiusScale
	}
	target := math.NewVec3Zero()
	return metadata.Framing{
		Target:   target,
		Position: target.Add(math.NewVec3(0, 0, radius)),
		Radius:   radius,
		ZNear:    radius / 100,
		ZFar:     radius * 3,
	}
}
