package metadata

import (
	"github.com/google/uuid"
	"golang.org/x/exp/slices"

	"github.com/spaghettifunk/anima-scene/engine/math"
)

/**
 * @brief A vertex attribute ready to be uploaded. Either Data holds one
 * NumComponents-sized entry per vertex, or Value holds a constant applied
 * to every vertex.
 */
type VertexAttribute struct {
	NumComponents int
	Data          []float32
	Value         []float32
}

// IsConstant reports whether the attribute is a single value for all vertices.
func (a VertexAttribute) IsConstant() bool {
	return a.Data == nil && a.Value != nil
}

/**
 * @brief A drawable part: one geometry paired with its resolved material.
 */
type Part struct {
	ID uuid.UUID
	/** @brief The object name of the source geometry. */
	Object string
	Groups []string
	/** @brief The material name requested by the geometry. */
	MaterialName string
	/** @brief The material after merging with the default material. Map fields hold resolved paths. */
	Material    *Material
	Attributes  map[Attribute]VertexAttribute
	VertexCount int
	Extents     math.Extents3D
	/** @brief Textures bound to the part's material slots, filled by the caller that loads textures. */
	Textures map[TextureUse]*Texture
}

/**
 * @brief Camera placement that keeps the whole scene in view.
 */
type Framing struct {
	Target   math.Vec3
	Position math.Vec3
	Radius   float32
	ZNear    float32
	ZFar     float32
}

/**
 * @brief A fully assembled scene.
 */
type Scene struct {
	ID uuid.UUID
	/** @brief Path of the geometry file the scene was built from. */
	Source string
	/** @brief Directory used to resolve relative material and texture names. */
	BaseDir string
	Parts   []*Part
	/** @brief Resolved paths of the material libraries that were read. */
	MaterialLibPaths []string
	Extents          math.Extents3D
	Framing          Framing
}

// TexturePaths returns every distinct resolved texture path referenced by the parts' materials, sorted.
func (s *Scene) TexturePaths() []string {
	seen := make(map[string]struct{})
	var paths []string
	for _, p := range s.Parts {
		if p.Material == nil {
			continue
		}
		for _, ref := range p.Material.Maps() {
			if *ref == nil || **ref == "" {
				continue
			}
			if _, ok := seen[**ref]; ok {
				continue
			}
			seen[**ref] = struct{}{}
			paths = append(paths, **ref)
		}
	}
	slices.Sort(paths)
	return paths
}
