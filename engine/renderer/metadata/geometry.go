package metadata

/** @brief The name used for object, group and material when none was declared. */
const DefaultGeometryName string = "default"

/**
 * @brief Names a vertex attribute stream of a geometry.
 */
type Attribute string

const (
	AttributePosition Attribute = "position"
	AttributeTexcoord Attribute = "texcoord"
	AttributeNormal   Attribute = "normal"
	AttributeColor    Attribute = "color"
)

/**
 * @brief The order in which face vertex references list their sub-indices
 * (position/texcoord/normal). Colour is never indexed on its own.
 */
var FaceAttributes = [3]Attribute{AttributePosition, AttributeTexcoord, AttributeNormal}

/**
 * @brief A triangulated, flattened run of faces sharing object, groups and material.
 */
type Geometry struct {
	/** @brief The object name active when the geometry was opened. */
	Object string
	/** @brief The group names active when the geometry was opened. */
	Groups []string
	/** @brief The material name active when the geometry was opened. */
	Material string
	/**
	 * @brief Flat attribute buffers, one entry per emitted vertex.
	 * A key is only present when at least one value was pushed into it.
	 */
	Data map[Attribute][]float32
}

// VertexCount is the number of emitted vertices (position triples).
func (g *Geometry) VertexCount() int {
	return len(g.Data[AttributePosition]) / 3
}

/**
 * @brief The result of parsing geometry text.
 */
type ObjData struct {
	Geometries []*Geometry
	/** @brief Material library filenames, unresolved, in declaration order. */
	MaterialLibs []string
}
