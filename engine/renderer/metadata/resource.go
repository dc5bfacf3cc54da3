package metadata

type ResourceType int

/** @brief Pre-defined resource types. */
const (
	/** @brief Unknown resource type. */
	ResourceTypeNone ResourceType = iota
	/** @brief Geometry text (.obj) together with its material libraries. */
	ResourceTypeModel
	/** @brief Material library text (.mtl). */
	ResourceTypeMaterial
	/** @brief Image used as a texture map. */
	ResourceTypeTexture
)

func (t ResourceType) String() string {
	switch t {
	case ResourceTypeModel:
		return "model"
	case ResourceTypeMaterial:
		return "material"
	case ResourceTypeTexture:
		return "texture"
	}
	return "none"
}

/**
 * @brief A generic structure for a resource. All resource loaders
 * load data into these.
 */
type Resource struct {
	/** @brief The name of the resource. */
	Name string
	/** @brief The full file path of the resource. */
	FullPath string
	/** @brief The size of the resource data in bytes. */
	DataSize uint64
	/** @brief The resource data. */
	Data interface{}
}

/**
 * @brief The data produced by the model loader: parsed geometry plus the
 * merged material table of every referenced library.
 */
type ModelResourceData struct {
	Obj       *ObjData
	Materials map[string]*Material
	/** @brief Resolved paths of the material libraries that were read. */
	MaterialLibPaths []string
}

/** @brief Parameters accepted by the model loader. */
type ModelResourceParams struct {
	/** @brief Skip reading the referenced material libraries. */
	SkipMaterialLibs bool
}
