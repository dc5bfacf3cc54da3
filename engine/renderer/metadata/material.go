package metadata

/** @brief The name of the default material. */
const DefaultMaterialName string = "default"

/** @brief Value stored in Illum when the illumination model could not be parsed. */
const InvalidIllum int = -1

/**
 * @brief Shading parameters declared by a material library.
 * A nil field means its keyword never appeared for this material.
 */
type Material struct {
	/** @brief Specular exponent (Ns). */
	Shininess *float32 `json:"shininess,omitempty" toml:"shininess,omitempty"`
	/** @brief Index of refraction (Ni). */
	OpticalDensity *float32 `json:"opticalDensity,omitempty" toml:"optical_density,omitempty"`
	/** @brief Dissolve (d). */
	Opacity *float32 `json:"opacity,omitempty" toml:"opacity,omitempty"`
	/** @brief Illumination model selector (illum). */
	Illum *int `json:"illum,omitempty" toml:"illum,omitempty"`

	Ambient  []float32 `json:"ambient,omitempty" toml:"ambient,omitempty"`
	Diffuse  []float32 `json:"diffuse,omitempty" toml:"diffuse,omitempty"`
	Specular []float32 `json:"specular,omitempty" toml:"specular,omitempty"`
	Emissive []float32 `json:"emissive,omitempty" toml:"emissive,omitempty"`

	/** @brief Texture map filenames (map_Kd, map_Ns, map_Bump). */
	DiffuseMap  *string `json:"diffuseMap,omitempty" toml:"diffuse_map,omitempty"`
	SpecularMap *string `json:"specularMap,omitempty" toml:"specular_map,omitempty"`
	NormalMap   *string `json:"normalMap,omitempty" toml:"normal_map,omitempty"`
}

// Clone returns a deep copy of the material.
func (m *Material) Clone() *Material {
	if m == nil {
		return nil
	}
	return &Material{
		Shininess:      clonePtr(m.Shininess),
		OpticalDensity: clonePtr(m.OpticalDensity),
		Opacity:        clonePtr(m.Opacity),
		Illum:          clonePtr(m.Illum),
		Ambient:        cloneSlice(m.Ambient),
		Diffuse:        cloneSlice(m.Diffuse),
		Specular:       cloneSlice(m.Specular),
		Emissive:       cloneSlice(m.Emissive),
		DiffuseMap:     clonePtr(m.DiffuseMap),
		SpecularMap:    clonePtr(m.SpecularMap),
		NormalMap:      clonePtr(m.NormalMap),
	}
}

// Maps returns pointers to the texture map fields keyed by their kind,
// so callers can resolve or replace them in place.
func (m *Material) Maps() map[TextureUse]**string {
	return map[TextureUse]**string{
		TextureUseMapDiffuse:  &m.DiffuseMap,
		TextureUseMapSpecular: &m.SpecularMap,
		TextureUseMapNormal:   &m.NormalMap,
	}
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneSlice[T any](s []T) []T {
	if s == nil {
		return nil
	}
	out := make([]T, len(s))
	copy(out, s)
	return out
}
