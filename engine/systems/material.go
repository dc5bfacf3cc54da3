package systems

import (
	"github.com/spaghettifunk/anima-scene/engine/renderer/metadata"
)

/** @brief The name of the default material. */
const DefaultMaterialName string = metadata.DefaultMaterialName

// DefaultMaterial returns the values used for every field a part's material
// does not declare.
func DefaultMaterial() *metadata.Material {
	shininess := float32(400)
	opacity := float32(1)
	return &metadata.Material{
		Diffuse:   []float32{1, 1, 1},
		Ambient:   []float32{0, 0, 0},
		Specular:  []float32{1, 1, 1},
		Shininess: &shininess,
		Opacity:   &opacity,
	}
}

// MaterialSystem resolves the material named by a geometry against a parsed
// material table and fills in the defaults.
type MaterialSystem struct {
	defaultMaterial *metadata.Material
}

// NewMaterialSystem uses defaults as the fallback material, or
// DefaultMaterial() when defaults is nil.
func NewMaterialSystem(defaults *metadata.Material) *MaterialSystem {
	if defaults == nil {
		defaults = DefaultMaterial()
	}
	return &MaterialSystem{defaultMaterial: defaults.Clone()}
}

// GetDefault returns a copy of the fallback material.
func (ms *MaterialSystem) GetDefault() *metadata.Material {
	return ms.defaultMaterial.Clone()
}

// Resolve looks name up in table and merges the result over the default
// material. found is false when the table has no such material, in which
// case the result equals the default.
func (ms *MaterialSystem) Resolve(table map[string]*metadata.Material, name string) (material *metadata.Material, found bool) {
	m, found := table[name]
	return MergeMaterial(ms.defaultMaterial, m), found
}

// MergeMaterial is a shallow, field-by-field merge: every field m declares
// wins, the rest come from defaults. The result shares no memory with
// either input.
func MergeMaterial(defaults, m *metadata.Material) *metadata.Material {
	out := defaults.Clone()
	if out == nil {
		out = &metadata.Material{}
	}
	if m == nil {
		return out
	}
	m = m.Clone()

	if m.Shininess != nil {
		out.Shininess = m.Shininess
	}
	if m.OpticalDensity != nil {
		out.OpticalDensity = m.OpticalDensity
	}
	if m.Opacity != nil {
		out.Opacity = m.Opacity
	}
	if m.Illum != nil {
		out.Illum = m.Illum
	}
	if m.Ambient != nil {
		out.Ambient = m.Ambient
	}
	if m.Diffuse != nil {
		out.Diffuse = m.Diffuse
	}
	if m.Specular != nil {
		out.Specular = m.Specular
	}
	if m.Emissive != nil {
		out.Emissive = m.Emissive
	}
	if m.DiffuseMap != nil {
		out.DiffuseMap = m.DiffuseMap
	}
	if m.SpecularMap != nil {
		out.SpecularMap = m.SpecularMap
	}
	if m.NormalMap != nil {
		out.NormalMap = m.NormalMap
	}
	return out
}
