package metadata

import "image"

/** @brief The name of the built-in opaque white texture. */
const DefaultTextureName string = "defaultWhite"

/**
 * @brief Which material slot a texture is bound to.
 */
type TextureUse int

const (
	TextureUseUnknown TextureUse = iota
	TextureUseMapDiffuse
	TextureUseMapSpecular
	TextureUseMapNormal
)

func (u TextureUse) String() string {
	switch u {
	case TextureUseMapDiffuse:
		return "diffuseMap"
	case TextureUseMapSpecular:
		return "specularMap"
	case TextureUseMapNormal:
		return "normalMap"
	}
	return "unknown"
}

/**
 * @brief Represents a decoded texture image.
 */
type Texture struct {
	/** @brief The resolved path, or DefaultTextureName for the built-in one. */
	Name   string
	Width  uint32
	Height uint32
	/** @brief Indicates if any pixel is not fully opaque. */
	HasTransparency bool
	/** @brief Pixels in non-premultiplied RGBA, flipped vertically when requested. */
	Image *image.NRGBA
}

/** @brief Parameters accepted by the texture loader. */
type TextureResourceParams struct {
	FlipY bool
}
