package loaders

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/tiff"
	"golang.org/x/image/webp"

	"github.com/spaghettifunk/anima-scene/engine/core"
	"github.com/spaghettifunk/anima-scene/engine/renderer/metadata"
)

type decodeFunc func(io.Reader) (image.Image, error)

// tga registers itself with an empty magic string, which makes
// image.Decode hand every file to it. Decoders are picked by extension.
var textureDecoders = map[string]decodeFunc{
	".png":  png.Decode,
	".jpg":  jpeg.Decode,
	".jpeg": jpeg.Decode,
	".bmp":  bmp.Decode,
	".tif":  tiff.Decode,
	".tiff": tiff.Decode,
	".webp": webp.Decode,
	".tga":  tga.Decode,
}

// TextureLoader decodes texture map images into NRGBA pixels.
type TextureLoader struct{}

func (tl *TextureLoader) Load(path string, assetType metadata.ResourceType, params interface{}) (*metadata.Resource, error) {
	flipY := false
	if typed, ok := params.(*metadata.TextureResourceParams); ok && typed != nil {
		flipY = typed.FlipY
	}

	ext := strings.ToLower(filepath.Ext(path))
	decode, ok := textureDecoders[ext]
	if !ok {
		return nil, fmt.Errorf("texture loader: %s: unsupported image format %q", path, ext)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("texture loader: open %s: %w", path, err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("texture loader: stat %s: %w", path, err)
	}

	img, err := decode(file)
	if err != nil {
		return nil, fmt.Errorf("texture loader: decode %s: %w", path, err)
	}
	core.LogDebug("decoded %s texture %s", strings.TrimPrefix(ext, "."), path)

	pixels := toNRGBA(img)
	if flipY {
		flipVertical(pixels)
	}
	b := pixels.Bounds()

	return &metadata.Resource{
		Name:     filepath.Base(path),
		FullPath: path,
		DataSize: uint64(info.Size()),
		Data: &metadata.Texture{
			Name:            path,
			Width:           uint32(b.Dx()),
			Height:          uint32(b.Dy()),
			HasTransparency: !pixels.Opaque(),
			Image:           pixels,
		},
	}, nil
}

func (tl *TextureLoader) Unload(*metadata.Resource) error {
	return nil
}

// DefaultTexture is the 1x1 opaque white texture used when a material has
// no diffuse map.
func DefaultTexture() *metadata.Texture {
	img := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	copy(img.Pix, []uint8{255, 255, 255, 255})
	return &metadata.Texture{
		Name:   metadata.DefaultTextureName,
		Width:  1,
		Height: 1,
		Image:  img,
	}
}

func toNRGBA(src image.Image) *image.NRGBA {
	if n, ok := src.(*image.NRGBA); ok {
		return n
	}
	b := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst
}

func flipVertical(img *image.NRGBA) {
	b := img.Bounds()
	rowLen := b.Dx() * 4
	tmp := make([]uint8, rowLen)
	for top, bottom := b.Min.Y, b.Max.Y-1; top < bottom; top, bottom = top+1, bottom-1 {
		t := img.Pix[img.PixOffset(b.Min.X, top) : img.PixOffset(b.Min.X, top)+rowLen]
		u := img.Pix[img.PixOffset(b.Min.X, bottom) : img.PixOffset(b.Min.X, bottom)+rowLen]
		copy(tmp, t)
		copy(t, u)
		copy(u, tmp)
	}
}
