package systems

import (
	"sync"

	"github.com/spaghettifunk/anima-scene/engine/assets/loaders"
	"github.com/spaghettifunk/anima-scene/engine/core"
	"github.com/spaghettifunk/anima-scene/engine/renderer/metadata"
)

// ResourceSource loads a resource by path, typically the asset manager.
type ResourceSource interface {
	LoadAsset(path string, resourceType metadata.ResourceType, params interface{}) (*metadata.Resource, error)
}

type textureEntry struct {
	texture *metadata.Texture
	err     error
}

// TextureSystem caches decoded textures by resolved path so parts sharing
// a map share one texture.
type TextureSystem struct {
	source         ResourceSource
	flipY          bool
	defaultTexture *metadata.Texture

	mu    sync.RWMutex
	items map[string]*textureEntry
}

func NewTextureSystem(source ResourceSource, flipY bool) *TextureSystem {
	return &TextureSystem{
		source:         source,
		flipY:          flipY,
		defaultTexture: loaders.DefaultTexture(),
		items:          make(map[string]*textureEntry),
	}
}

// GetDefault returns the built-in opaque white texture.
func (ts *TextureSystem) GetDefault() *metadata.Texture {
	return ts.defaultTexture
}

// Acquire returns the texture at path, loading it on first use. Failed
// loads are remembered until Invalidate is called for the path.
func (ts *TextureSystem) Acquire(path string) (*metadata.Texture, error) {
	// Fast path: read lock
	ts.mu.RLock()
	if entry, ok := ts.items[path]; ok {
		ts.mu.RUnlock()
		return entry.texture, entry.err
	}
	ts.mu.RUnlock()

	// Slow path: load from disk
	entry := &textureEntry{}
	res, err := ts.source.LoadAsset(path, metadata.ResourceTypeTexture, &metadata.TextureResourceParams{FlipY: ts.flipY})
	if err != nil {
		entry.err = err
	} else if tex, ok := res.Data.(*metadata.Texture); ok {
		entry.texture = tex
	}

	// Write lock with double-check
	ts.mu.Lock()
	defer ts.mu.Unlock()
	if existing, ok := ts.items[path]; ok {
		return existing.texture, existing.err
	}
	ts.items[path] = entry
	return entry.texture, entry.err
}

// Invalidate drops the cached texture for path so the next Acquire reloads it.
func (ts *TextureSystem) Invalidate(path string) bool {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	_, ok := ts.items[path]
	delete(ts.items, path)
	return ok
}

// Bind fills every part's Textures from its material maps. A diffuse slot
// without a usable map gets the default texture; other slots are left out.
func (ts *TextureSystem) Bind(scene *metadata.Scene) {
	for _, part := range scene.Parts {
		part.Textures = make(map[metadata.TextureUse]*metadata.Texture)
		if part.Material != nil {
			for use, ref := range part.Material.Maps() {
				if *ref == nil || **ref == "" {
					continue
				}
				tex, err := ts.Acquire(**ref)
				if err != nil {
					core.LogWarn("texture %s for %s: %s", **ref, use, err)
					continue
				}
				part.Textures[use] = tex
			}
		}
		if part.Textures[metadata.TextureUseMapDiffuse] == nil {
			part.Textures[metadata.TextureUseMapDiffuse] = ts.defaultTexture
		}
	}
}
