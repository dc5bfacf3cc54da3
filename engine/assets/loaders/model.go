package loaders

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spaghettifunk/anima-scene/engine/core"
	"github.com/spaghettifunk/anima-scene/engine/renderer/metadata"
)

// ModelLoader reads a geometry file and every material library it references.
type ModelLoader struct {
	// Warn receives parse diagnostics. LogWarnings when nil.
	Warn WarnFunc
}

func (ml *ModelLoader) Load(path string, assetType metadata.ResourceType, params interface{}) (*metadata.Resource, error) {
	var p metadata.ModelResourceParams
	if typed, ok := params.(*metadata.ModelResourceParams); ok && typed != nil {
		p = *typed
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("model loader: read %s: %w", path, err)
	}

	clock := core.NewClock()
	clock.Start()
	obj := ParseOBJ(string(data), ml.warn())
	core.LogDebug("parsed %s: %d geometries, %d material libraries in %s", path, len(obj.Geometries), len(obj.MaterialLibs), clock.Stop())

	model := &metadata.ModelResourceData{
		Obj:       obj,
		Materials: make(map[string]*metadata.Material),
	}
	if !p.SkipMaterialLibs {
		model.Materials, model.MaterialLibPaths, err = ml.loadMaterialLibs(filepath.Dir(path), obj.MaterialLibs)
		if err != nil {
			return nil, err
		}
	}

	return &metadata.Resource{
		Name:     filepath.Base(path),
		FullPath: path,
		DataSize: uint64(len(data)),
		Data:     model,
	}, nil
}

// loadMaterialLibs reads every library relative to baseDir and parses them
// as one text, so later definitions of a name win. Missing libraries are
// reported and skipped.
func (ml *ModelLoader) loadMaterialLibs(baseDir string, libs []string) (map[string]*metadata.Material, []string, error) {
	var texts []string
	var paths []string
	for _, lib := range libs {
		libPath := ResolvePath(baseDir, lib)
		text, err := os.ReadFile(libPath)
		if errors.Is(err, fs.ErrNotExist) {
			ml.warn()("material library %s not found, skipping", libPath)
			continue
		}
		if err != nil {
			return nil, nil, fmt.Errorf("model loader: read material library %s: %w", libPath, err)
		}
		texts = append(texts, string(text))
		paths = append(paths, libPath)
	}
	return ParseMTL(strings.Join(texts, "\n"), ml.warn()), paths, nil
}

func (ml *ModelLoader) warn() WarnFunc {
	if ml.Warn != nil {
		return ml.Warn
	}
	return LogWarnings
}

func (ml *ModelLoader) Unload(*metadata.Resource) error {
	return nil
}

// ResolvePath resolves a filename found inside an asset against the
// directory of that asset. Absolute names are returned unchanged.
func ResolvePath(baseDir, name string) string {
	name = filepath.FromSlash(name)
	if filepath.IsAbs(name) {
		return filepath.Clean(name)
	}
	return filepath.Join(baseDir, name)
}
