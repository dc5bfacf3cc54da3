package loaders

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spaghettifunk/anima-scene/engine/renderer/metadata"
)

// MaterialLoader reads a single material library file.
type MaterialLoader struct {
	// Warn receives parse diagnostics. LogWarnings when nil.
	Warn WarnFunc
}

func (ml *MaterialLoader) Load(path string, assetType metadata.ResourceType, params interface{}) (*metadata.Resource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("material loader: read %s: %w", path, err)
	}

	warn := ml.Warn
	if warn == nil {
		warn = LogWarnings
	}
	materials := ParseMTL(string(data), warn)

	return &metadata.Resource{
		Name:     filepath.Base(path),
		FullPath: path,
		DataSize: uint64(len(data)),
		Data:     materials,
	}, nil
}

func (ml *MaterialLoader) Unload(*metadata.Resource) error {
	return nil
}
