package loaders

import (
	"github.com/spaghettifunk/anima-scene/engine/renderer/metadata"
)

// ParseMTL parses material-library text into a table keyed by material
// name. Only fields whose keyword appears are set. Malformed numbers become
// NaN (or metadata.InvalidIllum for illum); nothing aborts the parse.
func ParseMTL(text string, warn WarnFunc) map[string]*metadata.Material {
	if warn == nil {
		warn = LogWarnings
	}
	materials := make(map[string]*metadata.Material)
	var current *metadata.Material

	scanKeywordLines(text, func(l keywordLine) {
		if l.keyword == "newmtl" {
			current = &metadata.Material{}
			materials[l.args] = current
			return
		}
		if !isMaterialKeyword(l.keyword) {
			warn("mtl line %d: unhandled keyword: %s", l.number, l.keyword)
			return
		}
		if current == nil {
			warn("mtl line %d: %s before any newmtl, skipping", l.number, l.keyword)
			return
		}

		switch l.keyword {
		case "Ns":
			current.Shininess = ptr(firstFloat(l.fields))
		case "Ni":
			current.OpticalDensity = ptr(firstFloat(l.fields))
		case "d":
			current.Opacity = ptr(firstFloat(l.fields))
		case "illum":
			illum := metadata.InvalidIllum
			if len(l.fields) > 0 {
				if v, ok := parseInt(l.fields[0]); ok {
					illum = v
				}
			}
			if illum == metadata.InvalidIllum {
				warn("mtl line %d: invalid illum %q", l.number, l.args)
			}
			current.Illum = &illum
		case "Ka":
			current.Ambient = parseFloats(l.fields)
		case "Kd":
			current.Diffuse = parseFloats(l.fields)
		case "Ks":
			current.Specular = parseFloats(l.fields)
		case "Ke":
			current.Emissive = parseFloats(l.fields)
		case "map_Kd":
			current.DiffuseMap = ptr(parseMapArgs(l.args))
		case "map_Ns":
			current.SpecularMap = ptr(parseMapArgs(l.args))
		case "map_Bump":
			current.NormalMap = ptr(parseMapArgs(l.args))
		}
	})

	return materials
}

func isMaterialKeyword(keyword string) bool {
	switch keyword {
	case "Ns", "Ni", "d", "illum", "Ka", "Kd", "Ks", "Ke", "map_Kd", "map_Ns", "map_Bump":
		return true
	}
	return false
}

// parseMapArgs returns the texture filename of a map_* line.
// TODO: strip option flags such as -bm and -s once a consumer needs them.
func parseMapArgs(args string) string {
	return args
}

func ptr[T any](v T) *T {
	return &v
}
