package loaders

import (
	"strconv"
	"strings"

	"github.com/spaghettifunk/anima-scene/engine/renderer/metadata"
)

// objParser holds the state of a single ParseOBJ call. Nothing is shared
// between calls.
type objParser struct {
	// attribute tables in face-reference order (position, texcoord, normal).
	// Row 0 is a zero sentinel so 1-based indices need no offset.
	tables [3][][]float32
	// inline vertex colours, indexed like positions. Row 0 is a sentinel.
	colors [][]float32

	materialLibs []string
	geometries   []*metadata.Geometry

	// pending is the geometry faces are appended to; nil until the first
	// face after a geometry boundary.
	pending *metadata.Geometry

	object   string
	groups   []string
	material string

	warn   WarnFunc
	lineNo int
}

// ParseOBJ parses indexed-face-set text into triangulated, flattened
// geometries. It never fails: unknown keywords and bad indices are reported
// through warn (LogWarnings when nil) and parsing continues.
func ParseOBJ(text string, warn WarnFunc) *metadata.ObjData {
	if warn == nil {
		warn = LogWarnings
	}
	p := &objParser{
		tables: [3][][]float32{
			{{0, 0, 0}},
			{{0, 0}},
			{{0, 0, 0}},
		},
		colors:   [][]float32{{0, 0, 0}},
		object:   metadata.DefaultGeometryName,
		groups:   []string{metadata.DefaultGeometryName},
		material: metadata.DefaultMaterialName,
		warn:     warn,
	}

	scanKeywordLines(text, p.handleLine)

	// drop the attribute streams that never received data
	for _, g := range p.geometries {
		for attr, buf := range g.Data {
			if len(buf) == 0 {
				delete(g.Data, attr)
			}
		}
	}

	return &metadata.ObjData{
		Geometries:   p.geometries,
		MaterialLibs: p.materialLibs,
	}
}

func (p *objParser) handleLine(l keywordLine) {
	p.lineNo = l.number

	switch l.keyword {
	case "v":
		// more than 3 values means the vertex carries an inline colour
		if len(l.fields) > 3 {
			p.tables[0] = append(p.tables[0], parseFloats(l.fields[:3]))
			p.colors = append(p.colors, parseFloats(l.fields[3:]))
		} else {
			p.tables[0] = append(p.tables[0], parseFloats(l.fields))
		}
	case "vt":
		p.tables[1] = append(p.tables[1], parseFloats(l.fields))
	case "vn":
		p.tables[2] = append(p.tables[2], parseFloats(l.fields))
	case "f":
		p.setGeometry()
		// fan triangulation around the first vertex
		for tri := 0; tri < len(l.fields)-2; tri++ {
			p.addVertex(l.fields[0])
			p.addVertex(l.fields[tri+1])
			p.addVertex(l.fields[tri+2])
		}
	case "s":
		// smoothing groups are not used
	case "mtllib":
		// the format allows several names here, but many files use a
		// single filename containing spaces
		p.materialLibs = append(p.materialLibs, l.args)
	case "usemtl":
		p.material = l.args
		p.newGeometry()
	case "g":
		p.groups = l.fields
		p.newGeometry()
	case "o":
		p.object = l.args
		p.newGeometry()
	default:
		p.warn("obj line %d: unhandled keyword: %s", l.number, l.keyword)
	}
}

// newGeometry marks a geometry boundary. A pending geometry without any
// position data is kept open so back-to-back state changes do not emit
// empty geometries.
func (p *objParser) newGeometry() {
	if p.pending != nil && len(p.pending.Data[metadata.AttributePosition]) > 0 {
		p.pending = nil
	}
}

// setGeometry makes sure a geometry is open for the next face.
func (p *objParser) setGeometry() {
	if p.pending != nil {
		if len(p.pending.Data[metadata.AttributePosition]) == 0 {
			// still empty: take over the state set since it was opened
			p.applyState(p.pending)
		}
		return
	}
	p.pending = &metadata.Geometry{
		Data: make(map[metadata.Attribute][]float32, 4),
	}
	p.applyState(p.pending)
	p.geometries = append(p.geometries, p.pending)
}

func (p *objParser) applyState(g *metadata.Geometry) {
	g.Object = p.object
	g.Groups = append([]string(nil), p.groups...)
	g.Material = p.material
}

// addVertex appends the rows referenced by a pos[/tex][/norm] token to the
// pending geometry. Colour rides on the position index.
func (p *objParser) addVertex(ref string) {
	g := p.pending
	for i, s := range strings.Split(ref, "/") {
		if i >= len(metadata.FaceAttributes) {
			break
		}
		if s == "" {
			continue
		}
		attr := metadata.FaceAttributes[i]
		index := p.resolveIndex(p.tables[i], s, attr)
		g.Data[attr] = append(g.Data[attr], p.tables[i][index]...)

		if i == 0 && len(p.colors) > 1 {
			g.Data[metadata.AttributeColor] = append(g.Data[metadata.AttributeColor], p.colorRow(index)...)
		}
	}
}

// resolveIndex maps a face sub-index to a table row. Negative indices are
// relative to the table's current length. Anything that does not land on
// an existing row resolves to the sentinel row 0.
func (p *objParser) resolveIndex(table [][]float32, s string, attr metadata.Attribute) int {
	index, err := strconv.Atoi(s)
	if err != nil {
		p.warn("obj line %d: invalid %s index %q, using sentinel row", p.lineNo, attr, s)
		return 0
	}
	if index < 0 {
		index += len(table)
	}
	if index < 0 || index >= len(table) {
		p.warn("obj line %d: %s index %s out of range (%d rows), using sentinel row", p.lineNo, attr, s, len(table)-1)
		return 0
	}
	return index
}

func (p *objParser) colorRow(index int) []float32 {
	if index >= len(p.colors) {
		p.warn("obj line %d: no colour for position %d, using sentinel row", p.lineNo, index)
		return p.colors[0]
	}
	return p.colors[index]
}
