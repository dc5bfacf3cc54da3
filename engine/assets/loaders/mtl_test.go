package loaders

import (
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/spaghettifunk/anima-scene/engine/renderer/metadata"
)

func TestParseMTL_DiffuseAndOpacity(t *testing.T) {
	materials := ParseMTL("newmtl X\nKd 0.2 0.3 0.4\nd 0.5", DiscardWarnings)

	opacity := float32(0.5)
	want := map[string]*metadata.Material{
		"X": {Diffuse: []float32{0.2, 0.3, 0.4}, Opacity: &opacity},
	}
	if !reflect.DeepEqual(materials, want) {
		t.Fatalf("materials=%+v; want %+v", materials["X"], want["X"])
	}
}

func TestParseMTL_AllKeywords(t *testing.T) {
	text := `# exported
newmtl Bark Material
Ns 96.078431
Ka 1.000000 1.000000 1.000000
Kd 0.640000 0.640000 0.640000
Ks 0.500000 0.500000 0.500000
Ke 0.000000 0.000000 0.000000
Ni 1.450000
d 1.000000
illum 2
map_Kd textures/bark diffuse.png
map_Ns bark_spec.png
map_Bump -bm 0.5 bark_normal.png

newmtl Leaves
Kd 0.1 0.6 0.1
`
	materials := ParseMTL(text, DiscardWarnings)
	if len(materials) != 2 {
		t.Fatalf("materials=%d; want 2", len(materials))
	}

	bark := materials["Bark Material"]
	if bark == nil {
		t.Fatalf("material with spaces in its name not found: %v", materials)
	}
	if *bark.Shininess != float32(96.078431) || *bark.OpticalDensity != float32(1.45) || *bark.Opacity != 1 {
		t.Fatalf("scalars=%v %v %v", *bark.Shininess, *bark.OpticalDensity, *bark.Opacity)
	}
	if *bark.Illum != 2 {
		t.Fatalf("illum=%d; want 2", *bark.Illum)
	}
	if !reflect.DeepEqual(bark.Ambient, []float32{1, 1, 1}) || !reflect.DeepEqual(bark.Emissive, []float32{0, 0, 0}) {
		t.Fatalf("ambient=%v emissive=%v", bark.Ambient, bark.Emissive)
	}
	if *bark.DiffuseMap != "textures/bark diffuse.png" || *bark.SpecularMap != "bark_spec.png" {
		t.Fatalf("maps=%q %q", *bark.DiffuseMap, *bark.SpecularMap)
	}
	// option flags are kept verbatim
	if *bark.NormalMap != "-bm 0.5 bark_normal.png" {
		t.Fatalf("normalMap=%q", *bark.NormalMap)
	}

	leaves := materials["Leaves"]
	if leaves.Shininess != nil || leaves.Opacity != nil || leaves.Illum != nil || leaves.DiffuseMap != nil || leaves.Ambient != nil {
		t.Fatalf("leaves has fields it never declared: %+v", leaves)
	}
}

func TestParseMTL_MalformedNumbers(t *testing.T) {
	warn, warnings := collectWarnings()
	materials := ParseMTL("newmtl M\nNs abc\nKd 1 x 0\nd\nillum two\n", warn)
	m := materials["M"]

	if !math.IsNaN(float64(*m.Shininess)) {
		t.Fatalf("shininess=%v; want NaN", *m.Shininess)
	}
	if !math.IsNaN(float64(*m.Opacity)) {
		t.Fatalf("opacity=%v; want NaN", *m.Opacity)
	}
	if m.Diffuse[0] != 1 || !math.IsNaN(float64(m.Diffuse[1])) || m.Diffuse[2] != 0 {
		t.Fatalf("diffuse=%v; want [1 NaN 0]", m.Diffuse)
	}
	if *m.Illum != metadata.InvalidIllum {
		t.Fatalf("illum=%d; want %d", *m.Illum, metadata.InvalidIllum)
	}
	if len(*warnings) != 1 {
		t.Fatalf("warnings=%q; want only the illum warning", *warnings)
	}
}

func TestParseMTL_IllumTruncatesDecimals(t *testing.T) {
	m := ParseMTL("newmtl M\nillum 3.7", DiscardWarnings)["M"]
	if *m.Illum != 3 {
		t.Fatalf("illum=%d; want 3", *m.Illum)
	}
}

func TestParseMTL_UnhandledAndOrphanKeywords(t *testing.T) {
	warn, warnings := collectWarnings()
	materials := ParseMTL("Kd 1 1 1\nnewmtl A\nTf 1 1 1\nmap_Ka a.png\nKd 0 0 0\n", warn)

	if len(*warnings) != 3 {
		t.Fatalf("warnings=%q; want 3", *warnings)
	}
	if !strings.Contains((*warnings)[0], "before any newmtl") {
		t.Fatalf("first warning=%q", (*warnings)[0])
	}
	if !reflect.DeepEqual(materials["A"].Diffuse, []float32{0, 0, 0}) {
		t.Fatalf("diffuse=%v", materials["A"].Diffuse)
	}
}

func TestParseMTL_LaterDefinitionWins(t *testing.T) {
	materials := ParseMTL("newmtl A\nKd 1 0 0\nnewmtl A\nKs 1 1 1\n", DiscardWarnings)
	a := materials["A"]
	if a.Diffuse != nil || !reflect.DeepEqual(a.Specular, []float32{1, 1, 1}) {
		t.Fatalf("A=%+v; want only the second definition", a)
	}
}
