package systems

import (
	"path/filepath"
	"reflect"
	"testing"

	"github.com/spaghettifunk/anima-scene/engine/math"
	"github.com/spaghettifunk/anima-scene/engine/renderer/metadata"
)

func str(s string) *string { return &s }

func TestNormalizeAttributes(t *testing.T) {
	pos := []float32{0, 0, 0, 1, 0, 0, 0, 1, 0}
	tcs := []struct {
		name     string
		data     map[metadata.Attribute][]float32
		constant bool
	}{
		{
			name: "matching colours",
			data: map[metadata.Attribute][]float32{
				metadata.AttributePosition: pos,
				metadata.AttributeColor:    {1, 0, 0, 0, 1, 0, 0, 0, 1},
			},
		},
		{
			name: "short colours",
			data: map[metadata.Attribute][]float32{
				metadata.AttributePosition: pos,
				metadata.AttributeColor:    {1, 0, 0},
			},
			constant: true,
		},
		{
			name:     "no colours",
			data:     map[metadata.Attribute][]float32{metadata.AttributePosition: pos},
			constant: true,
		},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			attrs := NormalizeAttributes(tc.data)
			color := attrs[metadata.AttributeColor]
			if color.IsConstant() != tc.constant {
				t.Fatalf("IsConstant=%v; want %v", color.IsConstant(), tc.constant)
			}
			if tc.constant {
				if color.NumComponents != 4 || !reflect.DeepEqual(color.Value, []float32{1, 1, 1, 1}) {
					t.Fatalf("color=%+v; want constant opaque white", color)
				}
			} else if color.NumComponents != 3 {
				t.Fatalf("NumComponents=%d; want 3", color.NumComponents)
			}
			if attrs[metadata.AttributePosition].NumComponents != 3 {
				t.Fatalf("position=%+v", attrs[metadata.AttributePosition])
			}
		})
	}
}

func TestNormalizeAttributes_ComponentCounts(t *testing.T) {
	attrs := NormalizeAttributes(map[metadata.Attribute][]float32{
		metadata.AttributePosition: {0, 0, 0},
		metadata.AttributeTexcoord: {0, 1},
		metadata.AttributeNormal:   {0, 0, 1},
	})
	want := map[metadata.Attribute]int{
		metadata.AttributePosition: 3,
		metadata.AttributeTexcoord: 2,
		metadata.AttributeNormal:   3,
		metadata.AttributeColor:    4,
	}
	for attr, n := range want {
		if attrs[attr].NumComponents != n {
			t.Fatalf("%s NumComponents=%d; want %d", attr, attrs[attr].NumComponents, n)
		}
	}
}

func approx(a, b float32) bool {
	d := a - b
	return d < 1e-5 && d > -1e-5
}

func TestFrameExtents(t *testing.T) {
	f := FrameExtents(math.Extents3D{Min: math.NewVec3(0, 0, 0), Max: math.NewVec3(3, 4, 0)})
	if !approx(f.Radius, 6) {
		t.Fatalf("radius=%v; want 6", f.Radius)
	}
	if !f.Position.Compare(math.NewVec3(0, 0, f.Radius), 0) || f.Target != math.NewVec3Zero() {
		t.Fatalf("framing=%+v", f)
	}
	if !approx(f.ZNear, 0.06) || !approx(f.ZFar, 18) {
		t.Fatalf("near=%v far=%v; want 0.06 18", f.ZNear, f.ZFar)
	}

	if empty := FrameExtents(math.NewEmptyExtents()); empty.Radius != 1 {
		t.Fatalf("empty radius=%v; want 1", empty.Radius)
	}
}

func TestSceneSystem_Assemble(t *testing.T) {
	baseDir := filepath.Join("assets", "models")
	model := &metadata.ModelResourceData{
		Obj: &metadata.ObjData{Geometries: []*metadata.Geometry{
			{
				Object:   "a",
				Material: "tex",
				Data: map[metadata.Attribute][]float32{
					metadata.AttributePosition: {0, 0, 0, 1, 0, 0, 0, 1, 0},
				},
			},
			{
				Object:   "b",
				Material: "missing",
				Data: map[metadata.Attribute][]float32{
					metadata.AttributePosition: {-1, -2, -3, 0, 0, 0, 0, 0, 0},
				},
			},
		}},
		Materials: map[string]*metadata.Material{
			"tex": {DiffuseMap: str("textures/bark.png")},
		},
		MaterialLibPaths: []string{filepath.Join(baseDir, "m.mtl")},
	}

	scene := NewSceneSystem(nil).Assemble(filepath.Join(baseDir, "m.obj"), baseDir, model)
	if len(scene.Parts) != 2 {
		t.Fatalf("parts=%d; want 2", len(scene.Parts))
	}
	a, b := scene.Parts[0], scene.Parts[1]
	if a.ID == b.ID || a.ID == scene.ID {
		t.Fatal("ids are not unique")
	}
	if a.VertexCount != 3 || a.Object != "a" || a.MaterialName != "tex" {
		t.Fatalf("part a=%+v", a)
	}
	wantMap := filepath.Join(baseDir, "textures", "bark.png")
	if a.Material.DiffuseMap == nil || *a.Material.DiffuseMap != wantMap {
		t.Fatalf("diffuse map=%v; want %s", a.Material.DiffuseMap, wantMap)
	}
	if *model.Materials["tex"].DiffuseMap != "textures/bark.png" {
		t.Fatal("parsed material table was modified")
	}
	if !reflect.DeepEqual(b.Material, DefaultMaterial()) {
		t.Fatalf("missing material=%+v; want the default", b.Material)
	}

	wantExtents := math.Extents3D{Min: math.NewVec3(-1, -2, -3), Max: math.NewVec3(1, 1, 0)}
	if scene.Extents != wantExtents {
		t.Fatalf("extents=%+v; want %+v", scene.Extents, wantExtents)
	}
	if scene.Framing.Radius == 1 {
		t.Fatalf("framing=%+v; want it derived from extents", scene.Framing)
	}
	if !reflect.DeepEqual(scene.TexturePaths(), []string{wantMap}) {
		t.Fatalf("texture paths=%q", scene.TexturePaths())
	}
}

func TestSceneSystem_AssembleEmpty(t *testing.T) {
	scene := NewSceneSystem(nil).Assemble("empty.obj", ".", &metadata.ModelResourceData{Obj: &metadata.ObjData{}})
	if len(scene.Parts) != 0 || !scene.Extents.IsEmpty() || scene.Framing.Radius != 1 {
		t.Fatalf("scene=%+v", scene)
	}
}
