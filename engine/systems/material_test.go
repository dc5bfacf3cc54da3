package systems

import (
	"reflect"
	"testing"

	"github.com/spaghettifunk/anima-scene/engine/renderer/metadata"
)

func f32(v float32) *float32 { return &v }

func TestMaterialSystem_ResolveMissingIsDefault(t *testing.T) {
	ms := NewMaterialSystem(nil)
	got, found := ms.Resolve(map[string]*metadata.Material{}, "nope")
	if found {
		t.Fatal("found=true; want false")
	}
	if !reflect.DeepEqual(got, DefaultMaterial()) {
		t.Fatalf("material=%+v; want the default", got)
	}
}

func TestMaterialSystem_ResolveMerges(t *testing.T) {
	ms := NewMaterialSystem(nil)
	table := map[string]*metadata.Material{
		"X": {Diffuse: []float32{0.2, 0.3, 0.4}, Opacity: f32(0.5)},
	}
	got, found := ms.Resolve(table, "X")
	if !found {
		t.Fatal("found=false; want true")
	}
	want := &metadata.Material{
		Diffuse:   []float32{0.2, 0.3, 0.4},
		Ambient:   []float32{0, 0, 0},
		Specular:  []float32{1, 1, 1},
		Shininess: f32(400),
		Opacity:   f32(0.5),
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("material=%+v; want %+v", got, want)
	}
}

func TestMergeMaterial_DoesNotAlias(t *testing.T) {
	defaults := DefaultMaterial()
	m := &metadata.Material{Specular: []float32{0.5, 0.5, 0.5}}
	out := MergeMaterial(defaults, m)

	out.Diffuse[0] = 0
	out.Specular[0] = 0
	*out.Shininess = 1
	if defaults.Diffuse[0] != 1 || *defaults.Shininess != 400 {
		t.Fatalf("defaults modified: %+v", defaults)
	}
	if m.Specular[0] != 0.5 {
		t.Fatalf("input modified: %+v", m)
	}
}

func TestMaterialSystem_CustomDefaults(t *testing.T) {
	ms := NewMaterialSystem(&metadata.Material{Diffuse: []float32{0.5, 0.5, 0.5}})
	got, _ := ms.Resolve(nil, DefaultMaterialName)
	if !reflect.DeepEqual(got.Diffuse, []float32{0.5, 0.5, 0.5}) || got.Shininess != nil {
		t.Fatalf("material=%+v", got)
	}
	if !reflect.DeepEqual(ms.GetDefault(), got) {
		t.Fatalf("GetDefault=%+v; want %+v", ms.GetDefault(), got)
	}
}
