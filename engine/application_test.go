package engine

import (
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/spaghettifunk/anima-scene/engine/core"
)

func TestParseApplicationConfig_Defaults(t *testing.T) {
	cfg, err := ParseApplicationConfig([]byte(`scene = "cube.obj"`))
	if err != nil {
		t.Fatalf("ParseApplicationConfig: %v", err)
	}
	want := DefaultApplicationConfig()
	want.Scene = "cube.obj"
	if !reflect.DeepEqual(cfg, want) {
		t.Fatalf("config=%+v; want %+v", cfg, want)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestParseApplicationConfig_Overrides(t *testing.T) {
	data := []byte(`
name = "viewer"
log_level = "debug"
assets_dir = "/data"
scene = "models/tree.obj"
watch = true
load_textures = false

[default_material]
diffuse = [0.5, 0.5, 0.5]
shininess = 10.0
`)
	cfg, err := ParseApplicationConfig(data)
	if err != nil {
		t.Fatalf("ParseApplicationConfig: %v", err)
	}
	if cfg.Name != "viewer" || cfg.LogLevel != "debug" || !cfg.Watch || cfg.LoadTextures || !cfg.FlipTextures {
		t.Fatalf("config=%+v", cfg)
	}
	if got, want := cfg.ScenePath(), filepath.Join("/data", "models", "tree.obj"); got != want {
		t.Fatalf("ScenePath=%q; want %q", got, want)
	}

	m := cfg.ResolvedDefaultMaterial()
	if !reflect.DeepEqual(m.Diffuse, []float32{0.5, 0.5, 0.5}) || *m.Shininess != 10 {
		t.Fatalf("default material=%+v", m)
	}
	if !reflect.DeepEqual(m.Specular, []float32{1, 1, 1}) || *m.Opacity != 1 {
		t.Fatalf("default material lost built-in fields: %+v", m)
	}
}

func TestParseApplicationConfig_Invalid(t *testing.T) {
	tcs := []string{
		`scene = `,
		`watch = "yes"`,
	}
	for _, tc := range tcs {
		if _, err := ParseApplicationConfig([]byte(tc)); !errors.Is(err, core.ErrInvalidConfig) {
			t.Fatalf("ParseApplicationConfig(%q) err=%v; want ErrInvalidConfig", tc, err)
		}
	}
}

func TestApplicationConfig_Validate(t *testing.T) {
	tcs := []struct {
		name   string
		modify func(*ApplicationConfig)
	}{
		{name: "missing scene", modify: func(c *ApplicationConfig) { c.Scene = "" }},
		{name: "missing assets dir", modify: func(c *ApplicationConfig) { c.AssetsDir = "" }},
		{name: "bad log level", modify: func(c *ApplicationConfig) { c.LogLevel = "chatty" }},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultApplicationConfig()
			cfg.Scene = "a.obj"
			tc.modify(cfg)
			if err := cfg.Validate(); !errors.Is(err, core.ErrInvalidConfig) {
				t.Fatalf("err=%v; want ErrInvalidConfig", err)
			}
		})
	}
}

func TestLoadApplicationConfigOrDefault_Missing(t *testing.T) {
	cfg, err := LoadApplicationConfigOrDefault(filepath.Join(t.TempDir(), "none.toml"))
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultApplicationConfig()) {
		t.Fatalf("config=%+v; want defaults", cfg)
	}
}
