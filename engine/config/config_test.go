package config

import (
	"math"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "glkit.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadMissingFile(t *testing.T) {
	got, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatal(err)
	}
	if want := Default(); !reflect.DeepEqual(got, want) {
		t.Errorf("Load() = %+v, want defaults %+v", got, want)
	}
}

func TestLoadPartialFile(t *testing.T) {
	path := writeConfig(t, `
width = 800
log_level = "debug"

[scene]
show_cube = false
show_monkey = true
clear_color = [1.0, 0.5, 0.0]

[camera]
yaw = 0.0
position = [0.0, 1.0, 5.0]
`)

	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	want := Default()
	want.StartWidth = 800
	want.LogLevel = "debug"
	want.Scene.ShowCube = false
	want.Scene.ShowMonkey = true
	want.Scene.ClearColor = [3]float32{1, 0.5, 0}
	want.Camera.Yaw = 0
	want.Camera.Position = [3]float32{0, 1, 5}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Load() = %+v\nwant %+v", got, want)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("GLKIT_CAMERA_FOVY", "60")
	t.Setenv("GLKIT_LOG_LEVEL", "warn")

	path := writeConfig(t, "[camera]\nfovy = 30.0\n")
	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.Camera.Fovy != 60 || got.LogLevel != "warn" {
		t.Errorf("fovy=%v log_level=%q, want the environment values", got.Camera.Fovy, got.LogLevel)
	}

	got, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatal(err)
	}
	if got.Camera.Fovy != 60 {
		t.Errorf("environment ignored without a file: fovy=%v", got.Camera.Fovy)
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "negative plane", body: "[scene]\nplane_size = -1\n"},
		{name: "far before near", body: "[camera]\nnear = 10.0\nfar = 1.0\n"},
		{name: "negative near", body: "[camera]\nnear = -1.0\n"},
		{name: "infinite yaw", body: "[camera]\nyaw = inf\n"},
		{name: "not toml", body: "width = = 3\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, tt.body)); err == nil {
				t.Errorf("Load() should fail")
			}
		})
	}
}

func TestValidateNonFiniteCamera(t *testing.T) {
	inf := float32(math.Inf(1))
	nan := float32(math.NaN())
	tests := []struct {
		name string
		edit func(c *CameraConfig)
	}{
		{name: "yaw +inf", edit: func(c *CameraConfig) { c.Yaw = inf }},
		{name: "yaw -inf", edit: func(c *CameraConfig) { c.Yaw = -inf }},
		{name: "pitch nan", edit: func(c *CameraConfig) { c.Pitch = nan }},
		{name: "fovy inf", edit: func(c *CameraConfig) { c.Fovy = inf }},
		{name: "far nan", edit: func(c *CameraConfig) { c.Far = nan }},
		{name: "position inf", edit: func(c *CameraConfig) { c.Position[1] = inf }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.edit(&c.Camera)
			if err := c.Validate(); err == nil {
				t.Errorf("Validate() should reject %+v", c.Camera)
			}
		})
	}
	if err := Default().Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	c := Default()
	c.Name = "Round trip"
	c.VSync = false
	c.Scene.ShowSphere = true
	c.Scene.ShowPlane = false
	c.Scene.PlaneSize = 20
	c.Scene.ClearColor = [3]float32{0.1, 0.2, 0.3}
	c.Camera.Position = [3]float32{-1, 2.5, 8}
	c.Camera.Pitch = -30
	c.Camera.Yaw = 45
	c.Camera.Far = 500

	path := filepath.Join(t.TempDir(), "saved.toml")
	if err := Save(path, c); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, c) {
		t.Errorf("Load(Save(c)) = %+v\nwant %+v", got, c)
	}
}

func TestSaveError(t *testing.T) {
	// A regular file cannot be used as a directory.
	parent := writeConfig(t, "")
	path := filepath.Join(parent, "glkit.toml")

	err := Save(path, Default())
	if err == nil {
		t.Fatal("Save() into a file path should fail")
	}
	if !strings.Contains(err.Error(), path) {
		t.Errorf("error %q does not name %s", err, path)
	}
}
