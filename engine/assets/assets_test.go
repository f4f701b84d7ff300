package assets

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/spaghettifunk/glkit/engine/core"
)

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestAssetManagerIndex(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "shaders", "mesh.vs"), "x")
	writeFile(t, filepath.Join(root, "shaders", "mesh.fs"), "x")
	writeFile(t, filepath.Join(root, "objects", "cube.obj"), "x")
	writeFile(t, filepath.Join(root, "README.md"), "x")

	am := NewAssetManager(core.NewEventBus())
	if err := am.Initialize(root, false); err != nil {
		t.Fatal(err)
	}
	defer am.Shutdown()

	wantShaders := []string{
		filepath.Join(root, "shaders", "mesh.fs"),
		filepath.Join(root, "shaders", "mesh.vs"),
	}
	if got := am.Files(AssetTypeShader); !reflect.DeepEqual(got, wantShaders) {
		t.Errorf("shader files = %v, want %v", got, wantShaders)
	}
	if got := am.Files(AssetTypeModel); len(got) != 1 {
		t.Errorf("model files = %v, want one", got)
	}
	if _, ok := am.Lookup(filepath.Join(root, "README.md")); ok {
		t.Errorf("non asset file was indexed")
	}
	info, ok := am.Lookup(filepath.Join(root, "objects", ".", "cube.obj"))
	if !ok || info.Type != AssetTypeModel {
		t.Errorf("Lookup(cube.obj) = %+v, %v", info, ok)
	}
	if got, want := am.Path("shaders", "mesh.vs"), filepath.Join(root, "shaders", "mesh.vs"); got != want {
		t.Errorf("Path() = %s, want %s", got, want)
	}
}

func TestAssetManagerMissingDir(t *testing.T) {
	am := NewAssetManager(core.NewEventBus())
	if err := am.Initialize(filepath.Join(t.TempDir(), "nope"), false); err == nil {
		t.Errorf("Initialize on a missing directory should fail")
	}
}

func TestAssetManagerWatch(t *testing.T) {
	root := t.TempDir()
	shader := filepath.Join(root, "shaders", "mesh.fs")
	writeFile(t, shader, "x")

	events := core.NewEventBus()
	changed := make(map[string]bool)
	events.Register(core.EVENT_CODE_ASSET_CHANGED, func(ctx core.EventContext) bool {
		changed[ctx.Data.(*core.AssetEvent).Path] = true
		return true
	})

	am := NewAssetManager(events)
	if err := am.Initialize(root, true); err != nil {
		t.Fatal(err)
	}

	writeFile(t, shader, "y")
	writeFile(t, filepath.Join(root, "notes.txt"), "ignored")

	deadline := time.Now().Add(5 * time.Second)
	for !changed[shader] && time.Now().Before(deadline) {
		events.Dispatch()
		time.Sleep(10 * time.Millisecond)
	}
	if !changed[shader] {
		t.Errorf("no change event for %s", shader)
	}
	if changed[filepath.Join(root, "notes.txt")] {
		t.Errorf("change event for a non asset file")
	}

	if err := am.Shutdown(); err != nil {
		t.Fatal(err)
	}
	// a second call is a no-op
	if err := am.Shutdown(); err != nil {
		t.Fatal(err)
	}
}
