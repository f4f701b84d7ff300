package systems

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/spaghettifunk/glkit/engine/core"
	"github.com/spaghettifunk/glkit/engine/renderer/renderertest"
)

const (
	vertexSrc   = "void main() {}"
	fragmentSrc = "void main() { }"
)

func newShaderSystem(t *testing.T, max uint16) (*ShaderSystem, *renderertest.FakeBackend) {
	t.Helper()
	backend := renderertest.NewFakeBackend()
	ss, err := NewShaderSystem(&ShaderSystemConfig{MaxShaderCount: max}, backend)
	if err != nil {
		t.Fatal(err)
	}
	return ss, backend
}

func TestNewShaderSystemZero(t *testing.T) {
	if _, err := NewShaderSystem(&ShaderSystemConfig{}, renderertest.NewFakeBackend()); err == nil {
		t.Errorf("zero capacity should fail")
	}
}

func TestShaderSystemAddGet(t *testing.T) {
	ss, _ := newShaderSystem(t, 2)

	mesh, err := ss.AddShader("mesh", vertexSrc, fragmentSrc)
	if err != nil {
		t.Fatal(err)
	}
	again, err := ss.AddShader("mesh", renderertest.FailCompileMarker, fragmentSrc)
	if err != nil || again != mesh {
		t.Errorf("adding an existing name should return the registered shader, got %v, %v", again, err)
	}

	got, err := ss.GetShader("mesh")
	if err != nil || got != mesh {
		t.Errorf("GetShader(mesh) = %v, %v", got, err)
	}
	if _, err := ss.GetShader("light"); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("GetShader(light) error = %v, want ErrNotFound", err)
	}

	if _, err := ss.AddShader("broken", renderertest.FailCompileMarker, fragmentSrc); !errors.Is(err, core.ErrShaderCompile) {
		t.Errorf("broken shader error = %v", err)
	}
	if _, err := ss.GetShader("broken"); err == nil {
		t.Errorf("a shader that failed to build was registered")
	}

	if _, err := ss.AddShader("light", vertexSrc, fragmentSrc); err != nil {
		t.Fatal(err)
	}
	if _, err := ss.AddShader("plane", vertexSrc, fragmentSrc); err == nil {
		t.Errorf("adding past capacity should fail")
	}
	if got := ss.Names(); !reflect.DeepEqual(got, []string{"light", "mesh"}) {
		t.Errorf("Names() = %v", got)
	}
}

func TestShaderSystemReloadFile(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) string {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
		return path
	}
	sharedVS := write("shared.vs", vertexSrc)
	meshFS := write("mesh.fs", fragmentSrc)
	lightFS := write("light.fs", fragmentSrc)

	ss, _ := newShaderSystem(t, 10)
	mesh, err := ss.AddShaderFromFile("mesh", sharedVS, meshFS)
	if err != nil {
		t.Fatal(err)
	}
	light, err := ss.AddShaderFromFile("light", sharedVS, lightFS)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ss.AddShader("inline", vertexSrc, fragmentSrc); err != nil {
		t.Fatal(err)
	}

	meshProgram, lightProgram := mesh.Program(), light.Program()
	n, err := ss.ReloadFile(meshFS)
	if err != nil || n != 1 {
		t.Errorf("ReloadFile(mesh.fs) = %d, %v, want 1", n, err)
	}
	if mesh.Program() == meshProgram || light.Program() != lightProgram {
		t.Errorf("only the mesh shader should have been rebuilt")
	}

	n, err = ss.ReloadFile(sharedVS)
	if err != nil || n != 2 {
		t.Errorf("ReloadFile(shared.vs) = %d, %v, want 2", n, err)
	}

	write("light.fs", renderertest.FailCompileMarker)
	lightProgram = light.Program()
	n, err = ss.ReloadFile(lightFS)
	if n != 0 || !errors.Is(err, core.ErrShaderCompile) {
		t.Errorf("ReloadFile(broken) = %d, %v", n, err)
	}
	if light.Program() != lightProgram || !light.IsValid() {
		t.Errorf("a failed reload dropped the working program")
	}

	if n, err := ss.ReloadFile(filepath.Join(dir, "unrelated.fs")); n != 0 || err != nil {
		t.Errorf("ReloadFile(unrelated) = %d, %v", n, err)
	}
}

func TestShaderSystemShutdown(t *testing.T) {
	ss, backend := newShaderSystem(t, 4)
	for _, name := range []string{"a", "b", "c"} {
		if _, err := ss.AddShader(name, vertexSrc, fragmentSrc); err != nil {
			t.Fatal(err)
		}
	}
	if err := ss.Shutdown(); err != nil {
		t.Fatal(err)
	}
	if len(ss.Lookup) != 0 || backend.LiveObjects() != 0 {
		t.Errorf("lookup=%d live=%d after Shutdown", len(ss.Lookup), backend.LiveObjects())
	}
}
