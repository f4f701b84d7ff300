package renderer_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/spaghettifunk/glkit/engine/core"
	"github.com/spaghettifunk/glkit/engine/math"
	"github.com/spaghettifunk/glkit/engine/renderer"
	"github.com/spaghettifunk/glkit/engine/renderer/renderertest"
)

func triangle() []math.Vertex {
	return []math.Vertex{
		{Position: mgl32.Vec3{0, 0, 0}},
		{Position: mgl32.Vec3{1, 0, 0}},
		{Position: mgl32.Vec3{0, 1, 0}},
	}
}

func newTestShader(t *testing.T, backend renderer.RendererBackend) *renderer.Shader {
	t.Helper()
	shader := renderer.NewShader(backend, "test")
	if err := shader.Init(vertexSrc, fragmentSrc); err != nil {
		t.Fatal(err)
	}
	return shader
}

func TestMeshInit(t *testing.T) {
	backend := renderertest.NewFakeBackend()
	mesh := renderer.NewMesh(backend, "tri")

	vertices := triangle()
	indices := []uint32{0, 1, 2}
	if err := mesh.Init(vertices, indices); err != nil {
		t.Fatal(err)
	}
	// the mesh keeps its own copy
	vertices[0].Position = mgl32.Vec3{9, 9, 9}
	indices[0] = 2
	if mesh.Vertices()[0].Position != (mgl32.Vec3{}) || mesh.Indices()[0] != 0 {
		t.Errorf("mesh data aliases the caller's slices")
	}

	if len(backend.Geometries) != 1 {
		t.Fatalf("geometries = %d, want 1", len(backend.Geometries))
	}
	for _, config := range backend.Geometries {
		if config.Stride != math.VertexFloats || len(config.Vertices) != 3*math.VertexFloats {
			t.Errorf("stride %d with %d floats", config.Stride, len(config.Vertices))
		}
		if len(config.Attributes) != 3 || config.Attributes[2].Offset != 6 {
			t.Errorf("attributes = %+v", config.Attributes)
		}
	}

	if err := mesh.Init(triangle(), []uint32{0, 1, 2}); err == nil {
		t.Errorf("second Init should fail")
	}
}

func TestMeshInitErrors(t *testing.T) {
	backend := renderertest.NewFakeBackend()
	if err := renderer.NewMesh(backend, "bad").Init(triangle(), []uint32{0, 1, 3}); !errors.Is(err, core.ErrIndexOutOfRange) {
		t.Errorf("Init() error = %v, want ErrIndexOutOfRange", err)
	}

	backend.FailGeometry = true
	mesh := renderer.NewMesh(backend, "nomem")
	if err := mesh.Init(triangle(), []uint32{0, 1, 2}); !errors.Is(err, core.ErrGL) {
		t.Errorf("Init() error = %v, want ErrGL", err)
	}
	if err := mesh.Draw(newTestShader(t, backend)); err == nil {
		t.Errorf("Draw of a mesh without geometry should fail")
	}
}

func TestMeshDraw(t *testing.T) {
	backend := renderertest.NewFakeBackend()
	shader := newTestShader(t, backend)
	mesh := renderer.NewMesh(backend, "tri")
	if err := mesh.Init(triangle(), []uint32{0, 1, 2}); err != nil {
		t.Fatal(err)
	}

	if err := mesh.Draw(shader); err != nil {
		t.Fatal(err)
	}
	if len(backend.Draws) != 1 {
		t.Fatalf("draws = %d, want 1", len(backend.Draws))
	}
	draw := backend.Draws[0]
	if draw.Program != shader.Program() || draw.Topology != renderer.PrimitiveTopologyTriangles || draw.Count != 3 {
		t.Errorf("draw = %+v", draw)
	}

	shader.Free()
	if err := mesh.Draw(shader); !errors.Is(err, core.ErrShaderInvalid) {
		t.Errorf("Draw with a freed shader error = %v", err)
	}

	mesh.Free()
	mesh.Free()
	if len(backend.Geometries) != 0 {
		t.Errorf("Free left %d geometries", len(backend.Geometries))
	}
}

func TestMeshInitFromObjFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tri.obj")
	if err := os.WriteFile(path, []byte("v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	mesh := renderer.NewMesh(renderertest.NewFakeBackend(), "tri")
	if err := mesh.InitFromObjFile(path); err != nil {
		t.Fatal(err)
	}
	for i, v := range mesh.Vertices() {
		if !v.Normal.ApproxFuncEqual(mgl32.Vec3{0, 0, 1}, near) {
			t.Errorf("vertex %d normal = %v", i, v.Normal)
		}
	}

	missing := renderer.NewMesh(renderertest.NewFakeBackend(), "missing")
	if err := missing.InitFromObjFile(filepath.Join(t.TempDir(), "missing.obj")); err == nil {
		t.Errorf("missing file should fail")
	}
}
