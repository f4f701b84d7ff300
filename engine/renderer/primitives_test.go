package renderer_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/spaghettifunk/glkit/engine/core"
	"github.com/spaghettifunk/glkit/engine/renderer"
	"github.com/spaghettifunk/glkit/engine/renderer/renderertest"
)

func TestXyPlane(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		wantErr bool
	}{
		{name: "default", size: renderer.XyPlaneDefaultSize},
		{name: "small", size: 1},
		{name: "zero", size: 0, wantErr: true},
		{name: "negative", size: -4, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := renderertest.NewFakeBackend()
			plane := renderer.NewXyPlane(backend)
			err := plane.Init(newTestShader(t, backend), tt.size)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Init() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if err := plane.Draw(mgl32.Ident4()); err == nil {
					t.Errorf("Draw before a successful Init should fail")
				}
				return
			}

			mvp := mgl32.Scale3D(2, 2, 2)
			if err := plane.Draw(mvp); err != nil {
				t.Fatal(err)
			}
			draw := backend.Draws[0]
			if draw.Topology != renderer.PrimitiveTopologyLines || draw.Count != int32(8*tt.size) {
				t.Errorf("draw = %+v, want %d lines vertices", draw, 8*tt.size)
			}
			if u, _ := backend.UniformByName("mvp"); u.Value != mvp {
				t.Errorf("mvp = %v", u.Value)
			}
			for _, config := range backend.Geometries {
				if len(config.Vertices) != 16*tt.size || config.Stride != 2 {
					t.Errorf("vertex floats = %d stride = %d", len(config.Vertices), config.Stride)
				}
			}

			plane.Free()
			if len(backend.Geometries) != 0 {
				t.Errorf("Free left the geometry")
			}
		})
	}
}

func TestXyPlaneReinit(t *testing.T) {
	backend := renderertest.NewFakeBackend()
	shader := newTestShader(t, backend)
	plane := renderer.NewXyPlane(backend)
	if err := plane.Init(shader, 2); err != nil {
		t.Fatal(err)
	}
	if err := plane.Init(shader, 3); err != nil {
		t.Fatal(err)
	}
	if plane.Size() != 3 || plane.VertexCount() != 24 || len(backend.Geometries) != 1 {
		t.Errorf("size=%d count=%d geometries=%d", plane.Size(), plane.VertexCount(), len(backend.Geometries))
	}
}

func TestSquare(t *testing.T) {
	backend := renderertest.NewFakeBackend()
	square := renderer.NewSquare(backend)
	if err := square.Draw(mgl32.Ident4()); err == nil {
		t.Errorf("Draw before Init should fail")
	}
	if err := square.Init(); err != nil {
		t.Fatal(err)
	}
	if !square.Shader().IsValid() {
		t.Fatalf("square shader not built")
	}

	if err := square.Draw(mgl32.Ident4()); err != nil {
		t.Fatal(err)
	}
	draw := backend.Draws[0]
	if draw.Topology != renderer.PrimitiveTopologyTriangleStrip || draw.Count != 4 {
		t.Errorf("draw = %+v", draw)
	}

	square.Free()
	if backend.LiveObjects() != 0 {
		t.Errorf("Free left %d objects", backend.LiveObjects())
	}
}

func TestSquareInitFailure(t *testing.T) {
	backend := renderertest.NewFakeBackend()
	backend.FailGeometry = true
	square := renderer.NewSquare(backend)
	if err := square.Init(); !errors.Is(err, core.ErrGL) {
		t.Fatalf("Init() error = %v, want ErrGL", err)
	}
	if square.Shader().IsValid() || backend.LiveObjects() != 0 {
		t.Errorf("failed Init leaked GL objects")
	}
}

func TestShaderSourceHeaders(t *testing.T) {
	vs := renderer.VertexShader("void main() {}")
	fs := renderer.FragmentShader("void main() {}")
	for _, src := range []string{vs, fs} {
		if !strings.HasPrefix(src, "#version 330 core\n") || !strings.HasSuffix(src, "void main() {}") {
			t.Errorf("unexpected source:\n%s", src)
		}
	}
	if !strings.Contains(fs, "#define gl_FragColor frag_out") {
		t.Errorf("fragment header does not map gl_FragColor")
	}
}
