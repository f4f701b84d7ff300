package renderer

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

var squareVertexSource = VertexShader(`
uniform mat4 mvp;

in vec3 pos;

void main() {
  gl_Position = mvp * vec4(pos, 1.0);
}
`)

var squareFragmentSource = FragmentShader(`
void main() {
  gl_FragColor = vec4(1.0f, 0.5f, 0.2f, 1.0f);
}
`)

var squareVertices = []float32{
	-1.0, -1.0, 0.0, // left bottom
	-1.0, 1.0, 0.0, // left top
	1.0, -1.0, 0.0, // right bottom
	1.0, 1.0, 0.0, // right top
}

// Square is a solid orange quad over [-1,1]x[-1,1] with its own shader.
type Square struct {
	backend  RendererBackend
	shader   *Shader
	geometry *Geometry
}

func NewSquare(backend RendererBackend) *Square {
	return &Square{
		backend: backend,
		shader:  NewShader(backend, "square"),
	}
}

func (s *Square) Init() error {
	if err := s.shader.Init(squareVertexSource, squareFragmentSource); err != nil {
		return err
	}
	geometry, err := s.backend.CreateGeometry(&GeometryConfig{
		Vertices:   squareVertices,
		Stride:     3,
		Attributes: []VertexAttribute{{Location: 0, Size: 3, Offset: 0}},
	})
	if err != nil {
		s.shader.Free()
		return err
	}
	s.geometry = geometry
	return nil
}

func (s *Square) Shader() *Shader {
	return s.shader
}

func (s *Square) Draw(mvp mgl32.Mat4) error {
	if s.geometry == nil {
		return fmt.Errorf("draw of square before init")
	}
	if err := s.shader.Use(); err != nil {
		return err
	}
	if err := s.shader.SetMat4("mvp", mvp, false); err != nil {
		return err
	}
	return s.backend.DrawArrays(s.geometry, PrimitiveTopologyTriangleStrip, 0, 4)
}

func (s *Square) Free() {
	if s.geometry != nil {
		s.backend.DestroyGeometry(s.geometry)
		s.geometry = nil
	}
	s.shader.Free()
}
