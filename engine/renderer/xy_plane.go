package renderer

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/spaghettifunk/glkit/engine/core"
	"github.com/spaghettifunk/glkit/engine/math"
)

const XyPlaneDefaultSize = 100

// XyPlane is a grid of unit lines on z=0, drawn with a borrowed shader that
// takes a single "mvp" uniform and a vec2 position at location 0.
type XyPlane struct {
	backend  RendererBackend
	shader   *Shader
	size     int
	geometry *Geometry
}

func NewXyPlane(backend RendererBackend) *XyPlane {
	return &XyPlane{backend: backend}
}

func (p *XyPlane) Init(shader *Shader, size int) error {
	if size <= 0 {
		return fmt.Errorf("xy plane size must be positive, got %d", size)
	}
	p.Free()

	geometry, err := p.backend.CreateGeometry(&GeometryConfig{
		Vertices:   math.GeometryGenerateGridLines(size),
		Stride:     2,
		Attributes: []VertexAttribute{{Location: 0, Size: 2, Offset: 0}},
	})
	if err != nil {
		return err
	}
	p.shader = shader
	p.size = size
	p.geometry = geometry
	return nil
}

func (p *XyPlane) Size() int {
	return p.size
}

// VertexCount is the number of line vertices drawn.
func (p *XyPlane) VertexCount() int32 {
	return int32(p.size * 8)
}

func (p *XyPlane) Draw(mvp mgl32.Mat4) error {
	if p.geometry == nil {
		return fmt.Errorf("draw of xy plane before init")
	}
	if err := p.shader.Use(); err != nil {
		core.LogError("Failed to use shader")
		return err
	}
	if err := p.shader.SetMat4("mvp", mvp, false); err != nil {
		core.LogError("Failed to set mvp")
		return err
	}
	if err := p.backend.DrawArrays(p.geometry, PrimitiveTopologyLines, 0, p.VertexCount()); err != nil {
		return fmt.Errorf("failed to draw xy plane: %w", err)
	}
	return nil
}

func (p *XyPlane) Free() {
	if p.geometry != nil {
		p.backend.DestroyGeometry(p.geometry)
		p.geometry = nil
	}
}
