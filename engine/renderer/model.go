package renderer

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/spaghettifunk/glkit/engine/math"
)

type RenderMode int32

const (
	RenderModeLight RenderMode = 0
	RenderModeDepth RenderMode = 1
)

func (m RenderMode) String() string {
	switch m {
	case RenderModeLight:
		return "light"
	case RenderModeDepth:
		return "depth"
	}
	return fmt.Sprintf("RenderMode(%d)", int32(m))
}

const (
	modelDefaultNear float32 = 0.1
	modelDefaultFar  float32 = 100.0
)

// Model places a mesh in the world. The mesh and the shader are borrowed
// from the systems and must outlive the model.
type Model struct {
	mesh      *Mesh
	shader    *Shader
	transform *math.Transform

	isLight    bool
	color      mgl32.Vec3
	renderMode RenderMode
	near       float32
	far        float32
}

func NewModel(mesh *Mesh, shader *Shader, isLight bool) *Model {
	return &Model{
		mesh:       mesh,
		shader:     shader,
		transform:  math.TransformCreate(),
		isLight:    isLight,
		color:      mgl32.Vec3{1, 1, 1},
		renderMode: RenderModeLight,
		near:       modelDefaultNear,
		far:        modelDefaultFar,
	}
}

func (m *Model) Draw(view, projection mgl32.Mat4) error {
	if err := m.shader.Use(); err != nil {
		return err
	}
	if err := m.shader.SetMat4("view", view, false); err != nil {
		return err
	}
	if err := m.shader.SetMat4("projection", projection, false); err != nil {
		return err
	}
	if err := m.shader.SetMat4("model", m.GetModelMatrix(), false); err != nil {
		return err
	}
	if err := m.shader.SetVec3("color", m.color); err != nil {
		return err
	}
	if !m.isLight {
		if err := m.shader.SetInt("render_mode", int32(m.renderMode)); err != nil {
			return err
		}
		if err := m.shader.SetFloat("near", m.near); err != nil {
			return err
		}
		if err := m.shader.SetFloat("far", m.far); err != nil {
			return err
		}
	}
	return m.mesh.Draw(m.shader)
}

func (m *Model) GetModelMatrix() mgl32.Mat4 {
	return m.transform.GetLocal()
}

func (m *Model) SetLight(position, color mgl32.Vec3) error {
	if err := m.shader.Use(); err != nil {
		return err
	}
	if err := m.shader.SetVec3("light_pos", position); err != nil {
		return err
	}
	return m.shader.SetVec3("light_color", color)
}

func (m *Model) Mesh() *Mesh {
	return m.mesh
}

func (m *Model) Shader() *Shader {
	return m.shader
}

func (m *Model) GetPosition() mgl32.Vec3 {
	return m.transform.Position
}

func (m *Model) SetPosition(position mgl32.Vec3) {
	m.transform.SetPosition(position)
}

// GetRotation returns the Euler angles in radians.
func (m *Model) GetRotation() mgl32.Vec3 {
	return m.transform.Rotation
}

func (m *Model) SetRotation(rotation mgl32.Vec3) {
	m.transform.SetRotation(rotation)
}

func (m *Model) GetScale() mgl32.Vec3 {
	return m.transform.Scale
}

func (m *Model) SetScale(scale mgl32.Vec3) {
	m.transform.SetScale(scale)
}

func (m *Model) IsLight() bool {
	return m.isLight
}

func (m *Model) GetColor() mgl32.Vec3 {
	return m.color
}

func (m *Model) SetColor(color mgl32.Vec3) {
	m.color = color
}

func (m *Model) GetRenderMode() RenderMode {
	return m.renderMode
}

func (m *Model) SetRenderMode(mode RenderMode) {
	m.renderMode = mode
}

func (m *Model) GetNear() float32 {
	return m.near
}

func (m *Model) SetNear(near float32) {
	m.near = near
}

func (m *Model) GetFar() float32 {
	return m.far
}

func (m *Model) SetFar(far float32) {
	m.far = far
}
