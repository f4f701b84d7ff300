package renderer

import (
	"fmt"

	"github.com/spaghettifunk/glkit/engine/assets/loaders"
	"github.com/spaghettifunk/glkit/engine/core"
	"github.com/spaghettifunk/glkit/engine/math"
)

// Mesh owns an indexed triangle list and its GPU buffers. The data is
// uploaded once by Init and never changes afterwards.
type Mesh struct {
	Name string

	backend  RendererBackend
	vertices []math.Vertex
	indices  []uint32
	geometry *Geometry
}

func NewMesh(backend RendererBackend, name string) *Mesh {
	return &Mesh{
		Name:    name,
		backend: backend,
	}
}

// meshAttributes matches locations 0, 1 and 2 of the mesh shaders.
var meshAttributes = []VertexAttribute{
	{Location: 0, Size: 3, Offset: 0},
	{Location: 1, Size: 3, Offset: 3},
	{Location: 2, Size: 2, Offset: 6},
}

func (m *Mesh) Init(vertices []math.Vertex, indices []uint32) error {
	if m.geometry != nil {
		return fmt.Errorf("mesh '%s' is already initialized", m.Name)
	}
	if err := math.GeometryValidateIndices(len(vertices), indices); err != nil {
		return err
	}
	if len(indices)%3 != 0 {
		core.LogWarn("Mesh '%s' has %d indices, trailing %d ignored by triangle draws", m.Name, len(indices), len(indices)%3)
	}

	m.vertices = append([]math.Vertex(nil), vertices...)
	m.indices = append([]uint32(nil), indices...)

	geometry, err := m.backend.CreateGeometry(&GeometryConfig{
		Vertices:   math.GeometryInterleave(m.vertices),
		Stride:     math.VertexFloats,
		Attributes: meshAttributes,
		Indices:    m.indices,
	})
	if err != nil {
		return err
	}
	m.geometry = geometry
	return nil
}

func (m *Mesh) InitFromObjFile(filePath string) error {
	data, err := loaders.LoadOBJ(filePath)
	if err != nil {
		core.LogError("Failed to load obj file %s: %s", filePath, err)
		return err
	}
	return m.Init(data.Vertices, data.Indices)
}

func (m *Mesh) Draw(shader *Shader) error {
	if m.geometry == nil {
		return fmt.Errorf("draw of mesh '%s' before init", m.Name)
	}
	if err := shader.Use(); err != nil {
		return err
	}
	return m.backend.DrawElements(m.geometry, PrimitiveTopologyTriangles)
}

func (m *Mesh) Vertices() []math.Vertex {
	return m.vertices
}

func (m *Mesh) Indices() []uint32 {
	return m.indices
}

func (m *Mesh) Free() {
	if m.geometry != nil {
		m.backend.DestroyGeometry(m.geometry)
		m.geometry = nil
	}
}
