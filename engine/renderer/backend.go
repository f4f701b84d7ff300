package renderer

import "github.com/go-gl/mathgl/mgl32"

type ShaderStage uint8

const (
	ShaderStageVertex ShaderStage = iota
	ShaderStageFragment
)

func (s ShaderStage) String() string {
	switch s {
	case ShaderStageVertex:
		return "vertex"
	case ShaderStageFragment:
		return "fragment"
	default:
		return "unknown"
	}
}

type PrimitiveTopology uint8

const (
	PrimitiveTopologyTriangles PrimitiveTopology = iota
	PrimitiveTopologyTriangleStrip
	PrimitiveTopologyLines
)

// VertexAttribute describes one float attribute inside an interleaved
// vertex, in float32 units.
type VertexAttribute struct {
	Location uint32
	Size     int32
	Offset   int32
}

// GeometryConfig is everything needed to upload one vertex array.
// Indices may be empty for non-indexed geometry.
type GeometryConfig struct {
	Vertices   []float32
	Stride     int32
	Attributes []VertexAttribute
	Indices    []uint32
}

// Geometry holds the GPU object handles of an uploaded GeometryConfig.
type Geometry struct {
	VAO        uint32
	VBO        uint32
	EBO        uint32
	IndexCount int32
}

// UniformLocationNone is returned by UniformLocation for unknown names.
// Setting a uniform at this location is a no-op.
const UniformLocationNone int32 = -1

// RendererBackend is the set of graphics API calls the toolkit objects are
// built on. The OpenGL implementation lives in renderer/opengl. Every method
// must be called on the thread owning the context.
type RendererBackend interface {
	CompileShader(stage ShaderStage, source string) (uint32, error)
	LinkProgram(vertexShader, fragmentShader uint32) (uint32, error)
	DeleteShader(shader uint32)
	DeleteProgram(program uint32)
	UseProgram(program uint32) error

	UniformLocation(program uint32, name string) int32
	SetUniformInt(location int32, value int32) error
	SetUniformFloat(location int32, value float32) error
	SetUniformVec3(location int32, value mgl32.Vec3) error
	SetUniformMat4(location int32, value mgl32.Mat4, transpose bool) error

	CreateGeometry(config *GeometryConfig) (*Geometry, error)
	DestroyGeometry(geometry *Geometry)
	DrawElements(geometry *Geometry, topology PrimitiveTopology) error
	DrawArrays(geometry *Geometry, topology PrimitiveTopology, first, count int32) error
}
