// Package opengl implements renderer.RendererBackend on top of OpenGL 4.1
// core. A context must be current on the calling thread.
package opengl

import (
	"fmt"
	"image"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/spaghettifunk/glkit/engine/core"
	"github.com/spaghettifunk/glkit/engine/renderer"
)

const floatSize = 4

type Backend struct {
	version  string
	vendor   string
	renderer string
	glsl     string
}

// New loads the GL entry points of the current context and sets the fixed
// pipeline state the toolkit relies on.
func New() (*Backend, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("gl init: %w", err)
	}
	b := &Backend{}
	b.version, b.vendor, b.renderer, b.glsl = GLInfo()
	core.LogInfo("OpenGL %s (%s, %s), GLSL %s", b.version, b.vendor, b.renderer, b.glsl)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	return b, CheckError("initial state")
}

func GLInfo() (version, vendor, renderer, glsl string) {
	return gl.GoStr(gl.GetString(gl.VERSION)),
		gl.GoStr(gl.GetString(gl.VENDOR)),
		gl.GoStr(gl.GetString(gl.RENDERER)),
		gl.GoStr(gl.GetString(gl.SHADING_LANGUAGE_VERSION))
}

func (b *Backend) Version() string { return b.version }

// CheckError drains the GL error queue and reports the first error found.
func CheckError(what string) error {
	var first uint32
	for code := gl.GetError(); code != gl.NO_ERROR; code = gl.GetError() {
		if first == 0 {
			first = code
		}
	}
	if first != 0 {
		return fmt.Errorf("%s: gl error 0x%X: %w", what, first, core.ErrGL)
	}
	return nil
}

func (b *Backend) CompileShader(stage renderer.ShaderStage, source string) (uint32, error) {
	var shaderType uint32 = gl.VERTEX_SHADER
	if stage == renderer.ShaderStageFragment {
		shaderType = gl.FRAGMENT_SHADER
	}
	shader := gl.CreateShader(shaderType)
	csource, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csource, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("%s shader: %s: %w", stage, strings.TrimRight(log, "\x00"), core.ErrShaderCompile)
	}
	return shader, nil
}

func (b *Backend) LinkProgram(vertexShader, fragmentShader uint32) (uint32, error) {
	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("%s: %w", strings.TrimRight(log, "\x00"), core.ErrShaderLink)
	}
	gl.DetachShader(program, vertexShader)
	gl.DetachShader(program, fragmentShader)
	return program, nil
}

func (b *Backend) DeleteShader(shader uint32) {
	gl.DeleteShader(shader)
}

func (b *Backend) DeleteProgram(program uint32) {
	gl.DeleteProgram(program)
}

func (b *Backend) UseProgram(program uint32) error {
	gl.UseProgram(program)
	return CheckError("glUseProgram")
}

func (b *Backend) UniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

func (b *Backend) SetUniformInt(location int32, value int32) error {
	gl.Uniform1i(location, value)
	return CheckError("glUniform1i")
}

func (b *Backend) SetUniformFloat(location int32, value float32) error {
	gl.Uniform1f(location, value)
	return CheckError("glUniform1f")
}

func (b *Backend) SetUniformVec3(location int32, value mgl32.Vec3) error {
	gl.Uniform3fv(location, 1, &value[0])
	return CheckError("glUniform3fv")
}

func (b *Backend) SetUniformMat4(location int32, value mgl32.Mat4, transpose bool) error {
	gl.UniformMatrix4fv(location, 1, transpose, &value[0])
	return CheckError("glUniformMatrix4fv")
}

func (b *Backend) CreateGeometry(config *renderer.GeometryConfig) (*renderer.Geometry, error) {
	if len(config.Vertices) == 0 {
		return nil, fmt.Errorf("geometry without vertices")
	}
	geometry := &renderer.Geometry{IndexCount: int32(len(config.Indices))}

	gl.GenVertexArrays(1, &geometry.VAO)
	gl.BindVertexArray(geometry.VAO)

	gl.GenBuffers(1, &geometry.VBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, geometry.VBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(config.Vertices)*floatSize, gl.Ptr(config.Vertices), gl.STATIC_DRAW)

	if len(config.Indices) > 0 {
		gl.GenBuffers(1, &geometry.EBO)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, geometry.EBO)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(config.Indices)*4, gl.Ptr(config.Indices), gl.STATIC_DRAW)
	}

	stride := config.Stride * floatSize
	for _, attr := range config.Attributes {
		gl.VertexAttribPointerWithOffset(attr.Location, attr.Size, gl.FLOAT, false, stride, uintptr(attr.Offset*floatSize))
		gl.EnableVertexAttribArray(attr.Location)
	}
	gl.BindVertexArray(0)

	if err := CheckError("create geometry"); err != nil {
		b.DestroyGeometry(geometry)
		return nil, err
	}
	return geometry, nil
}

func (b *Backend) DestroyGeometry(geometry *renderer.Geometry) {
	if geometry.EBO != 0 {
		gl.DeleteBuffers(1, &geometry.EBO)
		geometry.EBO = 0
	}
	if geometry.VBO != 0 {
		gl.DeleteBuffers(1, &geometry.VBO)
		geometry.VBO = 0
	}
	if geometry.VAO != 0 {
		gl.DeleteVertexArrays(1, &geometry.VAO)
		geometry.VAO = 0
	}
}

func topologyMode(topology renderer.PrimitiveTopology) uint32 {
	switch topology {
	case renderer.PrimitiveTopologyTriangleStrip:
		return gl.TRIANGLE_STRIP
	case renderer.PrimitiveTopologyLines:
		return gl.LINES
	default:
		return gl.TRIANGLES
	}
}

func (b *Backend) DrawElements(geometry *renderer.Geometry, topology renderer.PrimitiveTopology) error {
	gl.BindVertexArray(geometry.VAO)
	gl.DrawElementsWithOffset(topologyMode(topology), geometry.IndexCount, gl.UNSIGNED_INT, 0)
	gl.BindVertexArray(0)
	return CheckError("glDrawElements")
}

func (b *Backend) DrawArrays(geometry *renderer.Geometry, topology renderer.PrimitiveTopology, first, count int32) error {
	gl.BindVertexArray(geometry.VAO)
	gl.DrawArrays(topologyMode(topology), first, count)
	gl.BindVertexArray(0)
	return CheckError("glDrawArrays")
}

func (b *Backend) Viewport(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
}

func (b *Backend) Clear(color mgl32.Vec3) {
	gl.ClearColor(color.X(), color.Y(), color.Z(), 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// ReadFramebuffer copies the back buffer into an image, top row first.
func (b *Backend) ReadFramebuffer(width, height int) (*image.NRGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid framebuffer size %dx%d", width, height)
	}
	pixels := make([]byte, width*height*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	if err := CheckError("glReadPixels"); err != nil {
		return nil, err
	}

	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	row := width * 4
	for y := 0; y < height; y++ {
		src := pixels[(height-1-y)*row : (height-y)*row]
		copy(img.Pix[y*img.Stride:y*img.Stride+row], src)
	}
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 0xFF
	}
	return img, nil
}
