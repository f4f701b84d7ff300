// Package renderertest provides a recording RendererBackend for tests that
// must not touch a GPU.
package renderertest

import (
	"fmt"
	"image"
	"image/color"
	"strings"
	"sync"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/spaghettifunk/glkit/engine/core"
	"github.com/spaghettifunk/glkit/engine/renderer"
)

// Uniform is the last value written to a uniform location.
type Uniform struct {
	Name      string
	Value     interface{}
	Transpose bool
}

// Draw records one draw call.
type Draw struct {
	Program  uint32
	Geometry *renderer.Geometry
	Topology renderer.PrimitiveTopology
	Count    int32
}

// FakeBackend hands out increasing handles and remembers every call. A
// source containing FailCompileMarker fails to compile; FailLink forces the
// next links to fail. Uniforms listed in MissingUniforms are not found.
type FakeBackend struct {
	mu sync.Mutex

	FailLink        bool
	FailGeometry    bool
	MissingUniforms map[string]bool

	next            uint32
	Shaders         map[uint32]renderer.ShaderStage
	Programs        map[uint32]bool
	Geometries      map[uint32]*renderer.GeometryConfig
	Current         uint32
	Uniforms        map[int32]Uniform
	Draws           []Draw
	LocationQueries map[string]int
	ViewportSize    [2]int
	ClearColor      mgl32.Vec3
	Clears          int
	// location -> uniform name
	locations map[int32]string
}

// FailCompileMarker makes CompileShader fail when found in the source.
const FailCompileMarker = "#error"

func NewFakeBackend() *FakeBackend {
	return &FakeBackend{
		MissingUniforms: make(map[string]bool),
		Shaders:         make(map[uint32]renderer.ShaderStage),
		Programs:        make(map[uint32]bool),
		Geometries:      make(map[uint32]*renderer.GeometryConfig),
		Uniforms:        make(map[int32]Uniform),
		LocationQueries: make(map[string]int),
		locations:       make(map[int32]string),
	}
}

func (b *FakeBackend) handle() uint32 {
	b.next++
	return b.next
}

func (b *FakeBackend) CompileShader(stage renderer.ShaderStage, source string) (uint32, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if strings.Contains(source, FailCompileMarker) {
		return 0, fmt.Errorf("%s shader: 0:1: syntax error: %w", stage, core.ErrShaderCompile)
	}
	id := b.handle()
	b.Shaders[id] = stage
	return id, nil
}

func (b *FakeBackend) LinkProgram(vertexShader, fragmentShader uint32) (uint32, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.FailLink {
		return 0, fmt.Errorf("link failed: %w", core.ErrShaderLink)
	}
	if b.Shaders[vertexShader] != renderer.ShaderStageVertex || b.Shaders[fragmentShader] != renderer.ShaderStageFragment {
		return 0, fmt.Errorf("stages mismatch: %w", core.ErrShaderLink)
	}
	id := b.handle()
	b.Programs[id] = true
	return id, nil
}

func (b *FakeBackend) DeleteShader(shader uint32) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.Shaders, shader)
}

func (b *FakeBackend) DeleteProgram(program uint32) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.Programs, program)
	if b.Current == program {
		b.Current = 0
	}
}

func (b *FakeBackend) UseProgram(program uint32) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.Programs[program] {
		return fmt.Errorf("program %d: %w", program, core.ErrGL)
	}
	b.Current = program
	return nil
}

func (b *FakeBackend) UniformLocation(program uint32, name string) int32 {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.LocationQueries[name]++
	if b.MissingUniforms[name] {
		return renderer.UniformLocationNone
	}
	loc := int32(b.handle())
	b.locations[loc] = name
	return loc
}

func (b *FakeBackend) setUniform(location int32, value interface{}, transpose bool) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if location == renderer.UniformLocationNone {
		return nil
	}
	if b.Current == 0 {
		return fmt.Errorf("no program bound: %w", core.ErrGL)
	}
	b.Uniforms[location] = Uniform{Name: b.locations[location], Value: value, Transpose: transpose}
	return nil
}

func (b *FakeBackend) SetUniformInt(location int32, value int32) error {
	return b.setUniform(location, value, false)
}

func (b *FakeBackend) SetUniformFloat(location int32, value float32) error {
	return b.setUniform(location, value, false)
}

func (b *FakeBackend) SetUniformVec3(location int32, value mgl32.Vec3) error {
	return b.setUniform(location, value, false)
}

func (b *FakeBackend) SetUniformMat4(location int32, value mgl32.Mat4, transpose bool) error {
	return b.setUniform(location, value, transpose)
}

// UniformByName returns the last value written under name.
func (b *FakeBackend) UniformByName(name string) (Uniform, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, u := range b.Uniforms {
		if u.Name == name {
			return u, true
		}
	}
	return Uniform{}, false
}

func (b *FakeBackend) CreateGeometry(config *renderer.GeometryConfig) (*renderer.Geometry, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.FailGeometry {
		return nil, fmt.Errorf("out of memory: %w", core.ErrGL)
	}
	geometry := &renderer.Geometry{
		VAO:        b.handle(),
		VBO:        b.handle(),
		IndexCount: int32(len(config.Indices)),
	}
	if len(config.Indices) > 0 {
		geometry.EBO = b.handle()
	}
	b.Geometries[geometry.VAO] = config
	return geometry, nil
}

func (b *FakeBackend) DestroyGeometry(geometry *renderer.Geometry) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.Geometries, geometry.VAO)
}

func (b *FakeBackend) DrawElements(geometry *renderer.Geometry, topology renderer.PrimitiveTopology) error {
	return b.draw(geometry, topology, geometry.IndexCount)
}

func (b *FakeBackend) DrawArrays(geometry *renderer.Geometry, topology renderer.PrimitiveTopology, first, count int32) error {
	return b.draw(geometry, topology, count)
}

func (b *FakeBackend) draw(geometry *renderer.Geometry, topology renderer.PrimitiveTopology, count int32) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.Geometries[geometry.VAO]; !ok {
		return fmt.Errorf("vertex array %d: %w", geometry.VAO, core.ErrGL)
	}
	b.Draws = append(b.Draws, Draw{Program: b.Current, Geometry: geometry, Topology: topology, Count: count})
	return nil
}

// LiveObjects is the number of shaders, programs and vertex arrays not yet deleted.
func (b *FakeBackend) LiveObjects() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.Shaders) + len(b.Programs) + len(b.Geometries)
}

func (b *FakeBackend) Viewport(width, height int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.ViewportSize = [2]int{width, height}
}

func (b *FakeBackend) Clear(color mgl32.Vec3) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.ClearColor = color
	b.Clears++
}

// ReadFramebuffer returns an image filled with the last clear color.
func (b *FakeBackend) ReadFramebuffer(width, height int) (*image.NRGBA, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid framebuffer size %dx%d", width, height)
	}
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	c := color.NRGBA{
		R: uint8(b.ClearColor.X() * 255),
		G: uint8(b.ClearColor.Y() * 255),
		B: uint8(b.ClearColor.Z() * 255),
		A: 0xFF,
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img, nil
}
