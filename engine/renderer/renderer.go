package renderer

import (
	"image"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/spaghettifunk/glkit/engine/core"
)

// FrameBackend adds the per-frame calls on top of RendererBackend.
type FrameBackend interface {
	RendererBackend
	Viewport(width, height int)
	Clear(color mgl32.Vec3)
	ReadFramebuffer(width, height int) (*image.NRGBA, error)
}

// Renderer owns the framebuffer state shared by everything drawn in a frame.
type Renderer struct {
	backend    FrameBackend
	width      int
	height     int
	clearColor mgl32.Vec3
}

func NewRenderer(backend FrameBackend, width, height int) *Renderer {
	return &Renderer{
		backend:    backend,
		width:      width,
		height:     height,
		clearColor: mgl32.Vec3{0.1, 0.1, 0.1},
	}
}

func (r *Renderer) Backend() FrameBackend {
	return r.backend
}

func (r *Renderer) OnResize(width, height int) {
	if width == r.width && height == r.height {
		return
	}
	core.LogDebug("Framebuffer resized to %dx%d", width, height)
	r.width = width
	r.height = height
}

func (r *Renderer) Size() (int, int) {
	return r.width, r.height
}

func (r *Renderer) SetClearColor(color mgl32.Vec3) {
	r.clearColor = color
}

func (r *Renderer) ClearColor() mgl32.Vec3 {
	return r.clearColor
}

// BeginFrame sets the viewport and clears color and depth.
func (r *Renderer) BeginFrame() {
	r.backend.Viewport(r.width, r.height)
	r.backend.Clear(r.clearColor)
}

// Screenshot reads back what has been drawn so far in this frame.
func (r *Renderer) Screenshot() (*image.NRGBA, error) {
	return r.backend.ReadFramebuffer(r.width, r.height)
}
