// Package ui drives Dear ImGui from the engine input state and draws it
// with OpenGL.
package ui

import (
	"github.com/inkyblackness/imgui-go/v4"
	"github.com/spaghettifunk/glkit/engine/core"
)

// Clipboard is the part of the platform ImGui uses for copy and paste.
type Clipboard interface {
	GetClipboard() string
	SetClipboard(text string)
}

type clipboardAdapter struct {
	platform Clipboard
}

func (c clipboardAdapter) Text() (string, error) {
	return c.platform.GetClipboard(), nil
}

func (c clipboardAdapter) SetText(value string) {
	c.platform.SetClipboard(value)
}

type UI struct {
	context  *imgui.Context
	io       imgui.IO
	input    *core.Input
	renderer *Renderer
}

// New creates the ImGui context and uploads the font atlas. A GL context
// must be current.
func New(input *core.Input, clipboard Clipboard) (*UI, error) {
	context := imgui.CreateContext(nil)
	io := imgui.CurrentIO()
	io.SetIniFilename("")
	if clipboard != nil {
		io.SetClipboard(clipboardAdapter{platform: clipboard})
	}
	setKeyMapping(io)

	renderer, err := NewRenderer(io)
	if err != nil {
		context.Destroy()
		return nil, err
	}
	return &UI{
		context:  context,
		io:       io,
		input:    input,
		renderer: renderer,
	}, nil
}

func setKeyMapping(io imgui.IO) {
	io.KeyMap(imgui.KeyTab, int(core.KEY_TAB))
	io.KeyMap(imgui.KeyLeftArrow, int(core.KEY_LEFT))
	io.KeyMap(imgui.KeyRightArrow, int(core.KEY_RIGHT))
	io.KeyMap(imgui.KeyUpArrow, int(core.KEY_UP))
	io.KeyMap(imgui.KeyDownArrow, int(core.KEY_DOWN))
	io.KeyMap(imgui.KeyPageUp, int(core.KEY_PRIOR))
	io.KeyMap(imgui.KeyPageDown, int(core.KEY_NEXT))
	io.KeyMap(imgui.KeyHome, int(core.KEY_HOME))
	io.KeyMap(imgui.KeyEnd, int(core.KEY_END))
	io.KeyMap(imgui.KeyInsert, int(core.KEY_INSERT))
	io.KeyMap(imgui.KeyDelete, int(core.KEY_DELETE))
	io.KeyMap(imgui.KeyBackspace, int(core.KEY_BACKSPACE))
	io.KeyMap(imgui.KeySpace, int(core.KEY_SPACE))
	io.KeyMap(imgui.KeyEnter, int(core.KEY_ENTER))
	io.KeyMap(imgui.KeyEscape, int(core.KEY_ESCAPE))
	io.KeyMap(imgui.KeyA, int(core.KEY_A))
	io.KeyMap(imgui.KeyC, int(core.KEY_C))
	io.KeyMap(imgui.KeyV, int(core.KEY_V))
	io.KeyMap(imgui.KeyX, int(core.KEY_X))
	io.KeyMap(imgui.KeyY, int(core.KEY_Y))
	io.KeyMap(imgui.KeyZ, int(core.KEY_Z))
}

// NewFrame copies this frame's input into ImGui and starts a new frame.
func (u *UI) NewFrame(windowWidth, windowHeight int, deltaTime float64) {
	u.io.SetDisplaySize(imgui.Vec2{X: float32(windowWidth), Y: float32(windowHeight)})
	if deltaTime <= 0 {
		deltaTime = 1.0 / 60.0
	}
	u.io.SetDeltaTime(float32(deltaTime))

	x, y := u.input.GetMousePosition()
	u.io.SetMousePosition(imgui.Vec2{X: float32(x), Y: float32(y)})
	u.io.SetMouseButtonDown(0, u.input.IsButtonDown(core.BUTTON_LEFT))
	u.io.SetMouseButtonDown(1, u.input.IsButtonDown(core.BUTTON_RIGHT))
	u.io.SetMouseButtonDown(2, u.input.IsButtonDown(core.BUTTON_MIDDLE))
	wheelX, wheelY := u.input.GetMouseWheel()
	u.io.AddMouseWheelDelta(wheelX, wheelY)

	for key := core.KeyCode(0); key < core.KEYS_MAX_KEYS; key++ {
		switch {
		case u.input.IsKeyDown(key) && u.input.WasKeyUp(key):
			u.io.KeyPress(int(key))
		case u.input.IsKeyUp(key) && u.input.WasKeyDown(key):
			u.io.KeyRelease(int(key))
		}
	}
	u.io.KeyCtrl(int(core.KEY_LCONTROL), int(core.KEY_RCONTROL))
	u.io.KeyShift(int(core.KEY_LSHIFT), int(core.KEY_RSHIFT))
	u.io.KeyAlt(int(core.KEY_LMENU), int(core.KEY_RMENU))
	u.io.KeySuper(int(core.KEY_LWIN), int(core.KEY_RWIN))
	if chars := u.input.Chars(); len(chars) > 0 {
		u.io.AddInputCharacters(string(chars))
	}

	imgui.NewFrame()
}

// Render finishes the frame and draws it over the scene.
func (u *UI) Render(windowWidth, windowHeight, framebufferWidth, framebufferHeight int) {
	imgui.Render()
	u.renderer.Render(
		[2]float32{float32(windowWidth), float32(windowHeight)},
		[2]float32{float32(framebufferWidth), float32(framebufferHeight)},
		imgui.RenderedDrawData(),
	)
}

func (u *UI) WantCaptureMouse() bool {
	return u.io.WantCaptureMouse()
}

func (u *UI) WantCaptureKeyboard() bool {
	return u.io.WantCaptureKeyboard()
}

func (u *UI) Shutdown() error {
	u.renderer.Destroy()
	u.context.Destroy()
	return nil
}
