package engine

import (
	"github.com/spaghettifunk/glkit/engine/assets"
	"github.com/spaghettifunk/glkit/engine/config"
	"github.com/spaghettifunk/glkit/engine/core"
	"github.com/spaghettifunk/glkit/engine/renderer"
	"github.com/spaghettifunk/glkit/engine/systems"
	"github.com/spaghettifunk/glkit/engine/ui"
)

// Game is the application plugged into the engine. The engine fills the
// subsystem fields during Initialize, before FnInitialize runs.
type Game struct {
	ApplicationConfig *config.ApplicationConfig
	// Where "Save settings" writes ApplicationConfig.
	ConfigPath string

	SystemManager *systems.SystemManager
	AssetManager  *assets.AssetManager
	Renderer      *renderer.Renderer
	Input         *core.Input
	Events        *core.EventBus
	Metrics       *core.Metrics
	UI            *ui.UI

	State        interface{}
	FnInitialize Initialize
	FnUpdate     Update
	FnRender     Render
	FnOnResize   OnResize
	FnShutdown   Shutdown

	screenshotRequested bool
	lastScreenshot      string
}

type Initialize func() error
type Update func(deltaTime float64) error
type Render func(deltaTime float64) error
type OnResize func(width uint32, height uint32) error
type Shutdown func() error

// RequestScreenshot captures the next frame, UI included, once it is drawn.
func (g *Game) RequestScreenshot() {
	g.screenshotRequested = true
}

// LastScreenshot is the path of the most recent screenshot, if any.
func (g *Game) LastScreenshot() string {
	return g.lastScreenshot
}

// SaveSettings writes the current configuration to ConfigPath.
func (g *Game) SaveSettings() error {
	if err := config.Save(g.ConfigPath, g.ApplicationConfig); err != nil {
		core.LogError("Failed to save settings: %s", err)
		return err
	}
	core.LogInfo("Settings saved to %s", g.ConfigPath)
	return nil
}

// Quit asks the engine to stop after the current frame. Safe to call from
// any goroutine.
func (g *Game) Quit() {
	g.Events.Post(core.EventContext{Type: core.EVENT_CODE_APPLICATION_QUIT})
}
