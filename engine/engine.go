package engine

import (
	"fmt"

	"github.com/spaghettifunk/glkit/engine/assets"
	"github.com/spaghettifunk/glkit/engine/assets/loaders"
	"github.com/spaghettifunk/glkit/engine/core"
	"github.com/spaghettifunk/glkit/engine/platform"
	"github.com/spaghettifunk/glkit/engine/platform/thread"
	"github.com/spaghettifunk/glkit/engine/renderer"
	"github.com/spaghettifunk/glkit/engine/renderer/opengl"
	"github.com/spaghettifunk/glkit/engine/systems"
	"github.com/spaghettifunk/glkit/engine/ui"
)

type Stage uint8

const (
	// Engine is in an uninitialized state
	EngineStageUninitialized Stage = iota
	// Engine is currently initializing
	EngineStageInitializing
	// Engine initialization is complete
	EngineStageInitialized
	// Engine is currently running
	EngineStageRunning
	// Engine is in the process of shutting down
	EngineStageShuttingDown
)

// Engine owns the window and runs the frame loop. Every method that touches
// the window or GL hops onto the main thread, so Run and Shutdown may be
// called from the goroutine started by thread.Run.
type Engine struct {
	currentStage Stage
	gameInstance *Game
	isRunning    bool
	isSuspended  bool
	platform     *platform.Platform
	width        uint32
	height       uint32
	clock        *core.Clock
	lastTime     float64
}

func New(g *Game) (*Engine, error) {
	if g.ApplicationConfig == nil {
		return nil, fmt.Errorf("game has no application config")
	}
	if err := core.SetLogLevel(g.ApplicationConfig.LogLevel); err != nil {
		return nil, err
	}

	g.Events = core.NewEventBus()
	g.Input = core.NewInput(g.Events)
	g.Metrics = core.NewMetrics()
	g.AssetManager = assets.NewAssetManager(g.Events)

	return &Engine{
		currentStage: EngineStageUninitialized,
		gameInstance: g,
		clock:        core.NewClock(),
		platform:     platform.New(g.Input, g.Events),
		isRunning:    true,
		width:        g.ApplicationConfig.StartWidth,
		height:       g.ApplicationConfig.StartHeight,
	}, nil
}

func (e *Engine) Initialize() error {
	return thread.CallErr(e.initialize)
}

func (e *Engine) initialize() error {
	e.currentStage = EngineStageInitializing
	g := e.gameInstance
	config := g.ApplicationConfig

	// register some events
	g.Events.Register(core.EVENT_CODE_APPLICATION_QUIT, e.onEvent)
	g.Events.Register(core.EVENT_CODE_KEY_PRESSED, e.onKey)
	g.Events.Register(core.EVENT_CODE_RESIZED, e.onResized)
	g.Events.Register(core.EVENT_CODE_ASSET_CHANGED, e.onAssetChanged)

	if err := e.platform.Startup(config.Name, config.StartWidth, config.StartHeight, config.VSync); err != nil {
		return err
	}

	backend, err := opengl.New()
	if err != nil {
		return err
	}
	fbWidth, fbHeight := e.platform.FramebufferSize()
	g.Renderer = renderer.NewRenderer(backend, fbWidth, fbHeight)
	g.Renderer.SetClearColor(config.Scene.ClearColor)

	sm, err := systems.NewSystemManager(backend)
	if err != nil {
		return err
	}
	g.SystemManager = sm

	if g.UI, err = ui.New(g.Input, e.platform); err != nil {
		return err
	}

	if err := g.AssetManager.Initialize(config.AssetsDir, config.WatchAssets); err != nil {
		return err
	}

	if err := g.FnInitialize(); err != nil {
		return err
	}
	if err := g.FnOnResize(uint32(fbWidth), uint32(fbHeight)); err != nil {
		return err
	}
	e.currentStage = EngineStageInitialized
	return nil
}

func (e *Engine) Run() error {
	e.currentStage = EngineStageRunning
	e.clock.Start()
	e.clock.Update()
	e.lastTime = e.clock.Elapsed()

	for e.isRunning {
		if err := thread.CallErr(e.frame); err != nil {
			e.isRunning = false
			return err
		}
	}
	return nil
}

func (e *Engine) frame() error {
	g := e.gameInstance

	e.platform.PumpMessages()
	if e.platform.ShouldClose() {
		e.isRunning = false
		return nil
	}
	g.Events.Dispatch()
	if !e.isRunning {
		return nil
	}

	// Update clock and get delta time.
	e.clock.Update()
	currentTime := e.clock.Elapsed()
	delta := currentTime - e.lastTime
	e.lastTime = currentTime

	if e.isSuspended {
		g.Input.Update()
		return nil
	}

	windowWidth, windowHeight := e.platform.WindowSize()
	fbWidth, fbHeight := e.platform.FramebufferSize()

	g.UI.NewFrame(windowWidth, windowHeight, delta)

	if err := g.FnUpdate(delta); err != nil {
		core.LogError("Game update failed, shutting down: %s", err)
		return err
	}

	g.Renderer.BeginFrame()
	// Call the game's render routine.
	if err := g.FnRender(delta); err != nil {
		core.LogError("Game render failed, shutting down: %s", err)
		return err
	}
	g.UI.Render(windowWidth, windowHeight, fbWidth, fbHeight)

	if g.screenshotRequested {
		g.screenshotRequested = false
		e.takeScreenshot()
	}

	e.platform.SwapBuffers()
	g.Metrics.Update(delta)

	// NOTE: Input update/state copying should always be handled
	// after any input should be recorded; I.E. before this line.
	// As a safety, input is the last thing to be updated before
	// this frame ends.
	g.Input.Update()
	return nil
}

func (e *Engine) takeScreenshot() {
	g := e.gameInstance
	img, err := g.Renderer.Screenshot()
	if err != nil {
		core.LogError("Failed to read framebuffer: %s", err)
		return
	}
	path, err := assets.SaveScreenshot(g.ApplicationConfig.ScreenshotDir, img)
	if err != nil {
		core.LogError("Failed to save screenshot: %s", err)
		return
	}
	g.lastScreenshot = path
}

// Shutdown stops the subsystems in reverse order of creation.
func (e *Engine) Shutdown() error {
	return thread.CallErr(e.shutdown)
}

func (e *Engine) shutdown() error {
	if e.currentStage == EngineStageShuttingDown {
		return nil
	}
	e.currentStage = EngineStageShuttingDown
	g := e.gameInstance

	if g.FnShutdown != nil {
		if err := g.FnShutdown(); err != nil {
			core.LogError(err.Error())
		}
	}
	if g.UI != nil {
		if err := g.UI.Shutdown(); err != nil {
			return err
		}
	}
	if g.SystemManager != nil {
		if err := g.SystemManager.Shutdown(); err != nil {
			return err
		}
	}
	if err := g.AssetManager.Shutdown(); err != nil {
		return err
	}
	if err := g.Events.Shutdown(); err != nil {
		return err
	}
	return e.platform.Shutdown()
}

// GetFramebufferSize returns the width and height (in this order)
// of the application framebuffer
func (e *Engine) GetFramebufferSize() (uint32, uint32) {
	return e.width, e.height
}

func (e *Engine) onEvent(context core.EventContext) bool {
	switch context.Type {
	case core.EVENT_CODE_APPLICATION_QUIT:
		core.LogInfo("EVENT_CODE_APPLICATION_QUIT recieved, shutting down.")
		e.isRunning = false
		return true
	}
	return false
}

func (e *Engine) onKey(context core.EventContext) bool {
	ke, ok := context.Data.(*core.KeyEvent)
	if !ok {
		core.LogError("wrong event associated with the event type `%d`", context.Type)
		return false
	}

	switch ke.KeyCode {
	case core.KEY_ESCAPE:
		// NOTE: Technically firing an event to itself, but there may be other listeners.
		e.gameInstance.Events.Fire(core.EventContext{
			Type: core.EVENT_CODE_APPLICATION_QUIT,
		})
		// Block anything else from processing this.
		return true
	case core.KEY_F12:
		e.gameInstance.RequestScreenshot()
		return true
	}
	return false
}

func (e *Engine) onResized(context core.EventContext) bool {
	se, ok := context.Data.(*core.SystemEvent)
	if !ok {
		core.LogError("wrong event associated with the event type `%d`", context.Type)
		return false
	}

	width := se.WindowWidth
	height := se.WindowHeight
	if width == e.width && height == e.height {
		return false
	}
	e.width = width
	e.height = height
	core.LogDebug("Window resize: %d, %d", width, height)

	// Handle minimization
	if width == 0 || height == 0 {
		core.LogInfo("Window minimized, suspending application.")
		e.isSuspended = true
		return true
	}
	if e.isSuspended {
		core.LogInfo("Window restored, resuming application.")
		e.isSuspended = false
	}
	e.gameInstance.Renderer.OnResize(int(width), int(height))
	if err := e.gameInstance.FnOnResize(width, height); err != nil {
		core.LogError(err.Error())
	}
	return false
}

func (e *Engine) onAssetChanged(context core.EventContext) bool {
	ae, ok := context.Data.(*core.AssetEvent)
	if !ok {
		core.LogError("wrong event associated with the event type `%d`", context.Type)
		return false
	}
	if !loaders.IsShaderFile(ae.Path) {
		return false
	}
	n, err := e.gameInstance.SystemManager.ShaderSystem.ReloadFile(ae.Path)
	if err != nil {
		core.LogWarn("Shader file %s changed but does not build, keeping the running program", ae.Path)
		return true
	}
	if n > 0 {
		core.LogInfo("Reloaded %d shader(s) after %s changed", n, ae.Path)
	}
	return n > 0
}
