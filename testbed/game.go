package testbed

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/spaghettifunk/glkit/engine"
	"github.com/spaghettifunk/glkit/engine/config"
	"github.com/spaghettifunk/glkit/engine/core"
	"github.com/spaghettifunk/glkit/engine/math"
	"github.com/spaghettifunk/glkit/engine/renderer"
	"github.com/spaghettifunk/glkit/engine/renderer/components"
)

const (
	sphereRings    = 32
	sphereSegments = 64

	// Camera steps per frame while a key is held.
	cameraMoveStep = float32(0.1)
	cameraTurnStep = float32(1.0)
)

type GLKitApp struct {
	*engine.Game
}

type gameState struct {
	WorldCamera *components.Camera

	width  uint32
	height uint32

	xyPlane *renderer.XyPlane
	square  *renderer.Square
	light   *renderer.Model
	cube    *renderer.Model
	sphere  *renderer.Model
	// nil when the monkey model is missing
	monkey *renderer.Model

	showDemoWindow bool
	aspect         [2]int32
	// result of the last "Save settings" click
	settingsStatus string
}

func NewGLKitApp(cfg *config.ApplicationConfig, configPath string) *GLKitApp {
	app := &GLKitApp{
		Game: &engine.Game{
			ApplicationConfig: cfg,
			ConfigPath:        configPath,
			State: &gameState{
				aspect: [2]int32{16, 9},
			},
		},
	}

	app.FnInitialize = app.Initialize
	app.FnUpdate = app.Update
	app.FnRender = app.Render
	app.FnOnResize = app.OnResize
	app.FnShutdown = app.Shutdown

	return app
}

func (g *GLKitApp) state() *gameState {
	return g.State.(*gameState)
}

func (g *GLKitApp) Initialize() error {
	core.LogDebug("GLKitApp Initialize fn....")

	if g.SystemManager == nil {
		return fmt.Errorf("the engine is not yet initialized with all the system managers")
	}
	state := g.state()
	cfg := g.ApplicationConfig
	backend := g.Renderer.Backend()
	meshes := g.SystemManager.MeshSystem
	shaders := g.SystemManager.ShaderSystem

	if err := meshes.AddMeshesFromObjFiles(g.SystemManager.JobSystem, map[string]string{
		"cube":   g.AssetManager.Path("objects", "cube.obj"),
		"monkey": g.AssetManager.Path("objects", "monkey.obj"),
	}); err != nil {
		core.LogWarn("Some models failed to load: %s", err)
	}
	cubeMesh, err := meshes.GetMesh("cube")
	if err != nil {
		return err
	}
	// optional, only drawn when present
	monkeyMesh, _ := meshes.GetMesh("monkey")
	sphereVertices, sphereIndices := math.GeometryGenerateUVSphere(sphereRings, sphereSegments)
	sphereMesh, err := meshes.AddMesh("sphere", sphereVertices, sphereIndices)
	if err != nil {
		return err
	}

	xyPlaneShader, err := shaders.AddShaderFromFile("xy_plane",
		g.AssetManager.Path("shaders", "xy_plane.vs"), g.AssetManager.Path("shaders", "xy_plane.fs"))
	if err != nil {
		return err
	}
	lightShader, err := shaders.AddShaderFromFile("light",
		g.AssetManager.Path("shaders", "light.vs"), g.AssetManager.Path("shaders", "light.fs"))
	if err != nil {
		return err
	}
	meshShader, err := shaders.AddShaderFromFile("mesh",
		g.AssetManager.Path("shaders", "mesh.vs"), g.AssetManager.Path("shaders", "mesh.fs"))
	if err != nil {
		return err
	}

	state.square = renderer.NewSquare(backend)
	if err := state.square.Init(); err != nil {
		return err
	}
	state.xyPlane = renderer.NewXyPlane(backend)
	if err := state.xyPlane.Init(xyPlaneShader, cfg.Scene.PlaneSize); err != nil {
		return err
	}

	state.light = renderer.NewModel(sphereMesh, lightShader, true)
	state.light.SetPosition(mgl32.Vec3{1.2, 1.0, 2.0})
	state.light.SetScale(mgl32.Vec3{0.2, 0.2, 0.2})
	state.cube = renderer.NewModel(cubeMesh, meshShader, false)
	state.sphere = renderer.NewModel(sphereMesh, meshShader, false)
	if monkeyMesh != nil {
		state.monkey = renderer.NewModel(monkeyMesh, meshShader, false)
	}

	state.WorldCamera = g.SystemManager.CameraSystem.GetDefault()
	applyCameraConfig(state.WorldCamera, &cfg.Camera)
	return nil
}

func applyCameraConfig(camera *components.Camera, c *config.CameraConfig) {
	camera.SetPosition(mgl32.Vec3(c.Position))
	camera.SetPitch(math.DegToRad(c.Pitch))
	camera.SetYaw(math.DegToRad(c.Yaw))
	camera.SetFovy(math.DegToRad(c.Fovy))
	camera.SetNear(c.Near)
	camera.SetFar(c.Far)
}

// storeCameraConfig copies the live camera back so "Save settings" keeps it.
func storeCameraConfig(camera *components.Camera, c *config.CameraConfig) {
	c.Position = camera.GetPosition()
	c.Pitch = math.RadToDeg(camera.GetPitch())
	c.Yaw = math.RadToDeg(camera.GetYaw())
	c.Fovy = math.RadToDeg(camera.GetFovy())
	c.Near = camera.GetNear()
	c.Far = camera.GetFar()
}

func (g *GLKitApp) Update(deltaTime float64) error {
	g.renderUI()
	if g.ApplicationConfig.Scene.ShowCamera {
		g.updateCameraControls()
	}
	return nil
}

// updateCameraControls moves the camera from the keyboard and the mouse
// wheel unless ImGui is using them. The scene moves opposite to the camera.
func (g *GLKitApp) updateCameraControls() {
	camera := g.state().WorldCamera

	if !g.UI.WantCaptureMouse() {
		if _, wheel := g.Input.GetMouseWheel(); wheel != 0 {
			camera.MoveFront(wheel)
		}
	}
	if g.UI.WantCaptureKeyboard() {
		return
	}

	turn := math.DegToRad(cameraTurnStep)
	if g.Input.IsKeyDown(core.KEY_A) {
		camera.MoveRight(cameraMoveStep)
	}
	if g.Input.IsKeyDown(core.KEY_D) {
		camera.MoveRight(-cameraMoveStep)
	}
	if g.Input.IsKeyDown(core.KEY_W) {
		camera.MoveUp(-cameraMoveStep)
	}
	if g.Input.IsKeyDown(core.KEY_S) {
		camera.MoveUp(cameraMoveStep)
	}
	if g.Input.IsKeyDown(core.KEY_Q) {
		camera.TurnRight(turn)
	}
	if g.Input.IsKeyDown(core.KEY_E) {
		camera.TurnLeft(turn)
	}
	if g.Input.IsKeyDown(core.KEY_2) {
		camera.TurnDown(turn)
	}
	if g.Input.IsKeyDown(core.KEY_X) {
		camera.TurnUp(turn)
	}
}

func (g *GLKitApp) Render(deltaTime float64) error {
	state := g.state()
	scene := &g.ApplicationConfig.Scene
	camera := state.WorldCamera

	view := camera.GetView()
	projection := camera.GetProjection()
	viewProjection := projection.Mul4(view)

	if scene.ShowPlane {
		if err := state.xyPlane.Draw(viewProjection); err != nil {
			return err
		}
	}
	if scene.ShowLight {
		if err := state.light.Draw(view, projection); err != nil {
			return err
		}
	}
	if scene.ShowSquare {
		if err := state.square.Draw(viewProjection); err != nil {
			return err
		}
	}

	lit := []struct {
		show  bool
		model *renderer.Model
	}{
		{scene.ShowCube, state.cube},
		{scene.ShowSphere, state.sphere},
		{scene.ShowMonkey, state.monkey},
	}
	for _, l := range lit {
		if !l.show || l.model == nil {
			continue
		}
		l.model.SetNear(camera.GetNear())
		l.model.SetFar(camera.GetFar())
		if err := l.model.SetLight(state.light.GetPosition(), state.light.GetColor()); err != nil {
			return err
		}
		if err := l.model.Draw(view, projection); err != nil {
			return err
		}
	}
	return nil
}

func (g *GLKitApp) OnResize(width uint32, height uint32) error {
	state := g.state()
	state.width = width
	state.height = height
	return nil
}

func (g *GLKitApp) Shutdown() error {
	state := g.state()
	if state.xyPlane != nil {
		state.xyPlane.Free()
	}
	if state.square != nil {
		state.square.Free()
	}
	return nil
}
