package testbed

import (
	"fmt"
	m "math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/inkyblackness/imgui-go/v4"
	"github.com/spaghettifunk/glkit/engine/math"
	"github.com/spaghettifunk/glkit/engine/renderer"
)

// Pitch stays short of straight up or down to avoid gimbal lock.
const pitchLimit = float32(89.0)

func (g *GLKitApp) renderUI() {
	state := g.state()
	scene := &g.ApplicationConfig.Scene

	imgui.Begin("GLKit")
	imgui.Checkbox("ImGui Demo Window", &state.showDemoWindow)
	imgui.Text(fmt.Sprintf("average %.3f ms/frame (%.1f FPS)", g.Metrics.FrameTime(), g.Metrics.FPS()))
	imgui.Text(fmt.Sprintf("framebuffer %dx%d", state.width, state.height))
	if imgui.ColorEdit3("Clear Color", &scene.ClearColor) {
		g.Renderer.SetClearColor(mgl32.Vec3(scene.ClearColor))
	}
	imgui.Checkbox("Show XY Plane", &scene.ShowPlane)
	imgui.Checkbox("Show Camera", &scene.ShowCamera)
	imgui.Checkbox("Show Light", &scene.ShowLight)
	imgui.Checkbox("Show Cube", &scene.ShowCube)
	imgui.Checkbox("Show Sphere", &scene.ShowSphere)
	imgui.Checkbox("Show Square", &scene.ShowSquare)
	imgui.Checkbox("Show Monkey", &scene.ShowMonkey)
	imgui.Separator()
	if imgui.Button("Screenshot (F12)") {
		g.RequestScreenshot()
	}
	imgui.SameLine()
	if imgui.Button("Save settings") {
		storeCameraConfig(state.WorldCamera, &g.ApplicationConfig.Camera)
		if err := g.SaveSettings(); err != nil {
			state.settingsStatus = "Save failed: " + err.Error()
		} else {
			state.settingsStatus = "Settings saved to " + g.ConfigPath
		}
	}
	if path := g.LastScreenshot(); path != "" {
		imgui.Text("Last screenshot: " + path)
	}
	if state.settingsStatus != "" {
		imgui.Text(state.settingsStatus)
	}
	imgui.End()

	if state.showDemoWindow {
		imgui.ShowDemoWindow(&state.showDemoWindow)
	}
	if scene.ShowCamera {
		g.uiCamera()
	}
	if scene.ShowLight {
		uiModel("Light", state.light)
	}
	if scene.ShowCube {
		uiModel("Cube", state.cube)
	}
	if scene.ShowSphere {
		uiModel("Sphere", state.sphere)
	}
	if scene.ShowMonkey && state.monkey != nil {
		uiModel("Monkey", state.monkey)
	}
}

func finite(v float32) bool {
	return !m.IsNaN(float64(v)) && !m.IsInf(float64(v), 0)
}

func inputFloat(label string, value *float32, step, stepFast float32) bool {
	return imgui.InputFloatV(label, value, step, stepFast, "%.1f", imgui.InputTextFlagsNone)
}

func (g *GLKitApp) uiCamera() {
	state := g.state()
	camera := state.WorldCamera

	imgui.Begin("Camera")

	position := camera.GetPosition()
	inputFloat("PositionX", &position[0], 1, 10)
	inputFloat("PositionY", &position[1], 1, 10)
	inputFloat("PositionZ", &position[2], 1, 10)
	camera.SetPosition(position)

	pitch := math.RadToDeg(camera.GetPitch())
	inputFloat("Pitch(X)", &pitch, 1, 10)
	if finite(pitch) {
		camera.SetPitch(math.DegToRad(math.Clamp(pitch, -pitchLimit, pitchLimit)))
	}
	yaw := math.RadToDeg(camera.GetYaw())
	inputFloat("Yaw(Y)", &yaw, 1, 10)
	if finite(yaw) {
		camera.SetYaw(math.DegToRad(math.Wrap(yaw, -180, 180)))
	}

	fovy := math.RadToDeg(camera.GetFovy())
	inputFloat("FovY", &fovy, 1, 10)
	camera.SetFovy(math.DegToRad(fovy))
	imgui.InputInt("Aspect W", &state.aspect[0])
	imgui.InputInt("Aspect H", &state.aspect[1])
	if state.aspect[0] > 0 && state.aspect[1] > 0 {
		camera.SetAspect(float32(state.aspect[0]) / float32(state.aspect[1]))
	}
	near := camera.GetNear()
	inputFloat("Near", &near, 1, 10)
	camera.SetNear(near)
	far := camera.GetFar()
	inputFloat("Far", &far, 1, 10)
	camera.SetFar(far)

	if imgui.TreeNode("Direction") {
		f, r, u := camera.Front(), camera.Right(), camera.Up()
		imgui.Text(fmt.Sprintf("Front(-Z): %6.3f %6.3f %6.3f", f.X(), f.Y(), f.Z()))
		imgui.Text(fmt.Sprintf("Right(+X): %6.3f %6.3f %6.3f", r.X(), r.Y(), r.Z()))
		imgui.Text(fmt.Sprintf("   Up(+Y): %6.3f %6.3f %6.3f", u.X(), u.Y(), u.Z()))
		imgui.TreePop()
	}
	if imgui.TreeNode("View Matrix") {
		uiMatrix(camera.GetView())
		imgui.TreePop()
	}
	if imgui.TreeNode("Projection Matrix") {
		uiMatrix(camera.GetProjection())
		imgui.TreePop()
	}

	imgui.End()
}

func uiModel(name string, model *renderer.Model) {
	imgui.Begin(name)

	color := [3]float32(model.GetColor())
	if imgui.ColorEdit3("Color", &color) {
		model.SetColor(mgl32.Vec3(color))
	}
	position := model.GetPosition()
	inputFloat("PX", &position[0], 0.1, 1)
	inputFloat("PY", &position[1], 0.1, 1)
	inputFloat("PZ", &position[2], 0.1, 1)
	model.SetPosition(position)
	rotation := math.Vec3RadToDeg(model.GetRotation())
	inputFloat("RX", &rotation[0], 1, 10)
	inputFloat("RY", &rotation[1], 1, 10)
	inputFloat("RZ", &rotation[2], 1, 10)
	model.SetRotation(math.Vec3DegToRad(rotation))
	scale := model.GetScale()
	inputFloat("SX", &scale[0], 0.1, 1)
	inputFloat("SY", &scale[1], 0.1, 1)
	inputFloat("SZ", &scale[2], 0.1, 1)
	model.SetScale(scale)

	if !model.IsLight() {
		mode := model.GetRenderMode()
		if imgui.RadioButton("Lit", mode == renderer.RenderModeLight) {
			model.SetRenderMode(renderer.RenderModeLight)
		}
		imgui.SameLine()
		if imgui.RadioButton("Depth", mode == renderer.RenderModeDepth) {
			model.SetRenderMode(renderer.RenderModeDepth)
		}
	}

	if imgui.TreeNode("Model Matrix") {
		uiMatrix(model.GetModelMatrix())
		imgui.TreePop()
	}
	imgui.End()
}

// uiMatrix prints m row by row.
func uiMatrix(m mgl32.Mat4) {
	for row := 0; row < 4; row++ {
		for col := 0; col < 3; col++ {
			imgui.Text(fmt.Sprintf("%6.3f", m.At(row, col)))
			imgui.SameLine()
		}
		imgui.Text(fmt.Sprintf("%6.3f", m.At(row, 3)))
	}
}
