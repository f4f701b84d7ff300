package components

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/spaghettifunk/glkit/engine/math"
)

/** @brief The defaults a camera starts from and returns to on Reset. */
var (
	DefaultCameraPosition = mgl32.Vec3{0, 0, 1}
	DefaultCameraPitch    = float32(0)
	DefaultCameraYaw      = math.DegToRad(-90)
	DefaultCameraFovy     = math.DegToRad(45)
	DefaultCameraAspect   = float32(16.0 / 9.0)
	DefaultCameraNear     = float32(0.1)
	DefaultCameraFar      = float32(100.0)

	WorldUp = mgl32.Vec3{0, 1, 0}
)

/**
 * @brief Represents a perspective camera oriented by pitch and yaw.
 * The view and projection matrices are rebuilt lazily; every setter marks
 * the matrix it affects as dirty.
 * NOTE: Angles are in radians. Setters do not clamp, callers that expose
 * the camera to a user should limit the pitch themselves.
 */
type Camera struct {
	position mgl32.Vec3
	pitch    float32
	yaw      float32

	fovy   float32
	aspect float32
	near   float32
	far    float32

	/** @brief Derived from pitch and yaw together with the view matrix. */
	front mgl32.Vec3
	right mgl32.Vec3
	up    mgl32.Vec3

	viewDirty       bool
	view            mgl32.Mat4
	projectionDirty bool
	projection      mgl32.Mat4
}

func NewCamera() *Camera {
	camera := &Camera{}
	camera.Reset()
	return camera
}

func (c *Camera) Reset() {
	c.position = DefaultCameraPosition
	c.pitch = DefaultCameraPitch
	c.yaw = DefaultCameraYaw
	c.fovy = DefaultCameraFovy
	c.aspect = DefaultCameraAspect
	c.near = DefaultCameraNear
	c.far = DefaultCameraFar
	c.viewDirty = true
	c.projectionDirty = true
}

func (c *Camera) GetPosition() mgl32.Vec3 {
	return c.position
}

func (c *Camera) SetPosition(position mgl32.Vec3) {
	c.position = position
	c.viewDirty = true
}

func (c *Camera) GetPitch() float32 {
	return c.pitch
}

func (c *Camera) SetPitch(pitch float32) {
	c.pitch = pitch
	c.viewDirty = true
}

func (c *Camera) GetYaw() float32 {
	return c.yaw
}

func (c *Camera) SetYaw(yaw float32) {
	c.yaw = yaw
	c.viewDirty = true
}

func (c *Camera) GetFovy() float32 {
	return c.fovy
}

func (c *Camera) SetFovy(fovy float32) {
	c.fovy = fovy
	c.projectionDirty = true
}

func (c *Camera) GetAspect() float32 {
	return c.aspect
}

func (c *Camera) SetAspect(aspect float32) {
	c.aspect = aspect
	c.projectionDirty = true
}

func (c *Camera) GetNear() float32 {
	return c.near
}

func (c *Camera) SetNear(near float32) {
	c.near = near
	c.projectionDirty = true
}

func (c *Camera) GetFar() float32 {
	return c.far
}

func (c *Camera) SetFar(far float32) {
	c.far = far
	c.projectionDirty = true
}

func (c *Camera) Front() mgl32.Vec3 {
	c.updateView()
	return c.front
}

func (c *Camera) Right() mgl32.Vec3 {
	c.updateView()
	return c.right
}

func (c *Camera) Up() mgl32.Vec3 {
	c.updateView()
	return c.up
}

func (c *Camera) GetView() mgl32.Mat4 {
	c.updateView()
	return c.view
}

func (c *Camera) GetProjection() mgl32.Mat4 {
	if c.projectionDirty {
		c.projection = mgl32.Perspective(c.fovy, c.aspect, c.near, c.far)
		c.projectionDirty = false
	}
	return c.projection
}

func (c *Camera) MoveFront(d float32) {
	c.SetPosition(c.position.Add(c.Front().Mul(d)))
}

func (c *Camera) MoveRight(d float32) {
	c.SetPosition(c.position.Add(c.Right().Mul(d)))
}

func (c *Camera) MoveUp(d float32) {
	c.SetPosition(c.position.Add(c.Up().Mul(d)))
}

func (c *Camera) TurnUp(d float32) {
	c.SetPitch(c.pitch + d)
}

func (c *Camera) TurnDown(d float32) {
	c.TurnUp(-d)
}

func (c *Camera) TurnRight(d float32) {
	c.SetYaw(c.yaw + d)
}

func (c *Camera) TurnLeft(d float32) {
	c.TurnRight(-d)
}

func (c *Camera) updateView() {
	if !c.viewDirty {
		return
	}
	c.front = math.DirectionFromPitchYaw(c.pitch, c.yaw)
	c.right = math.Normalized(c.front.Cross(WorldUp))
	c.up = math.Normalized(c.right.Cross(c.front))
	c.view = mgl32.LookAtV(c.position, c.position.Add(c.front), c.up)
	c.viewDirty = false
}
