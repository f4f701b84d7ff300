package math

import "github.com/go-gl/mathgl/mgl32"

func TransformCreate() *Transform {
	t := &Transform{}
	t.SetPositionRotationScale(mgl32.Vec3{}, mgl32.Vec3{}, mgl32.Vec3{1, 1, 1})
	t.Local = mgl32.Ident4()
	return t
}

func TransformFromPosition(position mgl32.Vec3) *Transform {
	t := TransformCreate()
	t.SetPosition(position)
	return t
}

func TransformFromPositionRotationScale(position, rotation, scale mgl32.Vec3) *Transform {
	t := TransformCreate()
	t.SetPositionRotationScale(position, rotation, scale)
	return t
}

func (t *Transform) SetPosition(position mgl32.Vec3) {
	t.Position = position
	t.IsDirty = true
}

func (t *Transform) Translate(translation mgl32.Vec3) {
	t.Position = t.Position.Add(translation)
	t.IsDirty = true
}

func (t *Transform) SetRotation(rotation mgl32.Vec3) {
	t.Rotation = rotation
	t.IsDirty = true
}

func (t *Transform) Rotate(rotation mgl32.Vec3) {
	t.Rotation = t.Rotation.Add(rotation)
	t.IsDirty = true
}

func (t *Transform) SetScale(scale mgl32.Vec3) {
	t.Scale = scale
	t.IsDirty = true
}

func (t *Transform) SetPositionRotationScale(position, rotation, scale mgl32.Vec3) {
	t.Position = position
	t.Rotation = rotation
	t.Scale = scale
	t.IsDirty = true
}

// GetLocal returns T(position) * Rx * Ry * Rz * S(scale), rebuilding it only
// after a setter has run.
func (t *Transform) GetLocal() mgl32.Mat4 {
	if t == nil {
		return mgl32.Ident4()
	}
	if t.IsDirty {
		local := mgl32.Translate3D(t.Position.X(), t.Position.Y(), t.Position.Z())
		local = local.Mul4(mgl32.HomogRotate3DX(t.Rotation.X()))
		local = local.Mul4(mgl32.HomogRotate3DY(t.Rotation.Y()))
		local = local.Mul4(mgl32.HomogRotate3DZ(t.Rotation.Z()))
		local = local.Mul4(mgl32.Scale3D(t.Scale.X(), t.Scale.Y(), t.Scale.Z()))
		t.Local = local
		t.IsDirty = false
	}
	return t.Local
}
