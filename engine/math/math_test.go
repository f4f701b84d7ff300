package math

import (
	"errors"
	m "math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/spaghettifunk/glkit/engine/core"
)

const epsilon = 1e-5

// near compares with an absolute tolerance. mgl32's threshold helpers are
// relative and fail against exact zeros.
func near(a, b float32) bool {
	return mgl32.Abs(a-b) <= epsilon
}

func vecNear(a, b mgl32.Vec3) bool {
	return a.ApproxFuncEqual(b, near)
}

func TestClamp(t *testing.T) {
	tests := []struct {
		name            string
		f, low, high, w float32
	}{
		{name: "inside", f: 0.5, low: 0, high: 1, w: 0.5},
		{name: "below", f: -2, low: -1, high: 1, w: -1},
		{name: "above", f: 91, low: -89, high: 89, w: 89},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clamp(tt.f, tt.low, tt.high); got != tt.w {
				t.Errorf("Clamp() = %v, want %v", got, tt.w)
			}
		})
	}
	if got := Clamp(7, 0, 5); got != 5 {
		t.Errorf("Clamp on ints = %v, want 5", got)
	}
}

func TestWrap(t *testing.T) {
	tests := []struct {
		name string
		f, w float32
	}{
		{name: "inside", f: 90, w: 90},
		{name: "past max", f: 190, w: -170},
		{name: "past min", f: -270, w: 90},
		{name: "several turns", f: 900, w: 180},
		{name: "on max", f: 180, w: 180},
		{name: "on min", f: -180, w: -180},
		{name: "turns down to min", f: -540, w: -180},
		{name: "fraction past max", f: 180.5, w: -179.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Wrap(tt.f, -180, 180); got != tt.w {
				t.Errorf("Wrap(%v) = %v, want %v", tt.f, got, tt.w)
			}
		})
	}
}

func TestWrapExtremes(t *testing.T) {
	for _, f := range []float32{1e20, -1e20, 3.4e38, -3.4e38} {
		got := Wrap(f, -180, 180)
		if got < -180 || got > 180 {
			t.Errorf("Wrap(%v) = %v, outside [-180, 180]", f, got)
		}
	}

	inf := float32(m.Inf(1))
	if got := Wrap(inf, -180, 180); got != inf {
		t.Errorf("Wrap(+Inf) = %v, want +Inf", got)
	}
	if got := Wrap(-inf, -180, 180); got != -inf {
		t.Errorf("Wrap(-Inf) = %v, want -Inf", got)
	}
	if got := Wrap(float32(m.NaN()), -180, 180); !m.IsNaN(float64(got)) {
		t.Errorf("Wrap(NaN) = %v, want NaN", got)
	}
	if got := Wrap(float32(5), 1, 1); got != 5 {
		t.Errorf("Wrap with an empty range = %v, want 5", got)
	}
}

func TestDirectionFromPitchYaw(t *testing.T) {
	tests := []struct {
		name       string
		pitch, yaw float32
		want       mgl32.Vec3
	}{
		{name: "yaw 0 faces +X", pitch: 0, yaw: 0, want: mgl32.Vec3{1, 0, 0}},
		{name: "yaw -90 faces -Z", pitch: 0, yaw: DegToRad(-90), want: mgl32.Vec3{0, 0, -1}},
		{name: "pitch 90 faces +Y", pitch: DegToRad(90), yaw: 0, want: mgl32.Vec3{0, 1, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DirectionFromPitchYaw(tt.pitch, tt.yaw); !vecNear(got, tt.want) {
				t.Errorf("DirectionFromPitchYaw() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNormalizedZero(t *testing.T) {
	if got := Normalized(mgl32.Vec3{}); got != (mgl32.Vec3{}) {
		t.Errorf("Normalized(0) = %v, want zero", got)
	}
	if got := Normalized(mgl32.Vec3{0, 3, 4}); !vecNear(got, mgl32.Vec3{0, 0.6, 0.8}) {
		t.Errorf("Normalized() = %v", got)
	}
}

func TestDegRad(t *testing.T) {
	if got := RadToDeg(DegToRad(45)); mgl32.Abs(got-45) > epsilon {
		t.Errorf("round trip = %v, want 45", got)
	}
	v := Vec3RadToDeg(Vec3DegToRad(mgl32.Vec3{10, -20, 30}))
	if !vecNear(v, mgl32.Vec3{10, -20, 30}) {
		t.Errorf("Vec3 round trip = %v", v)
	}
}

func TestTransformLocal(t *testing.T) {
	tr := TransformCreate()
	if tr.GetLocal() != mgl32.Ident4() {
		t.Errorf("new transform is not identity")
	}

	tr.SetPosition(mgl32.Vec3{1, 2, 3})
	tr.SetScale(mgl32.Vec3{2, 2, 2})
	got := tr.GetLocal().Mul4x1(mgl32.Vec4{1, 0, 0, 1})
	if !got.ApproxFuncEqual(mgl32.Vec4{3, 2, 3, 1}, near) {
		t.Errorf("scaled and translated point = %v", got)
	}

	tr.SetScale(mgl32.Vec3{1, 1, 1})
	tr.SetRotation(mgl32.Vec3{0, 0, DegToRad(90)})
	got = tr.GetLocal().Mul4x1(mgl32.Vec4{1, 0, 0, 1})
	if !got.ApproxFuncEqual(mgl32.Vec4{1, 3, 3, 1}, near) {
		t.Errorf("rotated point = %v", got)
	}

	tr.Translate(mgl32.Vec3{-1, -2, -3})
	tr.Rotate(mgl32.Vec3{0, 0, DegToRad(-90)})
	if !tr.GetLocal().ApproxFuncEqual(mgl32.Ident4(), near) {
		t.Errorf("undoing the moves did not give identity: %v", tr.GetLocal())
	}

	var nilTransform *Transform
	if nilTransform.GetLocal() != mgl32.Ident4() {
		t.Errorf("nil transform is not identity")
	}
}

func TestGeometrySmoothNormals(t *testing.T) {
	// two triangles folded along the Y axis
	vertices := []Vertex{
		{Position: mgl32.Vec3{0, 0, 0}},
		{Position: mgl32.Vec3{0, 1, 0}},
		{Position: mgl32.Vec3{1, 0, 0}},
		{Position: mgl32.Vec3{0, 0, 1}},
		{Position: mgl32.Vec3{5, 5, 5}},
	}
	indices := []uint32{0, 2, 1, 0, 1, 3}
	GeometryGenerateSmoothNormals(vertices, indices)

	want := []mgl32.Vec3{
		Normalized(mgl32.Vec3{1, 0, 1}),
		Normalized(mgl32.Vec3{1, 0, 1}),
		{0, 0, 1},
		{1, 0, 0},
		{},
	}
	for i := range vertices {
		if !vecNear(vertices[i].Normal, want[i]) {
			t.Errorf("vertex %d normal = %v, want %v", i, vertices[i].Normal, want[i])
		}
	}
}

func TestGeometryValidateIndices(t *testing.T) {
	if err := GeometryValidateIndices(3, []uint32{0, 1, 2}); err != nil {
		t.Errorf("valid indices: %v", err)
	}
	err := GeometryValidateIndices(3, []uint32{0, 1, 3})
	if !errors.Is(err, core.ErrIndexOutOfRange) {
		t.Errorf("error = %v, want ErrIndexOutOfRange", err)
	}
}

func TestGeometryInterleave(t *testing.T) {
	out := GeometryInterleave([]Vertex{{
		Position: mgl32.Vec3{1, 2, 3},
		Normal:   mgl32.Vec3{4, 5, 6},
		Texcoord: mgl32.Vec2{7, 8},
	}})
	if len(out) != VertexFloats {
		t.Fatalf("len = %d, want %d", len(out), VertexFloats)
	}
	for i, v := range out {
		if v != float32(i+1) {
			t.Errorf("out[%d] = %v, want %v", i, v, i+1)
		}
	}
}

func TestGeometryGridLines(t *testing.T) {
	if GeometryGenerateGridLines(0) != nil {
		t.Errorf("size 0 should give no lines")
	}
	lines := GeometryGenerateGridLines(2)
	// 8*size vertices of two floats
	if len(lines) != 2*8*2 {
		t.Fatalf("len = %d, want 32", len(lines))
	}
	first := lines[:4]
	if first[0] != -2 || first[1] != -2 || first[2] != -2 || first[3] != 2 {
		t.Errorf("first line = %v, want [-2 -2 -2 2]", first)
	}
}

func TestGeometryUVSphere(t *testing.T) {
	vertices, indices := GeometryGenerateUVSphere(4, 8)
	if len(vertices) != 5*9 {
		t.Errorf("vertex count = %d, want 45", len(vertices))
	}
	if len(indices) != 4*8*6 {
		t.Errorf("index count = %d, want 192", len(indices))
	}
	if err := GeometryValidateIndices(len(vertices), indices); err != nil {
		t.Error(err)
	}
	for i, v := range vertices {
		if l := v.Position.Len(); mgl32.Abs(l-1) > 1e-4 {
			t.Fatalf("vertex %d off the unit sphere: %v", i, l)
		}
	}
}
