package math

import (
	m "math"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	/** @brief An approximate representation of PI. */
	K_PI float32 = 3.14159265358979323846
	/** @brief A multiplier used to convert degrees to radians. */
	K_DEG2RAD_MULTIPLIER float32 = K_PI / 180.0
	/** @brief A multiplier used to convert radians to degrees. */
	K_RAD2DEG_MULTIPLIER float32 = 180.0 / K_PI
	/** @brief Smallest positive number where 1.0 + FLOAT_EPSILON != 0 */
	K_FLOAT_EPSILON float32 = 1.192092896e-07
)

func ksin(x float32) float32 {
	return float32(m.Sin(float64(x)))
}

func kcos(x float32) float32 {
	return float32(m.Cos(float64(x)))
}

func DegToRad(degrees float32) float32 {
	return degrees * K_DEG2RAD_MULTIPLIER
}

func RadToDeg(radians float32) float32 {
	return radians * K_RAD2DEG_MULTIPLIER
}

// Vec3DegToRad converts each component of an Euler angle triple.
func Vec3DegToRad(v mgl32.Vec3) mgl32.Vec3 {
	return v.Mul(K_DEG2RAD_MULTIPLIER)
}

func Vec3RadToDeg(v mgl32.Vec3) mgl32.Vec3 {
	return v.Mul(K_RAD2DEG_MULTIPLIER)
}

// DirectionFromPitchYaw returns the unit vector a camera with the given
// pitch and yaw (radians) looks along. Yaw 0 faces +X, yaw -90° faces -Z.
func DirectionFromPitchYaw(pitch, yaw float32) mgl32.Vec3 {
	return mgl32.Vec3{
		kcos(pitch) * kcos(yaw),
		ksin(pitch),
		kcos(pitch) * ksin(yaw),
	}
}

// Normalized returns v scaled to unit length, or the zero vector when v has
// no length.
func Normalized(v mgl32.Vec3) mgl32.Vec3 {
	if v.Len() <= K_FLOAT_EPSILON {
		return mgl32.Vec3{}
	}
	return v.Normalize()
}
