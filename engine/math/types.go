package math

import "github.com/go-gl/mathgl/mgl32"

/**
 * @brief Represents a single vertex in 3D space, laid out the way the
 * mesh shaders expect it (location 0, 1 and 2).
 */
type Vertex struct {
	/** @brief The position of the vertex */
	Position mgl32.Vec3
	/** @brief The normal of the vertex. */
	Normal mgl32.Vec3
	/** @brief The texture coordinate of the vertex. */
	Texcoord mgl32.Vec2
}

// VertexFloats is the number of float32 values in an interleaved Vertex.
const VertexFloats = 8

/**
 * @brief Represents the transform of an object in the world, using Euler
 * angles in radians. NOTE: The properties of this should not be edited
 * directly, but done via the setters to ensure proper matrix generation.
 */
type Transform struct {
	/** @brief The position in the world. */
	Position mgl32.Vec3
	/** @brief The rotation around X, Y and Z, in radians. */
	Rotation mgl32.Vec3
	/** @brief The scale in the world. */
	Scale mgl32.Vec3
	/**
	 * @brief Indicates if the position, rotation or scale have changed,
	 * indicating that the local matrix needs to be recalculated.
	 */
	IsDirty bool
	/**
	 * @brief The local transformation matrix, updated whenever
	 * the position, rotation or scale have changed.
	 */
	Local mgl32.Mat4
}
