package math

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/spaghettifunk/glkit/engine/core"
)

// GeometryGenerateSmoothNormals sets every vertex normal to the normalized
// sum of the face normals of the triangles that use it. Face normals are
// left unnormalized so bigger triangles weigh more. Vertices not referenced
// by any triangle end up with a zero normal.
func GeometryGenerateSmoothNormals(vertices []Vertex, indices []uint32) {
	for i := range vertices {
		vertices[i].Normal = mgl32.Vec3{}
	}
	for i := 0; i+2 < len(indices); i += 3 {
		i0 := indices[i+0]
		i1 := indices[i+1]
		i2 := indices[i+2]

		edge1 := vertices[i1].Position.Sub(vertices[i0].Position)
		edge2 := vertices[i2].Position.Sub(vertices[i0].Position)
		normal := edge1.Cross(edge2)

		vertices[i0].Normal = vertices[i0].Normal.Add(normal)
		vertices[i1].Normal = vertices[i1].Normal.Add(normal)
		vertices[i2].Normal = vertices[i2].Normal.Add(normal)
	}
	for i := range vertices {
		vertices[i].Normal = Normalized(vertices[i].Normal)
	}
}

// GeometryValidateIndices checks that every index addresses a vertex.
func GeometryValidateIndices(vertexCount int, indices []uint32) error {
	for i, idx := range indices {
		if int(idx) >= vertexCount {
			return fmt.Errorf("index %d at position %d with %d vertices: %w", idx, i, vertexCount, core.ErrIndexOutOfRange)
		}
	}
	return nil
}

// GeometryInterleave flattens vertices into position, normal, texcoord
// float runs, VertexFloats values per vertex.
func GeometryInterleave(vertices []Vertex) []float32 {
	out := make([]float32, 0, len(vertices)*VertexFloats)
	for _, v := range vertices {
		out = append(out,
			v.Position.X(), v.Position.Y(), v.Position.Z(),
			v.Normal.X(), v.Normal.Y(), v.Normal.Z(),
			v.Texcoord.X(), v.Texcoord.Y(),
		)
	}
	return out
}

// GeometryGenerateGridLines builds the line list of a square grid in the
// z=0 plane. Each value in [-size, size) produces one line parallel to Y and
// one parallel to X, two 2D vertices each, for 8*size vertices in total.
func GeometryGenerateGridLines(size int) []float32 {
	if size <= 0 {
		return nil
	}
	s := float32(size)
	v := make([]float32, 0, size*16)
	for x := -size; x < size; x++ {
		v = append(v, float32(x), -s, float32(x), s)
	}
	for y := -size; y < size; y++ {
		v = append(v, -s, float32(y), s, float32(y))
	}
	return v
}

// GeometryGenerateUVSphere builds a unit sphere with the given number of
// latitude rings and longitude segments. Normals point outward and
// texcoords span [0,1]².
func GeometryGenerateUVSphere(rings, segments int) ([]Vertex, []uint32) {
	if rings < 2 {
		rings = 2
	}
	if segments < 3 {
		segments = 3
	}
	vertices := make([]Vertex, 0, (rings+1)*(segments+1))
	for r := 0; r <= rings; r++ {
		v := float32(r) / float32(rings)
		phi := v * K_PI
		for s := 0; s <= segments; s++ {
			u := float32(s) / float32(segments)
			theta := u * 2 * K_PI
			p := mgl32.Vec3{
				ksin(phi) * kcos(theta),
				kcos(phi),
				ksin(phi) * ksin(theta),
			}
			vertices = append(vertices, Vertex{
				Position: p,
				Normal:   Normalized(p),
				Texcoord: mgl32.Vec2{u, v},
			})
		}
	}

	indices := make([]uint32, 0, rings*segments*6)
	stride := uint32(segments + 1)
	for r := uint32(0); r < uint32(rings); r++ {
		for s := uint32(0); s < uint32(segments); s++ {
			a := r*stride + s
			b := a + stride
			indices = append(indices, a, b, a+1, a+1, b, b+1)
		}
	}
	return vertices, indices
}
