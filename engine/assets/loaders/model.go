package loaders

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/spaghettifunk/glkit/engine/core"
	"github.com/spaghettifunk/glkit/engine/math"
)

// ObjData is the geometry read from a Wavefront OBJ file: positions with
// smoothed per-vertex normals and a triangle index list.
type ObjData struct {
	Vertices []math.Vertex
	Indices  []uint32
}

// LoadOBJ opens filePath and parses it with ParseOBJ.
func LoadOBJ(filePath string) (*ObjData, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := ParseOBJ(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filePath, err)
	}
	core.LogDebug("Loaded %s: %d vertices, %d triangles", filePath, len(data.Vertices), len(data.Indices)/3)
	return data, nil
}

// ParseOBJ reads "v" and "f" records. Faces with more than three corners
// are split into a fan around their first corner. Only the position index
// of "p/t/n" corners is used, texture and normal records are skipped.
func ParseOBJ(r io.Reader) (*ObjData, error) {
	data := &ObjData{}

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "v":
			vertex, err := parseVertex(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			data.Vertices = append(data.Vertices, vertex)
		case "f":
			face, err := parseFace(fields[1:], len(data.Vertices))
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			for i := 1; i+1 < len(face); i++ {
				data.Indices = append(data.Indices, face[0], face[i], face[i+1])
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	math.GeometryGenerateSmoothNormals(data.Vertices, data.Indices)
	return data, nil
}

func parseVertex(fields []string) (math.Vertex, error) {
	if len(fields) < 3 {
		return math.Vertex{}, fmt.Errorf("vertex needs 3 coordinates, got %d: %w", len(fields), core.ErrInvalidOBJ)
	}
	var position mgl32.Vec3
	for i := 0; i < 3; i++ {
		f, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return math.Vertex{}, fmt.Errorf("vertex coordinate %q: %w", fields[i], core.ErrInvalidOBJ)
		}
		position[i] = float32(f)
	}
	return math.Vertex{Position: position}, nil
}

// parseFace returns 0-based indices. vertexCount is the number of vertices
// declared so far, negative indices count back from it.
func parseFace(fields []string, vertexCount int) ([]uint32, error) {
	if len(fields) < 3 {
		return nil, fmt.Errorf("face needs at least 3 vertices, got %d: %w", len(fields), core.ErrInvalidOBJ)
	}
	face := make([]uint32, 0, len(fields))
	for _, field := range fields {
		token, _, _ := strings.Cut(field, "/")
		idx, err := strconv.Atoi(token)
		if err != nil {
			return nil, fmt.Errorf("face index %q: %w", field, core.ErrInvalidOBJ)
		}
		switch {
		case idx > 0:
			idx--
		case idx < 0:
			idx += vertexCount
		default:
			return nil, fmt.Errorf("face index 0: %w", core.ErrInvalidOBJ)
		}
		if idx < 0 || idx >= vertexCount {
			return nil, fmt.Errorf("face index %s with %d vertices: %w: %w", token, vertexCount, core.ErrInvalidOBJ, core.ErrIndexOutOfRange)
		}
		face = append(face, uint32(idx))
	}
	return face, nil
}
