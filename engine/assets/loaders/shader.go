package loaders

import (
	"fmt"
	"os"
	"path/filepath"
)

// ShaderSource holds the GLSL text of both stages of a program.
type ShaderSource struct {
	Name     string
	Vertex   string
	Fragment string
}

// LoadShaderSource reads both stages. The name is the vertex file name
// without extension.
func LoadShaderSource(vertexFile, fragmentFile string) (*ShaderSource, error) {
	vertex, err := os.ReadFile(vertexFile)
	if err != nil {
		return nil, err
	}
	fragment, err := os.ReadFile(fragmentFile)
	if err != nil {
		return nil, err
	}
	if len(vertex) == 0 || len(fragment) == 0 {
		return nil, fmt.Errorf("empty shader source in %s or %s", vertexFile, fragmentFile)
	}
	name := filepath.Base(vertexFile)
	return &ShaderSource{
		Name:     name[:len(name)-len(filepath.Ext(name))],
		Vertex:   string(vertex),
		Fragment: string(fragment),
	}, nil
}

// IsShaderFile reports whether path has one of the stage extensions.
func IsShaderFile(path string) bool {
	switch filepath.Ext(path) {
	case ".vs", ".fs", ".vert", ".frag", ".glsl":
		return true
	}
	return false
}

func IsModelFile(path string) bool {
	return filepath.Ext(path) == ".obj"
}
