package renderer

import (
	"fmt"
	"path/filepath"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/spaghettifunk/glkit/engine/assets/loaders"
	"github.com/spaghettifunk/glkit/engine/core"
)

// ProgramInvalid is the handle of a shader that is not usable.
const ProgramInvalid uint32 = 0

// Shader is a linked vertex+fragment program. It is only usable after Init
// or InitFromFile succeeded; until then, and after Free, IsValid reports
// false and Use fails.
type Shader struct {
	Name string

	backend RendererBackend
	program uint32
	// uniform name -> location, including misses
	locations map[string]int32

	vertexPath   string
	fragmentPath string
}

func NewShader(backend RendererBackend, name string) *Shader {
	return &Shader{
		Name:      name,
		backend:   backend,
		program:   ProgramInvalid,
		locations: make(map[string]int32),
	}
}

// Init compiles both stages and links them. On failure the shader keeps its
// previous state.
func (s *Shader) Init(vertexSrc, fragmentSrc string) error {
	vertexShader, err := s.backend.CompileShader(ShaderStageVertex, vertexSrc)
	if err != nil {
		core.LogError("Unable to compile vertex shader of '%s':\n%s", s.Name, vertexSrc)
		return err
	}
	defer s.backend.DeleteShader(vertexShader)

	fragmentShader, err := s.backend.CompileShader(ShaderStageFragment, fragmentSrc)
	if err != nil {
		core.LogError("Unable to compile fragment shader of '%s':\n%s", s.Name, fragmentSrc)
		return err
	}
	defer s.backend.DeleteShader(fragmentShader)

	program, err := s.backend.LinkProgram(vertexShader, fragmentShader)
	if err != nil {
		core.LogError("Unable to link shader program '%s'", s.Name)
		return err
	}

	s.Free()
	s.program = program
	return nil
}

// InitFromFile reads the two stage sources from disk and calls Init. The
// paths are kept so the shader can be rebuilt with Reload.
func (s *Shader) InitFromFile(vertexFile, fragmentFile string) error {
	source, err := loaders.LoadShaderSource(vertexFile, fragmentFile)
	if err != nil {
		core.LogError("Failed to open file: %s", err)
		return err
	}
	if err := s.Init(source.Vertex, source.Fragment); err != nil {
		return err
	}
	s.vertexPath = vertexFile
	s.fragmentPath = fragmentFile
	return nil
}

// Reload rebuilds a shader created with InitFromFile. If the new sources do
// not compile the running program stays in place.
func (s *Shader) Reload() error {
	if s.vertexPath == "" || s.fragmentPath == "" {
		return fmt.Errorf("shader '%s' was not loaded from files", s.Name)
	}
	if err := s.InitFromFile(s.vertexPath, s.fragmentPath); err != nil {
		return err
	}
	core.LogInfo("Reloaded shader '%s'", s.Name)
	return nil
}

// UsesFile reports whether path is one of the stage files of this shader.
func (s *Shader) UsesFile(path string) bool {
	if path == "" || s.vertexPath == "" {
		return false
	}
	path = filepath.Clean(path)
	return path == filepath.Clean(s.vertexPath) || path == filepath.Clean(s.fragmentPath)
}

func (s *Shader) Files() (string, string) {
	return s.vertexPath, s.fragmentPath
}

func (s *Shader) IsValid() bool {
	return s.program != ProgramInvalid
}

func (s *Shader) Program() uint32 {
	return s.program
}

func (s *Shader) Use() error {
	if !s.IsValid() {
		return fmt.Errorf("use of shader '%s': %w", s.Name, core.ErrShaderInvalid)
	}
	if err := s.backend.UseProgram(s.program); err != nil {
		return fmt.Errorf("glUseProgram: %w", err)
	}
	return nil
}

func (s *Shader) SetInt(name string, value int32) error {
	if err := s.backend.SetUniformInt(s.uniformLocation(name), value); err != nil {
		return fmt.Errorf("glUniform1i %s: %w", name, err)
	}
	return nil
}

func (s *Shader) SetFloat(name string, value float32) error {
	if err := s.backend.SetUniformFloat(s.uniformLocation(name), value); err != nil {
		return fmt.Errorf("glUniform1f %s: %w", name, err)
	}
	return nil
}

func (s *Shader) SetVec3(name string, value mgl32.Vec3) error {
	if err := s.backend.SetUniformVec3(s.uniformLocation(name), value); err != nil {
		return fmt.Errorf("glUniform3fv %s: %w", name, err)
	}
	return nil
}

func (s *Shader) SetVec3f(name string, x, y, z float32) error {
	return s.SetVec3(name, mgl32.Vec3{x, y, z})
}

// SetMat4 uploads a column-major matrix. Pass transpose=true for row-major data.
func (s *Shader) SetMat4(name string, value mgl32.Mat4, transpose bool) error {
	if err := s.backend.SetUniformMat4(s.uniformLocation(name), value, transpose); err != nil {
		return fmt.Errorf("glUniformMatrix4fv %s: %w", name, err)
	}
	return nil
}

// Free deletes the program. The shader becomes invalid.
func (s *Shader) Free() {
	if s.program != ProgramInvalid {
		s.backend.DeleteProgram(s.program)
		s.program = ProgramInvalid
	}
	// locations belong to the old program
	s.locations = make(map[string]int32)
}

func (s *Shader) uniformLocation(name string) int32 {
	if loc, ok := s.locations[name]; ok {
		return loc
	}
	loc := UniformLocationNone
	if s.IsValid() {
		loc = s.backend.UniformLocation(s.program, name)
	}
	if loc == UniformLocationNone {
		core.LogWarn("Uniform %s not found in shader '%s'", name, s.Name)
	}
	s.locations[name] = loc
	return loc
}
