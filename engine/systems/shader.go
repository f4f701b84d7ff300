package systems

import (
	"fmt"
	"sort"

	"github.com/spaghettifunk/glkit/engine/core"
	"github.com/spaghettifunk/glkit/engine/renderer"
)

/** @brief Configuration for the shader system. */
type ShaderSystemConfig struct {
	/** @brief The maximum number of shaders held in the system. */
	MaxShaderCount uint16
}

/**
 * @brief Owns every named shader for the lifetime of the process. Lookups
 * hand out borrowed pointers; nothing is freed before Clear or Shutdown.
 */
type ShaderSystem struct {
	// This system's configuration.
	Config *ShaderSystemConfig
	// A lookup table for shader name->shader
	Lookup map[string]*renderer.Shader

	backend renderer.RendererBackend
}

func NewShaderSystem(config *ShaderSystemConfig, backend renderer.RendererBackend) (*ShaderSystem, error) {
	if config.MaxShaderCount == 0 {
		err := fmt.Errorf("NewShaderSystem - config.MaxShaderCount must be greater than 0")
		core.LogError(err.Error())
		return nil, err
	}
	return &ShaderSystem{
		Config:  config,
		Lookup:  make(map[string]*renderer.Shader, config.MaxShaderCount),
		backend: backend,
	}, nil
}

/**
 * @brief Gets a shader by name.
 *
 * @param name The name of the shader.
 * @return The shader or an error wrapping core.ErrNotFound.
 */
func (ss *ShaderSystem) GetShader(name string) (*renderer.Shader, error) {
	shader, ok := ss.Lookup[name]
	if !ok {
		return nil, fmt.Errorf("shader '%s': %w", name, core.ErrNotFound)
	}
	return shader, nil
}

/**
 * @brief Creates a shader from two stage files, or returns the one already
 * registered under name. A shader that fails to build is not registered.
 */
func (ss *ShaderSystem) AddShaderFromFile(name, vertexFile, fragmentFile string) (*renderer.Shader, error) {
	return ss.add(name, func(shader *renderer.Shader) error {
		return shader.InitFromFile(vertexFile, fragmentFile)
	})
}

// AddShader is AddShaderFromFile for in-memory sources.
func (ss *ShaderSystem) AddShader(name, vertexSrc, fragmentSrc string) (*renderer.Shader, error) {
	return ss.add(name, func(shader *renderer.Shader) error {
		return shader.Init(vertexSrc, fragmentSrc)
	})
}

func (ss *ShaderSystem) add(name string, init func(*renderer.Shader) error) (*renderer.Shader, error) {
	if shader, ok := ss.Lookup[name]; ok {
		core.LogWarn("Shader %s already exists", name)
		return shader, nil
	}
	if len(ss.Lookup) >= int(ss.Config.MaxShaderCount) {
		err := fmt.Errorf("unable to add shader '%s', the shader system holds %d shaders already", name, len(ss.Lookup))
		core.LogError(err.Error())
		return nil, err
	}

	shader := renderer.NewShader(ss.backend, name)
	if err := init(shader); err != nil {
		core.LogError("Failed to init shader %s: %s", name, err)
		return nil, err
	}
	ss.Lookup[name] = shader
	return shader, nil
}

/**
 * @brief Rebuilds every shader that was loaded from the given file. Shaders
 * that fail to compile keep their previous program.
 *
 * @return The number of shaders reloaded and the first error met.
 */
func (ss *ShaderSystem) ReloadFile(path string) (int, error) {
	reloaded := 0
	var firstErr error
	for _, name := range ss.Names() {
		shader := ss.Lookup[name]
		if !shader.UsesFile(path) {
			continue
		}
		if err := shader.Reload(); err != nil {
			core.LogError("Failed to reload shader %s: %s", name, err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		reloaded++
	}
	return reloaded, firstErr
}

// Names returns the registered shader names in sorted order.
func (ss *ShaderSystem) Names() []string {
	names := make([]string, 0, len(ss.Lookup))
	for name := range ss.Lookup {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Clear frees and forgets every shader.
func (ss *ShaderSystem) Clear() {
	for name, shader := range ss.Lookup {
		shader.Free()
		delete(ss.Lookup, name)
	}
}

/**
 * @brief Shuts down the shader system.
 */
func (ss *ShaderSystem) Shutdown() error {
	ss.Clear()
	return nil
}
