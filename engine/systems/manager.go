package systems

import (
	"runtime"

	"github.com/spaghettifunk/glkit/engine/renderer"
)

type SystemManager struct {
	JobSystem    *JobSystem
	CameraSystem *CameraSystem
	ShaderSystem *ShaderSystem
	MeshSystem   *MeshSystem
}

func NewSystemManager(backend renderer.RendererBackend) (*SystemManager, error) {
	js, err := NewJobSystem(runtime.NumCPU(), 64)
	if err != nil {
		return nil, err
	}
	cs, err := NewCameraSystem(&CameraSystemConfig{
		MaxCameraCount: 100,
	})
	if err != nil {
		return nil, err
	}
	ss, err := NewShaderSystem(&ShaderSystemConfig{
		MaxShaderCount: 1000,
	}, backend)
	if err != nil {
		return nil, err
	}
	ms, err := NewMeshSystem(&MeshSystemConfig{
		MaxMeshCount: 1000,
	}, backend)
	if err != nil {
		return nil, err
	}
	return &SystemManager{
		JobSystem:    js,
		CameraSystem: cs,
		ShaderSystem: ss,
		MeshSystem:   ms,
	}, nil
}

// Shutdown waits for queued jobs, then releases the GPU objects of every
// system. Meshes go before shaders.
func (sm *SystemManager) Shutdown() error {
	if err := sm.JobSystem.Shutdown(); err != nil {
		return err
	}
	if err := sm.MeshSystem.Shutdown(); err != nil {
		return err
	}
	if err := sm.ShaderSystem.Shutdown(); err != nil {
		return err
	}
	if err := sm.CameraSystem.Shutdown(); err != nil {
		return err
	}
	return nil
}
