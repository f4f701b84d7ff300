package systems

import (
	"errors"
	"fmt"
	"sort"

	"github.com/spaghettifunk/glkit/engine/assets/loaders"
	"github.com/spaghettifunk/glkit/engine/core"
	"github.com/spaghettifunk/glkit/engine/math"
	"github.com/spaghettifunk/glkit/engine/renderer"
)

type MeshSystemConfig struct {
	MaxMeshCount uint16
}

// MeshSystem owns every named mesh for the lifetime of the process.
type MeshSystem struct {
	Config *MeshSystemConfig
	Lookup map[string]*renderer.Mesh

	backend renderer.RendererBackend
}

func NewMeshSystem(config *MeshSystemConfig, backend renderer.RendererBackend) (*MeshSystem, error) {
	if config.MaxMeshCount == 0 {
		err := fmt.Errorf("NewMeshSystem - config.MaxMeshCount must be greater than 0")
		core.LogError(err.Error())
		return nil, err
	}
	return &MeshSystem{
		Config:  config,
		Lookup:  make(map[string]*renderer.Mesh, config.MaxMeshCount),
		backend: backend,
	}, nil
}

func (ms *MeshSystem) GetMesh(name string) (*renderer.Mesh, error) {
	mesh, ok := ms.Lookup[name]
	if !ok {
		return nil, fmt.Errorf("mesh '%s': %w", name, core.ErrNotFound)
	}
	return mesh, nil
}

func (ms *MeshSystem) AddMeshFromObjFile(name, objFile string) (*renderer.Mesh, error) {
	return ms.add(name, func(mesh *renderer.Mesh) error {
		return mesh.InitFromObjFile(objFile)
	})
}

type objResult struct {
	name string
	data *loaders.ObjData
	err  error
}

// AddMeshesFromObjFiles loads name->path OBJ files. Parsing runs on the job
// system, the GPU upload happens on the calling goroutine. Every file is
// attempted; the returned error joins all failures. With a nil job system
// the files are loaded one after the other.
func (ms *MeshSystem) AddMeshesFromObjFiles(jobs *JobSystem, files map[string]string) error {
	var errs []error
	if jobs == nil {
		for name, path := range files {
			if _, err := ms.AddMeshFromObjFile(name, path); err != nil {
				errs = append(errs, fmt.Errorf("mesh '%s': %w", name, err))
			}
		}
		return errors.Join(errs...)
	}

	results := make(chan objResult, len(files))
	pending := 0
	for name, path := range files {
		if _, ok := ms.Lookup[name]; ok {
			core.LogWarn("Mesh %s already exists", name)
			continue
		}
		pending++
		jobs.Submit(JobTask{
			OnStart: func() (interface{}, error) {
				return loaders.LoadOBJ(path)
			},
			OnComplete: func(result interface{}) {
				results <- objResult{name: name, data: result.(*loaders.ObjData)}
			},
			OnFailure: func(err error) {
				results <- objResult{name: name, err: err}
			},
		})
	}

	for i := 0; i < pending; i++ {
		r := <-results
		if r.err != nil {
			errs = append(errs, fmt.Errorf("mesh '%s': %w", r.name, r.err))
			continue
		}
		if _, err := ms.AddMesh(r.name, r.data.Vertices, r.data.Indices); err != nil {
			errs = append(errs, fmt.Errorf("mesh '%s': %w", r.name, err))
		}
	}
	return errors.Join(errs...)
}

func (ms *MeshSystem) AddMesh(name string, vertices []math.Vertex, indices []uint32) (*renderer.Mesh, error) {
	return ms.add(name, func(mesh *renderer.Mesh) error {
		return mesh.Init(vertices, indices)
	})
}

func (ms *MeshSystem) add(name string, init func(*renderer.Mesh) error) (*renderer.Mesh, error) {
	if mesh, ok := ms.Lookup[name]; ok {
		core.LogWarn("Mesh %s already exists", name)
		return mesh, nil
	}
	if len(ms.Lookup) >= int(ms.Config.MaxMeshCount) {
		err := fmt.Errorf("unable to add mesh '%s', the mesh system holds %d meshes already", name, len(ms.Lookup))
		core.LogError(err.Error())
		return nil, err
	}

	mesh := renderer.NewMesh(ms.backend, name)
	if err := init(mesh); err != nil {
		core.LogError("Failed to init mesh %s: %s", name, err)
		return nil, err
	}
	ms.Lookup[name] = mesh
	return mesh, nil
}

func (ms *MeshSystem) Names() []string {
	names := make([]string, 0, len(ms.Lookup))
	for name := range ms.Lookup {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (ms *MeshSystem) Shutdown() error {
	for name, mesh := range ms.Lookup {
		mesh.Free()
		delete(ms.Lookup, name)
	}
	return nil
}
