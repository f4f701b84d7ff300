package assets

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spaghettifunk/glkit/engine/assets/loaders"
	"github.com/spaghettifunk/glkit/engine/core"
)

type AssetType uint8

const (
	AssetTypeNone AssetType = iota
	AssetTypeShader
	AssetTypeModel
)

type AssetInfo struct {
	Path        string
	Type        AssetType
	LastChanged time.Time
}

// AssetManager indexes the shader and model files below the assets
// directory and, while watching, posts an EVENT_CODE_ASSET_CHANGED event
// for every write. Events are only posted, never fired, so handlers run
// on the thread that dispatches the bus.
type AssetManager struct {
	root   string
	assets map[string]AssetInfo
	events *core.EventBus

	mutex sync.RWMutex

	done     chan struct{}
	stopped  chan struct{}
	fsnotify *fsnotify.Watcher
	isClosed bool
}

func NewAssetManager(events *core.EventBus) *AssetManager {
	return &AssetManager{
		assets: make(map[string]AssetInfo),
		events: events,
	}
}

// Initialize indexes assetsDir. With watch set it also starts the file
// watcher goroutine.
func (am *AssetManager) Initialize(assetsDir string, watch bool) error {
	am.root = filepath.Clean(assetsDir)
	if !watch {
		return filepath.Walk(am.root, func(walkPath string, fi os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if !fi.IsDir() {
				am.handleFileEvent(walkPath)
			}
			return nil
		})
	}

	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	am.fsnotify = fsWatch
	am.done = make(chan struct{})
	am.stopped = make(chan struct{})

	if err := am.addRecursive(am.root); err != nil {
		am.fsnotify.Close()
		am.fsnotify = nil
		return err
	}
	go am.start()
	core.LogInfo("Watching %s for asset changes", am.root)
	return nil
}

func (am *AssetManager) Root() string {
	return am.root
}

// Path joins name to the assets directory.
func (am *AssetManager) Path(elem ...string) string {
	return filepath.Join(append([]string{am.root}, elem...)...)
}

// Files returns the sorted paths of every indexed asset of the given type.
func (am *AssetManager) Files(assetType AssetType) []string {
	am.mutex.RLock()
	defer am.mutex.RUnlock()

	files := make([]string, 0, len(am.assets))
	for path, info := range am.assets {
		if info.Type == assetType {
			files = append(files, path)
		}
	}
	sort.Strings(files)
	return files
}

func (am *AssetManager) Lookup(path string) (AssetInfo, bool) {
	am.mutex.RLock()
	defer am.mutex.RUnlock()
	info, ok := am.assets[filepath.Clean(path)]
	return info, ok
}

func (am *AssetManager) Shutdown() error {
	if am.fsnotify == nil || am.isClosed {
		return nil
	}
	am.isClosed = true
	close(am.done)
	<-am.stopped
	return nil
}

// addRecursive starts watching the named directory and all sub-directories.
func (am *AssetManager) addRecursive(name string) error {
	if am.isClosed {
		return errors.New("asset watcher already closed")
	}
	return am.watchRecursive(name, false)
}

func (am *AssetManager) start() {
	defer close(am.stopped)
	for {
		select {
		case e, ok := <-am.fsnotify.Events:
			if !ok {
				return
			}
			s, err := os.Stat(e.Name)
			if err == nil && s != nil && s.IsDir() {
				if e.Op&fsnotify.Create != 0 {
					if err := am.watchRecursive(e.Name, false); err != nil {
						core.LogWarn("Failed to watch %s: %s", e.Name, err)
					}
				}
				continue
			}
			// Handle create or modify events
			if e.Op&(fsnotify.Create|fsnotify.Write) != 0 {
				if am.handleFileEvent(e.Name) {
					am.events.Post(core.EventContext{
						Type: core.EVENT_CODE_ASSET_CHANGED,
						Data: &core.AssetEvent{Path: filepath.Clean(e.Name)},
					})
				}
			}
			// Can't stat a deleted path, so try to unwatch it as if it were a directory.
			if e.Op&fsnotify.Remove != 0 {
				am.removeAsset(e.Name)
				_ = am.fsnotify.Remove(e.Name)
			}

		case err, ok := <-am.fsnotify.Errors:
			if !ok {
				return
			}
			core.LogError(err.Error())

		case <-am.done:
			am.fsnotify.Close()
			return
		}
	}
}

// watchRecursive adds all directories under the given one to the watch
// list and indexes the files found there.
func (am *AssetManager) watchRecursive(path string, unWatch bool) error {
	return filepath.Walk(path, func(walkPath string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if fi.IsDir() {
			if unWatch {
				return am.fsnotify.Remove(walkPath)
			}
			return am.fsnotify.Add(walkPath)
		}
		am.handleFileEvent(walkPath)
		return nil
	})
}

// handleFileEvent records a created or modified file. It returns false for
// files that are not assets.
func (am *AssetManager) handleFileEvent(path string) bool {
	assetType := determineAssetType(path)
	if assetType == AssetTypeNone {
		return false
	}

	am.mutex.Lock()
	defer am.mutex.Unlock()
	path = filepath.Clean(path)
	am.assets[path] = AssetInfo{
		Path:        path,
		Type:        assetType,
		LastChanged: time.Now(),
	}
	return true
}

// Remove the asset from the index if it was deleted
func (am *AssetManager) removeAsset(path string) {
	am.mutex.Lock()
	defer am.mutex.Unlock()

	delete(am.assets, filepath.Clean(path))
}

func determineAssetType(path string) AssetType {
	switch {
	case loaders.IsShaderFile(path):
		return AssetTypeShader
	case loaders.IsModelFile(path):
		return AssetTypeModel
	default:
		return AssetTypeNone
	}
}
