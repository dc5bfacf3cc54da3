package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/exp/slices"

	"github.com/spaghettifunk/anima-scene/engine/assets/loaders"
	"github.com/spaghettifunk/anima-scene/engine/core"
	"github.com/spaghettifunk/anima-scene/engine/renderer/metadata"
)

type AssetInfo struct {
	Path       string
	Type       metadata.ResourceType
	LastLoaded time.Time
}

// AssetManager indexes the asset directory, dispatches loads to the loader
// registered for each resource type and reports file changes through the
// event system.
type AssetManager struct {
	assets  map[string]AssetInfo
	loaders map[metadata.ResourceType]Loader
	events  *core.EventSystem

	mutex sync.RWMutex

	done     chan struct{}
	stopped  chan struct{}
	fsnotify *fsnotify.Watcher
	isClosed bool
	started  bool
}

func NewAssetManager(events *core.EventSystem) (*AssetManager, error) {
	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if events == nil {
		events = core.NewEventSystem()
	}

	return &AssetManager{
		assets:   make(map[string]AssetInfo),
		loaders:  make(map[metadata.ResourceType]Loader),
		events:   events,
		fsnotify: fsWatch,
		done:     make(chan struct{}),
		stopped:  make(chan struct{}),
	}, nil
}

// Initialize registers the built-in loaders, indexes assetsDir and starts
// watching it (recursively) for changes.
func (am *AssetManager) Initialize(assetsDir string) error {
	// Register loaders
	am.RegisterLoader(metadata.ResourceTypeModel, &loaders.ModelLoader{})
	am.RegisterLoader(metadata.ResourceTypeMaterial, &loaders.MaterialLoader{})
	am.RegisterLoader(metadata.ResourceTypeTexture, &loaders.TextureLoader{})

	dir, err := filepath.Abs(assetsDir)
	if err != nil {
		return err
	}
	if err := am.addRecursive(dir); err != nil {
		return err
	}

	am.mutex.Lock()
	am.started = true
	am.mutex.Unlock()
	go am.start()
	core.LogInfo("Asset manager watching '%s' (%d assets indexed).", dir, len(am.Assets()))
	return nil
}

// Shutdown stops the watcher goroutine and releases the watcher.
func (am *AssetManager) Shutdown() error {
	am.mutex.Lock()
	if am.isClosed {
		am.mutex.Unlock()
		return core.ErrWatcherClosed
	}
	am.isClosed = true
	started := am.started
	am.mutex.Unlock()

	if !started {
		return am.fsnotify.Close()
	}
	close(am.done)
	<-am.stopped
	return nil
}

// AddRecursive starts watching the named directory and all sub-directories.
func (am *AssetManager) addRecursive(name string) error {
	if am.closed() {
		return core.ErrWatcherClosed
	}
	return am.watchRecursive(name, false)
}

// RemoveRecursive stops watching the named directory and all sub-directories.
func (am *AssetManager) removeRecursive(name string) error {
	return am.watchRecursive(name, true)
}

// RegisterLoader sets the loader for an asset type, replacing any previous one.
func (am *AssetManager) RegisterLoader(assetType metadata.ResourceType, loader Loader) {
	am.mutex.Lock()
	defer am.mutex.Unlock()
	am.loaders[assetType] = loader
}

// LoadAsset loads path with the loader registered for resourceType. When
// resourceType is ResourceTypeNone it is derived from the file extension.
func (am *AssetManager) LoadAsset(path string, resourceType metadata.ResourceType, params interface{}) (*metadata.Resource, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	if resourceType == metadata.ResourceTypeNone {
		resourceType = determineAssetType(abs)
		if resourceType == metadata.ResourceTypeNone {
			return nil, fmt.Errorf("%w: %s", core.ErrUnknownResourceType, path)
		}
	}

	am.mutex.Lock()
	asset, exists := am.assets[abs]
	if !exists {
		if _, err := os.Stat(abs); err != nil {
			am.mutex.Unlock()
			return nil, fmt.Errorf("%w: %s", core.ErrAssetNotFound, path)
		}
		asset = AssetInfo{Path: abs, Type: resourceType}
	}
	// Update the loaded time
	asset.LastLoaded = time.Now()
	am.assets[abs] = asset
	loader, loaderExists := am.loaders[resourceType]
	am.mutex.Unlock()

	if !loaderExists {
		return nil, fmt.Errorf("%w: %s", core.ErrNoLoader, resourceType)
	}

	return loader.Load(abs, resourceType, params)
}

func (am *AssetManager) UnloadAsset(asset *metadata.Resource) error {
	if asset == nil {
		return nil
	}
	am.mutex.RLock()
	loader, ok := am.loaders[determineAssetType(asset.FullPath)]
	am.mutex.RUnlock()
	if !ok {
		return nil
	}
	return loader.Unload(asset)
}

// Assets lists the indexed assets sorted by path.
func (am *AssetManager) Assets() []AssetInfo {
	am.mutex.RLock()
	defer am.mutex.RUnlock()

	keys := make([]string, 0, len(am.assets))
	for k := range am.assets {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	out := make([]AssetInfo, 0, len(keys))
	for _, k := range keys {
		out = append(out, am.assets[k])
	}
	return out
}

func (am *AssetManager) closed() bool {
	am.mutex.RLock()
	defer am.mutex.RUnlock()
	return am.isClosed
}

func (am *AssetManager) start() {
	defer close(am.stopped)
	for {
		select {

		case e, ok := <-am.fsnotify.Events:
			if !ok {
				return
			}
			am.handleWatchEvent(e)

		case e, ok := <-am.fsnotify.Errors:
			if !ok {
				return
			}
			core.LogError("asset watcher: %s", e)

		case <-am.done:
			am.fsnotify.Close()
			return
		}
	}
}

func (am *AssetManager) handleWatchEvent(e fsnotify.Event) {
	s, err := os.Stat(e.Name)
	if err == nil && s.IsDir() {
		if e.Has(fsnotify.Create) {
			if err := am.watchRecursive(e.Name, false); err != nil {
				core.LogError("asset watcher: watch %s: %s", e.Name, err)
			}
		}
		return
	}

	var ctx core.EventContext
	ctx.Data.C[0] = e.Name

	// Handle create or modify events
	if e.Has(fsnotify.Create) || e.Has(fsnotify.Write) {
		if am.handleFileEvent(e.Name) {
			am.events.Fire(core.EventCodeAssetChanged, am, ctx)
		}
	}
	// Can't stat a deleted path, so treat it as a possible directory too
	// and drop any watch on it.
	if e.Has(fsnotify.Remove) || e.Has(fsnotify.Rename) {
		if am.removeAsset(e.Name) {
			am.events.Fire(core.EventCodeAssetRemoved, am, ctx)
		}
		_ = am.fsnotify.Remove(e.Name)
	}
}

// watchRecursive adds (or removes) all directories under the given one to
// the watch list and indexes the files found.
func (am *AssetManager) watchRecursive(path string, unWatch bool) error {
	return filepath.WalkDir(path, func(walkPath string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") && walkPath != path {
				return filepath.SkipDir
			}
			if unWatch {
				return am.fsnotify.Remove(walkPath)
			}
			return am.fsnotify.Add(walkPath)
		}
		if unWatch {
			am.removeAsset(walkPath)
		} else {
			am.handleFileEvent(walkPath)
		}
		return nil
	})
}

// Handle the creation or modification of a file. Reports whether the file
// is a known asset type.
func (am *AssetManager) handleFileEvent(path string) bool {
	assetType := determineAssetType(path)
	if assetType == metadata.ResourceTypeNone {
		return false
	}

	am.mutex.Lock()
	defer am.mutex.Unlock()
	info := am.assets[path]
	info.Path = path
	info.Type = assetType
	am.assets[path] = info
	return true
}

// Remove the asset from the index if it was deleted
func (am *AssetManager) removeAsset(path string) bool {
	am.mutex.Lock()
	defer am.mutex.Unlock()

	_, ok := am.assets[path]
	delete(am.assets, path)
	return ok
}

func determineAssetType(path string) metadata.ResourceType {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".obj":
		return metadata.ResourceTypeModel
	case ".mtl":
		return metadata.ResourceTypeMaterial
	case ".png", ".jpg", ".jpeg", ".bmp", ".tga", ".tif", ".tiff", ".webp":
		return metadata.ResourceTypeTexture
	default:
		return metadata.ResourceTypeNone
	}
}

var errNotWatching = errors.New("path is not watched")

// Unwatch stops watching a directory tree and drops its assets from the index.
func (am *AssetManager) Unwatch(dir string) error {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return err
	}
	if !slices.Contains(am.fsnotify.WatchList(), abs) {
		return fmt.Errorf("%w: %s", errNotWatching, abs)
	}
	return am.removeRecursive(abs)
}
