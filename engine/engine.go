package engine

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/spaghettifunk/anima-scene/engine/assets"
	"github.com/spaghettifunk/anima-scene/engine/containers"
	"github.com/spaghettifunk/anima-scene/engine/core"
	"github.com/spaghettifunk/anima-scene/engine/renderer/metadata"
	"github.com/spaghettifunk/anima-scene/engine/systems"
)

type Stage uint8

const (
	// Engine is in an uninitialized state
	EngineStageUninitialized Stage = iota
	// Engine is currently initializing
	EngineStageInitializing
	// Engine initialization is complete
	EngineStageInitialized
	// Engine is currently running
	EngineStageRunning
	// Engine is in the process of shutting down
	EngineStageShuttingDown
)

// reloadDebounce groups the burst of write events editors produce on save.
const reloadDebounce = 150 * time.Millisecond

// maximum number of changed paths remembered between two reloads
const pendingChangesCapacity = 64

type Engine struct {
	config        *ApplicationConfig
	events        *core.EventSystem
	assetManager  *assets.AssetManager
	sceneSystem   *systems.SceneSystem
	textureSystem *systems.TextureSystem
	clock         *core.Clock

	mu           sync.RWMutex
	currentStage Stage
	scene        *metadata.Scene
	// every file the current scene was built from
	sceneFiles map[string]struct{}
	pending    *containers.RingQueue[string]

	changed  chan struct{}
	quit     chan struct{}
	quitOnce sync.Once
}

func New(config *ApplicationConfig) (*Engine, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	events := core.NewEventSystem()
	am, err := assets.NewAssetManager(events)
	if err != nil {
		core.LogError(err.Error())
		return nil, err
	}

	materials := systems.NewMaterialSystem(config.ResolvedDefaultMaterial())
	return &Engine{
		config:        config,
		events:        events,
		assetManager:  am,
		sceneSystem:   systems.NewSceneSystem(materials),
		textureSystem: systems.NewTextureSystem(am, config.FlipTextures),
		clock:         core.NewClock(),
		currentStage:  EngineStageUninitialized,
		sceneFiles:    make(map[string]struct{}),
		pending:       containers.NewRingQueue[string](pendingChangesCapacity),
		changed:       make(chan struct{}, 1),
		quit:          make(chan struct{}),
	}, nil
}

// Events exposes the engine's event system so callers can listen for
// EventCodeSceneLoaded and friends.
func (e *Engine) Events() *core.EventSystem {
	return e.events
}

func (e *Engine) Initialize() error {
	e.setStage(EngineStageInitializing)

	level, err := core.ParseLogLevel(e.config.LogLevel)
	if err != nil {
		return err
	}
	core.SetLogLevel(level)
	if e.config.Name != "" {
		core.SetLogPrefix(e.config.Name + " 🌲 ")
	}

	// register some events
	e.events.Register(core.EventCodeApplicationQuit, e, e.onEvent)
	e.events.Register(core.EventCodeAssetChanged, e, e.onAssetEvent)
	e.events.Register(core.EventCodeAssetRemoved, e, e.onAssetEvent)

	if err := e.assetManager.Initialize(e.config.AssetsDir); err != nil {
		return err
	}

	if _, err := e.LoadScene(); err != nil {
		return err
	}

	e.setStage(EngineStageInitialized)
	core.LogInfo("%s initialized.", e.config.Name)
	return nil
}

// LoadScene (re)loads the configured scene and makes it current.
func (e *Engine) LoadScene() (*metadata.Scene, error) {
	path, err := filepath.Abs(e.config.ScenePath())
	if err != nil {
		return nil, err
	}

	e.clock.Start()
	res, err := e.assetManager.LoadAsset(path, metadata.ResourceTypeModel, &metadata.ModelResourceParams{})
	if err != nil {
		return nil, fmt.Errorf("load scene: %w", err)
	}
	model, ok := res.Data.(*metadata.ModelResourceData)
	if !ok {
		return nil, fmt.Errorf("load scene: unexpected resource data %T", res.Data)
	}

	scene := e.sceneSystem.Assemble(path, filepath.Dir(path), model)
	if e.config.LoadTextures {
		e.textureSystem.Bind(scene)
	}
	elapsed := e.clock.Stop()

	files := map[string]struct{}{path: {}}
	for _, p := range scene.MaterialLibPaths {
		files[p] = struct{}{}
	}
	for _, p := range scene.TexturePaths() {
		files[p] = struct{}{}
	}

	e.mu.Lock()
	e.scene = scene
	e.sceneFiles = files
	e.mu.Unlock()

	core.LogInfo("Scene '%s' loaded in %s: %d parts, %d material libraries.", filepath.Base(path), elapsed, len(scene.Parts), len(scene.MaterialLibPaths))
	for _, part := range scene.Parts {
		core.LogDebug("part %s object='%s' material='%s' vertices=%d", part.ID, part.Object, part.MaterialName, part.VertexCount)
	}

	var ctx core.EventContext
	ctx.Data.C[0] = path
	ctx.Data.U64[0] = uint64(len(scene.Parts))
	e.events.Fire(core.EventCodeSceneLoaded, e, ctx)

	return scene, nil
}

// Scene returns the current scene.
func (e *Engine) Scene() (*metadata.Scene, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.scene == nil {
		return nil, core.ErrSceneNotLoaded
	}
	return e.scene, nil
}

// Run blocks until Shutdown, reloading the scene whenever one of its files
// changes. Without watching enabled it returns immediately.
func (e *Engine) Run() error {
	if !e.config.Watch {
		return nil
	}
	e.setStage(EngineStageRunning)
	core.LogInfo("Watching scene files for changes.")

	for {
		select {
		case <-e.quit:
			return nil
		case <-e.changed:
		}

		// wait for the burst of events to settle
		select {
		case <-e.quit:
			return nil
		case <-time.After(reloadDebounce):
		}

		for _, path := range e.drainPending() {
			if e.textureSystem.Invalidate(path) {
				core.LogDebug("texture %s invalidated", path)
			}
		}
		if _, err := e.LoadScene(); err != nil {
			// keep the previous scene, the file may be mid-edit
			core.LogError("reload failed: %s", err)
		}
	}
}

func (e *Engine) Shutdown() error {
	e.setStage(EngineStageShuttingDown)
	e.quitOnce.Do(func() { close(e.quit) })
	e.events.Shutdown()
	if err := e.assetManager.Shutdown(); err != nil && err != core.ErrWatcherClosed {
		return err
	}
	return nil
}

func (e *Engine) Stage() Stage {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.currentStage
}

func (e *Engine) setStage(s Stage) {
	e.mu.Lock()
	e.currentStage = s
	e.mu.Unlock()
}

func (e *Engine) drainPending() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	var paths []string
	for !e.pending.IsEmpty() {
		p, _ := e.pending.Dequeue()
		paths = append(paths, p)
	}
	return paths
}

func (e *Engine) onEvent(code core.SystemEventCode, sender interface{}, listener interface{}, data core.EventContext) bool {
	switch code {
	case core.EventCodeApplicationQuit:
		core.LogInfo("EVENT_CODE_APPLICATION_QUIT received, shutting down.")
		e.quitOnce.Do(func() { close(e.quit) })
		return true
	}
	return false
}

// onAssetEvent queues a reload when a file the scene depends on changes.
// It never marks the event as handled.
func (e *Engine) onAssetEvent(code core.SystemEventCode, sender interface{}, listener interface{}, data core.EventContext) bool {
	path := data.Data.C[0]

	e.mu.Lock()
	_, relevant := e.sceneFiles[path]
	if relevant {
		// a full queue still triggers a reload, the path is only needed
		// for texture invalidation
		if err := e.pending.Enqueue(path); err != nil {
			core.LogWarn("pending change queue full, dropping %s", path)
		}
	}
	e.mu.Unlock()

	if !relevant {
		return false
	}
	select {
	case e.changed <- struct{}{}:
	default:
	}
	// other listeners may track the same files
	return false
}
