package engine

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"
	"sync"

	"github.com/spaghettifunk/anima/engine/assets"
	"github.com/spaghettifunk/anima/engine/assets/loaders"
	"github.com/spaghettifunk/anima/engine/core"
	"github.com/spaghettifunk/anima/engine/math"
	"github.com/spaghettifunk/anima/engine/renderer/components"
	"github.com/spaghettifunk/anima/engine/renderer/gles"
	"github.com/spaghettifunk/anima/engine/renderer/metadata"
	"github.com/spaghettifunk/anima/engine/systems"
)

type Stage uint8

const (
	// Engine is in an uninitialized state
	EngineStageUninitialized Stage = iota
	// Engine initialization is complete
	EngineStageInitialized
	// Engine is attached to a GL context and drawing
	EngineStageRunning
	// Engine is in the process of shutting down
	EngineStageShuttingDown
)

/**
 * @brief Loads meshes in the background and draws them on the render goroutine.
 */
type Engine struct {
	config       *ApplicationConfig
	currentStage Stage
	clock        *core.Clock

	jobs         *systems.JobSystem
	assetManager *assets.AssetManager
	loader       *loaders.URLLoader
	camera       *components.Camera

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu        sync.Mutex
	thread    *gles.Thread
	pending   []*gles.Geometry
	resources map[string]*metadata.Resource

	// owned by the render goroutine
	geometries []*gles.Geometry
	framed     bool
}

func New(config *ApplicationConfig) (*Engine, error) {
	if config == nil {
		config = DefaultApplicationConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	core.SetLogLevel(core.ParseLogLevel(config.LogLevel))

	jobs, err := systems.NewJobSystem(config.Loader.Workers, config.Loader.Workers*2)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Engine{
		config:       config,
		currentStage: EngineStageUninitialized,
		clock:        core.NewClock(),
		jobs:         jobs,
		assetManager: assets.NewAssetManager(),
		loader:       loaders.NewURLLoader(config.Loader.HTTPTimeout.Duration),
		camera:       components.NewCamera(),
		resources:    make(map[string]*metadata.Resource),
		ctx:          ctx,
		cancel:       cancel,
	}, nil
}

// Initialize indexes the asset directory and starts following its changes.
// A missing asset directory is not an error.
func (e *Engine) Initialize() error {
	if dir := e.config.Assets.Dir; dir != "" {
		if _, err := os.Stat(dir); err == nil {
			if err := e.assetManager.Initialize(dir, e.config.Assets.Watch); err != nil {
				return err
			}
			if e.config.Assets.Watch {
				e.wg.Add(1)
				go e.watchAssets()
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return err
		} else {
			core.LogWarn("asset directory %s does not exist", dir)
		}
	}
	e.currentStage = EngineStageInitialized
	return nil
}

func (e *Engine) Config() *ApplicationConfig { return e.config }
func (e *Engine) Camera() *components.Camera { return e.camera }
func (e *Engine) Stage() Stage               { return e.currentStage }

// ModelLocations lists the configured models followed by the indexed mesh files.
func (e *Engine) ModelLocations() []string {
	locations := slices.Clone(e.config.Loader.Models)
	for _, a := range e.assetManager.Assets(metadata.ResourceTypeMesh) {
		if !slices.Contains(locations, a.Path) {
			locations = append(locations, a.Path)
		}
	}
	return locations
}

// LoadModels loads every model location and queues the meshes for drawing.
// Indexed files go through the asset manager, the rest are fetched
// concurrently by the URL loader. Meshes that fail to load are skipped.
// It returns the number loaded.
func (e *Engine) LoadModels(ctx context.Context) int {
	var local, remote []string
	for _, location := range e.ModelLocations() {
		if _, ok := e.assetManager.Lookup(location); ok {
			local = append(local, location)
		} else {
			remote = append(remote, location)
		}
	}

	fetched := e.loader.LoadAll(ctx, e.jobs, remote)
	for _, g := range fetched {
		e.AddGeometry(g)
	}
	loaded := len(fetched)
	for _, path := range local {
		if ctx.Err() != nil {
			break
		}
		g, err := e.loadAsset(path)
		if err != nil {
			core.LogWarn("skipping mesh %s: %s", path, err)
			continue
		}
		e.AddGeometry(g)
		loaded++
	}
	core.LogInfo("loaded %d meshes", loaded)
	return loaded
}

// loadAsset loads an indexed mesh file through the asset manager and keeps
// the resource until the mesh is replaced or removed.
func (e *Engine) loadAsset(path string) (*gles.Geometry, error) {
	res, err := e.assetManager.LoadAsset(path, map[string]string{"name": loaders.MeshName(path)})
	if err != nil {
		return nil, err
	}
	mesh, ok := res.Data.(*loaders.VAOMesh)
	if !ok {
		_ = e.assetManager.UnloadAsset(res)
		return nil, fmt.Errorf("asset %s holds %T, not a mesh", path, res.Data)
	}
	g, err := mesh.Geometry(res.Name)
	if err != nil {
		_ = e.assetManager.UnloadAsset(res)
		return nil, err
	}

	e.mu.Lock()
	old := e.resources[res.Name]
	e.resources[res.Name] = res
	e.mu.Unlock()
	if old != nil {
		e.unloadResource(old)
	}
	return g, nil
}

// Resource returns the loaded asset backing the mesh called name, if any.
func (e *Engine) Resource(name string) (*metadata.Resource, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	res, ok := e.resources[name]
	return res, ok
}

func (e *Engine) releaseResource(name string) {
	e.mu.Lock()
	res := e.resources[name]
	delete(e.resources, name)
	e.mu.Unlock()
	if res != nil {
		e.unloadResource(res)
	}
}

func (e *Engine) unloadResource(res *metadata.Resource) {
	if err := e.assetManager.UnloadAsset(res); err != nil {
		core.LogWarn("unloading %s: %s", res.Name, err)
	}
}

// AddGeometry hands g to the render goroutine. A geometry with the same name replaces the old one.
func (e *Engine) AddGeometry(g *gles.Geometry) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.thread == nil {
		e.pending = append(e.pending, g)
		return
	}
	// queued under mu so StopRendering flushes it before handing meshes back to pending
	e.thread.RunAsync(func(c gles.Context) error {
		e.addGeometry(c, g)
		return nil
	})
}

func (e *Engine) addGeometry(c gles.Context, g *gles.Geometry) {
	for i, old := range e.geometries {
		if old.Name == g.Name {
			old.Dispose(c)
			e.geometries[i] = g
			e.framed = false
			return
		}
	}
	e.geometries = append(e.geometries, g)
	e.framed = false
}

func (e *Engine) removeGeometry(c gles.Context, name string) {
	e.geometries = slices.DeleteFunc(e.geometries, func(g *gles.Geometry) bool {
		if g.Name == name {
			g.Dispose(c)
			return true
		}
		return false
	})
}

// watchAssets reloads meshes whose files change on disk.
func (e *Engine) watchAssets() {
	defer e.wg.Done()
	for {
		select {
		case <-e.ctx.Done():
			return
		case ev := <-e.assetManager.Events():
			if ev.Asset.Type != metadata.ResourceTypeMesh {
				continue
			}
			if ev.Removed {
				name := loaders.MeshName(ev.Asset.Path)
				e.RemoveGeometry(name)
				e.releaseResource(name)
				continue
			}
			g, err := e.loadAsset(ev.Asset.Path)
			if err != nil {
				core.LogWarn("reloading mesh %s: %s", ev.Asset.Path, err)
				continue
			}
			core.LogInfo("reloaded mesh %s", ev.Asset.Path)
			e.AddGeometry(g)
		}
	}
}

// RemoveGeometry drops the geometry called name and frees its GPU resources.
func (e *Engine) RemoveGeometry(name string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.thread == nil {
		e.pending = slices.DeleteFunc(e.pending, func(g *gles.Geometry) bool { return g.Name == name })
		return
	}
	e.thread.RunAsync(func(c gles.Context) error {
		e.removeGeometry(c, name)
		return nil
	})
}

// StartRendering makes the calling goroutine the render goroutine for glctx.
func (e *Engine) StartRendering(glctx gles.Context) *gles.Thread {
	thread := gles.NewThread(glctx, e.config.Render.QueueSize)
	thread.Attach()

	e.mu.Lock()
	e.thread = thread
	pending := e.pending
	e.pending = nil
	e.mu.Unlock()

	for _, g := range pending {
		e.addGeometry(thread.Context(), g)
	}
	e.clock.Start()
	e.currentStage = EngineStageRunning
	core.LogInfo("rendering started with %d meshes", len(e.geometries))
	return thread
}

// Frame runs queued render work and draws every geometry. It must be called
// from the render goroutine with the shader program already in use.
func (e *Engine) Frame() (int, error) {
	e.mu.Lock()
	thread := e.thread
	e.mu.Unlock()
	if thread == nil {
		return 0, fmt.Errorf("frame: %w", gles.ErrThreadClosed)
	}

	thread.Flush()
	e.clock.Update()
	if !e.framed {
		e.frameCamera()
	}
	c := thread.Context()
	for _, g := range e.geometries {
		g.Render(c)
	}
	return len(e.geometries), nil
}

// frameCamera points the camera at the union of all bounding boxes.
func (e *Engine) frameCamera() {
	e.framed = true
	box := math.EmptyExtents3D()
	for _, g := range e.geometries {
		b, err := g.BoundingBox()
		if err != nil || b.IsEmpty() {
			continue
		}
		box.Expand(b.Min)
		box.Expand(b.Max)
	}
	if box.IsEmpty() {
		return
	}
	e.camera.Frame(math.Sphere{Center: box.Center(), Radius: box.Size().Len() / 2})
}

// StopRendering frees every GPU resource and releases the render goroutine.
// The meshes are kept and drawn again after the next StartRendering.
// It must be called from the render goroutine.
func (e *Engine) StopRendering() {
	e.mu.Lock()
	thread := e.thread
	e.thread = nil
	e.mu.Unlock()
	if thread == nil {
		return
	}

	thread.Close()
	thread.Flush()
	c := thread.Context()
	for _, g := range e.geometries {
		g.Dispose(c)
	}
	thread.Detach()

	e.mu.Lock()
	e.pending = append(e.pending, e.geometries...)
	e.mu.Unlock()
	e.geometries = nil
	e.framed = false
	e.clock.Stop()
	e.currentStage = EngineStageInitialized
}

func (e *Engine) Shutdown() error {
	e.currentStage = EngineStageShuttingDown
	e.cancel()
	e.wg.Wait()

	e.mu.Lock()
	names := make([]string, 0, len(e.resources))
	for name := range e.resources {
		names = append(names, name)
	}
	e.mu.Unlock()
	for _, name := range names {
		e.releaseResource(name)
	}

	if err := e.assetManager.Shutdown(); err != nil {
		return err
	}
	return e.jobs.Shutdown()
}
