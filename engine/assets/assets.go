package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spaghettifunk/anima/engine/assets/loaders"
	"github.com/spaghettifunk/anima/engine/core"
	"github.com/spaghettifunk/anima/engine/renderer/metadata"
)

var ErrAssetNotFound = errors.New("asset not found")

type AssetInfo struct {
	Path     string
	Type     metadata.ResourceType
	Modified time.Time
}

// AssetEvent reports a change to the index.
type AssetEvent struct {
	Asset   AssetInfo
	Removed bool
}

/**
 * @brief Indexes loadable files under a directory and keeps the index in
 * sync with the file system when watching.
 */
type AssetManager struct {
	dir     string
	assets  map[string]AssetInfo
	loaders map[metadata.ResourceType]Loader

	mutex sync.RWMutex

	done      chan struct{}
	closeOnce sync.Once
	fsnotify  *fsnotify.Watcher
	events    chan AssetEvent
}

func NewAssetManager() *AssetManager {
	am := &AssetManager{
		assets:  make(map[string]AssetInfo),
		loaders: make(map[metadata.ResourceType]Loader),
		events:  make(chan AssetEvent, 64),
		done:    make(chan struct{}),
	}
	am.registerLoader(metadata.ResourceTypeMesh, &loaders.VAOLoader{})
	return am
}

// Initialize indexes assetsDir and, when watch is set, follows later changes.
func (am *AssetManager) Initialize(assetsDir string, watch bool) error {
	am.dir = assetsDir
	if watch {
		w, err := fsnotify.NewWatcher()
		if err != nil {
			return err
		}
		am.fsnotify = w
	}
	if err := am.watchRecursive(assetsDir, false); err != nil {
		return err
	}
	if am.fsnotify != nil {
		go am.start()
	}
	core.LogInfo("indexed %d assets in %s", am.Len(), assetsDir)
	return nil
}

// Events delivers index changes. Events are dropped when nobody reads them.
func (am *AssetManager) Events() <-chan AssetEvent {
	return am.events
}

// Register loaders for each asset type
func (am *AssetManager) registerLoader(assetType metadata.ResourceType, loader Loader) {
	am.mutex.Lock()
	defer am.mutex.Unlock()
	am.loaders[assetType] = loader
}

func (am *AssetManager) Len() int {
	am.mutex.RLock()
	defer am.mutex.RUnlock()
	return len(am.assets)
}

func (am *AssetManager) Lookup(path string) (AssetInfo, bool) {
	am.mutex.RLock()
	defer am.mutex.RUnlock()
	a, ok := am.assets[filepath.Clean(path)]
	return a, ok
}

// Assets lists the indexed assets of one type sorted by path.
func (am *AssetManager) Assets(assetType metadata.ResourceType) []AssetInfo {
	am.mutex.RLock()
	defer am.mutex.RUnlock()
	var out []AssetInfo
	for _, a := range am.assets {
		if a.Type == assetType {
			out = append(out, a)
		}
	}
	slices.SortFunc(out, func(a, b AssetInfo) int { return strings.Compare(a.Path, b.Path) })
	return out
}

// LoadAsset loads an indexed file with the loader registered for its type.
func (am *AssetManager) LoadAsset(path string, params interface{}) (*metadata.Resource, error) {
	asset, exists := am.Lookup(path)
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrAssetNotFound, path)
	}
	am.mutex.RLock()
	loader, loaderExists := am.loaders[asset.Type]
	am.mutex.RUnlock()
	if !loaderExists {
		return nil, fmt.Errorf("no loader registered for asset type: %s", asset.Type)
	}
	return loader.Load(asset.Path, asset.Type, params)
}

func (am *AssetManager) UnloadAsset(res *metadata.Resource) error {
	am.mutex.RLock()
	loader, ok := am.loaders[res.Type]
	am.mutex.RUnlock()
	if !ok {
		return fmt.Errorf("no loader registered for asset type: %s", res.Type)
	}
	return loader.Unload(res)
}

// Shutdown stops watching. It is safe to call more than once.
func (am *AssetManager) Shutdown() error {
	var err error
	am.closeOnce.Do(func() {
		close(am.done)
		if am.fsnotify != nil {
			err = am.fsnotify.Close()
		}
	})
	return err
}

func (am *AssetManager) start() {
	for {
		select {
		case e, ok := <-am.fsnotify.Events:
			if !ok {
				return
			}
			am.handleWatchEvent(e)

		case err, ok := <-am.fsnotify.Errors:
			if !ok {
				return
			}
			core.LogError("asset watcher: %s", err)

		case <-am.done:
			return
		}
	}
}

func (am *AssetManager) handleWatchEvent(e fsnotify.Event) {
	if e.Op&fsnotify.Create != 0 {
		if s, err := os.Stat(e.Name); err == nil && s.IsDir() {
			if err := am.watchRecursive(e.Name, true); err != nil {
				core.LogWarn("asset watcher: %s", err)
			}
			return
		}
	}
	if e.Op&(fsnotify.Create|fsnotify.Write) != 0 {
		am.handleFileEvent(e.Name, true)
	}
	// a removed directory cannot be stat'ed, so every removal is tried as both
	if e.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
		am.removeAsset(e.Name)
		_ = am.fsnotify.Remove(e.Name)
	}
}

// watchRecursive indexes every file under path and watches its directories.
func (am *AssetManager) watchRecursive(path string, notify bool) error {
	return filepath.WalkDir(path, func(walkPath string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if am.fsnotify != nil {
				return am.fsnotify.Add(walkPath)
			}
			return nil
		}
		am.handleFileEvent(walkPath, notify)
		return nil
	})
}

// Handle the creation or modification of a file
func (am *AssetManager) handleFileEvent(path string, notify bool) {
	path = filepath.Clean(path)
	assetType := determineAssetType(path)
	if assetType == metadata.ResourceTypeNone {
		return
	}
	info := AssetInfo{Path: path, Type: assetType, Modified: time.Now()}
	if s, err := os.Stat(path); err == nil {
		info.Modified = s.ModTime()
	}

	am.mutex.Lock()
	am.assets[path] = info
	am.mutex.Unlock()

	core.LogDebug("indexed %s asset %s", assetType, path)
	if notify {
		am.notify(AssetEvent{Asset: info})
	}
}

// Remove the asset from the index if it was deleted
func (am *AssetManager) removeAsset(path string) {
	path = filepath.Clean(path)
	am.mutex.Lock()
	info, ok := am.assets[path]
	delete(am.assets, path)
	am.mutex.Unlock()

	if ok {
		core.LogDebug("removed asset %s", path)
		am.notify(AssetEvent{Asset: info, Removed: true})
	}
}

func (am *AssetManager) notify(e AssetEvent) {
	select {
	case am.events <- e:
	default:
	}
}

func determineAssetType(path string) metadata.ResourceType {
	switch {
	case strings.HasSuffix(path, ".vao"), strings.HasSuffix(path, ".vao.gz"):
		return metadata.ResourceTypeMesh
	default:
		return metadata.ResourceTypeNone
	}
}
