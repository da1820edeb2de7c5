package loaders

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/spaghettifunk/anima/engine/core"
	"github.com/spaghettifunk/anima/engine/renderer/gles"
	"github.com/spaghettifunk/anima/engine/systems"
)

/**
 * @brief Loads .vao meshes from http(s) URLs or local paths.
 */
type URLLoader struct {
	client *http.Client
}

// NewURLLoader creates a loader whose HTTP requests time out after timeout.
// Zero means no timeout.
func NewURLLoader(timeout time.Duration) *URLLoader {
	return &URLLoader{client: &http.Client{Timeout: timeout}}
}

func (l *URLLoader) open(ctx context.Context, location string) (io.ReadCloser, error) {
	u, err := url.Parse(location)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return os.Open(strings.TrimPrefix(location, "file://"))
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, err
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("GET %s: %s", location, resp.Status)
	}
	return resp.Body, nil
}

// Load fetches and parses one mesh.
func (l *URLLoader) Load(ctx context.Context, location string) (*gles.Geometry, error) {
	body, err := l.open(ctx, location)
	if err != nil {
		return nil, err
	}
	defer body.Close()
	return LoadVAO(ctx, MeshName(location), body)
}

// TryLoad is Load for callers that treat a failed mesh as absent. Errors are logged.
func (l *URLLoader) TryLoad(ctx context.Context, location string) *gles.Geometry {
	g, err := l.Load(ctx, location)
	if err != nil {
		core.LogWarn("skipping mesh %s: %s", location, err)
		return nil
	}
	return g
}

// LoadAll loads every location on the job system and returns the meshes that
// loaded, in input order. Failed locations are logged and left out.
func (l *URLLoader) LoadAll(ctx context.Context, jobs *systems.JobSystem, locations []string) []*gles.Geometry {
	results := make([]*gles.Geometry, len(locations))
	var wg sync.WaitGroup
	for i, location := range locations {
		wg.Add(1)
		err := jobs.Submit(systems.JobTask{
			OnStart: func() (interface{}, error) {
				return l.TryLoad(ctx, location), nil
			},
			OnComplete: func(r interface{}) {
				results[i] = r.(*gles.Geometry)
			},
			OnCompletionCallback: wg.Done,
		})
		if err != nil {
			core.LogWarn("skipping mesh %s: %s", location, err)
			wg.Done()
		}
	}
	wg.Wait()

	loaded := results[:0]
	for _, g := range results {
		if g != nil {
			loaded = append(loaded, g)
		}
	}
	return loaded
}

// MeshName strips directories, query and the .vao/.gz extensions.
func MeshName(location string) string {
	if u, err := url.Parse(location); err == nil && u.Path != "" {
		location = u.Path
	}
	name := path.Base(location)
	name = strings.TrimSuffix(name, ".gz")
	return strings.TrimSuffix(name, ".vao")
}
