package loaders

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spaghettifunk/anima/engine/renderer/metadata"
)

// VAOLoader loads .vao and .vao.gz files as mesh resources holding a *VAOMesh.
type VAOLoader struct{}

func (vl *VAOLoader) Load(path string, assetType metadata.ResourceType, params interface{}) (*metadata.Resource, error) {
	if assetType != metadata.ResourceTypeMesh {
		return nil, fmt.Errorf("vao loader cannot load %s resources", assetType)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	mesh, err := ParseVAO(context.Background(), bufio.NewReaderSize(f, scratchSize))
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	name, err := resourceName(path, params)
	if err != nil {
		return nil, err
	}
	return &metadata.Resource{
		Type:     metadata.ResourceTypeMesh,
		Name:     name,
		FullPath: path,
		DataSize: uint64(mesh.ByteSize()),
		Data:     mesh,
	}, nil
}

func (vl *VAOLoader) Unload(res *metadata.Resource) error {
	res.Data = nil
	return nil
}

// resourceName reads "name" from params, falling back to the file name.
func resourceName(path string, params interface{}) (string, error) {
	switch p := params.(type) {
	case nil:
		return filepath.Base(path), nil
	case map[string]string:
		if name, ok := p["name"]; ok {
			return name, nil
		}
		return filepath.Base(path), nil
	default:
		return "", fmt.Errorf("failed to cast params in loader: %T", params)
	}
}
