package assets

import "github.com/spaghettifunk/anima/engine/renderer/metadata"

// Loader turns an indexed file into a resource. The params are loader specific.
type Loader interface {
	Load(path string, assetType metadata.ResourceType, params interface{}) (*metadata.Resource, error)
	Unload(*metadata.Resource) error
}
