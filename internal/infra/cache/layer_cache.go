// Where: internal/infra/cache/layer_cache.go
// What: On-disk cache for downloaded layer artifacts.
// Why: Layer names are content-stable, so one download serves every template
// that references the same layer version.
package cache

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/samscope/samscope/internal/domain/provider"
)

// LayerCache stores layer artifacts under a root directory, one subdirectory
// per layer name. Name already encodes the version and an ARN digest, so two
// layers collide only when they are the same layer version.
type LayerCache struct {
	root string
}

func NewLayerCache(root string) (*LayerCache, error) {
	if root == "" {
		return nil, fmt.Errorf("cache root is required")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create cache root %s: %w", root, err)
	}
	return &LayerCache{root: root}, nil
}

// PathFor returns where the layer's artifact lives, whether or not it exists.
func (c *LayerCache) PathFor(layer *provider.LayerVersion) string {
	return filepath.Join(c.root, layer.Name(), "layer.zip")
}

// Has reports whether the layer artifact is already cached.
func (c *LayerCache) Has(layer *provider.LayerVersion) bool {
	info, err := os.Stat(c.PathFor(layer))
	return err == nil && !info.IsDir()
}

// Store records a downloaded artifact and points the layer at it.
func (c *LayerCache) Store(layer *provider.LayerVersion, artifact string) error {
	dest := c.PathFor(layer)
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("create cache entry: %w", err)
	}
	if artifact != dest {
		if err := os.Rename(artifact, dest); err != nil {
			return fmt.Errorf("store %s: %w", layer.Name(), err)
		}
	}
	layer.SetCodeURI(filepath.Dir(dest) + string(filepath.Separator))
	return nil
}
