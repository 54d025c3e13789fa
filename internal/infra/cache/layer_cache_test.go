// Where: internal/infra/cache/layer_cache_test.go
// What: Tests for the layer artifact cache.
package cache

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/samscope/samscope/internal/domain/provider"
)

func publishedLayer(t *testing.T) *provider.LayerVersion {
	t.Helper()
	layer, err := provider.NewLayerVersion("arn:aws:lambda:us-east-1:123456789012:layer:mylayer:4", "")
	if err != nil {
		t.Fatalf("NewLayerVersion failed: %v", err)
	}
	return layer
}

func TestStoreAndHas(t *testing.T) {
	cacheDir := t.TempDir()
	c, err := NewLayerCache(cacheDir)
	if err != nil {
		t.Fatalf("NewLayerCache failed: %v", err)
	}
	layer := publishedLayer(t)

	if c.Has(layer) {
		t.Fatal("empty cache should not have the layer")
	}

	artifact := filepath.Join(t.TempDir(), "download.zip")
	if err := os.WriteFile(artifact, []byte("zip"), 0o644); err != nil {
		t.Fatalf("write artifact: %v", err)
	}
	if err := c.Store(layer, artifact); err != nil {
		t.Fatalf("Store failed: %v", err)
	}

	if !c.Has(layer) {
		t.Fatal("cache should have the layer after Store")
	}
	if !strings.HasPrefix(c.PathFor(layer), cacheDir) {
		t.Fatalf("PathFor escaped the root: %s", c.PathFor(layer))
	}
	if layer.CodeURI() == "" {
		t.Fatal("Store should back-fill the layer codeuri")
	}
	if !strings.HasSuffix(layer.CodeURI(), string(filepath.Separator)) {
		t.Fatalf("codeuri should be a directory path: %q", layer.CodeURI())
	}
}

func TestNewLayerCacheRequiresRoot(t *testing.T) {
	if _, err := NewLayerCache(""); err == nil {
		t.Fatal("expected error for empty root")
	}
}
