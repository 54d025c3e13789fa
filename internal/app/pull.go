// Where: internal/app/pull.go
// What: The pull command.
// Why: Fetch S3-hosted function code and layer contents for local use.
package app

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/samscope/samscope/internal/domain/provider"
	"github.com/samscope/samscope/internal/infra/cache"
	"github.com/samscope/samscope/internal/infra/remote"
	"github.com/samscope/samscope/internal/interaction"
	"github.com/samscope/samscope/internal/ui"
)

func runPull(cli CLI, deps Dependencies, out io.Writer) int {
	ctxInfo, err := resolveCommandContext(cli, deps)
	if err != nil {
		return exitWithError(out, err)
	}
	console := ui.New(out, deps.Err)
	printWarnings(console, ctxInfo.Result.Warnings)

	functions := ctxInfo.Result.Functions
	if cli.Pull.Name != "" {
		functions = nil
		for _, fn := range ctxInfo.Result.Functions {
			if fn.Name == cli.Pull.Name {
				functions = append(functions, fn)
			}
		}
		if len(functions) == 0 {
			return exitWithError(out, fmt.Errorf("function %q: %w", cli.Pull.Name, provider.ErrFunctionNotFound))
		}
	}

	newFetcher := deps.NewFetcher
	if newFetcher == nil {
		newFetcher = remote.NewFetcher
	}
	opts := remote.OptionsFromEnv()
	if cli.Pull.Endpoint != "" {
		opts.Endpoint = cli.Pull.Endpoint
	}

	ctx := context.Background()
	fetcher, err := newFetcher(ctx, opts)
	if err != nil {
		return exitWithError(out, err)
	}

	layerCache, err := cache.NewLayerCache(filepath.Join(cli.Pull.Dir, "layers"))
	if err != nil {
		return exitWithError(out, err)
	}

	pulled := 0
	for _, fn := range functions {
		n, err := pullFunction(ctx, cli, fetcher, layerCache, fn, console)
		if err != nil {
			return exitWithError(out, err)
		}
		pulled += n
	}

	console.Success(fmt.Sprintf("pulled %d artifact(s) into %s", pulled, cli.Pull.Dir))
	return 0
}

func pullFunction(
	ctx context.Context,
	cli CLI,
	fetcher remote.Fetcher,
	layerCache *cache.LayerCache,
	fn *provider.Function,
	console *ui.Console,
) (int, error) {
	pulled := 0

	if fn.CodeURI.S3 != nil {
		dest := filepath.Join(cli.Pull.Dir, "functions", fn.Name, "code.zip")
		ok, err := confirmOverwrite(cli, dest)
		if err != nil {
			return pulled, err
		}
		if ok {
			console.Info(fmt.Sprintf("pulling %s code from %s", fn.Name, fn.CodeURI.String()))
			if err := fetcher.Download(ctx, *fn.CodeURI.S3, dest); err != nil {
				return pulled, err
			}
			pulled++
		}
	}

	for _, layer := range fn.Layers {
		n, err := pullLayer(ctx, fetcher, layerCache, layer, console)
		if err != nil {
			return pulled, err
		}
		pulled += n
	}
	return pulled, nil
}

// pullLayer downloads a layer whose contents live in S3 and points the layer
// at the cached copy. Layers with local directory contents need no pull.
func pullLayer(
	ctx context.Context,
	fetcher remote.Fetcher,
	layerCache *cache.LayerCache,
	layer *provider.LayerVersion,
	console *ui.Console,
) (int, error) {
	if !strings.HasPrefix(layer.CodeURI(), "s3://") {
		return 0, nil
	}
	if layerCache.Has(layer) {
		layer.SetCodeURI(filepath.Dir(layerCache.PathFor(layer)) + string(filepath.Separator))
		return 0, nil
	}

	location, err := remote.ParseS3URI(layer.CodeURI())
	if err != nil {
		return 0, fmt.Errorf("layer %s: %w", layer.Name(), err)
	}

	console.Info(fmt.Sprintf("pulling layer %s from %s", layer.Name(), layer.CodeURI()))
	dest := layerCache.PathFor(layer)
	if err := fetcher.Download(ctx, location, dest); err != nil {
		return 0, err
	}
	if err := layerCache.Store(layer, dest); err != nil {
		return 0, err
	}
	return 1, nil
}

func confirmOverwrite(cli CLI, dest string) (bool, error) {
	if cli.Pull.Yes {
		return true, nil
	}
	if !fileExists(dest) {
		return true, nil
	}
	return interaction.PromptYesNo(fmt.Sprintf("%s exists, overwrite?", dest))
}
