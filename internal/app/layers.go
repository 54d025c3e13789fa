// Where: internal/app/layers.go
// What: The layers command.
package app

import (
	"io"

	"github.com/samscope/samscope/internal/ui"
)

func runLayers(cli CLI, deps Dependencies, out io.Writer) int {
	ctxInfo, err := resolveCommandContext(cli, deps)
	if err != nil {
		return exitWithError(out, err)
	}
	console := ui.New(out, deps.Err)
	printWarnings(console, ctxInfo.Result.Warnings)

	views := make([]layerView, 0, len(ctxInfo.Result.Layers))
	for _, layer := range ctxInfo.Result.Layers {
		views = append(views, newLayerView(layer))
	}

	if cli.Output != "text" {
		if err := renderStructured(out, cli.Output, views); err != nil {
			return exitWithError(out, err)
		}
		return 0
	}

	console.Header("🧱", "Layers:")
	for _, view := range views {
		console.ItemPlain(view.Name)
		if view.Version != nil {
			console.Item("Version", *view.Version)
		}
		if view.Local {
			console.Item("Source", "template")
		} else {
			console.Item("Source", view.ARN)
		}
		if view.CodeURI != "" {
			console.Item("CodeUri", view.CodeURI)
		}
	}
	return 0
}
