// Where: internal/app/functions.go
// What: The functions command.
package app

import (
	"io"

	"github.com/samscope/samscope/internal/ui"
)

func runFunctions(cli CLI, deps Dependencies, out io.Writer) int {
	ctxInfo, err := resolveCommandContext(cli, deps)
	if err != nil {
		return exitWithError(out, err)
	}
	console := ui.New(out, deps.Err)
	printWarnings(console, ctxInfo.Result.Warnings)

	views := make([]functionView, 0, len(ctxInfo.Result.Functions))
	for _, fn := range ctxInfo.Result.Functions {
		views = append(views, newFunctionView(fn))
	}

	if cli.Functions.Format != "" {
		if err := renderUserTemplate(out, cli.Functions.Format, views); err != nil {
			return exitWithError(out, err)
		}
		return 0
	}
	if cli.Output != "text" {
		if err := renderStructured(out, cli.Output, views); err != nil {
			return exitWithError(out, err)
		}
		return 0
	}

	console.Header("📦", "Functions:")
	for _, view := range views {
		console.ItemPlain(view.Name)
		console.Item("Runtime", view.Runtime)
		console.Item("Handler", view.Handler)
		console.Item("Memory", view.Memory)
		console.Item("Timeout", view.Timeout)
		if view.CodeURI != "" {
			console.Item("CodeUri", view.CodeURI)
		}
		for _, layer := range view.Layers {
			console.Item("Layer", layer.Name)
		}
	}
	return 0
}
