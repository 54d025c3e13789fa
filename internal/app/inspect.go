// Where: internal/app/inspect.go
// What: The inspect command.
// Why: Show a single function with everything the runtime would need.
package app

import (
	"io"

	"github.com/samscope/samscope/internal/infra/sam"
	"github.com/samscope/samscope/internal/ui"
)

func runInspect(cli CLI, deps Dependencies, out io.Writer) int {
	ctxInfo, err := resolveCommandContext(cli, deps)
	if err != nil {
		return exitWithError(out, err)
	}
	console := ui.New(out, deps.Err)
	printWarnings(console, ctxInfo.Result.Warnings)

	functions := sam.NewFunctionProviderFromResult(ctxInfo.Result)

	name := cli.Inspect.Name
	if name == "" {
		name, err = selectFunction(ctxInfo.Result, deps)
		if err != nil {
			return exitWithError(out, err)
		}
	}

	fn, err := functions.Get(name)
	if err != nil {
		return exitWithError(out, err)
	}
	view := newFunctionView(fn)

	if cli.Output != "text" {
		if err := renderStructured(out, cli.Output, view); err != nil {
			return exitWithError(out, err)
		}
		return 0
	}

	console.Header("🔍", view.Name)
	console.Item("Runtime", view.Runtime)
	console.Item("Handler", view.Handler)
	console.Item("Memory", view.Memory)
	console.Item("Timeout", view.Timeout)
	if view.CodeURI != "" {
		console.Item("CodeUri", view.CodeURI)
	}
	if view.Role != "" {
		console.Item("Role", view.Role)
	}
	for _, layer := range view.Layers {
		console.Item("Layer", layer.Name)
		if layer.CodeURI != "" {
			console.Item("  CodeUri", layer.CodeURI)
		}
	}
	return 0
}

// selectFunction falls back to interactive selection when no name was given
// and the session is a terminal.
func selectFunction(result *sam.ParseResult, deps Dependencies) (string, error) {
	names := make([]string, 0, len(result.Functions))
	for _, fn := range result.Functions {
		names = append(names, fn.Name)
	}
	if len(names) == 1 {
		return names[0], nil
	}
	if deps.Prompter != nil && deps.IsTTY() {
		return deps.Prompter.Select("Select a function", names)
	}
	return "", errFunctionNameRequired
}
