// Where: internal/app/apis.go
// What: The apis command.
package app

import (
	"fmt"
	"io"

	"github.com/samscope/samscope/internal/ui"
)

func runApis(cli CLI, deps Dependencies, out io.Writer) int {
	ctxInfo, err := resolveCommandContext(cli, deps)
	if err != nil {
		return exitWithError(out, err)
	}
	console := ui.New(out, deps.Err)
	printWarnings(console, ctxInfo.Result.Warnings)

	views := make([]apiView, 0, len(ctxInfo.Result.Apis))
	for _, api := range ctxInfo.Result.Apis {
		views = append(views, newApiView(api))
	}

	if cli.Output != "text" {
		if err := renderStructured(out, cli.Output, views); err != nil {
			return exitWithError(out, err)
		}
		return 0
	}

	console.Header("🌐", "APIs:")
	for _, view := range views {
		stage := view.StageName
		if stage == "" {
			stage = "(default)"
		}
		console.ItemPlain(fmt.Sprintf("stage %s", stage))
		for _, route := range view.Routes {
			console.Item(fmt.Sprintf("%s %s", route.Method, route.Path), route.Function)
		}
		for header, value := range view.CorsHeaders {
			console.Item(header, value)
		}
	}
	return 0
}
