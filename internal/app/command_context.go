// Where: internal/app/command_context.go
// What: Shared template resolution for CLI commands.
// Why: Reduce duplicated template loading and parsing across commands.
package app

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/samscope/samscope/internal/infra/sam"
	"github.com/samscope/samscope/internal/ui"
)

// defaultTemplateNames are checked in order when -t is not given.
var defaultTemplateNames = []string{"template.yaml", "template.yml"}

var errFunctionNameRequired = errors.New("function name required (or run in a terminal for interactive selection)")

func exitWithError(out io.Writer, err error) int {
	fmt.Fprintln(out, err)
	return 1
}

type commandContext struct {
	TemplatePath string
	Result       *sam.ParseResult
}

func resolveCommandContext(cli CLI, deps Dependencies) (commandContext, error) {
	path, err := resolveTemplatePath(cli.Template)
	if err != nil {
		return commandContext{}, err
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return commandContext{}, fmt.Errorf("read template %s: %w", path, err)
	}

	result, err := deps.Parser.Parse(string(content), cli.Parameter)
	if err != nil {
		return commandContext{}, fmt.Errorf("parse template %s: %w", path, err)
	}
	return commandContext{TemplatePath: path, Result: result}, nil
}

func resolveTemplatePath(override string) (string, error) {
	if override != "" {
		if _, err := os.Stat(override); err != nil {
			return "", fmt.Errorf("template %s: %w", override, err)
		}
		return override, nil
	}
	for _, name := range defaultTemplateNames {
		if _, err := os.Stat(name); err == nil {
			return name, nil
		}
	}
	return "", fmt.Errorf("no template found (looked for %v, use -t)", defaultTemplateNames)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// printWarnings surfaces parse diagnostics on stderr once per command.
func printWarnings(console *ui.Console, warnings []string) {
	for _, warning := range warnings {
		console.Warn(warning)
	}
}
