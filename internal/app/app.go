// Where: internal/app/app.go
// What: CLI entrypoint logic.
// Why: Provide a testable command dispatcher.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"github.com/samscope/samscope/internal/infra/remote"
	"github.com/samscope/samscope/internal/infra/sam"
	"github.com/samscope/samscope/internal/interaction"
	"github.com/samscope/samscope/internal/version"
)

// Dependencies holds all injected dependencies required for CLI command
// execution. The structure enables dependency injection for testing and
// allows swapping implementations of the parsing and fetching subsystems.
type Dependencies struct {
	Out        io.Writer
	Err        io.Writer
	Parser     sam.Parser
	Prompter   interaction.Prompter
	NewFetcher func(ctx context.Context, opts remote.Options) (remote.Fetcher, error)
	IsTTY      func() bool
}

// CLI defines the command-line interface structure parsed by Kong.
// It contains global flags and all subcommand definitions.
type CLI struct {
	Template  string            `short:"t" help:"Path to SAM template (default: template.yaml)"`
	Parameter map[string]string `short:"p" mapsep:"," help:"Template parameter override (Name=Value)"`
	EnvFile   string            `name:"env-file" help:"Path to .env file"`
	Output    string            `short:"o" enum:"text,json,yaml" default:"text" help:"Output format"`

	Functions FunctionsCmd `cmd:"" help:"List functions defined by the template"`
	Apis      ApisCmd      `cmd:"" help:"List APIs and their routes"`
	Layers    LayersCmd    `cmd:"" help:"List layers referenced by functions"`
	Inspect   InspectCmd   `cmd:"" help:"Show one function in detail"`
	Pull      PullCmd      `cmd:"" help:"Download S3-hosted code artifacts"`
	Version   VersionCmd   `cmd:"" help:"Show version information"`
}

type (
	FunctionsCmd struct {
		Format string `help:"Render each function through a Go template"`
	}
	ApisCmd   struct{}
	LayersCmd struct{}

	InspectCmd struct {
		Name string `arg:"" optional:"" help:"Function name (interactive selection when omitted)"`
	}
	PullCmd struct {
		Name     string `arg:"" optional:"" help:"Function to pull (default: all)"`
		Dir      string `default:".samscope" help:"Artifact directory"`
		Endpoint string `help:"S3-compatible endpoint override"`
		Yes      bool   `short:"y" help:"Overwrite existing artifacts without confirmation"`
	}
	VersionCmd struct{}
)

// Run is the main entry point for CLI command execution. It parses the
// command-line arguments, identifies the requested command, and dispatches to
// the appropriate handler. Returns 0 on success, 1 on error.
func Run(args []string, deps Dependencies) int {
	if deps.Out == nil {
		deps.Out = os.Stdout
	}
	if deps.Err == nil {
		deps.Err = os.Stderr
	}
	if deps.Parser == nil {
		deps.Parser = sam.DefaultParser{}
	}
	if deps.IsTTY == nil {
		deps.IsTTY = func() bool { return interaction.IsTerminal(os.Stdin) }
	}
	out := deps.Out

	cli := CLI{}
	parser, err := kong.New(&cli, kong.Name("samscope"), kong.Exit(func(int) {}))
	if err != nil {
		return exitWithError(out, err)
	}

	ctx, err := parser.Parse(args)
	if err != nil {
		return exitWithError(out, err)
	}

	loadEnvFile(cli, deps.Err)

	command := ctx.Command()
	if exitCode, handled := dispatchCommand(command, cli, deps, out); handled {
		return exitCode
	}

	fmt.Fprintln(out, "unknown command")
	return 1
}

type commandHandler func(CLI, Dependencies, io.Writer) int

func dispatchCommand(command string, cli CLI, deps Dependencies, out io.Writer) (int, bool) {
	exactHandlers := map[string]commandHandler{
		"functions": runFunctions,
		"apis":      runApis,
		"layers":    runLayers,
		"inspect":   runInspect,
		"pull":      runPull,
		"version":   func(_ CLI, _ Dependencies, out io.Writer) int { return runVersion(out) },
	}
	if handler, ok := exactHandlers[command]; ok {
		return handler(cli, deps, out), true
	}

	// Commands with positional arguments report as "cmd <arg>".
	prefixHandlers := []struct {
		prefix  string
		handler commandHandler
	}{
		{prefix: "inspect", handler: runInspect},
		{prefix: "pull", handler: runPull},
	}
	for _, entry := range prefixHandlers {
		if strings.HasPrefix(command, entry.prefix) {
			return entry.handler(cli, deps, out), true
		}
	}

	return 1, false
}

// loadEnvFile loads the requested env file, or .env when one exists in the
// current directory. Parameter values may reference these variables.
func loadEnvFile(cli CLI, errOut io.Writer) {
	if cli.EnvFile != "" {
		if err := godotenv.Load(cli.EnvFile); err != nil {
			fmt.Fprintf(errOut, "Warning: failed to load env file %s: %v\n", cli.EnvFile, err)
		}
		return
	}
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			fmt.Fprintf(errOut, "Warning: failed to load .env: %v\n", err)
		}
	}
}

// runVersion prints the version information of the CLI.
func runVersion(out io.Writer) int {
	fmt.Fprintln(out, version.GetVersion())
	return 0
}
