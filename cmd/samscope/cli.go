// Where: cmd/samscope/cli.go
// What: CLI dependency wiring helpers.
// Why: Centralize construction for testability.
package main

import (
	"os"

	"github.com/samscope/samscope/internal/app"
	"github.com/samscope/samscope/internal/infra/remote"
	"github.com/samscope/samscope/internal/infra/sam"
	"github.com/samscope/samscope/internal/interaction"
)

// buildDependencies constructs the runtime dependencies required by the CLI.
func buildDependencies() app.Dependencies {
	return app.Dependencies{
		Out:        os.Stdout,
		Err:        os.Stderr,
		Parser:     sam.DefaultParser{},
		Prompter:   interaction.HuhPrompter{},
		NewFetcher: remote.NewFetcher,
		IsTTY:      func() bool { return interaction.IsTerminal(os.Stdin) },
	}
}
