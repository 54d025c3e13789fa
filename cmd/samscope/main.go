// Where: cmd/samscope/main.go
// What: CLI entrypoint.
// Why: Execute samscope commands with configured dependencies.
package main

import (
	"os"

	"github.com/samscope/samscope/internal/app"
)

func main() {
	os.Exit(app.Run(os.Args[1:], buildDependencies()))
}
