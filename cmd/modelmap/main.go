// cmd/modelmap/main.go
package main

import (
	cmd "github.com/mwiater/modelmap/internal/cli"
)

// Build-time variables injected with -ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// function aliases allow tests to observe wiring without running the CLI.
var (
	setVersionInfo = cmd.SetVersionInfo
	executeCmd     = cmd.Execute
)

// main starts the modelmap CLI application by delegating to the
// cobra root command defined in the cli package.
func main() {
	setVersionInfo(version, commit, date)
	executeCmd()
}
