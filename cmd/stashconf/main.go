// Command stashconf inspects and edits UM STASH diagnostics configurations.
package main

import (
	"os"

	"github.com/mesh-intelligence/stashconf/internal/cli"
)

func main() {
	os.Exit(cli.Execute(os.Args[1:], os.Stdout, os.Stderr))
}
