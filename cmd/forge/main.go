// Command forge is the CLI for the SchemaForge toolkit.
package main

import (
	"os"

	"github.com/schemaforge/forge/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
