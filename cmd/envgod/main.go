// Command envgod manages environment variables from the command line.
package main

import (
	"os"

	"github.com/mesh-intelligence/envgod/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
