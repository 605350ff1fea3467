// Command rolodex manages a local list of customer contacts.
package main

import (
	"os"

	"github.com/mesh-intelligence/rolodex/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
