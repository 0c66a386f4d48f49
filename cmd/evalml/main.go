// Command evalml derives big-step evaluation judgments and prints their
// derivation trees.
package main

import (
	"os"

	"github.com/thomasrohde/evalml/internal/cli"
)

func main() {
	os.Exit(cli.NewApp().Run(os.Args[1:]))
}
