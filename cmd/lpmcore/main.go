// Command lpmcore exercises the lpmcore host surface from a terminal: a
// thin cobra CLI over the Registry, useful for manual testing and
// scripting against a single binary. Business logic built on top of
// Registry is expected to live in a separate host, not here.
package main

import (
	"github.com/gizzahub/lpmcore/cmd/lpmcore/cmd"
)

var version = "dev"

func main() {
	cmd.Execute(version)
}
