// Command filterql translates JavaScript filter arrow functions into Realm
// Query Language strings.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/filterql/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.GetExitCode(err))
	}
}
