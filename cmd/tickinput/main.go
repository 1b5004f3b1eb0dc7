// Command tickinput runs input scenarios, inspects recorded runs and shows
// live terminal input gathered in both tick domains.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/tickinput/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
