// main is the entrypoint for the kinetrace CLI.
package main

import (
	"fmt"
	"os"

	"github.com/kinetrace/kinetrace/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
