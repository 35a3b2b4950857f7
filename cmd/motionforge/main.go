// main is the entrypoint for the motionforge CLI.
package main

import (
	"fmt"
	"os"

	"github.com/motionforge/motionforge/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
