// fedspeak resolves U.S. federal government acronyms from the command line.
package main

import (
	"os"

	"fedspeak/cmd/fedspeak/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
