package main

import (
	"os"

	"github.com/felora-io/felora-cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
