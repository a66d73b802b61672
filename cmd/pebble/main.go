package main

import (
	"os"

	"github.com/AGOODGITDUCK/PebbleCode/cmd/pebble/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
