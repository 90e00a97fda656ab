package main

import (
	"os"

	"github.com/islandbeat/eventradar/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
