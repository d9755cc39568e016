// Package main is the entry point for the sceneimport application.
package main

import (
	"os"

	"github.com/aurorafx/sceneimport/cmd/sceneimport/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
