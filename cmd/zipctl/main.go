// Package main is the entry point for the zipctl CLI.
package main

import (
	"os"

	"zipshipping/cmd/zipctl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
