// Package main is the entry point for the kassenbuch CLI.
package main

import (
	"os"

	"github.com/vereinskasse/kassenbuch/cmd/kassenbuch/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
