// Package main is the entry point for the dartimeline CLI.
package main

import (
	"fmt"
	"os"

	"github.com/cmlabs-hris/hris-dar-go/internal/cli"
)

// version is set at build time using -ldflags.
var version = "dev"

func main() {
	if err := cli.NewRootCommand(version).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
