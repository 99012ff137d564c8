package main

import (
	"context"
	"fmt"
	"os"

	"github.com/stakewise/proxy-deployer/internal/cli"
	"github.com/stakewise/proxy-deployer/internal/cli/render"
	"github.com/stakewise/proxy-deployer/internal/config"
)

// Set by -ldflags "-X main.version=..."
var (
	version string
	commit  string
	date    string
)

func main() {
	config.SetBuildFlags(version, commit, date)

	rootCmd := cli.NewRootCmd()
	if err := cli.Execute(context.Background(), rootCmd); err != nil {
		fmt.Fprintln(os.Stderr, render.FormatError(err.Error()))
		os.Exit(1)
	}
}
