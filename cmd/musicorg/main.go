package main

import (
	"os"

	"github.com/jaa/musicorg/internal/cli"
)

// Set through -ldflags "-X main.version=..." at release time.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(cli.Execute(
		cli.BuildInfo{Version: version, Commit: commit, Date: date},
		cli.IOStreams{In: os.Stdin, Out: os.Stdout, ErrOut: os.Stderr},
	))
}
