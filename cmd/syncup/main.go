// Package main is the entry point for the syncup CLI.
//
// syncup provisions and tears down a single-node Syncthing deployment
// on Google Cloud, sized to stay inside the always-free tier. It wraps
// the cloud CLI rather than carrying API credentials of its own, and
// every provisioning step is idempotent so interrupted runs can simply
// be re-run.
//
// Commands: provision, destroy, doctor, version.
//
// For detailed usage information, run:
//
//	syncup --help
package main

import (
	"fmt"
	"os"

	"github.com/ostred/syncup/cmd/syncup/commands"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
