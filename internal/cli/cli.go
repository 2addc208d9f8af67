// Package cli provides the command-line interface for StockBoard.
package cli

import (
	"os"
)

// Version is set at build time with -ldflags "-X StockBoard/internal/cli.Version=...".
var Version = "dev"

// Run starts the CLI application.
func Run() {
	rootCmd := NewRootCmd()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
