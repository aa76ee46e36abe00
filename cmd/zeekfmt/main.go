// Package main provides the entry point for the zeekfmt CLI tool.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/Sumatoshi-tech/zeekfmt/cmd/zeekfmt/commands"
)

// Exit codes. Formatting failures and usage mistakes are distinguished so
// editor integrations can tell a broken script from a broken invocation.
const (
	exitFormatError = 1
	exitUsageError  = 2
)

func main() {
	rootCmd := commands.NewRootCommand()

	err := rootCmd.Execute()
	if err == nil {
		return
	}

	fmt.Fprintf(os.Stderr, "zeekfmt: %v\n", err)

	if errors.Is(err, commands.ErrUsage) {
		os.Exit(exitUsageError)
	}

	os.Exit(exitFormatError)
}
