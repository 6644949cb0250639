// Package main provides a CLI tool for exercising the jconstruct
// validation engine. This is useful for ad hoc checking and for
// demonstrating the engine's diagnostics without embedding it in another
// Go program.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	rootCmd := &cobra.Command{
		Use:           "jconstruct",
		Short:         "Structural JSON validation engine",
		Long:          "jconstruct validates parsed JSON documents against a programmatically-constructed expected structure.",
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	rootCmd.AddCommand(newValidateCmd())
	rootCmd.AddCommand(newLintCmd())
	rootCmd.AddCommand(newExplainCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}
