package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/dlovans/jconstruct/pkg/construct"
)

func newValidateCmd() *cobra.Command {
	var file string
	var minSeverity construct.Severity

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a JSON document against the built-in demo schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, file, minSeverity)
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "input JSON file (defaults to stdin)")
	addMinSeverityFlag(cmd.Flags(), &minSeverity, construct.SeverityInfo)
	return cmd
}

func runValidate(cmd *cobra.Command, file string, minSeverity construct.Severity) error {
	input, err := readInput(file)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	reg := construct.NewRegistry()
	expected := demoSchema(reg)
	ctx := construct.NewContext(reg)

	result, err := construct.ValidateFromString(ctx, string(input), expected, nil, nil)
	if err != nil {
		return fmt.Errorf("validate: %w", err)
	}

	for _, m := range result.Reports() {
		if m.Severity < minSeverity {
			continue
		}
		slog.Info(m.Render(),
			"severity", m.Severity.String(),
			"run_id", result.RunID,
			"context", construct.Render(ctx.Prettifier, m.Context, nil))
	}

	if !result.Valid {
		cmd.Println("✗ invalid")
		os.Exit(1)
	}
	cmd.Println("✓ valid")
	return nil
}

func readInput(file string) ([]byte, error) {
	if file != "" {
		return os.ReadFile(file)
	}
	return io.ReadAll(os.Stdin)
}
