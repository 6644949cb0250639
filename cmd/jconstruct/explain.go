package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dlovans/jconstruct/pkg/construct"
)

func newExplainCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "explain-path <path-expression>",
		Short: "Parse a path expression and print its steps",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := construct.ParsePath(args[0])
			if err != nil {
				return fmt.Errorf("parse path: %w", err)
			}
			cmd.Printf("raw: %s\n", p.Raw())
			for i, s := range p.Steps() {
				cmd.Printf("  step %d: %s\n", i, s)
			}
			return nil
		},
	}
}
