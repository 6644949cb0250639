package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dlovans/jconstruct/pkg/construct"
	"github.com/dlovans/jconstruct/pkg/lint"
)

func newLintCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lint",
		Short: "Statically analyse the built-in demo schema for structural issues",
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := construct.NewRegistry()
			result := lint.Run(demoSchema(reg))

			if len(result.Issues) == 0 {
				cmd.Println("✓ no issues found")
				return nil
			}

			for _, issue := range result.Issues {
				cmd.Println(formatIssue(issue))
			}

			if !result.Valid {
				return fmt.Errorf("lint found blocking issues")
			}
			return nil
		},
	}
}

// formatIssue renders one lint.Issue as a single line: an icon keyed off
// severity, the severity and message, and any field/rule tags the issue
// carries.
func formatIssue(issue lint.Issue) string {
	var b strings.Builder
	b.WriteString(severityIcon(issue.Severity))
	b.WriteByte(' ')
	b.WriteString(string(issue.Severity))
	for _, tag := range []struct {
		label, value string
	}{
		{"field", issue.Field},
		{"rule", issue.Rule},
	} {
		if tag.value != "" {
			fmt.Fprintf(&b, " [%s: %s]", tag.label, tag.value)
		}
	}
	fmt.Fprintf(&b, ": %s", issue.Message)
	return b.String()
}

func severityIcon(s lint.Severity) string {
	if s == lint.SeverityError {
		return "✗"
	}
	return "⚠"
}
