package main

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/dlovans/jconstruct/pkg/construct"
)

// severityValue adapts construct.Severity to pflag.Value so --min-severity
// can be registered as a typed flag instead of a bare string, the pattern
// cue's CLI uses for its own enum-like flags.
type severityValue construct.Severity

func (s *severityValue) String() string {
	return construct.Severity(*s).String()
}

func (s *severityValue) Set(text string) error {
	switch text {
	case "debug":
		*s = severityValue(construct.SeverityDebug)
	case "info":
		*s = severityValue(construct.SeverityInfo)
	case "warning", "warn":
		*s = severityValue(construct.SeverityWarning)
	case "error":
		*s = severityValue(construct.SeverityError)
	case "fatal":
		*s = severityValue(construct.SeverityFatal)
	default:
		return fmt.Errorf("unknown severity %q", text)
	}
	return nil
}

func (s *severityValue) Type() string { return "severity" }

func addMinSeverityFlag(flags *pflag.FlagSet, v *construct.Severity, defaultValue construct.Severity) {
	*v = defaultValue
	flags.Var((*severityValue)(v), "min-severity", "minimum severity to print (debug, info, warning, error, fatal)")
}
