package construct

import "fmt"

// Issue is a message accumulated by a Predicate while it runs, inspected
// by the caller (and, for an Audit, drained into the reports sink on
// failure). It carries the same shape as Message minus severity, since a
// predicate's severity is only decided once it is wrapped as an Audit.
type Issue struct {
	Context Handle
	Format  string
	Args    []string
}

func (i Issue) String() string {
	return formatMessage(i.Format, i.Args)
}

// Predicate is a pure boolean test over an input node.
// Implementations are either small struct values or closures; no
// runtime type-object construction is needed.
type Predicate interface {
	Test(input Handle) bool
	Issues() []Issue
}

// Audit is the loud twin of a Predicate: run after the structural rule,
// its issues are routed into the reports sink at a fixed severity if it
// fails.
type Audit interface {
	Run(input Handle, reports ReportSink) bool
}

// auditWrapper derives an Audit from a Predicate by draining its issues
// into the reports sink on failure: implement the test once, derive the
// audit by wrapping.
type auditWrapper struct {
	predicate Predicate
	severity  Severity
}

// NewAudit wraps p as an Audit: on failure, every issue p accumulated is
// routed to the reports sink at the given severity.
func NewAudit(p Predicate, severity Severity) Audit {
	return &auditWrapper{predicate: p, severity: severity}
}

func (a *auditWrapper) Run(input Handle, reports ReportSink) bool {
	if a.predicate.Test(input) {
		return true
	}
	for _, issue := range a.predicate.Issues() {
		reports.AddReport(Message{
			Severity: a.severity,
			Context:  issue.Context,
			Format:   issue.Format,
			Args:     issue.Args,
		})
	}
	return false
}

// --- Built-in predicate: TargetExists ---

// targetExistsPredicate succeeds iff its path evaluates without error on
// the current input.
type targetExistsPredicate struct {
	path   string
	issues []Issue
}

// NewTargetExists builds the TargetExists(path) predicate/audit pair:
// it succeeds iff path evaluates to a Handle against the current input.
func NewTargetExists(path string) Predicate {
	return &targetExistsPredicate{path: path}
}

func (t *targetExistsPredicate) Test(input Handle) bool {
	t.issues = nil
	p, err := ParsePath(t.path)
	if err != nil {
		t.issues = append(t.issues, Issue{Context: input, Format: "invalid path %s: %s", Args: []string{t.path, err.Error()}})
		return false
	}
	if _, err := p.Find(input); err != nil {
		t.issues = append(t.issues, Issue{Context: input, Format: "target %s does not exist", Args: []string{t.path}})
		return false
	}
	return true
}

func (t *targetExistsPredicate) Issues() []Issue { return t.issues }

// --- Built-in predicate: TargetHasValue ---

// targetHasValuePredicate succeeds iff the target exists, is a scalar,
// and its value is one of the accepted values.
type targetHasValuePredicate struct {
	path     string
	accepted []any
	issues   []Issue
}

// NewTargetHasValue builds the TargetHasValue(path, accepted...)
// predicate/audit pair: it succeeds iff path evaluates to a scalar Handle
// whose value is one of accepted.
func NewTargetHasValue(path string, accepted ...any) Predicate {
	return &targetHasValuePredicate{path: path, accepted: accepted}
}

func (t *targetHasValuePredicate) Test(input Handle) bool {
	t.issues = nil
	p, err := ParsePath(t.path)
	if err != nil {
		t.issues = append(t.issues, Issue{Context: input, Format: "invalid path %s: %s", Args: []string{t.path, err.Error()}})
		return false
	}
	target, err := p.Find(input)
	if err != nil {
		t.issues = append(t.issues, Issue{Context: input, Format: "target %s does not exist", Args: []string{t.path}})
		return false
	}
	if target.TypeBit()&SCALAR == 0 {
		t.issues = append(t.issues, Issue{
			Context: target,
			Format:  "type %s for target %s, should be one of boolean, integer, double, string",
			Args:    []string{target.Kind().TypeName(), t.path},
		})
		return false
	}
	got := target.scalarValue()
	for _, want := range t.accepted {
		if scalarsEqual(got, want) {
			return true
		}
	}
	t.issues = append(t.issues, Issue{
		Context: target,
		Format:  "invalid value %s, should be one of %s",
		Args:    []string{stringifyScalar(got), joinAny(t.accepted)},
	})
	return false
}

func (t *targetHasValuePredicate) Issues() []Issue { return t.issues }

func scalarsEqual(a, b any) bool {
	return stringifyScalar(a) == stringifyScalar(normalizeScalar(b))
}

// normalizeScalar lets callers pass plain `int`/`float32`/etc. literals
// for accepted values without worrying about Go's numeric type zoo.
func normalizeScalar(v any) any {
	switch t := v.(type) {
	case int:
		return int64(t)
	case int32:
		return int64(t)
	case float32:
		return float64(t)
	default:
		return v
	}
}

func joinAny(vs []any) string {
	out := ""
	for i, v := range vs {
		if i > 0 {
			out += ", "
		}
		out += stringifyScalar(normalizeScalar(v))
	}
	return out
}

func formatMessage(format string, args []string) string {
	anyArgs := make([]any, len(args))
	for i, a := range args {
		anyArgs[i] = a
	}
	return fmt.Sprintf(format, anyArgs...)
}
