// Package lint provides static analysis for expected-schema trees built
// with pkg/construct. It detects potential issues without validating any
// input document.
package lint

import (
	"fmt"
	"sort"

	"github.com/dlovans/jconstruct/pkg/construct"
)

// Severity classifies how serious a lint Issue is. Unlike
// construct.Severity, lint has no info/debug/fatal tiers: a schema shape
// either blocks validation outright (error) or merely deserves a second
// look (warning).
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue represents a problem found during static analysis.
type Issue struct {
	Severity Severity `json:"severity"`
	Field    string   `json:"field,omitempty"`
	Rule     string   `json:"rule,omitempty"`
	Message  string   `json:"message"`
}

// Result contains all issues found by the linter.
type Result struct {
	Valid  bool    `json:"valid"`
	Issues []Issue `json:"issues"`
}

// Run performs static analysis on an expected-schema tree rooted at root.
// Unlike construct.Validate, it never touches an input document: it
// walks the schema tree alone looking for shapes that can never validate
// anything, or that will fault at validation time.
func Run(root construct.Node) *Result {
	result := &Result{Valid: true}
	l := &linter{result: result, seen: make(map[construct.Node]bool)}
	l.walk(root, "")
	return result
}

type linter struct {
	result *Result
	seen   map[construct.Node]bool
}

func (l *linter) walk(n construct.Node, path string) {
	if n == nil {
		return
	}
	if l.seen[n] {
		return
	}
	l.seen[n] = true

	switch t := n.(type) {
	case *construct.ArrayNode:
		for i, el := range t.Elements() {
			l.walk(el, fmt.Sprintf("%s[%d]", path, i))
		}
	case *construct.ObjectNode:
		l.walkObject(t, path)
	case *construct.MixedNode:
		l.walkMixed(t, path)
	case *construct.RootNode:
		l.walk(t.Child(), path)
	case *construct.RedirectNode:
		l.walkRedirect(t, path)
	}
}

// walkRedirect flags a redirect whose identifier never resolves, whether
// it's reached as a field's value, an array element template, a Root's
// child, or (via walk's recursion into each alternative) a Mixed member.
func (l *linter) walkRedirect(r *construct.RedirectNode, path string) {
	if _, err := r.TryResolve(); err != nil {
		l.result.addError(path, "unresolved-redirect",
			fmt.Sprintf("redirect target %q could not be resolved", r.Target()))
	}
}

func (l *linter) walkObject(o *construct.ObjectNode, path string) {
	seenKeys := make(map[string][]int)
	for i, f := range o.Fields() {
		if !f.Placeholder {
			seenKeys[f.Key] = append(seenKeys[f.Key], i)
		}
		l.walk(f.Value, fieldPath(path, f.Key))
	}
	var dupKeys []string
	for key, idxs := range seenKeys {
		if len(idxs) > 1 {
			dupKeys = append(dupKeys, key)
		}
	}
	sort.Strings(dupKeys)
	for _, key := range dupKeys {
		l.result.addWarning(fieldPath(path, key), "duplicate-field",
			fmt.Sprintf("field %q is declared more than once; last declaration wins", key))
	}

	for _, br := range o.Branches() {
		if br.Predicate == nil {
			l.result.addError(path, "branch-predicate",
				fmt.Sprintf("branch %q has no predicate and can never activate correctly", br.Label))
		}
		for _, f := range br.Outcomes {
			l.walk(f.Value, fieldPath(path, f.Key))
		}
	}
}

func (l *linter) walkMixed(m *construct.MixedNode, path string) {
	seenBits := 0
	for i, alt := range m.Alternatives() {
		bits := construct.Bitmask(alt)
		if seenBits&bits == bits && bits != 0 {
			l.result.addWarning(fmt.Sprintf("%s|%d", path, i), "dead-alternative",
				fmt.Sprintf("mixed alternative %s at position %d is shadowed by an earlier overlapping alternative", alt.TypeName(), i))
		}
		seenBits |= bits
		// walk's own *construct.RedirectNode case flags an unresolved
		// alternative here too, so no separate check is needed.
		l.walk(alt, path)
	}
}

func fieldPath(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

func (r *Result) addError(field, rule, message string) {
	r.Valid = false
	r.record(SeverityError, field, rule, message)
}

func (r *Result) addWarning(field, rule, message string) {
	r.record(SeverityWarning, field, rule, message)
}

func (r *Result) record(severity Severity, field, rule, message string) {
	r.Issues = append(r.Issues, Issue{
		Severity: severity,
		Field:    field,
		Rule:     rule,
		Message:  message,
	})
}
