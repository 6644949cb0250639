//go:build js && wasm

// Package main provides WASM bindings for the jconstruct validation
// engine. This allows validation to run in browsers for reactive form
// feedback.
package main

import (
	"syscall/js"

	"github.com/dlovans/jconstruct/pkg/construct"
)

func main() {
	js.Global().Set("JConstructValidate", js.FuncOf(jconstructValidate))
	js.Global().Set("JConstructExplainPath", js.FuncOf(jconstructExplainPath))

	select {}
}

// jconstructValidate is the JS-callable wrapper around
// construct.ValidateFromString, run against the demo person/address
// schema. Usage: JConstructValidate(jsonText) -> { valid, reports, error? }
func jconstructValidate(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return makeError("JConstructValidate requires 1 argument: jsonText")
	}

	jsonText := args[0].String()

	reg := construct.NewRegistry()
	expected := demoSchema(reg)
	ctx := construct.NewContext(reg)

	result, err := construct.ValidateFromString(ctx, jsonText, expected, nil, nil)
	if err != nil {
		return makeError(err.Error())
	}

	reports := make([]any, 0, len(result.Reports()))
	for _, m := range result.Reports() {
		reports = append(reports, map[string]any{
			"severity": m.Severity.String(),
			"message":  m.Render(),
		})
	}

	return map[string]any{
		"valid":   result.Valid,
		"runId":   result.RunID,
		"reports": reports,
	}
}

// jconstructExplainPath is the JS-callable wrapper around
// construct.ParsePath, for client-side authoring feedback on path
// expressions before they're sent to a predicate.
// Usage: JConstructExplainPath(pathText) -> { raw, steps } | { error }
func jconstructExplainPath(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return makeError("JConstructExplainPath requires 1 argument: pathText")
	}

	p, err := construct.ParsePath(args[0].String())
	if err != nil {
		return makeError(err.Error())
	}

	steps := make([]any, 0, len(p.Steps()))
	for _, s := range p.Steps() {
		steps = append(steps, s.String())
	}

	return map[string]any{
		"raw":   p.Raw(),
		"steps": steps,
	}
}

// makeError creates a JS-friendly error response.
func makeError(msg string) map[string]any {
	return map[string]any{
		"error": msg,
	}
}

// demoSchema builds the same representative person/address schema the
// CLI's subcommands exercise (see cmd/jconstruct/demo.go); duplicated
// here since WASM's build tag keeps this package isolated from cmd/jconstruct.
func demoSchema(reg *construct.Registry) construct.Node {
	construct.NewObject(
		construct.NewField("street", construct.NewString(), true),
		construct.NewField("city", construct.NewString(), true),
	).WithIdentifier(reg, "address")

	person := construct.NewObject(
		construct.NewField("name", construct.NewString(), true),
		construct.NewField("age", construct.NewInteger(), false),
		construct.NewField("address", construct.NewRedirect(reg, "address"), false),
		construct.NewField("kind", construct.NewString(), true),
	).AddBranch(
		"whenEmployee",
		construct.NewTargetHasValue("@.kind", "employee"),
		construct.NewField("employeeId", construct.NewInteger(), true),
	)

	return construct.NewRoot(person)
}
