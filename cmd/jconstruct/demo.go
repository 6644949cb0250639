package main

import "github.com/dlovans/jconstruct/pkg/construct"

// demoSchema builds a small, representative expected-structure tree for
// the validate and lint subcommands to exercise when no programmatic
// schema is wired in. Real callers construct their own schema in Go with
// pkg/construct; no schema serialization format is specified.
func demoSchema(reg *construct.Registry) construct.Node {
	address := construct.NewObject(
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

	_ = address
	return construct.NewRoot(person)
}
