package construct

import "testing"

func TestTargetExistsPredicate(t *testing.T) {
	a := NewArena()
	leaf := a.NewInteger(1, "1")
	obj := a.NewObject(`{"leaf":1}`)
	a.SetField(obj, "leaf", leaf)
	root := a.NewRoot(obj)

	p := NewTargetExists("$.leaf")
	if !p.Test(root) {
		t.Errorf("expected $.leaf to exist, issues: %v", p.Issues())
	}

	missing := NewTargetExists("$.nope")
	if missing.Test(root) {
		t.Errorf("expected $.nope to not exist")
	}
	if len(missing.Issues()) != 1 {
		t.Errorf("expected 1 issue, got %d", len(missing.Issues()))
	}
}

func TestTargetHasValuePredicate(t *testing.T) {
	a := NewArena()
	kind := a.NewString("foo", `"foo"`)
	obj := a.NewObject(`{"kind":"foo"}`)
	a.SetField(obj, "kind", kind)
	root := a.NewRoot(obj)

	p := NewTargetHasValue("$.kind", "foo", "bar")
	if !p.Test(root) {
		t.Errorf("expected kind=foo to satisfy {foo,bar}, issues: %v", p.Issues())
	}

	negative := NewTargetHasValue("$.kind", "baz")
	if negative.Test(root) {
		t.Errorf("expected kind=foo to not satisfy {baz}")
	}
	if len(negative.Issues()) != 1 {
		t.Errorf("expected 1 issue, got %d", len(negative.Issues()))
	}
}

func TestTargetHasValueRejectsNonScalar(t *testing.T) {
	a := NewArena()
	arr := a.NewArray(`[]`)
	obj := a.NewObject(`{"list":[]}`)
	a.SetField(obj, "list", arr)
	root := a.NewRoot(obj)

	p := NewTargetHasValue("$.list", "x")
	if p.Test(root) {
		t.Errorf("expected array target to fail TargetHasValue")
	}
}

func TestAuditDrainsIssuesOnFailure(t *testing.T) {
	a := NewArena()
	obj := a.NewObject(`{}`)
	root := a.NewRoot(obj)

	audit := NewAudit(NewTargetExists("$.missing"), SeverityError)
	reports := NewMemoryReports()
	if audit.Run(root, reports) {
		t.Fatalf("expected audit to fail")
	}
	if len(reports.Reports()) != 1 {
		t.Fatalf("expected exactly 1 drained report, got %d", len(reports.Reports()))
	}
	if reports.Reports()[0].Severity != SeverityError {
		t.Errorf("expected drained report severity to match the audit's, got %v", reports.Reports()[0].Severity)
	}
}
