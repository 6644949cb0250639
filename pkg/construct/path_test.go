package construct

import (
	"testing"
)

// S7 — path traversal.
func buildNestedInput(t *testing.T) (root, outer, inner, leaf Handle) {
	t.Helper()
	a := NewArena()
	leaf = a.NewInteger(1, "1")
	inner = a.NewObject(`{"leaf":1}`)
	a.SetField(inner, "leaf", leaf)
	outer = a.NewObject(`{"inner":{...}}`)
	a.SetField(outer, "inner", inner)
	obj := a.NewObject(`{"outer":{...}}`)
	a.SetField(obj, "outer", outer)
	root = a.NewRoot(obj)
	return
}

func TestPathTraversalFromRoot(t *testing.T) {
	root, _, _, leaf := buildNestedInput(t)

	p, err := ParsePath("$.outer.inner.leaf")
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	got, err := p.Find(root)
	if err != nil {
		t.Fatalf("unexpected find error: %v", err)
	}
	if got.Int() != leaf.Int() || got.Raw() != leaf.Raw() {
		t.Errorf("found wrong node: got %v, want leaf", got)
	}
}

func TestPathTraversalCurrentAndAscend(t *testing.T) {
	_, _, inner, leaf := buildNestedInput(t)

	p, err := ParsePath("@^.inner.leaf")
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	got, err := p.Find(inner)
	if err != nil {
		t.Fatalf("unexpected find error: %v", err)
	}
	if got.Int() != leaf.Int() {
		t.Errorf("found wrong node via @^.inner.leaf")
	}
}

func TestPathMissingFieldFails(t *testing.T) {
	root, _, _, _ := buildNestedInput(t)

	p, err := ParsePath("$.missing")
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if _, err := p.Find(root); err == nil {
		t.Fatalf("expected a path error for missing field")
	}
}

func TestPathParseRoundTrip(t *testing.T) {
	raw := "$.outer.inner.leaf"
	p, err := ParsePathUncached(raw)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if p.Raw() != raw {
		t.Errorf("Raw() = %q, want %q", p.Raw(), raw)
	}
}

func TestPathCacheIdempotence(t *testing.T) {
	raw := "@.a.b.c"
	p1, err := ParsePath(raw)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	p2, err := ParsePath(raw)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if p1 != p2 {
		t.Errorf("ParsePath did not return the cached pointer for repeated calls")
	}
}

func TestPathParseErrors(t *testing.T) {
	cases := []string{
		"",
		"outer.inner",
		"$.a^",
		"$.a\\",
	}
	for _, raw := range cases {
		if _, err := ParsePathUncached(raw); err == nil {
			t.Errorf("ParsePathUncached(%q): expected error, got none", raw)
		}
	}
}

func TestAscendPastRootFails(t *testing.T) {
	root, _, _, _ := buildNestedInput(t)

	p, err := ParsePath("@^^^^^")
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if _, err := p.Find(root.RootChild()); err == nil {
		t.Fatalf("expected ascend-too-far to fail")
	}
}
