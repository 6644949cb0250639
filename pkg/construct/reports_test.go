package construct

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestMemoryReportsAccumulates(t *testing.T) {
	r := NewMemoryReports()
	r.AddReport(Message{Severity: SeverityWarning, Format: "value %s", Args: []string{"x"}})
	r.AddReport(Message{Severity: SeverityError, Format: "value %s", Args: []string{"y"}})

	if len(r.Reports()) != 2 {
		t.Fatalf("expected 2 reports, got %d", len(r.Reports()))
	}
	if !r.HasSeverity(SeverityError) {
		t.Errorf("expected HasSeverity(error) to be true")
	}
	if r.HasSeverity(SeverityFatal) {
		t.Errorf("expected HasSeverity(fatal) to be false")
	}
}

func TestMessageRender(t *testing.T) {
	m := Message{Format: "type %s, should be %s", Args: []string{"boolean", "string"}}
	want := "type boolean, should be string"
	if got := m.Render(); got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func TestNopReportsDiscards(t *testing.T) {
	r := NewNopReports()
	r.AddReport(Message{Severity: SeverityFatal, Format: "x"})
	if len(r.Reports()) != 0 {
		t.Errorf("expected NopReports to discard everything")
	}
}

func TestMemoryStatsHierarchicalKeys(t *testing.T) {
	s := NewMemoryStats()
	s.addStat(1, "types", "string")
	s.addStat(1, "types", "string")
	s.addStat(1, "keys", "name")

	if got := s.Get("types", "string"); got != 2 {
		t.Errorf("types.string = %d, want 2", got)
	}
	if got := s.Get("keys", "name"); got != 1 {
		t.Errorf("keys.name = %d, want 1", got)
	}
	if got := s.Get("types", "missing"); got != 0 {
		t.Errorf("unset counter should read 0, got %d", got)
	}
}

func TestNopStatsDiscards(t *testing.T) {
	s := NewNopStats()
	s.addStat(5, "types", "string")
	if got := s.Get("types", "string"); got != 0 {
		t.Errorf("expected NopStats to discard increments, got %d", got)
	}
}

func TestMemoryStatsAllSnapshot(t *testing.T) {
	s := NewMemoryStats()
	s.addStat(1, "types", "string")
	s.addStat(2, "types", "integer")

	want := map[string]int{
		"types.string":  1,
		"types.integer": 2,
	}
	if diff := cmp.Diff(want, s.All()); diff != "" {
		t.Errorf("All() mismatch (-want +got):\n%s", diff)
	}
}

func TestMemoryReportsDiffIgnoresContext(t *testing.T) {
	a := NewArena()
	ctxHandle := a.NewString("x", `"x"`)

	r := NewMemoryReports()
	r.AddReport(Message{Severity: SeverityWarning, Context: ctxHandle, Format: "a %s", Args: []string{"1"}})

	want := []Message{
		{Severity: SeverityWarning, Format: "a %s", Args: []string{"1"}},
	}
	if diff := cmp.Diff(want, r.Reports(), cmpopts.IgnoreFields(Message{}, "Context")); diff != "" {
		t.Errorf("Reports() mismatch (-want +got):\n%s", diff)
	}
}

func TestDefaultPrettifierRendersObjects(t *testing.T) {
	a := NewArena()
	name := a.NewString("ok", `"ok"`)
	obj := a.NewObject(`{"name":"ok"}`)
	a.SetField(obj, "name", name)

	p := NewDefaultPrettifier()
	want := `{"name":"ok"}`
	if got := Render(p, obj, nil); got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func TestDefaultPrettifierAnnotatesWithExpectedType(t *testing.T) {
	a := NewArena()
	obj := a.NewObject(`{"name":"ok"}`)

	p := NewDefaultPrettifier()
	want := `{"name":"ok"} (expected object)`
	if got := Render(p, obj, NewObject()); got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func TestDefaultPrettifierUnwrapsRoot(t *testing.T) {
	a := NewArena()
	str := a.NewString("ok", `"ok"`)
	root := a.NewRoot(str)

	p := NewDefaultPrettifier()
	want := `"ok"`
	if got := Render(p, root, nil); got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}
