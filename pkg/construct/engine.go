package construct

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/dlovans/jconstruct/internal/ingest"
)

// defaultMaxDepth bounds recursion against pathological ERedirect cycles:
// the input tree is always finite, but Mixed/Object wrappers can still
// nest a redirect cycle deeper than is useful to chase.
const defaultMaxDepth = 256

// Context holds the engine-scoped settings of a validation run: a
// recursion-depth ceiling, an optional prettifier for diagnostic
// rendering, and the identifier registry the schema was built with. The
// engine itself does not read Registry; each ERedirect resolves through
// the Registry passed to NewRedirect. The zero Context is usable with
// defaults.
type Context struct {
	Registry   *Registry
	MaxDepth   int
	Prettifier Prettifier
}

// NewContext creates a Context bound to reg, with the suggested default
// recursion depth and DefaultPrettifier, which renders each node's raw
// parser text rather than a canonical JSON re-encoding.
func NewContext(reg *Registry) *Context {
	return &Context{Registry: reg, MaxDepth: defaultMaxDepth, Prettifier: NewDefaultPrettifier()}
}

func (c *Context) maxDepth() int {
	if c == nil || c.MaxDepth <= 0 {
		return defaultMaxDepth
	}
	return c.MaxDepth
}

// Result is the return value of ValidateFromString: the
// overall verdict plus the populated reports and stats sinks, tagged with
// a run identifier so callers can correlate a Result with external logs.
type Result struct {
	RunID      string
	Valid      bool
	ReportSink ReportSink
	Stats      StatsSink
}

// Reports returns the messages accumulated during the run.
func (r Result) Reports() []Message { return r.ReportSink.Reports() }

// Validate is the engine's recursive entry point: compare
// input against expected, writing diagnostics to reports and counters to
// stats, and report whether the comparison passed overall. A nil ctx uses
// the default recursion depth; ERedirect nodes still resolve, since each
// carries the Registry it was built with.
func Validate(ctx *Context, input Handle, expected Node, reports ReportSink, stats StatsSink) bool {
	return validateDepth(ctx, input, expected, reports, stats, 0)
}

func validateDepth(ctx *Context, input Handle, expected Node, reports ReportSink, stats StatsSink, depth int) bool {
	if depth > ctx.maxDepth() {
		panic(&FaultError{Code: FaultDepthExceeded, Message: fmt.Sprintf("recursion depth exceeded (%d)", ctx.maxDepth())})
	}

	recordHit(stats, input)

	// An unknown redirect identifier is a fault, raised here before the
	// redirect's zero bitmask could turn it into an ordinary type mismatch.
	if r, isRedirect := expected.(*RedirectNode); isRedirect {
		if _, err := r.resolve(); err != nil {
			panic(err)
		}
	}

	// Step 1: nullable short-circuit.
	if input.Kind() == KindNull && expected.Nullable() {
		return true
	}

	// Step 2: type compatibility. A Mixed node reports its own
	// "must have been one of" diagnostic when no alternative overlaps.
	if input.TypeBit()&expected.typeBitmask() == 0 {
		if m, isMixed := expected.(*MixedNode); isMixed {
			return compareMixed(ctx, input, m, reports, stats, depth)
		}
		emitTypeMismatch(reports, input, expected)
		return false
	}

	// Step 3: structural dispatch.
	structuralOk := compareStructure(ctx, input, expected, reports, stats, depth)

	// Step 4: audits (must run regardless of structuralOk).
	auditsOk := true
	for _, a := range expected.Audits() {
		if !a.Run(input, reports) {
			auditsOk = false
		}
	}

	return structuralOk && auditsOk
}

func emitTypeMismatch(reports ReportSink, input Handle, expected Node) {
	if key, ok := input.ContainingField(); ok {
		reports.AddReport(Message{
			Severity: SeverityError,
			Context:  input,
			Format:   "type %s for field %s, should be %s",
			Args:     []string{input.Kind().TypeName(), key, expected.TypeName()},
		})
		return
	}
	reports.AddReport(Message{
		Severity: SeverityError,
		Context:  input,
		Format:   "type %s, should be %s",
		Args:     []string{input.Kind().TypeName(), expected.TypeName()},
	})
}

// compareStructure dispatches on expected's concrete variant.
func compareStructure(ctx *Context, input Handle, expected Node, reports ReportSink, stats StatsSink, depth int) bool {
	switch e := expected.(type) {
	case *ScalarNode:
		return compareScalar(input, e, reports)
	case *ArrayNode:
		return compareArray(ctx, input, e, reports, stats, depth)
	case *ObjectNode:
		return compareObject(ctx, input, e, reports, stats, depth)
	case *MixedNode:
		return compareMixed(ctx, input, e, reports, stats, depth)
	case *RedirectNode:
		return compareRedirect(ctx, input, e, reports, stats, depth)
	case *RootNode:
		return compareRoot(ctx, input, e, reports, stats, depth)
	default:
		panic(&FaultError{Code: FaultNotANode, Message: fmt.Sprintf("unknown Node variant %T", expected)})
	}
}

// --- 4.2 Scalar ---

func compareScalar(input Handle, expected *ScalarNode, reports ReportSink) bool {
	literal, hasLit := expected.Literal()
	if !hasLit {
		return true
	}
	if scalarsEqual(input.scalarValue(), literal) {
		return true
	}
	got := stringifyScalar(input.scalarValue())
	want := stringifyScalar(normalizeScalar(literal))
	if key, ok := input.ContainingField(); ok {
		reports.AddReport(Message{
			Severity: SeverityWarning,
			Context:  input,
			Format:   "value %s does not match the expected value %s for field %s",
			Args:     []string{got, want, key},
		})
		return false
	}
	reports.AddReport(Message{
		Severity: SeverityWarning,
		Context:  input,
		Format:   "value %s does not match the expected value %s",
		Args:     []string{got, want},
	})
	return false
}

// --- 4.3 Array ---

func compareArray(ctx *Context, input Handle, expected *ArrayNode, reports ReportSink, stats StatsSink, depth int) bool {
	ok := true
	templates := expected.Elements()
	templateUsed := make([]bool, len(templates))
	for i, el := range input.Elements() {
		matched := false
		for ti, t := range templates {
			if el.TypeBit()&t.typeBitmask() == 0 {
				continue
			}
			matched = true
			templateUsed[ti] = true
			if !validateDepth(ctx, el, t, reports, stats, depth+1) {
				ok = false
			}
		}
		if !matched {
			reports.AddReport(Message{
				Severity: SeverityWarning,
				Context:  el,
				Format:   "unexpected array element at position %s",
				Args:     []string{fmt.Sprintf("%d", i)},
			})
			ok = false
		}
	}

	// Extra templates that matched no input element are not an error by
	// default; IsStrict opts an array back into treating them as one.
	if expected.IsStrict() {
		for ti, used := range templateUsed {
			if !used {
				reports.AddReport(Message{
					Severity: SeverityWarning,
					Context:  input,
					Format:   "expected array template at position %s had no matching element",
					Args:     []string{fmt.Sprintf("%d", ti)},
				})
				ok = false
			}
		}
	}

	return ok
}

// --- 4.4 Object ---

const globalIgnoreSubstring = "comment"

func compareObject(ctx *Context, input Handle, expected *ObjectNode, reports ReportSink, stats StatsSink, depth int) bool {
	ok := true

	// Step 1: active field set, last-write-wins on key collision.
	order := make([]string, 0, len(expected.Fields()))
	active := make(map[string]Field, len(expected.Fields()))
	addField := func(f Field) {
		if _, exists := active[f.Key]; !exists {
			order = append(order, f.Key)
		}
		active[f.Key] = f
	}
	for _, f := range expected.Fields() {
		addField(f)
	}
	for _, br := range expected.Branches() {
		if br.Predicate.Test(input) {
			reports.AddReport(Message{
				Severity: SeverityDebug,
				Context:  input,
				Format:   "Successfully branched to: %s",
				Args:     []string{br.Label},
			})
			for _, f := range br.Outcomes {
				addField(f)
			}
		}
	}

	// Step 2: remaining input keys.
	remaining := make(map[string]bool)
	for _, k := range input.Keys() {
		remaining[k] = true
	}

	// Step 3: named fields, in declaration order.
	for _, key := range order {
		f := active[key]
		if f.Placeholder {
			continue
		}
		child, present := input.Field(f.Key)
		if f.Required && !present {
			ok = false
			emitMissingRequired(reports, input, f.Key)
			continue
		}
		if present {
			if !validateDepth(ctx, child, f.Value, reports, stats, depth+1) {
				ok = false
			}
			delete(remaining, f.Key)
		}
	}

	// Step 4: placeholders, first-declared-wins per remaining key. Walk
	// input.Keys() rather than ranging over the remaining map directly:
	// Go randomizes map iteration order per process run, and the engine
	// must report (and consume) keys in a stable, reproducible order.
	for _, key := range order {
		f := active[key]
		if !f.Placeholder {
			continue
		}
		for _, k := range input.Keys() {
			if !remaining[k] {
				continue
			}
			child, _ := input.Field(k)
			if child.TypeBit()&f.Value.typeBitmask() == 0 {
				continue
			}
			if !validateDepth(ctx, child, f.Value, reports, stats, depth+1) {
				ok = false
			}
			delete(remaining, k)
		}
	}

	// Step 5: globally-ignored keys, collected in input declaration order
	// for the same reproducibility reason as step 4.
	var ignored []string
	for _, k := range input.Keys() {
		if remaining[k] && strings.Contains(strings.ToLower(k), globalIgnoreSubstring) {
			ignored = append(ignored, k)
		}
	}
	for _, k := range ignored {
		delete(remaining, k)
	}
	if len(ignored) > 0 {
		reports.AddReport(Message{
			Severity: SeverityInfo,
			Context:  input,
			Format:   "ignored global keys: %s",
			Args:     []string{strings.Join(ignored, ", ")},
		})
	}

	// Step 6: unexpected keys, again in input declaration order.
	if len(remaining) > 0 {
		var unexpected []string
		for _, k := range input.Keys() {
			if remaining[k] {
				unexpected = append(unexpected, k)
			}
		}
		var accepted []string
		for _, k := range order {
			accepted = append(accepted, k)
		}
		reports.AddReport(Message{
			Severity: SeverityWarning,
			Context:  input,
			Format:   "unexpected keys %s, accepted keys are %s",
			Args:     []string{strings.Join(unexpected, ", "), strings.Join(accepted, ", ")},
		})
		ok = false
	}

	return ok
}

func emitMissingRequired(reports ReportSink, input Handle, key string) {
	if owner, ok := input.ContainingField(); ok {
		reports.AddReport(Message{
			Severity: SeverityError,
			Context:  input,
			Format:   "missing required nested field %s for object %s",
			Args:     []string{key, owner},
		})
		return
	}
	reports.AddReport(Message{
		Severity: SeverityError,
		Context:  input,
		Format:   "missing required field %s",
		Args:     []string{key},
	})
}

// --- 4.5 Mixed ---

func compareMixed(ctx *Context, input Handle, expected *MixedNode, reports ReportSink, stats StatsSink, depth int) bool {
	for _, alt := range expected.Alternatives() {
		if input.TypeBit()&alt.typeBitmask() != 0 {
			return validateDepth(ctx, input, alt, reports, stats, depth+1)
		}
	}
	names := make([]string, 0, len(expected.Alternatives()))
	for _, alt := range expected.Alternatives() {
		names = append(names, alt.TypeName())
	}
	reports.AddReport(Message{
		Severity: SeverityError,
		Context:  input,
		Format:   "invalid type %s, must have been one of: %s",
		Args:     []string{input.Kind().TypeName(), strings.Join(names, ", ")},
	})
	return false
}

// --- 4.6 Redirect / Root ---

func compareRedirect(ctx *Context, input Handle, expected *RedirectNode, reports ReportSink, stats StatsSink, depth int) bool {
	target, err := expected.resolve()
	if err != nil {
		panic(err)
	}
	return validateDepth(ctx, input, target, reports, stats, depth+1)
}

func compareRoot(ctx *Context, input Handle, expected *RootNode, reports ReportSink, stats StatsSink, depth int) bool {
	child := input
	if input.Kind() == KindRoot {
		child = input.RootChild()
	}
	return validateDepth(ctx, child, expected.Child(), reports, stats, depth+1)
}

// --- Top-level API ---

// ValidateFromString parses jsonText, wraps it in a Root I-node, and
// validates it against expected. reports/stats default to
// in-memory sinks when nil. A JSON parse failure is returned unwrapped.
// Any other fault raised during validation (e.g. an unresolved redirect,
// exceeded recursion depth) is recovered here and surfaced as an error,
// never left to crash the caller.
func ValidateFromString(ctx *Context, jsonText string, expected Node, reports ReportSink, stats StatsSink) (result Result, err error) {
	if reports == nil {
		reports = NewMemoryReports()
	}
	if stats == nil {
		stats = NewMemoryStats()
	}

	parsed, parseErr := ingest.Parse(jsonText)
	if parseErr != nil {
		return Result{}, parseErr
	}
	handle := adaptIngest(parsed)

	defer func() {
		if r := recover(); r != nil {
			if fe, isFault := r.(*FaultError); isFault {
				err = fe
				return
			}
			err = fmt.Errorf("construct: internal error: %v", r)
		}
	}()

	valid := Validate(ctx, handle, expected, reports, stats)
	return Result{
		RunID:      uuid.NewString(),
		Valid:      valid,
		ReportSink: reports,
		Stats:      stats,
	}, nil
}
