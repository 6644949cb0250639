package construct

import "fmt"

// Prettifier renders fragments of an input document for inclusion in
// diagnostic output. It never participates in validation logic: the
// engine only needs a short human-readable snippet to describe "the node
// at fault," and each hook below covers one shape that snippet can take.
// A nil Prettifier is treated as DefaultPrettifier by Render.
type Prettifier interface {
	// Prettify renders a node's raw captured text when none of the more
	// specific hooks below apply (e.g. a null node).
	Prettify(raw string) string
	// PrettifyKey renders an object field's key.
	PrettifyKey(raw string) string
	// PrettifyValue renders a scalar's raw captured text.
	PrettifyValue(raw string) string
	// PrettifyObject renders an object's raw captured text. expected is
	// the schema node it was (or would be) compared against, or nil if
	// none is known at the call site.
	PrettifyObject(raw string, expected Node) string
	// PrettifyArray renders an array's raw captured text, under the same
	// expected convention as PrettifyObject.
	PrettifyArray(raw string, expected Node) string
}

// DefaultPrettifier renders a node as its captured raw text, annotated
// with the expected schema type when one is known, the fallback used
// when no caller-supplied prettifier is configured.
type DefaultPrettifier struct{}

// NewDefaultPrettifier returns the canonical fallback Prettifier.
func NewDefaultPrettifier() DefaultPrettifier { return DefaultPrettifier{} }

func (DefaultPrettifier) Prettify(raw string) string { return raw }

func (DefaultPrettifier) PrettifyKey(raw string) string {
	return fmt.Sprintf("%q", raw)
}

func (DefaultPrettifier) PrettifyValue(raw string) string { return raw }

func (DefaultPrettifier) PrettifyObject(raw string, expected Node) string {
	return annotateWithExpected(raw, expected)
}

func (DefaultPrettifier) PrettifyArray(raw string, expected Node) string {
	return annotateWithExpected(raw, expected)
}

func annotateWithExpected(raw string, expected Node) string {
	if expected == nil {
		return raw
	}
	return fmt.Sprintf("%s (expected %s)", raw, expected.TypeName())
}

// Render is how a Message's Context Handle actually becomes diagnostic
// text: it descends to the node p should describe and dispatches to the
// matching hook. expected is the schema node h was matched against, when
// the caller has one; it may be nil.
func Render(p Prettifier, h Handle, expected Node) string {
	if p == nil {
		p = NewDefaultPrettifier()
	}
	if !h.Valid() {
		return p.Prettify("<invalid>")
	}
	if h.Kind() == KindRoot {
		var childExpected Node
		if r, ok := expected.(*RootNode); ok {
			childExpected = r.Child()
		}
		return Render(p, h.RootChild(), childExpected)
	}
	switch h.Kind() {
	case KindObject:
		return p.PrettifyObject(h.Raw(), expected)
	case KindArray:
		return p.PrettifyArray(h.Raw(), expected)
	default:
		return p.PrettifyValue(h.Raw())
	}
}
