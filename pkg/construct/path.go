package construct

import (
	"strings"
	"sync"
)

// stepKind tags a parsed path step.
type stepKind int

const (
	stepRoot stepKind = iota
	stepCurrent
	stepAscend
	stepChild
)

type step struct {
	kind stepKind
	key  string // only meaningful for stepChild
}

func (s step) String() string {
	switch s.kind {
	case stepRoot:
		return "$"
	case stepCurrent:
		return "@"
	case stepAscend:
		return "^"
	case stepChild:
		return "." + s.key
	default:
		return "?"
	}
}

// Path is a parsed traversal expression in the $/@/^/.key language.
// It is a value object: two Paths parsed from the same raw string are
// interchangeable, and a Path never mutates the tree it walks.
type Path struct {
	raw   string
	steps []step
}

// Raw returns the original path text, satisfying the round-trip
// invariant "parse(p).raw == p".
func (p *Path) Raw() string { return p.raw }

// Steps returns the parsed steps, exposed for callers that want to
// describe a path (e.g. the CLI's explain-path command).
func (p *Path) Steps() []step { return p.steps }

var pathCache sync.Map // string -> *Path

// ParsePath parses raw and returns the cached Path for it, satisfying
// the cache-idempotence invariant: repeated calls with the same
// raw string return the identical *Path. The cache is purely a
// memoisation optimisation; ParsePathUncached bypasses it
// for tests that must verify correctness independent of caching.
func ParsePath(raw string) (*Path, error) {
	if cached, ok := pathCache.Load(raw); ok {
		return cached.(*Path), nil
	}
	p, err := ParsePathUncached(raw)
	if err != nil {
		return nil, err
	}
	actual, _ := pathCache.LoadOrStore(raw, p)
	return actual.(*Path), nil
}

// ParsePathUncached parses raw without consulting or populating the
// shared cache.
func ParsePathUncached(raw string) (*Path, error) {
	if raw == "" {
		return nil, &FaultError{Code: FaultPathParse, Message: "empty path"}
	}

	runes := []rune(raw)
	i := 0

	var steps []step
	var lastKind stepKind
	switch runes[0] {
	case '$':
		steps = append(steps, step{kind: stepRoot})
		lastKind = stepRoot
	case '@':
		steps = append(steps, step{kind: stepCurrent})
		lastKind = stepCurrent
	default:
		return nil, &FaultError{Code: FaultPathParse, Message: "path must start with '$' or '@': " + raw}
	}
	i++

	for i < len(runes) {
		switch runes[i] {
		case '^':
			if lastKind == stepRoot || lastKind == stepChild {
				return nil, &FaultError{Code: FaultPathParse, Message: "'^' may not follow a root or child step: " + raw}
			}
			steps = append(steps, step{kind: stepAscend})
			lastKind = stepAscend
			i++
		case '.':
			i++
			var key strings.Builder
			for i < len(runes) {
				c := runes[i]
				if c == '$' || c == '^' || c == '.' {
					break
				}
				if c == '\\' {
					i++
					if i >= len(runes) {
						return nil, &FaultError{Code: FaultPathParse, Message: "dangling escape at end of path: " + raw}
					}
					key.WriteRune(runes[i])
					i++
					continue
				}
				key.WriteRune(c)
				i++
			}
			steps = append(steps, step{kind: stepChild, key: key.String()})
			lastKind = stepChild
		default:
			return nil, &FaultError{Code: FaultPathParse, Message: "expected '.' or '^', got '" + string(runes[i]) + "': " + raw}
		}
	}

	return &Path{raw: raw, steps: steps}, nil
}

// Find evaluates the path starting at start, returning the located
// Handle or a path error. The evaluator never mutates
// the tree it walks.
func (p *Path) Find(start Handle) (Handle, error) {
	cur := start
	if cur.Kind() == KindRoot {
		cur = cur.RootChild()
	}

	for _, s := range p.steps {
		switch s.kind {
		case stepRoot:
			cur = topmost(start)
			if cur.Kind() == KindRoot {
				cur = cur.RootChild()
			}
		case stepCurrent:
			cur = start
			if cur.Kind() == KindRoot {
				cur = cur.RootChild()
			}
		case stepAscend:
			parent, ok := cur.Parent()
			if !ok || parent.Kind() == KindRoot {
				return Handle{}, &FaultError{Code: FaultPathAscend, Message: "could not ascend far enough: " + p.raw}
			}
			cur = parent
		case stepChild:
			if cur.Kind() != KindObject {
				return Handle{}, &FaultError{Code: FaultPathNotObject, Message: "target is not an object: " + p.raw}
			}
			child, ok := cur.Field(s.key)
			if !ok {
				return Handle{}, &FaultError{Code: FaultPathFieldMissing, Message: "could not find field '" + s.key + "': " + p.raw}
			}
			cur = child
		}
	}
	return cur, nil
}

// topmost walks parent links from start to the tree's topmost node
// (stopping at, but including, a Root wrapper).
func topmost(start Handle) Handle {
	cur := start
	for {
		parent, ok := cur.Parent()
		if !ok {
			return cur
		}
		cur = parent
	}
}
