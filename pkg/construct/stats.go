package construct

import "strings"

// StatsSink accumulates hierarchical hit counters during validation,
// keyed by a dotted path such as "types.object" or "keys.name". Each full
// path is its own counter: incrementing "types.object" leaves "types"
// unchanged.
type StatsSink interface {
	addStat(delta int, path ...string)
	Get(path ...string) int
}

// MemoryStats is a StatsSink backed by a flat map keyed on the dotted
// path, the most straightforward implementation of the contract.
type MemoryStats struct {
	counts map[string]int
}

// NewMemoryStats creates an empty stats sink.
func NewMemoryStats() *MemoryStats {
	return &MemoryStats{counts: make(map[string]int)}
}

func key(path []string) string { return strings.Join(path, ".") }

func (s *MemoryStats) addStat(delta int, path ...string) {
	s.counts[key(path)] += delta
}

// Get returns the current counter value for path, or 0 if never touched.
func (s *MemoryStats) Get(path ...string) int {
	return s.counts[key(path)]
}

// All returns a copy of every counter currently recorded, for inspection
// or prettified reporting.
func (s *MemoryStats) All() map[string]int {
	out := make(map[string]int, len(s.counts))
	for k, v := range s.counts {
		out[k] = v
	}
	return out
}

// NopStats discards every increment; use when stats are not needed and
// the bookkeeping overhead should be skipped.
type NopStats struct{}

func NewNopStats() NopStats { return NopStats{} }

func (NopStats) addStat(int, ...string) {}
func (NopStats) Get(...string) int      { return 0 }

// recordHit updates the hierarchical counter names for a
// single input node visited during validation: types.<kind>,
// values.<kind>.<stringified value> for scalars, elements.<kind> for
// array members, fields.<kind> and keys.<key> for object fields, and
// root.type.<kind> for the document root.
func recordHit(stats StatsSink, input Handle) {
	kindName := input.Kind().TypeName()
	stats.addStat(1, "types", kindName)

	if input.TypeBit()&SCALAR != 0 {
		stats.addStat(1, "values", kindName, stringifyScalar(input.scalarValue()))
	}

	if _, ok := input.ArrayIndex(); ok {
		stats.addStat(1, "elements", kindName)
	}

	if key, ok := input.ContainingField(); ok {
		stats.addStat(1, "fields", kindName)
		stats.addStat(1, "keys", key)
	}

	if input.Kind() == KindRoot {
		stats.addStat(1, "root", "type", input.RootChild().Kind().TypeName())
	}
}
