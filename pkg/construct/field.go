package construct

// Field is a (key, value, required, placeholder) tuple inside an
// EObject. A placeholder field's key is only a label: it matches any
// remaining input field whose value matches the template, rather than
// one named field.
type Field struct {
	Key         string
	Value       Node
	Required    bool
	Placeholder bool
}

// NewField builds a named field.
func NewField(key string, value Node, required bool) Field {
	return Field{Key: key, Value: value, Required: required}
}

// NewPlaceholderField builds a placeholder field. label is descriptive
// only; it plays no role in matching.
func NewPlaceholderField(label string, value Node, required bool) Field {
	return Field{Key: label, Value: value, Required: required, Placeholder: true}
}

// Branch is a (label, predicate, outcomes) conditional extension of an
// EObject's field set. When Predicate succeeds
// against the input being validated, Outcomes are unioned into the
// active field set for that pass; outcomes override base fields with
// the same key (last-write-wins).
type Branch struct {
	Label     string
	Predicate Predicate
	Outcomes  []Field
}
