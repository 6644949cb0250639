// Package ingest parses JSON text into an order-preserving generic tree.
// JSON is a strict subset of YAML, so the external parser assumed by the
// validation engine's specification is implemented here on top of
// goccy/go-yaml's AST parser: unlike encoding/json's map[string]any, its
// MappingNode retains object field declaration order, which the engine's
// input model requires.
package ingest

import (
	"fmt"

	"github.com/goccy/go-yaml/ast"
	"github.com/goccy/go-yaml/parser"
)

// Kind tags the variant of a parsed Node. It mirrors the JSON value
// kinds the engine's value model distinguishes, but this package stays
// independent of that model so it can be imported without creating a
// cycle; construct.adaptIngest converts a Node tree into an Arena.
type Kind int

const (
	KindNull Kind = iota
	KindBoolean
	KindInteger
	KindDouble
	KindString
	KindArray
	KindObject
)

// Node is one parsed value, with children held in declaration order.
type Node struct {
	Kind Kind

	Bool   bool
	Int    int64
	Double float64
	Str    string

	Elements []*Node

	Keys   []string
	Fields map[string]*Node

	Raw string
}

// Parse parses text (assumed to be JSON, a strict subset of YAML) into a
// Node tree.
func Parse(text string) (*Node, error) {
	file, err := parser.ParseBytes([]byte(text), parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("ingest: parse: %w", err)
	}
	if len(file.Docs) == 0 || file.Docs[0].Body == nil {
		return nil, fmt.Errorf("ingest: empty document")
	}
	return convert(file.Docs[0].Body)
}

func convert(n ast.Node) (*Node, error) {
	n = unwrap(n)
	raw := n.String()

	switch t := n.(type) {
	case *ast.NullNode:
		return &Node{Kind: KindNull, Raw: raw}, nil
	case *ast.BoolNode:
		return &Node{Kind: KindBoolean, Bool: t.Value, Raw: raw}, nil
	case *ast.IntegerNode:
		v, err := toInt64(t.Value)
		if err != nil {
			return nil, fmt.Errorf("ingest: %w", err)
		}
		return &Node{Kind: KindInteger, Int: v, Raw: raw}, nil
	case *ast.FloatNode:
		return &Node{Kind: KindDouble, Double: t.Value, Raw: raw}, nil
	case *ast.StringNode:
		return &Node{Kind: KindString, Str: t.Value, Raw: raw}, nil
	case *ast.LiteralNode:
		return &Node{Kind: KindString, Str: t.Value.Value, Raw: raw}, nil
	case *ast.SequenceNode:
		elements := make([]*Node, 0, len(t.Values))
		for _, v := range t.Values {
			child, err := convert(v)
			if err != nil {
				return nil, err
			}
			elements = append(elements, child)
		}
		return &Node{Kind: KindArray, Elements: elements, Raw: raw}, nil
	case *ast.MappingNode:
		return convertMapping(t.Values, raw)
	case *ast.MappingValueNode:
		return convertMapping([]*ast.MappingValueNode{t}, raw)
	default:
		return nil, fmt.Errorf("ingest: unsupported node type %T", n)
	}
}

func convertMapping(values []*ast.MappingValueNode, raw string) (*Node, error) {
	node := &Node{Kind: KindObject, Fields: make(map[string]*Node, len(values)), Raw: raw}
	for _, mvn := range values {
		key, ok := unwrap(mvn.Key).(*ast.StringNode)
		var keyStr string
		if ok {
			keyStr = key.Value
		} else {
			keyStr = mvn.Key.String()
		}
		child, err := convert(mvn.Value)
		if err != nil {
			return nil, err
		}
		if _, exists := node.Fields[keyStr]; !exists {
			node.Keys = append(node.Keys, keyStr)
		}
		node.Fields[keyStr] = child
	}
	return node, nil
}

// unwrap strips TagNode/AnchorNode wrappers down to the underlying value
// node, matching the pattern used elsewhere in the retrieved pack for
// walking this AST. An AliasNode is not resolved; convert rejects it as
// an unsupported node type.
func unwrap(n ast.Node) ast.Node {
	for {
		switch t := n.(type) {
		case *ast.TagNode:
			n = t.Value
		case *ast.AnchorNode:
			n = t.Value
		default:
			return n
		}
	}
}

func toInt64(v any) (int64, error) {
	switch t := v.(type) {
	case int64:
		return t, nil
	case uint64:
		return int64(t), nil
	case int:
		return int64(t), nil
	default:
		return 0, fmt.Errorf("unsupported integer representation %T", v)
	}
}
