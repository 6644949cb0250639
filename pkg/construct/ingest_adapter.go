package construct

import "github.com/dlovans/jconstruct/internal/ingest"

// adaptIngest converts an ingest.Node tree (produced by the external JSON
// parser boundary) into a fresh Arena, wraps it in a Root, and returns
// the Root Handle.
func adaptIngest(n *ingest.Node) Handle {
	a := NewArena()
	child := adaptNode(a, n)
	return a.NewRoot(child)
}

func adaptNode(a *Arena, n *ingest.Node) Handle {
	switch n.Kind {
	case ingest.KindNull:
		return a.NewNull(n.Raw)
	case ingest.KindBoolean:
		return a.NewBoolean(n.Bool, n.Raw)
	case ingest.KindInteger:
		return a.NewInteger(n.Int, n.Raw)
	case ingest.KindDouble:
		return a.NewDouble(n.Double, n.Raw)
	case ingest.KindString:
		return a.NewString(n.Str, n.Raw)
	case ingest.KindArray:
		arr := a.NewArray(n.Raw)
		for _, el := range n.Elements {
			a.AppendElement(arr, adaptNode(a, el))
		}
		return arr
	case ingest.KindObject:
		obj := a.NewObject(n.Raw)
		for _, key := range n.Keys {
			a.SetField(obj, key, adaptNode(a, n.Fields[key]))
		}
		return obj
	default:
		return a.NewNull(n.Raw)
	}
}
