package brewin

type ValueKind int

const (
	KindVoid ValueKind = iota
	KindNull
	KindBool
	KindInt
	KindString
	KindObject
)

func (k ValueKind) String() string {
	switch k {
	case KindVoid:
		return "void"
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindString:
		return "string"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Value is a runtime value. A null may carry the class it was declared
// with; an untyped null has no class.
type Value struct {
	kind  ValueKind
	class *ClassDef
	data  any
}
