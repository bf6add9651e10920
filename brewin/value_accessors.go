package brewin

import (
	"strconv"
)

func (v Value) Kind() ValueKind { return v.kind }

func (v Value) Int() int64 {
	n, _ := v.data.(int64)
	return n
}

func (v Value) Bool() bool {
	b, _ := v.data.(bool)
	return b
}

func (v Value) Str() string {
	s, _ := v.data.(string)
	return s
}

// Object returns the referenced object, or nil for anything else.
func (v Value) Object() *Object {
	obj, _ := v.data.(*Object)
	return obj
}

// Class returns the runtime class of an object or the declared class of a
// typed null.
func (v Value) Class() *ClassDef { return v.class }

func (v Value) IsNull() bool { return v.kind == KindNull }
func (v Value) IsVoid() bool { return v.kind == KindVoid }

// IsReference reports whether v may sit in a class-typed slot.
func (v Value) IsReference() bool { return v.kind == KindNull || v.kind == KindObject }

// TypeName describes the runtime type for error messages.
func (v Value) TypeName() string {
	switch v.kind {
	case KindObject:
		return v.class.Name
	case KindNull:
		if v.class != nil {
			return "null " + v.class.Name
		}
		return "null"
	default:
		return v.kind.String()
	}
}

// String renders v the way print does.
func (v Value) String() string {
	switch v.kind {
	case KindBool:
		if v.Bool() {
			return keywordTrue
		}
		return keywordFalse
	case KindInt:
		return strconv.FormatInt(v.Int(), 10)
	case KindString:
		return v.Str()
	case KindNull:
		return keywordNull
	case KindObject:
		return "<" + v.class.Name + ">"
	default:
		return "<void>"
	}
}
