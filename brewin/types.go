package brewin

import "fmt"

// TypeKind classifies a declared type.
type TypeKind int

const (
	TypeInt TypeKind = iota
	TypeString
	TypeBool
	TypeVoid
	TypeClass
)

const (
	typeNameInt    = "int"
	typeNameString = "string"
	typeNameBool   = "bool"
	typeNameVoid   = "void"
)

// Type is a declared type: a primitive, void, or a class.
type Type struct {
	Kind  TypeKind
	Class *ClassDef
}

var (
	IntType    = Type{Kind: TypeInt}
	StringType = Type{Kind: TypeString}
	BoolType   = Type{Kind: TypeBool}
	VoidType   = Type{Kind: TypeVoid}
)

func ClassType(def *ClassDef) Type { return Type{Kind: TypeClass, Class: def} }

func (t Type) String() string {
	switch t.Kind {
	case TypeInt:
		return typeNameInt
	case TypeString:
		return typeNameString
	case TypeBool:
		return typeNameBool
	case TypeVoid:
		return typeNameVoid
	case TypeClass:
		if t.Class == nil {
			return "<class>"
		}
		return t.Class.Name
	default:
		return fmt.Sprintf("<type %d>", int(t.Kind))
	}
}

// Zero returns the default value stored in a slot of type t.
func (t Type) Zero() Value {
	switch t.Kind {
	case TypeInt:
		return NewInt(0)
	case TypeString:
		return NewString("")
	case TypeBool:
		return NewBool(false)
	case TypeClass:
		return NewTypedNull(t.Class)
	default:
		return NewVoid()
	}
}

func primitiveType(name string) (Type, bool) {
	switch name {
	case typeNameInt:
		return IntType, true
	case typeNameString:
		return StringType, true
	case typeNameBool:
		return BoolType, true
	case typeNameVoid:
		return VoidType, true
	}
	return Type{}, false
}
