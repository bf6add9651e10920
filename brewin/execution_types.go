package brewin

// compatible reports whether val may be stored in a slot declared as t.
func compatible(t Type, val Value) bool {
	switch t.Kind {
	case TypeInt:
		return val.kind == KindInt
	case TypeString:
		return val.kind == KindString
	case TypeBool:
		return val.kind == KindBool
	case TypeVoid:
		return val.kind == KindVoid
	case TypeClass:
		switch val.kind {
		case KindNull:
			return val.class == nil || val.class.DerivesFrom(t.Class)
		case KindObject:
			return val.class.DerivesFrom(t.Class)
		}
	}
	return false
}

// coerce adapts a compatible value to its slot. Nulls take the slot's class.
func coerce(t Type, val Value) Value {
	if t.Kind == TypeClass && val.kind == KindNull {
		return NewTypedNull(t.Class)
	}
	return val
}
