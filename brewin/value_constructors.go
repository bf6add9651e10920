package brewin

func NewVoid() Value           { return Value{kind: KindVoid} }
func NewNull() Value           { return Value{kind: KindNull} }
func NewBool(b bool) Value     { return Value{kind: KindBool, data: b} }
func NewInt(i int64) Value     { return Value{kind: KindInt, data: i} }
func NewString(s string) Value { return Value{kind: KindString, data: s} }

// NewTypedNull returns a null that remembers the class of its slot.
func NewTypedNull(def *ClassDef) Value { return Value{kind: KindNull, class: def} }

func NewObject(obj *Object) Value {
	if obj == nil {
		return NewNull()
	}
	return Value{kind: KindObject, class: obj.Class, data: obj}
}
