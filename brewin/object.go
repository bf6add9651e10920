package brewin

// Object is one level of a live instance. The most-derived level holds the
// full ancestor chain; every level shares the same origin.
type Object struct {
	Class *ClassDef

	fields    map[string]*Variable
	ancestors []*Object
	origin    *Object
}

// Variable is a typed storage slot for a field, parameter, or local.
type Variable struct {
	Type  Type
	Value Value
}

func (o *Object) Field(name string) (*Variable, bool) {
	v, ok := o.fields[name]
	return v, ok
}

// Ancestors returns the ancestor levels, nearest first.
func (o *Object) Ancestors() []*Object { return o.ancestors }

// Origin returns the most-derived level, which is what me refers to.
func (o *Object) Origin() *Object { return o.origin }

// instantiate builds the object chain for def from the most-base class down.
func instantiate(def *ClassDef) *Object {
	depth := len(def.Ancestors)
	chain := make([]*Object, depth+1)

	levels := make([]*Object, 0, depth+1)
	for i := depth - 1; i >= 0; i-- {
		levels = append(levels, newObjectLevel(def.Ancestors[i]))
	}
	levels = append(levels, newObjectLevel(def))

	for i, level := range levels {
		chain[depth-i] = level
	}
	origin := chain[0]
	for i, level := range levels {
		level.ancestors = chain[depth-i+1:]
		level.origin = origin
	}
	return origin
}

func newObjectLevel(def *ClassDef) *Object {
	obj := &Object{Class: def, fields: make(map[string]*Variable, len(def.Fields))}
	for _, field := range def.Fields {
		obj.fields[field.Name] = &Variable{Type: field.Type, Value: field.Default}
	}
	return obj
}
