package brewin

import "sort"

// ClassDef is the load-time description of a class. It is shared by every
// object of the class and is not modified after registration.
type ClassDef struct {
	Name       string
	Super      *ClassDef
	Ancestors  []*ClassDef
	Fields     []*FieldDef
	Methods    map[string]*MethodDef
	TypeParams []string
	Decl       *ClassDecl

	fieldIndex map[string]*FieldDef
	linked     bool
}

type FieldDef struct {
	Name    string
	Type    Type
	Default Value
	Pos     Position
}

type ParamDef struct {
	Name string
	Type Type
}

type MethodDef struct {
	Name       string
	ReturnType Type
	Params     []ParamDef
	Body       Statement
	Owner      *ClassDef
	Pos        Position
}

// IsTemplate reports whether the class is a tclass awaiting type arguments.
func (c *ClassDef) IsTemplate() bool { return c.TypeParams != nil }

func (c *ClassDef) Field(name string) (*FieldDef, bool) {
	f, ok := c.fieldIndex[name]
	return f, ok
}

func (c *ClassDef) Method(name string) (*MethodDef, bool) {
	m, ok := c.Methods[name]
	return m, ok
}

// MethodNames returns the class's own method names in sorted order.
func (c *ClassDef) MethodNames() []string {
	names := make([]string, 0, len(c.Methods))
	for name := range c.Methods {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DerivesFrom reports whether c is base or one of its descendants.
func (c *ClassDef) DerivesFrom(base *ClassDef) bool {
	if c == nil || base == nil {
		return false
	}
	if c == base {
		return true
	}
	for _, ancestor := range c.Ancestors {
		if ancestor == base {
			return true
		}
	}
	return false
}

func (m *MethodDef) qualifiedName() string {
	if m.Owner == nil {
		return m.Name
	}
	return m.Owner.Name + "." + m.Name
}

// accepts reports whether args match the method's arity and parameter types.
func (m *MethodDef) accepts(args []Value) bool {
	if len(args) != len(m.Params) {
		return false
	}
	for i, param := range m.Params {
		if !compatible(param.Type, args[i]) {
			return false
		}
	}
	return true
}
