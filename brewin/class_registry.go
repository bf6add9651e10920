package brewin

import (
	"strings"
	"sync"
)

// classRegistry maps class names to definitions. Declared classes are
// fixed after load; template instances are added on first use.
type classRegistry struct {
	mu sync.Mutex

	classes      map[string]*ClassDef
	order        []*ClassDef
	instances    map[string]*ClassDef
	maxInstances int

	// expanding lists the instance keys cached by the template expansion
	// in progress, outermost first.
	expanding []string
}

func newClassRegistry(maxInstances int) *classRegistry {
	return &classRegistry{
		classes:      make(map[string]*ClassDef),
		instances:    make(map[string]*ClassDef),
		maxInstances: maxInstances,
	}
}

// loadClasses registers every declaration, then links inheritance and
// resolves member types.
func loadClasses(trees []*SExpr, maxInstances int) (*classRegistry, error) {
	r := newClassRegistry(maxInstances)

	for _, tree := range trees {
		decl, err := LowerClass(tree)
		if err != nil {
			return nil, err
		}
		if _, exists := r.classes[decl.Name]; exists {
			return nil, newError(TypeError, decl.Pos(), "duplicate class %s", decl.Name)
		}
		def := &ClassDef{Name: decl.Name, Decl: decl, TypeParams: decl.TypeParams}
		r.classes[decl.Name] = def
		r.order = append(r.order, def)
		loadLog.Debugf("registered %s %s", declKeyword(decl), decl.Name)
	}

	for _, def := range r.order {
		if def.IsTemplate() {
			continue
		}
		if err := r.link(def, map[*ClassDef]bool{}); err != nil {
			return nil, err
		}
	}
	for _, def := range r.order {
		if def.IsTemplate() {
			continue
		}
		if err := r.populate(def); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func declKeyword(decl *ClassDecl) string {
	if decl.IsTemplate() {
		return keywordTemplate
	}
	return keywordClass
}

func (r *classRegistry) link(def *ClassDef, visiting map[*ClassDef]bool) error {
	if def.linked {
		return nil
	}
	if visiting[def] {
		return newError(TypeError, def.Decl.Pos(), "class %s inherits from itself", def.Name)
	}
	visiting[def] = true

	if name := def.Decl.Super; name != "" {
		base, ok := r.classes[name]
		if !ok {
			return newError(NameError, def.Decl.Pos(), "class %s inherits from undeclared class %s", def.Name, name)
		}
		if base.IsTemplate() {
			return newError(TypeError, def.Decl.Pos(), "class %s cannot inherit from template %s", def.Name, name)
		}
		if err := r.link(base, visiting); err != nil {
			return err
		}
		def.Super = base
		def.Ancestors = make([]*ClassDef, 0, len(base.Ancestors)+1)
		def.Ancestors = append(def.Ancestors, base)
		def.Ancestors = append(def.Ancestors, base.Ancestors...)
	}
	def.linked = true
	return nil
}

// populate resolves the declared fields and methods of a linked class.
func (r *classRegistry) populate(def *ClassDef) error {
	decl := def.Decl
	def.Methods = make(map[string]*MethodDef, len(decl.Methods))
	def.fieldIndex = make(map[string]*FieldDef, len(decl.Fields))
	def.Fields = make([]*FieldDef, 0, len(decl.Fields))

	for _, fd := range decl.Fields {
		if _, dup := def.fieldIndex[fd.Name]; dup {
			return newError(NameError, fd.Pos(), "duplicate field %s in class %s", fd.Name, def.Name)
		}
		typ, err := r.resolveTypeLocked(fd.Type, fd.Pos(), false)
		if err != nil {
			return err
		}
		value := typ.Zero()
		if fd.Init != nil {
			init := literalValue(fd.Init)
			if !compatible(typ, init) {
				return newError(TypeError, fd.Pos(), "field %s declared %s cannot hold %s", fd.Name, typ, init.TypeName())
			}
			value = coerce(typ, init)
		}
		field := &FieldDef{Name: fd.Name, Type: typ, Default: value, Pos: fd.Pos()}
		def.fieldIndex[fd.Name] = field
		def.Fields = append(def.Fields, field)
	}

	for _, md := range decl.Methods {
		if _, dup := def.Methods[md.Name]; dup {
			return newError(NameError, md.Pos(), "duplicate method %s in class %s", md.Name, def.Name)
		}
		ret, err := r.resolveTypeLocked(md.ReturnType, md.Pos(), true)
		if err != nil {
			return err
		}
		method := &MethodDef{Name: md.Name, ReturnType: ret, Body: md.Body, Owner: def, Pos: md.Pos()}
		seen := make(map[string]bool, len(md.Params))
		for _, pd := range md.Params {
			if seen[pd.Name] {
				return newError(NameError, pd.Pos(), "duplicate parameter %s in method %s", pd.Name, method.qualifiedName())
			}
			seen[pd.Name] = true
			typ, err := r.resolveTypeLocked(pd.Type, pd.Pos(), false)
			if err != nil {
				return err
			}
			method.Params = append(method.Params, ParamDef{Name: pd.Name, Type: typ})
		}
		def.Methods[md.Name] = method
	}
	return nil
}

func literalValue(expr Expression) Value {
	switch lit := expr.(type) {
	case *IntLiteral:
		return NewInt(lit.Value)
	case *StringLiteral:
		return NewString(lit.Value)
	case *BoolLiteral:
		return NewBool(lit.Value)
	default:
		return NewNull()
	}
}

// lookup returns a declared class or template by exact name.
func (r *classRegistry) lookup(name string) (*ClassDef, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if def, ok := r.classes[name]; ok {
		return def, true
	}
	def, ok := r.instances[name]
	return def, ok
}

// resolveType turns a type name into a Type, instantiating templates.
func (r *classRegistry) resolveType(name string, pos Position, allowVoid bool) (Type, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.resolveTypeLocked(name, pos, allowVoid)
}

func (r *classRegistry) resolveTypeLocked(name string, pos Position, allowVoid bool) (Type, error) {
	if typ, ok := primitiveType(name); ok {
		if typ.Kind == TypeVoid && !allowVoid {
			return Type{}, newError(TypeError, pos, "void is only valid as a return type")
		}
		return typ, nil
	}
	if strings.Contains(name, templateSeparator) {
		def, err := r.instantiateLocked(name, pos, TypeError)
		if err != nil {
			return Type{}, err
		}
		return ClassType(def), nil
	}
	def, ok := r.classes[name]
	if !ok {
		return Type{}, newError(TypeError, pos, "unknown type %s", name)
	}
	if def.IsTemplate() {
		return Type{}, newError(TypeError, pos, "template %s requires type arguments", name)
	}
	return ClassType(def), nil
}

// classForNew resolves the operand of a new expression.
func (r *classRegistry) classForNew(name string, pos Position) (*ClassDef, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if strings.Contains(name, templateSeparator) {
		return r.instantiateLocked(name, pos, NameError)
	}
	def, ok := r.classes[name]
	if !ok {
		return nil, newError(NameError, pos, "undeclared class %s", name)
	}
	if def.IsTemplate() {
		return nil, newError(TypeError, pos, "template %s requires type arguments", name)
	}
	return def, nil
}

// declared returns the program's declarations in source order.
func (r *classRegistry) declared() []*ClassDef {
	out := make([]*ClassDef, len(r.order))
	copy(out, r.order)
	return out
}

func (r *classRegistry) instanceCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.instances)
}
