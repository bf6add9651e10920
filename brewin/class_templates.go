package brewin

import (
	"strings"
)

const templateSeparator = "@"

// instantiateLocked returns the concrete class for a Name@T1@T2 spelling,
// expanding and caching it on first use. missing is the error kind used
// when the template itself is not declared.
func (r *classRegistry) instantiateLocked(name string, pos Position, missing ErrorKind) (*ClassDef, error) {
	parts := strings.Split(name, templateSeparator)
	templateName, args := parts[0], parts[1:]

	template, ok := r.classes[templateName]
	if !ok {
		return nil, newError(missing, pos, "undeclared template %s", templateName)
	}
	if !template.IsTemplate() {
		return nil, newError(TypeError, pos, "class %s is not a template", templateName)
	}
	if len(args) != len(template.TypeParams) {
		return nil, newError(TypeError, pos, "template %s expects %d type arguments, got %d", templateName, len(template.TypeParams), len(args))
	}

	bindings := make(map[string]string, len(args))
	for i, arg := range args {
		if arg == "" {
			return nil, newError(TypeError, pos, "empty type argument in %s", name)
		}
		if typ, ok := primitiveType(arg); ok {
			if typ.Kind == TypeVoid {
				return nil, newError(TypeError, pos, "void is not a valid type argument")
			}
		} else if def, ok := r.classes[arg]; !ok {
			return nil, newError(TypeError, pos, "unknown type argument %s in %s", arg, name)
		} else if def.IsTemplate() {
			return nil, newError(TypeError, pos, "template %s cannot be used as a type argument", arg)
		}
		bindings[template.TypeParams[i]] = arg
	}

	key := templateName + templateSeparator + strings.Join(args, templateSeparator)
	if def, ok := r.instances[key]; ok {
		loadLog.Debugf("template cache hit: %s", key)
		return def, nil
	}
	if r.maxInstances > 0 && len(r.instances) >= r.maxInstances {
		return nil, newError(FaultError, pos, "template instance limit exceeded (limit %d)", r.maxInstances)
	}
	loadLog.Debugf("instantiating template %s", key)

	decl, err := expandTemplate(template.Decl, key, bindings)
	if err != nil {
		return nil, err
	}
	def := &ClassDef{Name: key, Decl: decl, linked: true}
	r.instances[key] = def
	r.expanding = append(r.expanding, key)
	if err := r.populate(def); err != nil {
		r.discardExpanding(key)
		return nil, err
	}
	if r.expanding[0] == key {
		r.expanding = r.expanding[:0]
	}
	return def, nil
}

// discardExpanding drops every instance cached since the outermost
// expansion began once that expansion fails. Nested instances may point
// at the failed definition, so none of them can stay cached.
func (r *classRegistry) discardExpanding(key string) {
	if r.expanding[0] != key {
		return
	}
	for _, k := range r.expanding {
		delete(r.instances, k)
	}
	loadLog.Debugf("discarded %d template instance(s) after failed expansion of %s", len(r.expanding), key)
	r.expanding = r.expanding[:0]
}

// expandTemplate rewrites a template's members with concrete type names and
// lowers the result as an ordinary class named key.
func expandTemplate(template *ClassDecl, key string, bindings map[string]string) (*ClassDecl, error) {
	src := template.Source
	items := src.List[3:]
	expanded := &SExpr{list: true, Pos: src.Pos, List: make([]*SExpr, 0, len(items)+2)}
	expanded.List = append(expanded.List, &SExpr{Atom: keywordClass, Pos: src.List[0].Pos}, src.List[1].clone())
	for _, item := range items {
		copied := item.clone()
		substitute(copied, bindings)
		expanded.List = append(expanded.List, copied)
	}

	decl, err := LowerClass(expanded)
	if err != nil {
		return nil, err
	}
	decl.Name = key
	return decl, nil
}

// substitute replaces type parameter names in bare atoms, including the
// parts of @-joined type names. String literals are left alone.
func substitute(node *SExpr, bindings map[string]string) {
	if node.IsList() {
		for _, item := range node.List {
			substitute(item, bindings)
		}
		return
	}
	if node.IsString {
		return
	}
	if concrete, ok := bindings[node.Atom]; ok {
		node.Atom = concrete
		return
	}
	if !strings.Contains(node.Atom, templateSeparator) {
		return
	}
	parts := strings.Split(node.Atom, templateSeparator)
	for i, part := range parts {
		if concrete, ok := bindings[part]; ok {
			parts[i] = concrete
		}
	}
	node.Atom = strings.Join(parts, templateSeparator)
}
