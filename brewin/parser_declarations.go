package brewin

import (
	"strings"
)

const (
	keywordClass    = "class"
	keywordTemplate = "tclass"
	keywordInherits = "inherits"
	keywordField    = "field"
	keywordMethod   = "method"
)

// LowerClass turns a top-level class or tclass list into a declaration.
func LowerClass(node *SExpr) (*ClassDecl, error) {
	head := node.Head()
	if head != keywordClass && head != keywordTemplate {
		return nil, newError(SyntaxError, node.Pos, "expected class or tclass declaration, got %s", describeNode(node))
	}
	if len(node.List) < 2 || !node.List[1].IsSymbol() {
		return nil, newError(SyntaxError, node.Pos, "%s declaration requires a name", head)
	}
	name := node.List[1].Atom
	if err := checkDeclaredName(node.List[1], "class"); err != nil {
		return nil, err
	}

	decl := &ClassDecl{Name: name, Source: node, position: node.Pos}
	rest := node.List[2:]

	if head == keywordTemplate {
		if len(rest) == 0 || !rest[0].IsList() || len(rest[0].List) == 0 {
			return nil, newError(SyntaxError, node.Pos, "tclass %s requires a list of type parameters", name)
		}
		seen := make(map[string]bool, len(rest[0].List))
		decl.TypeParams = make([]string, 0, len(rest[0].List))
		for _, param := range rest[0].List {
			if err := checkDeclaredName(param, "type parameter"); err != nil {
				return nil, err
			}
			if seen[param.Atom] {
				return nil, newError(NameError, param.Pos, "duplicate type parameter %s in tclass %s", param.Atom, name)
			}
			seen[param.Atom] = true
			decl.TypeParams = append(decl.TypeParams, param.Atom)
		}
		rest = rest[1:]
	} else if len(rest) > 0 && rest[0].IsSymbol() && rest[0].Atom == keywordInherits {
		if len(rest) < 2 || !rest[1].IsSymbol() {
			return nil, newError(SyntaxError, rest[0].Pos, "inherits requires a base class name")
		}
		decl.Super = rest[1].Atom
		rest = rest[2:]
	}

	for _, item := range rest {
		switch item.Head() {
		case keywordField:
			field, err := lowerField(item)
			if err != nil {
				return nil, err
			}
			decl.Fields = append(decl.Fields, field)
		case keywordMethod:
			method, err := lowerMethod(item)
			if err != nil {
				return nil, err
			}
			decl.Methods = append(decl.Methods, method)
		default:
			return nil, newError(SyntaxError, item.Pos, "expected field or method in class %s, got %s", name, describeNode(item))
		}
	}
	return decl, nil
}

func lowerField(node *SExpr) (*FieldDecl, error) {
	if len(node.List) != 3 && len(node.List) != 4 {
		return nil, newError(SyntaxError, node.Pos, "field must be (field TYPE NAME [VALUE])")
	}
	if !node.List[1].IsSymbol() {
		return nil, newError(SyntaxError, node.List[1].Pos, "field type must be a name")
	}
	if err := checkDeclaredName(node.List[2], "field"); err != nil {
		return nil, err
	}
	field := &FieldDecl{Type: node.List[1].Atom, Name: node.List[2].Atom, position: node.Pos}
	if len(node.List) == 4 {
		init, err := lowerLiteral(node.List[3])
		if err != nil {
			return nil, err
		}
		field.Init = init
	}
	return field, nil
}

func lowerMethod(node *SExpr) (*MethodDecl, error) {
	if len(node.List) != 5 {
		return nil, newError(SyntaxError, node.Pos, "method must be (method RTYPE NAME (PARAMS) BODY)")
	}
	if !node.List[1].IsSymbol() {
		return nil, newError(SyntaxError, node.List[1].Pos, "method return type must be a name")
	}
	if err := checkDeclaredName(node.List[2], "method"); err != nil {
		return nil, err
	}
	method := &MethodDecl{ReturnType: node.List[1].Atom, Name: node.List[2].Atom, position: node.Pos}

	params := node.List[3]
	if !params.IsList() {
		return nil, newError(SyntaxError, params.Pos, "method %s parameters must be a list", method.Name)
	}
	for _, param := range params.List {
		if !param.IsList() || len(param.List) != 2 || !param.List[0].IsSymbol() {
			return nil, newError(SyntaxError, param.Pos, "parameter must be (TYPE NAME)")
		}
		if err := checkDeclaredName(param.List[1], "parameter"); err != nil {
			return nil, err
		}
		method.Params = append(method.Params, ParamDecl{
			Type:     param.List[0].Atom,
			Name:     param.List[1].Atom,
			position: param.Pos,
		})
	}

	body, err := lowerStatement(node.List[4])
	if err != nil {
		return nil, err
	}
	method.Body = body
	return method, nil
}

// checkDeclaredName validates a name introduced by a declaration.
func checkDeclaredName(node *SExpr, what string) error {
	if !node.IsSymbol() {
		return newError(SyntaxError, node.Pos, "%s name must be a bare name, got %s", what, describeNode(node))
	}
	if strings.Contains(node.Atom, templateSeparator) {
		return newError(SyntaxError, node.Pos, "%s name %s may not contain %q", what, node.Atom, templateSeparator)
	}
	if isLiteralAtom(node.Atom) || node.Atom == keywordMe || node.Atom == keywordSuper {
		return newError(SyntaxError, node.Pos, "%s name %s is reserved", what, node.Atom)
	}
	// Methods live in their own namespace; everything else could be
	// confused with a primitive type.
	if _, ok := primitiveType(node.Atom); ok && what != "method" {
		return newError(SyntaxError, node.Pos, "%s name %s is reserved", what, node.Atom)
	}
	return nil
}

func describeNode(node *SExpr) string {
	switch {
	case node.IsList() && node.Head() != "":
		return "(" + node.Head() + " ...)"
	case node.IsList():
		return "a list"
	case node.IsString:
		return "string \"" + node.Atom + "\""
	default:
		return node.Atom
	}
}
