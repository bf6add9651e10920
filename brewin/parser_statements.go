package brewin

func lowerStatement(node *SExpr) (Statement, error) {
	if !node.IsList() {
		return nil, newError(SyntaxError, node.Pos, "expected a statement, got %s", describeNode(node))
	}
	head := node.Head()
	if head == "" {
		return nil, newError(SyntaxError, node.Pos, "statement must start with a keyword")
	}
	args := node.List[1:]

	switch head {
	case "print":
		stmt := &PrintStmt{position: node.Pos}
		for _, arg := range args {
			expr, err := lowerExpression(arg)
			if err != nil {
				return nil, err
			}
			stmt.Args = append(stmt.Args, expr)
		}
		return stmt, nil
	case "set":
		if len(args) != 2 || !args[0].IsSymbol() {
			return nil, newError(SyntaxError, node.Pos, "set must be (set NAME EXPR)")
		}
		value, err := lowerExpression(args[1])
		if err != nil {
			return nil, err
		}
		return &SetStmt{Name: args[0].Atom, Value: value, position: node.Pos}, nil
	case "inputi", "inputs":
		if len(args) != 1 || !args[0].IsSymbol() {
			return nil, newError(SyntaxError, node.Pos, "%s must be (%s NAME)", head, head)
		}
		return &InputStmt{Name: args[0].Atom, Integer: head == "inputi", position: node.Pos}, nil
	case "call":
		call, err := lowerCall(node)
		if err != nil {
			return nil, err
		}
		return &CallStmt{Call: call, position: node.Pos}, nil
	case "while":
		if len(args) != 2 {
			return nil, newError(SyntaxError, node.Pos, "while must be (while COND STMT)")
		}
		cond, err := lowerExpression(args[0])
		if err != nil {
			return nil, err
		}
		body, err := lowerStatement(args[1])
		if err != nil {
			return nil, err
		}
		return &WhileStmt{Condition: cond, Body: body, position: node.Pos}, nil
	case "if":
		if len(args) != 2 && len(args) != 3 {
			return nil, newError(SyntaxError, node.Pos, "if must be (if COND THEN [ELSE])")
		}
		cond, err := lowerExpression(args[0])
		if err != nil {
			return nil, err
		}
		then, err := lowerStatement(args[1])
		if err != nil {
			return nil, err
		}
		stmt := &IfStmt{Condition: cond, Then: then, position: node.Pos}
		if len(args) == 3 {
			if stmt.Else, err = lowerStatement(args[2]); err != nil {
				return nil, err
			}
		}
		return stmt, nil
	case "return":
		if len(args) > 1 {
			return nil, newError(SyntaxError, node.Pos, "return takes at most one expression")
		}
		stmt := &ReturnStmt{position: node.Pos}
		if len(args) == 1 {
			value, err := lowerExpression(args[0])
			if err != nil {
				return nil, err
			}
			stmt.Value = value
		}
		return stmt, nil
	case "begin":
		if len(args) == 0 {
			return nil, newError(SyntaxError, node.Pos, "begin requires at least one statement")
		}
		body, err := lowerStatements(args)
		if err != nil {
			return nil, err
		}
		return &BeginStmt{Body: body, position: node.Pos}, nil
	case "let":
		return lowerLet(node)
	default:
		return nil, newError(SyntaxError, node.Pos, "unknown statement %s", head)
	}
}

func lowerStatements(nodes []*SExpr) ([]Statement, error) {
	out := make([]Statement, 0, len(nodes))
	for _, node := range nodes {
		stmt, err := lowerStatement(node)
		if err != nil {
			return nil, err
		}
		out = append(out, stmt)
	}
	return out, nil
}

func lowerLet(node *SExpr) (Statement, error) {
	if len(node.List) < 2 || !node.List[1].IsList() {
		return nil, newError(SyntaxError, node.Pos, "let must be (let ((TYPE NAME [VALUE]) ...) STMT ...)")
	}
	stmt := &LetStmt{position: node.Pos}
	for _, local := range node.List[1].List {
		if !local.IsList() || (len(local.List) != 2 && len(local.List) != 3) || !local.List[0].IsSymbol() {
			return nil, newError(SyntaxError, local.Pos, "local must be (TYPE NAME [VALUE])")
		}
		if err := checkDeclaredName(local.List[1], "local"); err != nil {
			return nil, err
		}
		decl := LocalDecl{Type: local.List[0].Atom, Name: local.List[1].Atom, position: local.Pos}
		if len(local.List) == 3 {
			init, err := lowerExpression(local.List[2])
			if err != nil {
				return nil, err
			}
			decl.Init = init
		}
		stmt.Locals = append(stmt.Locals, decl)
	}
	body, err := lowerStatements(node.List[2:])
	if err != nil {
		return nil, err
	}
	stmt.Body = body
	return stmt, nil
}
