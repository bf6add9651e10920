package brewin

type Node interface {
	Pos() Position
}

type Statement interface {
	Node
	stmtNode()
}

type Expression interface {
	Node
	exprNode()
}

// ClassDecl is a lowered class or template declaration. Types are still
// spelled as written; they are resolved when the class is loaded.
type ClassDecl struct {
	Name       string
	Super      string
	TypeParams []string
	Fields     []*FieldDecl
	Methods    []*MethodDecl
	Source     *SExpr
	position   Position
}

func (d *ClassDecl) Pos() Position { return d.position }

// IsTemplate reports whether the declaration came from a tclass form.
func (d *ClassDecl) IsTemplate() bool { return d.TypeParams != nil }

type FieldDecl struct {
	Type     string
	Name     string
	Init     Expression
	position Position
}

func (d *FieldDecl) Pos() Position { return d.position }

type MethodDecl struct {
	ReturnType string
	Name       string
	Params     []ParamDecl
	Body       Statement
	position   Position
}

func (d *MethodDecl) Pos() Position { return d.position }

type ParamDecl struct {
	Type     string
	Name     string
	position Position
}

func (d ParamDecl) Pos() Position { return d.position }
