package brewin

type PrintStmt struct {
	Args     []Expression
	position Position
}

func (s *PrintStmt) stmtNode()     {}
func (s *PrintStmt) Pos() Position { return s.position }

type SetStmt struct {
	Name     string
	Value    Expression
	position Position
}

func (s *SetStmt) stmtNode()     {}
func (s *SetStmt) Pos() Position { return s.position }

// InputStmt reads one line of input into Name. Integer selects inputi.
type InputStmt struct {
	Name     string
	Integer  bool
	position Position
}

func (s *InputStmt) stmtNode()     {}
func (s *InputStmt) Pos() Position { return s.position }

type CallStmt struct {
	Call     *CallExpr
	position Position
}

func (s *CallStmt) stmtNode()     {}
func (s *CallStmt) Pos() Position { return s.position }

type WhileStmt struct {
	Condition Expression
	Body      Statement
	position  Position
}

func (s *WhileStmt) stmtNode()     {}
func (s *WhileStmt) Pos() Position { return s.position }

type IfStmt struct {
	Condition Expression
	Then      Statement
	Else      Statement
	position  Position
}

func (s *IfStmt) stmtNode()     {}
func (s *IfStmt) Pos() Position { return s.position }

type ReturnStmt struct {
	Value    Expression
	position Position
}

func (s *ReturnStmt) stmtNode()     {}
func (s *ReturnStmt) Pos() Position { return s.position }

type BeginStmt struct {
	Body     []Statement
	position Position
}

func (s *BeginStmt) stmtNode()     {}
func (s *BeginStmt) Pos() Position { return s.position }

type LetStmt struct {
	Locals   []LocalDecl
	Body     []Statement
	position Position
}

func (s *LetStmt) stmtNode()     {}
func (s *LetStmt) Pos() Position { return s.position }

type LocalDecl struct {
	Type     string
	Name     string
	Init     Expression
	position Position
}

func (d LocalDecl) Pos() Position { return d.position }

// StatementName returns the keyword that introduced stmt.
func StatementName(stmt Statement) string {
	switch s := stmt.(type) {
	case *PrintStmt:
		return "print"
	case *SetStmt:
		return "set"
	case *InputStmt:
		if s.Integer {
			return "inputi"
		}
		return "inputs"
	case *CallStmt:
		return "call"
	case *WhileStmt:
		return "while"
	case *IfStmt:
		return "if"
	case *ReturnStmt:
		return "return"
	case *BeginStmt:
		return "begin"
	case *LetStmt:
		return "let"
	default:
		return "statement"
	}
}
