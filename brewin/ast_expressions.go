package brewin

type Identifier struct {
	Name     string
	position Position
}

func (e *Identifier) exprNode()     {}
func (e *Identifier) Pos() Position { return e.position }

type IntLiteral struct {
	Value    int64
	position Position
}

func (e *IntLiteral) exprNode()     {}
func (e *IntLiteral) Pos() Position { return e.position }

type StringLiteral struct {
	Value    string
	position Position
}

func (e *StringLiteral) exprNode()     {}
func (e *StringLiteral) Pos() Position { return e.position }

type BoolLiteral struct {
	Value    bool
	position Position
}

func (e *BoolLiteral) exprNode()     {}
func (e *BoolLiteral) Pos() Position { return e.position }

type NullLiteral struct {
	position Position
}

func (e *NullLiteral) exprNode()     {}
func (e *NullLiteral) Pos() Position { return e.position }

// MeExpr refers to the most-derived object of the running method.
type MeExpr struct {
	position Position
}

func (e *MeExpr) exprNode()     {}
func (e *MeExpr) Pos() Position { return e.position }

type BinaryExpr struct {
	Operator string
	Left     Expression
	Right    Expression
	position Position
}

func (e *BinaryExpr) exprNode()     {}
func (e *BinaryExpr) Pos() Position { return e.position }

type UnaryExpr struct {
	Operator string
	Operand  Expression
	position Position
}

func (e *UnaryExpr) exprNode()     {}
func (e *UnaryExpr) Pos() Position { return e.position }

type NewExpr struct {
	Class    string
	position Position
}

func (e *NewExpr) exprNode()     {}
func (e *NewExpr) Pos() Position { return e.position }

// CallExpr invokes Method on Target. Super calls leave Target nil.
type CallExpr struct {
	Target   Expression
	Super    bool
	Method   string
	Args     []Expression
	position Position
}

func (e *CallExpr) exprNode()     {}
func (e *CallExpr) Pos() Position { return e.position }
