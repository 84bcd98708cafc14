package tree

// CompilationUnit is the root of a parsed source file.
type CompilationUnit struct {
	Meta
	Path       string
	Statements []*RightPadded[Statement]
	EOF        Space
}

// Block is a brace-delimited statement list. End is the space before "}".
type Block struct {
	Meta
	Statements []*RightPadded[Statement]
	End        Space
}

// VariableDeclaration is "let|const|var name [= init]".
type VariableDeclaration struct {
	Meta
	Keyword     string
	Name        *Identifier
	Initializer *LeftPadded[Expression]
}

// FunctionDeclaration is "function name(params) body".
type FunctionDeclaration struct {
	Meta
	Name       *Identifier
	Parameters *Container[Expression]
	Body       *Block
}

// Return is "return [expr]".
type Return struct {
	Meta
	Expression Expression
}

// If is "if (cond) then [else]".
type If struct {
	Meta
	Condition *Parentheses
	Then      *RightPadded[Statement]
	Else      *Else
}

// Else is the "else body" tail of an If; its prefix is the space before "else".
type Else struct {
	Meta
	Body *RightPadded[Statement]
}

// Switch is "switch (selector) { cases }". Cases holds only Case statements.
type Switch struct {
	Meta
	Selector *Parentheses
	Cases    *Block
}

// Case is "case expr:" or "default:" followed by its statements.
// Colon is the space before ":".
type Case struct {
	Meta
	Default    bool
	Expression Expression
	Colon      Space
	Body       []*RightPadded[Statement]
}

// Identifier is a name.
type Identifier struct {
	Meta
	Name string
	Type *Type
}

// LiteralKind classifies a Literal.
type LiteralKind int

const (
	LiteralNumber LiteralKind = iota
	LiteralString
	LiteralBoolean
	LiteralNull
)

// Literal is a constant; Source is its exact text.
type Literal struct {
	Meta
	Source      string
	LiteralKind LiteralKind
	Type        *Type
}

// Unary is a prefix operator applied to an operand.
type Unary struct {
	Meta
	Operator string
	Operand  Expression
}

// Binary is "left op right". The operator's leading space lives in the
// LeftPadded so that a broken line before the operator is addressable.
type Binary struct {
	Meta
	Left     Expression
	Operator *LeftPadded[string]
	Right    Expression
	Type     *Type
}

// Assignment is "variable = value".
type Assignment struct {
	Meta
	Variable Expression
	Value    *LeftPadded[Expression]
}

// FieldAccess is "target.name"; the LeftPadded holds the space before ".".
type FieldAccess struct {
	Meta
	Target Expression
	Name   *LeftPadded[*Identifier]
}

// MethodInvocation is "[select.]name(args)". Select's After is the space
// before ".".
type MethodInvocation struct {
	Meta
	Select     *RightPadded[Expression]
	Name       *Identifier
	Arguments  *Container[Expression]
	MethodType *Type
}

// Parentheses is "( expr )".
type Parentheses struct {
	Meta
	Tree *RightPadded[Expression]
}

// ArrayLiteral is "[ elems ]".
type ArrayLiteral struct {
	Meta
	Elements *Container[Expression]
}

// Empty stands for nothing: the sole element of an empty container or an
// empty statement.
type Empty struct {
	Meta
}

func (*CompilationUnit) Kind() Kind     { return KindCompilationUnit }
func (*Block) Kind() Kind               { return KindBlock }
func (*VariableDeclaration) Kind() Kind { return KindVariableDeclaration }
func (*FunctionDeclaration) Kind() Kind { return KindFunctionDeclaration }
func (*Return) Kind() Kind              { return KindReturn }
func (*If) Kind() Kind                  { return KindIf }
func (*Else) Kind() Kind                { return KindElse }
func (*Switch) Kind() Kind              { return KindSwitch }
func (*Case) Kind() Kind                { return KindCase }
func (*Identifier) Kind() Kind          { return KindIdentifier }
func (*Literal) Kind() Kind             { return KindLiteral }
func (*Unary) Kind() Kind               { return KindUnary }
func (*Binary) Kind() Kind              { return KindBinary }
func (*Assignment) Kind() Kind          { return KindAssignment }
func (*FieldAccess) Kind() Kind         { return KindFieldAccess }
func (*MethodInvocation) Kind() Kind    { return KindMethodInvocation }
func (*Parentheses) Kind() Kind         { return KindParentheses }
func (*ArrayLiteral) Kind() Kind        { return KindArrayLiteral }
func (*Empty) Kind() Kind               { return KindEmpty }

func (n *CompilationUnit) withMeta(m Meta) Node     { c := *n; c.Meta = m; return &c }
func (n *Block) withMeta(m Meta) Node               { c := *n; c.Meta = m; return &c }
func (n *VariableDeclaration) withMeta(m Meta) Node { c := *n; c.Meta = m; return &c }
func (n *FunctionDeclaration) withMeta(m Meta) Node { c := *n; c.Meta = m; return &c }
func (n *Return) withMeta(m Meta) Node              { c := *n; c.Meta = m; return &c }
func (n *If) withMeta(m Meta) Node                  { c := *n; c.Meta = m; return &c }
func (n *Else) withMeta(m Meta) Node                { c := *n; c.Meta = m; return &c }
func (n *Switch) withMeta(m Meta) Node              { c := *n; c.Meta = m; return &c }
func (n *Case) withMeta(m Meta) Node                { c := *n; c.Meta = m; return &c }
func (n *Identifier) withMeta(m Meta) Node          { c := *n; c.Meta = m; return &c }
func (n *Literal) withMeta(m Meta) Node             { c := *n; c.Meta = m; return &c }
func (n *Unary) withMeta(m Meta) Node               { c := *n; c.Meta = m; return &c }
func (n *Binary) withMeta(m Meta) Node              { c := *n; c.Meta = m; return &c }
func (n *Assignment) withMeta(m Meta) Node          { c := *n; c.Meta = m; return &c }
func (n *FieldAccess) withMeta(m Meta) Node         { c := *n; c.Meta = m; return &c }
func (n *MethodInvocation) withMeta(m Meta) Node    { c := *n; c.Meta = m; return &c }
func (n *Parentheses) withMeta(m Meta) Node         { c := *n; c.Meta = m; return &c }
func (n *ArrayLiteral) withMeta(m Meta) Node        { c := *n; c.Meta = m; return &c }
func (n *Empty) withMeta(m Meta) Node               { c := *n; c.Meta = m; return &c }

func (*VariableDeclaration) isStatement() {}
func (*FunctionDeclaration) isStatement() {}
func (*Return) isStatement()              {}
func (*If) isStatement()                  {}
func (*Switch) isStatement()              {}
func (*Case) isStatement()                {}
func (*Block) isStatement()               {}
func (*Identifier) isStatement()          {}
func (*Literal) isStatement()             {}
func (*Unary) isStatement()               {}
func (*Binary) isStatement()              {}
func (*Assignment) isStatement()          {}
func (*FieldAccess) isStatement()         {}
func (*MethodInvocation) isStatement()    {}
func (*Parentheses) isStatement()         {}
func (*ArrayLiteral) isStatement()        {}
func (*Empty) isStatement()               {}

func (*Identifier) isExpression()       {}
func (*Literal) isExpression()          {}
func (*Unary) isExpression()            {}
func (*Binary) isExpression()           {}
func (*Assignment) isExpression()       {}
func (*FieldAccess) isExpression()      {}
func (*MethodInvocation) isExpression() {}
func (*Parentheses) isExpression()      {}
func (*ArrayLiteral) isExpression()     {}
func (*Empty) isExpression()            {}

// Copy returns a shallow copy of n that is a distinct node reference.
func Copy[N Node](n N) N {
	return n.withMeta(n.meta()).(N)
}

// IsExpression reports whether n may stand in an expression position.
func IsExpression(n Node) bool {
	_, ok := n.(Expression)
	return ok
}
