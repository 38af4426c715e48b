package chessql

// Expr is a node of the parsed query expression tree.
type Expr interface {
	exprNode()
}

// And is a conjunction of two or more operands.
type And struct {
	Operands []Expr
}

// Or is a disjunction of two or more operands.
type Or struct {
	Operands []Expr
}

// Not negates its operand.
type Not struct {
	Operand Expr
}

// Comparison compares a whitelisted field against a literal value.
// Value is an int64 or a string, bound as a SQL parameter.
type Comparison struct {
	Field string
	Op    string
	Value any
}

// In tests a field against a bracketed list of literals.
type In struct {
	Field  string
	Values []any
}

// MotifPredicate is motif(name): the game contains the named motif.
type MotifPredicate struct {
	Name string
}

// Sequence is sequence(m1, m2, ...): the named motifs occur on
// consecutive plies of the same side.
type Sequence struct {
	Names []string
}

func (*And) exprNode()            {}
func (*Or) exprNode()             {}
func (*Not) exprNode()            {}
func (*Comparison) exprNode()     {}
func (*In) exprNode()             {}
func (*MotifPredicate) exprNode() {}
func (*Sequence) exprNode()       {}

// OrderBy sorts result games by their per-game occurrence count of a
// motif.
type OrderBy struct {
	Motif     string
	Ascending bool
}

// Query is a parsed ChessQL query: a boolean expression plus an
// optional trailing ORDER BY clause.
type Query struct {
	Expr    Expr
	OrderBy *OrderBy
}
