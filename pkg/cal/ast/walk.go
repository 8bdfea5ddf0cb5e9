package ast

// Inspect traverses the tree rooted at node in depth-first order, calling f
// for each node. When f returns false the node's children are skipped.
// Functions of a Program are visited in definition order.
func Inspect(node Node, f func(Node) bool) {
	if node == nil || !f(node) {
		return
	}

	switch n := node.(type) {
	case *Program:
		for _, name := range n.Order {
			Inspect(n.Functions[name], f)
		}
	case *Function:
		for _, p := range n.Parameters {
			Inspect(p, f)
		}
		for _, v := range n.Locals {
			Inspect(v, f)
		}
		inspectList(n.Statements, f)
	case *Variable:
		inspectExpr(n.Value, f)
		if n.Range != nil {
			inspectExpr(n.Range.Lower, f)
			inspectExpr(n.Range.Upper, f)
		}
	case *ArrayLiteral:
		inspectExpr(n.Lower, f)
		inspectExpr(n.Upper, f)
	case *VariableReference:
		inspectExpr(n.Index, f)
	case *MathOp:
		inspectExpr(n.Left, f)
		inspectExpr(n.Right, f)
	case *BooleanCompare:
		inspectExpr(n.Left, f)
		inspectExpr(n.Right, f)
	case *Argument:
		if n.Reference != nil {
			Inspect(n.Reference, f)
		} else {
			inspectExpr(n.Constant, f)
		}
	case *Assignment:
		Inspect(n.Target, f)
		inspectExpr(n.Value, f)
	case *IfChain:
		for _, clause := range n.Clauses {
			inspectExpr(clause.Condition, f)
			inspectList(clause.Body, f)
		}
		inspectList(n.Else, f)
	case *For:
		Inspect(n.Iterator, f)
		inspectExpr(n.From, f)
		inspectExpr(n.To, f)
		inspectList(n.Body, f)
	case *While:
		inspectExpr(n.Condition, f)
		inspectList(n.Body, f)
	case *RepeatUntil:
		inspectExpr(n.Condition, f)
		inspectList(n.Body, f)
	case *FunctionCall:
		for _, arg := range n.Arguments {
			Inspect(arg, f)
		}
	case *IntegerLiteral, *RealLiteral, *StringLiteral, *CharacterLiteral, *BooleanLiteral:
		// leaves
	}
}

// inspectExpr skips absent optional expressions.
func inspectExpr(e Expr, f func(Node) bool) {
	if e == nil {
		return
	}
	Inspect(e, f)
}

func inspectList(stmts []Stmt, f func(Node) bool) {
	for _, s := range stmts {
		Inspect(s, f)
	}
}

// Count returns the number of nodes of each kind under node.
func Count(node Node) map[NodeKind]int {
	counts := make(map[NodeKind]int)
	Inspect(node, func(n Node) bool {
		counts[n.Kind()]++
		return true
	})
	return counts
}
