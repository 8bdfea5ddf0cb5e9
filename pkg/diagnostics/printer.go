package diagnostics

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"mercator-hq/callisto/pkg/cal/ast"
)

const indentUnit = "  "

// PrintAST writes an indented rendering of prog to w. Functions appear in
// definition order, each node on its own line prefixed by its line number.
func PrintAST(w io.Writer, prog *ast.Program) error {
	bw := bufio.NewWriter(w)
	p := &printer{w: bw}
	p.program(prog)
	if p.err != nil {
		return p.err
	}
	return bw.Flush()
}

// FormatAST returns the PrintAST rendering of prog as a string.
func FormatAST(prog *ast.Program) string {
	var sb strings.Builder
	_ = PrintAST(&sb, prog)
	return sb.String()
}

type printer struct {
	w     *bufio.Writer
	depth int
	err   error
}

func (p *printer) line(line int, format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, "%4d\t%s%s\n", line, strings.Repeat(indentUnit, p.depth), fmt.Sprintf(format, args...))
}

// section prints a heading and runs body one level deeper.
func (p *printer) section(line int, heading string, body func()) {
	p.line(line, "%s", heading)
	p.depth++
	body()
	p.depth--
}

func (p *printer) program(prog *ast.Program) {
	p.section(prog.Line, fmt.Sprintf("Program (%d functions)", len(prog.Functions)), func() {
		for _, name := range prog.Order {
			p.function(prog.Functions[name])
		}
	})
}

func (p *printer) function(fn *ast.Function) {
	p.section(fn.Line, "Function "+fn.Name, func() {
		if len(fn.Parameters) > 0 {
			p.section(fn.Line, "Parameters", func() {
				for _, v := range fn.Parameters {
					p.variable(v)
				}
			})
		}
		if len(fn.Locals) > 0 {
			p.section(fn.Line, "Locals", func() {
				for _, v := range fn.Locals {
					p.variable(v)
				}
			})
		}
		p.section(fn.Line, "Statements", func() {
			p.statements(fn.Statements)
		})
	})
}

func (p *printer) variable(v *ast.Variable) {
	typ := v.Type.String()
	if v.Type == ast.TypeArray {
		typ = "array of " + v.Elem.String()
	}
	mode := "constant"
	if v.Changeable {
		mode = "changeable"
	}

	p.section(v.Line, fmt.Sprintf("Variable %s : %s %s", v.Name, typ, mode), func() {
		if v.Range != nil {
			p.section(v.Line, "Range", func() {
				p.expr(v.Range.Lower)
				p.expr(v.Range.Upper)
			})
		}
		if v.Value != nil {
			p.expr(v.Value)
		}
	})
}

func (p *printer) statements(stmts []ast.Stmt) {
	for _, s := range stmts {
		p.statement(s)
	}
}

func (p *printer) statement(s ast.Stmt) {
	switch s := s.(type) {
	case *ast.Assignment:
		p.section(s.Line, "Assignment", func() {
			p.expr(s.Target)
			p.expr(s.Value)
		})
	case *ast.IfChain:
		p.section(s.Line, "IfChain", func() {
			for i, c := range s.Clauses {
				label := "If"
				if i > 0 {
					label = "Elsif"
				}
				p.section(c.Line, label, func() {
					p.expr(c.Condition)
					p.section(c.Line, "Then", func() { p.statements(c.Body) })
				})
			}
			if s.HasElse() {
				p.section(s.Line, "Else", func() { p.statements(s.Else) })
			}
		})
	case *ast.For:
		p.section(s.Line, "For", func() {
			p.expr(s.Iterator)
			p.expr(s.From)
			p.expr(s.To)
			p.section(s.Line, "Body", func() { p.statements(s.Body) })
		})
	case *ast.While:
		p.section(s.Line, "While", func() {
			p.expr(s.Condition)
			p.section(s.Line, "Body", func() { p.statements(s.Body) })
		})
	case *ast.RepeatUntil:
		p.section(s.Line, "RepeatUntil", func() {
			p.section(s.Line, "Body", func() { p.statements(s.Body) })
			p.expr(s.Condition)
		})
	case *ast.FunctionCall:
		p.section(s.Line, "FunctionCall "+s.Name, func() {
			for _, a := range s.Arguments {
				p.argument(a)
			}
		})
	default:
		p.line(s.Position().Line, "%s", s.Kind())
	}
}

func (p *printer) argument(a *ast.Argument) {
	if a.IsConstant() {
		p.section(a.Line, "Argument", func() { p.expr(a.Constant) })
		return
	}
	p.section(a.Line, "Argument var", func() { p.expr(a.Reference) })
}

func (p *printer) expr(e ast.Expr) {
	if e == nil {
		return
	}
	switch e := e.(type) {
	case *ast.IntegerLiteral:
		p.line(e.Line, "IntegerLiteral %d", e.Value)
	case *ast.RealLiteral:
		p.line(e.Line, "RealLiteral %s", strconv.FormatFloat(e.Value, 'g', -1, 64))
	case *ast.StringLiteral:
		p.line(e.Line, "StringLiteral %q", e.Value)
	case *ast.CharacterLiteral:
		p.line(e.Line, "CharacterLiteral %q", e.Value)
	case *ast.BooleanLiteral:
		p.line(e.Line, "BooleanLiteral %t", e.Value)
	case *ast.ArrayLiteral:
		if e.Lower == nil {
			p.line(e.Line, "ArrayLiteral of %s", e.Elem)
			return
		}
		p.section(e.Line, "ArrayLiteral of "+e.Elem.String(), func() {
			p.expr(e.Lower)
			p.expr(e.Upper)
		})
	case *ast.VariableReference:
		if e.Index == nil {
			p.line(e.Line, "VariableReference %s", e.Name)
			return
		}
		p.section(e.Line, "VariableReference "+e.Name+"[]", func() { p.expr(e.Index) })
	case *ast.MathOp:
		p.section(e.Line, "MathOp "+e.Operator.String(), func() {
			p.expr(e.Left)
			p.expr(e.Right)
		})
	case *ast.BooleanCompare:
		p.section(e.Line, "BooleanCompare "+e.Operator.String(), func() {
			p.expr(e.Left)
			p.expr(e.Right)
		})
	case *ast.Argument:
		p.argument(e)
	default:
		p.line(e.Position().Line, "%s", e.Kind())
	}
}
