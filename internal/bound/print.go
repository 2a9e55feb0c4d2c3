package bound

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Printer dumps bound trees in a compact line-oriented form.
type Printer struct {
	w      io.Writer
	indent int
	err    error
}

func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

// Dump writes stmt to w.
func Dump(w io.Writer, stmt Stmt) error {
	p := NewPrinter(w)
	p.PrintStmt(stmt)
	return p.err
}

// String renders stmt into a string.
func String(stmt Stmt) string {
	var sb strings.Builder
	_ = Dump(&sb, stmt)
	return sb.String()
}

func (p *Printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func (p *Printer) line(format string, args ...any) {
	p.printf("%s", strings.Repeat("  ", p.indent))
	p.printf(format, args...)
	p.printf("\n")
}

// PrintStmt writes one statement and its children.
func (p *Printer) PrintStmt(stmt Stmt) {
	switch s := stmt.(type) {
	case *BlockStmt:
		p.line("{")
		p.indent++
		for _, inner := range s.Stmts {
			p.PrintStmt(inner)
		}
		p.indent--
		p.line("}")
	case *VariableDeclaration:
		kw := "var"
		if s.Var.ReadOnly {
			kw = "const"
		}
		if s.Init == nil {
			p.line("%s %s: %s", kw, s.Var.Name(), s.Var.Type.Name())
		} else {
			p.line("%s %s: %s = %s", kw, s.Var.Name(), s.Var.Type.Name(), ExprString(s.Init))
		}
	case *ExpressionStmt:
		p.line("%s", ExprString(s.X))
	case *IfStmt:
		p.line("if %s", ExprString(s.Cond))
		p.nested(s.Then)
		if s.Else != nil {
			p.line("else")
			p.nested(s.Else)
		}
	case *WhileStmt:
		p.line("while %s [%s %s]", ExprString(s.Cond), s.Continue, s.Break)
		p.nested(s.Body)
	case *DoWhileStmt:
		p.line("do [%s %s]", s.Continue, s.Break)
		p.nested(s.Body)
		p.line("while %s", ExprString(s.Cond))
	case *ForStmt:
		p.line("for [%s %s]", s.Continue, s.Break)
		if s.Init != nil {
			p.nested(s.Init)
		}
		p.line("cond %s", optExpr(s.Cond))
		p.line("step %s", optExpr(s.Step))
		p.nested(s.Body)
	case *GotoStmt:
		p.line("goto %s", s.Target)
	case *ConditionalGotoStmt:
		word := "unless"
		if s.JumpIfTrue {
			word = "if"
		}
		p.line("goto %s %s %s", s.Target, word, ExprString(s.Cond))
	case *LabelStmt:
		p.printf("%s%s:\n", strings.Repeat("  ", max(p.indent-1, 0)), s.Label)
	case *ReturnStmt:
		if s.Value == nil {
			p.line("return")
		} else {
			p.line("return %s", ExprString(s.Value))
		}
	default:
		panic(fmt.Errorf("bound: cannot print %T", stmt))
	}
}

func (p *Printer) nested(s Stmt) {
	if _, ok := s.(*BlockStmt); ok {
		p.PrintStmt(s)
		return
	}
	p.indent++
	p.PrintStmt(s)
	p.indent--
}

func optExpr(e Expr) string {
	if e == nil {
		return "-"
	}
	return ExprString(e)
}

// ExprString renders an expression on one line.
func ExprString(e Expr) string {
	switch x := e.(type) {
	case *ErrorExpr:
		return "<error>"
	case *LiteralExpr:
		switch v := x.Value.(type) {
		case string:
			return strconv.Quote(v)
		case rune:
			return strconv.QuoteRune(v)
		default:
			return fmt.Sprint(v)
		}
	case *UnaryExpr:
		return x.Op.Name() + ExprString(x.Operand)
	case *BinaryExpr:
		return "(" + ExprString(x.Left) + " " + x.Op.Name() + " " + ExprString(x.Right) + ")"
	case *ConditionalExpr:
		return "(" + ExprString(x.Cond) + " ? " + ExprString(x.Then) + " : " + ExprString(x.Else) + ")"
	case *InstanceCreationExpr:
		return "new " + x.Typ.Name() + "(" + exprList(x.Args) + ")"
	case *VariableExpr:
		return x.Var.Name()
	case *AssignmentExpr:
		return ExprString(x.Target) + " = " + ExprString(x.Value)
	case *FieldAccessExpr:
		return ExprString(x.Target) + "." + x.Field.Name()
	case *FunctionCallExpr:
		return ExprString(x.Target) + "." + x.Function.Name() + "(" + exprList(x.Args) + ")"
	case *ThisExpr:
		return "this"
	case *TypeExpr:
		return x.Typ.Name()
	case *InternalCallExpr:
		return "@" + x.Op.OpName() + "(" + exprList(x.Args) + ")"
	case *ArrayLiteralExpr:
		return "[" + exprList(x.Elems) + "]"
	case *ArrayAccessExpr:
		return ExprString(x.Target) + "[" + ExprString(x.Index) + "]"
	case *ArrayCreationExpr:
		var sb strings.Builder
		sb.WriteString("new " + x.Elem.Name())
		for _, sz := range x.Sizes {
			sb.WriteString("[" + ExprString(sz.Size))
			if sz.Init != nil {
				sb.WriteString(" : " + ExprString(sz.Init))
			}
			sb.WriteString("]")
		}
		return sb.String()
	case *ConversionExpr:
		return x.Typ.Name() + "(" + ExprString(x.X) + ")"
	case *TypeCheckExpr:
		return "(" + ExprString(x.X) + " is " + x.Target.Name() + ")"
	case *TypeEqualsExpr:
		return "typeEquals(" + ExprString(x.Left) + ", " + ExprString(x.Right) + ")"
	default:
		panic(fmt.Errorf("bound: cannot print %T", e))
	}
}

func exprList(es []Expr) string {
	parts := make([]string, len(es))
	for i, e := range es {
		parts[i] = ExprString(e)
	}
	return strings.Join(parts, ", ")
}
