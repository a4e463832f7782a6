package vm

import (
	"sort"
	"strings"

	"github.com/chazu/sol25/pkg/ast"
)

// FileOut reconstructs SOL25 source text for every user-defined class in
// the table. Built-in classes are skipped. Output is deterministic: classes
// appear sorted by name, methods in definition order, and statements in
// their stored order.
func FileOut(ct *ClassTable) string {
	var b strings.Builder

	if desc := ct.Description(); desc != "" {
		b.WriteString("\" ")
		b.WriteString(desc)
		b.WriteString(" \"\n\n")
	}

	var names []string
	for _, def := range ct.All() {
		if !def.Builtin {
			names = append(names, def.Name)
		}
	}
	sort.Strings(names)

	for i, name := range names {
		if i > 0 {
			b.WriteString("\n")
		}
		def, _ := ct.Lookup(name)
		fileOutClass(&b, def)
	}
	return b.String()
}

func fileOutClass(b *strings.Builder, def *ClassDef) {
	b.WriteString("class ")
	b.WriteString(def.Name)
	b.WriteString(" : ")
	b.WriteString(def.Parent)
	b.WriteString(" {\n")
	for _, sel := range def.Selectors() {
		body, _ := def.Method(sel)
		b.WriteString("    ")
		b.WriteString(sel)
		b.WriteString(" ")
		writeBlock(b, body, "    ")
		b.WriteString("\n")
	}
	b.WriteString("}\n")
}

func writeBlock(b *strings.Builder, blk *ast.Block, indent string) {
	b.WriteString("[")
	for _, p := range blk.ParamNames() {
		b.WriteString(" :")
		b.WriteString(p)
	}
	b.WriteString(" |")

	assigns := blk.SortedAssigns()
	if len(assigns) == 0 {
		b.WriteString(" ]")
		return
	}
	inner := indent + "    "
	for _, a := range assigns {
		b.WriteString("\n")
		b.WriteString(inner)
		b.WriteString(a.Var.Name)
		b.WriteString(" := ")
		writeExpr(b, a.Expr, false, inner)
		b.WriteString(".")
	}
	b.WriteString("\n")
	b.WriteString(indent)
	b.WriteString("]")
}

// writeExpr renders one expression. grouped forces parentheses around
// sends, which argument and receiver positions require.
func writeExpr(b *strings.Builder, e *ast.Expr, grouped bool, indent string) {
	switch {
	case e == nil:
		return
	case e.Literal != nil:
		writeLiteral(b, e.Literal)
	case e.Var != nil:
		b.WriteString(e.Var.Name)
	case e.Block != nil:
		writeBlock(b, e.Block, indent)
	case e.Send != nil:
		if grouped {
			b.WriteString("(")
		}
		writeSend(b, e.Send, indent)
		if grouped {
			b.WriteString(")")
		}
	}
}

func writeLiteral(b *strings.Builder, l *ast.Literal) {
	switch l.Class {
	case "String":
		b.WriteString("'")
		b.WriteString(l.Value)
		b.WriteString("'")
	case "Nil":
		b.WriteString("nil")
	case "True":
		b.WriteString("true")
	case "False":
		b.WriteString("false")
	default:
		// Integer literals and class names print as their token text.
		b.WriteString(l.Value)
	}
}

func writeSend(b *strings.Builder, s *ast.Send, indent string) {
	writeExpr(b, s.Receiver, true, indent)

	if !strings.Contains(s.Selector, ":") {
		b.WriteString(" ")
		b.WriteString(s.Selector)
		return
	}

	parts := strings.SplitAfter(s.Selector, ":")
	args := s.SortedArgs()
	for i, part := range parts {
		if part == "" {
			continue
		}
		b.WriteString(" ")
		b.WriteString(part)
		if i < len(args) {
			b.WriteString(" ")
			writeExpr(b, args[i], true, indent)
		}
	}
}
