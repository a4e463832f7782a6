package vm

import (
	"testing"

	"github.com/chazu/sol25/pkg/ast"
)

func tableFor(t *testing.T, prog *ast.Program) *ClassTable {
	t.Helper()
	ct := NewClassTable()
	if err := ct.LoadProgram(prog); err != nil {
		t.Fatalf("LoadProgram failed: %v", err)
	}
	return ct
}

func TestFileOut(t *testing.T) {
	prog := progOf(
		classOf("Main", ClassObject,
			methodOf("run", blockOf(nil,
				set("c", sendTo(classLit("Counter"), "new")),
				set("x", sendTo(varRef("c"), "count:", intLit("0"))),
				set("y", sendTo(varRef("c"), "bump:", intLit("5"))),
				set("p", sendTo(sendTo(sendTo(varRef("c"), "count"), "asString"), "print")),
			)),
		),
		classOf("Counter", ClassObject,
			methodOf("bump:", blockOf([]string{"n"},
				set("v", sendTo(sendTo(varRef("self"), "count"), "plus:", varRef("n"))),
				set("r", sendTo(varRef("self"), "count:", varRef("v"))),
			)),
			methodOf("idle", blockOf(nil)),
		),
	)
	prog.Description = "counter demo"

	want := `" counter demo "

class Counter : Object {
    bump: [ :n |
        v := (self count) plus: n.
        r := self count: v.
    ]
    idle [ | ]
}

class Main : Object {
    run [ |
        c := Counter new.
        x := c count: 0.
        y := c bump: 5.
        p := ((c count) asString) print.
    ]
}
`
	got := FileOut(tableFor(t, prog))
	if got != want {
		t.Errorf("FileOut mismatch:\n--- got ---\n%s\n--- want ---\n%s", got, want)
	}
}

func TestFileOutKeepsEscapesLiteral(t *testing.T) {
	prog := mainProg(set("x", sendTo(strLit(`line\none\'s`), "print")))
	want := `class Main : Object {
    run [ |
        x := 'line\none\'s' print.
    ]
}
`
	got := FileOut(tableFor(t, prog))
	if got != want {
		t.Errorf("FileOut = %q, want %q", got, want)
	}
}

func TestFileOutNestedBlocks(t *testing.T) {
	prog := progOf(classOf("Main", ClassObject,
		methodOf("run", blockOf(nil,
			set("w", sendTo(
				blockExpr(nil, set("r", varRef("false"))),
				"whileTrue:",
				blockExpr(nil))),
		)),
	))
	want := `class Main : Object {
    run [ |
        w := [ |
            r := false.
        ] whileTrue: [ | ].
    ]
}
`
	got := FileOut(tableFor(t, prog))
	if got != want {
		t.Errorf("FileOut = %q, want %q", got, want)
	}
}

func TestFileOutKeywordSelectorInterleavesArguments(t *testing.T) {
	prog := mainProg(
		set("x", sendTo(varRef("true"), "ifTrue:ifFalse:",
			blockExpr(nil, set("a", intLit("1"))),
			blockExpr(nil, set("a", intLit("2"))),
		)),
	)
	want := `class Main : Object {
    run [ |
        x := true ifTrue: [ |
            a := 1.
        ] ifFalse: [ |
            a := 2.
        ].
    ]
}
`
	got := FileOut(tableFor(t, prog))
	if got != want {
		t.Errorf("FileOut = %q, want %q", got, want)
	}
}

func TestFileOutLiteralForms(t *testing.T) {
	prog := mainProg(
		set("a", intLit("-3")),
		set("b", varRef("nil")),
		set("c", &ast.Expr{Literal: &ast.Literal{Class: "True", Value: "true"}}),
		set("d", &ast.Expr{Literal: &ast.Literal{Class: "Nil", Value: "nil"}}),
	)
	want := `class Main : Object {
    run [ |
        a := -3.
        b := nil.
        c := true.
        d := nil.
    ]
}
`
	got := FileOut(tableFor(t, prog))
	if got != want {
		t.Errorf("FileOut = %q, want %q", got, want)
	}
}

func TestFileOutEmptyTable(t *testing.T) {
	if got := FileOut(NewClassTable()); got != "" {
		t.Errorf("FileOut of builtins only = %q, want empty", got)
	}
}
