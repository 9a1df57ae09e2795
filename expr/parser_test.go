package expr

import "testing"

func TestParse_SimpleAnd(t *testing.T) {
	ast, err := Parse("ERROR AND Kafka")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	and, ok := ast.(AndNode)
	if !ok {
		t.Fatalf("expected AndNode, got %T", ast)
	}
	if w, ok := and.Left.(WordNode); !ok || w.Pattern != "ERROR" {
		t.Errorf("unexpected left: %#v", and.Left)
	}
	if w, ok := and.Right.(WordNode); !ok || w.Pattern != "Kafka" {
		t.Errorf("unexpected right: %#v", and.Right)
	}
}

func TestParse_Precedence(t *testing.T) {
	// a AND b OR c  ==  (a AND b) OR c
	ast, err := Parse("a AND b OR c")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	or, ok := ast.(OrNode)
	if !ok {
		t.Fatalf("expected top-level OrNode, got %T", ast)
	}
	if _, ok := or.Left.(AndNode); !ok {
		t.Errorf("expected left of OR to be AND, got %T", or.Left)
	}
}

func TestParse_NotNot(t *testing.T) {
	ast, err := Parse("NOT NOT x")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	outer, ok := ast.(NotNode)
	if !ok {
		t.Fatalf("expected outer NotNode, got %T", ast)
	}
	inner, ok := outer.Child.(NotNode)
	if !ok {
		t.Fatalf("expected inner NotNode, got %T", outer.Child)
	}
	if _, ok := inner.Child.(WordNode); !ok {
		t.Errorf("expected innermost WordNode, got %T", inner.Child)
	}
}

func TestParse_Parens(t *testing.T) {
	ast, err := Parse("(ERROR OR WARN) AND NOT timeout")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	and, ok := ast.(AndNode)
	if !ok {
		t.Fatalf("expected AndNode, got %T", ast)
	}
	if _, ok := and.Left.(OrNode); !ok {
		t.Errorf("expected left to be OrNode, got %T", and.Left)
	}
	if _, ok := and.Right.(NotNode); !ok {
		t.Errorf("expected right to be NotNode, got %T", and.Right)
	}
}

func TestParse_UnbalancedParens(t *testing.T) {
	_, err := Parse("(ERROR AND WARN")
	if err == nil {
		t.Fatal("expected ParseError for unbalanced parens")
	}
	perr, ok := err.(*ParseError)
	if !ok {
		t.Fatalf("expected *ParseError, got %T", err)
	}
	if perr.Position != 0 {
		t.Errorf("expected error position at opening paren (0), got %d", perr.Position)
	}
}

func TestParse_OnlyOperator(t *testing.T) {
	_, err := Parse("AND")
	if err == nil {
		t.Fatal("expected ParseError for operator-only query")
	}
}

func TestParse_TrailingTokens(t *testing.T) {
	_, err := Parse("a b c)")
	if err == nil {
		t.Fatal("expected ParseError for trailing/unexpected token")
	}
}

func TestParse_MissingOperand(t *testing.T) {
	_, err := Parse("a AND")
	if err == nil {
		t.Fatal("expected ParseError for missing right operand")
	}
}

func TestParse_DeeplyNestedParens(t *testing.T) {
	expr := ""
	for i := 0; i < 1000; i++ {
		expr += "("
	}
	expr += "x"
	for i := 0; i < 1000; i++ {
		expr += ")"
	}
	ast, err := Parse(expr)
	if err != nil {
		t.Fatalf("expected deeply nested parens to parse cleanly, got error: %v", err)
	}
	if _, ok := ast.(WordNode); !ok {
		t.Errorf("expected WordNode at the core, got %T", ast)
	}
}
