package expr

import "testing"

func TestTokenize_Empty(t *testing.T) {
	_, err := Tokenize("")
	if err == nil {
		t.Fatal("expected error for empty expression")
	}
	var tErr *TokenizeError
	if !asTokenizeError(err, &tErr) {
		t.Fatalf("expected *TokenizeError, got %T", err)
	}
}

func TestTokenize_WhitespaceOnly(t *testing.T) {
	_, err := Tokenize("   \t  ")
	if err == nil {
		t.Fatal("expected error for whitespace-only expression")
	}
}

func TestTokenize_Keywords(t *testing.T) {
	tests := []struct {
		name  string
		input string
		kinds []TokenKind
	}{
		{"simple and", "ERROR AND Kafka", []TokenKind{WORD, AND, WORD}},
		{"lowercase operators", "a and b or not c", []TokenKind{WORD, AND, WORD, OR, NOT, WORD}},
		{"parens", "(ERROR OR WARN)", []TokenKind{LPAREN, WORD, OR, WORD, RPAREN}},
		{"android not operator", "ANDROID", []TokenKind{WORD}},
		{"notice not operator", "NOTICE", []TokenKind{WORD}},
		{"embedded and", "BRANDNEW", []TokenKind{WORD}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := Tokenize(tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(tokens) != len(tt.kinds) {
				t.Fatalf("expected %d tokens, got %d (%v)", len(tt.kinds), len(tokens), tokens)
			}
			for i, k := range tt.kinds {
				if tokens[i].Kind != k {
					t.Errorf("token %d: expected kind %v, got %v", i, k, tokens[i].Kind)
				}
			}
		})
	}
}

func TestTokenize_QuotedString(t *testing.T) {
	tokens, err := Tokenize(`"hello world" AND 'foo'`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tokens) != 3 {
		t.Fatalf("expected 3 tokens, got %d", len(tokens))
	}
	if tokens[0].Value != "hello world" {
		t.Errorf("expected %q, got %q", "hello world", tokens[0].Value)
	}
	if tokens[2].Value != "foo" {
		t.Errorf("expected %q, got %q", "foo", tokens[2].Value)
	}
}

func TestTokenize_UnterminatedQuote(t *testing.T) {
	_, err := Tokenize(`"unterminated`)
	if err == nil {
		t.Fatal("expected error for unterminated quote")
	}
	var tErr *TokenizeError
	if !asTokenizeError(err, &tErr) {
		t.Fatalf("expected *TokenizeError, got %T", err)
	}
	if tErr.Position != 0 {
		t.Errorf("expected position 0 (opening quote), got %d", tErr.Position)
	}
}

func asTokenizeError(err error, target **TokenizeError) bool {
	if e, ok := err.(*TokenizeError); ok {
		*target = e
		return true
	}
	return false
}
