package lexer

import (
	"strings"
	"testing"

	"github.com/lnsp/tea/internal/token"
)

func TestTokenizeReproducesInput(t *testing.T) {
	inputs := []string{
		`var x: int = 5; x = x + 1; x`,
		`func add(a: int, b: int) { return a + b } add(2, 3)`,
		`if (true) { 1 } else { 2 }`,
		`"hello\nworld" + 1`,
		`a += 1; b -= 2; c ^= d;`,
	}
	for _, in := range inputs {
		tokens := Tokenize(in)
		var sb strings.Builder
		for _, tok := range tokens {
			sb.WriteString(tok.Value)
		}
		if sb.String() != in {
			t.Errorf("Tokenize(%q) does not reconstruct input: got %q", in, sb.String())
		}
	}
}

func TestTokenizeKinds(t *testing.T) {
	tokens := FilterWhitespace(Tokenize(`x += 1`))
	want := []token.Kind{token.Identifier, token.Operator, token.Number}
	if len(tokens) != len(want) {
		t.Fatalf("got %d tokens, want %d: %+v", len(tokens), len(want), tokens)
	}
	for i, k := range want {
		if tokens[i].Kind != k {
			t.Errorf("token %d: got kind %v, want %v (%+v)", i, tokens[i].Kind, k, tokens[i])
		}
	}
	if tokens[1].Value != "+=" {
		t.Errorf("expected greedy match of '+=', got %q", tokens[1].Value)
	}
}

func TestTokenizeOperatorGreedy(t *testing.T) {
	cases := map[string][]string{
		"+":  {"+"},
		"++": {"+", "+"}, // "++" is not a recognized operator, so it splits
		"+=": {"+="},
		"<=": {"<="},
		"<":  {"<"},
		"^|": {"^|"},
		"^=": {"^="},
	}
	for in, want := range cases {
		tokens := Tokenize(in)
		if len(tokens) != len(want) {
			t.Fatalf("Tokenize(%q): got %d tokens %+v, want %d", in, len(tokens), tokens, len(want))
		}
		for i, v := range want {
			if tokens[i].Value != v {
				t.Errorf("Tokenize(%q)[%d] = %q, want %q", in, i, tokens[i].Value, v)
			}
		}
	}
}

func TestTokenizeUnaryMinusIsOperatorThenNumber(t *testing.T) {
	tokens := Tokenize("-5")
	if len(tokens) != 2 {
		t.Fatalf("expected 2 tokens for '-5', got %+v", tokens)
	}
	if tokens[0].Kind != token.Operator || tokens[0].Value != "-" {
		t.Errorf("expected leading operator '-', got %+v", tokens[0])
	}
	if tokens[1].Kind != token.Number || tokens[1].Value != "5" {
		t.Errorf("expected number '5', got %+v", tokens[1])
	}
}

func TestTokenizeNumberGrammar(t *testing.T) {
	for _, in := range []string{"123", "123.45", "123."} {
		tokens := Tokenize(in)
		if len(tokens) != 1 || tokens[0].Kind != token.Number || tokens[0].Value != in {
			t.Errorf("Tokenize(%q) = %+v, want a single NUMBER token", in, tokens)
		}
	}
}

func TestTokenizeUnterminatedString(t *testing.T) {
	tokens := Tokenize(`"unterminated`)
	if len(tokens) != 1 || tokens[0].Kind != token.String {
		t.Fatalf("expected single STRING token, got %+v", tokens)
	}
}

func TestTokenizeIllegalCharacter(t *testing.T) {
	tokens := Tokenize("@")
	if len(tokens) != 1 || tokens[0].Kind != token.None {
		t.Fatalf("expected a single None-kind token for '@', got %+v", tokens)
	}
}

func TestTokenizeLineTracking(t *testing.T) {
	tokens := FilterWhitespace(Tokenize("1 +\n2"))
	if tokens[0].Line != 1 {
		t.Errorf("expected first token on line 1, got %d", tokens[0].Line)
	}
	last := tokens[len(tokens)-1]
	if last.Line != 2 {
		t.Errorf("expected last token on line 2, got %d", last.Line)
	}
}
