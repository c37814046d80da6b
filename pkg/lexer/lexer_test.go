package lexer

import (
	"testing"

	"github.com/grinchenko/sqlit/pkg/token"
)

func TestTokenizeBasicSelect(t *testing.T) {
	tests := []struct {
		text string
		kind token.Kind
	}{
		{"select", token.Keyword},
		{"a", token.Identifier},
		{",", token.Separator},
		{"b", token.Identifier},
		{"from", token.Keyword},
		{"mytable", token.Identifier},
	}

	got := Tokenize("SELECT a, b FROM mytable")
	if len(got) != len(tests) {
		t.Fatalf("expected %d tokens, got %d (%v)", len(tests), len(got), got)
	}
	for i, want := range tests {
		if got[i].Text != want.text || got[i].Kind != want.kind {
			t.Errorf("token %d: expected (%s, %v), got (%s, %v)", i, want.text, want.kind, got[i].Text, got[i].Kind)
		}
	}
}

func TestTokenizeMultiWordKeywords(t *testing.T) {
	got := Tokenize("select a from t group by a order by a left join u on a.x = u.x")

	var phrases []string
	for _, tok := range got {
		if tok.Kind == token.Keyword && len(tok.Text) > 0 {
			phrases = append(phrases, tok.Text)
		}
	}

	wantContains := []string{"group by", "order by", "left join"}
	for _, w := range wantContains {
		found := false
		for _, p := range phrases {
			if p == w {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("expected multi-word keyword %q in token stream, got %v", w, phrases)
		}
	}
}

func TestTokenizeOperators(t *testing.T) {
	got := Tokenize("a >= b and c != d or e % 2")

	ops := map[string]bool{}
	for _, tok := range got {
		if tok.Kind == token.Operator {
			ops[tok.Text] = true
		}
	}

	for _, want := range []string{">=", "and", "!=", "or", "%"} {
		if !ops[want] {
			t.Errorf("expected operator %q in token stream, got %v", want, ops)
		}
	}
}

func TestTokenizeStringLiteral(t *testing.T) {
	got := Tokenize("select a from t where name = 'bob''s table'")

	var lit token.Token
	found := false
	for _, tok := range got {
		if tok.Kind == token.Literal && len(tok.Text) > 0 && tok.Text[0] == '\'' {
			lit = tok
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a quoted string literal in token stream")
	}
	if lit.Text[0] != '\'' || lit.Text[len(lit.Text)-1] != '\'' {
		t.Errorf("expected literal to retain its quotes, got %q", lit.Text)
	}
}

func TestTokenizeNumbers(t *testing.T) {
	got := Tokenize("select 1, 2.5, 1e10, 3.14e-2 from t")

	var numbers []string
	for _, tok := range got {
		if tok.Kind == token.Literal {
			numbers = append(numbers, tok.Text)
		}
	}

	want := []string{"1", "2.5", "1e10", "3.14e-2"}
	if len(numbers) != len(want) {
		t.Fatalf("expected %d numeric literals, got %d (%v)", len(want), len(numbers), numbers)
	}
	for i := range want {
		if numbers[i] != want[i] {
			t.Errorf("number %d: expected %q, got %q", i, want[i], numbers[i])
		}
	}
}

func TestTokenizeBooleanAndNullLiterals(t *testing.T) {
	got := Tokenize("select a from t where a = true or b = null and c = false")

	count := 0
	for _, tok := range got {
		if tok.Kind == token.Literal && (tok.Text == "true" || tok.Text == "false" || tok.Text == "null") {
			count++
		}
	}
	if count != 3 {
		t.Errorf("expected 3 keyword literals, got %d", count)
	}
}

func TestTokenizeIsCaseInsensitiveAndLowercases(t *testing.T) {
	got := Tokenize("SELECT Name FROM People")

	if got[0].Text != "select" {
		t.Errorf("expected lowercased keyword, got %q", got[0].Text)
	}
	if got[1].Text != "name" {
		t.Errorf("expected lowercased identifier, got %q", got[1].Text)
	}
}

func TestTokenizeSkipsUnrecognizedCharacters(t *testing.T) {
	got := Tokenize("select a from t #")

	if len(got) == 0 {
		t.Fatalf("expected at least the recognizable prefix to tokenize")
	}
	last := got[len(got)-1]
	if last.Text != "t" {
		t.Errorf("expected tokenization to continue past unrecognized characters, last token was %q", last.Text)
	}
}

func TestTokenizeDottedIdentifier(t *testing.T) {
	got := Tokenize("select a.b from t")

	want := []string{"select", "a", ".", "b", "from", "t"}
	if len(got) != len(want) {
		t.Fatalf("expected %d tokens, got %d (%v)", len(want), len(got), got)
	}
	for i, w := range want {
		if got[i].Text != w {
			t.Errorf("token %d: expected %q, got %q", i, w, got[i].Text)
		}
	}
}
