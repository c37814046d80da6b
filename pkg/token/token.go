// Package token defines the lexical token vocabulary produced by
// pkg/lexer and consumed by pkg/parser.
package token

// Kind is one of the five token classes the tokenizer recognizes.
type Kind int

const (
	Identifier Kind = iota
	Keyword
	Separator
	Operator
	Literal
)

func (k Kind) String() string {
	switch k {
	case Identifier:
		return "identifier"
	case Keyword:
		return "keyword"
	case Separator:
		return "separator"
	case Operator:
		return "operator"
	case Literal:
		return "literal"
	default:
		return "unknown"
	}
}

// Token is a single lexeme: its (already lowercased/trimmed) text and its
// class. String literals keep their surrounding quotes in Text; callers
// strip them when the value is needed.
type Token struct {
	Text string
	Kind Kind
}

func New(text string, kind Kind) Token {
	return Token{Text: text, Kind: kind}
}

// Is reports whether the token's text equals value.
func (t Token) Is(value string) bool {
	return t.Text == value
}

// IsKind reports whether the token belongs to the given class.
func (t Token) IsKind(kind Kind) bool {
	return t.Kind == kind
}

func (t Token) String() string {
	return "(" + t.Kind.String() + ": " + t.Text + ")"
}

// Multi-word keywords recognized as a single token by the lexer.
var MultiWordKeywords = []string{
	"group by",
	"left join",
	"right join",
	"inner join",
	"order by",
}

// Keywords recognized as single words.
var Keywords = map[string]bool{
	"select": true,
	"from":   true,
	"where":  true,
	"into":   true,
	"limit":  true,
	"asc":    true,
	"desc":   true,
	"as":     true,
}

// Operators, ordered so multi-character operators are matched before their
// single-character prefixes.
var Operators = []string{
	">=", "<=", "!=",
	"+", "-", "*", "/", "%", ">", "<", "=",
	"and", "or", "xor",
}

var Separators = map[byte]bool{
	',': true,
	'(': true,
	')': true,
	'.': true,
}

// Literals that are keyword-shaped (true/false/null) rather than
// punctuation or numeric.
var LiteralWords = map[string]bool{
	"true":  true,
	"false": true,
	"null":  true,
}
