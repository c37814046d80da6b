// Package lexer tokenizes a query string into the flat token stream the
// parser walks. It recognizes exactly the five classes defined in
// pkg/token and is total: it never fails, silently skipping characters it
// does not recognize and leaving grammar errors for the parser to surface.
package lexer

import (
	"strings"
	"unicode"

	"github.com/grinchenko/sqlit/pkg/token"
)

// Lexer scans one query string into a Tokens stream.
type Lexer struct {
	input []rune
	pos   int
}

func New(input string) *Lexer {
	return &Lexer{input: []rune(input)}
}

// Tokenize scans the whole input and returns its token stream. It never
// returns an error — unrecognized characters are dropped.
func Tokenize(input string) []token.Token {
	return New(input).All()
}

// All drains the lexer, returning every token it can recognize.
func (l *Lexer) All() []token.Token {
	tokens := make([]token.Token, 0, len(l.input)/4+1)
	for {
		t, ok := l.next()
		if !ok {
			break
		}
		tokens = append(tokens, t)
	}
	return tokens
}

func (l *Lexer) eof() bool {
	return l.pos >= len(l.input)
}

func (l *Lexer) skipSpace() {
	for !l.eof() && unicode.IsSpace(l.input[l.pos]) {
		l.pos++
	}
}

// peekWord reports whether the identifier-shaped word starting at pos
// (case-insensitively) equals word, and is followed by a non-identifier
// character (so "order" doesn't match inside "orderly").
func (l *Lexer) peekWord(word string) bool {
	n := len(word)
	if l.pos+n > len(l.input) {
		return false
	}
	candidate := string(l.input[l.pos : l.pos+n])
	if !strings.EqualFold(candidate, word) {
		return false
	}
	end := l.pos + n
	if end < len(l.input) && isIdentRune(l.input[end]) {
		return false
	}
	return true
}

// peekPhrase matches a multi-word keyword such as "group by", tolerating
// arbitrary whitespace between the words.
func (l *Lexer) peekPhrase(phrase string) (int, bool) {
	words := strings.Fields(phrase)
	p := l.pos
	for i, w := range words {
		for p < len(l.input) && unicode.IsSpace(l.input[p]) {
			p++
		}
		n := len(w)
		if p+n > len(l.input) || !strings.EqualFold(string(l.input[p:p+n]), w) {
			return 0, false
		}
		p += n
		if i == len(words)-1 {
			if p < len(l.input) && isIdentRune(l.input[p]) {
				return 0, false
			}
		}
	}
	return p, true
}

func isIdentRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

func isIdentStart(r rune) bool {
	return unicode.IsLetter(r)
}

// next scans and returns the next token, or ok=false at end of input.
func (l *Lexer) next() (token.Token, bool) {
	l.skipSpace()
	if l.eof() {
		return token.Token{}, false
	}

	for _, phrase := range token.MultiWordKeywords {
		if end, ok := l.peekPhrase(phrase); ok {
			l.pos = end
			return token.New(phrase, token.Keyword), true
		}
	}

	for kw := range token.Keywords {
		if l.peekWord(kw) {
			l.pos += len(kw)
			return token.New(kw, token.Keyword), true
		}
	}

	for word := range token.LiteralWords {
		if l.peekWord(word) {
			l.pos += len(word)
			return token.New(word, token.Literal), true
		}
	}

	c := l.input[l.pos]

	if c == '\'' {
		return l.scanString()
	}

	if unicode.IsDigit(c) {
		return l.scanNumber()
	}

	for _, op := range []string{"and", "or", "xor"} {
		if l.peekWord(op) {
			l.pos += len(op)
			return token.New(op, token.Operator), true
		}
	}

	for _, op := range []string{">=", "<=", "!="} {
		if l.hasPrefix(op) {
			l.pos += len(op)
			return token.New(op, token.Operator), true
		}
	}

	if strings.ContainsRune("+-*/%><=", c) {
		l.pos++
		return token.New(string(c), token.Operator), true
	}

	if isIdentStart(c) {
		return l.scanIdentifier()
	}

	if token.Separators[byte(c)] {
		l.pos++
		return token.New(string(c), token.Separator), true
	}

	// unrecognized character: skip it silently, tokenization is total.
	l.pos++
	return l.next()
}

func (l *Lexer) hasPrefix(s string) bool {
	n := len([]rune(s))
	if l.pos+n > len(l.input) {
		return false
	}
	return string(l.input[l.pos:l.pos+n]) == s
}

func (l *Lexer) scanString() (token.Token, bool) {
	start := l.pos
	l.pos++ // opening quote
	for !l.eof() && l.input[l.pos] != '\'' {
		l.pos++
	}
	if !l.eof() {
		l.pos++ // closing quote
	}
	text := strings.ToLower(string(l.input[start:l.pos]))
	return token.New(text, token.Literal), true
}

func (l *Lexer) scanNumber() (token.Token, bool) {
	start := l.pos
	for !l.eof() && unicode.IsDigit(l.input[l.pos]) {
		l.pos++
	}
	if !l.eof() && l.input[l.pos] == '.' && l.pos+1 < len(l.input) && unicode.IsDigit(l.input[l.pos+1]) {
		l.pos++
		for !l.eof() && unicode.IsDigit(l.input[l.pos]) {
			l.pos++
		}
	}
	if !l.eof() && (l.input[l.pos] == 'e' || l.input[l.pos] == 'E') {
		save := l.pos
		p := l.pos + 1
		if p < len(l.input) && (l.input[p] == '+' || l.input[p] == '-') {
			p++
		}
		if p < len(l.input) && unicode.IsDigit(l.input[p]) {
			for p < len(l.input) && unicode.IsDigit(l.input[p]) {
				p++
			}
			l.pos = p
		} else {
			l.pos = save
		}
	}
	return token.New(strings.ToLower(string(l.input[start:l.pos])), token.Literal), true
}

func (l *Lexer) scanIdentifier() (token.Token, bool) {
	start := l.pos
	for !l.eof() && isIdentRune(l.input[l.pos]) {
		l.pos++
	}
	return token.New(strings.ToLower(string(l.input[start:l.pos])), token.Identifier), true
}
