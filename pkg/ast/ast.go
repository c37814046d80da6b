// Package ast defines the single generic tree node the parser builds and
// the evaluator walks. Every grammar rule produces one Node tagged with
// its own NodeType; the grammar itself lives in pkg/parser.
package ast

import (
	"fmt"
	"strings"

	"github.com/grinchenko/sqlit/pkg/token"
)

// NodeType tags which grammar rule produced a Node.
type NodeType int

const (
	Query NodeType = iota
	Columns
	StarOperator
	Expression
	Equality
	Comparison
	Term
	Factor
	Unary
	Function
	Primary
	Literal
	Identifier
	From
	FromStatement
	Where
	GroupBy
	OrderBy
	OrderByStatement
	Into
	Limit
)

func (t NodeType) String() string {
	names := [...]string{
		"Query", "Columns", "StarOperator", "Expression", "Equality",
		"Comparison", "Term", "Factor", "Unary", "Function", "Primary",
		"Literal", "Identifier", "From", "FromStatement", "Where",
		"GroupBy", "OrderBy", "OrderByStatement", "Into", "Limit",
	}
	if int(t) < len(names) {
		return names[t]
	}
	return "Unknown"
}

// Node is a tagged branch of the parse tree. Tokens holds the lexemes the
// rule consumed directly (operators, identifiers, literals); Children
// holds the sub-rules it recursed into. Most rules populate only one of
// the two, but Function (name token plus argument list), FromStatement
// (optional subquery plus alias token), prefixed Unary, and binary
// expression rules (an operator token between two child nodes) use both.
type Node struct {
	Type     NodeType
	Tokens   []token.Token
	Children []*Node
}

func New(t NodeType) *Node {
	return &Node{Type: t}
}

func (n *Node) AddChild(child *Node) {
	n.Children = append(n.Children, child)
}

func (n *Node) AddToken(t token.Token) {
	n.Tokens = append(n.Tokens, t)
}

// Text returns the first token's text, or "" if this node carries none.
func (n *Node) Text() string {
	if len(n.Tokens) == 0 {
		return ""
	}
	return n.Tokens[0].Text
}

func (n *Node) String() string {
	var sb strings.Builder
	n.write(&sb, 0)
	return sb.String()
}

func (n *Node) write(sb *strings.Builder, depth int) {
	fmt.Fprintf(sb, "%s%s", strings.Repeat("  ", depth), n.Type)
	if len(n.Tokens) > 0 {
		parts := make([]string, len(n.Tokens))
		for i, t := range n.Tokens {
			parts[i] = t.Text
		}
		fmt.Fprintf(sb, " [%s]", strings.Join(parts, ", "))
	}
	sb.WriteByte('\n')
	for _, c := range n.Children {
		c.write(sb, depth+1)
	}
}
