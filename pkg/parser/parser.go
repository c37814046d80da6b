// Package parser builds a parse tree from a token stream using recursive
// descent: one method per grammar rule, one token of lookahead. The
// grammar itself has a fixed clause order, so unlike a general SQL
// parser there is no backtracking and no operator-precedence table to
// configure.
package parser

import (
	"context"
	"time"

	"github.com/grinchenko/sqlit/pkg/ast"
	"github.com/grinchenko/sqlit/pkg/errs"
	"github.com/grinchenko/sqlit/pkg/lexer"
	"github.com/grinchenko/sqlit/pkg/token"
)

// Parser walks a flat token slice with a one-token lookahead, the same
// cur/peek shape used elsewhere in this codebase's lexing stages.
type Parser struct {
	tokens []token.Token
	pos    int

	parseStartTime time.Time
	parseDuration  time.Duration
	tokenCount     int

	ctx context.Context
}

func New(input string) *Parser {
	return NewWithContext(context.Background(), input)
}

func NewWithContext(ctx context.Context, input string) *Parser {
	return &Parser{
		tokens:         lexer.Tokenize(input),
		parseStartTime: time.Now(),
		ctx:            ctx,
	}
}

// Duration reports how long parsing took once Parse returns.
func (p *Parser) Duration() time.Duration {
	return p.parseDuration
}

// TokenCount reports how many tokens Parse consumed — used by the REPL
// to log query size alongside parse duration.
func (p *Parser) TokenCount() int {
	return p.tokenCount
}

func (p *Parser) cancelled() bool {
	select {
	case <-p.ctx.Done():
		return true
	default:
		return false
	}
}

func (p *Parser) peek() (token.Token, bool) {
	if p.pos >= len(p.tokens) {
		return token.Token{}, false
	}
	return p.tokens[p.pos], true
}

func (p *Parser) peekAt(offset int) (token.Token, bool) {
	i := p.pos + offset
	if i >= len(p.tokens) {
		return token.Token{}, false
	}
	return p.tokens[i], true
}

func (p *Parser) nextIs(value string) bool {
	t, ok := p.peek()
	return ok && t.Is(value)
}

func (p *Parser) nextNextIs(value string) bool {
	t, ok := p.peekAt(1)
	return ok && t.Is(value)
}

func (p *Parser) nextIsKind(kind token.Kind) bool {
	t, ok := p.peek()
	return ok && t.IsKind(kind)
}

// advance unconditionally returns and consumes the next token. Only
// called after a nextIs/nextIsKind check has already confirmed one
// exists.
func (p *Parser) advance() token.Token {
	t := p.tokens[p.pos]
	p.pos++
	p.tokenCount++
	return t
}

func (p *Parser) requireValue(value, errMsg string) (token.Token, error) {
	t, ok := p.peek()
	if !ok || !t.Is(value) {
		return token.Token{}, errs.Syntaxf("%s", errMsg)
	}
	return p.advance(), nil
}

func (p *Parser) requireKind(kind token.Kind, errMsg string) (token.Token, error) {
	t, ok := p.peek()
	if !ok || !t.IsKind(kind) {
		return token.Token{}, errs.Syntaxf("%s", errMsg)
	}
	return p.advance(), nil
}

// Parse tokenizes and parses input into a Query node.
func Parse(input string) (*ast.Node, error) {
	return NewWithContext(context.Background(), input).Parse()
}

func (p *Parser) Parse() (*ast.Node, error) {
	node, err := p.parseQuery()
	p.parseDuration = time.Since(p.parseStartTime)
	return node, err
}

func (p *Parser) parseQuery() (*ast.Node, error) {
	if p.cancelled() {
		return nil, errs.Syntaxf("parsing cancelled")
	}

	node := ast.New(ast.Query)
	if _, err := p.requireValue("select", "query must begin with select"); err != nil {
		return nil, err
	}

	columns, err := p.parseColumns()
	if err != nil {
		return nil, err
	}
	node.AddChild(columns)

	currentIndex := -1
	for {
		t, ok := p.peek()
		if !ok {
			break
		}

		idx := clauseIndex(t.Text)
		if idx < 0 {
			break
		}
		if idx <= currentIndex {
			return nil, errs.Syntaxf("select clauses out of order")
		}
		currentIndex = idx

		var child *ast.Node
		var err error
		switch clauseOrder[currentIndex] {
		case "from":
			child, err = p.parseFrom()
		case "where":
			child, err = p.parseWhere()
		case "group by":
			child, err = p.parseGroupBy()
		case "order by":
			child, err = p.parseOrderBy()
		case "limit":
			child, err = p.parseLimit()
		case "into":
			child, err = p.parseInto()
		}
		if err != nil {
			return nil, err
		}
		node.AddChild(child)
	}

	return node, nil
}

func (p *Parser) parseColumns() (*ast.Node, error) {
	node := ast.New(ast.Columns)

	// A bare `*` is only reachable from inside the comma loop below in a
	// strict reading of the grammar; special-case it here too so `select
	// * from t` parses as the single-column wildcard case, not just
	// `select a, * from t`.
	if p.nextIs("*") {
		star, err := p.parseStar()
		if err != nil {
			return nil, err
		}
		node.AddChild(star)
	} else {
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		node.AddChild(expr)
	}

	for p.nextIs(",") {
		p.advance()
		if p.nextIs("*") {
			star, err := p.parseStar()
			if err != nil {
				return nil, err
			}
			node.AddChild(star)
			continue
		}
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		node.AddChild(expr)
	}

	return node, nil
}

func (p *Parser) parseStar() (*ast.Node, error) {
	node := ast.New(ast.StarOperator)
	if _, err := p.requireValue("*", "expected *"); err != nil {
		return nil, err
	}
	return node, nil
}

// parseExpression wraps parseEquality with an optional trailing "as
// alias", the only place an output column gets a rename.
func (p *Parser) parseExpression() (*ast.Node, error) {
	node := ast.New(ast.Expression)

	eq, err := p.parseEquality()
	if err != nil {
		return nil, err
	}
	node.AddChild(eq)

	if p.nextIs("as") {
		p.advance()
		ident, err := p.parseIdentifier()
		if err != nil {
			return nil, err
		}
		node.AddChild(ident)
	}

	return node, nil
}

func (p *Parser) parseEquality() (*ast.Node, error) {
	node := ast.New(ast.Equality)

	cmp, err := p.parseComparison()
	if err != nil {
		return nil, err
	}
	node.AddChild(cmp)

	for p.nextIs("!=") || p.nextIs("=") {
		node.AddToken(p.advance())
		cmp, err := p.parseComparison()
		if err != nil {
			return nil, err
		}
		node.AddChild(cmp)
	}

	return node, nil
}

var comparisonOps = []string{">", ">=", "<", "<=", "and", "or", "xor"}

func (p *Parser) parseComparison() (*ast.Node, error) {
	node := ast.New(ast.Comparison)

	term, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	node.AddChild(term)

	for p.nextIsAny(comparisonOps) {
		node.AddToken(p.advance())
		term, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		node.AddChild(term)
	}

	return node, nil
}

func (p *Parser) nextIsAny(values []string) bool {
	for _, v := range values {
		if p.nextIs(v) {
			return true
		}
	}
	return false
}

func (p *Parser) parseTerm() (*ast.Node, error) {
	node := ast.New(ast.Term)

	factor, err := p.parseFactor()
	if err != nil {
		return nil, err
	}
	node.AddChild(factor)

	for p.nextIs("+") || p.nextIs("-") {
		node.AddToken(p.advance())
		factor, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		node.AddChild(factor)
	}

	return node, nil
}

func (p *Parser) parseFactor() (*ast.Node, error) {
	node := ast.New(ast.Factor)

	unary, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	node.AddChild(unary)

	for p.nextIs("*") || p.nextIs("/") || p.nextIs("%") {
		node.AddToken(p.advance())
		unary, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		node.AddChild(unary)
	}

	return node, nil
}

func (p *Parser) parseUnary() (*ast.Node, error) {
	node := ast.New(ast.Unary)

	if p.nextIs("-") || p.nextIs("!") {
		node.AddToken(p.advance())
		inner, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		node.AddChild(inner)
		return node, nil
	}

	primary, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	node.AddChild(primary)
	return node, nil
}

func (p *Parser) parsePrimary() (*ast.Node, error) {
	node := ast.New(ast.Primary)

	switch {
	case p.nextIsKind(token.Literal):
		lit, err := p.parseLiteral()
		if err != nil {
			return nil, err
		}
		node.AddChild(lit)

	case p.nextIsKind(token.Identifier):
		if p.nextNextIs("(") {
			fn, err := p.parseFunction()
			if err != nil {
				return nil, err
			}
			node.AddChild(fn)
		} else {
			ident, err := p.parseIdentifier()
			if err != nil {
				return nil, err
			}
			node.AddChild(ident)
		}

	case p.nextIs("("):
		p.advance()
		if p.nextIs("select") {
			sub, err := p.parseQuery()
			if err != nil {
				return nil, err
			}
			node.AddChild(sub)
		} else {
			expr, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			node.AddChild(expr)
		}
		if _, err := p.requireValue(")", "un-terminated paren"); err != nil {
			return nil, err
		}

	default:
		return nil, errs.Syntaxf("missing expression")
	}

	return node, nil
}

func (p *Parser) parseLiteral() (*ast.Node, error) {
	node := ast.New(ast.Literal)
	t, err := p.requireKind(token.Literal, "literal required")
	if err != nil {
		return nil, err
	}
	node.AddToken(t)
	return node, nil
}

// parseIdentifier consumes `name` or `alias.name`.
func (p *Parser) parseIdentifier() (*ast.Node, error) {
	node := ast.New(ast.Identifier)
	t, err := p.requireKind(token.Identifier, "missing column identifier")
	if err != nil {
		return nil, err
	}
	node.AddToken(t)

	if p.nextIs(".") {
		p.advance()
		t, err := p.requireKind(token.Identifier, "missing column identifier")
		if err != nil {
			return nil, err
		}
		node.AddToken(t)
	}

	return node, nil
}

func (p *Parser) parseFunction() (*ast.Node, error) {
	node := ast.New(ast.Function)

	name, err := p.requireKind(token.Identifier, "identifier required for function")
	if err != nil {
		return nil, err
	}
	node.AddToken(name)

	if _, err := p.requireValue("(", "missing opening paren"); err != nil {
		return nil, err
	}

	args, err := p.parseColumns()
	if err != nil {
		return nil, err
	}
	node.AddChild(args)

	if _, err := p.requireValue(")", "un-terminated paren"); err != nil {
		return nil, err
	}

	return node, nil
}

func (p *Parser) parseFrom() (*ast.Node, error) {
	node := ast.New(ast.From)
	if _, err := p.requireValue("from", "malformed from clause"); err != nil {
		return nil, err
	}

	first, err := p.parseFromStatement()
	if err != nil {
		return nil, err
	}
	node.AddChild(first)

	for p.nextIs("left join") || p.nextIs("right join") || p.nextIs("inner join") {
		node.AddToken(p.advance())

		joined, err := p.parseFromStatement()
		if err != nil {
			return nil, err
		}
		node.AddChild(joined)

		if _, err := p.requireValue("on", "join condition starting with on is required"); err != nil {
			return nil, err
		}

		cond, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		node.AddChild(cond)
	}

	return node, nil
}

func (p *Parser) parseFromStatement() (*ast.Node, error) {
	node := ast.New(ast.FromStatement)

	if p.nextIs("(") {
		p.advance()
		sub, err := p.parseQuery()
		if err != nil {
			return nil, err
		}
		node.AddChild(sub)
		if _, err := p.requireValue(")", "non-terminated paren in from statement"); err != nil {
			return nil, err
		}
	}

	name, err := p.requireKind(token.Identifier, "name required for table or join")
	if err != nil {
		return nil, err
	}
	node.AddToken(name)

	return node, nil
}

func (p *Parser) parseWhere() (*ast.Node, error) {
	node := ast.New(ast.Where)
	if _, err := p.requireValue("where", "invalid where clause"); err != nil {
		return nil, err
	}

	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	node.AddChild(expr)

	return node, nil
}

func (p *Parser) parseGroupBy() (*ast.Node, error) {
	node := ast.New(ast.GroupBy)
	if _, err := p.requireValue("group by", "group by keyword required"); err != nil {
		return nil, err
	}

	cols, err := p.parseColumns()
	if err != nil {
		return nil, err
	}
	node.AddChild(cols)

	return node, nil
}

func (p *Parser) parseOrderBy() (*ast.Node, error) {
	node := ast.New(ast.OrderBy)
	if _, err := p.requireValue("order by", "order by keyword required"); err != nil {
		return nil, err
	}

	stmt, err := p.parseOrderByStatement()
	if err != nil {
		return nil, err
	}
	node.AddChild(stmt)

	for p.nextIs(",") {
		p.advance()
		stmt, err := p.parseOrderByStatement()
		if err != nil {
			return nil, err
		}
		node.AddChild(stmt)
	}

	return node, nil
}

func (p *Parser) parseOrderByStatement() (*ast.Node, error) {
	node := ast.New(ast.OrderByStatement)

	name, err := p.requireKind(token.Identifier, "can only order on columns")
	if err != nil {
		return nil, err
	}
	node.AddToken(name)

	if p.nextIs("asc") || p.nextIs("desc") {
		node.AddToken(p.advance())
	}

	return node, nil
}

func (p *Parser) parseLimit() (*ast.Node, error) {
	node := ast.New(ast.Limit)
	if _, err := p.requireValue("limit", "mis-configured limit clause"); err != nil {
		return nil, err
	}

	lit, err := p.parseLiteral()
	if err != nil {
		return nil, err
	}
	node.AddChild(lit)

	return node, nil
}

// parseInto accepts either a bare identifier or a quoted string literal
// as the target filename; evalInto strips the quotes before use.
func (p *Parser) parseInto() (*ast.Node, error) {
	node := ast.New(ast.Into)
	if _, err := p.requireValue("into", "expected into clause"); err != nil {
		return nil, err
	}

	if p.nextIsKind(token.Literal) {
		node.AddToken(p.advance())
		return node, nil
	}

	t, err := p.requireKind(token.Identifier, "missing file name after into")
	if err != nil {
		return nil, err
	}
	node.AddToken(t)

	return node, nil
}
