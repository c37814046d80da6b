package eval

import (
	"github.com/grinchenko/sqlit/pkg/ast"
	"github.com/grinchenko/sqlit/pkg/column"
	"github.com/grinchenko/sqlit/pkg/errs"
	"github.com/grinchenko/sqlit/pkg/table"
)

// evalColumns evaluates a Columns node — the select list, a group by
// key list, or a function's argument list — expanding `*` to one
// identifier per source column, in declaration order and under its
// original qualifier (so a post-join `select *` keeps both sides'
// same-named columns distinct).
func (e *Evaluator) evalColumns(node *ast.Node, src *table.Table) ([]table.NamedColumn, error) {
	var out []table.NamedColumn
	for _, child := range node.Children {
		if child.Type == ast.StarOperator {
			for _, pair := range src.ColumnQualifiers() {
				col, err := src.Column(pair[0], pair[1])
				if err != nil {
					return nil, err
				}
				out = append(out, table.NamedColumn{Name: pair[1], Column: col})
			}
			continue
		}

		nc, err := e.evalExpression(child, src)
		if err != nil {
			return nil, err
		}
		out = append(out, nc)
	}
	return out, nil
}

// evalExpression evaluates one projected item: its equality chain,
// then an optional trailing `as` rename.
func (e *Evaluator) evalExpression(node *ast.Node, src *table.Table) (table.NamedColumn, error) {
	nc, err := e.evalEquality(node.Children[0], src)
	if err != nil {
		return table.NamedColumn{}, err
	}
	if len(node.Children) > 1 {
		nc.Name = node.Children[1].Text()
	}
	return nc, nil
}

// evalChain implements every left-associative binary level (equality,
// comparison, term, factor): fold left to right, dispatching each
// operator token against the running result and the next operand. The
// chain's unaliased display name is the last operator applied, per the
// column-naming convention evalIdentifier/evalFunction also follow.
func (e *Evaluator) evalChain(node *ast.Node, src *table.Table, next func(*ast.Node, *table.Table) (table.NamedColumn, error)) (table.NamedColumn, error) {
	left, err := next(node.Children[0], src)
	if err != nil {
		return table.NamedColumn{}, err
	}
	for i, tok := range node.Tokens {
		right, err := next(node.Children[i+1], src)
		if err != nil {
			return table.NamedColumn{}, err
		}
		col, err := e.Ops.Dispatch(tok.Text, []column.Column{left.Column, right.Column})
		if err != nil {
			return table.NamedColumn{}, err
		}
		left = table.NamedColumn{Name: tok.Text, Column: col}
	}
	return left, nil
}

func (e *Evaluator) evalEquality(node *ast.Node, src *table.Table) (table.NamedColumn, error) {
	return e.evalChain(node, src, e.evalComparison)
}

func (e *Evaluator) evalComparison(node *ast.Node, src *table.Table) (table.NamedColumn, error) {
	return e.evalChain(node, src, e.evalTerm)
}

func (e *Evaluator) evalTerm(node *ast.Node, src *table.Table) (table.NamedColumn, error) {
	return e.evalChain(node, src, e.evalFactor)
}

func (e *Evaluator) evalFactor(node *ast.Node, src *table.Table) (table.NamedColumn, error) {
	return e.evalChain(node, src, e.evalUnary)
}

func (e *Evaluator) evalUnary(node *ast.Node, src *table.Table) (table.NamedColumn, error) {
	if len(node.Tokens) > 0 {
		op := node.Tokens[0]
		inner, err := e.evalUnary(node.Children[0], src)
		if err != nil {
			return table.NamedColumn{}, err
		}
		col, err := e.Ops.Dispatch(op.Text, []column.Column{inner.Column})
		if err != nil {
			return table.NamedColumn{}, err
		}
		return table.NamedColumn{Name: op.Text, Column: col}, nil
	}
	return e.evalPrimary(node.Children[0], src)
}

func (e *Evaluator) evalPrimary(node *ast.Node, src *table.Table) (table.NamedColumn, error) {
	inner := node.Children[0]
	switch inner.Type {
	case ast.Literal:
		return table.NamedColumn{Name: "", Column: literalColumn(inner.Text())}, nil

	case ast.Identifier:
		return e.evalIdentifier(inner, src)

	case ast.Function:
		return e.evalFunction(inner, src)

	case ast.Expression:
		return e.evalExpression(inner, src)

	case ast.Query:
		sub, err := e.Eval(inner)
		if err != nil {
			return table.NamedColumn{}, err
		}
		if sub.Width() != 1 {
			return table.NamedColumn{}, errs.Runtimef("parenthesized subquery must yield exactly one column, got %d", sub.Width())
		}
		pair := sub.ColumnQualifiers()[0]
		col, err := sub.Column(pair[0], pair[1])
		if err != nil {
			return table.NamedColumn{}, err
		}
		return table.NamedColumn{Name: pair[1], Column: col}, nil
	}

	return table.NamedColumn{}, errs.Syntaxf("unrecognized expression node %s", inner.Type)
}

// evalIdentifier resolves `name` via an unqualified table scan or
// `qualifier.name` via the direct index; either way the result's
// display name is the bare column name, with any qualifier dropped.
func (e *Evaluator) evalIdentifier(node *ast.Node, src *table.Table) (table.NamedColumn, error) {
	switch len(node.Tokens) {
	case 1:
		name := node.Tokens[0].Text
		col, err := src.ColumnSearch(name)
		if err != nil {
			return table.NamedColumn{}, err
		}
		return table.NamedColumn{Name: name, Column: col}, nil

	case 2:
		qualifier, name := node.Tokens[0].Text, node.Tokens[1].Text
		col, err := src.Column(qualifier, name)
		if err != nil {
			return table.NamedColumn{}, err
		}
		return table.NamedColumn{Name: name, Column: col}, nil
	}
	return table.NamedColumn{}, errs.Runtimef("identifier must have 1 or 2 parts")
}

// evalFunction evaluates its argument list (which may itself expand a
// `*`, enabling `count(*)`) and dispatches by name through the
// operator registry.
func (e *Evaluator) evalFunction(node *ast.Node, src *table.Table) (table.NamedColumn, error) {
	name := node.Tokens[0].Text
	args, err := e.evalColumns(node.Children[0], src)
	if err != nil {
		return table.NamedColumn{}, err
	}
	cols := make([]column.Column, len(args))
	for i, a := range args {
		cols[i] = a.Column
	}
	// count(*) expands its star into every source column; a reduce-op
	// only needs one of them to read off the row count.
	if e.Ops.IsReduceOp(name) && len(cols) > 1 {
		cols = cols[:1]
	}
	col, err := e.Ops.Dispatch(name, cols)
	if err != nil {
		return table.NamedColumn{}, err
	}
	return table.NamedColumn{Name: name, Column: col}, nil
}
