package eval

import (
	"github.com/grinchenko/sqlit/pkg/ast"
	"github.com/grinchenko/sqlit/pkg/column"
	"github.com/grinchenko/sqlit/pkg/errs"
	"github.com/grinchenko/sqlit/pkg/table"
)

// evalFrom resolves the first from_stmt, then folds any left/right/
// inner joins onto it left to right.
func (e *Evaluator) evalFrom(node *ast.Node) (*table.Table, error) {
	left, err := e.evalFromStatement(node.Children[0])
	if err != nil {
		return nil, err
	}

	childIdx := 1
	for _, joinTok := range node.Tokens {
		rightStmt := node.Children[childIdx]
		cond := node.Children[childIdx+1]
		childIdx += 2

		right, err := e.evalFromStatement(rightStmt)
		if err != nil {
			return nil, err
		}

		left, err = e.evalJoin(left, right, cond, joinTok.Text)
		if err != nil {
			return nil, err
		}
	}

	return left, nil
}

// evalFromStatement resolves a table reference by Store lookup, or
// evaluates a subquery and renames it to the trailing identifier.
func (e *Evaluator) evalFromStatement(node *ast.Node) (*table.Table, error) {
	if len(node.Children) > 0 {
		sub, err := e.Eval(node.Children[0])
		if err != nil {
			return nil, err
		}
		return sub.WithAlias(node.Tokens[0].Text), nil
	}
	return e.Store.Get(node.Tokens[0].Text)
}

func (e *Evaluator) evalJoin(left, right *table.Table, cond *ast.Node, kind string) (*table.Table, error) {
	switch kind {
	case "inner join":
		return e.nestedLoopJoin(left, right, cond, false)
	case "left join":
		return e.nestedLoopJoin(left, right, cond, true)
	case "right join":
		// Evaluated as `right left join left on cond`, then its columns
		// are reordered back to the (left, right) order the user wrote.
		swapped, err := e.nestedLoopJoin(right, left, cond, true)
		if err != nil {
			return nil, err
		}
		pairs := append(left.ColumnQualifiers(), right.ColumnQualifiers()...)
		return swapped.Reorder(pairs)
	}
	return nil, errs.Runtimef("unsupported join kind %q", kind)
}

// nestedLoopJoin broadcasts each left row against the whole right
// table, evaluating cond to find matching right rows. Matches produce
// one output row per (left, right) pair; when padUnmatched is set (a
// left join), a left row with no match produces one row with the
// right side entirely null.
func (e *Evaluator) nestedLoopJoin(left, right *table.Table, cond *ast.Node, padUnmatched bool) (*table.Table, error) {
	leftPairs := left.ColumnQualifiers()
	rightPairs := right.ColumnQualifiers()
	rightLen := right.Len()

	var leftPerm, rightPerm []int
	for i := 0; i < left.Len(); i++ {
		combined := table.New("")
		for _, pair := range leftPairs {
			col, err := left.Column(pair[0], pair[1])
			if err != nil {
				return nil, err
			}
			combined.Push(table.NamedColumn{Name: pair[1], Column: col.Order(repeatIndex(i, rightLen))}, pair[0])
		}
		for _, pair := range rightPairs {
			col, err := right.Column(pair[0], pair[1])
			if err != nil {
				return nil, err
			}
			combined.Push(table.NamedColumn{Name: pair[1], Column: col}, pair[0])
		}

		nc, err := e.evalExpression(cond, combined)
		if err != nil {
			return nil, err
		}
		if nc.Column.Kind != column.Boolean {
			return nil, errs.Typef("join condition must evaluate to a boolean column, got %s", nc.Column.Kind)
		}

		matched := false
		for j := 0; j < rightLen; j++ {
			if nc.Column.IsNull(j) || !nc.Column.Bools[j] {
				continue
			}
			matched = true
			leftPerm = append(leftPerm, i)
			rightPerm = append(rightPerm, j)
		}
		if !matched && padUnmatched {
			leftPerm = append(leftPerm, i)
			rightPerm = append(rightPerm, -1)
		}
	}

	out := table.New("")
	for _, pair := range leftPairs {
		col, err := left.Column(pair[0], pair[1])
		if err != nil {
			return nil, err
		}
		out.Push(table.NamedColumn{Name: pair[1], Column: col.Order(leftPerm)}, pair[0])
	}
	for _, pair := range rightPairs {
		col, err := right.Column(pair[0], pair[1])
		if err != nil {
			return nil, err
		}
		out.Push(table.NamedColumn{Name: pair[1], Column: col.Order(rightPerm)}, pair[0])
	}
	return out, nil
}

func repeatIndex(i, n int) []int {
	perm := make([]int, n)
	for k := range perm {
		perm[k] = i
	}
	return perm
}
