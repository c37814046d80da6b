package eval

import (
	"github.com/grinchenko/sqlit/pkg/ast"
	"github.com/grinchenko/sqlit/pkg/column"
	"github.com/grinchenko/sqlit/pkg/table"
)

type orderClause struct {
	column column.Column
	desc   bool
}

// evalOrderBy builds a stable multi-key permutation: each clause
// resolves its column by an unqualified scan; ties fall through to the
// next clause; nulls never compare less than anything, so they keep
// their relative (pre-sort) position.
func (e *Evaluator) evalOrderBy(node *ast.Node, src *table.Table) (*table.Table, error) {
	clauses := make([]orderClause, len(node.Children))
	for i, stmt := range node.Children {
		col, err := src.ColumnSearch(stmt.Tokens[0].Text)
		if err != nil {
			return nil, err
		}
		desc := len(stmt.Tokens) > 1 && stmt.Tokens[1].Text == "desc"
		clauses[i] = orderClause{column: col, desc: desc}
	}

	less := func(i, j int) bool {
		for _, c := range clauses {
			a, b := i, j
			if c.desc {
				a, b = j, i
			}
			if c.column.Less(a, b) {
				return true
			}
			if c.column.Less(b, a) {
				return false
			}
		}
		return false
	}

	perm := column.SortByPermutation(src.Len(), less)
	return src.Order(perm), nil
}
