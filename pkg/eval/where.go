package eval

import (
	"github.com/grinchenko/sqlit/pkg/ast"
	"github.com/grinchenko/sqlit/pkg/column"
	"github.com/grinchenko/sqlit/pkg/errs"
	"github.com/grinchenko/sqlit/pkg/table"
)

// evalWhere evaluates the predicate and selects the rows where it's
// true; null and false both exclude a row.
func (e *Evaluator) evalWhere(node *ast.Node, src *table.Table) (*table.Table, error) {
	nc, err := e.evalExpression(node.Children[0], src)
	if err != nil {
		return nil, err
	}
	if nc.Column.Kind != column.Boolean {
		return nil, errs.Typef("where clause must evaluate to a boolean column, got %s", nc.Column.Kind)
	}

	mask, err := booleanMask(nc.Column, src.Len())
	if err != nil {
		return nil, err
	}
	return src.Select(mask), nil
}

// booleanMask stretches a boolean column to length n, allowing a
// constant (length-1) predicate to apply uniformly to every row.
func booleanMask(col column.Column, n int) ([]bool, error) {
	if col.Len() != n && col.Len() != 1 {
		return nil, errs.Runtimef("predicate result length %d does not match table length %d", col.Len(), n)
	}
	mask := make([]bool, n)
	for i := 0; i < n; i++ {
		idx := i
		if col.Len() == 1 {
			idx = 0
		}
		mask[i] = !col.IsNull(idx) && col.Bools[idx]
	}
	return mask, nil
}
