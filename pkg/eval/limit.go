package eval

import (
	"strconv"

	"github.com/grinchenko/sqlit/pkg/ast"
	"github.com/grinchenko/sqlit/pkg/errs"
	"github.com/grinchenko/sqlit/pkg/table"
)

// evalLimit truncates the result to its first n rows, clamped to the
// row count already (Table.Limit no-ops when n >= its length).
func (e *Evaluator) evalLimit(node *ast.Node, src *table.Table) (*table.Table, error) {
	text := node.Children[0].Tokens[0].Text
	n, err := strconv.Atoi(text)
	if err != nil || n < 0 {
		return nil, errs.Typef("limit requires a non-negative integer, got %q", text)
	}
	return src.Limit(n), nil
}
