// Package eval walks a parsed query AST against a Store and an operator
// registry, producing a result Table. Each clause gets its own file
// (from.go, where.go, groupby.go, orderby.go, limit.go, into.go); the
// projection expression evaluator that all of them share lives in
// expr.go.
package eval

import (
	"github.com/grinchenko/sqlit/pkg/ast"
	"github.com/grinchenko/sqlit/pkg/errs"
	"github.com/grinchenko/sqlit/pkg/ops"
	"github.com/grinchenko/sqlit/pkg/table"
)

// Evaluator threads a Store (the query environment) and an operator
// registry through every stage of a query.
type Evaluator struct {
	Store *table.Store
	Ops   *ops.Registry
}

// New returns an Evaluator backed by the default operator registry.
func New(store *table.Store) *Evaluator {
	return &Evaluator{Store: store, Ops: ops.Default()}
}

// findClause returns node's child of type t, or nil if it has none —
// every optional clause appears at most once by grammar.
func findClause(node *ast.Node, t ast.NodeType) *ast.Node {
	for _, c := range node.Children {
		if c.Type == t {
			return c
		}
	}
	return nil
}

// Eval runs the pipeline: from -> where -> (group by -> per-group
// projection -> union -> optional order by) or (optional order by ->
// projection) -> limit -> into.
func (e *Evaluator) Eval(node *ast.Node) (*table.Table, error) {
	if node.Type != ast.Query {
		return nil, errs.Runtimef("eval requires a query node, got %s", node.Type)
	}

	columnsNode := node.Children[0]

	src := table.New("")
	if fromNode := findClause(node, ast.From); fromNode != nil {
		t, err := e.evalFrom(fromNode)
		if err != nil {
			return nil, err
		}
		src = t
	}

	if whereNode := findClause(node, ast.Where); whereNode != nil {
		filtered, err := e.evalWhere(whereNode, src)
		if err != nil {
			return nil, err
		}
		src = filtered
	}

	var result *table.Table
	if groupByNode := findClause(node, ast.GroupBy); groupByNode != nil {
		grouped, err := e.evalGroupBy(groupByNode, columnsNode, src)
		if err != nil {
			return nil, err
		}
		result = grouped

		if orderByNode := findClause(node, ast.OrderBy); orderByNode != nil {
			ordered, err := e.evalOrderBy(orderByNode, result)
			if err != nil {
				return nil, err
			}
			result = ordered
		}
	} else {
		if orderByNode := findClause(node, ast.OrderBy); orderByNode != nil {
			ordered, err := e.evalOrderBy(orderByNode, src)
			if err != nil {
				return nil, err
			}
			src = ordered
		}

		projected, err := e.evalColumns(columnsNode, src)
		if err != nil {
			return nil, err
		}
		result = assembleTable(projected)
	}

	if limitNode := findClause(node, ast.Limit); limitNode != nil {
		limited, err := e.evalLimit(limitNode, result)
		if err != nil {
			return nil, err
		}
		result = limited
	}

	if intoNode := findClause(node, ast.Into); intoNode != nil {
		if err := e.evalInto(intoNode, result); err != nil {
			return nil, err
		}
		return table.New(""), nil
	}

	return result, nil
}

// assembleTable collects a projection's named columns into a fresh,
// unqualified table — matching every output of a select, whatever
// qualifiers its source columns carried.
func assembleTable(cols []table.NamedColumn) *table.Table {
	out := table.New("")
	for _, nc := range cols {
		out.Push(nc, "")
	}
	return out
}
