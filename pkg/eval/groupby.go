package eval

import (
	"github.com/grinchenko/sqlit/pkg/ast"
	"github.com/grinchenko/sqlit/pkg/errs"
	"github.com/grinchenko/sqlit/pkg/table"
)

// evalGroupBy evaluates the group key expressions into a key table,
// assigns every source row to a group in order of first appearance,
// then runs the query's own select list (columnsNode) against each
// group's subtable — key columns at their representative row plus
// every non-key source column narrowed to that group's rows — and
// unions the per-group projections. Every projected column must have
// exactly one row, or the query fails with a Runtime error. A bare
// non-key column reference fails this check for any group of two or
// more rows; in a one-row group it passes.
func (e *Evaluator) evalGroupBy(groupByNode, columnsNode *ast.Node, src *table.Table) (*table.Table, error) {
	keys, err := e.evalColumns(groupByNode.Children[0], src)
	if err != nil {
		return nil, err
	}

	keyTable := table.New("")
	for _, k := range keys {
		keyTable.Push(k, "")
	}
	n := keyTable.Len()
	if n == 0 {
		return table.New(""), nil
	}

	assignments := make([]int, n)
	hist := make(map[uint64]int)
	var representatives []int
	for i := 0; i < n; i++ {
		h := keyTable.HashRow(i)
		g, ok := hist[h]
		if !ok {
			g = len(representatives)
			hist[h] = g
			representatives = append(representatives, i)
		}
		assignments[i] = g
	}

	sourcePairs := src.ColumnQualifiers()

	var groupTables []*table.Table
	for g, rep := range representatives {
		groupSrc := table.New("")
		for _, k := range keys {
			groupSrc.Push(table.NamedColumn{Name: k.Name, Column: k.Column.Select(oneHotMask(n, rep))}, "")
		}

		mask := make([]bool, n)
		for i, a := range assignments {
			if a == g {
				mask[i] = true
			}
		}
		for _, pair := range sourcePairs {
			if _, err := groupSrc.ColumnSearch(pair[1]); err == nil {
				continue // a group key of the same name shadows this source column
			}
			col, err := src.Column(pair[0], pair[1])
			if err != nil {
				return nil, err
			}
			groupSrc.Push(table.NamedColumn{Name: pair[1], Column: col.Select(mask)}, pair[0])
		}

		projected, err := e.evalColumns(columnsNode, groupSrc)
		if err != nil {
			return nil, err
		}
		for _, p := range projected {
			if p.Column.Len() != 1 {
				return nil, errs.Runtimef("group by projection of %q must reduce to a single row, got %d", p.Name, p.Column.Len())
			}
		}

		groupTables = append(groupTables, assembleTable(projected))
	}

	result := groupTables[0]
	for _, gt := range groupTables[1:] {
		merged, err := result.Union(gt)
		if err != nil {
			return nil, err
		}
		result = merged
	}
	return result, nil
}

func oneHotMask(n, i int) []bool {
	mask := make([]bool, n)
	mask[i] = true
	return mask
}
