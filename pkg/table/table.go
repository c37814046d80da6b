// Package table implements Table, the ordered collection of named
// columns a query operates on, and Store, the alias-indexed collection
// of tables that forms a query's environment.
package table

import (
	"github.com/grinchenko/sqlit/pkg/column"
	"github.com/grinchenko/sqlit/pkg/errs"
)

// NamedColumn is the unit of projection: a column paired with the
// display name it will carry in its owning table.
type NamedColumn struct {
	Name   string
	Column column.Column
}

// ColumnMeta describes one column for introspection (the REPL's \d
// command and the ingest contract's return value).
type ColumnMeta struct {
	Name string
	Kind column.Kind
}

// Meta summarizes a table's shape without exposing its data.
type Meta struct {
	Alias   string
	Columns []ColumnMeta
	Length  int
}

// Table is an ordered set of named columns sharing a row count, plus a
// two-level index from (qualifier, name) to column position. The
// qualifier is usually the table's own alias, but a join result keeps
// each side's original alias on its columns so `a.x` and `b.x` both
// resolve unambiguously after the join.
type Table struct {
	alias            string
	columnNames      []string
	columnQualifiers []string
	columns          []column.Column
	index            map[[2]string]int
	numRows          int
}

func New(alias string) *Table {
	return &Table{alias: alias, index: make(map[[2]string]int)}
}

func (t *Table) Alias() string {
	return t.alias
}

func (t *Table) WithAlias(alias string) *Table {
	out := New(alias)
	for i, name := range t.columnNames {
		out.Push(NamedColumn{Name: name, Column: t.columns[i]}, alias)
	}
	return out
}

// ColumnQualifiers returns the qualifier each column was pushed under,
// in column order — the layout Reorder's pair list is built from after
// a join.
func (t *Table) ColumnQualifiers() [][2]string {
	out := make([][2]string, len(t.columnNames))
	for i, name := range t.columnNames {
		out[i] = [2]string{t.columnQualifiers[i], name}
	}
	return out
}

func (t *Table) Len() int {
	return t.numRows
}

func (t *Table) Width() int {
	return len(t.columnNames)
}

func (t *Table) ColumnNames() []string {
	out := make([]string, len(t.columnNames))
	copy(out, t.columnNames)
	return out
}

// Push appends a named column under the given qualifier (typically the
// table's alias; joins pass each side's original alias so both halves
// remain addressable).
func (t *Table) Push(nc NamedColumn, qualifier string) {
	t.columnNames = append(t.columnNames, nc.Name)
	t.columnQualifiers = append(t.columnQualifiers, qualifier)
	t.columns = append(t.columns, nc.Column)
	t.index[[2]string{qualifier, nc.Name}] = len(t.columns) - 1
	if nc.Column.Len() > t.numRows {
		t.numRows = nc.Column.Len()
	}
}

// Column looks up a fully-qualified `qualifier.name` reference.
func (t *Table) Column(qualifier, name string) (column.Column, error) {
	idx, ok := t.index[[2]string{qualifier, name}]
	if !ok {
		return column.Column{}, errs.Lookupf("column %s.%s not found", qualifier, name)
	}
	return t.columns[idx], nil
}

// ColumnAt returns the column at position i in declared order. Unlike
// Column/ColumnSearch this never consults the (qualifier, name) index,
// so it still distinguishes two same-named columns a self-join can
// produce under a shared, empty qualifier.
func (t *Table) ColumnAt(i int) column.Column {
	return t.columns[i]
}

// ColumnSearch resolves an unqualified reference (`SELECT a FROM t`
// rather than `SELECT t.a FROM t`), erroring if the name is missing or
// ambiguous across qualifiers.
func (t *Table) ColumnSearch(name string) (column.Column, error) {
	found := -1
	for i, n := range t.columnNames {
		if n != name {
			continue
		}
		if found >= 0 {
			return column.Column{}, errs.Lookupf("unqualified column name %q is ambiguous", name)
		}
		found = i
	}
	if found < 0 {
		return column.Column{}, errs.Lookupf("column %q not found in table", name)
	}
	return t.columns[found], nil
}

// Row returns the value of every column at index i, in column order.
func (t *Table) Row(i int) []column.Column {
	out := make([]column.Column, len(t.columns))
	for j, c := range t.columns {
		out[j] = c.Select(oneHotMask(c.Len(), i))
	}
	return out
}

func oneHotMask(n, i int) []bool {
	mask := make([]bool, n)
	if i >= 0 && i < n {
		mask[i] = true
	}
	return mask
}

// Select returns a new Table keeping only the rows where mask is true.
func (t *Table) Select(mask []bool) *Table {
	out := New(t.alias)
	out.index = cloneIndex(t.index)
	out.columnNames = append([]string{}, t.columnNames...)
	out.columnQualifiers = append([]string{}, t.columnQualifiers...)
	out.columns = make([]column.Column, len(t.columns))
	for i, c := range t.columns {
		out.columns[i] = c.Select(mask)
	}
	out.numRows = countTrue(mask)
	return out
}

// Order returns a new Table with rows rearranged per perm; an
// out-of-range perm entry produces a null row in every column (used to
// pad the unmatched side of an outer join).
func (t *Table) Order(perm []int) *Table {
	out := New(t.alias)
	out.index = cloneIndex(t.index)
	out.columnNames = append([]string{}, t.columnNames...)
	out.columnQualifiers = append([]string{}, t.columnQualifiers...)
	out.columns = make([]column.Column, len(t.columns))
	for i, c := range t.columns {
		out.columns[i] = c.Order(perm)
	}
	out.numRows = len(perm)
	return out
}

// Limit truncates every column to its first n rows.
func (t *Table) Limit(n int) *Table {
	if n >= t.numRows {
		return t
	}
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	return t.Order(perm)
}

// Union appends other's rows onto t's, column for column and in
// declared order; the two tables must have the same width and
// compatible column kinds.
func (t *Table) Union(other *Table) (*Table, error) {
	if t.Width() != other.Width() {
		return nil, errs.Runtimef("cannot union tables of width %d and %d", t.Width(), other.Width())
	}

	out := New(t.alias)
	out.index = cloneIndex(t.index)
	out.columnNames = append([]string{}, t.columnNames...)
	out.columnQualifiers = append([]string{}, t.columnQualifiers...)
	out.columns = make([]column.Column, len(t.columns))
	for i := range t.columns {
		merged, err := t.columns[i].Append(other.columns[i])
		if err != nil {
			return nil, err
		}
		out.columns[i] = merged
	}
	out.numRows = t.numRows + other.numRows
	return out, nil
}

// Reorder returns a new Table with columns rearranged to the given
// order of qualifier/name pairs; used to restore the (left, right)
// column order after a right join is evaluated as a swapped left join.
func (t *Table) Reorder(pairs [][2]string) (*Table, error) {
	out := New(t.alias)
	out.index = make(map[[2]string]int)

	for _, pair := range pairs {
		idx, ok := t.index[pair]
		if !ok {
			return nil, errs.Runtimef("column %s.%s missing during reorder", pair[0], pair[1])
		}
		out.columnNames = append(out.columnNames, t.columnNames[idx])
		out.columnQualifiers = append(out.columnQualifiers, pair[0])
		out.columns = append(out.columns, t.columns[idx])
		out.index[pair] = len(out.columns) - 1
	}
	out.numRows = t.numRows

	return out, nil
}

// HashRow hashes every column's value at row i into a single 64-bit
// digest, used to assign GROUP BY membership.
func (t *Table) HashRow(i int) uint64 {
	var h uint64 = 14695981039346656037 // FNV offset basis, reused as fold seed
	for _, c := range t.columns {
		h ^= c.HashRow(i)
		h *= 1099511628211
	}
	return h
}

// Meta summarizes the table for introspection.
func (t *Table) Meta() Meta {
	m := Meta{Alias: t.alias, Length: t.numRows}
	for i, name := range t.columnNames {
		m.Columns = append(m.Columns, ColumnMeta{Name: name, Kind: t.columns[i].Kind})
	}
	return m
}

func cloneIndex(in map[[2]string]int) map[[2]string]int {
	out := make(map[[2]string]int, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func countTrue(mask []bool) int {
	n := 0
	for _, m := range mask {
		if m {
			n++
		}
	}
	return n
}
