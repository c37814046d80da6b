// Package render formats a table.Table for terminal display and writes
// it back out to a delimited file for an INTO clause.
package render

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/grinchenko/sqlit/pkg/column"
	"github.com/grinchenko/sqlit/pkg/errs"
	"github.com/grinchenko/sqlit/pkg/table"
)

// Text renders t as a left-aligned, space-padded table: one header row
// followed by one row per record, each column padded to the widest of
// its header and its values plus two spaces.
func Text(t *table.Table) string {
	names := t.ColumnNames()
	cols := columnsOf(t, names)
	widths := columnWidths(names, cols)

	var b strings.Builder
	for i, name := range names {
		writeEntry(&b, widths[i], name)
	}
	b.WriteByte('\n')

	n := t.Len()
	for row := 0; row < n; row++ {
		for i, c := range cols {
			writeEntry(&b, widths[i], c.ValueString(row))
		}
		if row != n-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// WriteToFile serializes t to path as a quoted, delimited text file —
// tab-delimited if path ends in ".tsv", comma-delimited otherwise — with
// every value wrapped in double quotes and nulls written as NULL.
func WriteToFile(t *table.Table, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errs.IOf("%v", err)
	}
	defer f.Close()

	sep := ","
	if strings.ToLower(filepath.Ext(path)) == ".tsv" {
		sep = "\t"
	}

	names := t.ColumnNames()
	cols := columnsOf(t, names)

	var b strings.Builder
	for i, name := range names {
		if i > 0 {
			b.WriteString(sep)
		}
		b.WriteString(name)
	}

	n := t.Len()
	for row := 0; row < n; row++ {
		b.WriteByte('\n')
		for i := range names {
			if i > 0 {
				b.WriteString(sep)
			}
			b.WriteByte('"')
			b.WriteString(cols[i].ValueString(row))
			b.WriteByte('"')
		}
	}

	if _, err := f.WriteString(b.String()); err != nil {
		return errs.IOf("%v", err)
	}
	return nil
}

// columnsOf returns t's columns in declared order. It resolves by
// position rather than by name so two same-named columns — the result
// of a self-join's unqualified result table — each render their own
// data instead of both rendering whichever one a name lookup finds
// first.
func columnsOf(t *table.Table, names []string) []column.Column {
	out := make([]column.Column, len(names))
	for i := range names {
		out[i] = t.ColumnAt(i)
	}
	return out
}

func columnWidths(names []string, cols []column.Column) []int {
	widths := make([]int, len(names))
	for i, name := range names {
		width := len(name)
		for row := 0; row < cols[i].Len(); row++ {
			if w := len(cols[i].ValueString(row)); w > width {
				width = w
			}
		}
		widths[i] = width + 2
	}
	return widths
}

func writeEntry(b *strings.Builder, width int, value string) {
	b.WriteString(value)
	for i := len(value); i < width; i++ {
		b.WriteByte(' ')
	}
}
