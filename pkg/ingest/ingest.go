// Package ingest loads a delimited text file into a table.Table,
// inferring each column's type by probing a fixed sequence of
// converters against its raw string values.
package ingest

import (
	"bufio"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/grinchenko/sqlit/pkg/column"
	"github.com/grinchenko/sqlit/pkg/errs"
	"github.com/grinchenko/sqlit/pkg/table"
)

// Options configures one file load.
type Options struct {
	Separator Separator
	NullToken string
}

func DefaultOptions() Options {
	return Options{Separator: Csv, NullToken: "null"}
}

// LoadFile reads path into a Table whose alias is the file's base name
// (extension stripped, remaining dots replaced with underscores,
// lowercased).
func LoadFile(path string, opts Options) (*table.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errs.IOf("%v", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	if !scanner.Scan() {
		return nil, errs.IOf("%s is empty", path)
	}
	headers := parseHeaderLine(scanner.Text(), opts.Separator)

	raw := make([][]string, len(headers))
	for scanner.Scan() {
		fields := cleanFields(splitFields(scanner.Text(), opts.Separator))
		for i := range headers {
			var v string
			if i < len(fields) {
				v = fields[i]
			}
			raw[i] = append(raw[i], v)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errs.IOf("%v", err)
	}

	alias := tableAlias(path)
	columns := buildColumnsConcurrently(raw, opts.NullToken)

	t := table.New(alias)
	for i, name := range headers {
		t.Push(table.NamedColumn{Name: name, Column: columns[i]}, alias)
	}
	return t, nil
}

// buildColumnsConcurrently infers every column's type in parallel — an
// embarrassingly parallel, per-column workload: one goroutine per
// column, joined by a sync.WaitGroup before returning. The number of
// goroutines is not capped.
func buildColumnsConcurrently(raw [][]string, nullToken string) []column.Column {
	out := make([]column.Column, len(raw))
	var wg sync.WaitGroup
	wg.Add(len(raw))
	for i, col := range raw {
		go func(i int, col []string) {
			defer wg.Done()
			out[i] = buildColumn(col, nullToken)
		}(i, col)
	}
	wg.Wait()
	return out
}

func cleanFields(fields []string) []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = strings.Trim(strings.TrimSpace(f), `"'`)
	}
	return out
}

func parseHeaderLine(line string, sep Separator) []string {
	fields := cleanFields(splitFields(line, sep))
	out := make([]string, len(fields))
	for i, f := range fields {
		if f == "" {
			out[i] = strconv.Itoa(i)
			continue
		}
		out[i] = strings.ReplaceAll(strings.ToLower(f), ".", "_")
	}
	return out
}

func tableAlias(path string) string {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	return strings.ToLower(strings.ReplaceAll(stem, ".", "_"))
}
