package eval

import (
	"strconv"
	"strings"

	"github.com/grinchenko/sqlit/pkg/column"
)

// literalColumn turns one literal token's text into a single-row
// column, probing Boolean, Int, Float, falling back to String. Unlike
// ingest it never probes DateTime, and a quoted string is always a
// String: it is unwrapped so `'hello' = 'hello'` compares against an
// ingested, unquoted "hello", but its contents are not type-probed
// (`'2024-01-02'` stays a String). The bare `null` keyword produces a
// length-1 null column; its Kind is irrelevant because equality and
// ordering treat any length-1 null column as a scalar null regardless
// of tag.
func literalColumn(text string) column.Column {
	switch text {
	case "true":
		return column.SingleBool(true)
	case "false":
		return column.SingleBool(false)
	case "null":
		return column.Null(column.Boolean)
	}

	if len(text) >= 2 && strings.HasPrefix(text, "'") && strings.HasSuffix(text, "'") {
		return column.SingleString(text[1 : len(text)-1])
	}

	if n, err := strconv.ParseInt(text, 10, 64); err == nil {
		return column.SingleInt(n)
	}
	if f, err := strconv.ParseFloat(text, 64); err == nil {
		return column.SingleFloat(f)
	}

	return column.SingleString(text)
}
