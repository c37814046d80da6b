package ingest

import (
	"strconv"
	"strings"
	"time"

	"github.com/grinchenko/sqlit/pkg/column"
)

// dateLayouts lists the formats a date column is probed against, in
// the order they're tried. tryDate commits to the first format that
// parses every non-null value in the column — a column is never a mix
// of formats.
var dateLayouts = []string{
	time.RFC1123Z, // close enough to RFC 2822 for our probing purposes
	time.RFC3339,
	"06-01-02",
	"2006-01-02",
	"01/02/2006",
}

// buildColumn infers a column's type from its raw string values and
// converts them, probing candidate types in a fixed priority order:
// Boolean, then DateTime, then Int, then Float, falling back to
// String. nullToken marks which raw value represents a null entry.
func buildColumn(raw []string, nullToken string) column.Column {
	if c, ok := tryBoolean(raw, nullToken); ok {
		return c
	}
	if c, ok := tryDate(raw, nullToken); ok {
		return c
	}
	if c, ok := tryInt(raw, nullToken); ok {
		return c
	}
	if c, ok := tryFloat(raw, nullToken); ok {
		return c
	}
	return tryString(raw, nullToken)
}

// tryBoolean only accepts the literal words "true"/"false" (case
// insensitive) — strconv.ParseBool's looser "1"/"0"/"t"/"f" forms would
// misclassify ordinary 0/1 integer columns as Boolean.
func tryBoolean(raw []string, nullToken string) (column.Column, bool) {
	values := make([]bool, len(raw))
	valid := make([]bool, len(raw))
	for i, v := range raw {
		if v == nullToken {
			continue
		}
		switch strings.ToLower(v) {
		case "true":
			values[i] = true
		case "false":
			values[i] = false
		default:
			return column.Column{}, false
		}
		valid[i] = true
	}
	return column.NewBooleans(values, valid), true
}

func tryInt(raw []string, nullToken string) (column.Column, bool) {
	values := make([]int64, len(raw))
	valid := make([]bool, len(raw))
	for i, v := range raw {
		if v == nullToken {
			continue
		}
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return column.Column{}, false
		}
		values[i] = n
		valid[i] = true
	}
	return column.NewInts(values, valid), true
}

func tryFloat(raw []string, nullToken string) (column.Column, bool) {
	values := make([]float64, len(raw))
	valid := make([]bool, len(raw))
	for i, v := range raw {
		if v == nullToken {
			continue
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return column.Column{}, false
		}
		values[i] = f
		valid[i] = true
	}
	return column.NewFloats(values, valid), true
}

func tryString(raw []string, nullToken string) column.Column {
	values := make([]string, len(raw))
	valid := make([]bool, len(raw))
	for i, v := range raw {
		if v == nullToken {
			continue
		}
		values[i] = v
		valid[i] = true
	}
	return column.NewStrings(values, valid)
}

// tryDate finds the first layout that parses every non-null value in
// the column, trying each candidate layout in turn and committing to
// the first one that works for the whole column.
func tryDate(raw []string, nullToken string) (column.Column, bool) {
	for _, layout := range dateLayouts {
		values := make([]int64, len(raw))
		valid := make([]bool, len(raw))
		ok := true
		for i, v := range raw {
			if v == nullToken {
				continue
			}
			t, err := time.Parse(layout, strings.TrimSpace(v))
			if err != nil {
				ok = false
				break
			}
			values[i] = t.UTC().Unix()
			valid[i] = true
		}
		if ok {
			return column.NewDates(values, valid), true
		}
	}
	return column.Column{}, false
}
