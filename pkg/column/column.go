// Package column implements the tagged, nullable, homogeneous vector
// that every table cell lives in. A Column is immutable once built:
// every operation (Select, Order, Limit) returns a new Column sharing
// no mutable state with its source.
package column

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/grinchenko/sqlit/pkg/errs"
)

// Kind tags which of the five value types a Column holds.
type Kind int

const (
	Boolean Kind = iota
	Int
	Float
	String
	DateTime
)

func (k Kind) String() string {
	switch k {
	case Boolean:
		return "boolean"
	case Int:
		return "int"
	case Float:
		return "float"
	case String:
		return "string"
	case DateTime:
		return "datetime"
	default:
		return "unknown"
	}
}

// Column is a tagged union over five typed slices. Only the slice
// matching Kind is populated; Valid marks which entries are present
// (false means null, and the backing slice entry at that index is the
// type's zero value and must not be read).
type Column struct {
	Kind  Kind
	Valid []bool

	Bools   []bool
	Ints    []int64
	Floats  []float64
	Strings []string
	Dates   []int64 // seconds since epoch, UTC
}

func newColumn(kind Kind, n int) Column {
	return Column{Kind: kind, Valid: make([]bool, n)}
}

func NewBooleans(values []bool, valid []bool) Column {
	return Column{Kind: Boolean, Bools: values, Valid: valid}
}

func NewInts(values []int64, valid []bool) Column {
	return Column{Kind: Int, Ints: values, Valid: valid}
}

func NewFloats(values []float64, valid []bool) Column {
	return Column{Kind: Float, Floats: values, Valid: valid}
}

func NewStrings(values []string, valid []bool) Column {
	return Column{Kind: String, Strings: values, Valid: valid}
}

func NewDates(values []int64, valid []bool) Column {
	return Column{Kind: DateTime, Dates: values, Valid: valid}
}

// Single-value constructors, used by the projection evaluator to turn a
// scalar literal into a one-row column.
func SingleBool(v bool) Column    { return NewBooleans([]bool{v}, []bool{true}) }
func SingleInt(v int64) Column    { return NewInts([]int64{v}, []bool{true}) }
func SingleFloat(v float64) Column { return NewFloats([]float64{v}, []bool{true}) }
func SingleString(v string) Column { return NewStrings([]string{v}, []bool{true}) }
func SingleDate(v int64) Column   { return NewDates([]int64{v}, []bool{true}) }

// Null returns a length-1 null column of the given kind.
func Null(kind Kind) Column {
	c := newColumn(kind, 1)
	switch kind {
	case Boolean:
		c.Bools = make([]bool, 1)
	case Int:
		c.Ints = make([]int64, 1)
	case Float:
		c.Floats = make([]float64, 1)
	case String:
		c.Strings = make([]string, 1)
	case DateTime:
		c.Dates = make([]int64, 1)
	}
	return c
}

func (c Column) Len() int {
	return len(c.Valid)
}

func (c Column) IsNull(i int) bool {
	return !c.Valid[i]
}

// Select returns a new Column holding only the rows where mask is true,
// in order.
func (c Column) Select(mask []bool) Column {
	n := 0
	for _, m := range mask {
		if m {
			n++
		}
	}

	out := newColumn(c.Kind, n)
	idx := 0
	switch c.Kind {
	case Boolean:
		out.Bools = make([]bool, n)
	case Int:
		out.Ints = make([]int64, n)
	case Float:
		out.Floats = make([]float64, n)
	case String:
		out.Strings = make([]string, n)
	case DateTime:
		out.Dates = make([]int64, n)
	}

	for i, m := range mask {
		if !m {
			continue
		}
		out.Valid[idx] = c.Valid[i]
		switch c.Kind {
		case Boolean:
			out.Bools[idx] = c.Bools[i]
		case Int:
			out.Ints[idx] = c.Ints[i]
		case Float:
			out.Floats[idx] = c.Floats[i]
		case String:
			out.Strings[idx] = c.Strings[i]
		case DateTime:
			out.Dates[idx] = c.Dates[i]
		}
		idx++
	}

	return out
}

// Order returns a new Column with rows rearranged to out[i] = in[perm[i]].
// An out-of-range perm entry produces a null row (used to pad a join's
// unmatched side).
func (c Column) Order(perm []int) Column {
	n := len(perm)
	out := newColumn(c.Kind, n)
	switch c.Kind {
	case Boolean:
		out.Bools = make([]bool, n)
	case Int:
		out.Ints = make([]int64, n)
	case Float:
		out.Floats = make([]float64, n)
	case String:
		out.Strings = make([]string, n)
	case DateTime:
		out.Dates = make([]int64, n)
	}

	for i, src := range perm {
		if src < 0 || src >= c.Len() {
			continue // leave Valid[i] false: a null row
		}
		out.Valid[i] = c.Valid[src]
		switch c.Kind {
		case Boolean:
			out.Bools[i] = c.Bools[src]
		case Int:
			out.Ints[i] = c.Ints[src]
		case Float:
			out.Floats[i] = c.Floats[src]
		case String:
			out.Strings[i] = c.Strings[src]
		case DateTime:
			out.Dates[i] = c.Dates[src]
		}
	}

	return out
}

// Limit truncates (or no-ops, if n >= Len) the column to its first n rows.
func (c Column) Limit(n int) Column {
	if n >= c.Len() {
		return c
	}
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	return c.Order(perm)
}

// Append concatenates other onto c; both must share a Kind.
func (c Column) Append(other Column) (Column, error) {
	if c.Kind != other.Kind {
		return Column{}, errs.Typef("cannot concatenate %s column with %s column", c.Kind, other.Kind)
	}

	out := newColumn(c.Kind, c.Len()+other.Len())
	copy(out.Valid, c.Valid)
	copy(out.Valid[c.Len():], other.Valid)

	switch c.Kind {
	case Boolean:
		out.Bools = append(append([]bool{}, c.Bools...), other.Bools...)
	case Int:
		out.Ints = append(append([]int64{}, c.Ints...), other.Ints...)
	case Float:
		out.Floats = append(append([]float64{}, c.Floats...), other.Floats...)
	case String:
		out.Strings = append(append([]string{}, c.Strings...), other.Strings...)
	case DateTime:
		out.Dates = append(append([]int64{}, c.Dates...), other.Dates...)
	}

	return out, nil
}

// Less reports whether row i sorts before row j; nulls compare equal to
// everything (stable sort leaves their relative order as it found it),
// Booleans sort true-before-false, and the rest use natural ordering.
func (c Column) Less(i, j int) bool {
	if c.IsNull(i) || c.IsNull(j) {
		return false
	}
	switch c.Kind {
	case Boolean:
		return c.Bools[i] && !c.Bools[j]
	case Int:
		return c.Ints[i] < c.Ints[j]
	case Float:
		return c.Floats[i] < c.Floats[j]
	case String:
		return c.Strings[i] < c.Strings[j]
	case DateTime:
		return c.Dates[i] < c.Dates[j]
	}
	return false
}

// Equal reports whether row i and row j hold the same value (two nulls
// are considered equal for grouping purposes; floats are compared on a
// fixed 6-decimal grid to tolerate accumulated rounding).
func (c Column) Equal(i, j int) bool {
	if c.IsNull(i) && c.IsNull(j) {
		return true
	}
	if c.IsNull(i) != c.IsNull(j) {
		return false
	}
	switch c.Kind {
	case Boolean:
		return c.Bools[i] == c.Bools[j]
	case Int:
		return c.Ints[i] == c.Ints[j]
	case Float:
		return round6(c.Floats[i]) == round6(c.Floats[j])
	case String:
		return c.Strings[i] == c.Strings[j]
	case DateTime:
		return c.Dates[i] == c.Dates[j]
	}
	return false
}

func round6(f float64) float64 {
	return math.Round(f*1e6) / 1e6
}

// HashRow returns a 64-bit hash of row i, stable across columns of the
// same kind and value. Used for the group-by key table; a null row
// hashes to a fixed sentinel distinct from any real value's hash.
func (c Column) HashRow(i int) uint64 {
	const nullSentinel = 0x9e3779b97f4a7c15
	const seed = 14695981039346656037 // FNV-1a offset basis
	const prime = 1099511628211

	if c.IsNull(i) {
		return nullSentinel
	}

	h := uint64(seed)
	mix := func(b byte) {
		h ^= uint64(b)
		h *= prime
	}
	mixString := func(s string) {
		for i := 0; i < len(s); i++ {
			mix(s[i])
		}
	}

	switch c.Kind {
	case Boolean:
		if c.Bools[i] {
			mix(1)
		} else {
			mix(0)
		}
	case Int:
		mixString(fmt.Sprintf("%d", c.Ints[i]))
	case Float:
		mixString(fmt.Sprintf("%.6f", round6(c.Floats[i])))
	case String:
		mixString(c.Strings[i])
	case DateTime:
		mixString(fmt.Sprintf("%d", c.Dates[i]))
	}

	return h
}

// ValueString renders row i the way pkg/render and INTO serialize it:
// NULL for a null entry, otherwise the value's display form.
func (c Column) ValueString(i int) string {
	if c.IsNull(i) {
		return "NULL"
	}
	switch c.Kind {
	case Boolean:
		return fmt.Sprintf("%v", c.Bools[i])
	case Int:
		return fmt.Sprintf("%d", c.Ints[i])
	case Float:
		return fmt.Sprintf("%v", c.Floats[i])
	case String:
		return c.Strings[i]
	case DateTime:
		return time.Unix(c.Dates[i], 0).UTC().Format("2006-01-02 15:04:05")
	}
	return ""
}

// SortByPermutation returns the permutation order such that applying it
// (via Order) yields the column stably sorted ascending by Less.
func SortByPermutation(n int, less func(i, j int) bool) []int {
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	sort.SliceStable(perm, func(a, b int) bool {
		return less(perm[a], perm[b])
	})
	return perm
}
