// Package ops implements the operator registry: the named map-ops and
// reduce-ops the evaluator dispatches function calls and operators to.
// A map-op takes N columns and returns one column of the same row
// count (after broadcasting); a reduce-op takes one column and
// collapses it to a single row.
package ops

import "github.com/grinchenko/sqlit/pkg/column"

// MapOp computes an elementwise result over one or more broadcast-
// compatible columns.
type MapOp func(args []column.Column) (column.Column, error)

// ReduceOp collapses one column into a single-row column.
type ReduceOp func(arg column.Column) (column.Column, error)

// Registry holds every named map-op and reduce-op the evaluator can
// dispatch by name. It is never mutated once Default returns it, so it
// is safe to share across concurrently evaluated queries.
type Registry struct {
	mapOps    map[string]MapOp
	reduceOps map[string]ReduceOp
}

// Default returns the registry populated with every built-in operator.
func Default() *Registry {
	r := &Registry{
		mapOps:    make(map[string]MapOp),
		reduceOps: make(map[string]ReduceOp),
	}
	registerArithmetic(r)
	registerComparison(r)
	registerBoolean(r)
	registerNullOps(r)
	registerDates(r)
	registerReduceOps(r)
	return r
}

func (r *Registry) SetMapOp(name string, op MapOp) {
	r.mapOps[name] = op
}

func (r *Registry) SetReduceOp(name string, op ReduceOp) {
	r.reduceOps[name] = op
}

// Dispatch resolves name as a map-op first, then a (single-argument)
// reduce-op, matching how the grammar's Function node can name either
// kind of operator.
func (r *Registry) Dispatch(name string, args []column.Column) (column.Column, error) {
	if op, ok := r.mapOps[name]; ok {
		return op(args)
	}
	if op, ok := r.reduceOps[name]; ok {
		if len(args) != 1 {
			return column.Column{}, argCountError(name, 1, len(args))
		}
		return op(args[0])
	}
	return column.Column{}, lookupError(name)
}

// IsReduceOp reports whether name resolves to a reduce-op (used by the
// function evaluator to pass a reduce-op only the first column of a
// multi-column argument list such as count(*)).
func (r *Registry) IsReduceOp(name string) bool {
	_, ok := r.reduceOps[name]
	return ok
}
