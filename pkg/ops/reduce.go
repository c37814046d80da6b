package ops

import (
	"github.com/grinchenko/sqlit/pkg/column"
	"github.com/grinchenko/sqlit/pkg/errs"
)

func registerReduceOps(r *Registry) {
	r.SetReduceOp("sum", sumReduce)
	r.SetReduceOp("mean", meanReduce)
	r.SetReduceOp("min", minMaxReduce("min", true))
	r.SetReduceOp("max", minMaxReduce("max", false))
	r.SetReduceOp("count", countReduce)
}

// numericValues collects arg's non-null values as float64, promoting
// Int transparently. Only Int and Float columns may be reduced this
// way; other kinds are a Type error.
func numericValues(name string, arg column.Column) ([]float64, error) {
	if arg.Kind != column.Int && arg.Kind != column.Float {
		return nil, errs.Typef("%s requires a numeric (Int/Float) column", name)
	}
	values := make([]float64, 0, arg.Len())
	for i := 0; i < arg.Len(); i++ {
		if arg.IsNull(i) {
			continue
		}
		if arg.Kind == column.Int {
			values = append(values, float64(arg.Ints[i]))
		} else {
			values = append(values, arg.Floats[i])
		}
	}
	return values, nil
}

func sumReduce(arg column.Column) (column.Column, error) {
	values, err := numericValues("sum", arg)
	if err != nil {
		return column.Column{}, err
	}
	var total float64
	for _, v := range values {
		total += v
	}
	if arg.Kind == column.Int {
		return column.SingleInt(int64(total)), nil
	}
	return column.SingleFloat(total), nil
}

func meanReduce(arg column.Column) (column.Column, error) {
	values, err := numericValues("mean", arg)
	if err != nil {
		return column.Column{}, err
	}
	if len(values) == 0 {
		return column.Column{}, errs.Runtimef("mean of an empty column is undefined")
	}
	var total float64
	for _, v := range values {
		total += v
	}
	return column.SingleFloat(total / float64(len(values))), nil
}

func minMaxReduce(name string, wantMin bool) ReduceOp {
	return func(arg column.Column) (column.Column, error) {
		values, err := numericValues(name, arg)
		if err != nil {
			return column.Column{}, err
		}
		if len(values) == 0 {
			return column.Column{}, errs.Runtimef("%s of an empty column is undefined", name)
		}

		best := values[0]
		for _, v := range values[1:] {
			if (wantMin && v < best) || (!wantMin && v > best) {
				best = v
			}
		}
		if arg.Kind == column.Int {
			return column.SingleInt(int64(best)), nil
		}
		return column.SingleFloat(best), nil
	}
}

func countReduce(arg column.Column) (column.Column, error) {
	return column.SingleInt(int64(arg.Len())), nil
}
