package ops

import (
	"testing"

	"github.com/grinchenko/sqlit/pkg/column"
)

func TestAddIntInt(t *testing.T) {
	r := Default()
	out, err := r.Dispatch("+", []column.Column{
		column.NewInts([]int64{1, 2, 3}, []bool{true, true, true}),
		column.NewInts([]int64{10, 20, 30}, []bool{true, true, true}),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Kind != column.Int {
		t.Fatalf("expected Int result, got %v", out.Kind)
	}
	want := []int64{11, 22, 33}
	for i, w := range want {
		if out.Ints[i] != w {
			t.Errorf("index %d: expected %d, got %d", i, w, out.Ints[i])
		}
	}
}

func TestAddIntFloatPromotes(t *testing.T) {
	r := Default()
	out, err := r.Dispatch("+", []column.Column{
		column.NewInts([]int64{1}, []bool{true}),
		column.NewFloats([]float64{1.5}, []bool{true}),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Kind != column.Float {
		t.Fatalf("expected Float result from Int+Float promotion, got %v", out.Kind)
	}
	if out.Floats[0] != 2.5 {
		t.Errorf("expected 2.5, got %v", out.Floats[0])
	}
}

func TestAddBroadcastsSingleRow(t *testing.T) {
	r := Default()
	out, err := r.Dispatch("+", []column.Column{
		column.NewInts([]int64{1, 2, 3}, []bool{true, true, true}),
		column.NewInts([]int64{10}, []bool{true}),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []int64{11, 12, 13}
	for i, w := range want {
		if out.Ints[i] != w {
			t.Errorf("index %d: expected %d, got %d", i, w, out.Ints[i])
		}
	}
}

func TestAddMismatchedLengthsError(t *testing.T) {
	r := Default()
	_, err := r.Dispatch("+", []column.Column{
		column.NewInts([]int64{1, 2}, []bool{true, true}),
		column.NewInts([]int64{1, 2, 3}, []bool{true, true, true}),
	})
	if err == nil {
		t.Fatalf("expected a broadcast mismatch error")
	}
}

func TestAddNullPropagates(t *testing.T) {
	r := Default()
	out, err := r.Dispatch("+", []column.Column{
		column.NewInts([]int64{1, 0}, []bool{true, false}),
		column.NewInts([]int64{1, 1}, []bool{true, true}),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !out.IsNull(1) {
		t.Errorf("expected a null input to propagate to a null result")
	}
	if out.IsNull(0) {
		t.Errorf("expected row 0 to remain non-null")
	}
}

func TestModuloInt(t *testing.T) {
	r := Default()
	out, err := r.Dispatch("%", []column.Column{
		column.NewInts([]int64{7}, []bool{true}),
		column.NewInts([]int64{3}, []bool{true}),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Ints[0] != 1 {
		t.Errorf("expected 7 %% 3 == 1, got %d", out.Ints[0])
	}
}

func TestEquals(t *testing.T) {
	r := Default()
	out, err := r.Dispatch("=", []column.Column{
		column.NewStrings([]string{"a", "b"}, []bool{true, true}),
		column.NewStrings([]string{"a", "c"}, []bool{true, true}),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !out.Bools[0] || out.Bools[1] {
		t.Errorf("expected [true false], got %v", out.Bools)
	}
}

func TestGreaterThanIntFloat(t *testing.T) {
	r := Default()
	out, err := r.Dispatch(">", []column.Column{
		column.NewInts([]int64{5}, []bool{true}),
		column.NewFloats([]float64{4.5}, []bool{true}),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !out.Bools[0] {
		t.Errorf("expected 5 > 4.5 to be true")
	}
}

func TestOrderingRejectsBooleans(t *testing.T) {
	r := Default()
	_, err := r.Dispatch(">", []column.Column{
		column.NewBooleans([]bool{true}, []bool{true}),
		column.NewBooleans([]bool{false}, []bool{true}),
	})
	if err == nil {
		t.Fatalf("expected ordering booleans to be a type error")
	}
}

func TestAndOr(t *testing.T) {
	r := Default()
	and, err := r.Dispatch("and", []column.Column{
		column.NewBooleans([]bool{true, true}, []bool{true, true}),
		column.NewBooleans([]bool{true, false}, []bool{true, true}),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !and.Bools[0] || and.Bools[1] {
		t.Errorf("expected [true false] from AND, got %v", and.Bools)
	}
}

func TestIsNullNotNull(t *testing.T) {
	r := Default()
	c := column.NewInts([]int64{0, 1}, []bool{false, true})

	isNull, err := r.Dispatch("is_null", []column.Column{c})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !isNull.Bools[0] || isNull.Bools[1] {
		t.Errorf("expected [true false] from is_null, got %v", isNull.Bools)
	}
	if isNull.IsNull(0) || isNull.IsNull(1) {
		t.Errorf("expected is_null's own result to never be null")
	}

	notNull, err := r.Dispatch("not_null", []column.Column{c})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if notNull.Bools[0] || !notNull.Bools[1] {
		t.Errorf("expected [false true] from not_null, got %v", notNull.Bools)
	}
}

func TestSumMeanMinMaxCount(t *testing.T) {
	r := Default()
	c := column.NewInts([]int64{1, 2, 3, 4}, []bool{true, true, true, true})

	sum, _ := r.Dispatch("sum", []column.Column{c})
	if sum.Ints[0] != 10 {
		t.Errorf("expected sum 10, got %d", sum.Ints[0])
	}

	mean, _ := r.Dispatch("mean", []column.Column{c})
	if mean.Floats[0] != 2.5 {
		t.Errorf("expected mean 2.5, got %v", mean.Floats[0])
	}

	min, _ := r.Dispatch("min", []column.Column{c})
	if min.Ints[0] != 1 {
		t.Errorf("expected min 1, got %d", min.Ints[0])
	}

	max, _ := r.Dispatch("max", []column.Column{c})
	if max.Ints[0] != 4 {
		t.Errorf("expected max 4, got %d", max.Ints[0])
	}

	count, _ := r.Dispatch("count", []column.Column{c})
	if count.Ints[0] != 4 {
		t.Errorf("expected count 4, got %d", count.Ints[0])
	}
}

func TestMeanOfEmptyColumnIsRuntimeError(t *testing.T) {
	r := Default()
	empty := column.NewInts(nil, nil)
	if _, err := r.Dispatch("mean", []column.Column{empty}); err == nil {
		t.Fatalf("expected mean of an empty column to error")
	}
}

func TestSumOfEmptyColumnIsZero(t *testing.T) {
	r := Default()
	empty := column.NewInts(nil, nil)
	out, err := r.Dispatch("sum", []column.Column{empty})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Ints[0] != 0 {
		t.Errorf("expected sum of empty column to be 0, got %d", out.Ints[0])
	}
}

func TestDispatchUnknownNameIsLookupError(t *testing.T) {
	r := Default()
	_, err := r.Dispatch("nonexistent", []column.Column{column.SingleInt(1)})
	if err == nil {
		t.Fatalf("expected an error for an unknown operator name")
	}
}

func TestIsReduceOp(t *testing.T) {
	r := Default()
	if !r.IsReduceOp("sum") {
		t.Errorf("expected sum to be recognized as a reduce-op")
	}
	if r.IsReduceOp("+") {
		t.Errorf("expected + to not be recognized as a reduce-op")
	}
}
