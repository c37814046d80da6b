package ops

import "github.com/grinchenko/sqlit/pkg/errs"

func lookupError(name string) error {
	return errs.Lookupf("no such operator or function: %s", name)
}

func argCountError(name string, want, got int) error {
	return errs.Runtimef("%s expects %d argument(s), got %d", name, want, got)
}

// broadcastLen resolves the output row count for a binary op given the
// two input lengths: equal lengths map one-to-one, and either side
// being length 1 cycles against the other. Any other combination is a
// Runtime error.
func broadcastLen(left, right int) (int, error) {
	switch {
	case left == right:
		return left, nil
	case left == 1:
		return right, nil
	case right == 1:
		return left, nil
	default:
		return 0, errs.Runtimef("mismatched column lengths in binary op: %d vs %d", left, right)
	}
}

// broadcastIndex maps an output position to its source index in a
// column of the given length, honoring the length-1 cycling rule.
func broadcastIndex(pos, length int) int {
	if length == 1 {
		return 0
	}
	return pos
}
