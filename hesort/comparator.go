package hesort

import (
	"github.com/dsvedberg/HomEnc/henc"
	"golang.org/x/exp/constraints"
)

// ExactComparator implements [Comparator] over plaintext numbers with exact
// arithmetic. It is the reference instantiation for validating sorting
// circuits: indicators are exactly 0, 1 or 1/2, and the two-product form of
// Select reproduces the selected operand without rounding.
type ExactComparator[T constraints.Float] struct{}

func (ExactComparator[T]) Compare(a, b T) (T, error) {
	switch {
	case a > b:
		return 1, nil
	case a < b:
		return 0, nil
	}
	return 0.5, nil
}

func (ExactComparator[T]) Select(ind, onTrue, onFalse T) (T, error) {
	return ind*onTrue + (1-ind)*onFalse, nil
}

func (c ExactComparator[T]) ShallowCopy() Comparator[T] {
	return c
}

// SignComparator implements [Comparator] over plaintext numbers through the
// same two-stage sign approximation the encrypted comparator evaluates,
// which makes the numerical behavior of a sorting circuit observable
// without touching a ciphertext. Inputs must lie in [0, 1].
type SignComparator[T constraints.Float] struct{}

func (SignComparator[T]) Compare(a, b T) (T, error) {
	d := float64(a - b)
	y := henc.SignPolynomialF.EvaluateFloat64(henc.SignPolynomialG.EvaluateFloat64(d))
	return T((y + 1) / 2), nil
}

func (SignComparator[T]) Select(ind, onTrue, onFalse T) (T, error) {
	return ind*onTrue + (1-ind)*onFalse, nil
}

func (c SignComparator[T]) ShallowCopy() Comparator[T] {
	return c
}
