// Package hesort implements oblivious merging and sorting of encrypted
// sequences. The circuits never branch on the data: every comparison
// outcome is an arithmetic indicator and every choice between two values is
// an indicator-driven blend, so the sequence of operations depends only on
// the input length.
package hesort

// Comparator abstracts the two primitives the sorting circuits are built
// from: an order indicator and an indicator-driven selection.
// Implementations range from exact plaintext arithmetic, used to validate
// the circuit structure, to encrypted arithmetic where the indicator is a
// polynomial sign approximation.
type Comparator[T any] interface {

	// Compare returns an indicator of a > b: 1 where a > b, 0 where a < b
	// and 1/2 at equality. Approximate implementations return values close
	// to those, degrading gracefully as a approaches b.
	Compare(a, b T) (T, error)

	// Select blends two values under an indicator: onTrue where ind is 1,
	// onFalse where ind is 0. Fractional indicators interpolate between
	// the two.
	Select(ind, onTrue, onFalse T) (T, error)

	// ShallowCopy returns a copy of the comparator that can be used
	// concurrently with the receiver.
	ShallowCopy() Comparator[T]
}
