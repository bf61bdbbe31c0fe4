package hesort

import (
	"fmt"

	"github.com/dsvedberg/HomEnc/utils/concurrency"
)

// IndicatorMatrix caches the pairwise order indicators between two sorted
// sequences b and c: Ind[i][j] is the indicator of b[i] > c[j]. Computing
// the matrix once up front lets every output rank of a merge be derived
// independently, and therefore concurrently, from shared read-only entries.
type IndicatorMatrix[T any] struct {
	Ind [][]T
}

// Sorter sorts sequences of opaque values with an oblivious merge sort. The
// sequence of comparisons and selections it performs is a function of the
// input length alone, never of the data, so an encrypted instantiation
// leaks nothing about the values through its control flow. All fields of
// this struct are public, enabling custom instantiations.
type Sorter[T any] struct {
	Comparator Comparator[T]

	// Workers bounds the number of comparator copies evaluating
	// independent matrix cells and output ranks concurrently. Values below
	// two mean sequential evaluation.
	Workers int
}

// NewSorter instantiates a new [Sorter] over the given comparator. This
// method is allocation free.
func NewSorter[T any](cmp Comparator[T], workers int) *Sorter[T] {
	return &Sorter[T]{Comparator: cmp, Workers: workers}
}

// CompareMatrix returns the [IndicatorMatrix] of the two sequences b and c,
// evaluating the len(b)*len(c) pairwise comparisons concurrently over
// Workers comparator copies.
func (s *Sorter[T]) CompareMatrix(b, c []T) (m *IndicatorMatrix[T], err error) {

	m = &IndicatorMatrix[T]{Ind: make([][]T, len(b))}
	for i := range m.Ind {
		m.Ind[i] = make([]T, len(c))
	}

	if s.Workers > 1 {

		rm := concurrency.NewResourceManager(s.comparators())

		for i := range b {
			for j := range c {
				rm.Run(func(cmp Comparator[T]) (err error) {
					m.Ind[i][j], err = cmp.Compare(b[i], c[j])
					return
				})
			}
		}

		if err = rm.Wait(); err != nil {
			return nil, fmt.Errorf("cannot compare %d x %d pairs: %w", len(b), len(c), err)
		}

		return
	}

	for i := range b {
		for j := range c {
			if m.Ind[i][j], err = s.Comparator.Compare(b[i], c[j]); err != nil {
				return nil, fmt.Errorf("cannot compare pair (%d, %d): %w", i, j, err)
			}
		}
	}

	return
}

// comparators returns Workers comparators usable concurrently, the receiver
// comparator itself plus Workers-1 shallow copies.
func (s *Sorter[T]) comparators() []Comparator[T] {
	cmps := make([]Comparator[T], s.Workers)
	cmps[0] = s.Comparator
	for i := 1; i < len(cmps); i++ {
		cmps[i] = s.Comparator.ShallowCopy()
	}
	return cmps
}

// Min returns the k-th smallest value, k starting at one, of the union of
// the two sorted sequences b and c, using only indicator lookups in m and
// oblivious selections: which elements the result is blended from never
// depends on the data.
func (s *Sorter[T]) Min(k int, b, c []T, m *IndicatorMatrix[T]) (out T, err error) {
	if k < 1 || k > len(b)+len(c) {
		return out, fmt.Errorf("cannot Min: rank %d out of range [1, %d]", k, len(b)+len(c))
	}
	return s.min(s.Comparator, k, b, c, m, 0, 0)
}

// Max returns the k-th largest value, k starting at one, of the union of
// the two sorted sequences b and c. It is the mirror of [Sorter.Min],
// recursing from the top ends of the sequences.
func (s *Sorter[T]) Max(k int, b, c []T, m *IndicatorMatrix[T]) (out T, err error) {
	if k < 1 || k > len(b)+len(c) {
		return out, fmt.Errorf("cannot Max: rank %d out of range [1, %d]", k, len(b)+len(c))
	}
	return s.max(s.Comparator, k, b, c, m, 0, 0)
}

// min selects the k-th smallest value of the union of the windows b and c,
// whose origins sit at (rOff, cOff) of the indicator matrix. Both
// candidate eliminations are evaluated and blended under the indicator of
// the pivot pair, so the recursion tree is walked in full: the cost is the
// price of obliviousness.
func (s *Sorter[T]) min(cmp Comparator[T], k int, b, c []T, m *IndicatorMatrix[T], rOff, cOff int) (out T, err error) {

	nb, nc := len(b), len(c)

	switch {
	case nb == 0:
		return c[k-1], nil
	case nc == 0:
		return b[k-1], nil
	case k == 1:
		return cmp.Select(m.Ind[rOff][cOff], c[0], b[0])
	}

	// Split k = i+j, clamped so that both eliminations stay legal.
	i := clamp(k/2, max(1, k-nc), min(nb, k-1))
	j := k - i

	// If b[i-1] > c[j-1], the k-th smallest avoids the first j values of c.
	var skipC T
	if skipC, err = s.min(cmp, k-j, b, c[j:], m, rOff, cOff+j); err != nil {
		return
	}

	// Otherwise it avoids the first i values of b.
	var skipB T
	if skipB, err = s.min(cmp, k-i, b[i:], c, m, rOff+i, cOff); err != nil {
		return
	}

	return cmp.Select(m.Ind[rOff+i-1][cOff+j-1], skipC, skipB)
}

// max selects the k-th largest value of the union of the windows b and c.
func (s *Sorter[T]) max(cmp Comparator[T], k int, b, c []T, m *IndicatorMatrix[T], rOff, cOff int) (out T, err error) {

	nb, nc := len(b), len(c)

	switch {
	case nb == 0:
		return c[nc-k], nil
	case nc == 0:
		return b[nb-k], nil
	case k == 1:
		return cmp.Select(m.Ind[rOff+nb-1][cOff+nc-1], b[nb-1], c[nc-1])
	}

	i := clamp(k/2, max(1, k-nc), min(nb, k-1))
	j := k - i

	// If b[nb-i] > c[nc-j], the k-th largest avoids the top i values of b.
	var skipTopB T
	if skipTopB, err = s.max(cmp, k-i, b[:nb-i], c, m, rOff, cOff); err != nil {
		return
	}

	// Otherwise it avoids the top j values of c.
	var skipTopC T
	if skipTopC, err = s.max(cmp, k-j, b, c[:nc-j], m, rOff, cOff); err != nil {
		return
	}

	return cmp.Select(m.Ind[rOff+nb-i][cOff+nc-j], skipTopB, skipTopC)
}

// Merge returns the sorted union of the two sorted sequences b and c,
// deriving every output rank independently: the lower half through
// [Sorter.Min], the upper half through [Sorter.Max], which keeps every
// selection tree shallow. Ranks are evaluated concurrently over Workers
// comparator copies.
func (s *Sorter[T]) Merge(b, c []T, m *IndicatorMatrix[T]) (out []T, err error) {

	n := len(b) + len(c)
	out = make([]T, n)

	if s.Workers > 1 {

		rm := concurrency.NewResourceManager(s.comparators())

		for r := 0; r < n; r++ {
			rm.Run(func(cmp Comparator[T]) (err error) {
				out[r], err = s.rank(cmp, r, n, b, c, m)
				return
			})
		}

		if err = rm.Wait(); err != nil {
			return nil, fmt.Errorf("cannot merge %d values: %w", n, err)
		}

		return
	}

	for r := 0; r < n; r++ {
		if out[r], err = s.rank(s.Comparator, r, n, b, c, m); err != nil {
			return nil, fmt.Errorf("cannot derive rank %d: %w", r, err)
		}
	}

	return
}

// rank derives the value at the 0-indexed output position r of the merged
// sequence of n values.
func (s *Sorter[T]) rank(cmp Comparator[T], r, n int, b, c []T, m *IndicatorMatrix[T]) (T, error) {
	if r < n/2 {
		return s.min(cmp, r+1, b, c, m, 0, 0)
	}
	return s.max(cmp, n-r, b, c, m, 0, 0)
}

// Sort returns the values of v in nondecreasing order: it recursively sorts
// the two halves of v, compares them pairwise and merges them rank by rank.
// Values are treated as opaque, the input slice is not modified, and the
// output may share elements with it where a rank derivation degenerates to
// a passthrough.
func (s *Sorter[T]) Sort(v []T) (out []T, err error) {

	if len(v) <= 1 {
		return append([]T(nil), v...), nil
	}

	h := len(v) / 2

	var lo, hi []T
	if lo, err = s.Sort(v[:h]); err != nil {
		return nil, err
	}

	if hi, err = s.Sort(v[h:]); err != nil {
		return nil, err
	}

	var m *IndicatorMatrix[T]
	if m, err = s.CompareMatrix(lo, hi); err != nil {
		return nil, err
	}

	return s.Merge(lo, hi, m)
}

func clamp(x, lo, hi int) int {
	return max(lo, min(x, hi))
}
