package henc

import (
	"math"

	"github.com/tuneinsight/lattigo/v6/schemes/ckks"
)

// MaxDepth returns the multiplicative depth available to circuits under the
// given parameters. The first and the last prime of the modulus chain are
// reserved and do not count as data levels.
func MaxDepth(params ckks.Parameters) int {
	return params.QCount() - 2
}

// Depth returns the multiplicative depth ceil(log2(degree)) required to
// evaluate a monomial of the given degree.
func Depth(degree int) int {
	return int(math.Ceil(math.Log2(float64(degree))))
}

// CheckDepth verifies that a polynomial of the given degree fits within
// maxDepth levels and returns an [InsufficientDepthError] if it does not.
// It must be called once per polynomial evaluation with the largest
// exponent of the term list.
func CheckDepth(degree, maxDepth int) error {
	if depth := Depth(degree); depth > maxDepth {
		return InsufficientDepthError{Degree: degree, Depth: depth, MaxDepth: maxDepth}
	}
	return nil
}
