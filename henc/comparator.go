package henc

import (
	"fmt"
	"math/bits"

	"github.com/tuneinsight/lattigo/v6/core/rlwe"
	"github.com/tuneinsight/lattigo/v6/schemes/ckks"
)

// SignPolynomialG is the first stage of the composite sign approximation:
// a degree-7 odd polynomial approximating sign(x) on [-1,1]. Coefficients
// are from "Efficient Homomorphic Comparison Methods with Optimal
// Complexity" (Cheon, Kim and Kim, https://eprint.iacr.org/2019/1234).
var SignPolynomialG = SparsePolynomial{
	Coeffs:    []int64{35, -35, 21, -5},
	Exponents: []int{1, 3, 5, 7},
	Power:     4,
}

// SignPolynomialF is the second stage of the composite sign approximation,
// sharpening the output of [SignPolynomialG] near the boundary. Composing
// two low-degree odd polynomials grows the depth additively, where a single
// polynomial of equivalent sharpness would grow it multiplicatively.
var SignPolynomialF = SparsePolynomial{
	Coeffs:    []int64{4589, -16577, 25614, -12860},
	Exponents: []int{1, 3, 5, 7},
	Power:     10,
}

// ComparisonEvaluator evaluates an approximate greater-than indicator
// between two ciphertexts. All fields of this struct are public, enabling
// custom instantiations.
type ComparisonEvaluator struct {
	*PolynomialEvaluator
}

// NewComparisonEvaluator instantiates a new [ComparisonEvaluator]. This
// method is allocation free.
func NewComparisonEvaluator(eval Evaluator, ecd *ckks.Encoder, enc *rlwe.Encryptor) *ComparisonEvaluator {
	return &ComparisonEvaluator{
		PolynomialEvaluator: NewPolynomialEvaluator(eval, ecd, enc),
	}
}

// stageLevels returns the levels one evaluation of p consumes: one per
// exponent bit of the leading term plus one for the isolating copy.
func stageLevels(p SparsePolynomial) int {
	return bits.Len(uint(p.Degree())) + 1
}

// Compare returns an encryption of a soft indicator of op0 > op1 in [0,1]:
// close to 1 where op0 > op1, close to 0 where op0 < op1, and close to 1/2
// around equality. The indicator is the shifted two-stage composition
// (f(g(op0-op1))+1)/2 of [SignPolynomialG] and [SignPolynomialF], where the
// final shift costs no level: the addition of one is a scalar operation and
// the halving a [ScaleShift].
//
// The difference op0-op1 must lie within the approximation domain [-1,1] of
// the polynomials; values outside of it carry no correctness guarantee.
// This is a documented limitation, not a runtime check.
//
// Operands produced by different circuit stages may sit at different levels
// and carry different rescaling drift; Compare aligns a copy of the higher
// one on the lower one before subtracting, leaving both operands untouched.
func (eval *ComparisonEvaluator) Compare(op0, op1 *rlwe.Ciphertext) (opOut *rlwe.Ciphertext, err error) {

	if op0.Level() != op1.Level() || op0.Scale.Cmp(op1.Scale) != 0 {
		if op0.Level() < op1.Level() {
			op1 = op1.CopyNew()
			Align(eval, op0, op1)
		} else {
			op0 = op0.CopyNew()
			Align(eval, op1, op0)
		}
	}

	var d *rlwe.Ciphertext
	if d, err = eval.SubNew(op0, op1); err != nil {
		return nil, fmt.Errorf("eval.SubNew: %w", err)
	}

	// The last level stays reserved: the replicated fixed-point terms of the
	// second stage are too wide for the single bottom prime.
	if required := stageLevels(SignPolynomialG) + stageLevels(SignPolynomialF); d.Level()-1 < required {
		return nil, InsufficientDepthError{
			Degree:   SignPolynomialG.Degree() * SignPolynomialF.Degree(),
			Depth:    required,
			MaxDepth: d.Level() - 1,
		}
	}

	var gd *rlwe.Ciphertext
	if gd, err = eval.Evaluate(d, SignPolynomialG); err != nil {
		return nil, fmt.Errorf("cannot evaluate first stage: %w", err)
	}

	if opOut, err = eval.Evaluate(gd, SignPolynomialF); err != nil {
		return nil, fmt.Errorf("cannot evaluate second stage: %w", err)
	}

	if err = eval.Add(opOut, 1, opOut); err != nil {
		return nil, fmt.Errorf("eval.Add: %w", err)
	}

	ScaleShift(opOut, 1)

	return
}
