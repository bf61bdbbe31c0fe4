package henc

import (
	"fmt"
	"math"

	"github.com/tuneinsight/lattigo/v6/core/rlwe"
	"github.com/tuneinsight/lattigo/v6/schemes/ckks"
)

// SparsePolynomial represents a polynomial sum(Coeffs[i] * x^Exponents[i])
// / 2^Power in a single variable. Coefficients are fixed-point integers:
// the true coefficient of the term i is Coeffs[i] / 2^Power, which lets the
// homomorphic evaluation scale terms by repeated addition and realize the
// fractional part with a free scale shift instead of a plaintext
// multiplication.
type SparsePolynomial struct {
	Coeffs    []int64
	Exponents []int
	Power     int
}

// NewSparsePolynomial instantiates a new [SparsePolynomial] from parallel
// coefficient and exponent lists. Exponents must be strictly increasing and
// positive, coefficients must be non-zero, and both lists must have the
// same length.
func NewSparsePolynomial(coeffs []int64, exponents []int, power int) (p SparsePolynomial, err error) {

	if len(coeffs) != len(exponents) {
		return p, fmt.Errorf("cannot NewSparsePolynomial: %d coefficients for %d exponents", len(coeffs), len(exponents))
	}

	if len(coeffs) == 0 {
		return p, fmt.Errorf("cannot NewSparsePolynomial: polynomial must have at least one term")
	}

	for i := range exponents {

		if exponents[i] < 1 {
			return p, fmt.Errorf("cannot NewSparsePolynomial: exponent %d must be positive", exponents[i])
		}

		if i > 0 && exponents[i] <= exponents[i-1] {
			return p, fmt.Errorf("cannot NewSparsePolynomial: exponents must be strictly increasing")
		}

		if coeffs[i] == 0 {
			return p, fmt.Errorf("cannot NewSparsePolynomial: coefficient of x^%d is zero", exponents[i])
		}
	}

	return SparsePolynomial{
		Coeffs:    coeffs,
		Exponents: exponents,
		Power:     power,
	}, nil
}

// Degree returns the degree of the polynomial, i.e. its largest exponent.
func (p SparsePolynomial) Degree() int {
	return p.Exponents[len(p.Exponents)-1]
}

// Depth returns the multiplicative depth ceil(log2(Degree())) required to
// evaluate the polynomial.
func (p SparsePolynomial) Depth() int {
	return Depth(p.Degree())
}

// EvaluateFloat64 evaluates the polynomial at x in plaintext. It is the
// reference against which the homomorphic evaluation is measured.
func (p SparsePolynomial) EvaluateFloat64(x float64) (y float64) {
	for i, c := range p.Coeffs {
		y += float64(c) * math.Pow(x, float64(p.Exponents[i]))
	}
	return y / math.Exp2(float64(p.Power))
}

// PolynomialEvaluator evaluates sparse fixed-point polynomials on CKKS
// ciphertexts. All fields of this struct are public, enabling custom
// instantiations.
type PolynomialEvaluator struct {
	Evaluator
	*PowerEvaluator
	Encoder   *ckks.Encoder
	Encryptor *rlwe.Encryptor
}

// NewPolynomialEvaluator instantiates a new [PolynomialEvaluator]. The
// encryptor is needed to produce the fresh encryptions of one that seed the
// square-and-multiply accumulators. This method is allocation free.
func NewPolynomialEvaluator(eval Evaluator, ecd *ckks.Encoder, enc *rlwe.Encryptor) *PolynomialEvaluator {
	return &PolynomialEvaluator{
		Evaluator:      eval,
		PowerEvaluator: NewPowerEvaluator(eval),
		Encoder:        ecd,
		Encryptor:      enc,
	}
}

// Evaluate returns the encrypted value of p at ct:
//  1. Checks that the depth of p fits within the level budget of the
//     parameters, returning an [InsufficientDepthError] if it does not.
//  2. For each exponent, multiplies an independent [Normalize] copy of ct
//     into a fresh accumulator encrypting one, via square-and-multiply. The
//     copy isolates each term, ct itself is left untouched, and it lands
//     exactly on the default scale: without this normalization the 2^Power
//     carried in the scale metadata of a previous stage would inflate every
//     product of the next one.
//  3. Scales each term by the magnitude of its integer coefficient with
//     [ReplicateAndSum] and realizes the fractional coefficient with a
//     [ScaleShift] by Power, both free in depth.
//  4. Negates the terms whose coefficient is negative (a free scalar
//     multiplication), then aligns every term to the level and scale of the
//     highest-exponent term, which consumed the most levels. The forced
//     scale equality introduces a bounded, documented precision loss.
//  5. Sums the aligned terms.
//
// The result sits bitlen(degree)+1 levels below ct: one level per exponent
// bit of the highest term plus one for the isolating copy. Its scale is the
// default scale times 2^Power, up to rescaling drift.
func (eval *PolynomialEvaluator) Evaluate(ct *rlwe.Ciphertext, p SparsePolynomial) (opOut *rlwe.Ciphertext, err error) {

	params := eval.GetParameters()

	if err = CheckDepth(p.Degree(), MaxDepth(*params)); err != nil {
		return nil, err
	}

	ones := make([]float64, ct.Slots())
	for i := range ones {
		ones[i] = 1
	}

	ptOne := ckks.NewPlaintext(*params, ct.Level())
	ptOne.Scale = params.DefaultScale()

	if err = eval.Encoder.Encode(ones, ptOne); err != nil {
		return nil, fmt.Errorf("ecd.Encode: %w", err)
	}

	terms := make([]*rlwe.Ciphertext, len(p.Exponents))

	for i, exponent := range p.Exponents {

		var acc *rlwe.Ciphertext
		if acc, err = eval.Encryptor.EncryptNew(ptOne); err != nil {
			return nil, fmt.Errorf("enc.EncryptNew: %w", err)
		}

		var base *rlwe.Ciphertext
		if base, err = Normalize(eval, eval.Encoder, ct); err != nil {
			return nil, fmt.Errorf("cannot copy argument: %w", err)
		}

		// The copy consumed one level; the accumulator follows.
		eval.DropLevel(acc, acc.Level()-base.Level())

		if terms[i], err = eval.ComputePower(base, exponent, acc); err != nil {
			return nil, fmt.Errorf("cannot compute x^%d: %w", exponent, err)
		}
	}

	for i, c := range p.Coeffs {

		count := c
		if count < 0 {
			count = -count
		}

		if terms[i], err = ReplicateAndSum(eval, terms[i], int(count)); err != nil {
			return nil, fmt.Errorf("cannot scale term x^%d: %w", p.Exponents[i], err)
		}

		ScaleShift(terms[i], p.Power)
	}

	// The highest-exponent term sits at the lowest level and is the
	// alignment reference for the sum.
	ref := terms[len(terms)-1]

	for i := range terms {
		if p.Coeffs[i] < 0 {
			if err = eval.Mul(terms[i], -1, terms[i]); err != nil {
				return nil, fmt.Errorf("eval.Mul: %w", err)
			}
		}
	}

	Align(eval, ref, terms[:len(terms)-1]...)

	opOut = terms[0]

	for _, t := range terms[1:] {
		if err = eval.Add(opOut, t, opOut); err != nil {
			return nil, fmt.Errorf("eval.Add: %w", err)
		}
	}

	return
}
