package henc

import (
	"fmt"

	"github.com/tuneinsight/lattigo/v6/core/rlwe"
)

// PowerEvaluator evaluates integer powers of a ciphertext with the
// square-and-multiply algorithm. All fields of this struct are public,
// enabling custom instantiations.
type PowerEvaluator struct {
	Evaluator
}

// NewPowerEvaluator instantiates a new [PowerEvaluator]. This method is
// allocation free.
func NewPowerEvaluator(eval Evaluator) *PowerEvaluator {
	return &PowerEvaluator{Evaluator: eval}
}

// ComputePower evaluates ct^exponent by binary exponentiation over the bits
// of the exponent, from the least significant to the most significant:
//  1. On a set bit, multiply acc by the running square and
//     relinearize-and-rescale acc.
//  2. On every bit, set or not, square the base and
//     relinearize-and-rescale it.
//  3. On an unset bit, additionally drop acc one level, keeping acc and the
//     base level-aligned even though no multiplication occurred.
//
// acc must be a fresh encryption of one at the scale and level of ct; the
// result is returned in acc, which consumes exactly bitlen(exponent)
// levels. Both ct and acc are consumed by the computation.
//
// An exponent smaller than one returns a [ZeroExponentError]: x^0 would
// multiply by the zero plaintext and yield a transparent ciphertext.
func (eval *PowerEvaluator) ComputePower(ct *rlwe.Ciphertext, exponent int, acc *rlwe.Ciphertext) (opOut *rlwe.Ciphertext, err error) {

	if exponent < 1 {
		return nil, ZeroExponentError{Exponent: exponent}
	}

	for e := exponent; e > 0; e >>= 1 {

		if e&1 == 1 {

			if err = eval.Mul(acc, ct, acc); err != nil {
				return nil, fmt.Errorf("eval.Mul: %w", err)
			}

			if err = RelinearizeAndRescale(eval, acc); err != nil {
				return nil, fmt.Errorf("cannot reduce accumulator: %w", err)
			}

			if err = eval.Mul(ct, ct, ct); err != nil {
				return nil, fmt.Errorf("eval.Mul: %w", err)
			}

			if err = RelinearizeAndRescale(eval, ct); err != nil {
				return nil, fmt.Errorf("cannot reduce base: %w", err)
			}

		} else {

			if err = eval.Mul(ct, ct, ct); err != nil {
				return nil, fmt.Errorf("eval.Mul: %w", err)
			}

			if err = RelinearizeAndRescale(eval, ct); err != nil {
				return nil, fmt.Errorf("cannot reduce base: %w", err)
			}

			eval.DropLevel(acc, 1)
		}
	}

	return acc, nil
}
