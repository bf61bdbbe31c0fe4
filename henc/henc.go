// Package henc implements leveled homomorphic circuits for approximate
// comparison of CKKS-encrypted values: a depth-budget tracker, ciphertext
// level and scale helpers, a square-and-multiply exponentiator, a sparse
// polynomial evaluator and a two-stage sign-approximation comparator.
//
// All circuits consume the scheme through the narrow Evaluator interface,
// which the lattigo *ckks.Evaluator satisfies. Parameters, keys and
// evaluators are always passed explicitly; the package holds no global
// state.
package henc

import (
	"github.com/tuneinsight/lattigo/v6/core/rlwe"
	"github.com/tuneinsight/lattigo/v6/schemes/ckks"
)

// Evaluator defines the subset of the scheme evaluator that the circuits of
// this package rely on. The lattigo *ckks.Evaluator is compliant to this
// interface.
type Evaluator interface {
	GetParameters() *ckks.Parameters
	Add(op0 *rlwe.Ciphertext, op1 rlwe.Operand, opOut *rlwe.Ciphertext) (err error)
	AddNew(op0 *rlwe.Ciphertext, op1 rlwe.Operand) (opOut *rlwe.Ciphertext, err error)
	Sub(op0 *rlwe.Ciphertext, op1 rlwe.Operand, opOut *rlwe.Ciphertext) (err error)
	SubNew(op0 *rlwe.Ciphertext, op1 rlwe.Operand) (opOut *rlwe.Ciphertext, err error)
	Mul(op0 *rlwe.Ciphertext, op1 rlwe.Operand, opOut *rlwe.Ciphertext) (err error)
	MulNew(op0 *rlwe.Ciphertext, op1 rlwe.Operand) (opOut *rlwe.Ciphertext, err error)
	Relinearize(op0, op1 *rlwe.Ciphertext) (err error)
	Rescale(op0, op1 *rlwe.Ciphertext) (err error)
	DropLevel(op0 *rlwe.Ciphertext, levels int)
}
