package henc

import (
	"fmt"
	"math"

	"github.com/tuneinsight/lattigo/v6/core/rlwe"
	"github.com/tuneinsight/lattigo/v6/schemes/ckks"
)

// ScaleShift reinterprets the value encrypted in ct as divided by 2^k by
// multiplying the scale metadata of ct by 2^k. No homomorphic operation is
// performed: the shift consumes no level and introduces no numerical error,
// and a shift by -k restores the original scale exactly. A negative k
// multiplies the value by 2^-k.
//
// The shift only rewrites how the ciphertext is decoded; it must be matched
// against the scale the surrounding arithmetic actually encoded with.
func ScaleShift(ct *rlwe.Ciphertext, k int) {
	ct.Scale = ct.Scale.Mul(rlwe.NewScale(math.Exp2(float64(k))))
}

// ReplicateAndSum returns count*ct computed with count-1 homomorphic
// additions of ct to a copy of itself. Additions are free in depth, so for
// the small integer coefficients used by the sign polynomials this trades a
// multiplicative level for a linear number of cheap additions.
//
// A count smaller than one would produce an encryption of zero that is
// trivially decryptable, hence a [TransparentCiphertextError].
func ReplicateAndSum(eval Evaluator, ct *rlwe.Ciphertext, count int) (opOut *rlwe.Ciphertext, err error) {

	if count < 1 {
		return nil, TransparentCiphertextError{Op: fmt.Sprintf("replicate %d times", count)}
	}

	opOut = ct.CopyNew()

	for i := 1; i < count; i++ {
		if err = eval.Add(opOut, ct, opOut); err != nil {
			return nil, fmt.Errorf("eval.Add: %w", err)
		}
	}

	return
}

// CleanCopy returns an independent copy of ct obtained by multiplying ct
// with a plaintext one encoded at the given scale and rescaling, at the
// cost of exactly one level. The copy shares no buffer with ct, so both can
// be consumed by separate computations without cross-mutation.
func CleanCopy(eval Evaluator, ecd *ckks.Encoder, ct *rlwe.Ciphertext, scale rlwe.Scale) (opOut *rlwe.Ciphertext, err error) {

	params := eval.GetParameters()

	ones := make([]float64, ct.Slots())
	for i := range ones {
		ones[i] = 1
	}

	pt := ckks.NewPlaintext(*params, ct.Level())
	pt.Scale = scale

	if err = ecd.Encode(ones, pt); err != nil {
		return nil, fmt.Errorf("ecd.Encode: %w", err)
	}

	opOut = ckks.NewCiphertext(*params, ct.Degree(), ct.Level())

	if err = eval.Mul(ct, pt, opOut); err != nil {
		return nil, fmt.Errorf("eval.Mul: %w", err)
	}

	if err = eval.Rescale(opOut, opOut); err != nil {
		return nil, fmt.Errorf("eval.Rescale: %w", err)
	}

	return
}

// Normalize returns a copy of ct brought back exactly to the default scale
// of the parameters, at the cost of one level: the plaintext scale of the
// underlying [CleanCopy] is chosen as q*scale/ct.Scale so that the division
// of the rescaling cancels the scale of ct. It resets the scale inflation
// that fixed-point evaluations leave in their result metadata.
func Normalize(eval Evaluator, ecd *ckks.Encoder, ct *rlwe.Ciphertext) (opOut *rlwe.Ciphertext, err error) {

	params := eval.GetParameters()

	scale := rlwe.NewScale(params.Q()[ct.Level()])
	scale = scale.Mul(params.DefaultScale())
	scale = scale.Div(ct.Scale)

	return CleanCopy(eval, ecd, ct, scale)
}

// RelinearizeAndRescale bounds the size of ct back to the minimal
// representation and rescales it, dropping one level and dividing the scale
// by the prime of the dropped level. It is invoked immediately after every
// ciphertext-ciphertext multiplication so that the scale magnitude stays
// stable across repeated multiplications.
func RelinearizeAndRescale(eval Evaluator, ct *rlwe.Ciphertext) (err error) {

	if ct.Degree() > 1 {
		if err = eval.Relinearize(ct, ct); err != nil {
			return fmt.Errorf("eval.Relinearize: %w", err)
		}
	}

	if err = eval.Rescale(ct, ct); err != nil {
		return fmt.Errorf("eval.Rescale: %w", err)
	}

	return
}

// Align brings every ciphertext of cts to the level of ref by dropping
// levels and force-sets its scale to the scale of ref, making the operands
// valid for addition. The forced scale introduces a bounded precision loss
// proportional to the relative scale difference.
//
// A ciphertext below the level of ref cannot be aligned (levels only go
// down); this state is unreachable when the evaluation protocol of this
// package is followed, so Align panics with a [LevelScaleMismatchError]
// instead of returning it.
func Align(eval Evaluator, ref *rlwe.Ciphertext, cts ...*rlwe.Ciphertext) {

	for _, ct := range cts {

		if ct.Level() < ref.Level() {
			panic(LevelScaleMismatchError{
				Level0: ct.Level(),
				Level1: ref.Level(),
				Scale0: ct.Scale,
				Scale1: ref.Scale,
			})
		}

		if ct.Level() > ref.Level() {
			eval.DropLevel(ct, ct.Level()-ref.Level())
		}

		ct.Scale = ref.Scale
	}
}
