package hesort

import (
	"fmt"

	"github.com/dsvedberg/HomEnc/henc"
	"github.com/tuneinsight/lattigo/v6/core/rlwe"
	"github.com/tuneinsight/lattigo/v6/schemes/ckks"
)

// EncryptedComparator implements [Comparator] over CKKS ciphertexts. The
// indicator is the two-stage sign approximation of
// [henc.ComparisonEvaluator], re-normalized to the default scale so that
// the selections downstream stay in the default scale regime no matter how
// deep they nest.
type EncryptedComparator struct {
	*henc.ComparisonEvaluator

	// kernel is the concrete evaluator, retained for ShallowCopy.
	kernel *ckks.Evaluator
}

// NewEncryptedComparator instantiates a new [EncryptedComparator]. This
// method is allocation free.
func NewEncryptedComparator(eval *ckks.Evaluator, ecd *ckks.Encoder, enc *rlwe.Encryptor) *EncryptedComparator {
	return &EncryptedComparator{
		ComparisonEvaluator: henc.NewComparisonEvaluator(eval, ecd, enc),
		kernel:              eval,
	}
}

// Compare returns an encrypted soft indicator of a > b at the default
// scale, nine levels below the lower operand: eight for the two sign stages
// and one for the scale normalization.
func (cmp *EncryptedComparator) Compare(a, b *rlwe.Ciphertext) (opOut *rlwe.Ciphertext, err error) {

	if opOut, err = cmp.ComparisonEvaluator.Compare(a, b); err != nil {
		return nil, fmt.Errorf("cannot compare: %w", err)
	}

	if opOut, err = henc.Normalize(cmp.Evaluator, cmp.Encoder, opOut); err != nil {
		return nil, fmt.Errorf("cannot normalize indicator: %w", err)
	}

	return
}

// Select returns ind*(onTrue-onFalse) + onFalse, a single ciphertext
// multiplication:
//  1. Brings onTrue and onFalse to a common level and scale. Operands from
//     different recursion depths differ by rescaling drift only, so the
//     forced scale costs a bounded precision loss.
//  2. Multiplies ind by the difference and relinearizes-and-rescales.
//  3. Adds onFalse back through a plaintext-one multiplication at the scale
//     of ind, which lands it exactly on the level and scale of the product.
//
// The result sits one level below the lowest of the three operands. None of
// the operands is mutated, so ind can be a shared indicator matrix entry.
func (cmp *EncryptedComparator) Select(ind, onTrue, onFalse *rlwe.Ciphertext) (opOut *rlwe.Ciphertext, err error) {

	eval := cmp.Evaluator

	t, f := onTrue, onFalse
	if t.Level() > f.Level() {
		t = t.CopyNew()
		henc.Align(eval, f, t)
	} else {
		f = f.CopyNew()
		henc.Align(eval, t, f)
	}

	var diff *rlwe.Ciphertext
	if diff, err = eval.SubNew(t, f); err != nil {
		return nil, fmt.Errorf("eval.SubNew: %w", err)
	}

	level := min(ind.Level(), diff.Level())

	if diff.Level() > level {
		eval.DropLevel(diff, diff.Level()-level)
	}

	sel := ind
	if sel.Level() > level {
		sel = sel.CopyNew()
		eval.DropLevel(sel, sel.Level()-level)
	}

	if opOut, err = eval.MulNew(sel, diff); err != nil {
		return nil, fmt.Errorf("eval.MulNew: %w", err)
	}

	if err = henc.RelinearizeAndRescale(eval, opOut); err != nil {
		return nil, fmt.Errorf("cannot reduce selection: %w", err)
	}

	low := f.CopyNew()
	if low.Level() > level {
		eval.DropLevel(low, low.Level()-level)
	}

	if low, err = henc.CleanCopy(eval, cmp.Encoder, low, sel.Scale); err != nil {
		return nil, fmt.Errorf("cannot lower discarded branch: %w", err)
	}

	henc.Align(eval, opOut, low)

	if err = eval.Add(opOut, low, opOut); err != nil {
		return nil, fmt.Errorf("eval.Add: %w", err)
	}

	return
}

// ShallowCopy returns a copy of the comparator that can be used
// concurrently with the receiver.
func (cmp *EncryptedComparator) ShallowCopy() Comparator[*rlwe.Ciphertext] {
	return NewEncryptedComparator(cmp.kernel.ShallowCopy(), cmp.Encoder.ShallowCopy(), cmp.Encryptor.ShallowCopy())
}
