package henc_test

import (
	"testing"

	"github.com/dsvedberg/HomEnc/henc"
	"github.com/stretchr/testify/require"
)

// compositeIndicator is the plaintext reference of [henc.Compare]:
// (f(g(a-b))+1)/2, evaluated stage by stage with 128-bit arithmetic.
func compositeIndicator(as, bs []float64) (ys []float64) {

	ds := make([]float64, len(as))
	for i := range ds {
		ds[i] = as[i] - bs[i]
	}

	ys = referenceValues(henc.SignPolynomialF, referenceValues(henc.SignPolynomialG, ds))
	for i := range ys {
		ys[i] = (ys[i] + 1) / 2
	}

	return
}

func testComparisons(tc *testContext, t *testing.T) {

	evalCmp := henc.NewComparisonEvaluator(tc.evaluator, tc.encoder, tc.encryptor)

	t.Run(GetTestName(tc.params, "Compare/Indicator"), func(t *testing.T) {

		as := []float64{0.5, 0.25, 1.0, 0.0, 0.875, 0.125, 0.55, 0.3}
		bs := []float64{0.25, 0.5, 0.0, 1.0, 0.925, 0.075, 0.5, 0.35}

		wantA, ctA := newTestVector(tc, t, as...)
		wantB, ctB := newTestVector(tc, t, bs...)

		res, err := evalCmp.Compare(ctA, ctB)
		require.NoError(t, err)

		// Two stages of depth four each.
		require.Equal(t, tc.params.MaxLevel()-8, res.Level())

		want := compositeIndicator(wantA, wantB)
		have := decrypt(tc, t, res)

		verifyApprox(t, want, have, 1e-2)

		// The indicator lands on the correct side of 1/2 for every pair.
		for i := range have {
			if wantA[i] > wantB[i] {
				require.Greater(t, have[i], 0.5, "slot %d: %f > %f", i, wantA[i], wantB[i])
			} else {
				require.Less(t, have[i], 0.5, "slot %d: %f < %f", i, wantA[i], wantB[i])
			}
		}
	})

	t.Run(GetTestName(tc.params, "Compare/Equal"), func(t *testing.T) {

		_, ctA := newTestVector(tc, t, 0.7, 0.2, 0.5)
		_, ctB := newTestVector(tc, t, 0.7, 0.2, 0.5)

		res, err := evalCmp.Compare(ctA, ctB)
		require.NoError(t, err)

		// Equal inputs map to the fixed point 1/2 of the indicator.
		for _, have := range decrypt(tc, t, res) {
			require.InDelta(t, 0.5, have, 1e-2)
		}
	})

	t.Run(GetTestName(tc.params, "Compare/InsufficientLevels"), func(t *testing.T) {

		_, ctA := newTestVector(tc, t, 0.5)
		_, ctB := newTestVector(tc, t, 0.25)

		tc.evaluator.DropLevel(ctA, 1)

		_, err := evalCmp.Compare(ctA, ctB)

		var errDepth henc.InsufficientDepthError
		require.ErrorAs(t, err, &errDepth)
		require.Equal(t, 8, errDepth.Depth)
		require.Equal(t, tc.params.MaxLevel()-2, errDepth.MaxDepth)
	})
}
