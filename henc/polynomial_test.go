package henc_test

import (
	"math"
	"math/big"
	"math/rand"
	"testing"

	"github.com/dsvedberg/HomEnc/henc"
	"github.com/stretchr/testify/require"
	"github.com/tuneinsight/lattigo/v6/utils/bignum"
)

func testSparsePolynomial(tc *testContext, t *testing.T) {

	t.Run(GetTestName(tc.params, "SparsePolynomial/New"), func(t *testing.T) {

		p, err := henc.NewSparsePolynomial([]int64{3, -2}, []int{1, 3}, 2)
		require.NoError(t, err)
		require.Equal(t, 3, p.Degree())
		require.Equal(t, 2, p.Depth())

		for _, test := range []struct {
			coeffs    []int64
			exponents []int
		}{
			{[]int64{1, 2}, []int{1}},    // length mismatch
			{[]int64{}, []int{}},         // empty
			{[]int64{1}, []int{0}},       // exponent below one
			{[]int64{1, 1}, []int{3, 3}}, // not strictly increasing
			{[]int64{1, 0}, []int{1, 3}}, // zero coefficient
		} {
			_, err = henc.NewSparsePolynomial(test.coeffs, test.exponents, 0)
			require.Error(t, err)
		}
	})

	t.Run(GetTestName(tc.params, "SparsePolynomial/EvaluateFloat64"), func(t *testing.T) {

		p, err := henc.NewSparsePolynomial([]int64{3, -2}, []int{1, 3}, 2)
		require.NoError(t, err)

		// (3x - 2x^3) / 4
		require.InDelta(t, 0.25, p.EvaluateFloat64(1), 1e-15)
		require.InDelta(t, -0.25, p.EvaluateFloat64(-1), 1e-15)
		require.InDelta(t, (1.5-0.25)/4, p.EvaluateFloat64(0.5), 1e-15)

		require.InDelta(t, 0.85888671875, henc.SignPolynomialG.EvaluateFloat64(0.5), 1e-12)
		require.InDelta(t, 0.748046875, henc.SignPolynomialF.EvaluateFloat64(1), 1e-12)
	})
}

// referenceValues evaluates p on xs with 128-bit arithmetic, giving a
// reference independent of the float64 path under test.
func referenceValues(p henc.SparsePolynomial, xs []float64) (ys []float64) {

	prec := uint(128)

	coeffs := make([]*big.Float, p.Degree()+1)
	for i := range coeffs {
		coeffs[i] = bignum.NewFloat(0, prec)
	}

	den := bignum.NewFloat(math.Exp2(float64(p.Power)), prec)
	for i, e := range p.Exponents {
		coeffs[e].Quo(bignum.NewFloat(float64(p.Coeffs[i]), prec), den)
	}

	poly := bignum.NewPolynomial(bignum.Monomial, coeffs, nil)

	ys = make([]float64, len(xs))
	for i, x := range xs {
		y, _ := poly.Evaluate(bignum.NewFloat(x, prec)).Real().Float64()
		ys[i] = y
	}

	return
}

// signGrid returns the test grid covering [-1, 1] with step 0.05.
func signGrid() (xs []float64) {
	for x := -1.0; x <= 1.0+1e-9; x += 0.05 {
		xs = append(xs, x)
	}
	return
}

func testPolynomialEvaluator(tc *testContext, t *testing.T) {

	evalPoly := henc.NewPolynomialEvaluator(tc.evaluator, tc.encoder, tc.encryptor)

	t.Run(GetTestName(tc.params, "PolynomialEvaluator/Sparse"), func(t *testing.T) {

		p, err := henc.NewSparsePolynomial([]int64{3, -2}, []int{1, 3}, 2)
		require.NoError(t, err)

		r := rand.New(rand.NewSource(3))

		want, ct := newTestVector(tc, t, randomFloats(r, 16, -1, 1)...)

		res, err := evalPoly.Evaluate(ct, p)
		require.NoError(t, err)

		// One level for the isolating copy, bitlen(3) for the powers.
		require.Equal(t, ct.Level()-3, res.Level())

		verifyApprox(t, referenceValues(p, want), decrypt(tc, t, res), 1e-6)

		// The argument is still intact and at its original level.
		require.Equal(t, tc.params.MaxLevel(), ct.Level())
		verifyApprox(t, want, decrypt(tc, t, ct), 1e-6)
	})

	for _, test := range []struct {
		name string
		p    henc.SparsePolynomial
	}{
		{"SignPolynomialG", henc.SignPolynomialG},
		{"SignPolynomialF", henc.SignPolynomialF},
	} {
		t.Run(GetTestName(tc.params, "PolynomialEvaluator/"+test.name), func(t *testing.T) {

			want, ct := newTestVector(tc, t, signGrid()...)

			res, err := evalPoly.Evaluate(ct, test.p)
			require.NoError(t, err)

			require.Equal(t, ct.Level()-4, res.Level())

			verifyApprox(t, referenceValues(test.p, want), decrypt(tc, t, res), 1e-2)
		})
	}

	t.Run(GetTestName(tc.params, "PolynomialEvaluator/InsufficientDepth"), func(t *testing.T) {

		p, err := henc.NewSparsePolynomial([]int64{1}, []int{1024}, 0)
		require.NoError(t, err)

		_, ct := newTestVector(tc, t, 0.5)

		_, err = evalPoly.Evaluate(ct, p)

		var errDepth henc.InsufficientDepthError
		require.ErrorAs(t, err, &errDepth)
		require.Equal(t, 1024, errDepth.Degree)
		require.Equal(t, 10, errDepth.Depth)
		require.Equal(t, henc.MaxDepth(tc.params), errDepth.MaxDepth)
	})
}
