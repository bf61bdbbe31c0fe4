package henc_test

import (
	"fmt"
	"math"
	"math/bits"
	"math/rand"
	"testing"

	"github.com/dsvedberg/HomEnc/henc"
	"github.com/stretchr/testify/require"
)

func testComputePower(tc *testContext, t *testing.T) {

	evalPow := henc.NewPowerEvaluator(tc.evaluator)

	r := rand.New(rand.NewSource(2))

	for _, exponent := range []int{1, 2, 3, 4, 5, 7, 8, 16} {

		t.Run(GetTestName(tc.params, fmt.Sprintf("ComputePower/Exponent=%d", exponent)), func(t *testing.T) {

			want, ct := newTestVector(tc, t, randomFloats(r, 16, -1, 1)...)

			acc := encryptOnes(tc, t, ct.Level(), ct.Scale)

			res, err := evalPow.ComputePower(ct, exponent, acc)
			require.NoError(t, err)

			// The accumulator consumes one level per bit of the exponent.
			require.Equal(t, tc.params.MaxLevel()-bits.Len(uint(exponent)), res.Level())

			powers := make([]float64, len(want))
			for i := range powers {
				powers[i] = math.Pow(want[i], float64(exponent))
			}

			verifyApprox(t, powers, decrypt(tc, t, res), 1e-6)
		})
	}

	t.Run(GetTestName(tc.params, "ComputePower/ZeroExponent"), func(t *testing.T) {

		_, ct := newTestVector(tc, t, 0.5)

		acc := encryptOnes(tc, t, ct.Level(), ct.Scale)

		for _, exponent := range []int{0, -3} {

			_, err := evalPow.ComputePower(ct, exponent, acc)

			var errZero henc.ZeroExponentError
			require.ErrorAs(t, err, &errZero)
			require.Equal(t, exponent, errZero.Exponent)
		}
	})
}
