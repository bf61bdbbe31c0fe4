package henc_test

import (
	"testing"

	"github.com/dsvedberg/HomEnc/henc"
	"github.com/stretchr/testify/require"
)

func testLevelBudget(tc *testContext, t *testing.T) {

	t.Run(GetTestName(tc.params, "LevelBudget/MaxDepth"), func(t *testing.T) {
		require.Equal(t, tc.params.QCount()-2, henc.MaxDepth(tc.params))
	})

	t.Run(GetTestName(tc.params, "LevelBudget/Depth"), func(t *testing.T) {
		for _, test := range []struct {
			degree, depth int
		}{
			{1, 0}, {2, 1}, {3, 2}, {4, 2}, {5, 3}, {7, 3}, {8, 3}, {9, 4}, {16, 4}, {17, 5}, {1024, 10},
		} {
			require.Equal(t, test.depth, henc.Depth(test.degree), "degree=%d", test.degree)
		}
	})

	t.Run(GetTestName(tc.params, "LevelBudget/CheckDepth"), func(t *testing.T) {

		require.NoError(t, henc.CheckDepth(8, 3))
		require.NoError(t, henc.CheckDepth(7, henc.MaxDepth(tc.params)))

		err := henc.CheckDepth(9, 3)
		require.Error(t, err)

		var errDepth henc.InsufficientDepthError
		require.ErrorAs(t, err, &errDepth)
		require.Equal(t, 9, errDepth.Degree)
		require.Equal(t, 4, errDepth.Depth)
		require.Equal(t, 3, errDepth.MaxDepth)
	})
}
