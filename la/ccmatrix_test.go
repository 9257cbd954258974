// Copyright 2024 The Gopf Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package la

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCCMatrixSamePatternIdentityVsEqualCopy(t *testing.T) {
	A := buildSampleTriplet().ToMatrix()
	require.True(t, A.SamePattern(A))

	B := buildSampleTriplet().ToMatrix() // same contents, distinct allocation
	require.False(t, A.SamePattern(B))
}

func TestCCMatrixMatVecMul(t *testing.T) {
	A := buildSampleTriplet().ToMatrix()
	x := Vector{1, 1, 1, 1, 1}
	y := A.MatVecMul(x)
	// cross-check against ToDense's row-major materialisation.
	dense := A.ToDense()
	want := make(Vector, A.M)
	for r := 0; r < A.M; r++ {
		for c := 0; c < A.N; c++ {
			want[r] += dense[r][c] * x[c]
		}
	}
	for i := range want {
		require.InDelta(t, want[i], y[i], 1e-12)
	}
}
