// Copyright 2024 The Gopf Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package la

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func buildTwoBusYbus() *CCMatrixC {
	// classic two-bus line: y = 10-j on the diagonal, -(10-j) off-diagonal
	y := complex(10, -1)
	rows := []int{0, 0, 1, 1}
	cols := []int{0, 1, 0, 1}
	vals := []complex128{y, -y, -y, y}
	return NewYbus(2, rows, cols, vals)
}

func TestNewYbusSumsAndKeepsDiagonal(t *testing.T) {
	Y := buildTwoBusYbus()
	require.Equal(t, 4, Y.NNZ())
	idx := Y.FindIndex(0, 0)
	require.GreaterOrEqual(t, idx, 0)
	require.Equal(t, complex(10, -1), Y.Ax[idx])
}

func TestNewYbusKeepsDiagonalEvenIfAbsentFromInput(t *testing.T) {
	// only an off-diagonal entry is supplied; diagonal must still be a
	// structural non-zero (spec.md §4.1 relies on this).
	Y := NewYbus(3, []int{0}, []int{1}, []complex128{complex(1, 0)})
	for d := 0; d < 3; d++ {
		require.GreaterOrEqual(t, Y.FindIndex(d, d), 0)
	}
}

func TestCCMatrixCMulVec(t *testing.T) {
	Y := buildTwoBusYbus()
	V := CVector{complex(1, 0), complex(1, 0)}
	Ibus := Y.MulVec(V)
	// symmetric balanced case: Ibus should be ~0 at both buses
	require.InDelta(t, 0.0, real(Ibus[0]), 1e-9)
	require.InDelta(t, 0.0, imag(Ibus[0]), 1e-9)
	require.InDelta(t, 0.0, real(Ibus[1]), 1e-9)
	require.InDelta(t, 0.0, imag(Ibus[1]), 1e-9)
}

func TestFindIndexAbsentReturnsMinusOne(t *testing.T) {
	Y := buildTwoBusYbus()
	require.Equal(t, -1, Y.FindIndex(5, 0))
}
