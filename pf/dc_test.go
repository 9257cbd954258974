// Copyright 2024 The Gopf Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pf

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cpmech/gopf/la"
)

func TestDCSolverSingleSolveConverges(t *testing.T) {
	Y := twoBusYbus()
	V := la.CVector{complex(1, 0), complex(1, 0)}
	Sbus := la.CVector{0, complex(-0.2, 0)}

	solver := NewDCSolver(SparseLU)
	ok := solver.ComputeDC(Y, V, Sbus, []int{0}, nil, []int{1})
	require.True(t, ok)
	require.Equal(t, NoError, solver.GetError())
	require.Equal(t, 1, solver.GetNbIter())
	require.Equal(t, 1.0, solver.GetVm()[1])
	require.Equal(t, 0.0, solver.GetVa()[0])
}

func TestDCSolverKeepsCallerNonzeroVm(t *testing.T) {
	Y := twoBusYbus()
	V := la.CVector{complex(1, 0), complex(0.97, 0)}
	Sbus := la.CVector{0, complex(-0.2, 0)}

	solver := NewDCSolver(SparseLU)
	ok := solver.ComputeDC(Y, V, Sbus, []int{0}, nil, []int{1})
	require.True(t, ok)
	require.InDelta(t, 0.97, solver.GetVm()[1], 1e-12)
}
