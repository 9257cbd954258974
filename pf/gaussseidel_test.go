// Copyright 2024 The Gopf Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pf

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cpmech/gopf/la"
)

func TestGaussSeidelConvergesOnTwoBus(t *testing.T) {
	Y := twoBusYbus()
	partition := twoBusPartition()
	V := la.CVector{complex(1, 0), complex(1, 0)}
	Sbus := la.CVector{0, complex(-0.1, -0.05)}

	solver := NewGaussSeidelSolver()
	ok := solver.ComputeGaussSeidel(Y, V, Sbus, partition, 500, 1e-6)
	require.True(t, ok)
	require.Equal(t, NoError, solver.GetError())

	F := EvaluateFx(Y, solver.GetV(), Sbus, partition.Pvpq(), partition.PQ)
	require.Less(t, la.VecNorm(F), 1e-4)
}

func TestGaussSeidelAgreesWithNewtonRaphson(t *testing.T) {
	Y := twoBusYbus()
	partition := twoBusPartition()
	Sbus := la.CVector{0, complex(-0.1, -0.05)}

	gs := NewGaussSeidelSolver()
	require.True(t, gs.ComputeGaussSeidel(Y, la.CVector{complex(1, 0), complex(1, 0)}, Sbus, partition, 500, 1e-8))

	nr := NewSingleSlackSolver(SparseLU)
	require.True(t, nr.ComputePF(Y, la.CVector{complex(1, 0), complex(1, 0)}, Sbus, partition, 20, 1e-8))

	require.InDelta(t, real(gs.GetV()[1]), real(nr.GetV()[1]), 1e-4)
	require.InDelta(t, imag(gs.GetV()[1]), imag(nr.GetV()[1]), 1e-4)
}

func TestGaussSeidelPVMagnitudeStaysFixed(t *testing.T) {
	y := complex(10.0, -20.0)
	rows := []int{0, 0, 0, 1, 1, 1, 2, 2, 2}
	cols := []int{0, 1, 2, 0, 1, 2, 0, 1, 2}
	vals := []complex128{2 * y, -y, -y, -y, 2 * y, -y, -y, -y, 2 * y}
	Y := la.NewYbus(3, rows, cols, vals)
	partition := BusPartition{SlackIDs: []int{0}, PV: []int{1}, PQ: []int{2}}
	V := la.CVector{complex(1, 0), complex(1.02, 0), complex(1, 0)}
	Sbus := la.CVector{0, complex(0.1, 0), complex(-0.1, -0.05)}

	solver := NewGaussSeidelSolver()
	ok := solver.ComputeGaussSeidel(Y, V, Sbus, partition, 1000, 1e-6)
	require.True(t, ok)
	require.InDelta(t, 1.02, solver.GetVm()[1], 1e-9)
}
