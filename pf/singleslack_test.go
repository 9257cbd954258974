// Copyright 2024 The Gopf Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pf

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cpmech/gopf/la"
)

// S1: a trivial two-bus grid converges from a flat start.
func TestSingleSlackTwoBusConverges(t *testing.T) {
	Y := twoBusYbus()
	partition := twoBusPartition()
	V := la.CVector{complex(1, 0), complex(1, 0)}
	Sbus := la.CVector{0, complex(-0.5, -0.2)}

	solver := NewSingleSlackSolver(SparseLU)
	ok := solver.ComputePF(Y, V, Sbus, partition, 20, 1e-8)
	require.True(t, ok)
	require.True(t, solver.Converged())
	require.Equal(t, NoError, solver.GetError())
	require.Greater(t, solver.GetNbIter(), 0)

	F := EvaluateFx(Y, solver.GetV(), Sbus, partition.Pvpq(), partition.PQ)
	require.Less(t, la.VecNorm(F), 1e-6)
}

// S2: feeding an already-converged voltage back in converges in zero
// further iterations.
func TestSingleSlackIdempotentOnConvergedInput(t *testing.T) {
	Y := twoBusYbus()
	partition := twoBusPartition()
	V0 := la.CVector{complex(1, 0), complex(1, 0)}
	Sbus := la.CVector{0, complex(-0.5, -0.2)}

	first := NewSingleSlackSolver(SparseLU)
	require.True(t, first.ComputePF(Y, V0, Sbus, partition, 20, 1e-8))

	second := NewSingleSlackSolver(SparseLU)
	ok := second.ComputePF(Y, first.GetV(), Sbus, partition, 20, 1e-8)
	require.True(t, ok)
	require.Equal(t, 0, second.GetNbIter())
}

// S3: a bus with no structural coupling to the rest of the grid (an
// isolated PQ bus, zero off-diagonal admittance) makes the Jacobian
// exactly singular.
func TestSingleSlackSingularGridReportsSingularMatrix(t *testing.T) {
	n := 3
	y := complex(10.0, -20.0)
	rows := []int{0, 0, 1, 1}
	cols := []int{0, 1, 0, 1}
	vals := []complex128{y, -y, -y, y}
	Y := la.NewYbus(n, rows, cols, vals) // bus 2 has no off-diagonal entries at all

	partition := BusPartition{SlackIDs: []int{0}, PQ: []int{1, 2}}
	V := la.CVector{complex(1, 0), complex(1, 0), complex(1, 0)}
	Sbus := la.CVector{0, complex(-0.5, -0.2), complex(-0.3, -0.1)}

	solver := NewSingleSlackSolver(SparseLU)
	ok := solver.ComputePF(Y, V, Sbus, partition, 20, 1e-8)
	require.False(t, ok)
	require.Equal(t, SingularMatrix, solver.GetError())
}

// S4: a PV bus's voltage magnitude never moves away from its initial
// (scheduled) value.
func TestSingleSlackPVMagnitudeStaysFixed(t *testing.T) {
	y := complex(10.0, -20.0)
	// a symmetric three-bus ring: every bus connects to both others with
	// the same series admittance y, so every diagonal is 2y.
	rows := []int{0, 0, 0, 1, 1, 1, 2, 2, 2}
	cols := []int{0, 1, 2, 0, 1, 2, 0, 1, 2}
	vals := []complex128{2 * y, -y, -y, -y, 2 * y, -y, -y, -y, 2 * y}
	Y := la.NewYbus(3, rows, cols, vals)

	partition := BusPartition{SlackIDs: []int{0}, PV: []int{1}, PQ: []int{2}}
	V := la.CVector{complex(1, 0), complex(1.02, 0), complex(1, 0)}
	Sbus := la.CVector{0, complex(0.1, 0), complex(-0.1, -0.05)}

	solver := NewSingleSlackSolver(SparseLU)
	ok := solver.ComputePF(Y, V, Sbus, partition, 30, 1e-8)
	require.True(t, ok)
	require.InDelta(t, 1.02, solver.GetVm()[1], 1e-12)
}

// S5: an iteration cap that is too small to reach convergence reports
// TooManyIterations rather than silently returning a partial solution.
func TestSingleSlackTooManyIterations(t *testing.T) {
	Y := twoBusYbus()
	partition := twoBusPartition()
	V := la.CVector{complex(1, 0), complex(1, 0)}
	Sbus := la.CVector{0, complex(-0.5, -0.2)}

	solver := NewSingleSlackSolver(SparseLU)
	ok := solver.ComputePF(Y, V, Sbus, partition, 0, 1e-12)
	require.False(t, ok)
	require.Equal(t, TooManyIterations, solver.GetError())
}

// S6: a zero-magnitude initial voltage at a PQ bus feeds a division by
// zero into the derivative engine's Vnorm term; the resulting NaN in the
// Jacobian is reported as InfiniteValue rather than looping forever.
func TestSingleSlackInfiniteValueOnZeroVoltage(t *testing.T) {
	Y := twoBusYbus()
	partition := twoBusPartition()
	V := la.CVector{complex(1, 0), complex(0, 0)}
	Sbus := la.CVector{0, complex(-0.5, -0.2)}

	solver := NewSingleSlackSolver(SparseLU)
	ok := solver.ComputePF(Y, V, Sbus, partition, 20, 1e-8)
	require.False(t, ok)
	require.Equal(t, InfiniteValue, solver.GetError())
}

// The sparsity pattern assembled on the first iteration must be bit-
// identical to the one refreshed by AssembleKnownPattern on subsequent
// iterations (spec.md's "pattern stability" guarantee).
func TestJacobianPatternStableAcrossIterations(t *testing.T) {
	Y := twoBusYbus()
	pvpq := []int{1}
	pq := []int{1}
	inv := BuildInverseIndex(2, pvpq, pq)
	derivs := NewDerivatives(Y)
	V := la.CVector{complex(1, 0), complex(0.95, -0.05)}

	J1, vm1 := AssembleUnknownPattern(Y, V, derivs, pq, pvpq, inv)
	Ap := append([]int{}, J1.Ap...)
	Ai := append([]int{}, J1.Ai...)

	V2 := la.CVector{complex(1, 0), complex(0.90, -0.08)}
	AssembleKnownPattern(Y, V2, derivs, J1, vm1)

	require.Equal(t, Ap, J1.Ap)
	require.Equal(t, Ai, J1.Ai)
}

// Backend independence: SparseLU and DenseLU must reach the same
// converged voltage for the same problem.
func TestSingleSlackBackendIndependence(t *testing.T) {
	Y := twoBusYbus()
	partition := twoBusPartition()
	Sbus := la.CVector{0, complex(-0.5, -0.2)}

	sparse := NewSingleSlackSolver(SparseLU)
	require.True(t, sparse.ComputePF(Y, la.CVector{complex(1, 0), complex(1, 0)}, Sbus, partition, 20, 1e-10))

	dense := NewSingleSlackSolver(DenseLU)
	require.True(t, dense.ComputePF(Y, la.CVector{complex(1, 0), complex(1, 0)}, Sbus, partition, 20, 1e-10))

	for i := range sparse.GetV() {
		require.InDelta(t, real(sparse.GetV()[i]), real(dense.GetV()[i]), 1e-8)
		require.InDelta(t, imag(sparse.GetV()[i]), imag(dense.GetV()[i]), 1e-8)
	}
}
