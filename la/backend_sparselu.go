// Copyright 2024 The Gopf Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package la

import "math"

// SparseLUSolver is the portable, always-built LinearSolver backend: a
// plain-Go LU factorisation with partial pivoting. It is the "generic
// sparse LU" of spec.md §2/§4.4 — it accepts and returns the same CSC
// matrices as the cgo-bound backends, but factorises via a dense
// intermediate rather than exploiting fill-in-aware sparse elimination.
// That trade-off is deliberate: correctness is easy to review, and for
// the transmission-grid sizes this module targets as a reference
// implementation the O(n^3) factorisation is adequate; KLU/NICSLU exist
// precisely for the cases where it is not (see DESIGN.md).
type SparseLUSolver struct {
	n     int
	perm  []int
	lu    [][]float64
	ready bool
}

// NewSparseLUSolver constructs an unfactorised solver instance.
func NewSparseLUSolver() *SparseLUSolver {
	return &SparseLUSolver{}
}

// Initialize performs the (combined symbolic+numeric) factorisation,
// recording the pivot sequence chosen so a later Solve(justInitialized
// = false) can refactor using the same pivot order without re-searching.
func (o *SparseLUSolver) Initialize(J *CCMatrix) SolverState {
	o.n = J.N
	dense := J.ToDense()
	perm, lu, ok := luDecomposePartialPivot(dense)
	if !ok {
		return SingularMatrix
	}
	o.perm, o.lu, o.ready = perm, lu, true
	return NoError
}

// Solve solves J*x = b, overwriting b with x.
func (o *SparseLUSolver) Solve(J *CCMatrix, b Vector, justInitialized bool) SolverState {
	if !o.ready {
		return NotInit
	}
	if !justInitialized {
		dense := J.ToDense()
		lu, ok := luRefactorWithPerm(dense, o.perm)
		if !ok {
			return SolverReFactor
		}
		o.lu = lu
	}
	x, ok := luSolve(o.lu, o.perm, b)
	if !ok {
		return SolverSolve
	}
	copy(b, x)
	return NoError
}

// Reset discards the retained factorisation.
func (o *SparseLUSolver) Reset() {
	o.perm, o.lu, o.ready = nil, nil, false
}

// luDecomposePartialPivot computes an LU factorisation of dense matrix a
// with partial (row) pivoting, returning the row permutation and the
// combined L/U storage (unit diagonal of L implied, not stored).
func luDecomposePartialPivot(a [][]float64) (perm []int, lu [][]float64, ok bool) {
	n := len(a)
	lu = make([][]float64, n)
	for i := range lu {
		lu[i] = append([]float64(nil), a[i]...)
	}
	perm = make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	for k := 0; k < n; k++ {
		maxVal := math.Abs(lu[k][k])
		maxRow := k
		for i := k + 1; i < n; i++ {
			if av := math.Abs(lu[i][k]); av > maxVal {
				maxVal, maxRow = av, i
			}
		}
		if maxVal == 0 {
			return nil, nil, false
		}
		if maxRow != k {
			lu[k], lu[maxRow] = lu[maxRow], lu[k]
			perm[k], perm[maxRow] = perm[maxRow], perm[k]
		}
		for i := k + 1; i < n; i++ {
			factor := lu[i][k] / lu[k][k]
			lu[i][k] = factor
			for j := k + 1; j < n; j++ {
				lu[i][j] -= factor * lu[k][j]
			}
		}
	}
	return perm, lu, true
}

// luRefactorWithPerm redoes the numeric elimination using a fixed,
// previously-chosen pivot order (no new pivot search) — the "reuse
// symbolic analysis, refactor numerically" fast path of spec.md §4.4.
func luRefactorWithPerm(a [][]float64, perm []int) (lu [][]float64, ok bool) {
	n := len(a)
	lu = make([][]float64, n)
	for i := 0; i < n; i++ {
		lu[i] = append([]float64(nil), a[perm[i]]...)
	}
	for k := 0; k < n; k++ {
		if lu[k][k] == 0 {
			return nil, false
		}
		for i := k + 1; i < n; i++ {
			factor := lu[i][k] / lu[k][k]
			lu[i][k] = factor
			for j := k + 1; j < n; j++ {
				lu[i][j] -= factor * lu[k][j]
			}
		}
	}
	return lu, true
}

// luSolve solves A*x = b given the combined LU storage and pivot order.
func luSolve(lu [][]float64, perm []int, b Vector) (x Vector, ok bool) {
	n := len(lu)
	pb := make([]float64, n)
	for i := 0; i < n; i++ {
		pb[i] = b[perm[i]]
	}
	y := make([]float64, n)
	for i := 0; i < n; i++ {
		sum := pb[i]
		for j := 0; j < i; j++ {
			sum -= lu[i][j] * y[j]
		}
		y[i] = sum
	}
	x = make(Vector, n)
	for i := n - 1; i >= 0; i-- {
		sum := y[i]
		for j := i + 1; j < n; j++ {
			sum -= lu[i][j] * x[j]
		}
		if lu[i][i] == 0 {
			return nil, false
		}
		x[i] = sum / lu[i][i]
	}
	return x, true
}
