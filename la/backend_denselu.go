// Copyright 2024 The Gopf Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package la

import (
	"gonum.org/v1/gonum/mat"
)

// DenseLUSolver backs the LinearSolver capability with Gonum's dense LU
// factorisation (gonum.org/v1/gonum/mat.LU). It exists for small systems
// and as an independently-implemented correctness oracle to check the
// sparse backends against (spec.md §8, "Backend independence") — the
// teacher's own `num.NlSolver.useDn` dense code path, regrounded on a
// real third-party dense-linear-algebra library instead of a hand-rolled
// matrix inverse.
type DenseLUSolver struct {
	n     int
	lu    mat.LU
	ready bool
}

// NewDenseLUSolver constructs an unfactorised solver instance.
func NewDenseLUSolver() *DenseLUSolver {
	return &DenseLUSolver{}
}

// Initialize factorises J with Gonum's LU decomposition.
func (o *DenseLUSolver) Initialize(J *CCMatrix) SolverState {
	o.n = J.N
	dense := toGonumDense(J)
	o.lu.Factorize(dense)
	if o.lu.Cond() > 1e15 {
		return SingularMatrix
	}
	o.ready = true
	return NoError
}

// Solve solves J*x = b, overwriting b with x. Gonum's LU has no
// numeric-only refactor path distinct from Factorize, so justInitialized
// only controls whether a fresh factorisation is required.
func (o *DenseLUSolver) Solve(J *CCMatrix, b Vector, justInitialized bool) SolverState {
	if !justInitialized {
		if st := o.Initialize(J); st != NoError {
			return st
		}
	}
	if !o.ready {
		return NotInit
	}
	rhs := mat.NewVecDense(o.n, []float64(b))
	var x mat.VecDense
	if err := o.lu.SolveVecTo(&x, false, rhs); err != nil {
		return SolverSolve
	}
	for i := 0; i < o.n; i++ {
		b[i] = x.AtVec(i)
	}
	return NoError
}

// Reset discards the retained factorisation.
func (o *DenseLUSolver) Reset() {
	o.ready = false
}

func toGonumDense(J *CCMatrix) *mat.Dense {
	d := mat.NewDense(J.M, J.N, nil)
	for c := 0; c < J.N; c++ {
		for p := J.Ap[c]; p < J.Ap[c+1]; p++ {
			d.Set(J.Ai[p], c, J.Ax[p])
		}
	}
	return d
}
