// Copyright 2024 The Gopf Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pf

import (
	"github.com/cpmech/gopf/chk"
	"github.com/cpmech/gopf/la"
)

// DCSolver computes the decoupled DC (linearised) power-flow
// approximation (SPEC_FULL.md §4.7): a single linear solve against B',
// the imaginary part of Ybus with the slack row/column removed, no
// iteration. It shares the LinearSolver abstraction with the NR drivers,
// so every backend automatically supports DC.
type DCSolver struct {
	base
}

// NewDCSolver constructs a DC driver bound to the given backend kind.
func NewDCSolver(kind SolverKind) *DCSolver {
	return &DCSolver{base: newBase(kind)}
}

// ComputeDC solves B'*Va = Pbus restricted to the non-slack angle
// unknowns (SPEC_FULL.md §4.7). Vm is taken from V for every bus (PV and
// slack keep their given magnitude; PQ buses default to 1.0 if their
// entry in V has zero magnitude). Always reports NoError and iteration
// count 1 on a successful solve, for accessor symmetry with NR.
func (o *DCSolver) ComputeDC(Ybus *la.CCMatrixC, V la.CVector, Sbus la.CVector, slackIDs, pv, pq []int) bool {
	n := Ybus.N
	validateSizes(n, Ybus, V, Sbus)
	if len(slackIDs) == 0 {
		chk.Panic("ComputeDC: slack_ids must have at least one entry")
	}

	t0 := nowSeconds()
	o.n = n
	o.Vm = make(la.Vector, n)
	for i, v := range V {
		m := cmplxAbsOrOne(v)
		o.Vm[i] = m
	}

	pvpq := make([]int, 0, len(pv)+len(slackIDs)-1+len(pq))
	pvpq = append(pvpq, pv...)
	pvpq = append(pvpq, slackIDs[1:]...)
	pvpq = append(pvpq, pq...)
	inv := make([]int, n)
	for i := range inv {
		inv[i] = -1
	}
	for pos, bus := range pvpq {
		inv[bus] = pos
	}

	m := len(pvpq)
	trip := new(la.Triplet)
	trip.Init(m, m, 2*Ybus.NNZ())
	for c, busCol := range pvpq {
		for p := Ybus.Ap[busCol]; p < Ybus.Ap[busCol+1]; p++ {
			r := Ybus.Ai[p]
			if rr := inv[r]; rr >= 0 {
				trip.Put(rr, c, imag(Ybus.Ax[p]))
			}
		}
	}
	Bp := trip.ToMatrix()

	rhs := make(la.Vector, m)
	for i, bus := range pvpq {
		rhs[i] = real(Sbus[bus])
	}

	st := o.backend.Initialize(Bp)
	if st == NoError {
		st = o.backend.Solve(Bp, rhs, true)
	}
	o.J = Bp
	if st != NoError {
		o.err = st
		o.timers.TotalNR += nowSeconds() - t0
		return false
	}

	o.Va = make(la.Vector, n)
	for i, bus := range pvpq {
		o.Va[bus] = rhs[i]
	}
	o.V = make(la.CVector, n)
	la.Recompose(o.V, o.Vm, o.Va)

	o.err = NoError
	o.iter = 1
	o.timers.TotalNR += nowSeconds() - t0
	return true
}

func cmplxAbsOrOne(v complex128) float64 {
	m := la.Abs(la.CVector{v})[0]
	if m == 0 {
		return 1.0
	}
	return m
}
