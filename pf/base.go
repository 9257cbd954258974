// Copyright 2024 The Gopf Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pf

import (
	"github.com/cpmech/gopf/chk"
	"github.com/cpmech/gopf/la"
)

// base holds everything the NR, DC and Gauss-Seidel drivers own and keep
// across calls: the backend, the assembled Jacobian, the value_map, the
// derivative matrices, the voltage buffers, and the accessor state
// (spec.md §3 "Lifecycle", §5 "Shared-resource policy"). It is embedded
// by SingleSlackSolver, DistributedSlackSolver and GaussSeidelSolver
// rather than duplicated across them — the common "BaseSolver" of
// spec.md §4.5/§9, expressed as Go composition instead of a C++ base
// class.
type base struct {
	n int

	V  la.CVector
	Vm la.Vector
	Va la.Vector

	err    SolverState
	iter   int
	timers Timers

	backend la.LinearSolver
	kind    SolverKind

	J        *la.CCMatrix
	valueMap []ValueMapEntry
	derivs   *Derivatives

	Verbose bool
}

func newBase(kind SolverKind) base {
	return base{err: NotInit, backend: la.NewLinearSolver(kind), kind: kind}
}

// GetV returns the current (or converged) complex voltage vector.
func (o *base) GetV() la.CVector { return o.V }

// GetVm returns the current voltage magnitude vector.
func (o *base) GetVm() la.Vector { return o.Vm }

// GetVa returns the current voltage angle vector.
func (o *base) GetVa() la.Vector { return o.Va }

// GetError returns the solver's sticky error/status field.
func (o *base) GetError() SolverState { return o.err }

// GetNbIter returns the number of completed NR iterations (0 if the
// initial guess was already converged).
func (o *base) GetNbIter() int { return o.iter }

// Converged reports whether the error state is NoError.
func (o *base) Converged() bool { return o.err == NoError }

// GetTimers returns the cumulative timers for this solver instance.
func (o *base) GetTimers() Timers { return o.timers }

// GetJ returns the Jacobian assembled at termination (nil before the
// first call that needed one, e.g. an input that was already converged).
func (o *base) GetJ() *la.CCMatrix { return o.J }

// Reset discards the retained factorisation, Jacobian, value_map and
// derivative matrices (spec.md §6 "Lifecycle operation — reset"). The
// next compute call rebuilds everything from scratch, including a fresh
// symbolic analysis in the backend.
func (o *base) Reset() {
	o.backend.Reset()
	o.J = nil
	o.valueMap = nil
	o.derivs = nil
	o.err = NotInit
	o.iter = 0
	o.timers.reset()
}

// validateSizes is the fatal-precondition check spec.md §4.5 step 0 and
// §7 require before any mutation of solver state.
func validateSizes(n int, Ybus *la.CCMatrixC, V, Sbus la.CVector) {
	if Ybus.M != n || Ybus.N != n {
		chk.Panic("compute_pf: Ybus must be square n x n; got %d x %d for n=%d", Ybus.M, Ybus.N, n)
	}
	if len(V) != n {
		chk.Panic("compute_pf: len(V)=%d must equal n=%d", len(V), n)
	}
	if len(Sbus) != n {
		chk.Panic("compute_pf: len(Sbus)=%d must equal n=%d", len(Sbus), n)
	}
}
