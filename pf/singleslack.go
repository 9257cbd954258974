// Copyright 2024 The Gopf Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pf

import (
	"time"

	"github.com/cpmech/gopf/io"
	"github.com/cpmech/gopf/la"
)

// SingleSlackSolver is the Newton-Raphson AC power-flow driver with a
// single reference bus (spec.md §4.2a, §4.5); every other declared slack
// bus is folded into pvpq and treated as an ordinary PV bus.
type SingleSlackSolver struct {
	base
	partition BusPartition
	pvpq      []int
	pq        []int
	inv       InverseIndex
}

// NewSingleSlackSolver constructs a driver bound to the given backend kind.
func NewSingleSlackSolver(kind SolverKind) *SingleSlackSolver {
	return &SingleSlackSolver{base: newBase(kind)}
}

// ComputePF runs Newton-Raphson to convergence or failure (spec.md §4.5).
// Ybus, V (initial guess) and Sbus must all have length n; partition
// classifies every bus. tol is the infinity-norm convergence threshold
// (§9 Open Question #2) and maxIter bounds the iteration count.
//
// Returns true iff GetError() == NoError on return.
func (o *SingleSlackSolver) ComputePF(Ybus *la.CCMatrixC, V la.CVector, Sbus la.CVector, partition BusPartition, maxIter int, tol float64) bool {
	partition.Validate(Ybus.N)
	n := Ybus.N
	validateSizes(n, Ybus, V, Sbus)

	if o.err == LicenseError {
		return false
	}

	t0 := nowSeconds()
	o.n = n
	o.partition = partition
	o.V = la.CVecCopy(V)
	o.Vm = la.Abs(o.V)
	o.Va = la.Angle(o.V)
	o.pvpq = partition.Pvpq()
	o.pq = partition.PQ
	// J's angle unknowns are pvpq followed by pq, matching F's layout
	// (real mismatch over pvpq then pq, imaginary mismatch over pq).
	jpvpq := append(append([]int{}, o.pvpq...), o.pq...)
	o.inv = BuildInverseIndex(n, jpvpq, o.pq)
	o.iter = 0

	tfx0 := nowSeconds()
	F := EvaluateFx(Ybus, o.V, Sbus, o.pvpq, o.pq)
	o.timers.Fx += nowSeconds() - tfx0

	if !la.VecIsFinite(F) {
		o.err = InfiniteValue
		o.timers.TotalNR += nowSeconds() - t0
		return false
	}
	if la.VecNorm(F) < tol {
		o.err = NoError
		o.timers.TotalNR += nowSeconds() - t0
		return true
	}

	derivs := NewDerivatives(Ybus)
	for o.iter = 0; o.iter < maxIter; o.iter++ {
		if o.Verbose {
			io.Pf("single-slack: iter=%d fxMax=%v\n", o.iter, la.VecNorm(F))
		}

		tj0 := nowSeconds()
		patternJustBuilt := o.J == nil
		if patternJustBuilt {
			o.J, o.valueMap = AssembleUnknownPattern(Ybus, o.V, derivs, o.pq, jpvpq, o.inv)
		} else {
			AssembleKnownPattern(Ybus, o.V, derivs, o.J, o.valueMap)
		}
		o.derivs = derivs
		o.timers.JacFill += nowSeconds() - tj0
		if !la.VecIsFinite(la.Vector(o.J.Ax)) {
			o.err = InfiniteValue
			o.timers.TotalNR += nowSeconds() - t0
			return false
		}

		rhs := la.VecCopy(F)
		ts0 := nowSeconds()
		st := NoError
		if patternJustBuilt {
			st = o.backend.Initialize(o.J)
		}
		if st == NoError {
			st = o.backend.Solve(o.J, rhs, patternJustBuilt)
		}
		o.timers.Solve += nowSeconds() - ts0
		if st != NoError {
			o.err = st
			o.timers.TotalNR += nowSeconds() - t0
			return false
		}

		o.Vm, o.Va = la.Abs(o.V), la.Angle(o.V)
		applyNewtonUpdate(o.Va, o.Vm, rhs, o.pvpq, o.pq)
		la.Recompose(o.V, o.Vm, o.Va)

		tfx1 := nowSeconds()
		F = EvaluateFx(Ybus, o.V, Sbus, o.pvpq, o.pq)
		o.timers.Fx += nowSeconds() - tfx1

		if !la.VecIsFinite(F) {
			o.err = InfiniteValue
			o.timers.TotalNR += nowSeconds() - t0
			return false
		}
		tc0 := nowSeconds()
		converged := la.VecNorm(F) < tol
		o.timers.Check += nowSeconds() - tc0
		if converged {
			o.err = NoError
			o.iter++
			o.timers.TotalNR += nowSeconds() - t0
			return true
		}
	}
	o.err = TooManyIterations
	o.timers.TotalNR += nowSeconds() - t0
	return false
}

// applyNewtonUpdate subtracts the solved correction from Va (over pvpq)
// and Va/Vm (over pq), matching F's stacking order (spec.md §4.3, §4.5
// step 6). d is consumed (overwritten by the backend) but not mutated
// here.
func applyNewtonUpdate(Va, Vm la.Vector, d la.Vector, pvpq, pq []int) {
	npvpq := len(pvpq)
	npq := len(pq)
	for i, bus := range pvpq {
		Va[bus] -= d[i]
	}
	for i, bus := range pq {
		Va[bus] -= d[npvpq+i]
		Vm[bus] -= d[npvpq+npq+i]
	}
}

// nowSeconds exists so every timer reads the clock in one place; it
// returns the wall-clock time in seconds (time.Now().UnixNano()).
func nowSeconds() float64 {
	return float64(time.Now().UnixNano()) / 1e9
}
