// Copyright 2024 The Gopf Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pf

import (
	"math/cmplx"

	"github.com/cpmech/gopf/io"
	"github.com/cpmech/gopf/la"
)

// GaussSeidelSolver is the fixed-point iterative power-flow variant
// (SPEC_FULL.md §4.8): slower than Newton-Raphson, kept as an
// independent reference method and sharing the same accessor surface
// and convergence test (EvaluateFx, infinity norm) as the NR drivers.
type GaussSeidelSolver struct {
	base
}

// NewGaussSeidelSolver constructs a Gauss-Seidel driver. It holds no
// linear-solver backend (there is no linear system to factor), but
// embeds base for the shared accessor surface and timers.
func NewGaussSeidelSolver() *GaussSeidelSolver {
	return &GaussSeidelSolver{base: base{err: NotInit}}
}

// ComputeGaussSeidel iterates V_i <- (1/Y_ii)*(conj(S_i)/conj(V_i) -
// sum_{j!=i} Y_ij*V_j) over every non-slack bus each sweep. For a PV bus
// the reactive part of S_i is the Q computed from the current iterate,
// and |V_i| is reset to its PV target after the update. It stops when
// EvaluateFx's infinity
// norm drops below tol or maxIter sweeps are exhausted.
func (o *GaussSeidelSolver) ComputeGaussSeidel(Ybus *la.CCMatrixC, V la.CVector, Sbus la.CVector, partition BusPartition, maxIter int, tol float64) bool {
	partition.Validate(Ybus.N)
	n := Ybus.N
	validateSizes(n, Ybus, V, Sbus)

	t0 := nowSeconds()
	o.n = n
	o.V = la.CVecCopy(V)
	o.iter = 0

	pvTarget := make(map[int]float64, len(partition.PV))
	for _, i := range partition.PV {
		pvTarget[i] = cmplx.Abs(o.V[i])
	}
	slackSet := make(map[int]bool, len(partition.SlackIDs))
	for _, i := range partition.SlackIDs {
		slackSet[i] = true
	}
	update := append(append([]int{}, partition.PV...), partition.PQ...)
	pvpq := partition.Pvpq()
	pq := partition.PQ

	tfx0 := nowSeconds()
	F := EvaluateFx(Ybus, o.V, Sbus, pvpq, pq)
	o.timers.Fx += nowSeconds() - tfx0
	if !la.VecIsFinite(F) {
		o.err = InfiniteValue
		o.timers.TotalNR += nowSeconds() - t0
		return false
	}

	for o.iter = 0; o.iter < maxIter; o.iter++ {
		if la.VecNorm(F) < tol {
			break
		}
		if o.Verbose {
			io.Pf("gauss-seidel: sweep=%d fxMax=%v\n", o.iter, la.VecNorm(F))
		}

		ts0 := nowSeconds()
		for _, i := range update {
			if slackSet[i] {
				continue
			}
			var sum complex128
			for p := Ybus.Ap[i]; p < Ybus.Ap[i+1]; p++ {
				j := Ybus.Ai[p]
				if j == i {
					continue
				}
				// the pattern is symmetric, so Y_ij sits in column j
				sum += Ybus.Ax[Ybus.FindIndex(i, j)] * o.V[j]
			}
			var yii complex128
			for p := Ybus.Ap[i]; p < Ybus.Ap[i+1]; p++ {
				if Ybus.Ai[p] == i {
					yii = Ybus.Ax[p]
					break
				}
			}
			s := Sbus[i]
			target, isPV := pvTarget[i]
			if isPV {
				q := imag(o.V[i] * cmplx.Conj(sum+yii*o.V[i]))
				s = complex(real(s), q)
			}
			term := cmplx.Conj(s) / cmplx.Conj(o.V[i])
			o.V[i] = (term - sum) / yii
			if isPV {
				m := cmplx.Abs(o.V[i])
				if m > 0 {
					o.V[i] *= complex(target/m, 0)
				}
			}
		}
		o.timers.Solve += nowSeconds() - ts0

		if !la.VecIsFinite(realAndImagInterleaved(o.V)) {
			o.err = InfiniteValue
			o.timers.TotalNR += nowSeconds() - t0
			return false
		}

		tfx1 := nowSeconds()
		F = EvaluateFx(Ybus, o.V, Sbus, pvpq, pq)
		o.timers.Fx += nowSeconds() - tfx1
		if !la.VecIsFinite(F) {
			o.err = InfiniteValue
			o.timers.TotalNR += nowSeconds() - t0
			return false
		}
	}

	o.Vm = la.Abs(o.V)
	o.Va = la.Angle(o.V)

	if la.VecNorm(F) < tol {
		o.err = NoError
		o.timers.TotalNR += nowSeconds() - t0
		return true
	}
	o.err = TooManyIterations
	o.timers.TotalNR += nowSeconds() - t0
	return false
}

// realAndImagInterleaved flattens a complex vector into a real one so
// la.VecIsFinite can check every component for NaN/Inf in one pass.
func realAndImagInterleaved(v la.CVector) la.Vector {
	out := make(la.Vector, 2*len(v))
	for i, x := range v {
		out[2*i] = real(x)
		out[2*i+1] = imag(x)
	}
	return out
}
