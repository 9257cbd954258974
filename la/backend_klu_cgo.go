// Copyright 2024 The Gopf Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build klu && cgo

package la

/*
#cgo LDFLAGS: -lklu -lamd -lcolamd -lsuitesparseconfig
#include <klu.h>
#include <stdlib.h>
*/
import "C"

// kluSolver binds SuiteSparse KLU (spec.md §2/§4.4) via cgo. Built only
// when this binary is compiled with `-tags klu` and KLU's headers and
// libraries are available on the system, following the same posture as
// the teacher's own cgo bindings to Umfpack/Mumps (neither of which ship
// with this module either).
type kluSolver struct {
	n         int
	common    C.klu_common
	symbolic  *C.klu_symbolic
	numeric   *C.klu_numeric
	ap        []C.int
	ai        []C.int
	hasSymbol bool
}

func newKLUSolver() LinearSolver {
	o := &kluSolver{}
	C.klu_defaults(&o.common)
	return o
}

func (o *kluSolver) Initialize(J *CCMatrix) SolverState {
	o.n = J.N
	o.ap = toCInts(J.Ap)
	o.ai = toCInts(J.Ai)
	o.symbolic = C.klu_analyze(C.int(o.n), &o.ap[0], &o.ai[0], &o.common)
	if o.symbolic == nil {
		return SolverAnalyze
	}
	o.hasSymbol = true
	ax := toCDoubles(J.Ax)
	o.numeric = C.klu_factor(&o.ap[0], &o.ai[0], &ax[0], o.symbolic, &o.common)
	if o.numeric == nil {
		return SolverFactor
	}
	return NoError
}

func (o *kluSolver) Solve(J *CCMatrix, b Vector, justInitialized bool) SolverState {
	if !o.hasSymbol || o.numeric == nil {
		return NotInit
	}
	if !justInitialized {
		ax := toCDoubles(J.Ax)
		ok := C.klu_refactor(&o.ap[0], &o.ai[0], &ax[0], o.symbolic, o.numeric, &o.common)
		if ok == 0 {
			return SolverReFactor
		}
	}
	rhs := toCDoubles(b)
	ok := C.klu_solve(o.symbolic, o.numeric, C.int(o.n), 1, &rhs[0], &o.common)
	if ok == 0 {
		return SolverSolve
	}
	for i := range b {
		b[i] = float64(rhs[i])
	}
	return NoError
}

func (o *kluSolver) Reset() {
	if o.numeric != nil {
		C.klu_free_numeric(&o.numeric, &o.common)
	}
	if o.symbolic != nil {
		C.klu_free_symbolic(&o.symbolic, &o.common)
	}
	o.hasSymbol = false
}

func toCInts(s []int) []C.int {
	r := make([]C.int, len(s))
	for i, v := range s {
		r[i] = C.int(v)
	}
	return r
}

func toCDoubles(s []float64) []C.double {
	r := make([]C.double, len(s))
	for i, v := range s {
		r[i] = C.double(v)
	}
	return r
}
