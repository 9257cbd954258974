// Copyright 2024 The Gopf Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build nicslu && cgo

package la

/*
#cgo LDFLAGS: -lnicslu
#include <nicslu.h>
#include <stdlib.h>
*/
import "C"

// nicsluSolver binds the (commercially licensed) NICSLU library via
// cgo, following original_source/src/NICSLUSolver.h's own posture: "the
// code of NICSLU is not included in this repository... only compiled if
// setup.py can find a version of it". Built only with `-tags nicslu`.
type nicsluSolver struct {
	n        int
	handle   C.SNicsLU
	hasGraph bool
	licensed bool
}

func newNICSLUSolver() LinearSolver {
	o := &nicsluSolver{}
	C.NicsLU_Initialize(&o.handle)
	o.licensed = C.NicsLU_CheckLicense(&o.handle) == 0
	return o
}

func (o *nicsluSolver) Initialize(J *CCMatrix) SolverState {
	if !o.licensed {
		return LicenseError
	}
	o.n = J.N
	ap := toCInts(J.Ap)
	ai := toCInts(J.Ai)
	ax := toCDoubles(J.Ax)
	if C.NicsLU_CreateMatrix(&o.handle, C.uint(o.n), C.uint(len(J.Ax)), &ax[0], &ai[0], &ap[0]) != 0 {
		return SolverAnalyze
	}
	if C.NicsLU_Analyze(&o.handle) != 0 {
		return SolverAnalyze
	}
	o.hasGraph = true
	if C.NicsLU_Factorize(&o.handle) != 0 {
		return SolverFactor
	}
	return NoError
}

func (o *nicsluSolver) Solve(J *CCMatrix, b Vector, justInitialized bool) SolverState {
	if !o.licensed {
		return LicenseError
	}
	if !o.hasGraph {
		return NotInit
	}
	if !justInitialized {
		ax := toCDoubles(J.Ax)
		if C.NicsLU_ReFactorize(&o.handle, &ax[0]) != 0 {
			return SolverReFactor
		}
	}
	rhs := toCDoubles(b)
	x := make([]C.double, o.n)
	if C.NicsLU_Solve(&o.handle, &rhs[0], &x[0]) != 0 {
		return SolverSolve
	}
	for i := range b {
		b[i] = float64(x[i])
	}
	return NoError
}

func (o *nicsluSolver) Reset() {
	if o.hasGraph {
		C.NicsLU_Destroy(&o.handle)
		C.NicsLU_Initialize(&o.handle)
	}
	o.hasGraph = false
}
