// Copyright 2024 The Gopf Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build !nicslu || !cgo

package la

// nicsluUnavailableSolver is returned when this binary was not built
// with `-tags nicslu` (or cgo is disabled). NICSLU is a licensed
// library (spec.md §7's LicenseError exists specifically for it), so
// the stub reports LicenseError rather than NotInit — the same sticky
// failure a present-but-unlicensed build would report, per spec.md §7
// ("A LicenseError is sticky: subsequent compute_pf calls short-circuit
// to false until reset").
type nicsluUnavailableSolver struct{}

func newNICSLUSolver() LinearSolver {
	return nicsluUnavailableSolver{}
}

func (nicsluUnavailableSolver) Initialize(J *CCMatrix) SolverState {
	return LicenseError
}

func (nicsluUnavailableSolver) Solve(J *CCMatrix, b Vector, justInitialized bool) SolverState {
	return LicenseError
}

func (nicsluUnavailableSolver) Reset() {}
