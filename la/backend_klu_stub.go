// Copyright 2024 The Gopf Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build !klu || !cgo

package la

// kluUnavailableSolver is returned when this binary was not built with
// `-tags klu` (or cgo is disabled). Every operation reports NotInit so
// callers relying on SolverKind selection get a clear, inspectable
// failure instead of a silent fallback to a different backend.
type kluUnavailableSolver struct{}

func newKLUSolver() LinearSolver {
	return kluUnavailableSolver{}
}

func (kluUnavailableSolver) Initialize(J *CCMatrix) SolverState {
	return NotInit
}

func (kluUnavailableSolver) Solve(J *CCMatrix, b Vector, justInitialized bool) SolverState {
	return NotInit
}

func (kluUnavailableSolver) Reset() {}
