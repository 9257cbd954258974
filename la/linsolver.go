// Copyright 2024 The Gopf Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package la

// LinearSolver is the capability every sparse (or dense) linear-solver
// backend exposes to the NR driver (spec.md §4.4). It plays the role
// the teacher's `num.NlSolver` fills with a concrete `la.Umfpack` value
// (`o.lis.Init/.Fact/.Solve/.Free`), generalised here into an interface
// so the driver can be parameterised over interchangeable backends —
// the Go analogue of the source material's template-over-backend
// polymorphism (spec.md §9).
type LinearSolver interface {
	// Initialize performs symbolic analysis and numeric factorisation of J.
	Initialize(J *CCMatrix) SolverState

	// Solve solves J*x = b. b is overwritten with x on success. If
	// justInitialized is false and the backend supports it, only a
	// numeric refactorisation is performed (the symbolic analysis from
	// Initialize is reused); otherwise a full factorisation runs.
	Solve(J *CCMatrix, b Vector, justInitialized bool) SolverState

	// Reset discards any retained symbolic analysis / factorisation;
	// the next Initialize rebuilds from scratch.
	Reset()
}

// SolverKind selects a concrete LinearSolver implementation at
// construction (spec.md §6, "Backend selection").
type SolverKind int

const (
	// SparseLU is the portable, always-available pure-Go generic sparse
	// LU backend (la/backend_sparselu.go).
	SparseLU SolverKind = iota
	// KLU binds the SuiteSparse KLU library via cgo (build tag "klu").
	KLU
	// NICSLU binds the (licensed) NICSLU library via cgo (build tag
	// "nicslu").
	NICSLU
	// DenseLU is a Gonum mat.LU-backed dense solver, used for small
	// systems and as an independent correctness oracle (spec.md §8,
	// "Backend independence").
	DenseLU
)

func (k SolverKind) String() string {
	switch k {
	case SparseLU:
		return "SparseLU"
	case KLU:
		return "KLU"
	case NICSLU:
		return "NICSLU"
	case DenseLU:
		return "DenseLU"
	default:
		return "Unknown"
	}
}

// NewLinearSolver dispatches on kind to return a fresh backend instance.
// Backends gated behind build tags (KLU, NICSLU) fall back to an
// "unavailable" stub when this binary was not built with the
// corresponding tag: the KLU stub always reports NotInit, the NICSLU
// stub always reports LicenseError — mirroring the source
// material's own posture that NICSLU is "only compiled if ... found"
// (original_source/src/NICSLUSolver.h).
func NewLinearSolver(kind SolverKind) LinearSolver {
	switch kind {
	case SparseLU:
		return NewSparseLUSolver()
	case KLU:
		return newKLUSolver()
	case NICSLU:
		return newNICSLUSolver()
	case DenseLU:
		return NewDenseLUSolver()
	default:
		return NewSparseLUSolver()
	}
}
