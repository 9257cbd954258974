// Copyright 2024 The Gopf Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pf

import (
	"math/cmplx"

	"github.com/cpmech/gopf/la"
)

// Derivatives holds dS/dVa and dS/dVm, each sharing Ybus's CSC pattern
// exactly (spec.md §4.1). Both matrices reuse their Ap/Ai slices across
// calls to Fill; only Ax changes.
type Derivatives struct {
	DSdVa *la.CCMatrixC
	DSdVm *la.CCMatrixC
}

// NewDerivatives allocates dS/dVa and dS/dVm with Y's sparsity pattern
// and zeroed values, ready for Fill.
func NewDerivatives(Y *la.CCMatrixC) *Derivatives {
	return &Derivatives{
		DSdVa: la.NewCCMatrixCFromPattern(Y),
		DSdVm: la.NewCCMatrixCFromPattern(Y),
	}
}

// Fill (re)computes dS/dVa and dS/dVm for the given Y and V, writing
// into the existing Ax storage (no allocation) so repeated NR iterations
// never reallocate (spec.md §4.1, §5 "Memory discipline").
//
// Mathematical definition (spec.md §4.1), evaluated per non-zero of Y in
// a single O(nnz(Y)) pass:
//
//	dS/dVm = diagV·conj(Y·diagVnorm) + conj(diagIbus)·diagVnorm
//	dS/dVa = j·diagV·conj(diagIbus − Y·diagV)
//
// where Ibus = Y·V and Vnorm = V/|V|. Callers guarantee |V_i| > 0 for
// every non-slack bus participating; if that guarantee is violated the
// resulting NaN/Inf propagates into F rather than being defended
// against here (spec.md §4.1's numeric edge case).
func (d *Derivatives) Fill(Y *la.CCMatrixC, V la.CVector) {
	n := Y.N
	Ibus := Y.MulVec(V)
	Vnorm := make(la.CVector, n)
	for i, v := range V {
		Vnorm[i] = v / complex(cmplx.Abs(v), 0)
	}
	axVa := d.DSdVa.Ax
	axVm := d.DSdVm.Ax
	for c := 0; c < n; c++ {
		vc := V[c]
		vnc := Vnorm[c]
		for p := Y.Ap[c]; p < Y.Ap[c+1]; p++ {
			r := Y.Ai[p]
			yrc := Y.Ax[p]

			base := yrc * vnc
			vm := V[r] * cmplx.Conj(base)
			if r == c {
				vm += cmplx.Conj(Ibus[r]) * Vnorm[r]
			}
			axVm[p] = vm

			var diagTerm complex128
			if r == c {
				diagTerm = Ibus[r]
			}
			axVa[p] = complex(0, 1) * V[r] * cmplx.Conj(diagTerm-yrc*vc)
		}
	}
}
