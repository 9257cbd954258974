// Copyright 2024 The Gopf Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pf

import (
	"math/cmplx"

	"github.com/cpmech/gopf/la"
)

// EvaluateFx computes the stacked real/imaginary power mismatch at
// every non-slack bus (spec.md §4.3): for i in pv, F_i = real(mismatch),
// then for i in pq, F_i = real(mismatch) followed by F_i = imag
// (mismatch), where mismatch_i = V_i·conj((Y·V)_i) − Sbus_i.
//
// pv here is the caller's chosen pvpq-ordering source (i.e. pv++
// slack_ids[1:] for the single-slack driver, or slack_ids[1:]++pv for
// distributed slack) —
// the function only needs "the buses whose real mismatch forms the
// upper block", named pv to match spec.md's notation.
func EvaluateFx(Y *la.CCMatrixC, V, Sbus la.CVector, pv, pq []int) la.Vector {
	Ibus := Y.MulVec(V)
	mismatch := func(i int) complex128 {
		return V[i]*cmplx.Conj(Ibus[i]) - Sbus[i]
	}
	F := make(la.Vector, len(pv)+2*len(pq))
	idx := 0
	for _, i := range pv {
		F[idx] = real(mismatch(i))
		idx++
	}
	for _, i := range pq {
		F[idx] = real(mismatch(i))
		idx++
	}
	for _, i := range pq {
		F[idx] = imag(mismatch(i))
		idx++
	}
	return F
}
