// Copyright 2024 The Gopf Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pf

import "github.com/cpmech/gopf/la"

// ValueMapEntry is one entry of value_map (spec.md §3, §9): instead of a
// raw pointer into a dS matrix's value array (as the source material
// does), it stores an index into that array plus a tag recording which
// dS matrix and which part (real/imaginary) it refreshes from — "the
// fast path becomes an indexed array read, not pointer chasing"
// (spec.md §9).
type ValueMapEntry struct {
	FromVa bool // true: dS/dVa.Ax[Idx]; false: dS/dVm.Ax[Idx]
	IsReal bool // true: take the real part; false: the imaginary part
	Idx    int
}

// AssembleUnknownPattern builds J from scratch (spec.md §4.2a): it
// refreshes the derivative matrices, allocates J with reserved capacity,
// fills it column by column (left block from dS/dVa, right block from
// dS/dVm), compresses it to CSC and builds the value_map.
func AssembleUnknownPattern(Y *la.CCMatrixC, V la.CVector, derivs *Derivatives, pq, pvpq []int, inv InverseIndex) (*la.CCMatrix, []ValueMapEntry) {
	derivs.Fill(Y, V)
	npvpq, npq := len(pvpq), len(pq)
	m := npvpq + npq
	cap := 2 * (derivs.DSdVa.NNZ() + derivs.DSdVm.NNZ())
	trip := new(la.Triplet)
	trip.Init(m, m, cap)

	fillBlock(trip, derivs.DSdVa, pvpq, 0, npvpq, inv)
	fillBlock(trip, derivs.DSdVm, pq, npvpq, npvpq, inv)

	J := trip.ToMatrix()
	valueMap := fillValueMap(J, derivs, pq, pvpq, inv)
	return J, valueMap
}

// fillBlock traverses the dS columns named by cols (either pvpq, for the
// left/dS-dVa block, or pq, for the right/dS-dVm block) and puts each
// structural entry into the Triplet at (row, colOffset+c), splitting
// into the real (upper, pvpq_inv) and imaginary (lower, pq_inv+|pvpq|)
// blocks per spec.md §4.2. Entries whose inverse index is -1 (neither
// a pvpq nor a pq bus — e.g. the reference slack bus) are dropped.
func fillBlock(trip *la.Triplet, ds *la.CCMatrixC, cols []int, colOffset, npvpq int, inv InverseIndex) {
	for c, busCol := range cols {
		for p := ds.Ap[busCol]; p < ds.Ap[busCol+1]; p++ {
			r := ds.Ai[p]
			v := ds.Ax[p]
			if rr := inv.PvpqInv[r]; rr >= 0 {
				trip.Put(rr, colOffset+c, real(v))
			}
			if rr := inv.PqInv[r]; rr >= 0 {
				trip.Put(npvpq+rr, colOffset+c, imag(v))
			}
		}
	}
}

// fillValueMap walks J in CSC order and, for each non-zero, determines
// its originating dS matrix (column block) and real/imaginary part (row
// block), then records the dS array index so AssembleKnownPattern can
// refresh J in a single O(nnz(J)) pass (spec.md §4.2).
func fillValueMap(J *la.CCMatrix, derivs *Derivatives, pq, pvpq []int, inv InverseIndex) []ValueMapEntry {
	npvpq := len(pvpq)
	vm := make([]ValueMapEntry, len(J.Ax))
	for c := 0; c < J.N; c++ {
		for p := J.Ap[c]; p < J.Ap[c+1]; p++ {
			r := J.Ai[p]
			isReal := r < npvpq
			fromVa := c < npvpq
			var dsRow, dsCol int
			if fromVa {
				dsCol = pvpq[c]
			} else {
				dsCol = pq[c-npvpq]
			}
			if isReal {
				dsRow = pvpq[r]
			} else {
				dsRow = pq[r-npvpq]
			}
			var idx int
			if fromVa {
				idx = derivs.DSdVa.FindIndex(dsRow, dsCol)
			} else {
				idx = derivs.DSdVm.FindIndex(dsRow, dsCol)
			}
			vm[p] = ValueMapEntry{FromVa: fromVa, IsReal: isReal, Idx: idx}
		}
	}
	return vm
}

// AssembleKnownPattern refreshes J's values in place via value_map,
// without recomputing any index (spec.md §4.2b). The derivative engine
// is refreshed first so the dS matrices hold the current iterate's
// values.
func AssembleKnownPattern(Y *la.CCMatrixC, V la.CVector, derivs *Derivatives, J *la.CCMatrix, valueMap []ValueMapEntry) {
	derivs.Fill(Y, V)
	for p, e := range valueMap {
		var v complex128
		if e.FromVa {
			v = derivs.DSdVa.Ax[e.Idx]
		} else {
			v = derivs.DSdVm.Ax[e.Idx]
		}
		if e.IsReal {
			J.Ax[p] = real(v)
		} else {
			J.Ax[p] = imag(v)
		}
	}
}
