// Copyright 2024 The Gopf Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package la

import "github.com/cpmech/gopf/chk"

// Triplet is a sparse matrix in coordinate (COO) format: a sequence of
// (row, col, value) entries, built incrementally with Put and compressed
// into CSC with ToMatrix. This is the teacher's own Triplet idiom
// (Init/Put/ToMatrix), reused here as the Jacobian assembler's staging
// area (spec.md §4.2's "reserved capacity" is this type's max parameter).
type Triplet struct {
	m, n   int
	maxNNZ int
	i, j   []int
	x      []float64
	pos    int
}

// Init (re)initialises the triplet for an m x n matrix with room for up
// to max non-zero entries.
func (o *Triplet) Init(m, n, max int) {
	o.m, o.n, o.maxNNZ = m, n, max
	o.i = make([]int, max)
	o.j = make([]int, max)
	o.x = make([]float64, max)
	o.pos = 0
}

// Put appends entry (i,j,x). Duplicate (i,j) pairs are summed by ToMatrix.
func (o *Triplet) Put(i, j int, x float64) {
	if o.pos >= o.maxNNZ {
		chk.Panic("triplet is full: max number of items = %d reached", o.maxNNZ)
	}
	o.i[o.pos], o.j[o.pos], o.x[o.pos] = i, j, x
	o.pos++
}

// Len returns the number of entries stored so far.
func (o *Triplet) Len() int {
	return o.pos
}

// ToMatrix compresses the triplet into CSC (column-major) form, summing
// duplicate (row,col) entries and sorting row indices within each column.
func (o *Triplet) ToMatrix() *CCMatrix {
	Ap := make([]int, o.n+1)
	for k := 0; k < o.pos; k++ {
		Ap[o.j[k]+1]++
	}
	for c := 0; c < o.n; c++ {
		Ap[c+1] += Ap[c]
	}
	next := make([]int, o.n)
	copy(next, Ap[:o.n])
	nnzMax := Ap[o.n]
	Ai := make([]int, nnzMax)
	Ax := make([]float64, nnzMax)
	for k := 0; k < o.pos; k++ {
		c := o.j[k]
		p := next[c]
		Ai[p] = o.i[k]
		Ax[p] = o.x[k]
		next[c]++
	}
	return compressDuplicates(o.m, o.n, Ap, Ai, Ax)
}

// compressDuplicates sorts each column by row index and sums duplicates,
// writing the result into newly allocated Ap/Ai/Ax of the final CCMatrix.
func compressDuplicates(m, n int, Ap, Ai []int, Ax []float64) *CCMatrix {
	newAi := make([]int, 0, len(Ai))
	newAx := make([]float64, 0, len(Ax))
	newAp := make([]int, n+1)
	for c := 0; c < n; c++ {
		start, end := Ap[c], Ap[c+1]
		seen := map[int]int{} // row -> index into newAi/newAx for this column
		for p := start; p < end; p++ {
			r := Ai[p]
			if idx, ok := seen[r]; ok {
				newAx[idx] += Ax[p]
				continue
			}
			seen[r] = len(newAi)
			newAi = append(newAi, r)
			newAx = append(newAx, Ax[p])
		}
		// sort the newly-added slice for this column by row index
		colStart := newAp[c]
		sortColumn(newAi[colStart:], newAx[colStart:])
		newAp[c+1] = len(newAi)
	}
	return &CCMatrix{M: m, N: n, Ap: newAp, Ai: newAi, Ax: newAx}
}

// sortColumn performs a simple insertion sort on a column's (row,value)
// pairs; columns of a Jacobian are short, so this avoids pulling in a
// generic sort for a handful of entries.
func sortColumn(ai []int, ax []float64) {
	for i := 1; i < len(ai); i++ {
		r, v := ai[i], ax[i]
		j := i - 1
		for j >= 0 && ai[j] > r {
			ai[j+1] = ai[j]
			ax[j+1] = ax[j]
			j--
		}
		ai[j+1] = r
		ax[j+1] = v
	}
}
