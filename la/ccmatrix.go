// Copyright 2024 The Gopf Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package la

// CCMatrix is a real sparse matrix in compressed-sparse-column (CSC)
// format: Ap (column pointers, length N+1), Ai (row indices, length
// NNZ), Ax (values, length NNZ).
type CCMatrix struct {
	M, N int
	Ap   []int
	Ai   []int
	Ax   []float64
}

// NNZ returns the number of stored (structural) non-zeros.
func (o *CCMatrix) NNZ() int {
	return len(o.Ax)
}

// SamePattern reports whether o and other share the exact same Ap/Ai
// slice headers (not just equal contents) — the bit-identical check
// spec.md §8 calls for when asserting sparsity-pattern stability across
// NR iterations.
func (o *CCMatrix) SamePattern(other *CCMatrix) bool {
	if o == nil || other == nil {
		return o == other
	}
	return &o.Ap[0] == &other.Ap[0] && &o.Ai[0] == &other.Ai[0] && len(o.Ap) == len(other.Ap) && len(o.Ai) == len(other.Ai)
}

// Get performs a linear (within-column) search for the value at (row,
// col); returns 0 if the structural position is absent. Used only in
// tests / diagnostics — the hot path never looks values up this way.
func (o *CCMatrix) Get(row, col int) float64 {
	for p := o.Ap[col]; p < o.Ap[col+1]; p++ {
		if o.Ai[p] == row {
			return o.Ax[p]
		}
	}
	return 0
}

// ToDense materialises o as a dense row-major matrix, used by the
// SparseLU backend and by tests that cross-check against a dense form.
func (o *CCMatrix) ToDense() [][]float64 {
	d := make([][]float64, o.M)
	for i := range d {
		d[i] = make([]float64, o.N)
	}
	for c := 0; c < o.N; c++ {
		for p := o.Ap[c]; p < o.Ap[c+1]; p++ {
			d[o.Ai[p]][c] = o.Ax[p]
		}
	}
	return d
}

// MatVecMul returns y = A*x for a dense real vector x, the real-matrix
// counterpart of CCMatrixC.MulVec.
func (o *CCMatrix) MatVecMul(x Vector) Vector {
	y := make(Vector, o.M)
	for c := 0; c < o.N; c++ {
		xc := x[c]
		if xc == 0 {
			continue
		}
		for p := o.Ap[c]; p < o.Ap[c+1]; p++ {
			y[o.Ai[p]] += o.Ax[p] * xc
		}
	}
	return y
}
