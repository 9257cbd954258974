// Copyright 2024 The Gopf Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package la

// CCMatrixC is a complex sparse matrix in compressed-sparse-column (CSC)
// format, used for Ybus and the derivative matrices dS/dVa, dS/dVm.
// Symmetric sparsity pattern is assumed (spec.md §3); values need not be
// symmetric.
type CCMatrixC struct {
	M, N int
	Ap   []int
	Ai   []int
	Ax   []complex128
}

// NewCCMatrixCFromPattern allocates a new matrix sharing the Ap/Ai
// slices of pattern (not copying them) with a freshly-allocated,
// zeroed Ax. Used by the derivative engine's first call to create
// dS/dVa and dS/dVm with exactly Ybus's sparsity pattern (spec.md §4.1).
func NewCCMatrixCFromPattern(pattern *CCMatrixC) *CCMatrixC {
	return &CCMatrixC{
		M:  pattern.M,
		N:  pattern.N,
		Ap: pattern.Ap,
		Ai: pattern.Ai,
		Ax: make([]complex128, len(pattern.Ax)),
	}
}

// NNZ returns the number of stored (structural) non-zeros.
func (o *CCMatrixC) NNZ() int {
	return len(o.Ax)
}

// MulVec returns y = A*x (sparse complex mat-vec), used to compute
// Ibus = Y*V.
func (o *CCMatrixC) MulVec(x CVector) CVector {
	y := make(CVector, o.M)
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

// FindIndex returns the position in Ax/Ai holding (row,col), or -1 if
// that structural position is absent. Used once, at value-map
// construction time (spec.md §4.2); never on the hot refresh path.
func (o *CCMatrixC) FindIndex(row, col int) int {
	for p := o.Ap[col]; p < o.Ap[col+1]; p++ {
		if o.Ai[p] == row {
			return p
		}
	}
	return -1
}

// NewYbus builds a CCMatrixC from a COO-style entry list, summing
// duplicate (row,col) contributions and guaranteeing every diagonal
// entry is present in the structural pattern (self-admittance is always
// stored explicitly, even if it numerically happens to be zero) — the
// derivative engine (spec.md §4.1) relies on the diagonal always being a
// structural non-zero.
func NewYbus(n int, rows, cols []int, vals []complex128) *CCMatrixC {
	type key struct{ r, c int }
	acc := make(map[key]complex128, len(vals)+n)
	for i := range vals {
		acc[key{rows[i], cols[i]}] += vals[i]
	}
	for d := 0; d < n; d++ {
		acc[key{d, d}] += 0
	}
	colEntries := make([][]int, n)
	for k := range acc {
		colEntries[k.c] = append(colEntries[k.c], k.r)
	}
	Ap := make([]int, n+1)
	for c := 0; c < n; c++ {
		sortInts(colEntries[c])
		Ap[c+1] = Ap[c] + len(colEntries[c])
	}
	Ai := make([]int, Ap[n])
	Ax := make([]complex128, Ap[n])
	for c := 0; c < n; c++ {
		for i, r := range colEntries[c] {
			p := Ap[c] + i
			Ai[p] = r
			Ax[p] = acc[key{r, c}]
		}
	}
	return &CCMatrixC{M: n, N: n, Ap: Ap, Ai: Ai, Ax: Ax}
}

func sortInts(s []int) {
	for i := 1; i < len(s); i++ {
		v := s[i]
		j := i - 1
		for j >= 0 && s[j] > v {
			s[j+1] = s[j]
			j--
		}
		s[j+1] = v
	}
}
