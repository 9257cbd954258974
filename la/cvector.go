// Copyright 2024 The Gopf Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package la

import (
	"math"
	"math/cmplx"
)

// CVector is a dense complex vector.
type CVector []complex128

// CVecCopy copies src into a new vector.
func CVecCopy(src CVector) CVector {
	dst := make(CVector, len(src))
	copy(dst, src)
	return dst
}

// Abs returns the element-wise magnitude of v (Vm = |V|).
func Abs(v CVector) Vector {
	res := make(Vector, len(v))
	for i, x := range v {
		res[i] = cmplx.Abs(x)
	}
	return res
}

// Angle returns the element-wise argument of v (Va = arg(V)), in radians.
func Angle(v CVector) Vector {
	res := make(Vector, len(v))
	for i, x := range v {
		res[i] = cmplx.Phase(x)
	}
	return res
}

// Recompose rebuilds V = Vm ⊙ (cos(Va) + j·sin(Va)) in place into dst.
func Recompose(dst CVector, vm, va Vector) {
	for i := range dst {
		s, c := math.Sincos(va[i])
		dst[i] = complex(vm[i]*c, vm[i]*s)
	}
}
