// Copyright 2024 The Gopf Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pf

import "github.com/cpmech/gopf/la"

// twoBusYbus builds the Ybus of a minimal two-bus system: bus 0 is the
// slack, bus 1 is a PQ load, connected by a single branch of series
// admittance y = 10 - 20j (a typical per-unit R+jX line), no shunts.
// This is the trivial convergence fixture used across spec scenario S1.
func twoBusYbus() *la.CCMatrixC {
	y := complex(10.0, -20.0)
	rows := []int{0, 0, 1, 1}
	cols := []int{0, 1, 0, 1}
	vals := []complex128{y, -y, -y, y}
	return la.NewYbus(2, rows, cols, vals)
}

func twoBusPartition() BusPartition {
	return BusPartition{SlackIDs: []int{0}, PV: nil, PQ: []int{1}}
}
