// Copyright 2024 The Gopf Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pf

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cpmech/gopf/la"
)

func TestCheckConnectivityNoIslands(t *testing.T) {
	Y := twoBusYbus()
	islands := CheckConnectivity(Y, []int{0})
	require.Empty(t, islands)
}

func TestCheckConnectivityDetectsIsolatedBus(t *testing.T) {
	y := complex(10.0, -20.0)
	rows := []int{0, 0, 1, 1}
	cols := []int{0, 1, 0, 1}
	vals := []complex128{y, -y, -y, y}
	Y := la.NewYbus(3, rows, cols, vals) // bus 2 has no off-diagonal entries

	islands := CheckConnectivity(Y, []int{0})
	require.Equal(t, []int{2}, islands)
}

func TestCheckConnectivityMultipleSlacksCoverDisjointIslands(t *testing.T) {
	// two disconnected two-bus pairs: {0,1} and {2,3}, each with its own
	// slack; both should be fully reachable.
	y := complex(10.0, -20.0)
	rows := []int{0, 0, 1, 1, 2, 2, 3, 3}
	cols := []int{0, 1, 0, 1, 2, 3, 2, 3}
	vals := []complex128{y, -y, -y, y, y, -y, -y, y}
	Y := la.NewYbus(4, rows, cols, vals)

	islands := CheckConnectivity(Y, []int{0, 2})
	require.Empty(t, islands)
}
