// Copyright 2024 The Gopf Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pf

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cpmech/gopf/la"
)

// The value_map fast-path refresh (AssembleKnownPattern) must produce
// exactly the same Ax values a from-scratch AssembleUnknownPattern call
// would, for the same V — it's an optimisation, not an approximation.
func TestValueMapRefreshMatchesFromScratchAssembly(t *testing.T) {
	Y := twoBusYbus()
	pvpq := []int{1}
	pq := []int{1}
	inv := BuildInverseIndex(2, pvpq, pq)

	V1 := la.CVector{complex(1, 0), complex(0.95, -0.05)}
	derivsA := NewDerivatives(Y)
	J1, vm1 := AssembleUnknownPattern(Y, V1, derivsA, pq, pvpq, inv)

	V2 := la.CVector{complex(1, 0), complex(0.90, -0.08)}
	AssembleKnownPattern(Y, V2, derivsA, J1, vm1)

	derivsB := NewDerivatives(Y)
	J2, _ := AssembleUnknownPattern(Y, V2, derivsB, pq, pvpq, inv)

	require.Equal(t, J2.Ap, J1.Ap)
	require.Equal(t, J2.Ai, J1.Ai)
	require.Equal(t, len(J2.Ax), len(J1.Ax))
	for i := range J1.Ax {
		require.InDelta(t, J2.Ax[i], J1.Ax[i], 1e-9)
	}
}
