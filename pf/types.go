// Copyright 2024 The Gopf Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package pf implements Newton-Raphson AC power-flow solvers, a DC
// (linearised) variant and a Gauss-Seidel variant, operating on a sparse
// bus-admittance matrix and a classification of buses into slack, PV
// and PQ sets (spec.md §1-§4).
package pf

import (
	"github.com/cpmech/gopf/chk"
	"github.com/cpmech/gopf/la"
	"github.com/cpmech/gopf/utl"
)

// SolverState re-exports la.SolverState: the backends and the NR driver
// share one exclusive-value error taxonomy (spec.md §3, §7).
type SolverState = la.SolverState

const (
	NoError           = la.NoError
	SingularMatrix    = la.SingularMatrix
	TooManyIterations = la.TooManyIterations
	InfiniteValue     = la.InfiniteValue
	SolverAnalyze     = la.SolverAnalyze
	SolverFactor      = la.SolverFactor
	SolverReFactor    = la.SolverReFactor
	SolverSolve       = la.SolverSolve
	NotInit           = la.NotInit
	LicenseError      = la.LicenseError
)

// SolverKind re-exports la.SolverKind (spec.md §6, backend selection).
type SolverKind = la.SolverKind

const (
	SparseLU = la.SparseLU
	KLU      = la.KLU
	NICSLU   = la.NICSLU
	DenseLU  = la.DenseLU
)

// BusPartition classifies every connected bus into exactly one of three
// disjoint sets (spec.md §3). Deactivated buses (absent from all three)
// are the caller's concern, not this package's.
type BusPartition struct {
	SlackIDs []int // ordered, unique, len >= 1
	PV       []int // unique
	PQ       []int // unique
}

// Validate checks the size/disjointness invariants spec.md §3 and §6
// require before any computation begins; violations are fatal
// preconditions (spec.md §7): they panic via chk.Panic rather than
// returning an error, because they indicate a caller bug, not a
// numerical failure.
func (p BusPartition) Validate(n int) {
	if len(p.SlackIDs) == 0 {
		chk.Panic("BusPartition: slack_ids must have at least one entry")
	}
	seen := make(map[int]string, n)
	mark := func(ids []int, label string) {
		for _, i := range ids {
			if i < 0 || i >= n {
				chk.Panic("BusPartition: bus index %d out of range [0,%d)", i, n)
			}
			if other, ok := seen[i]; ok {
				chk.Panic("BusPartition: bus %d appears in both %s and %s", i, other, label)
			}
			seen[i] = label
		}
	}
	mark(p.SlackIDs, "slack_ids")
	mark(p.PV, "pv")
	mark(p.PQ, "pq")
}

// Pvpq builds the single-slack driver's pvpq ordering: pv buses first,
// then any slack buses beyond the first (spec.md §3: "pvpq =
// concat(pv, slack_ids[1..]) in the single-slack driver; its ordering
// matters"). Extra slacks are treated as ordinary PV buses (their angle
// becomes an NR unknown; their magnitude stays fixed), per
// original_source's retrieve_pv_with_slack (SPEC_FULL.md §9 Open
// Question #1).
func (p BusPartition) Pvpq() []int {
	pvpq := make([]int, 0, len(p.PV)+len(p.SlackIDs)-1)
	pvpq = append(pvpq, p.PV...)
	pvpq = append(pvpq, p.SlackIDs[1:]...)
	return pvpq
}

// PvpqDistributed builds the distributed-slack driver's pvpq ordering:
// extra slacks first, then pv (spec.md §4.2: "pvpq = [slack_ids[1..],
// pv, pq]" — pq is handled by its own separate block, see
// SPEC_FULL.md §9 Open Question #1).
func (p BusPartition) PvpqDistributed() []int {
	pvpq := make([]int, 0, len(p.PV)+len(p.SlackIDs)-1)
	pvpq = append(pvpq, p.SlackIDs[1:]...)
	pvpq = append(pvpq, p.PV...)
	return pvpq
}

// InverseIndex maps a bus index to its position within pvpq / pq, or -1
// when absent (spec.md §3).
type InverseIndex struct {
	PvpqInv []int
	PqInv   []int
}

// BuildInverseIndex allocates and fills an InverseIndex of length n for
// the given pvpq/pq orderings.
func BuildInverseIndex(n int, pvpq, pq []int) InverseIndex {
	pvpqInv := make([]int, n)
	pqInv := make([]int, n)
	utl.FillInt(pvpqInv, -1)
	utl.FillInt(pqInv, -1)
	for pos, bus := range pvpq {
		pvpqInv[bus] = pos
	}
	for pos, bus := range pq {
		pqInv[bus] = pos
	}
	return InverseIndex{PvpqInv: pvpqInv, PqInv: pqInv}
}

// Timers are the cumulative durations the solver reports (spec.md §3,
// §6: get_timers).
type Timers struct {
	Fx      float64 // residual evaluation
	Solve   float64 // linear solve
	Check   float64 // convergence check
	TotalNR float64 // whole compute_pf call
	JacFill float64 // Jacobian assembly
}

func (t *Timers) reset() {
	*t = Timers{}
}
