// Copyright 2024 The Gopf Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pf

import "github.com/cpmech/gopf/la"

// CheckConnectivity returns every bus index unreachable from any slack
// bus through Ybus's off-diagonal sparsity pattern (SPEC_FULL.md §4.9):
// an electrical island with no reference voltage. It is a read-only
// diagnostic; compute_pf never calls it automatically.
//
// This is a breadth-first reachability sweep, not the teacher's
// all-pairs Floyd-Warshall (graph.FloydWarshall): at transmission-grid
// scale, O(n^3) is infeasible, and a simple BFS from a virtual
// super-source covering every slack bus answers exactly the question
// asked ("reachable from a slack bus"), in O(n + nnz(Y)).
func CheckConnectivity(Ybus *la.CCMatrixC, slackIDs []int) []int {
	n := Ybus.N
	adj := buildAdjacency(Ybus)
	visited := make([]bool, n)
	queue := make([]int, 0, n)
	for _, s := range slackIDs {
		if !visited[s] {
			visited[s] = true
			queue = append(queue, s)
		}
	}
	for head := 0; head < len(queue); head++ {
		u := queue[head]
		for _, v := range adj[u] {
			if !visited[v] {
				visited[v] = true
				queue = append(queue, v)
			}
		}
	}
	var islanded []int
	for i := 0; i < n; i++ {
		if !visited[i] {
			islanded = append(islanded, i)
		}
	}
	return islanded
}

// buildAdjacency derives an undirected adjacency list from Ybus's
// off-diagonal structural non-zeros: Y_ij != 0 (i != j) means buses i
// and j are electrically connected by a branch or shunt coupling.
func buildAdjacency(Ybus *la.CCMatrixC) [][]int {
	n := Ybus.N
	adj := make([][]int, n)
	for c := 0; c < n; c++ {
		for p := Ybus.Ap[c]; p < Ybus.Ap[c+1]; p++ {
			r := Ybus.Ai[p]
			if r == c {
				continue
			}
			adj[c] = append(adj[c], r)
			adj[r] = append(adj[r], c)
		}
	}
	return adj
}
