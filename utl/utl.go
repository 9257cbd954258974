// Copyright 2024 The Gopf Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package utl implements generic numeric helpers used throughout the
// module.
package utl

// FillInt fills an int slice with v, the sentinel used for "absent"
// positions in inverse-index vectors.
func FillInt(s []int, v int) {
	for i := range s {
		s[i] = v
	}
}
