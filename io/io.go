// Copyright 2024 The Gopf Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package io implements a handful of small printing helpers used for
// optional solver trace output.
package io

import "fmt"

// Verbose globally gates Pf output; solvers additionally carry their own
// per-instance Verbose flag, so a trace line is printed only when both
// are set.
var Verbose = true

// Pf formats and prints a message to stdout, honouring Verbose.
func Pf(msg string, prms ...interface{}) {
	if !Verbose {
		return
	}
	fmt.Printf(msg, prms...)
}
