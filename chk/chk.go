// Copyright 2024 The Gopf Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package chk implements code asserting / error handling
package chk

import (
	"fmt"
	"runtime"
)

// Panic panics with a formatted message; used for fatal precondition
// violations that must never be recovered from mid-computation.
func Panic(msg string, prms ...interface{}) {
	panic(fmt.Sprintf(CallerInfo(2)+msg, prms...))
}

// CallerInfo returns the file:line of the caller "up" frames above CallerInfo
func CallerInfo(up int) string {
	_, file, line, ok := runtime.Caller(up)
	if !ok {
		return ""
	}
	return fmt.Sprintf("%s:%d: ", file, line)
}
