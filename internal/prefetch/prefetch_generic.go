// Copyright 2024 The Vecgo Authors
// SPDX-License-Identifier: MIT

//go:build (!arm64 && !amd64) || noasm

package prefetch

import "unsafe"

// prefetchT0 is the portable fallback.
// The read pulls the line in through the regular load path.
func prefetchT0(p unsafe.Pointer) {
	_ = *(*byte)(p)
}
