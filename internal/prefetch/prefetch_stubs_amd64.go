// Copyright 2024 The Vecgo Authors
// SPDX-License-Identifier: MIT

//go:build !noasm && amd64

package prefetch

import "unsafe"

//go:noescape
func prefetchT0(p unsafe.Pointer)
