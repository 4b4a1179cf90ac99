// Copyright 2024 The Vecgo Authors
// SPDX-License-Identifier: MIT

//go:build amd64 && !noasm

package simd

func initKernels() {
	if activeISA < AVX2 {
		return
	}
	kernelLess64x4 = less64x4AVX2
	kernelGreater64x4 = greater64x4AVX2
	kernelLess64x8 = less64x8AVX2
	kernelGreater64x8 = greater64x8AVX2
	kernelLess32x8 = less32x8AVX2
	kernelGreater32x8 = greater32x8AVX2
	accelerated = true
}

//go:noescape
func less64x4AVX2(b *[4]int64, key, flip int64) int

//go:noescape
func greater64x4AVX2(b *[4]int64, key, flip int64) int

//go:noescape
func less64x8AVX2(b *[8]int64, key, flip int64) int

//go:noescape
func greater64x8AVX2(b *[8]int64, key, flip int64) int

//go:noescape
func less32x8AVX2(b *[8]int32, key, flip int32) int

//go:noescape
func greater32x8AVX2(b *[8]int32, key, flip int32) int
