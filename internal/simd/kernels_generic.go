//go:build !amd64 || noasm

package simd

// initKernels keeps the generic kernels. The SWAR kernels need no setup.
func initKernels() {}
