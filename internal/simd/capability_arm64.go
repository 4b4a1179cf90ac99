//go:build arm64

package simd

import "golang.org/x/sys/cpu"

func detectFeatures() {
	hasASIMD = cpu.ARM64.HasASIMD
}
