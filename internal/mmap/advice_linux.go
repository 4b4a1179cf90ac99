//go:build linux

package mmap

import "golang.org/x/sys/unix"

func adviceFor(pattern AccessPattern) (int, bool) {
	switch pattern {
	case AccessSequential:
		return unix.MADV_SEQUENTIAL, true
	case AccessRandom:
		return unix.MADV_RANDOM, true
	case AccessWillNeed:
		return unix.MADV_WILLNEED, true
	case AccessHugePage:
		return unix.MADV_HUGEPAGE, true
	default:
		return unix.MADV_NORMAL, true
	}
}
